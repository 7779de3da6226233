package http

import (
	"net/http"

	"github.com/Mutombe/propdesk/internal/forms"
)

// propertyFormRequest carries the raw form field state. Numeric fields arrive
// as strings, exactly as the inputs hold them; the form model does the
// parsing and validation.
type propertyFormRequest struct {
	Name           string `json:"name"`
	Landlord       string `json:"landlord"`
	PropertyType   string `json:"property_type"`
	Address        string `json:"address"`
	City           string `json:"city"`
	TotalUnits     string `json:"total_units"`
	UnitDefinition string `json:"unit_definition"`
}

func (req propertyFormRequest) form() *forms.PropertyForm {
	f := forms.NewPropertyForm(nil)
	f.Name = req.Name
	f.Landlord = req.Landlord
	if req.PropertyType != "" {
		f.PropertyType = req.PropertyType
	}
	f.Address = req.Address
	f.City = req.City
	f.TotalUnits = req.TotalUnits
	f.UnitDefinition = req.UnitDefinition
	return f
}

// PropertiesPage loads and returns the properties list view for the active
// search, filters and page.
func (h *Handlers) PropertiesPage(w http.ResponseWriter, r *http.Request) {
	_ = h.ws.Properties.Load(r.Context())
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// PropertiesSearch feeds the search box. The text reaches the query key only
// after the debounce delay, so the response carries the still-current view.
func (h *Handlers) PropertiesSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Q string `json:"q"`
	}](w, r)
	if !ok {
		return
	}
	h.ws.Properties.SetSearch(h.ws.Context(), req.Q)
	writeJSON(w, http.StatusAccepted, h.ws.Properties.View())
}

// PropertiesFilter applies one filter value, resetting pagination and
// selection.
func (h *Handlers) PropertiesFilter(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}](w, r)
	if !ok {
		return
	}
	if !requireField(w, req.Key, "key") {
		return
	}
	if err := h.ws.Properties.SetFilter(r.Context(), req.Key, req.Value); err != nil {
		writeDomainError(w, err, "properties not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// PropertiesSetPage moves pagination.
func (h *Handlers) PropertiesSetPage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Page int `json:"page"`
	}](w, r)
	if !ok {
		return
	}
	if err := h.ws.Properties.SetPage(r.Context(), req.Page); err != nil {
		writeDomainError(w, err, "properties not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// PropertiesSelection mutates the bulk selection: toggle one id, select all
// confirmed rows, or clear.
func (h *Handlers) PropertiesSelection(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Action string `json:"action"`
		ID     string `json:"id"`
	}](w, r)
	if !ok {
		return
	}
	switch req.Action {
	case "toggle":
		if !requireField(w, req.ID, "id") {
			return
		}
		h.ws.Properties.Toggle(req.ID)
	case "all":
		h.ws.Properties.SelectAll()
	case "clear":
		h.ws.Properties.ClearSelection()
	default:
		writeError(w, http.StatusBadRequest, "action must be toggle, all or clear")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// CreateProperty validates the form payload and submits the optimistic create.
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[propertyFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid property")
		return
	}
	if err := h.ws.Properties.Create(r.Context(), rec); err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, h.ws.Properties.View())
}

// UpdateProperty validates the form payload and submits the optimistic update.
func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[propertyFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid property")
		return
	}
	if err := h.ws.Properties.Update(r.Context(), id, rec); err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// DeleteProperty submits the optimistic delete.
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Properties.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Properties.View())
}

// BulkDeleteProperties deletes every selected id and returns the structured
// per-id outcome.
func (h *Handlers) BulkDeleteProperties(w http.ResponseWriter, r *http.Request) {
	result, err := h.ws.Properties.BulkDelete(r.Context())
	if err != nil {
		writeDomainError(w, err, "nothing to delete")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportPropertiesCSV streams the current page as CSV.
func (h *Handlers) ExportPropertiesCSV(w http.ResponseWriter, r *http.Request) {
	_ = h.ws.Properties.Load(r.Context())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="properties.csv"`)
	if err := h.ws.Properties.ExportCSV(w); err != nil {
		h.log.Error("csv export failed", "error", err)
	}
}
