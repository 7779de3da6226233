package http

import (
	"net/http"

	"github.com/Mutombe/propdesk/internal/forms"
	"github.com/Mutombe/propdesk/internal/port/backend"
)

// unitFormRequest carries the raw unit form field state.
type unitFormRequest struct {
	UnitNumber    string `json:"unit_number"`
	Property      string `json:"property"`
	UnitType      string `json:"unit_type"`
	RentalAmount  string `json:"rental_amount"`
	DepositAmount string `json:"deposit_amount"`
	Currency      string `json:"currency"`
	Bedrooms      string `json:"bedrooms"`
	Bathrooms     string `json:"bathrooms"`
	SquareMeters  string `json:"square_meters"`
	FloorNumber   string `json:"floor_number"`
}

func (req unitFormRequest) form() *forms.UnitForm {
	f := forms.NewUnitForm(nil)
	f.UnitNumber = req.UnitNumber
	f.Property = req.Property
	f.UnitType = req.UnitType
	f.DepositAmount = req.DepositAmount
	// SetRentalAmount last so an empty deposit picks up the 2x autofill.
	f.SetRentalAmount(req.RentalAmount)
	f.Currency = req.Currency
	f.Bedrooms = req.Bedrooms
	f.Bathrooms = req.Bathrooms
	f.SquareMeters = req.SquareMeters
	f.FloorNumber = req.FloorNumber
	return f
}

// ListUnits lists units, optionally filtered by property.
func (h *Handlers) ListUnits(w http.ResponseWriter, r *http.Request) {
	params := backend.ListParams{
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 0),
		PageSize: queryInt(r, "page_size", 0),
	}
	if pid := r.URL.Query().Get("property"); pid != "" {
		params.Filters = map[string]string{"property": pid}
	}
	page, err := h.ws.Units.List(r.Context(), params)
	if err != nil {
		writeDomainError(w, err, "units not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UnitDetail returns the unit detail view model with lease history.
func (h *Handlers) UnitDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ws.Units.Detail(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateUnit validates the form payload and submits the optimistic create.
func (h *Handlers) CreateUnit(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[unitFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid unit")
		return
	}
	if err := h.ws.Units.Create(r.Context(), rec); err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UpdateUnit validates the form payload and submits the optimistic update.
func (h *Handlers) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[unitFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid unit")
		return
	}
	if err := h.ws.Units.Update(r.Context(), id, rec); err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUnit submits the optimistic delete.
func (h *Handlers) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Units.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewUnits returns the generation preview for a property.
func (h *Handlers) PreviewUnits(w http.ResponseWriter, r *http.Request) {
	preview, err := h.ws.Generation.Preview(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// GenerateUnits creates the missing units for a property.
func (h *Handlers) GenerateUnits(w http.ResponseWriter, r *http.Request) {
	result, err := h.ws.Generation.Generate(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
