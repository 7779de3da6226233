package http

import (
	"net/http"

	"github.com/Mutombe/propdesk/internal/forms"
	"github.com/Mutombe/propdesk/internal/port/backend"
)

// leaseFormRequest carries the raw lease form field state.
type leaseFormRequest struct {
	Tenant        string `json:"tenant"`
	Unit          string `json:"unit"`
	Property      string `json:"property"`
	UnitNumber    string `json:"unit_number"`
	MonthlyRent   string `json:"monthly_rent"`
	DepositAmount string `json:"deposit_amount"`
	Currency      string `json:"currency"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	PaymentDay    string `json:"payment_day"`
	Status        string `json:"status"`
}

func (req leaseFormRequest) form() *forms.LeaseForm {
	f := forms.NewLeaseForm(nil)
	f.Tenant = req.Tenant
	f.Property = req.Property
	// A selected unit wins over a free-text unit number when both arrive.
	f.SetUnitNumber(req.UnitNumber)
	if req.Unit != "" {
		f.SetUnit(req.Unit)
	}
	f.SetEndDate(req.EndDate)
	f.SetStartDate(req.StartDate)
	f.SetDepositAmount(req.DepositAmount)
	f.SetMonthlyRent(req.MonthlyRent)
	f.Currency = req.Currency
	if req.PaymentDay != "" {
		f.PaymentDay = req.PaymentDay
	}
	f.Status = req.Status
	return f
}

// ListLeases lists leases, optionally filtered by unit or property.
func (h *Handlers) ListLeases(w http.ResponseWriter, r *http.Request) {
	params := backend.ListParams{
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 0),
		PageSize: queryInt(r, "page_size", 0),
	}
	filters := make(map[string]string)
	for _, key := range []string{"unit", "property", "status"} {
		if v := r.URL.Query().Get(key); v != "" {
			filters[key] = v
		}
	}
	if len(filters) > 0 {
		params.Filters = filters
	}
	page, err := h.ws.Leases.List(r.Context(), params)
	if err != nil {
		writeDomainError(w, err, "leases not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetLease returns one lease.
func (h *Handlers) GetLease(w http.ResponseWriter, r *http.Request) {
	l, err := h.ws.Leases.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLease validates the form payload and submits the optimistic create.
// When the request is multipart, the "document" part is uploaded to the
// created lease and the "payload" part carries the form fields.
func (h *Handlers) CreateLease(w http.ResponseWriter, r *http.Request) {
	if mediaTypeIsMultipart(r) {
		h.createLeaseWithDocument(w, r)
		return
	}

	req, ok := readJSON[leaseFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid lease")
		return
	}
	if err := h.ws.Leases.Create(r.Context(), rec); err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) createLeaseWithDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req leaseFormRequest
	if payload := r.FormValue("payload"); payload != "" {
		if err := decodeString(payload, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload field")
			return
		}
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid lease")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if err := h.ws.Leases.CreateWithDocument(r.Context(), rec, header.Filename, file); err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UpdateLease validates the form payload and submits the optimistic update.
func (h *Handlers) UpdateLease(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[leaseFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid lease")
		return
	}
	if err := h.ws.Leases.Update(r.Context(), id, rec); err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteLease submits the optimistic delete.
func (h *Handlers) DeleteLease(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Leases.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadLeaseDocument attaches a document to an existing lease.
func (h *Handlers) UploadLeaseDocument(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if err := h.ws.Leases.UploadDocument(r.Context(), id, header.Filename, file); err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
