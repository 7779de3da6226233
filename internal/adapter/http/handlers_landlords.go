package http

import (
	"net/http"

	"github.com/Mutombe/propdesk/internal/forms"
)

// landlordFormRequest carries the raw landlord form field state.
type landlordFormRequest struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	CommissionRate   string `json:"commission_rate"`
	Currency         string `json:"currency"`
	PaymentFrequency string `json:"payment_frequency"`
	BankName         string `json:"bank_name"`
	BankAccount      string `json:"bank_account"`
	BankBranchCode   string `json:"bank_branch_code"`
	TaxID            string `json:"tax_id"`
}

func (req landlordFormRequest) form() *forms.LandlordForm {
	f := forms.NewLandlordForm(nil)
	f.Name = req.Name
	if req.Type != "" {
		f.Type = req.Type
	}
	f.Email = req.Email
	f.Phone = req.Phone
	f.Address = req.Address
	f.CommissionRate = req.CommissionRate
	f.Currency = req.Currency
	f.PaymentFrequency = req.PaymentFrequency
	f.BankName = req.BankName
	f.BankAccount = req.BankAccount
	f.BankBranchCode = req.BankBranchCode
	f.TaxID = req.TaxID
	return f
}

// LandlordsPage loads and returns the landlords list view.
func (h *Handlers) LandlordsPage(w http.ResponseWriter, r *http.Request) {
	_ = h.ws.Landlords.Load(r.Context())
	writeJSON(w, http.StatusOK, h.ws.Landlords.View())
}

// LandlordsSearch feeds the search box through the debounce.
func (h *Handlers) LandlordsSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Q string `json:"q"`
	}](w, r)
	if !ok {
		return
	}
	h.ws.Landlords.SetSearch(h.ws.Context(), req.Q)
	writeJSON(w, http.StatusAccepted, h.ws.Landlords.View())
}

// LandlordsSetPage moves pagination.
func (h *Handlers) LandlordsSetPage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Page int `json:"page"`
	}](w, r)
	if !ok {
		return
	}
	if err := h.ws.Landlords.SetPage(r.Context(), req.Page); err != nil {
		writeDomainError(w, err, "landlords not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Landlords.View())
}

// LandlordDetail returns the landlord detail view model with portfolio stats.
func (h *Handlers) LandlordDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ws.Landlords.Detail(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "landlord not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateLandlord validates the form payload and submits the optimistic create.
func (h *Handlers) CreateLandlord(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[landlordFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid landlord")
		return
	}
	if err := h.ws.Landlords.Create(r.Context(), rec); err != nil {
		writeDomainError(w, err, "landlord not found")
		return
	}
	writeJSON(w, http.StatusCreated, h.ws.Landlords.View())
}

// UpdateLandlord validates the form payload and submits the optimistic update.
func (h *Handlers) UpdateLandlord(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[landlordFormRequest](w, r)
	if !ok {
		return
	}
	rec, err := req.form().Submit()
	if err != nil {
		writeDomainError(w, err, "invalid landlord")
		return
	}
	if err := h.ws.Landlords.Update(r.Context(), id, rec); err != nil {
		writeDomainError(w, err, "landlord not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Landlords.View())
}

// DeleteLandlord submits the optimistic delete.
func (h *Handlers) DeleteLandlord(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Landlords.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "landlord not found")
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Landlords.View())
}
