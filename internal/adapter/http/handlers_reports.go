package http

import (
	"net/http"
	"time"
)

// StatementReport returns the period statement of one property.
func (h *Handlers) StatementReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !requireField(w, q.Get("property"), "property") {
		return
	}
	stmt, err := h.ws.Reports.Statement(r.Context(), q.Get("property"), q.Get("from"), q.Get("to"))
	if err != nil {
		writeDomainError(w, err, "statement not available")
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

// LandlordStatementReport returns the period statement of one landlord.
func (h *Handlers) LandlordStatementReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !requireField(w, q.Get("landlord"), "landlord") {
		return
	}
	stmt, err := h.ws.Reports.LandlordStatement(r.Context(), q.Get("landlord"), q.Get("from"), q.Get("to"))
	if err != nil {
		writeDomainError(w, err, "statement not available")
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

// CommissionReport returns the per-landlord commission summary for a period.
func (h *Handlers) CommissionReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.ws.Reports.Commission(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeDomainError(w, err, "commission report not available")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// AgedAnalysisReport returns the aged-receivables report.
func (h *Handlers) AgedAnalysisReport(w http.ResponseWriter, r *http.Request) {
	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().Format("2006-01-02")
	}
	report, err := h.ws.Reports.AgedAnalysis(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, err, "aged analysis not available")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// IncomeExpenditureReport returns the month-by-month dashboard series.
func (h *Handlers) IncomeExpenditureReport(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())
	report, err := h.ws.Reports.IncomeExpenditure(r.Context(), year)
	if err != nil {
		writeDomainError(w, err, "income report not available")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// LeaseChargesReport returns the charges raised against one lease.
func (h *Handlers) LeaseChargesReport(w http.ResponseWriter, r *http.Request) {
	charges, err := h.ws.Reports.LeaseCharges(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, charges)
}
