package http

import (
	"net/http"

	"github.com/Mutombe/propdesk/internal/domain/manager"
)

// PropertyManagers lists the manager assignments of one property.
func (h *Handlers) PropertyManagers(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.ws.Managers.Assignments(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	if assignments == nil {
		assignments = []manager.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// ManagerCandidates lists the staff users not yet assigned to the property.
func (h *Handlers) ManagerCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.ws.Managers.Candidates(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// AssignManager creates a manager assignment. A second primary manager on the
// same property is rejected with a validation error.
func (h *Handlers) AssignManager(w http.ResponseWriter, r *http.Request) {
	rec, ok := readJSON[manager.Record](w, r)
	if !ok {
		return
	}
	if !requireField(w, rec.Property, "property") || !requireField(w, rec.User, "user") {
		return
	}
	if err := h.ws.Managers.Assign(r.Context(), rec); err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveManager deletes one assignment by its association id.
func (h *Handlers) RemoveManager(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Managers.Remove(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "assignment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
