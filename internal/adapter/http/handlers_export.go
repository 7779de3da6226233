package http

import (
	"fmt"
	"net/http"
)

// ImportTemplate streams the import spreadsheet template for a resource with
// its conventional filename.
func (h *Handlers) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	resource := urlParam(r, "resource")
	filename, data, err := h.ws.Export.ImportTemplate(r.Context(), resource)
	if err != nil {
		writeDomainError(w, err, "template not found")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// SaveImportTemplate downloads the template into the export directory and
// returns the saved path.
func (h *Handlers) SaveImportTemplate(w http.ResponseWriter, r *http.Request) {
	path, err := h.ws.Export.SaveImportTemplate(r.Context(), urlParam(r, "resource"))
	if err != nil {
		writeDomainError(w, err, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
