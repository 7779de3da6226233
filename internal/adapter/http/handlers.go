package http

import (
	"log/slog"
	"net/http"

	"github.com/Mutombe/propdesk/internal/adapter/toast"
	"github.com/Mutombe/propdesk/internal/service"
)

// Handlers bundles the HTTP handlers over one workspace.
type Handlers struct {
	ws     *service.Workspace
	toasts *toast.Notifier
	log    *slog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(ws *service.Workspace, toasts *toast.Notifier, log *slog.Logger) *Handlers {
	return &Handlers{ws: ws, toasts: toasts, log: log}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Notifications drains the pending toasts so each is shown at most once.
func (h *Handlers) Notifications(w http.ResponseWriter, _ *http.Request) {
	toasts := h.toasts.Drain()
	if toasts == nil {
		toasts = []toast.Toast{}
	}
	writeJSON(w, http.StatusOK, toasts)
}
