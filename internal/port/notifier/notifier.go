// Package notifier defines the transient-notification port.
package notifier

import "context"

// Notification levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a transient message shown to the user after an operation
// completes, e.g. "Property created" or a parsed backend error.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level"`
	Source  string `json:"source"` // e.g. "property.create", "lease.delete"
}

// Notifier is the port interface for delivering notifications.
type Notifier interface {
	// Name returns the unique identifier for this notifier (e.g. "toast").
	Name() string

	// Send delivers a notification.
	Send(ctx context.Context, n Notification) error
}
