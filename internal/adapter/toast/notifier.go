// Package toast implements the notifier port as an in-memory ring of recent
// notifications, polled by the UI.
package toast

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mutombe/propdesk/internal/port/notifier"
)

// Toast is one delivered notification with delivery metadata.
type Toast struct {
	notifier.Notification

	ID   string    `json:"id"`
	Time time.Time `json:"time"`
}

// Notifier keeps the most recent notifications in memory. Notifications are
// transient; nothing survives a restart.
type Notifier struct {
	mu     sync.Mutex
	ring   []Toast
	max    int
	now    func() time.Time // for testing
	nextID func() string
}

// New creates a toast notifier keeping at most max recent notifications.
func New(max int) *Notifier {
	if max <= 0 {
		max = 50
	}
	return &Notifier{
		max:    max,
		now:    time.Now,
		nextID: uuid.NewString,
	}
}

// Name identifies this notifier.
func (n *Notifier) Name() string { return "toast" }

// Send records a notification in the ring, evicting the oldest when full.
func (n *Notifier) Send(_ context.Context, msg notifier.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.ring = append(n.ring, Toast{
		Notification: msg,
		ID:           n.nextID(),
		Time:         n.now(),
	})
	if len(n.ring) > n.max {
		n.ring = n.ring[len(n.ring)-n.max:]
	}
	return nil
}

// Recent returns the stored notifications, newest last.
func (n *Notifier) Recent() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Toast, len(n.ring))
	copy(out, n.ring)
	return out
}

// Drain returns the stored notifications and clears the ring, so each toast
// is shown at most once.
func (n *Notifier) Drain() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.ring
	n.ring = nil
	return out
}
