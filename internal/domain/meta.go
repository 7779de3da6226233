package domain

// Meta carries client-side row metadata that is never sent to the backend.
// Entities embed Meta so list rendering and selection logic can distinguish
// optimistic (unconfirmed) rows from confirmed ones.
type Meta struct {
	// Optimistic marks a row that was inserted or patched ahead of server
	// confirmation. Optimistic rows are excluded from bulk selection.
	Optimistic bool `json:"_optimistic,omitempty"`
}
