// Package manager defines the property-manager association entity.
package manager

import "github.com/Mutombe/propdesk/internal/domain"

// Assignment links a staff user to a property. A property has at most one
// assignment with IsPrimary set; the assignment flow rejects a second primary
// before it reaches the backend.
type Assignment struct {
	domain.Meta

	ID        string `json:"id"`
	Property  string `json:"property"`
	User      string `json:"user"`
	UserName  string `json:"user_name,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Record is the payload shape sent on assignment.
type Record struct {
	Property  string `json:"property" validate:"required"`
	User      string `json:"user" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}
