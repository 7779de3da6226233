// Package user defines staff users eligible for manager assignment.
package user

import "github.com/Mutombe/propdesk/internal/domain"

// User is a staff member of the agency.
type User struct {
	domain.Meta

	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
