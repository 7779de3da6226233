// Package unit defines the rental unit aggregate.
package unit

import (
	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/lease"
)

// Unit is a lettable space inside a property. Occupancy is derived from
// whether an active lease exists; at most one lease per unit is active at a
// time (enforced by the backend, not reverified here).
type Unit struct {
	domain.Meta

	ID            string  `json:"id"`
	UnitNumber    string  `json:"unit_number"`
	Property      string  `json:"property"`
	PropertyName  string  `json:"property_name,omitempty"`
	UnitType      string  `json:"unit_type"`
	RentalAmount  float64 `json:"rental_amount"`
	DepositAmount float64 `json:"deposit_amount"`
	Currency      string  `json:"currency"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	SquareMeters  float64 `json:"square_meters"`
	FloorNumber   int     `json:"floor_number"`

	Occupied    bool         `json:"occupied"`
	ActiveLease *lease.Lease `json:"active_lease,omitempty"`
}

// Record is the payload shape sent on create and update.
type Record struct {
	UnitNumber    string  `json:"unit_number" validate:"required"`
	Property      string  `json:"property" validate:"required"`
	UnitType      string  `json:"unit_type"`
	RentalAmount  float64 `json:"rental_amount" validate:"gte=0"`
	DepositAmount float64 `json:"deposit_amount" validate:"gte=0"`
	Currency      string  `json:"currency"`
	Bedrooms      int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int     `json:"bathrooms" validate:"gte=0"`
	SquareMeters  float64 `json:"square_meters" validate:"gte=0"`
	FloorNumber   int     `json:"floor_number"`
}
