// Package property defines the property aggregate and the unit-definition
// shorthand used to bulk-generate units.
package property

import (
	"time"

	"github.com/Mutombe/propdesk/internal/domain"
)

// Type enumerates property usage types.
type Type string

// Property types accepted by the backend.
const (
	TypeResidential Type = "residential"
	TypeCommercial  Type = "commercial"
	TypeIndustrial  Type = "industrial"
	TypeMixed       Type = "mixed"
)

// Property is a building or complex owned by a landlord.
type Property struct {
	domain.Meta

	ID           string `json:"id"`
	Name         string `json:"name"`
	Landlord     string `json:"landlord"`
	LandlordName string `json:"landlord_name,omitempty"`
	PropertyType Type   `json:"property_type"`
	Address      string `json:"address"`
	City         string `json:"city"`
	TotalUnits   int    `json:"total_units"`

	// UnitDefinition is the textual unit-range spec, e.g. "1-17" or
	// "A1-A20; B1-B15".
	UnitDefinition string `json:"unit_definition"`

	// Derived by the backend from existing units and active leases.
	UnitCount        int     `json:"unit_count"`
	DefinedUnitCount int     `json:"defined_unit_count"`
	VacancyRate      float64 `json:"vacancy_rate"`

	CreatedAt time.Time `json:"created_at"`
}

// Record is the payload shape sent on create and update.
type Record struct {
	Name           string `json:"name" validate:"required"`
	Landlord       string `json:"landlord" validate:"required"`
	PropertyType   Type   `json:"property_type" validate:"oneof=residential commercial industrial mixed"`
	Address        string `json:"address"`
	City           string `json:"city"`
	TotalUnits     int    `json:"total_units" validate:"gte=0"`
	UnitDefinition string `json:"unit_definition"`
}

// UnitPreview partitions the identifiers implied by a unit definition into
// units that already exist and units that generation would create.
type UnitPreview struct {
	Existing      []string `json:"existing"`
	ToCreate      []string `json:"to_create"`
	ExistingCount int      `json:"existing_count"`
	CreateCount   int      `json:"create_count"`
}

// GenerateResult reports the outcome of a unit-generation call.
type GenerateResult struct {
	Created []string `json:"created"`
	Count   int      `json:"count"`
}
