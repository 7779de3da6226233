package forms

import (
	"fmt"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/property"
)

// PropertyForm edits a property, including the unit-definition shorthand used
// to bulk-generate units.
type PropertyForm struct {
	Name           string
	Landlord       string
	PropertyType   string
	Address        string
	City           string
	TotalUnits     string
	UnitDefinition string
}

// NewPropertyForm creates a form, optionally pre-filled from an existing
// property.
func NewPropertyForm(initial *property.Property) *PropertyForm {
	f := &PropertyForm{PropertyType: string(property.TypeResidential)}
	if initial == nil {
		return f
	}
	f.Name = initial.Name
	f.Landlord = initial.Landlord
	f.PropertyType = string(initial.PropertyType)
	f.Address = initial.Address
	f.City = initial.City
	f.TotalUnits = itoa(initial.TotalUnits)
	f.UnitDefinition = initial.UnitDefinition
	return f
}

// DefinedUnitCount reports how many unit identifiers the current definition
// expands to, or 0 when the definition is empty or malformed.
func (f *PropertyForm) DefinedUnitCount() int {
	return property.DefinedUnitCount(f.UnitDefinition)
}

// FormData builds the payload from the current field state without validating.
func (f *PropertyForm) FormData() property.Record {
	return property.Record{
		Name:           f.Name,
		Landlord:       f.Landlord,
		PropertyType:   property.Type(f.PropertyType),
		Address:        f.Address,
		City:           f.City,
		TotalUnits:     parseInt(f.TotalUnits),
		UnitDefinition: f.UnitDefinition,
	}
}

// Submit validates the current state, including the unit definition when one
// is entered, and returns the payload.
func (f *PropertyForm) Submit() (property.Record, error) {
	rec := f.FormData()
	if rec.UnitDefinition != "" {
		if _, err := property.ParseUnitDefinition(rec.UnitDefinition); err != nil {
			return property.Record{}, fmt.Errorf("%w: unit_definition: %v", domain.ErrValidation, err)
		}
	}
	if err := checkRecord(rec); err != nil {
		return property.Record{}, err
	}
	return rec, nil
}
