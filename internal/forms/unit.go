package forms

import (
	"github.com/Mutombe/propdesk/internal/domain/unit"
)

// UnitForm edits a rental unit.
type UnitForm struct {
	UnitNumber    string
	Property      string
	UnitType      string
	RentalAmount  string
	DepositAmount string
	Currency      string
	Bedrooms      string
	Bathrooms     string
	SquareMeters  string
	FloorNumber   string
}

// NewUnitForm creates a form, optionally pre-filled from an existing unit.
func NewUnitForm(initial *unit.Unit) *UnitForm {
	f := &UnitForm{}
	if initial == nil {
		return f
	}
	f.UnitNumber = initial.UnitNumber
	f.Property = initial.Property
	f.UnitType = initial.UnitType
	f.RentalAmount = formatAmount(initial.RentalAmount)
	f.DepositAmount = formatAmount(initial.DepositAmount)
	f.Currency = initial.Currency
	f.Bedrooms = itoa(initial.Bedrooms)
	f.Bathrooms = itoa(initial.Bathrooms)
	f.SquareMeters = formatAmount(initial.SquareMeters)
	f.FloorNumber = itoa(initial.FloorNumber)
	return f
}

// SetRentalAmount changes the rent. An empty deposit is auto-filled to twice
// the rent, formatted to 2 decimals; a non-empty deposit is never overwritten.
func (f *UnitForm) SetRentalAmount(r string) {
	f.RentalAmount = r
	if f.DepositAmount == "" && r != "" {
		f.DepositAmount = formatAmount(2 * parseFloat(r))
	}
}

// SetDepositAmount sets the deposit directly.
func (f *UnitForm) SetDepositAmount(d string) {
	f.DepositAmount = d
}

// FormData builds the payload from the current field state without validating.
func (f *UnitForm) FormData() unit.Record {
	return unit.Record{
		UnitNumber:    f.UnitNumber,
		Property:      f.Property,
		UnitType:      f.UnitType,
		RentalAmount:  parseFloat(f.RentalAmount),
		DepositAmount: parseFloat(f.DepositAmount),
		Currency:      f.Currency,
		Bedrooms:      parseInt(f.Bedrooms),
		Bathrooms:     parseInt(f.Bathrooms),
		SquareMeters:  parseFloat(f.SquareMeters),
		FloorNumber:   parseInt(f.FloorNumber),
	}
}

// Submit validates the current state and returns the payload.
func (f *UnitForm) Submit() (unit.Record, error) {
	rec := f.FormData()
	if err := checkRecord(rec); err != nil {
		return unit.Record{}, err
	}
	return rec, nil
}
