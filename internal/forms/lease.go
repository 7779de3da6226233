package forms

import (
	"fmt"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/lease"
)

// LeaseForm edits a lease. A lease either references an existing unit by id
// or names a property plus a free-text unit number for server-side
// auto-creation; the two are mutually exclusive.
type LeaseForm struct {
	Tenant        string
	Unit          string
	Property      string
	UnitNumber    string
	MonthlyRent   string
	DepositAmount string
	Currency      string
	StartDate     string
	EndDate       string
	PaymentDay    string
	Status        string
}

// NewLeaseForm creates a form, optionally pre-filled from an existing lease.
func NewLeaseForm(initial *lease.Lease) *LeaseForm {
	f := &LeaseForm{PaymentDay: "1"}
	if initial == nil {
		return f
	}
	f.Tenant = initial.Tenant
	f.Unit = initial.Unit
	f.Property = initial.Property
	f.UnitNumber = initial.UnitNumber
	f.MonthlyRent = formatAmount(initial.MonthlyRent)
	f.DepositAmount = formatAmount(initial.DepositAmount)
	f.Currency = initial.Currency
	f.StartDate = initial.StartDate
	f.EndDate = initial.EndDate
	f.PaymentDay = fmt.Sprintf("%d", initial.PaymentDay)
	f.Status = string(initial.Status)
	return f
}

// SetStartDate changes the start date. An empty end date is auto-filled to
// one year after the start; a manually entered end date is left alone.
func (f *LeaseForm) SetStartDate(d string) {
	f.StartDate = d
	if f.EndDate == "" {
		f.EndDate = addYear(d)
	}
}

// SetEndDate sets the end date directly. Clearing it re-arms the auto-fill.
func (f *LeaseForm) SetEndDate(d string) {
	f.EndDate = d
}

// SetMonthlyRent changes the rent. An empty deposit is auto-filled to twice
// the rent, formatted to 2 decimals; a non-empty deposit is never overwritten.
func (f *LeaseForm) SetMonthlyRent(r string) {
	f.MonthlyRent = r
	if f.DepositAmount == "" && r != "" {
		f.DepositAmount = formatAmount(2 * parseFloat(r))
	}
}

// SetDepositAmount sets the deposit directly.
func (f *LeaseForm) SetDepositAmount(d string) {
	f.DepositAmount = d
}

// SetUnit selects an existing unit, clearing any free-text unit number.
func (f *LeaseForm) SetUnit(id string) {
	f.Unit = id
	if id != "" {
		f.UnitNumber = ""
	}
}

// SetUnitNumber enters a free-text unit number, clearing any selected unit.
func (f *LeaseForm) SetUnitNumber(n string) {
	f.UnitNumber = n
	if n != "" {
		f.Unit = ""
	}
}

// FormData builds the payload from the current field state without
// validating. The payload carries either the unit id or the property with an
// optional unit number, never both.
func (f *LeaseForm) FormData() lease.Record {
	rec := lease.Record{
		Tenant:        f.Tenant,
		MonthlyRent:   parseFloat(f.MonthlyRent),
		DepositAmount: parseFloat(f.DepositAmount),
		Currency:      f.Currency,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		PaymentDay:    parseInt(f.PaymentDay),
		Status:        lease.Status(f.Status),
	}
	if f.Unit != "" {
		rec.Unit = f.Unit
	} else {
		rec.Property = f.Property
		rec.UnitNumber = f.UnitNumber
	}
	return rec
}

// Submit validates the current state and returns the payload.
func (f *LeaseForm) Submit() (lease.Record, error) {
	rec := f.FormData()
	if rec.Unit == "" && rec.Property == "" {
		return lease.Record{}, fmt.Errorf("%w: select a unit or a property", domain.ErrValidation)
	}
	if err := checkRecord(rec); err != nil {
		return lease.Record{}, err
	}
	return rec, nil
}
