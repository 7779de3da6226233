package forms

import (
	"github.com/Mutombe/propdesk/internal/domain/landlord"
)

// LandlordForm edits a landlord.
type LandlordForm struct {
	Name             string
	Type             string
	Email            string
	Phone            string
	Address          string
	CommissionRate   string
	Currency         string
	PaymentFrequency string
	BankName         string
	BankAccount      string
	BankBranchCode   string
	TaxID            string
}

// NewLandlordForm creates a form, optionally pre-filled from an existing
// landlord.
func NewLandlordForm(initial *landlord.Landlord) *LandlordForm {
	f := &LandlordForm{Type: string(landlord.TypeIndividual)}
	if initial == nil {
		return f
	}
	f.Name = initial.Name
	f.Type = string(initial.Type)
	f.Email = initial.Email
	f.Phone = initial.Phone
	f.Address = initial.Address
	f.CommissionRate = formatAmount(initial.CommissionRate)
	f.Currency = initial.Currency
	f.PaymentFrequency = initial.PaymentFrequency
	f.BankName = initial.BankName
	f.BankAccount = initial.BankAccount
	f.BankBranchCode = initial.BankBranchCode
	f.TaxID = initial.TaxID
	return f
}

// FormData builds the payload from the current field state without validating.
func (f *LandlordForm) FormData() landlord.Record {
	return landlord.Record{
		Name:             f.Name,
		Type:             landlord.Type(f.Type),
		Email:            f.Email,
		Phone:            f.Phone,
		Address:          f.Address,
		CommissionRate:   parseFloat(f.CommissionRate),
		Currency:         f.Currency,
		PaymentFrequency: f.PaymentFrequency,
		BankName:         f.BankName,
		BankAccount:      f.BankAccount,
		BankBranchCode:   f.BankBranchCode,
		TaxID:            f.TaxID,
	}
}

// Submit validates the current state and returns the payload.
func (f *LandlordForm) Submit() (landlord.Record, error) {
	rec := f.FormData()
	if err := checkRecord(rec); err != nil {
		return landlord.Record{}, err
	}
	return rec, nil
}
