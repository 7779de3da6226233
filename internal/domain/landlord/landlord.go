// Package landlord defines the landlord aggregate as consumed from the backend.
package landlord

import (
	"time"

	"github.com/Mutombe/propdesk/internal/domain"
)

// Type enumerates landlord legal types.
type Type string

// Landlord types accepted by the backend.
const (
	TypeIndividual Type = "individual"
	TypeCompany    Type = "company"
	TypeTrust      Type = "trust"
)

// Landlord is a property owner managed on behalf of the agency.
type Landlord struct {
	domain.Meta

	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             Type    `json:"type"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	CommissionRate   float64 `json:"commission_rate"`
	Currency         string  `json:"currency"`
	PaymentFrequency string  `json:"payment_frequency"`
	BankName         string  `json:"bank_name"`
	BankAccount      string  `json:"bank_account"`
	BankBranchCode   string  `json:"bank_branch_code"`
	TaxID            string  `json:"tax_id"`

	// PropertyCount is derived by the backend from owned properties.
	PropertyCount int       `json:"property_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Record is the payload shape sent on create and update. Numeric fields are
// already parsed; zero values are sent as-is (empty form fields default to 0).
type Record struct {
	Name             string  `json:"name" validate:"required"`
	Type             Type    `json:"type" validate:"oneof=individual company trust"`
	Email            string  `json:"email" validate:"omitempty,email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	CommissionRate   float64 `json:"commission_rate" validate:"gte=0,lte=100"`
	Currency         string  `json:"currency"`
	PaymentFrequency string  `json:"payment_frequency"`
	BankName         string  `json:"bank_name"`
	BankAccount      string  `json:"bank_account"`
	BankBranchCode   string  `json:"bank_branch_code"`
	TaxID            string  `json:"tax_id"`
}
