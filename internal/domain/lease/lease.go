// Package lease defines the lease aggregate.
package lease

import (
	"time"

	"github.com/Mutombe/propdesk/internal/domain"
)

// Status enumerates lease lifecycle states.
type Status string

// Lease statuses as reported by the backend.
const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// Lease binds a tenant to a unit for a period at an agreed rent.
type Lease struct {
	domain.Meta

	ID            string  `json:"id"`
	Tenant        string  `json:"tenant"`
	TenantName    string  `json:"tenant_name,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Property      string  `json:"property,omitempty"`
	UnitNumber    string  `json:"unit_number,omitempty"`
	MonthlyRent   float64 `json:"monthly_rent"`
	DepositAmount float64 `json:"deposit_amount"`
	Currency      string  `json:"currency"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	PaymentDay    int     `json:"payment_day"`
	Status        Status  `json:"status"`
	DocumentURL   string  `json:"document,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Record is the payload shape sent on create and update. Exactly one of Unit
// or Property may be set: an existing unit is referenced by id, otherwise the
// backend auto-creates a unit from Property + UnitNumber.
type Record struct {
	Tenant        string  `json:"tenant" validate:"required"`
	Unit          string  `json:"unit,omitempty"`
	Property      string  `json:"property,omitempty"`
	UnitNumber    string  `json:"unit_number,omitempty"`
	MonthlyRent   float64 `json:"monthly_rent" validate:"gte=0"`
	DepositAmount float64 `json:"deposit_amount" validate:"gte=0"`
	Currency      string  `json:"currency"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date"`
	PaymentDay    int     `json:"payment_day" validate:"min=1,max=28"`
	Status        Status  `json:"status,omitempty"`
}

// Active reports whether the lease currently binds its unit.
func (l *Lease) Active() bool {
	return l.Status == StatusActive
}
