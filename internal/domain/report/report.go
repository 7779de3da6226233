// Package report defines the aggregate JSON shapes returned by the backend's
// reporting endpoints.
package report

// StatementLine is one row of a property or landlord statement.
type StatementLine struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Balance     float64 `json:"balance"`
}

// Statement is a period statement for a property or landlord.
type Statement struct {
	Reference    string          `json:"reference"`
	PeriodStart  string          `json:"period_start"`
	PeriodEnd    string          `json:"period_end"`
	Currency     string          `json:"currency"`
	OpeningTotal float64         `json:"opening_total"`
	ClosingTotal float64         `json:"closing_total"`
	Lines        []StatementLine `json:"lines"`
}

// Commission summarises commission earned per landlord over a period.
type Commission struct {
	Landlord       string  `json:"landlord"`
	LandlordName   string  `json:"landlord_name"`
	RentCollected  float64 `json:"rent_collected"`
	CommissionRate float64 `json:"commission_rate"`
	CommissionDue  float64 `json:"commission_due"`
}

// AgedBucket is one ageing bucket of outstanding tenant balances.
type AgedBucket struct {
	Label  string  `json:"label"` // e.g. "current", "30", "60", "90+"
	Amount float64 `json:"amount"`
}

// AgedAnalysis is the aged-receivables report.
type AgedAnalysis struct {
	AsOf    string       `json:"as_of"`
	Total   float64      `json:"total"`
	Buckets []AgedBucket `json:"buckets"`
}

// IncomeExpenditure is a month-by-month income vs expenditure series used by
// the dashboard charts.
type IncomeExpenditure struct {
	Months      []string  `json:"months"`
	Income      []float64 `json:"income"`
	Expenditure []float64 `json:"expenditure"`
}

// LeaseCharge is one recurring or ad-hoc charge raised against a lease.
type LeaseCharge struct {
	Lease       string  `json:"lease"`
	UnitNumber  string  `json:"unit_number"`
	TenantName  string  `json:"tenant_name"`
	ChargeType  string  `json:"charge_type"`
	Amount      float64 `json:"amount"`
	RaisedAt    string  `json:"raised_at"`
	SettledAt   string  `json:"settled_at,omitempty"`
	Outstanding float64 `json:"outstanding"`
}
