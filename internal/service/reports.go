package service

import (
	"context"

	"github.com/Mutombe/propdesk/internal/domain/report"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// ReportService exposes the backend's aggregate reports. Reports are fetched
// on demand and not cached: they cover arbitrary date ranges and are viewed
// far less often than the lists.
type ReportService struct {
	api     backend.API
	mutator *query.Mutator
}

// NewReportService creates the report controller.
func NewReportService(api backend.API, mutator *query.Mutator) *ReportService {
	return &ReportService{api: api, mutator: mutator}
}

// Statement fetches the period statement of one property.
func (s *ReportService) Statement(ctx context.Context, propertyID, from, to string) (*report.Statement, error) {
	return s.api.Statement(ctx, propertyID, from, to)
}

// LandlordStatement fetches the period statement of one landlord.
func (s *ReportService) LandlordStatement(ctx context.Context, landlordID, from, to string) (*report.Statement, error) {
	return s.api.LandlordStatement(ctx, landlordID, from, to)
}

// Commission fetches the per-landlord commission summary for a period.
func (s *ReportService) Commission(ctx context.Context, from, to string) ([]report.Commission, error) {
	return s.api.Commission(ctx, from, to)
}

// AgedAnalysis fetches the aged-receivables report.
func (s *ReportService) AgedAnalysis(ctx context.Context, asOf string) (*report.AgedAnalysis, error) {
	return s.api.AgedAnalysis(ctx, asOf)
}

// IncomeExpenditure fetches the month-by-month series behind the dashboard
// charts.
func (s *ReportService) IncomeExpenditure(ctx context.Context, year int) (*report.IncomeExpenditure, error) {
	return s.api.IncomeExpenditure(ctx, year)
}

// LeaseCharges fetches the charges raised against one lease.
func (s *ReportService) LeaseCharges(ctx context.Context, leaseID string) ([]report.LeaseCharge, error) {
	return s.api.LeaseCharges(ctx, leaseID)
}
