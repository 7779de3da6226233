package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Mutombe/propdesk/internal/domain/report"
)

// reportQuery performs a GET against a reporting endpoint and decodes the
// aggregate JSON payload.
func reportQuery[T any](ctx context.Context, c *Client, path string, q url.Values) (*T, error) {
	data, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &v, nil
}

func periodQuery(from, to string) url.Values {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q
}

// Statement fetches the property statement for a period.
func (c *Client) Statement(ctx context.Context, propertyID, from, to string) (*report.Statement, error) {
	q := periodQuery(from, to)
	q.Set("property", propertyID)
	return reportQuery[report.Statement](ctx, c, "/api/reports/statement", q)
}

// LandlordStatement fetches the landlord statement for a period.
func (c *Client) LandlordStatement(ctx context.Context, landlordID, from, to string) (*report.Statement, error) {
	q := periodQuery(from, to)
	q.Set("landlord", landlordID)
	return reportQuery[report.Statement](ctx, c, "/api/reports/landlord-statement", q)
}

// Commission fetches per-landlord commission figures for a period.
func (c *Client) Commission(ctx context.Context, from, to string) ([]report.Commission, error) {
	rows, err := reportQuery[[]report.Commission](ctx, c, "/api/reports/commission", periodQuery(from, to))
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

// AgedAnalysis fetches the aged-receivables report.
func (c *Client) AgedAnalysis(ctx context.Context, asOf string) (*report.AgedAnalysis, error) {
	q := url.Values{}
	if asOf != "" {
		q.Set("as_of", asOf)
	}
	return reportQuery[report.AgedAnalysis](ctx, c, "/api/reports/aged-analysis", q)
}

// IncomeExpenditure fetches the monthly income vs expenditure series.
func (c *Client) IncomeExpenditure(ctx context.Context, year int) (*report.IncomeExpenditure, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return reportQuery[report.IncomeExpenditure](ctx, c, "/api/reports/income-expenditure", q)
}

// LeaseCharges fetches the charges raised against a lease.
func (c *Client) LeaseCharges(ctx context.Context, leaseID string) ([]report.LeaseCharge, error) {
	q := url.Values{}
	q.Set("lease", leaseID)
	rows, err := reportQuery[[]report.LeaseCharge](ctx, c, "/api/reports/lease-charges", q)
	if err != nil {
		return nil, err
	}
	return *rows, nil
}
