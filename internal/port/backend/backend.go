// Package backend defines the port interfaces over the external
// property-management REST API. The backend owns all authoritative state; the
// application only caches what these operations return.
package backend

import (
	"context"
	"io"
	"net/url"
	"sort"
	"strconv"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/domain/manager"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/domain/report"
	"github.com/Mutombe/propdesk/internal/domain/unit"
	"github.com/Mutombe/propdesk/internal/domain/user"
)

// ListParams are the filter parameters accepted by list endpoints. They also
// form part of the query-cache key, so Encode must be deterministic.
type ListParams struct {
	Search   string
	Page     int
	PageSize int
	Filters  map[string]string
}

// Values converts the params to URL query values.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	for k, val := range p.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Encode returns a canonical (sorted) query-string form of the params.
func (p ListParams) Encode() string {
	v := p.Values()
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out url.Values = url.Values{}
	for _, k := range keys {
		out[k] = v[k]
	}
	return out.Encode()
}

// Landlords is the landlord resource surface.
type Landlords interface {
	ListLandlords(ctx context.Context, p ListParams) (domain.Page[landlord.Landlord], error)
	GetLandlord(ctx context.Context, id string) (*landlord.Landlord, error)
	CreateLandlord(ctx context.Context, rec landlord.Record) (*landlord.Landlord, error)
	UpdateLandlord(ctx context.Context, id string, rec landlord.Record) (*landlord.Landlord, error)
	DeleteLandlord(ctx context.Context, id string) error
}

// Properties is the property resource surface, including the custom
// unit-generation endpoints.
type Properties interface {
	ListProperties(ctx context.Context, p ListParams) (domain.Page[property.Property], error)
	GetProperty(ctx context.Context, id string) (*property.Property, error)
	CreateProperty(ctx context.Context, rec property.Record) (*property.Property, error)
	UpdateProperty(ctx context.Context, id string, rec property.Record) (*property.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	PreviewUnits(ctx context.Context, id string) (*property.UnitPreview, error)
	GenerateUnits(ctx context.Context, id string) (*property.GenerateResult, error)
}

// Units is the unit resource surface.
type Units interface {
	ListUnits(ctx context.Context, p ListParams) (domain.Page[unit.Unit], error)
	GetUnit(ctx context.Context, id string) (*unit.Unit, error)
	CreateUnit(ctx context.Context, rec unit.Record) (*unit.Unit, error)
	UpdateUnit(ctx context.Context, id string, rec unit.Record) (*unit.Unit, error)
	DeleteUnit(ctx context.Context, id string) error
}

// Leases is the lease resource surface, including document upload.
type Leases interface {
	ListLeases(ctx context.Context, p ListParams) (domain.Page[lease.Lease], error)
	GetLease(ctx context.Context, id string) (*lease.Lease, error)
	CreateLease(ctx context.Context, rec lease.Record) (*lease.Lease, error)
	UpdateLease(ctx context.Context, id string, rec lease.Record) (*lease.Lease, error)
	DeleteLease(ctx context.Context, id string) error

	// UploadLeaseDocument sends the document as a multipart form with a
	// binary field named "document".
	UploadLeaseDocument(ctx context.Context, id, filename string, document io.Reader) (*lease.Lease, error)
}

// Managers is the property-manager association surface.
type Managers interface {
	ListAssignments(ctx context.Context, p ListParams) (domain.Page[manager.Assignment], error)
	CreateAssignment(ctx context.Context, rec manager.Record) (*manager.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

// Users lists staff users eligible for assignment.
type Users interface {
	ListUsers(ctx context.Context, p ListParams) (domain.Page[user.User], error)
}

// Reports is the aggregate reporting surface.
type Reports interface {
	Statement(ctx context.Context, propertyID, from, to string) (*report.Statement, error)
	LandlordStatement(ctx context.Context, landlordID, from, to string) (*report.Statement, error)
	Commission(ctx context.Context, from, to string) ([]report.Commission, error)
	AgedAnalysis(ctx context.Context, asOf string) (*report.AgedAnalysis, error)
	IncomeExpenditure(ctx context.Context, year int) (*report.IncomeExpenditure, error)
	LeaseCharges(ctx context.Context, leaseID string) ([]report.LeaseCharge, error)
}

// Files is the binary file surface.
type Files interface {
	// DownloadImportTemplate fetches the import spreadsheet template for a
	// resource as a binary blob.
	DownloadImportTemplate(ctx context.Context, resource string) ([]byte, error)
}

// API aggregates the full backend surface.
type API interface {
	Landlords
	Properties
	Units
	Leases
	Managers
	Users
	Reports
	Files
}
