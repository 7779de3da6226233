package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/domain/manager"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/domain/unit"
	"github.com/Mutombe/propdesk/internal/domain/user"
	"github.com/Mutombe/propdesk/internal/port/backend"
)

// ---------------------------------------------------------------------------
// Generic resource call helpers
// ---------------------------------------------------------------------------

// list performs a GET against a collection endpoint, tolerating both the bare
// array and the {results, count} envelope via domain.Page.
func list[T any](ctx context.Context, c *Client, path string, p backend.ListParams) (domain.Page[T], error) {
	var page domain.Page[T]
	data, err := c.do(ctx, http.MethodGet, path, p.Values(), nil)
	if err != nil {
		return page, fmt.Errorf("list %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return page, fmt.Errorf("decode %s: %w", path, err)
	}
	return page, nil
}

func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &v, nil
}

func create[Req, T any](ctx context.Context, c *Client, path string, rec Req) (*T, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", path, err)
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &v, nil
}

func update[Req, T any](ctx context.Context, c *Client, path string, rec Req) (*T, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", path, err)
	}
	data, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &v, nil
}

func del(ctx context.Context, c *Client, path string) error {
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Landlords
// ---------------------------------------------------------------------------

func (c *Client) ListLandlords(ctx context.Context, p backend.ListParams) (domain.Page[landlord.Landlord], error) {
	return list[landlord.Landlord](ctx, c, "/api/landlords", p)
}

func (c *Client) GetLandlord(ctx context.Context, id string) (*landlord.Landlord, error) {
	return get[landlord.Landlord](ctx, c, "/api/landlords/"+id)
}

func (c *Client) CreateLandlord(ctx context.Context, rec landlord.Record) (*landlord.Landlord, error) {
	return create[landlord.Record, landlord.Landlord](ctx, c, "/api/landlords", rec)
}

func (c *Client) UpdateLandlord(ctx context.Context, id string, rec landlord.Record) (*landlord.Landlord, error) {
	return update[landlord.Record, landlord.Landlord](ctx, c, "/api/landlords/"+id, rec)
}

func (c *Client) DeleteLandlord(ctx context.Context, id string) error {
	return del(ctx, c, "/api/landlords/"+id)
}

// ---------------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------------

func (c *Client) ListProperties(ctx context.Context, p backend.ListParams) (domain.Page[property.Property], error) {
	return list[property.Property](ctx, c, "/api/properties", p)
}

func (c *Client) GetProperty(ctx context.Context, id string) (*property.Property, error) {
	return get[property.Property](ctx, c, "/api/properties/"+id)
}

func (c *Client) CreateProperty(ctx context.Context, rec property.Record) (*property.Property, error) {
	return create[property.Record, property.Property](ctx, c, "/api/properties", rec)
}

func (c *Client) UpdateProperty(ctx context.Context, id string, rec property.Record) (*property.Property, error) {
	return update[property.Record, property.Property](ctx, c, "/api/properties/"+id, rec)
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return del(ctx, c, "/api/properties/"+id)
}

// PreviewUnits asks the backend which units a property's unit definition
// would create.
func (c *Client) PreviewUnits(ctx context.Context, id string) (*property.UnitPreview, error) {
	return get[property.UnitPreview](ctx, c, "/api/properties/"+id+"/preview_units")
}

// GenerateUnits creates the units implied by a property's unit definition.
// Generation is idempotent on the backend: units that already exist are
// skipped.
func (c *Client) GenerateUnits(ctx context.Context, id string) (*property.GenerateResult, error) {
	return create[struct{}, property.GenerateResult](ctx, c, "/api/properties/"+id+"/generate_units", struct{}{})
}

// ---------------------------------------------------------------------------
// Units
// ---------------------------------------------------------------------------

func (c *Client) ListUnits(ctx context.Context, p backend.ListParams) (domain.Page[unit.Unit], error) {
	return list[unit.Unit](ctx, c, "/api/units", p)
}

func (c *Client) GetUnit(ctx context.Context, id string) (*unit.Unit, error) {
	return get[unit.Unit](ctx, c, "/api/units/"+id)
}

func (c *Client) CreateUnit(ctx context.Context, rec unit.Record) (*unit.Unit, error) {
	return create[unit.Record, unit.Unit](ctx, c, "/api/units", rec)
}

func (c *Client) UpdateUnit(ctx context.Context, id string, rec unit.Record) (*unit.Unit, error) {
	return update[unit.Record, unit.Unit](ctx, c, "/api/units/"+id, rec)
}

func (c *Client) DeleteUnit(ctx context.Context, id string) error {
	return del(ctx, c, "/api/units/"+id)
}

// ---------------------------------------------------------------------------
// Leases
// ---------------------------------------------------------------------------

func (c *Client) ListLeases(ctx context.Context, p backend.ListParams) (domain.Page[lease.Lease], error) {
	return list[lease.Lease](ctx, c, "/api/leases", p)
}

func (c *Client) GetLease(ctx context.Context, id string) (*lease.Lease, error) {
	return get[lease.Lease](ctx, c, "/api/leases/"+id)
}

func (c *Client) CreateLease(ctx context.Context, rec lease.Record) (*lease.Lease, error) {
	return create[lease.Record, lease.Lease](ctx, c, "/api/leases", rec)
}

func (c *Client) UpdateLease(ctx context.Context, id string, rec lease.Record) (*lease.Lease, error) {
	return update[lease.Record, lease.Lease](ctx, c, "/api/leases/"+id, rec)
}

func (c *Client) DeleteLease(ctx context.Context, id string) error {
	return del(ctx, c, "/api/leases/"+id)
}

// ---------------------------------------------------------------------------
// Manager assignments
// ---------------------------------------------------------------------------

func (c *Client) ListAssignments(ctx context.Context, p backend.ListParams) (domain.Page[manager.Assignment], error) {
	return list[manager.Assignment](ctx, c, "/api/property-managers", p)
}

func (c *Client) CreateAssignment(ctx context.Context, rec manager.Record) (*manager.Assignment, error) {
	return create[manager.Record, manager.Assignment](ctx, c, "/api/property-managers", rec)
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return del(ctx, c, "/api/property-managers/"+id)
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (c *Client) ListUsers(ctx context.Context, p backend.ListParams) (domain.Page[user.User], error) {
	return list[user.User](ctx, c, "/api/users", p)
}
