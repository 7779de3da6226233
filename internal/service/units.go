package service

import (
	"context"
	"log/slog"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/domain/unit"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// UnitService drives the unit detail view and unit CRUD.
type UnitService struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger
}

// UnitDetail is the unit detail view model: the unit, its active lease and
// the full lease history.
type UnitDetail struct {
	Unit         unit.Unit     `json:"unit"`
	ActiveLease  *lease.Lease  `json:"active_lease,omitempty"`
	LeaseHistory []lease.Lease `json:"lease_history"`
}

// NewUnitService creates the unit controller.
func NewUnitService(api backend.API, mutator *query.Mutator, log *slog.Logger) *UnitService {
	return &UnitService{api: api, mutator: mutator, log: log}
}

// List fetches units for the given params through the query cache.
func (s *UnitService) List(ctx context.Context, params backend.ListParams) (domain.Page[unit.Unit], error) {
	return query.List(ctx, s.mutator.Cache(), query.ListKey(resourceUnits, params), func(fctx context.Context) (domain.Page[unit.Unit], error) {
		return s.api.ListUnits(fctx, params)
	})
}

// Detail builds the unit detail view model. Occupancy follows the active
// lease; the history lists every lease the unit has had, newest first as the
// backend returns them.
func (s *UnitService) Detail(ctx context.Context, id string) (*UnitDetail, error) {
	u, err := query.Get(ctx, s.mutator.Cache(), query.DetailKey(resourceUnits, id), func(fctx context.Context) (*unit.Unit, error) {
		return s.api.GetUnit(fctx, id)
	})
	if err != nil {
		return nil, err
	}

	params := backend.ListParams{Filters: map[string]string{"unit": id}}
	history, err := query.List(ctx, s.mutator.Cache(), query.ListKey(resourceLeases, params), func(fctx context.Context) (domain.Page[lease.Lease], error) {
		return s.api.ListLeases(fctx, params)
	})
	if err != nil {
		return nil, err
	}

	detail := &UnitDetail{Unit: *u, LeaseHistory: history.Results}
	if u.ActiveLease != nil {
		detail.ActiveLease = u.ActiveLease
	} else {
		for i := range history.Results {
			if history.Results[i].Active() {
				detail.ActiveLease = &history.Results[i]
				break
			}
		}
	}
	return detail, nil
}

// Create submits a new unit with an optimistic placeholder row. Unit
// mutations also touch the properties resource: unit counts and vacancy rates
// are derived from units.
func (s *UnitService) Create(ctx context.Context, rec unit.Record) error {
	placeholder := unit.Unit{
		ID:            query.PlaceholderID(),
		UnitNumber:    rec.UnitNumber,
		Property:      rec.Property,
		UnitType:      rec.UnitType,
		RentalAmount:  rec.RentalAmount,
		DepositAmount: rec.DepositAmount,
		Currency:      rec.Currency,
	}
	placeholder.Optimistic = true

	return s.mutator.Do(ctx, query.Mutation{
		Source:    "unit.create",
		Resources: []string{resourceUnits, resourceProperties},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceUnits, func(pg domain.Page[unit.Unit]) domain.Page[unit.Unit] {
				pg.Results = append(pg.Results, placeholder)
				pg.Count++
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := s.api.CreateUnit(cctx, rec)
			return err
		},
		Success: "Unit created",
	})
}

// Update submits changes to an existing unit.
func (s *UnitService) Update(ctx context.Context, id string, rec unit.Record) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "unit.update",
		Resources: []string{resourceUnits, resourceProperties},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceUnits, func(pg domain.Page[unit.Unit]) domain.Page[unit.Unit] {
				for i := range pg.Results {
					if pg.Results[i].ID == id {
						pg.Results[i].UnitNumber = rec.UnitNumber
						pg.Results[i].UnitType = rec.UnitType
						pg.Results[i].RentalAmount = rec.RentalAmount
						pg.Results[i].DepositAmount = rec.DepositAmount
						pg.Results[i].Optimistic = true
					}
				}
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := s.api.UpdateUnit(cctx, id, rec)
			return err
		},
		Success: "Unit updated",
	})
}

// Delete removes one unit.
func (s *UnitService) Delete(ctx context.Context, id string) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "unit.delete",
		Resources: []string{resourceUnits, resourceProperties},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceUnits, func(pg domain.Page[unit.Unit]) domain.Page[unit.Unit] {
				kept := pg.Results[:0]
				for _, row := range pg.Results {
					if row.ID == id {
						pg.Count--
						continue
					}
					kept = append(kept, row)
				}
				pg.Results = kept
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			return s.api.DeleteUnit(cctx, id)
		},
		Success: "Unit deleted",
	})
}
