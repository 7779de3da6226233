package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// LeaseService drives lease CRUD and document upload.
type LeaseService struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger
}

// NewLeaseService creates the lease controller.
func NewLeaseService(api backend.API, mutator *query.Mutator, log *slog.Logger) *LeaseService {
	return &LeaseService{api: api, mutator: mutator, log: log}
}

// List fetches leases for the given params through the query cache.
func (s *LeaseService) List(ctx context.Context, params backend.ListParams) (domain.Page[lease.Lease], error) {
	return query.List(ctx, s.mutator.Cache(), query.ListKey(resourceLeases, params), func(fctx context.Context) (domain.Page[lease.Lease], error) {
		return s.api.ListLeases(fctx, params)
	})
}

// Get fetches one lease through the query cache.
func (s *LeaseService) Get(ctx context.Context, id string) (*lease.Lease, error) {
	return query.Get(ctx, s.mutator.Cache(), query.DetailKey(resourceLeases, id), func(fctx context.Context) (*lease.Lease, error) {
		return s.api.GetLease(fctx, id)
	})
}

// Create submits a new lease. A lease changes unit occupancy, so unit caches
// are part of the affected resources.
func (s *LeaseService) Create(ctx context.Context, rec lease.Record) error {
	placeholder := lease.Lease{
		ID:            query.PlaceholderID(),
		Tenant:        rec.Tenant,
		Unit:          rec.Unit,
		Property:      rec.Property,
		UnitNumber:    rec.UnitNumber,
		MonthlyRent:   rec.MonthlyRent,
		DepositAmount: rec.DepositAmount,
		Currency:      rec.Currency,
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		PaymentDay:    rec.PaymentDay,
		Status:        rec.Status,
	}
	placeholder.Optimistic = true

	return s.mutator.Do(ctx, query.Mutation{
		Source:    "lease.create",
		Resources: []string{resourceLeases, resourceUnits},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceLeases, func(pg domain.Page[lease.Lease]) domain.Page[lease.Lease] {
				pg.Results = append(pg.Results, placeholder)
				pg.Count++
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := s.api.CreateLease(cctx, rec)
			return err
		},
		Success: "Lease created",
	})
}

// CreateWithDocument submits a new lease and then uploads its document. The
// upload is a follow-up call against the created lease, so the mutation only
// succeeds when both steps do.
func (s *LeaseService) CreateWithDocument(ctx context.Context, rec lease.Record, filename string, document io.Reader) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "lease.create",
		Resources: []string{resourceLeases, resourceUnits},
		Call: func(cctx context.Context) error {
			created, err := s.api.CreateLease(cctx, rec)
			if err != nil {
				return err
			}
			_, err = s.api.UploadLeaseDocument(cctx, created.ID, filename, document)
			return err
		},
		Success: "Lease created",
	})
}

// Update submits changes to an existing lease.
func (s *LeaseService) Update(ctx context.Context, id string, rec lease.Record) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "lease.update",
		Resources: []string{resourceLeases, resourceUnits},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceLeases, func(pg domain.Page[lease.Lease]) domain.Page[lease.Lease] {
				for i := range pg.Results {
					if pg.Results[i].ID == id {
						pg.Results[i].MonthlyRent = rec.MonthlyRent
						pg.Results[i].DepositAmount = rec.DepositAmount
						pg.Results[i].StartDate = rec.StartDate
						pg.Results[i].EndDate = rec.EndDate
						pg.Results[i].PaymentDay = rec.PaymentDay
						if rec.Status != "" {
							pg.Results[i].Status = rec.Status
						}
						pg.Results[i].Optimistic = true
					}
				}
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := s.api.UpdateLease(cctx, id, rec)
			return err
		},
		Success: "Lease updated",
	})
}

// Delete removes one lease.
func (s *LeaseService) Delete(ctx context.Context, id string) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "lease.delete",
		Resources: []string{resourceLeases, resourceUnits},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, s.mutator.Cache(), resourceLeases, func(pg domain.Page[lease.Lease]) domain.Page[lease.Lease] {
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
			return s.api.DeleteLease(cctx, id)
		},
		Success: "Lease deleted",
	})
}

// UploadDocument attaches a document to an existing lease.
func (s *LeaseService) UploadDocument(ctx context.Context, id, filename string, document io.Reader) error {
	return s.mutator.Do(ctx, query.Mutation{
		Source:    "lease.upload",
		Resources: []string{resourceLeases},
		Call: func(cctx context.Context) error {
			_, err := s.api.UploadLeaseDocument(cctx, id, filename, document)
			return err
		},
		Success: "Document uploaded",
	})
}
