package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/manager"
	"github.com/Mutombe/propdesk/internal/domain/user"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// ManagerFlow drives the manager-assignment sub-flow on the property detail
// page. Candidates are derived client-side by filtering the staff list
// against the property's current assignments, and a second primary manager is
// rejected before it reaches the backend.
type ManagerFlow struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger
}

// NewManagerFlow creates the manager-assignment controller.
func NewManagerFlow(api backend.API, mutator *query.Mutator, log *slog.Logger) *ManagerFlow {
	return &ManagerFlow{api: api, mutator: mutator, log: log}
}

// Assignments lists the manager assignments of one property.
func (m *ManagerFlow) Assignments(ctx context.Context, propertyID string) ([]manager.Assignment, error) {
	params := backend.ListParams{Filters: map[string]string{"property": propertyID}}
	page, err := query.List(ctx, m.mutator.Cache(), query.ListKey(resourceManagers, params), func(fctx context.Context) (domain.Page[manager.Assignment], error) {
		return m.api.ListAssignments(fctx, params)
	})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Candidates returns the staff users not yet assigned to the property.
func (m *ManagerFlow) Candidates(ctx context.Context, propertyID string) ([]user.User, error) {
	assignments, err := m.Assignments(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.User] = true
	}

	staff, err := query.List(ctx, m.mutator.Cache(), query.ListKey(resourceUsers, backend.ListParams{}), func(fctx context.Context) (domain.Page[user.User], error) {
		return m.api.ListUsers(fctx, backend.ListParams{})
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]user.User, 0, len(staff.Results))
	for _, u := range staff.Results {
		if !assigned[u.ID] {
			candidates = append(candidates, u)
		}
	}
	return candidates, nil
}

// Assign creates a manager assignment. Assigning a second primary manager to
// a property is rejected with a validation error.
func (m *ManagerFlow) Assign(ctx context.Context, rec manager.Record) error {
	if rec.IsPrimary {
		assignments, err := m.Assignments(ctx, rec.Property)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			if a.IsPrimary {
				return fmt.Errorf("%w: property already has a primary manager (%s)", domain.ErrValidation, a.UserName)
			}
		}
	}

	return m.mutator.Do(ctx, query.Mutation{
		Source:    "manager.assign",
		Resources: []string{resourceManagers},
		Call: func(cctx context.Context) error {
			_, err := m.api.CreateAssignment(cctx, rec)
			return err
		},
		Success: "Manager assigned",
	})
}

// Remove deletes one assignment by its association id.
func (m *ManagerFlow) Remove(ctx context.Context, assignmentID string) error {
	return m.mutator.Do(ctx, query.Mutation{
		Source:    "manager.remove",
		Resources: []string{resourceManagers},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, m.mutator.Cache(), resourceManagers, func(pg domain.Page[manager.Assignment]) domain.Page[manager.Assignment] {
				kept := pg.Results[:0]
				for _, row := range pg.Results {
					if row.ID == assignmentID {
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
			return m.api.DeleteAssignment(cctx, assignmentID)
		},
		Success: "Manager removed",
	})
}
