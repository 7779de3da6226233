package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/port/notifier"
	"github.com/Mutombe/propdesk/internal/query"
)

// PageState is the lifecycle state of a list page.
type PageState string

// List page states.
const (
	StateIdle    PageState = "idle"
	StateLoading PageState = "loading"
	StateSuccess PageState = "success"
	StateError   PageState = "error"
)

// bulkDeleteWorkers bounds the parallelism of best-effort bulk deletes.
const bulkDeleteWorkers = 4

// BulkFailure records one id a bulk operation could not process.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult is the structured outcome of a bulk delete. Partial failures are
// reported per id instead of being folded into an over-reported success count.
type BulkResult struct {
	Deleted []string      `json:"deleted"`
	Failed  []BulkFailure `json:"failed"`
}

// PropertiesPage drives the properties list: debounced search, filters,
// pagination, page-scoped selection, CRUD through the optimistic mutator, and
// best-effort bulk delete.
type PropertiesPage struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger

	debounce *query.Debouncer

	mu        sync.Mutex
	params    backend.ListParams
	state     PageState
	loadErr   error
	current   domain.Page[property.Property]
	selection *Selection
}

// PropertiesView is an immutable snapshot of the page for rendering.
type PropertiesView struct {
	State    PageState           `json:"state"`
	Error    string              `json:"error,omitempty"`
	Search   string              `json:"search"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Filters  map[string]string   `json:"filters,omitempty"`
	Results  []property.Property `json:"results"`
	Count    int                 `json:"count"`
	Selected []string            `json:"selected"`
}

// NewPropertiesPage creates the properties list controller.
func NewPropertiesPage(api backend.API, mutator *query.Mutator, log *slog.Logger, debounce *query.Debouncer, pageSize int) *PropertiesPage {
	return &PropertiesPage{
		api:      api,
		mutator:  mutator,
		log:      log,
		debounce: debounce,
		params: backend.ListParams{
			Page:     1,
			PageSize: pageSize,
			Filters:  make(map[string]string),
		},
		state:     StateIdle,
		selection: NewSelection(),
	}
}

// Load fetches the page for the active params through the query cache and
// transitions idle|loading -> success|error.
func (p *PropertiesPage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.state = StateLoading
	params := p.params
	p.mu.Unlock()

	key := query.ListKey(resourceProperties, params)
	page, err := query.List(ctx, p.mutator.Cache(), key, func(fctx context.Context) (domain.Page[property.Property], error) {
		return p.api.ListProperties(fctx, params)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.loadErr = err
		p.log.Error("properties load failed", "error", err, "search", params.Search, "page", params.Page)
		return err
	}
	p.state = StateSuccess
	p.loadErr = nil
	p.current = page
	return nil
}

// SetSearch feeds the search box. The new text only reaches the query key
// after the debounce delay; applying it resets pagination to page 1 and
// clears the selection.
func (p *PropertiesPage) SetSearch(ctx context.Context, q string) {
	p.debounce.Do(func() {
		p.mu.Lock()
		p.params.Search = q
		p.params.Page = 1
		p.selection.Clear()
		p.mu.Unlock()
		_ = p.Load(ctx)
	})
}

// SetFilter applies a filter value, resetting pagination and selection.
func (p *PropertiesPage) SetFilter(ctx context.Context, key, value string) error {
	p.mu.Lock()
	if value == "" {
		delete(p.params.Filters, key)
	} else {
		p.params.Filters[key] = value
	}
	p.params.Page = 1
	p.selection.Clear()
	p.mu.Unlock()
	return p.Load(ctx)
}

// SetPage moves to a page. The selection carries over: it still addresses
// confirmed ids, and bulk actions operate on ids rather than row positions.
func (p *PropertiesPage) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.params.Page = page
	p.mu.Unlock()
	return p.Load(ctx)
}

// Toggle flips one row's selection. Optimistic placeholders are not
// selectable.
func (p *PropertiesPage) Toggle(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, row := range p.current.Results {
		if row.ID == id {
			if row.Optimistic {
				return
			}
			p.selection.Toggle(id)
			return
		}
	}
}

// SelectAll selects every confirmed row on the current page.
func (p *PropertiesPage) SelectAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.current.Results))
	for _, row := range p.current.Results {
		if !row.Optimistic {
			ids = append(ids, row.ID)
		}
	}
	p.selection.Set(ids)
}

// ClearSelection empties the selection.
func (p *PropertiesPage) ClearSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Clear()
}

// View returns a snapshot of the page for rendering.
func (p *PropertiesPage) View() PropertiesView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := PropertiesView{
		State:    p.state,
		Search:   p.params.Search,
		Page:     p.params.Page,
		PageSize: p.params.PageSize,
		Results:  p.current.Results,
		Count:    p.current.Count,
		Selected: p.selection.IDs(),
	}
	if len(p.params.Filters) > 0 {
		v.Filters = make(map[string]string, len(p.params.Filters))
		for k, val := range p.params.Filters {
			v.Filters[k] = val
		}
	}
	if p.loadErr != nil {
		v.Error = p.loadErr.Error()
	}
	return v
}

// Create submits a new property through the optimistic mutator. Until the
// backend confirms, every cached properties page shows one extra placeholder
// row flagged optimistic.
func (p *PropertiesPage) Create(ctx context.Context, rec property.Record) error {
	placeholder := property.Property{
		ID:             query.PlaceholderID(),
		Name:           rec.Name,
		Landlord:       rec.Landlord,
		PropertyType:   rec.PropertyType,
		Address:        rec.Address,
		City:           rec.City,
		TotalUnits:     rec.TotalUnits,
		UnitDefinition: rec.UnitDefinition,
	}
	placeholder.Optimistic = true

	return p.mutator.Do(ctx, query.Mutation{
		Source:    "property.create",
		Resources: []string{resourceProperties},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, p.mutator.Cache(), resourceProperties, func(pg domain.Page[property.Property]) domain.Page[property.Property] {
				pg.Results = append(pg.Results, placeholder)
				pg.Count++
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := p.api.CreateProperty(cctx, rec)
			return err
		},
		Success: "Property created",
	})
}

// Update submits changes to an existing property, patching the cached row in
// place until confirmation.
func (p *PropertiesPage) Update(ctx context.Context, id string, rec property.Record) error {
	return p.mutator.Do(ctx, query.Mutation{
		Source:    "property.update",
		Resources: []string{resourceProperties},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, p.mutator.Cache(), resourceProperties, func(pg domain.Page[property.Property]) domain.Page[property.Property] {
				for i := range pg.Results {
					if pg.Results[i].ID == id {
						applyPropertyRecord(&pg.Results[i], rec)
						pg.Results[i].Optimistic = true
					}
				}
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := p.api.UpdateProperty(cctx, id, rec)
			return err
		},
		Success: "Property updated",
	})
}

// Delete removes one property, removing the cached row until confirmation.
func (p *PropertiesPage) Delete(ctx context.Context, id string) error {
	err := p.mutator.Do(ctx, query.Mutation{
		Source:    "property.delete",
		Resources: []string{resourceProperties},
		Optimistic: func(octx context.Context) {
			removeCachedProperty(octx, p.mutator.Cache(), id)
		},
		Call: func(cctx context.Context) error {
			return p.api.DeleteProperty(cctx, id)
		},
		Success: "Property deleted",
	})
	if err == nil {
		p.mu.Lock()
		p.selection.Remove(id)
		p.mu.Unlock()
	}
	return err
}

// BulkDelete deletes every selected id with independent best-effort calls.
// One failing id does not block the rest; the outcome reports deleted and
// failed ids separately, and the cache drops exactly the rows that were
// actually deleted.
func (p *PropertiesPage) BulkDelete(ctx context.Context) (BulkResult, error) {
	p.mu.Lock()
	ids := p.selection.IDs()
	p.mu.Unlock()
	if len(ids) == 0 {
		return BulkResult{}, fmt.Errorf("%w: nothing selected", domain.ErrValidation)
	}

	p.mutator.Cache().CancelReads(resourceProperties)

	var (
		resMu  sync.Mutex
		result BulkResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteWorkers)
	for _, id := range ids {
		g.Go(func() error {
			err := p.api.DeleteProperty(gctx, id)
			resMu.Lock()
			defer resMu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: reason(err)})
				return nil
			}
			result.Deleted = append(result.Deleted, id)
			return nil
		})
	}
	_ = g.Wait()

	for _, id := range result.Deleted {
		removeCachedProperty(ctx, p.mutator.Cache(), id)
	}

	p.mu.Lock()
	p.selection.Clear()
	p.mu.Unlock()

	n := notifier.Notification{
		Title:  fmt.Sprintf("Deleted %d properties", len(result.Deleted)),
		Level:  notifier.LevelSuccess,
		Source: "property.bulk_delete",
	}
	if len(result.Failed) > 0 {
		n.Level = notifier.LevelError
		n.Message = fmt.Sprintf("%d of %d failed", len(result.Failed), len(ids))
	}
	p.mutator.Notify(ctx, n)
	p.mutator.Cache().Invalidate(ctx, resourceProperties)

	p.log.Info("bulk delete finished",
		"requested", len(ids), "deleted", len(result.Deleted), "failed", len(result.Failed))
	return result, nil
}

// ExportCSV writes the confirmed rows of the current page as CSV.
func (p *PropertiesPage) ExportCSV(w io.Writer) error {
	p.mu.Lock()
	rows := make([]property.Property, 0, len(p.current.Results))
	for _, row := range p.current.Results {
		if !row.Optimistic {
			rows = append(rows, row)
		}
	}
	p.mu.Unlock()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "landlord", "type", "city", "units", "vacancy_rate"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.ID,
			row.Name,
			row.LandlordName,
			string(row.PropertyType),
			row.City,
			strconv.Itoa(row.UnitCount),
			strconv.FormatFloat(row.VacancyRate, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func applyPropertyRecord(dst *property.Property, rec property.Record) {
	dst.Name = rec.Name
	dst.Landlord = rec.Landlord
	dst.PropertyType = rec.PropertyType
	dst.Address = rec.Address
	dst.City = rec.City
	dst.TotalUnits = rec.TotalUnits
	dst.UnitDefinition = rec.UnitDefinition
}

func removeCachedProperty(ctx context.Context, c *query.Cache, id string) {
	query.PatchAll(ctx, c, resourceProperties, func(pg domain.Page[property.Property]) domain.Page[property.Property] {
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
}

// reason extracts the user-facing message from a backend error.
func reason(err error) string {
	var r interface{ Reason() string }
	if errors.As(err, &r) {
		return r.Reason()
	}
	return err.Error()
}
