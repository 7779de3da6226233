package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// LandlordsPage drives the landlords list.
type LandlordsPage struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger

	debounce *query.Debouncer

	mu        sync.Mutex
	params    backend.ListParams
	state     PageState
	loadErr   error
	current   domain.Page[landlord.Landlord]
	selection *Selection
}

// LandlordsView is an immutable snapshot of the page for rendering.
type LandlordsView struct {
	State    PageState           `json:"state"`
	Error    string              `json:"error,omitempty"`
	Search   string              `json:"search"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Results  []landlord.Landlord `json:"results"`
	Count    int                 `json:"count"`
	Selected []string            `json:"selected"`
}

// PortfolioStats are the dashboard aggregates for one landlord's properties,
// derived client-side from the owned-property list.
type PortfolioStats struct {
	PropertyCount int            `json:"property_count"`
	TotalUnits    int            `json:"total_units"`
	VacancyRate   float64        `json:"vacancy_rate"`
	ByType        map[string]int `json:"by_type"`
}

// LandlordDetail is the landlord detail view model: the landlord, the
// properties it owns, and portfolio aggregates for the charts.
type LandlordDetail struct {
	Landlord   landlord.Landlord   `json:"landlord"`
	Properties []property.Property `json:"properties"`
	Stats      PortfolioStats      `json:"stats"`
}

// NewLandlordsPage creates the landlords list controller.
func NewLandlordsPage(api backend.API, mutator *query.Mutator, log *slog.Logger, debounce *query.Debouncer, pageSize int) *LandlordsPage {
	return &LandlordsPage{
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

// Load fetches the page for the active params through the query cache.
func (p *LandlordsPage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.state = StateLoading
	params := p.params
	p.mu.Unlock()

	key := query.ListKey(resourceLandlords, params)
	page, err := query.List(ctx, p.mutator.Cache(), key, func(fctx context.Context) (domain.Page[landlord.Landlord], error) {
		return p.api.ListLandlords(fctx, params)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.loadErr = err
		p.log.Error("landlords load failed", "error", err, "search", params.Search)
		return err
	}
	p.state = StateSuccess
	p.loadErr = nil
	p.current = page
	return nil
}

// SetSearch feeds the search box through the debounce, resetting pagination
// and selection when it applies.
func (p *LandlordsPage) SetSearch(ctx context.Context, q string) {
	p.debounce.Do(func() {
		p.mu.Lock()
		p.params.Search = q
		p.params.Page = 1
		p.selection.Clear()
		p.mu.Unlock()
		_ = p.Load(ctx)
	})
}

// SetPage moves to a page.
func (p *LandlordsPage) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.params.Page = page
	p.mu.Unlock()
	return p.Load(ctx)
}

// View returns a snapshot of the page for rendering.
func (p *LandlordsPage) View() LandlordsView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := LandlordsView{
		State:    p.state,
		Search:   p.params.Search,
		Page:     p.params.Page,
		PageSize: p.params.PageSize,
		Results:  p.current.Results,
		Count:    p.current.Count,
		Selected: p.selection.IDs(),
	}
	if p.loadErr != nil {
		v.Error = p.loadErr.Error()
	}
	return v
}

// Create submits a new landlord with an optimistic placeholder row.
func (p *LandlordsPage) Create(ctx context.Context, rec landlord.Record) error {
	placeholder := landlord.Landlord{
		ID:             query.PlaceholderID(),
		Name:           rec.Name,
		Type:           rec.Type,
		Email:          rec.Email,
		Phone:          rec.Phone,
		CommissionRate: rec.CommissionRate,
		Currency:       rec.Currency,
	}
	placeholder.Optimistic = true

	return p.mutator.Do(ctx, query.Mutation{
		Source:    "landlord.create",
		Resources: []string{resourceLandlords},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, p.mutator.Cache(), resourceLandlords, func(pg domain.Page[landlord.Landlord]) domain.Page[landlord.Landlord] {
				pg.Results = append(pg.Results, placeholder)
				pg.Count++
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := p.api.CreateLandlord(cctx, rec)
			return err
		},
		Success: "Landlord created",
	})
}

// Update submits changes to an existing landlord.
func (p *LandlordsPage) Update(ctx context.Context, id string, rec landlord.Record) error {
	return p.mutator.Do(ctx, query.Mutation{
		Source:    "landlord.update",
		Resources: []string{resourceLandlords},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, p.mutator.Cache(), resourceLandlords, func(pg domain.Page[landlord.Landlord]) domain.Page[landlord.Landlord] {
				for i := range pg.Results {
					if pg.Results[i].ID == id {
						pg.Results[i].Name = rec.Name
						pg.Results[i].Type = rec.Type
						pg.Results[i].Email = rec.Email
						pg.Results[i].Phone = rec.Phone
						pg.Results[i].CommissionRate = rec.CommissionRate
						pg.Results[i].Optimistic = true
					}
				}
				return pg
			})
		},
		Call: func(cctx context.Context) error {
			_, err := p.api.UpdateLandlord(cctx, id, rec)
			return err
		},
		Success: "Landlord updated",
	})
}

// Delete removes one landlord.
func (p *LandlordsPage) Delete(ctx context.Context, id string) error {
	return p.mutator.Do(ctx, query.Mutation{
		Source:    "landlord.delete",
		Resources: []string{resourceLandlords},
		Optimistic: func(octx context.Context) {
			query.PatchAll(octx, p.mutator.Cache(), resourceLandlords, func(pg domain.Page[landlord.Landlord]) domain.Page[landlord.Landlord] {
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
			return p.api.DeleteLandlord(cctx, id)
		},
		Success: "Landlord deleted",
	})
}

// Detail builds the landlord detail view model: entity, owned properties and
// portfolio aggregates.
func (p *LandlordsPage) Detail(ctx context.Context, id string) (*LandlordDetail, error) {
	ll, err := query.Get(ctx, p.mutator.Cache(), query.DetailKey(resourceLandlords, id), func(fctx context.Context) (*landlord.Landlord, error) {
		return p.api.GetLandlord(fctx, id)
	})
	if err != nil {
		return nil, err
	}

	params := backend.ListParams{Filters: map[string]string{"landlord": id}}
	owned, err := query.List(ctx, p.mutator.Cache(), query.ListKey(resourceProperties, params), func(fctx context.Context) (domain.Page[property.Property], error) {
		return p.api.ListProperties(fctx, params)
	})
	if err != nil {
		return nil, err
	}

	return &LandlordDetail{
		Landlord:   *ll,
		Properties: owned.Results,
		Stats:      portfolioStats(owned.Results),
	}, nil
}

// portfolioStats aggregates owned properties for the detail dashboard. The
// vacancy rate is unit-weighted across properties that report units.
func portfolioStats(props []property.Property) PortfolioStats {
	stats := PortfolioStats{
		PropertyCount: len(props),
		ByType:        make(map[string]int),
	}
	var weighted float64
	for _, pr := range props {
		stats.TotalUnits += pr.UnitCount
		stats.ByType[string(pr.PropertyType)]++
		weighted += pr.VacancyRate * float64(pr.UnitCount)
	}
	if stats.TotalUnits > 0 {
		stats.VacancyRate = weighted / float64(stats.TotalUnits)
	}
	return stats
}
