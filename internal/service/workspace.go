// Package service holds the page controllers and sub-flows that sit between
// the HTTP surface and the query layer: list/detail pages with search,
// pagination and selection, the unit-generation and manager-assignment flows,
// reports, and file export.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
)

// Cache resource names. Every cache key, invalidation and snapshot is scoped
// by one of these.
const (
	resourceLandlords  = "landlords"
	resourceProperties = "properties"
	resourceUnits      = "units"
	resourceLeases     = "leases"
	resourceManagers   = "managers"
	resourceUsers      = "users"
)

// Workspace wires the backend, the query layer and the page controllers for
// one running desk. The application is single-desk: one Workspace serves the
// whole process, and its context bounds every mutation's completion side
// effects.
type Workspace struct {
	ctx    context.Context
	cancel context.CancelFunc

	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger

	Properties *PropertiesPage
	Landlords  *LandlordsPage
	Units      *UnitService
	Leases     *LeaseService
	Generation *GenerationFlow
	Managers   *ManagerFlow
	Reports    *ReportService
	Export     *ExportService
}

// Options tunes workspace behavior.
type Options struct {
	// DebounceDelay is the search-input debounce. Zero means 300ms.
	DebounceDelay time.Duration

	// PageSize is the default list page size. Zero means 20.
	PageSize int

	// ExportDir is where exported files (import templates, CSV) are saved.
	ExportDir string
}

func (o *Options) defaults() {
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = 300 * time.Millisecond
	}
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
	if o.ExportDir == "" {
		o.ExportDir = "."
	}
}

// NewWorkspace builds a workspace over the given backend and mutator.
func NewWorkspace(api backend.API, mutator *query.Mutator, log *slog.Logger, opts Options) *Workspace {
	opts.defaults()
	ctx, cancel := context.WithCancel(context.Background())

	w := &Workspace{
		ctx:     ctx,
		cancel:  cancel,
		api:     api,
		mutator: mutator,
		log:     log,
	}
	w.Properties = NewPropertiesPage(api, mutator, log, query.NewDebouncer(opts.DebounceDelay), opts.PageSize)
	w.Landlords = NewLandlordsPage(api, mutator, log, query.NewDebouncer(opts.DebounceDelay), opts.PageSize)
	w.Units = NewUnitService(api, mutator, log)
	w.Leases = NewLeaseService(api, mutator, log)
	w.Generation = NewGenerationFlow(api, mutator, log)
	w.Managers = NewManagerFlow(api, mutator, log)
	w.Reports = NewReportService(api, mutator)
	w.Export = NewExportService(api, log, opts.ExportDir)
	return w
}

// Context returns the workspace lifetime context. Mutations run under it so
// their completion side effects stop applying once the workspace closes.
func (w *Workspace) Context() context.Context {
	return w.ctx
}

// Close ends the workspace lifetime.
func (w *Workspace) Close() {
	w.cancel()
}
