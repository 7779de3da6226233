package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/port/notifier"
	"github.com/Mutombe/propdesk/internal/query"
)

// GenerationFlow drives the unit-generation sub-flow on the property detail
// page: preview the identifiers a unit definition implies, then generate the
// missing ones. Generation is idempotent: once every defined unit exists, a
// fresh preview reports zero creatable units and Generate refuses to run.
type GenerationFlow struct {
	api     backend.API
	mutator *query.Mutator
	log     *slog.Logger
}

// NewGenerationFlow creates the generation controller.
func NewGenerationFlow(api backend.API, mutator *query.Mutator, log *slog.Logger) *GenerationFlow {
	return &GenerationFlow{api: api, mutator: mutator, log: log}
}

// Preview asks the backend which unit identifiers the property's definition
// implies, partitioned into already-existing and to-be-created. Previews are
// not cached: the split must reflect the backend's current unit set.
func (g *GenerationFlow) Preview(ctx context.Context, propertyID string) (*property.UnitPreview, error) {
	return g.api.PreviewUnits(ctx, propertyID)
}

// CanGenerate reports whether generation would create anything.
func (g *GenerationFlow) CanGenerate(p *property.UnitPreview) bool {
	return p != nil && p.CreateCount > 0
}

// Generate creates the missing units for a property. It re-previews first and
// refuses to run when nothing remains to create, so repeated calls after full
// generation are no-ops with a validation error rather than duplicate units.
func (g *GenerationFlow) Generate(ctx context.Context, propertyID string) (*property.GenerateResult, error) {
	preview, err := g.Preview(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !g.CanGenerate(preview) {
		return nil, fmt.Errorf("%w: no units left to create", domain.ErrValidation)
	}

	result, err := g.api.GenerateUnits(ctx, propertyID)
	if err != nil {
		g.mutator.Notify(ctx, notifier.Notification{
			Title:   "Unit generation failed",
			Message: reason(err),
			Level:   notifier.LevelError,
			Source:  "property.generate_units",
		})
		return nil, err
	}

	g.mutator.Notify(ctx, notifier.Notification{
		Title:  fmt.Sprintf("Generated %d units", result.Count),
		Level:  notifier.LevelSuccess,
		Source: "property.generate_units",
	})

	// Generated units change unit lists and property-derived counts.
	g.mutator.Cache().Invalidate(ctx, resourceUnits)
	g.mutator.Cache().Invalidate(ctx, resourceProperties)

	g.log.Info("units generated", "property", propertyID, "count", result.Count)
	return result, nil
}
