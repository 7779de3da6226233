package query

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mutombe/propdesk/internal/port/notifier"
)

// Mutation describes one write against the backend and its optimistic cache
// effects.
type Mutation struct {
	// Source tags the resulting notification, e.g. "property.create".
	Source string

	// Resources are the cache resources the mutation affects; their reads
	// are canceled, snapshotted and finally invalidated.
	Resources []string

	// Optimistic applies the placeholder transformation (insert/patch/
	// remove) to the affected cached pages. Optional.
	Optimistic func(ctx context.Context)

	// Call performs the backend write.
	Call func(ctx context.Context) error

	// Success is the notification shown when the call succeeds.
	Success string
}

// Mutator runs mutations under the three-phase contract:
//
//  1. onMutate: cancel in-flight reads for the affected resources, snapshot
//     the cached values, apply the optimistic transformation.
//  2. onSuccess: success notification, invalidate the affected resources so
//     a fresh read supersedes the optimistic value.
//  3. onError: restore the snapshot, error notification with the message
//     parsed from the backend payload.
//
// Completion side effects are skipped when ctx is already done, so a page
// torn down mid-flight cannot apply stale state (the snapshot is still
// restored).
type Mutator struct {
	cache    *Cache
	notifier notifier.Notifier

	applied    metric.Int64Counter
	rolledBack metric.Int64Counter
}

// NewMutator creates a Mutator delivering notifications through n.
func NewMutator(c *Cache, n notifier.Notifier) *Mutator {
	meter := otel.Meter(meterName)
	applied, _ := meter.Int64Counter("propdesk.mutations.applied",
		metric.WithDescription("Mutations confirmed by the backend"))
	rolledBack, _ := meter.Int64Counter("propdesk.mutations.rolled_back",
		metric.WithDescription("Mutations rolled back after a backend error"))

	return &Mutator{cache: c, notifier: n, applied: applied, rolledBack: rolledBack}
}

// Cache returns the cache the mutator operates on.
func (m *Mutator) Cache() *Cache { return m.cache }

// Do runs one mutation through the three-phase contract.
func (m *Mutator) Do(ctx context.Context, mut Mutation) error {
	ctx, span := otel.Tracer(meterName).Start(ctx, "mutation",
		trace.WithAttributes(attribute.String("mutation.source", mut.Source)))
	defer span.End()

	for _, res := range mut.Resources {
		m.cache.CancelReads(res)
	}
	snap := m.cache.Snapshot(ctx, mut.Resources...)

	if mut.Optimistic != nil {
		mut.Optimistic(ctx)
	}

	err := mut.Call(ctx)

	// Owner gone: roll the optimistic value back and apply nothing else.
	if ctx.Err() != nil {
		m.cache.Restore(context.WithoutCancel(ctx), snap)
		if err == nil {
			err = ctx.Err()
		}
		return err
	}

	if err != nil {
		m.cache.Restore(ctx, snap)
		m.count(ctx, m.rolledBack)
		m.notify(ctx, notifier.Notification{
			Title:   "Operation failed",
			Message: reasonOf(err),
			Level:   notifier.LevelError,
			Source:  mut.Source,
		})
		return err
	}

	m.count(ctx, m.applied)
	m.notify(ctx, notifier.Notification{
		Title:  mut.Success,
		Level:  notifier.LevelSuccess,
		Source: mut.Source,
	})
	for _, res := range mut.Resources {
		m.cache.Invalidate(ctx, res)
	}
	return nil
}

// Notify delivers an ad-hoc notification outside the mutation flow (bulk
// operations compose their own summary).
func (m *Mutator) Notify(ctx context.Context, n notifier.Notification) {
	m.notify(ctx, n)
}

func (m *Mutator) notify(ctx context.Context, n notifier.Notification) {
	if m.notifier != nil {
		_ = m.notifier.Send(ctx, n)
	}
}

func (m *Mutator) count(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}

// reasoner is implemented by backend errors carrying a parsed human-readable
// message.
type reasoner interface {
	Reason() string
}

// reasonOf extracts the user-facing message from an error chain.
func reasonOf(err error) string {
	var r reasoner
	if errors.As(err, &r) {
		return r.Reason()
	}
	return err.Error()
}

// PlaceholderID returns a unique id for an optimistic placeholder row.
func PlaceholderID() string {
	return "pending-" + uuid.NewString()
}
