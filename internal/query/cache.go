package query

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/port/cache"
)

const meterName = "propdesk"

// Cache is the process-wide remote-data cache. Values are JSON-encoded query
// results in a byte store (in-process ristretto, optionally tiered with a
// shared NATS KV bucket). All entries are mutated only through the read path
// and the three-phase mutation protocol in Mutator.
//
// Ordering guarantee: for a given key the latest issued fetch wins. Every
// fetch takes a per-key sequence number and a result is discarded when a
// newer result has already been applied.
type Cache struct {
	store cache.Cache
	ttl   time.Duration

	mu       sync.Mutex
	issued   map[string]uint64
	applied  map[string]uint64
	inflight map[string]map[uint64]context.CancelFunc
	keys     map[string]map[string]Key // resource -> key string -> key

	group singleflight.Group

	hits   metric.Int64Counter
	misses metric.Int64Counter
}

// NewCache creates a query cache over the given byte store.
func NewCache(store cache.Cache, ttl time.Duration) *Cache {
	meter := otel.Meter(meterName)
	hits, _ := meter.Int64Counter("propdesk.query.cache_hits",
		metric.WithDescription("Query reads served from cache"))
	misses, _ := meter.Int64Counter("propdesk.query.cache_misses",
		metric.WithDescription("Query reads that fetched from the backend"))

	return &Cache{
		store:    store,
		ttl:      ttl,
		issued:   make(map[string]uint64),
		applied:  make(map[string]uint64),
		inflight: make(map[string]map[uint64]context.CancelFunc),
		keys:     make(map[string]map[string]Key),
		hits:     hits,
		misses:   misses,
	}
}

// List reads a cached page, fetching on miss. On a hit the cached page is
// returned immediately and a detached revalidation fetch refreshes the entry
// (stale-while-revalidate).
func List[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (domain.Page[T], error)) (domain.Page[T], error) {
	fn := func(fctx context.Context) ([]byte, error) {
		page, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(page)
	}

	data, err := c.read(ctx, key, fn)
	if err != nil {
		return domain.Page[T]{}, err
	}

	var page domain.Page[T]
	if err := json.Unmarshal(data, &page); err != nil {
		return domain.Page[T]{}, err
	}
	return page, nil
}

// Get reads a cached single entity, fetching on miss, with the same
// stale-while-revalidate behavior as List.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (*T, error)) (*T, error) {
	fn := func(fctx context.Context) ([]byte, error) {
		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	data, err := c.read(ctx, key, fn)
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// read serves from cache when possible, revalidating in the background, and
// falls through to a deduplicated fetch otherwise.
func (c *Cache) read(ctx context.Context, key Key, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	c.register(key)
	ks := key.String()

	if data, ok, err := c.store.Get(ctx, ks); err == nil && ok {
		c.count(ctx, c.hits)
		go func() { _, _ = c.fetch(context.WithoutCancel(ctx), key, fn) }()
		return data, nil
	}

	c.count(ctx, c.misses)
	return c.fetch(ctx, key, fn)
}

// fetch runs fn through singleflight and applies the result under the
// latest-wins sequence guard.
func (c *Cache) fetch(ctx context.Context, key Key, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	ks := key.String()
	v, err, _ := c.group.Do(ks, func() (any, error) {
		seq, fctx, done := c.begin(ctx, ks)
		defer done()

		data, err := fn(fctx)
		if err != nil {
			return nil, err
		}
		c.apply(fctx, ks, seq, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// begin issues a fetch sequence number and a cancelable fetch context that is
// tracked so CancelReads can abort it.
func (c *Cache) begin(ctx context.Context, ks string) (seq uint64, fctx context.Context, done func()) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	c.mu.Lock()
	c.issued[ks]++
	seq = c.issued[ks]
	if c.inflight[ks] == nil {
		c.inflight[ks] = make(map[uint64]context.CancelFunc)
	}
	c.inflight[ks][seq] = cancel
	c.mu.Unlock()

	return seq, fctx, func() {
		cancel()
		c.mu.Lock()
		delete(c.inflight[ks], seq)
		c.mu.Unlock()
	}
}

// apply stores a fetch result unless a newer result has already landed.
func (c *Cache) apply(ctx context.Context, ks string, seq uint64, data []byte) {
	c.mu.Lock()
	if seq < c.applied[ks] {
		c.mu.Unlock()
		return
	}
	c.applied[ks] = seq
	c.mu.Unlock()

	_ = c.store.Set(ctx, ks, data, c.ttl)
}

// writeApplied stores data as the newest value for ks, fencing off any
// still-running fetch that started earlier. Used by optimistic patches and
// rollback restores.
func (c *Cache) writeApplied(ctx context.Context, ks string, data []byte) {
	c.mu.Lock()
	c.issued[ks]++
	c.applied[ks] = c.issued[ks]
	c.mu.Unlock()

	_ = c.store.Set(ctx, ks, data, c.ttl)
}

// register records a key in the per-resource registry used by invalidation,
// snapshots and patches.
func (c *Cache) register(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keys[key.Resource] == nil {
		c.keys[key.Resource] = make(map[string]Key)
	}
	c.keys[key.Resource][key.String()] = key
}

// resourceKeys returns the registered keys for a resource.
func (c *Cache) resourceKeys(resource string) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Key, 0, len(c.keys[resource]))
	for _, k := range c.keys[resource] {
		out = append(out, k)
	}
	return out
}

// CancelReads aborts all in-flight fetches for a resource (mutation phase 1).
func (c *Cache) CancelReads(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ks := range c.keys[resource] {
		for seq, cancel := range c.inflight[ks] {
			cancel()
			delete(c.inflight[ks], seq)
		}
	}
}

// Invalidate drops every cached entry for a resource so the next read fetches
// fresh data.
func (c *Cache) Invalidate(ctx context.Context, resource string) {
	for _, k := range c.resourceKeys(resource) {
		_ = c.store.Delete(ctx, k.String())
	}
	c.mu.Lock()
	delete(c.keys, resource)
	c.mu.Unlock()
}

// Snapshot captures the current cached values for the given resources.
type Snapshot struct {
	entries map[string][]byte
}

// Snapshot returns a rollback snapshot covering every cached entry of the
// given resources.
func (c *Cache) Snapshot(ctx context.Context, resources ...string) Snapshot {
	snap := Snapshot{entries: make(map[string][]byte)}
	for _, res := range resources {
		for _, k := range c.resourceKeys(res) {
			if data, ok, err := c.store.Get(ctx, k.String()); err == nil && ok {
				snap.entries[k.String()] = data
			}
		}
	}
	return snap
}

// Restore writes a snapshot back, superseding any optimistic values applied
// since it was taken.
func (c *Cache) Restore(ctx context.Context, snap Snapshot) {
	for ks, data := range snap.entries {
		c.writeApplied(ctx, ks, data)
	}
}

// Patch applies an optimistic transformation to one cached page. A miss is a
// no-op: there is nothing on screen to patch.
func Patch[T any](ctx context.Context, c *Cache, key Key, fn func(domain.Page[T]) domain.Page[T]) {
	ks := key.String()
	data, ok, err := c.store.Get(ctx, ks)
	if err != nil || !ok {
		return
	}

	var page domain.Page[T]
	if err := json.Unmarshal(data, &page); err != nil {
		return
	}
	page = fn(page)

	out, err := json.Marshal(page)
	if err != nil {
		return
	}
	c.writeApplied(ctx, ks, out)
}

// PatchAll applies an optimistic transformation to every cached page of a
// resource.
func PatchAll[T any](ctx context.Context, c *Cache, resource string, fn func(domain.Page[T]) domain.Page[T]) {
	for _, k := range c.resourceKeys(resource) {
		Patch(ctx, c, k, fn)
	}
}

func (c *Cache) count(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}
