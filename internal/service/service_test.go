package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/domain/manager"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/domain/report"
	"github.com/Mutombe/propdesk/internal/domain/unit"
	"github.com/Mutombe/propdesk/internal/domain/user"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/port/notifier"
	"github.com/Mutombe/propdesk/internal/query"
)

// memStore is a map-backed byte store for the query cache under test.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Send(_ context.Context, n notifier.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) last(t *testing.T) notifier.Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		t.Fatal("expected a notification")
	}
	return r.sent[len(r.sent)-1]
}

// fakeAPI is an in-memory backend double. Only the behavior the tests
// exercise is modeled; everything else returns empty values.
type fakeAPI struct {
	mu sync.Mutex

	properties []property.Property
	landlords  []landlord.Landlord
	listCalls  int
	listErr    error

	deleteErr map[string]error
	deleted   []string

	// Unit generation: the definition expands to definedUnits; existing
	// tracks which have been created.
	definedUnits []string
	existing     map[string]bool

	assignments []manager.Assignment
	users       []user.User
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		deleteErr: make(map[string]error),
		existing:  make(map[string]bool),
	}
}

func (f *fakeAPI) pageOf(params backend.ListParams) domain.Page[property.Property] {
	rows := make([]property.Property, 0, len(f.properties))
	for _, p := range f.properties {
		if params.Search != "" && p.Name != params.Search {
			continue
		}
		rows = append(rows, p)
	}
	return domain.Page[property.Property]{Results: rows, Count: len(rows)}
}

func (f *fakeAPI) ListProperties(_ context.Context, params backend.ListParams) (domain.Page[property.Property], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return domain.Page[property.Property]{}, f.listErr
	}
	return f.pageOf(params), nil
}

func (f *fakeAPI) GetProperty(_ context.Context, id string) (*property.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) CreateProperty(_ context.Context, rec property.Record) (*property.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := property.Property{ID: fmt.Sprintf("prop-%d", len(f.properties)+1), Name: rec.Name, Landlord: rec.Landlord}
	f.properties = append(f.properties, p)
	return &p, nil
}

func (f *fakeAPI) UpdateProperty(_ context.Context, id string, rec property.Record) (*property.Property, error) {
	return &property.Property{ID: id, Name: rec.Name}, nil
}

func (f *fakeAPI) DeleteProperty(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) PreviewUnits(_ context.Context, _ string) (*property.UnitPreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	preview := &property.UnitPreview{}
	for _, u := range f.definedUnits {
		if f.existing[u] {
			preview.Existing = append(preview.Existing, u)
		} else {
			preview.ToCreate = append(preview.ToCreate, u)
		}
	}
	preview.ExistingCount = len(preview.Existing)
	preview.CreateCount = len(preview.ToCreate)
	return preview, nil
}

func (f *fakeAPI) GenerateUnits(_ context.Context, _ string) (*property.GenerateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := &property.GenerateResult{}
	for _, u := range f.definedUnits {
		if !f.existing[u] {
			f.existing[u] = true
			result.Created = append(result.Created, u)
		}
	}
	result.Count = len(result.Created)
	return result, nil
}

func (f *fakeAPI) ListLandlords(_ context.Context, _ backend.ListParams) (domain.Page[landlord.Landlord], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Page[landlord.Landlord]{Results: f.landlords, Count: len(f.landlords)}, nil
}

func (f *fakeAPI) GetLandlord(_ context.Context, id string) (*landlord.Landlord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.landlords {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) CreateLandlord(_ context.Context, rec landlord.Record) (*landlord.Landlord, error) {
	return &landlord.Landlord{ID: "ll-new", Name: rec.Name}, nil
}

func (f *fakeAPI) UpdateLandlord(_ context.Context, id string, rec landlord.Record) (*landlord.Landlord, error) {
	return &landlord.Landlord{ID: id, Name: rec.Name}, nil
}

func (f *fakeAPI) DeleteLandlord(context.Context, string) error { return nil }

func (f *fakeAPI) ListUnits(context.Context, backend.ListParams) (domain.Page[unit.Unit], error) {
	return domain.Page[unit.Unit]{}, nil
}

func (f *fakeAPI) GetUnit(context.Context, string) (*unit.Unit, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) CreateUnit(_ context.Context, rec unit.Record) (*unit.Unit, error) {
	return &unit.Unit{ID: "unit-new", UnitNumber: rec.UnitNumber}, nil
}

func (f *fakeAPI) UpdateUnit(_ context.Context, id string, rec unit.Record) (*unit.Unit, error) {
	return &unit.Unit{ID: id, UnitNumber: rec.UnitNumber}, nil
}

func (f *fakeAPI) DeleteUnit(context.Context, string) error { return nil }

func (f *fakeAPI) ListLeases(context.Context, backend.ListParams) (domain.Page[lease.Lease], error) {
	return domain.Page[lease.Lease]{}, nil
}

func (f *fakeAPI) GetLease(context.Context, string) (*lease.Lease, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) CreateLease(_ context.Context, rec lease.Record) (*lease.Lease, error) {
	return &lease.Lease{ID: "lease-new", Tenant: rec.Tenant}, nil
}

func (f *fakeAPI) UpdateLease(_ context.Context, id string, rec lease.Record) (*lease.Lease, error) {
	return &lease.Lease{ID: id, Tenant: rec.Tenant}, nil
}

func (f *fakeAPI) DeleteLease(context.Context, string) error { return nil }

func (f *fakeAPI) UploadLeaseDocument(_ context.Context, id, _ string, _ io.Reader) (*lease.Lease, error) {
	return &lease.Lease{ID: id}, nil
}

func (f *fakeAPI) ListAssignments(_ context.Context, params backend.ListParams) (domain.Page[manager.Assignment], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]manager.Assignment, 0, len(f.assignments))
	for _, a := range f.assignments {
		if pid := params.Filters["property"]; pid != "" && a.Property != pid {
			continue
		}
		rows = append(rows, a)
	}
	return domain.Page[manager.Assignment]{Results: rows, Count: len(rows)}, nil
}

func (f *fakeAPI) CreateAssignment(_ context.Context, rec manager.Record) (*manager.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := manager.Assignment{
		ID:        fmt.Sprintf("assign-%d", len(f.assignments)+1),
		Property:  rec.Property,
		User:      rec.User,
		IsPrimary: rec.IsPrimary,
	}
	f.assignments = append(f.assignments, a)
	return &a, nil
}

func (f *fakeAPI) DeleteAssignment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func (f *fakeAPI) ListUsers(context.Context, backend.ListParams) (domain.Page[user.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Page[user.User]{Results: f.users, Count: len(f.users)}, nil
}

func (f *fakeAPI) Statement(context.Context, string, string, string) (*report.Statement, error) {
	return &report.Statement{}, nil
}

func (f *fakeAPI) LandlordStatement(context.Context, string, string, string) (*report.Statement, error) {
	return &report.Statement{}, nil
}

func (f *fakeAPI) Commission(context.Context, string, string) ([]report.Commission, error) {
	return nil, nil
}

func (f *fakeAPI) AgedAnalysis(context.Context, string) (*report.AgedAnalysis, error) {
	return &report.AgedAnalysis{}, nil
}

func (f *fakeAPI) IncomeExpenditure(context.Context, int) (*report.IncomeExpenditure, error) {
	return &report.IncomeExpenditure{}, nil
}

func (f *fakeAPI) LeaseCharges(context.Context, string) ([]report.LeaseCharge, error) {
	return nil, nil
}

func (f *fakeAPI) DownloadImportTemplate(_ context.Context, resource string) ([]byte, error) {
	return []byte("xlsx:" + resource), nil
}

type propertyPage = domain.Page[property.Property]

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMutator(n notifier.Notifier) *query.Mutator {
	return query.NewMutator(query.NewCache(newMemStore(), time.Minute), n)
}

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
