package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	pdhttp "github.com/Mutombe/propdesk/internal/adapter/http"
	"github.com/Mutombe/propdesk/internal/adapter/toast"
	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/domain/landlord"
	"github.com/Mutombe/propdesk/internal/domain/lease"
	"github.com/Mutombe/propdesk/internal/domain/manager"
	"github.com/Mutombe/propdesk/internal/domain/property"
	"github.com/Mutombe/propdesk/internal/domain/report"
	"github.com/Mutombe/propdesk/internal/domain/unit"
	"github.com/Mutombe/propdesk/internal/domain/user"
	"github.com/Mutombe/propdesk/internal/port/backend"
	"github.com/Mutombe/propdesk/internal/query"
	"github.com/Mutombe/propdesk/internal/service"
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

// stubAPI is an in-memory backend double for the HTTP surface.
type stubAPI struct {
	mu sync.Mutex

	properties  []property.Property
	assignments []manager.Assignment
	users       []user.User
	deleted     []string
}

func (s *stubAPI) ListProperties(_ context.Context, _ backend.ListParams) (domain.Page[property.Property], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := append([]property.Property(nil), s.properties...)
	return domain.Page[property.Property]{Results: rows, Count: len(rows)}, nil
}

func (s *stubAPI) GetProperty(_ context.Context, id string) (*property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubAPI) CreateProperty(_ context.Context, rec property.Record) (*property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := property.Property{ID: fmt.Sprintf("prop-%d", len(s.properties)+1), Name: rec.Name, Landlord: rec.Landlord}
	s.properties = append(s.properties, p)
	return &p, nil
}

func (s *stubAPI) UpdateProperty(_ context.Context, id string, rec property.Record) (*property.Property, error) {
	return &property.Property{ID: id, Name: rec.Name}, nil
}

func (s *stubAPI) DeleteProperty(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAPI) PreviewUnits(context.Context, string) (*property.UnitPreview, error) {
	return &property.UnitPreview{ToCreate: []string{"A1"}, CreateCount: 1}, nil
}

func (s *stubAPI) GenerateUnits(context.Context, string) (*property.GenerateResult, error) {
	return &property.GenerateResult{Created: []string{"A1"}, Count: 1}, nil
}

func (s *stubAPI) ListLandlords(context.Context, backend.ListParams) (domain.Page[landlord.Landlord], error) {
	return domain.Page[landlord.Landlord]{}, nil
}

func (s *stubAPI) GetLandlord(context.Context, string) (*landlord.Landlord, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAPI) CreateLandlord(_ context.Context, rec landlord.Record) (*landlord.Landlord, error) {
	return &landlord.Landlord{ID: "ll-new", Name: rec.Name}, nil
}

func (s *stubAPI) UpdateLandlord(_ context.Context, id string, rec landlord.Record) (*landlord.Landlord, error) {
	return &landlord.Landlord{ID: id, Name: rec.Name}, nil
}

func (s *stubAPI) DeleteLandlord(context.Context, string) error { return nil }

func (s *stubAPI) ListUnits(context.Context, backend.ListParams) (domain.Page[unit.Unit], error) {
	return domain.Page[unit.Unit]{}, nil
}

func (s *stubAPI) GetUnit(context.Context, string) (*unit.Unit, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAPI) CreateUnit(_ context.Context, rec unit.Record) (*unit.Unit, error) {
	return &unit.Unit{ID: "unit-new", UnitNumber: rec.UnitNumber}, nil
}

func (s *stubAPI) UpdateUnit(_ context.Context, id string, rec unit.Record) (*unit.Unit, error) {
	return &unit.Unit{ID: id, UnitNumber: rec.UnitNumber}, nil
}

func (s *stubAPI) DeleteUnit(context.Context, string) error { return nil }

func (s *stubAPI) ListLeases(context.Context, backend.ListParams) (domain.Page[lease.Lease], error) {
	return domain.Page[lease.Lease]{}, nil
}

func (s *stubAPI) GetLease(context.Context, string) (*lease.Lease, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAPI) CreateLease(_ context.Context, rec lease.Record) (*lease.Lease, error) {
	return &lease.Lease{ID: "lease-new", Tenant: rec.Tenant}, nil
}

func (s *stubAPI) UpdateLease(_ context.Context, id string, rec lease.Record) (*lease.Lease, error) {
	return &lease.Lease{ID: id, Tenant: rec.Tenant}, nil
}

func (s *stubAPI) DeleteLease(context.Context, string) error { return nil }

func (s *stubAPI) UploadLeaseDocument(_ context.Context, id, _ string, _ io.Reader) (*lease.Lease, error) {
	return &lease.Lease{ID: id}, nil
}

func (s *stubAPI) ListAssignments(_ context.Context, params backend.ListParams) (domain.Page[manager.Assignment], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]manager.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if pid := params.Filters["property"]; pid != "" && a.Property != pid {
			continue
		}
		rows = append(rows, a)
	}
	return domain.Page[manager.Assignment]{Results: rows, Count: len(rows)}, nil
}

func (s *stubAPI) CreateAssignment(_ context.Context, rec manager.Record) (*manager.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := manager.Assignment{ID: "assign-new", Property: rec.Property, User: rec.User, IsPrimary: rec.IsPrimary}
	s.assignments = append(s.assignments, a)
	return &a, nil
}

func (s *stubAPI) DeleteAssignment(context.Context, string) error { return nil }

func (s *stubAPI) ListUsers(context.Context, backend.ListParams) (domain.Page[user.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Page[user.User]{Results: s.users, Count: len(s.users)}, nil
}

func (s *stubAPI) Statement(context.Context, string, string, string) (*report.Statement, error) {
	return &report.Statement{}, nil
}

func (s *stubAPI) LandlordStatement(context.Context, string, string, string) (*report.Statement, error) {
	return &report.Statement{}, nil
}

func (s *stubAPI) Commission(context.Context, string, string) ([]report.Commission, error) {
	return nil, nil
}

func (s *stubAPI) AgedAnalysis(context.Context, string) (*report.AgedAnalysis, error) {
	return &report.AgedAnalysis{}, nil
}

func (s *stubAPI) IncomeExpenditure(context.Context, int) (*report.IncomeExpenditure, error) {
	return &report.IncomeExpenditure{}, nil
}

func (s *stubAPI) LeaseCharges(context.Context, string) ([]report.LeaseCharge, error) {
	return nil, nil
}

func (s *stubAPI) DownloadImportTemplate(_ context.Context, resource string) ([]byte, error) {
	return []byte("xlsx:" + resource), nil
}

func newTestServer(t *testing.T, api *stubAPI) (*chi.Mux, *service.Workspace) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	toasts := toast.New(0)
	mutator := query.NewMutator(query.NewCache(newMemStore(), time.Minute), toasts)
	ws := service.NewWorkspace(api, mutator, log, service.Options{
		DebounceDelay: 5 * time.Millisecond,
		ExportDir:     t.TempDir(),
	})
	t.Cleanup(ws.Close)

	r := chi.NewRouter()
	pdhttp.MountRoutes(r, pdhttp.NewHandlers(ws, toasts, log))
	return r, ws
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPropertiesPageReturnsRows(t *testing.T) {
	api := &stubAPI{properties: []property.Property{
		{ID: "p1", Name: "Sunrise Court"},
		{ID: "p2", Name: "Hillview Flats"},
	}}
	r, _ := newTestServer(t, api)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/pages/properties", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeBody[service.PropertiesView](t, rec)
	if view.State != service.StateSuccess {
		t.Fatalf("expected success state, got %q", view.State)
	}
	if len(view.Results) != 2 || view.Count != 2 {
		t.Fatalf("expected 2 rows, got %d (count %d)", len(view.Results), view.Count)
	}
}

func TestCreatePropertyRejectsMissingName(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties", map[string]string{
		"landlord": "ll-1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]string](t, rec)
	if !strings.Contains(body["error"], "Name") {
		t.Fatalf("expected field name in error, got %q", body["error"])
	}
}

func TestCreatePropertySubmitsForm(t *testing.T) {
	api := &stubAPI{}
	r, _ := newTestServer(t, api)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties", map[string]string{
		"name":        "Sunrise Court",
		"landlord":    "ll-1",
		"total_units": "12",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(api.properties) != 1 || api.properties[0].Name != "Sunrise Court" {
		t.Fatalf("property not created on backend: %+v", api.properties)
	}
}

func TestSelectAllThenBulkDelete(t *testing.T) {
	api := &stubAPI{properties: []property.Property{
		{ID: "p1", Name: "One"},
		{ID: "p2", Name: "Two"},
	}}
	r, _ := newTestServer(t, api)

	if rec := doJSON(t, r, http.MethodGet, "/api/v1/pages/properties", nil); rec.Code != http.StatusOK {
		t.Fatalf("load failed: %d", rec.Code)
	}
	rec := doJSON(t, r, http.MethodPost, "/api/v1/pages/properties/selection", map[string]string{"action": "all"})
	if rec.Code != http.StatusOK {
		t.Fatalf("selection failed: %d", rec.Code)
	}
	view := decodeBody[service.PropertiesView](t, rec)
	if len(view.Selected) != 2 {
		t.Fatalf("expected 2 selected, got %v", view.Selected)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/properties/bulk-delete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk delete failed: %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[service.BulkResult](t, rec)
	if len(result.Deleted) != 2 || len(result.Failed) != 0 {
		t.Fatalf("expected 2 deleted, got %+v", result)
	}
}

func TestSelectionRejectsUnknownAction(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodPost, "/api/v1/pages/properties/selection", map[string]string{"action": "invert"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAssignSecondPrimaryManagerRejected(t *testing.T) {
	api := &stubAPI{assignments: []manager.Assignment{
		{ID: "a1", Property: "p1", User: "u1", UserName: "Alice", IsPrimary: true},
	}}
	r, _ := newTestServer(t, api)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties/p1/managers", manager.Record{
		Property:  "p1",
		User:      "u2",
		IsPrimary: true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]string](t, rec)
	if !strings.Contains(body["error"], "primary manager") {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestAssignSecondaryManagerAccepted(t *testing.T) {
	api := &stubAPI{assignments: []manager.Assignment{
		{ID: "a1", Property: "p1", User: "u1", IsPrimary: true},
	}}
	r, _ := newTestServer(t, api)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties/p1/managers", manager.Record{
		Property: "p1",
		User:     "u2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestImportTemplateDownload(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/import-templates/landlords", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "import_template_landlords.xlsx") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if rec.Body.String() != "xlsx:landlords" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestCreateLeaseMultipartWithDocument(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	payload := `{"tenant":"t1","unit":"unit-1","monthly_rent":"500","start_date":"2026-01-01"}`
	if err := mw.WriteField("payload", payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	part, err := mw.CreateFormFile("document", "lease.pdf")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leases", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateLeaseRequiresUnitOrProperty(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodPost, "/api/v1/leases", map[string]string{
		"tenant":       "t1",
		"monthly_rent": "500",
		"start_date":   "2026-01-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNotificationsDrainOnce(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties", map[string]string{
		"name":     "Sunrise Court",
		"landlord": "ll-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/notifications", nil)
	first := decodeBody[[]toast.Toast](t, rec)
	if len(first) == 0 {
		t.Fatal("expected a notification after the create")
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/notifications", nil)
	second := decodeBody[[]toast.Toast](t, rec)
	if len(second) != 0 {
		t.Fatalf("expected drained queue, got %d", len(second))
	}
}

func TestGetLeaseNotFound(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/leases/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGenerateUnitsEndpoint(t *testing.T) {
	r, _ := newTestServer(t, &stubAPI{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/properties/p1/units/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview failed: %d", rec.Code)
	}
	preview := decodeBody[property.UnitPreview](t, rec)
	if preview.CreateCount != 1 {
		t.Fatalf("expected 1 to create, got %d", preview.CreateCount)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/properties/p1/units/generate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[property.GenerateResult](t, rec)
	if result.Count != 1 {
		t.Fatalf("expected 1 created, got %d", result.Count)
	}
}
