//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/Mutombe/propdesk/internal/service"
)

func getJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(testServer.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, path string, body, out any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(testServer.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func createProperty(t *testing.T, name string) {
	t.Helper()
	resp := postJSON(t, "/api/v1/properties", map[string]string{
		"name":     name,
		"landlord": "ll-1",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create property %q: status %d", name, resp.StatusCode)
	}
}

func propertyIDByName(t *testing.T, name string) string {
	t.Helper()
	var view service.PropertiesView
	resp := getJSON(t, "/api/v1/pages/properties", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load page: status %d", resp.StatusCode)
	}
	for _, p := range view.Results {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("property %q not in page: %+v", name, view.Results)
	return ""
}

func TestHealthLiveness(t *testing.T) {
	var body struct {
		Status string `json:"status"`
	}
	resp := getJSON(t, "/api/v1/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Status != "ok" {
		t.Fatalf("expected status 'ok', got %q", body.Status)
	}
}

func TestAPIVersion(t *testing.T) {
	var body struct {
		Version string `json:"version"`
	}
	resp := getJSON(t, "/api/v1/", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Version == "" {
		t.Fatal("expected non-empty version")
	}
}

func TestPropertyCreateShowsOnPage(t *testing.T) {
	createProperty(t, "Integration Tower")

	if id := propertyIDByName(t, "Integration Tower"); id == "" {
		t.Fatal("created property has no id")
	}
}

func TestBulkDeleteSelectedProperties(t *testing.T) {
	createProperty(t, "Bulk One")
	createProperty(t, "Bulk Two")
	id1 := propertyIDByName(t, "Bulk One")
	id2 := propertyIDByName(t, "Bulk Two")

	for _, id := range []string{id1, id2} {
		resp := postJSON(t, "/api/v1/pages/properties/selection", map[string]string{
			"action": "toggle",
			"id":     id,
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("toggle %s: status %d", id, resp.StatusCode)
		}
	}

	var result service.BulkResult
	resp := postJSON(t, "/api/v1/properties/bulk-delete", nil, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bulk delete: status %d", resp.StatusCode)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("expected no failures, got %+v", result.Failed)
	}
	deleted := strings.Join(result.Deleted, ",")
	if !strings.Contains(deleted, id1) || !strings.Contains(deleted, id2) {
		t.Fatalf("expected %s and %s deleted, got %v", id1, id2, result.Deleted)
	}

	var view service.PropertiesView
	getJSON(t, "/api/v1/pages/properties", &view)
	for _, p := range view.Results {
		if p.ID == id1 || p.ID == id2 {
			t.Fatalf("deleted property %s still on page", p.ID)
		}
	}
}

func TestUnitGenerationIsIdempotent(t *testing.T) {
	createProperty(t, "Gen Court")
	id := propertyIDByName(t, "Gen Court")
	backendAPI.seedUnitDefinition(id, []string{"A1", "A2"})

	var preview struct {
		CreateCount int `json:"create_count"`
	}
	getJSON(t, "/api/v1/properties/"+id+"/units/preview", &preview)
	if preview.CreateCount != 2 {
		t.Fatalf("expected 2 to create, got %d", preview.CreateCount)
	}

	var result struct {
		Count int `json:"count"`
	}
	resp := postJSON(t, "/api/v1/properties/"+id+"/units/generate", nil, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate: status %d", resp.StatusCode)
	}
	if result.Count != 2 {
		t.Fatalf("expected 2 created, got %d", result.Count)
	}

	getJSON(t, "/api/v1/properties/"+id+"/units/preview", &preview)
	if preview.CreateCount != 0 {
		t.Fatalf("expected nothing left to create, got %d", preview.CreateCount)
	}

	resp = postJSON(t, "/api/v1/properties/"+id+"/units/generate", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected repeat generate rejected with 400, got %d", resp.StatusCode)
	}
}

func TestLeaseCreateWithDocument(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	payload := `{"tenant":"t-9","property":"prop-1","unit_number":"B4","monthly_rent":"750","start_date":"2026-03-01"}`
	if err := mw.WriteField("payload", payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	part, err := mw.CreateFormFile("document", "signed.pdf")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 signed")); err != nil {
		t.Fatalf("write document: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp, err := http.Post(testServer.URL+"/api/v1/leases", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /leases: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	backendAPI.mu.Lock()
	defer backendAPI.mu.Unlock()
	found := false
	for _, l := range backendAPI.leases {
		if l["tenant"] == "t-9" {
			found = true
			if doc, _ := l["document"].(string); doc == "" {
				t.Fatal("expected document attached to lease")
			}
		}
	}
	if !found {
		t.Fatal("lease not created on backend")
	}
}

func TestImportTemplateRoundtrip(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/api/v1/import-templates/leases")
	if err != nil {
		t.Fatalf("GET template: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "import_template_leases.xlsx") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	var data bytes.Buffer
	if _, err := data.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if data.String() != "xlsx-template:leases" {
		t.Fatalf("unexpected template body %q", data.String())
	}
}

func TestNotificationsDrain(t *testing.T) {
	createProperty(t, "Toast Villa")

	var toasts []map[string]any
	getJSON(t, "/api/v1/notifications", &toasts)
	if len(toasts) == 0 {
		t.Fatal("expected notifications after the create")
	}

	var again []map[string]any
	getJSON(t, "/api/v1/notifications", &again)
	if len(again) != 0 {
		t.Fatalf("expected drained notifications, got %d", len(again))
	}
}
