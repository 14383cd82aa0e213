package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sherpa-labs/sherpa/internal/flatfile"
	"github.com/sherpa-labs/sherpa/internal/store"
)

// Mocks
type mockFrameworks struct {
	frameworks map[string]*store.Framework
	saves      int
}

func newMockFrameworks() *mockFrameworks {
	return &mockFrameworks{frameworks: make(map[string]*store.Framework)}
}
func (m *mockFrameworks) ListFrameworks(onlyActive bool) ([]*store.Framework, error) {
	var out []*store.Framework
	for _, fw := range m.frameworks {
		if onlyActive && !fw.Active {
			continue
		}
		out = append(out, fw)
	}
	return out, nil
}
func (m *mockFrameworks) GetFramework(name string) (*store.Framework, error) {
	return m.frameworks[name], nil
}
func (m *mockFrameworks) SaveFramework(fw *store.Framework) (string, error) {
	// Stamp a distinct creation marker per save, like the file store
	// stamps the current time on first write.
	m.saves++
	if fw.CreatedAt == "" {
		fw.CreatedAt = "save-" + strconv.Itoa(m.saves)
	}
	m.frameworks[fw.Name] = fw
	return fw.Name + ".json", nil
}
func (m *mockFrameworks) DeleteFramework(name string) error {
	delete(m.frameworks, name)
	return nil
}
func (m *mockFrameworks) BackupFramework(_ string) error { return nil }

type mockCompasses struct {
	compasses map[string]*store.Compass
}

func newMockCompasses() *mockCompasses {
	return &mockCompasses{compasses: make(map[string]*store.Compass)}
}
func (m *mockCompasses) ListCompasses() ([]*store.Compass, error) {
	var out []*store.Compass
	for _, c := range m.compasses {
		out = append(out, c)
	}
	return out, nil
}
func (m *mockCompasses) GetCompass(name string) (*store.Compass, error) {
	return m.compasses[name], nil
}
func (m *mockCompasses) SaveCompass(c *store.Compass) (string, error) {
	m.compasses[c.Name] = c
	return c.Name + ".json", nil
}
func (m *mockCompasses) DeleteCompass(name string) error {
	delete(m.compasses, name)
	return nil
}
func (m *mockCompasses) BackupCompass(_ string) error { return nil }

type mockSubnets struct {
	records map[uuid.UUID]*store.SubnetRecord
}

func newMockSubnets() *mockSubnets {
	return &mockSubnets{records: make(map[uuid.UUID]*store.SubnetRecord)}
}
func (m *mockSubnets) UpsertSubnet(_ context.Context, rec *store.SubnetRecord) error {
	m.records[rec.ID] = rec
	return nil
}
func (m *mockSubnets) GetSubnet(_ context.Context, id uuid.UUID) (*store.SubnetRecord, error) {
	return m.records[id], nil
}
func (m *mockSubnets) ListSubnets(_ context.Context) ([]*store.SubnetRecord, error) {
	var out []*store.SubnetRecord
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}
func (m *mockSubnets) DeleteSubnet(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}
func (m *mockSubnets) ClearSubnets(_ context.Context) error {
	m.records = make(map[uuid.UUID]*store.SubnetRecord)
	return nil
}
func (m *mockSubnets) Close() error { return nil }

type mockEvents struct {
	published []string
}

func (m *mockEvents) Publish(subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}
func (m *mockEvents) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *mockEvents) Close()                                           {}

type mockSeeder struct{ seeded bool }

func (m *mockSeeder) SeedBackups() error {
	m.seeded = true
	return nil
}

type testEnv struct {
	router     http.Handler
	frameworks *mockFrameworks
	compasses  *mockCompasses
	subnets    *mockSubnets
	events     *mockEvents
	seeder     *mockSeeder
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	env := &testEnv{
		frameworks: newMockFrameworks(),
		compasses:  newMockCompasses(),
		subnets:    newMockSubnets(),
		events:     &mockEvents{},
		seeder:     &mockSeeder{},
	}
	env.router = NewRouter(Deps{
		Frameworks: env.frameworks,
		Compasses:  env.compasses,
		Subnets:    env.subnets,
		Table:      flatfile.NewFile(filepath.Join(dir, "subnets.csv"), filepath.Join(dir, "backup", "subnets.csv"), logger),
		Events:     env.events,
		Seeder:     env.seeder,
		AdminToken: "test-token",
		Logger:     logger,
	})
	return env
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveAndGetFramework(t *testing.T) {
	env := setupTestRouter(t)

	body := `{"name":"Custom","description":"test framework","criteria":{"service":{"uptime":{"question":"Is it up?"}}}}`
	w := doRequest(env.router, "POST", "/api/v1/frameworks/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(env.router, "GET", "/api/v1/frameworks/Custom", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var fw store.Framework
	json.NewDecoder(w.Body).Decode(&fw)
	if fw.Name != "Custom" {
		t.Errorf("expected name 'Custom', got '%s'", fw.Name)
	}
	if !fw.Active {
		t.Error("expected framework active by default")
	}
	if fw.Criteria.Service["uptime"].Question != "Is it up?" {
		t.Errorf("criteria not preserved: %+v", fw.Criteria.Service)
	}

	if len(env.events.published) == 0 || !strings.Contains(env.events.published[0], "sherpa.framework.Custom.saved") {
		t.Errorf("expected framework saved event, got %v", env.events.published)
	}
}

func TestGetFrameworkNotFound(t *testing.T) {
	env := setupTestRouter(t)
	w := doRequest(env.router, "GET", "/api/v1/frameworks/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSaveFrameworkValidation(t *testing.T) {
	env := setupTestRouter(t)
	w := doRequest(env.router, "POST", "/api/v1/frameworks/", `{"description":"nameless"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestUpdateFrameworkKeepsCreatedAt(t *testing.T) {
	env := setupTestRouter(t)

	doRequest(env.router, "POST", "/api/v1/frameworks/", `{"name":"Custom","description":"v1"}`)
	created := env.frameworks.frameworks["Custom"].CreatedAt
	if created == "" {
		t.Fatal("expected created_at stamped on first save")
	}

	// An update that omits created_at must not reset it.
	w := doRequest(env.router, "PUT", "/api/v1/frameworks/Custom", `{"name":"Custom","description":"v2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	fw := env.frameworks.frameworks["Custom"]
	if fw.Description != "v2" {
		t.Errorf("expected updated description, got %q", fw.Description)
	}
	if fw.CreatedAt != created {
		t.Errorf("created_at changed on update: %q -> %q", created, fw.CreatedAt)
	}
}

func TestActivateDeactivateFramework(t *testing.T) {
	env := setupTestRouter(t)
	doRequest(env.router, "POST", "/api/v1/frameworks/", `{"name":"Toggle"}`)

	w := doRequest(env.router, "POST", "/api/v1/frameworks/Toggle/deactivate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var fw store.Framework
	json.NewDecoder(w.Body).Decode(&fw)
	if fw.Active {
		t.Error("expected framework deactivated")
	}

	// Active filter hides it now.
	w = doRequest(env.router, "GET", "/api/v1/frameworks/?active=true", "")
	var fws []*store.Framework
	json.NewDecoder(w.Body).Decode(&fws)
	if len(fws) != 0 {
		t.Errorf("expected no active frameworks, got %d", len(fws))
	}

	doRequest(env.router, "POST", "/api/v1/frameworks/Toggle/activate", "")
	w = doRequest(env.router, "GET", "/api/v1/frameworks/?active=true", "")
	json.NewDecoder(w.Body).Decode(&fws)
	if len(fws) != 1 {
		t.Errorf("expected 1 active framework, got %d", len(fws))
	}
}

func TestSaveCompassComputesDerivedFields(t *testing.T) {
	env := setupTestRouter(t)

	body := `{
		"name": "apex",
		"service_oriented_scores": {"a": 10},
		"research_oriented_scores": {"b": 0},
		"intelligence_oriented_scores": {"c": 5},
		"resource_oriented_scores": {"d": 5}
	}`
	w := doRequest(env.router, "POST", "/api/v1/compasses/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string         `json:"status"`
		Compass *store.Compass `json:"compass"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	c := resp.Compass
	if c == nil {
		t.Fatal("expected compass in response")
	}
	if c.TotalScore != 5 {
		t.Errorf("expected total 5, got %v", c.TotalScore)
	}
	if c.Tier != "Tier D" {
		t.Errorf("expected Tier D, got %s", c.Tier)
	}
	if c.ServiceResearch.X != 10 || c.ServiceResearch.Y != -10 {
		t.Errorf("service/research axis = %+v, want (10,-10)", c.ServiceResearch)
	}
	if c.IntelligenceResource.X != 0 || c.IntelligenceResource.Y != 0 {
		t.Errorf("intelligence/resource axis = %+v, want (0,0)", c.IntelligenceResource)
	}
	if c.UID == "" {
		t.Error("expected generated uid")
	}

	// The snapshot row mirrors the saved compass.
	recs, _ := env.subnets.ListSubnets(context.Background())
	if len(recs) != 1 {
		t.Fatalf("expected 1 subnet record, got %d", len(recs))
	}
	if recs[0].Name != "apex" || recs[0].TotalScore != 5 {
		t.Errorf("record = %+v, want apex with total 5", recs[0])
	}

	// Both the evaluation and the save are announced.
	wantSubjects := []string{"sherpa.compass.apex.evaluated", "sherpa.compass.apex.saved"}
	for _, want := range wantSubjects {
		found := false
		for _, got := range env.events.published {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s published, got %v", want, env.events.published)
		}
	}
}

func TestDeleteCompass(t *testing.T) {
	env := setupTestRouter(t)
	doRequest(env.router, "POST", "/api/v1/compasses/", `{"name":"gone"}`)

	w := doRequest(env.router, "DELETE", "/api/v1/compasses/gone", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = doRequest(env.router, "GET", "/api/v1/compasses/gone", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestEvaluateStateless(t *testing.T) {
	env := setupTestRouter(t)

	body := `{
		"service_oriented_scores": {"a": 10, "b": 8},
		"research_oriented_scores": {"c": 6},
		"intelligence_oriented_scores": {"d": 4},
		"resource_oriented_scores": {"e": 2}
	}`
	w := doRequest(env.router, "POST", "/api/v1/evaluate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		TotalScore float64 `json:"total_score"`
		Tier       string  `json:"tier"`
		BaseScore  float64 `json:"base_score"`
	}
	json.NewDecoder(w.Body).Decode(&result)
	// Group averages 9, 6, 4, 2 give a base of 5.25; no additional scores.
	if result.BaseScore != 5.25 {
		t.Errorf("expected base 5.25, got %v", result.BaseScore)
	}
	if result.TotalScore != 5.25 {
		t.Errorf("expected total 5.25, got %v", result.TotalScore)
	}
	if result.Tier != "Tier D" {
		t.Errorf("expected Tier D, got %s", result.Tier)
	}
}

func TestChartsQuadrant(t *testing.T) {
	env := setupTestRouter(t)
	doRequest(env.router, "POST", "/api/v1/compasses/", `{"name":"apex","service_oriented_scores":{"a":10}}`)

	w := doRequest(env.router, "GET", "/api/v1/charts/quadrant", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var fig struct {
		Traces []struct {
			Text []string `json:"text"`
		} `json:"traces"`
	}
	json.NewDecoder(w.Body).Decode(&fig)
	if len(fig.Traces) != 1 || len(fig.Traces[0].Text) != 1 || fig.Traces[0].Text[0] != "apex" {
		t.Errorf("unexpected figure traces: %+v", fig.Traces)
	}

	w = doRequest(env.router, "GET", "/api/v1/charts/quadrant?kind=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown axis, got %d", w.Code)
	}
}

func TestSubnetTableImportExport(t *testing.T) {
	env := setupTestRouter(t)

	csv := "Name;Service-Research;Intelligence-Resource;custom-eval;personal-notes\nApex;-3,5;7,25;1,8;strong team\n"
	w := doRequest(env.router, "POST", "/api/v1/subnets/import", csv)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(env.router, "GET", "/api/v1/subnets/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "Apex;-3,5;7,25;1,8;strong team") {
		t.Errorf("export missing imported row: %s", w.Body.String())
	}

	// The map chart is built from the same table.
	w = doRequest(env.router, "GET", "/api/v1/charts/map", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Apex") {
		t.Error("map chart missing imported subnet")
	}
}

func TestMapChartOrientation(t *testing.T) {
	env := setupTestRouter(t)

	csv := "Name;Service-Research;Intelligence-Resource;custom-eval\nApex;-6,5;7,25;1,8\n"
	w := doRequest(env.router, "POST", "/api/v1/subnets/import", csv)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(env.router, "GET", "/api/v1/charts/map", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var fig struct {
		Traces []struct {
			Mode string    `json:"mode"`
			X    []float64 `json:"x"`
			Y    []float64 `json:"y"`
		} `json:"traces"`
		Layout struct {
			XAxis struct {
				Title string `json:"title"`
			} `json:"xaxis"`
			YAxis struct {
				Title string `json:"title"`
			} `json:"yaxis"`
		} `json:"layout"`
	}
	json.NewDecoder(w.Body).Decode(&fig)

	markers := fig.Traces[len(fig.Traces)-1]
	if markers.Mode != "markers" {
		t.Fatalf("last trace mode = %q, want markers", markers.Mode)
	}
	// Service-Research is horizontal, Intelligence-Resource vertical,
	// matching the reference curves which are functions of x.
	if markers.X[0] != -6.5 || markers.Y[0] != 7.25 {
		t.Errorf("marker at (%v,%v), want (-6.5,7.25)", markers.X[0], markers.Y[0])
	}
	if fig.Layout.XAxis.Title != "Service → Research" {
		t.Errorf("x axis title = %q", fig.Layout.XAxis.Title)
	}
	if fig.Layout.YAxis.Title != "Resource → Intelligence" {
		t.Errorf("y axis title = %q", fig.Layout.YAxis.Title)
	}
}

func TestSubnetImportRejectsBadCSV(t *testing.T) {
	env := setupTestRouter(t)
	w := doRequest(env.router, "POST", "/api/v1/subnets/import", "Name;a;b;c\nx;oops;1;2\n")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSubnetRecordLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	doRequest(env.router, "POST", "/api/v1/compasses/", `{"name":"apex","service_oriented_scores":{"a":10}}`)

	w := doRequest(env.router, "GET", "/api/v1/subnets/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var recs []*store.SubnetRecord
	json.NewDecoder(w.Body).Decode(&recs)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	w = doRequest(env.router, "GET", "/api/v1/subnets/"+recs[0].ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doRequest(env.router, "DELETE", "/api/v1/subnets/"+recs[0].ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = doRequest(env.router, "GET", "/api/v1/subnets/"+recs[0].ID.String(), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	w = doRequest(env.router, "GET", "/api/v1/subnets/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}
