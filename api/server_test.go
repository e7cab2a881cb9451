package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stacksafe/core/engine"
	"stacksafe/core/kb"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	knowledgeBase, err := kb.Builtin()
	if err != nil {
		t.Fatalf("failed to build knowledge base: %v", err)
	}
	return NewServer("test", engine.NewAnalyzer(knowledgeBase, engine.Config{}))
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{
		"items": [
			{"name": "Vitamin E", "dose": 268, "unit": "mg", "role": "supplement"},
			{"name": "Warfarin", "dose": 5, "unit": "mg", "role": "medication"}
		]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Report == nil {
		t.Fatal("expected a report")
	}
	if resp.Report.Result.OverallRiskLevel.String() != "high" {
		t.Errorf("expected high risk, got %s", resp.Report.Result.OverallRiskLevel)
	}
	if resp.Metadata.RequestID == "" || resp.Metadata.InputHash == "" {
		t.Errorf("expected populated metadata, got %+v", resp.Metadata)
	}
	if resp.Metadata.KBVersion != kb.BuiltinVersion {
		t.Errorf("expected kb version %s, got %s", kb.BuiltinVersion, resp.Metadata.KBVersion)
	}
}

func TestAnalyzeEndpointStringDose(t *testing.T) {
	// Doses may arrive as JSON strings as well as numbers; both must keep
	// full precision.
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{
		"items": [
			{"name": "Vitamin D3", "dose": "5000", "unit": "iu", "role": "supplement"}
		]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Report.Result.NutrientWarnings) != 1 {
		t.Errorf("expected 1 nutrient warning, got %d", len(resp.Report.Result.NutrientWarnings))
	}
}

func TestAnalyzeEndpointRejectsInvalidItem(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{
		"items": [
			{"name": "Zinc", "dose": 0, "unit": "mg", "role": "supplement"}
		]
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Code != "INVALID_STACK_ITEM" {
		t.Errorf("expected INVALID_STACK_ITEM, got %s", resp.Error.Code)
	}
}

func TestAnalyzeEndpointRejectsMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/analyze", `{"items": [`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected status: %v", body["status"])
	}
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["kb_version"] != kb.BuiltinVersion {
		t.Errorf("expected kb version %s, got %s", kb.BuiltinVersion, body["kb_version"])
	}
}

func TestKBEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/kb", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats kb.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Rules == 0 {
		t.Error("expected rule count in stats")
	}
}

func TestHistoryEndpointUnconfigured(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/history", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a store, got %d", rec.Code)
	}
}
