package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeBackend struct {
	fail      atomic.Bool
	demoCalls atomic.Int32
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if f.fail.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))
		return
	}
	switch r.Method + " " + r.URL.Path {
	case "GET /api/v1/":
		_, _ = w.Write([]byte(`{"message":"Agent Evaluation API","version":"1.0.0"}`))
	case "GET /api/v1/models":
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"GPT-4","provider":"openai","model_id":"gpt-4","cost_per_1k_tokens":0.03,"max_tokens":8192,"is_active":true},
			{"id":2,"name":"Claude","provider":"anthropic","model_id":"claude-3","cost_per_1k_tokens":0.008,"max_tokens":200000,"is_active":true},
			{"id":3,"name":"Old Model","provider":"local","model_id":"old","cost_per_1k_tokens":0,"max_tokens":2048,"is_active":false}
		]`))
	case "GET /api/v1/test-cases":
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"SQL join","category":"coding","description":"Write a query","input_text":"Join users and orders","difficulty_level":"hard"},
			{"id":2,"name":"Capital cities","category":"qa","description":"Geography"}
		]`))
	case "GET /api/v1/categories":
		_, _ = w.Write([]byte(`["coding","qa"]`))
	case "GET /api/v1/evaluations":
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"First run","status":"completed","created_at":"2025-01-01T00:00:00"},
			{"id":2,"name":"Busy run","status":"running","created_at":"2025-01-05T00:00:00"},
			{"id":3,"name":"Latest run","status":"completed","created_at":"2025-01-03T00:00:00"}
		]`))
	case "GET /api/v1/evaluations/3/results", "GET /api/v1/evaluations/1/results":
		_, _ = w.Write([]byte(`{"summary":{"total_results":2,"successful_results":1},"results":[
			{"model_name":"GPT-4","test_case_name":"SQL join","category":"coding","accuracy_score":0.9,"response_time_ms":1500,"cost_usd":0.01},
			{"model_name":"Claude","test_case_name":"SQL join","category":"coding","accuracy_score":0,"response_time_ms":300,"cost_usd":0,"error":"rate limited"}
		]}`))
	case "GET /api/v1/evaluations/3/metrics":
		_, _ = w.Write([]byte(`[{"model_name":"GPT-4","category":"coding","overall_rank":1,"accuracy_rank":1,"speed_rank":2,"cost_rank":2}]`))
	case "POST /api/v1/evaluations/quick-demo":
		f.demoCalls.Add(1)
		_, _ = w.Write([]byte(`{"message":"Quick demo started","status":"running"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found"}`))
	}
}

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	cfg := appconfig.Default()
	cfg.APIBaseURL = api.URL + "/api/v1"
	s := New(cfg, evalapi.NewFromConfig(cfg))
	s.now = func() time.Time { return time.Date(2025, 1, 3, 2, 0, 0, 0, time.UTC) }
	return s, backend
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDashboardPage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `content="10"`)
	assert.Contains(t, body, "Models (2 active)")
	assert.Contains(t, body, "Latest run")
	assert.Contains(t, body, "2h ago")
	assert.Contains(t, body, `href="/results?evaluation=3"`)
	assert.Contains(t, body, `class="active">Dashboard`)
	assert.NotContains(t, body, "Error:")
}

func TestDashboardPage_BackendDown(t *testing.T) {
	s, backend := newTestServer(t)
	backend.fail.Store(true)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error: load models")
	assert.Contains(t, body, "database unavailable")
	assert.Contains(t, body, "No evaluations yet.")
}

func TestDemo_RedirectsAndRefreshesSoon(t *testing.T) {
	s, backend := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/demo", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?demo=started", rec.Header().Get("Location"))
	assert.Equal(t, int32(1), backend.demoCalls.Load())

	body := get(t, s, "/?demo=started").Body.String()
	assert.Contains(t, body, "Demo started")
	assert.Contains(t, body, `content="2;url=/"`)

	backend.fail.Store(true)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/demo", nil))
	assert.Equal(t, "/?demo=error", rec.Header().Get("Location"))
}

func TestDemo_OneInFlight(t *testing.T) {
	s, backend := newTestServer(t)
	s.demoInFlight.Store(true)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/demo", nil))
	assert.Equal(t, "/?demo=busy", rec.Header().Get("Location"))
	assert.Equal(t, int32(0), backend.demoCalls.Load())
}

func TestDemo_RequiresPost(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, s, "/demo").Code)
}

func TestModelsPage_Filter(t *testing.T) {
	s, _ := newTestServer(t)

	body := get(t, s, "/models").Body.String()
	assert.Contains(t, body, "GPT-4")
	assert.Contains(t, body, "Old Model")
	assert.Contains(t, body, "active (2)")
	assert.Contains(t, body, "inactive (1)")
	assert.Contains(t, body, "Anthropic")
	assert.Contains(t, body, "Large")

	body = get(t, s, "/models?filter=inactive").Body.String()
	assert.Contains(t, body, "Old Model")
	assert.NotContains(t, body, "<td>GPT-4</td>")
	assert.Contains(t, body, "Free")

	body = get(t, s, "/models?filter=bogus").Body.String()
	assert.Contains(t, body, "<td>GPT-4</td>")
	assert.Contains(t, body, "<td>Old Model</td>")
}

func TestTestCasesPage_SearchAndCategory(t *testing.T) {
	s, _ := newTestServer(t)

	body := get(t, s, "/test-cases?q=QUERY").Body.String()
	assert.Contains(t, body, "SQL join")
	assert.NotContains(t, body, "Capital cities</a>")
	assert.Contains(t, body, "1 of 2 test cases")

	body = get(t, s, "/test-cases?category=qa").Body.String()
	assert.Contains(t, body, "Capital cities</a>")
	assert.NotContains(t, body, "SQL join</a>")
	assert.Contains(t, body, `<option value="qa" selected>`)

	body = get(t, s, "/test-cases?q=sql&category=qa").Body.String()
	assert.Contains(t, body, "No test cases match")
}

func TestTestCaseDetail(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/test-cases/1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Test case #1")
	assert.Contains(t, body, "Join users and orders")
	assert.Contains(t, body, "hard")
	assert.Contains(t, body, "n/a")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/test-cases/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/test-cases/abc").Code)
}

func TestResultsPage(t *testing.T) {
	s, _ := newTestServer(t)

	body := get(t, s, "/results").Body.String()
	assert.Contains(t, body, "#3 Latest run")
	assert.Contains(t, body, "2 results, 1 successful (50.0%)")
	assert.Contains(t, body, "rate limited")
	assert.Contains(t, body, "Rankings")
	assert.Contains(t, body, "1.5s")
	assert.NotContains(t, body, "Busy run")
	assert.True(t, strings.Index(body, "<td>GPT-4</td><td>1</td>") < strings.Index(body, "<td>Claude</td><td>1</td>"))

	body = get(t, s, "/results?evaluation=1").Body.String()
	assert.Contains(t, body, "#1 First run")
	assert.NotContains(t, body, "Rankings")
	assert.NotContains(t, body, "Error:")
}

func TestResultsPage_UnknownEvaluation(t *testing.T) {
	s, _ := newTestServer(t)

	body := get(t, s, "/results?evaluation=99").Body.String()
	assert.Contains(t, body, "Error: select evaluation: evaluation 99 is not a completed run")
	assert.Contains(t, body, "Pick a completed evaluation.")
	assert.NotContains(t, body, "<h2>#3 Latest run</h2>")
	assert.NotContains(t, body, "rate limited")

	body = get(t, s, "/results?evaluation=abc").Body.String()
	assert.Contains(t, body, `Error: select evaluation: invalid evaluation id &#34;abc&#34;`)
}

func TestExport(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/results/export?format=yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "evaluation-3.yaml")
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc, "model_stats")

	rec = get(t, s, "/results/export?evaluation=1&format=json")
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Evaluation evalapi.Evaluation `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Evaluation.ID)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/results/export?format=csv").Code)

	rec = get(t, s, "/results/export?format=yml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "evaluation-3.yml")
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))

	rec = get(t, s, "/results/export?evaluation=99&format=json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "evaluation 99 is not a completed run")
}

func TestHealthAndAPI(t *testing.T) {
	s, backend := newTestServer(t)

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend_version":"1.0.0"`)

	rec = get(t, s, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Counts struct {
			Models   int            `json:"models"`
			ByStatus map[string]int `json:"by_status"`
		} `json:"counts"`
		Recent []evalapi.Evaluation `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 3, payload.Counts.Models)
	assert.Equal(t, 2, payload.Counts.ByStatus["completed"])
	require.Len(t, payload.Recent, 3)
	assert.Equal(t, 2, payload.Recent[0].ID)

	backend.fail.Store(true)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/health").Code)
}

func TestUnknownPath(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}
