package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/evalboard/internal/dashboard"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/models"
	"github.com/mwiater/evalboard/internal/results"
	"github.com/mwiater/evalboard/internal/testcases"
)

// basePage holds what every page template needs for its chrome.
type basePage struct {
	Title      string
	Active     string
	Backend    string
	Refresh    int
	RefreshURL string
	Errors     []string
}

func (s *Server) base(title, active string) basePage {
	return basePage{Title: title, Active: active, Backend: s.client.BaseURL()}
}

func (p *basePage) addError(context string, err error) {
	if err != nil {
		p.Errors = append(p.Errors, fmt.Sprintf("%s: %v", context, err))
	}
}

type dashboardPage struct {
	basePage
	Counts   dashboard.Counts
	Statuses []string
	Recent   []evalapi.Evaluation
	Demo     string
	PollSecs int
}

type filterOption struct {
	Value    models.Filter
	Count    int
	Selected bool
}

type modelRow struct {
	evalapi.Model
	ProviderName string
	ProviderHue  string
	CostTier     string
	ContextSize  string
}

type modelsPage struct {
	basePage
	Filters []filterOption
	Models  []modelRow
}

type testCasesPage struct {
	basePage
	Search     string
	Category   string
	Categories []string
	Cases      []evalapi.TestCase
	Total      int
}

type testCasePage struct {
	basePage
	Case   evalapi.TestCase
	Fields []testcases.Field
}

type resultsPage struct {
	basePage
	Runs     []evalapi.Evaluation
	Selected evalapi.Evaluation
	Found    bool
	Totals   results.Totals
	Stats    []results.ModelStat
	Results  []evalapi.Result
	Metrics  []evalapi.PerformanceMetric
}

func (s *Server) render(w http.ResponseWriter, name string, status int, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logging.LogError("render "+name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.LogError("encode json response", err)
	}
}

func seconds(d time.Duration) int {
	secs := int(d / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap := dashboard.Load(r.Context(), s.client)

	page := dashboardPage{
		basePage: s.base("Dashboard", "dashboard"),
		Counts:   snap.Counts(),
		Statuses: []string{evalapi.StatusRunning, evalapi.StatusCompleted, evalapi.StatusFailed, evalapi.StatusPending},
		Recent:   snap.Recent(s.cfg.RecentCount()),
		Demo:     r.URL.Query().Get("demo"),
		PollSecs: seconds(s.cfg.PollInterval()),
	}
	for _, name := range []string{dashboard.CollectionModels, dashboard.CollectionTestCases, dashboard.CollectionCategories, dashboard.CollectionEvaluations} {
		page.addError("load "+name, snap.Errors[name])
	}

	page.Refresh = page.PollSecs
	if page.Demo == "started" {
		page.Refresh = seconds(s.cfg.DemoRefreshDelay())
		page.RefreshURL = "/"
	}
	s.render(w, "dashboard", http.StatusOK, page)
}

func (s *Server) demoHandler(w http.ResponseWriter, r *http.Request) {
	if !s.demoInFlight.CompareAndSwap(false, true) {
		http.Redirect(w, r, "/?demo=busy", http.StatusSeeOther)
		return
	}
	defer s.demoInFlight.Store(false)

	state := "started"
	if _, err := dashboard.TriggerDemo(r.Context(), s.client); err != nil {
		state = "error"
	}
	http.Redirect(w, r, "/?demo="+state, http.StatusSeeOther)
}

func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	page := modelsPage{basePage: s.base("Models", "models")}
	list, err := s.client.Models.List(r.Context())
	page.addError("load models", err)

	filter := models.ParseFilter(r.URL.Query().Get("filter"))
	counts := models.Counts(list)
	for _, f := range models.Filters {
		page.Filters = append(page.Filters, filterOption{Value: f, Count: counts[f], Selected: f == filter})
	}
	for _, mdl := range models.Apply(list, filter) {
		info := models.Provider(mdl.Provider)
		page.Models = append(page.Models, modelRow{
			Model:        mdl,
			ProviderName: info.Name,
			ProviderHue:  info.Hex,
			CostTier:     models.CostTier(mdl.CostPer1KTokens),
			ContextSize:  models.ContextSize(mdl.MaxTokens),
		})
	}
	s.render(w, "models", http.StatusOK, page)
}

func (s *Server) testCasesHandler(w http.ResponseWriter, r *http.Request) {
	page := testCasesPage{basePage: s.base("Test Cases", "test-cases")}
	list, err := s.client.TestCases.List(r.Context(), "")
	page.addError("load test cases", err)

	query := testcases.Query{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if strings.TrimSpace(query.Category) == "" {
		query.Category = testcases.AllCategories
	}
	page.Search = query.Search
	page.Category = query.Category
	page.Categories = testcases.CategoryOptions(list)
	page.Cases = testcases.Filter(list, query)
	page.Total = len(list)
	s.render(w, "test-cases", http.StatusOK, page)
}

func (s *Server) testCaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid test case id", http.StatusBadRequest)
		return
	}
	list, err := s.client.TestCases.List(r.Context(), "")
	if err != nil {
		page := testCasePage{basePage: s.base("Test Case", "test-cases")}
		page.addError("load test cases", err)
		s.render(w, "test-case", http.StatusBadGateway, page)
		return
	}
	tc, ok := testcases.Find(list, id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	page := testCasePage{
		basePage: s.base(tc.Name, "test-cases"),
		Case:     tc,
		Fields:   testcases.Details(tc),
	}
	s.render(w, "test-case", http.StatusOK, page)
}

// pickRun returns the completed run named by raw, or the most recent one when
// raw is empty. A raw id that is not a completed run is an error.
func pickRun(runs []evalapi.Evaluation, raw string) (evalapi.Evaluation, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if len(runs) == 0 {
			return evalapi.Evaluation{}, false, nil
		}
		return runs[0], true, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return evalapi.Evaluation{}, false, fmt.Errorf("invalid evaluation id %q", raw)
	}
	for _, run := range runs {
		if run.ID == id {
			return run, true, nil
		}
	}
	return evalapi.Evaluation{}, false, fmt.Errorf("evaluation %d is not a completed run", id)
}

func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	page := resultsPage{basePage: s.base("Results", "results")}
	evals, err := s.client.Evaluations.List(r.Context())
	page.addError("load evaluations", err)

	page.Runs = results.Completed(evals)
	page.Selected, page.Found, err = pickRun(page.Runs, r.URL.Query().Get("evaluation"))
	page.addError("select evaluation", err)
	if page.Found {
		detail, err := results.Fetch(r.Context(), s.client, page.Selected.ID)
		page.addError("load results", err)
		page.Results = detail.Results
		page.Metrics = detail.Metrics
		page.Totals = results.Summarize(detail.Results)
		page.Stats = results.Aggregate(detail.Results)
	}
	s.render(w, "results", http.StatusOK, page)
}

var exportContentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"md":   "text/markdown; charset=utf-8",
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("unsupported export format %q", format), http.StatusBadRequest)
		return
	}

	evals, err := s.client.Evaluations.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("load evaluations: %v", err), http.StatusBadGateway)
		return
	}
	run, found, err := pickRun(results.Completed(evals), r.URL.Query().Get("evaluation"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if !found {
		http.Error(w, "no completed evaluation to export", http.StatusNotFound)
		return
	}
	detail, err := results.Fetch(r.Context(), s.client, run.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := results.Write(&buf, format, results.NewReport(run, detail)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="evaluation-%d.%s"`, run.ID, format))
	_, _ = buf.WriteTo(w)
}

// dashboardAPIHandler returns the dashboard snapshot as JSON for scripted polling.
func (s *Server) dashboardAPIHandler(w http.ResponseWriter, r *http.Request) {
	snap := dashboard.Load(r.Context(), s.client)
	errs := map[string]string{}
	for name, err := range snap.Errors {
		if err != nil {
			errs[name] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, struct {
		Counts    dashboard.Counts     `json:"counts"`
		Recent    []evalapi.Evaluation `json:"recent"`
		Errors    map[string]string    `json:"errors,omitempty"`
		FetchedAt time.Time            `json:"fetched_at"`
	}{
		Counts:    snap.Counts(),
		Recent:    snap.Recent(s.cfg.RecentCount()),
		Errors:    errs,
		FetchedAt: snap.FetchedAt,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.client.Health(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "degraded",
			"backend": s.client.BaseURL(),
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":          "ok",
		"backend":         s.client.BaseURL(),
		"backend_version": info.Version,
	})
}
