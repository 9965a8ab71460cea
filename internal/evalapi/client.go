// internal/evalapi/client.go
// Package evalapi is a thin client for the evaluation service's REST API.
package evalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/logging"
)

// Client talks to the evaluation service. Calls are grouped by resource.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Models      *ModelsService
	TestCases   *TestCasesService
	Categories  *CategoriesService
	Evaluations *EvaluationsService
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New constructs a client for baseURL with a fixed per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Models = &ModelsService{client: c}
	c.TestCases = &TestCasesService{client: c}
	c.Categories = &CategoriesService{client: c}
	c.Evaluations = &EvaluationsService{client: c}
	return c
}

// NewFromConfig constructs a client from the application configuration.
func NewFromConfig(cfg appconfig.Config, opts ...Option) *Client {
	return New(cfg.BaseURL(), cfg.RequestTimeout(), opts...)
}

// BaseURL returns the API root the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

// Health calls GET / on the API root.
func (c *Client) Health(ctx context.Context) (ServiceInfo, error) {
	var out ServiceInfo
	err := c.do(ctx, http.MethodGet, "/", nil, nil, &out)
	return out, err
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", err
	}
	u := base.ResolveReference(rel)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// do performs one request. Requests and responses are logged; errors are logged and returned unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint, err := c.resolve(path, query)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogRequest("out", method, endpoint, requestID, body)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.LogError(fmt.Sprintf("%s %s", method, endpoint), err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	logging.LogResponse(method, endpoint, requestID, resp.StatusCode, time.Since(start))
	if err != nil {
		logging.LogError(fmt.Sprintf("read %s", endpoint), err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(path, resp.StatusCode, data)
		logging.LogError(fmt.Sprintf("%s %s", method, endpoint), apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		decodeErr := fmt.Errorf("decode %s response: %w", path, err)
		logging.LogError(fmt.Sprintf("%s %s", method, endpoint), decodeErr)
		return decodeErr
	}
	return nil
}

// ModelsService wraps the /models endpoint.
type ModelsService struct{ client *Client }

// List returns every model known to the service.
func (s *ModelsService) List(ctx context.Context) ([]Model, error) {
	var out []Model
	if err := s.client.do(ctx, http.MethodGet, "/models", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TestCasesService wraps the /test-cases endpoint.
type TestCasesService struct{ client *Client }

// List returns test cases, narrowed server-side to category when it is not empty.
func (s *TestCasesService) List(ctx context.Context, category string) ([]TestCase, error) {
	var query url.Values
	if category = strings.TrimSpace(category); category != "" {
		query = url.Values{"category": []string{category}}
	}
	var out []TestCase
	if err := s.client.do(ctx, http.MethodGet, "/test-cases", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoriesService wraps the /categories endpoint.
type CategoriesService struct{ client *Client }

// List returns the distinct test case categories.
func (s *CategoriesService) List(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.client.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluationsService wraps the /evaluations endpoints.
type EvaluationsService struct{ client *Client }

// List returns all evaluation runs, newest first as ordered by the service.
func (s *EvaluationsService) List(ctx context.Context) ([]Evaluation, error) {
	var out []Evaluation
	if err := s.client.do(ctx, http.MethodGet, "/evaluations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single evaluation run.
func (s *EvaluationsService) Get(ctx context.Context, id int) (Evaluation, error) {
	var out Evaluation
	err := s.client.do(ctx, http.MethodGet, evaluationPath(id, ""), nil, nil, &out)
	return out, err
}

// Create validates req and starts a new evaluation run.
func (s *EvaluationsService) Create(ctx context.Context, req EvaluationRequest) (EvaluationStart, error) {
	if err := ValidateEvaluationRequest(req); err != nil {
		return EvaluationStart{}, err
	}
	var out EvaluationStart
	err := s.client.do(ctx, http.MethodPost, "/evaluations", nil, req, &out)
	return out, err
}

// QuickDemo starts the backend's demo evaluation over all models and test cases.
func (s *EvaluationsService) QuickDemo(ctx context.Context) (DemoStart, error) {
	var out DemoStart
	err := s.client.do(ctx, http.MethodPost, "/evaluations/quick-demo", nil, nil, &out)
	return out, err
}

// Results returns the detailed results of an evaluation run.
func (s *EvaluationsService) Results(ctx context.Context, id int) (EvaluationResults, error) {
	var out EvaluationResults
	err := s.client.do(ctx, http.MethodGet, evaluationPath(id, "results"), nil, nil, &out)
	return out, err
}

// Metrics returns the backend's ranking metrics for an evaluation run.
func (s *EvaluationsService) Metrics(ctx context.Context, id int) ([]PerformanceMetric, error) {
	var out []PerformanceMetric
	if err := s.client.do(ctx, http.MethodGet, evaluationPath(id, "metrics"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func evaluationPath(id int, sub string) string {
	path := "/evaluations/" + strconv.Itoa(id)
	if sub != "" {
		path += "/" + sub
	}
	return path
}
