// internal/evalapi/types.go
package evalapi

import "encoding/json"

// Evaluation statuses reported by the backend.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Model is an LLM registered with the evaluation service.
type Model struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	ModelID         string  `json:"model_id"`
	CostPer1KTokens float64 `json:"cost_per_1k_tokens"`
	MaxTokens       int     `json:"max_tokens"`
	APIEndpoint     string  `json:"api_endpoint,omitempty"`
	IsActive        bool    `json:"is_active"`
}

// TestCase is a single prompt the service evaluates models against.
type TestCase struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Description        string `json:"description,omitempty"`
	InputText          string `json:"input_text,omitempty"`
	ExpectedOutput     string `json:"expected_output,omitempty"`
	EvaluationCriteria string `json:"evaluation_criteria,omitempty"`
	Difficulty         string `json:"difficulty,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// UnmarshalJSON accepts difficulty under either "difficulty" or "difficulty_level".
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	type alias TestCase
	aux := &struct {
		*alias
		DifficultyLevel string `json:"difficulty_level"`
	}{alias: (*alias)(tc)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if tc.Difficulty == "" {
		tc.Difficulty = aux.DifficultyLevel
	}
	return nil
}

// Evaluation is one evaluation run.
type Evaluation struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status" yaml:"status"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
}

// ResultSummary aggregates a run's results as computed by the backend.
type ResultSummary struct {
	TotalResults      int      `json:"total_results"`
	SuccessfulResults int      `json:"successful_results"`
	Categories        []string `json:"categories"`
	Models            []string `json:"models"`
}

// Result is the outcome of running one test case against one model.
type Result struct {
	ModelName      string  `json:"model_name" yaml:"model_name"`
	TestCaseName   string  `json:"test_case_name" yaml:"test_case_name"`
	Category       string  `json:"category" yaml:"category"`
	AccuracyScore  float64 `json:"accuracy_score" yaml:"accuracy_score"`
	ResponseTimeMS float64 `json:"response_time_ms" yaml:"response_time_ms"`
	CostUSD        float64 `json:"cost_usd" yaml:"cost_usd"`
	TokensUsed     int     `json:"tokens_used,omitempty" yaml:"tokens_used,omitempty"`
	ModelOutput    string  `json:"model_output,omitempty" yaml:"model_output,omitempty"`
	AgentFeedback  string  `json:"agent_feedback,omitempty" yaml:"agent_feedback,omitempty"`
	Error          string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the result carries no error.
func (r Result) Succeeded() bool { return r.Error == "" }

// PerformanceMetric is the backend's per-model, per-category ranking row.
type PerformanceMetric struct {
	ModelName       string  `json:"model_name" yaml:"model_name"`
	Category        string  `json:"category" yaml:"category"`
	AvgAccuracy     float64 `json:"avg_accuracy" yaml:"avg_accuracy"`
	AvgResponseTime float64 `json:"avg_response_time" yaml:"avg_response_time"`
	TotalCost       float64 `json:"total_cost" yaml:"total_cost"`
	TotalTokens     int     `json:"total_tokens" yaml:"total_tokens"`
	SuccessRate     float64 `json:"success_rate" yaml:"success_rate"`
	AccuracyRank    int     `json:"accuracy_rank" yaml:"accuracy_rank"`
	SpeedRank       int     `json:"speed_rank" yaml:"speed_rank"`
	CostRank        int     `json:"cost_rank" yaml:"cost_rank"`
	OverallRank     int     `json:"overall_rank" yaml:"overall_rank"`
}

// EvaluationResults is the detailed payload of GET /evaluations/{id}/results.
type EvaluationResults struct {
	EvaluationRun *Evaluation         `json:"evaluation_run,omitempty"`
	Summary       ResultSummary       `json:"summary"`
	Results       []Result            `json:"results"`
	Metrics       []PerformanceMetric `json:"metrics,omitempty"`
}

// EvaluationRequest starts a custom evaluation run.
type EvaluationRequest struct {
	Name        string   `json:"name"`
	ModelIDs    []int    `json:"model_ids"`
	TestCaseIDs []int    `json:"test_case_ids,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// EvaluationStart acknowledges an accepted evaluation request.
type EvaluationStart struct {
	EvaluationID    int    `json:"evaluation_id"`
	Status          string `json:"status"`
	TotalResults    int    `json:"total_results"`
	ModelsEvaluated int    `json:"models_evaluated"`
	TestCasesRun    int    `json:"test_cases_run"`
}

// DemoStart acknowledges a quick demo run.
type DemoStart struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// ServiceInfo is returned by the API root.
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints,omitempty"`
}
