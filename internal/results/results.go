// Package results selects completed evaluations and aggregates their per-model statistics.
package results

import (
	"sort"

	"github.com/mwiater/evalboard/internal/evalapi"
)

// ModelStat aggregates one model's results within an evaluation.
type ModelStat struct {
	Model         string  `json:"model" yaml:"model"`
	Count         int     `json:"count" yaml:"count"`
	Successful    int     `json:"successful" yaml:"successful"`
	MeanAccuracy  float64 `json:"mean_accuracy" yaml:"mean_accuracy"`
	MeanLatencyMS float64 `json:"mean_latency_ms" yaml:"mean_latency_ms"`
	TotalCost     float64 `json:"total_cost_usd" yaml:"total_cost_usd"`
	TotalTokens   int     `json:"total_tokens" yaml:"total_tokens"`
	SuccessRate   float64 `json:"success_rate" yaml:"success_rate"`
}

// Completed returns the completed evaluations, newest first.
func Completed(evals []evalapi.Evaluation) []evalapi.Evaluation {
	var done []evalapi.Evaluation
	for _, e := range evals {
		if e.Status == evalapi.StatusCompleted {
			done = append(done, e)
		}
	}
	if len(done) == 0 {
		return nil
	}
	return evalapi.NewestFirst(done)
}

// Latest returns the most recent completed evaluation.
func Latest(evals []evalapi.Evaluation) (evalapi.Evaluation, bool) {
	done := Completed(evals)
	if len(done) == 0 {
		return evalapi.Evaluation{}, false
	}
	return done[0], true
}

// Aggregate reduces results to one ModelStat per model, ordered by mean accuracy
// (highest first) and then by model name. Failed results count toward every figure.
func Aggregate(rows []evalapi.Result) []ModelStat {
	byModel := make(map[string]*ModelStat)
	var order []string
	for _, r := range rows {
		stat, ok := byModel[r.ModelName]
		if !ok {
			stat = &ModelStat{Model: r.ModelName}
			byModel[r.ModelName] = stat
			order = append(order, r.ModelName)
		}
		stat.Count++
		stat.MeanAccuracy += r.AccuracyScore
		stat.MeanLatencyMS += r.ResponseTimeMS
		stat.TotalCost += r.CostUSD
		stat.TotalTokens += r.TokensUsed
		if r.Succeeded() {
			stat.Successful++
		}
	}

	stats := make([]ModelStat, 0, len(order))
	for _, name := range order {
		stat := byModel[name]
		n := float64(stat.Count)
		stat.MeanAccuracy /= n
		stat.MeanLatencyMS /= n
		stat.SuccessRate = float64(stat.Successful) / n
		stats = append(stats, *stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].MeanAccuracy != stats[j].MeanAccuracy {
			return stats[i].MeanAccuracy > stats[j].MeanAccuracy
		}
		return stats[i].Model < stats[j].Model
	})
	return stats
}

// Totals sums cost and counts successes across all results.
type Totals struct {
	Results     int     `json:"results" yaml:"results"`
	Successful  int     `json:"successful" yaml:"successful"`
	TotalCost   float64 `json:"total_cost_usd" yaml:"total_cost_usd"`
	SuccessRate float64 `json:"success_rate" yaml:"success_rate"`
}

// Summarize computes Totals for rows.
func Summarize(rows []evalapi.Result) Totals {
	var t Totals
	for _, r := range rows {
		t.Results++
		t.TotalCost += r.CostUSD
		if r.Succeeded() {
			t.Successful++
		}
	}
	if t.Results > 0 {
		t.SuccessRate = float64(t.Successful) / float64(t.Results)
	}
	return t
}
