package results

import (
	"context"
	"fmt"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
)

// Fetch loads an evaluation's results. When the payload carries no metrics the
// metrics endpoint is asked; a 404 there leaves Metrics nil and is not an error.
func Fetch(ctx context.Context, client *evalapi.Client, id int) (evalapi.EvaluationResults, error) {
	detail, err := client.Evaluations.Results(ctx, id)
	if err != nil {
		return evalapi.EvaluationResults{}, fmt.Errorf("load results for evaluation %d: %w", id, err)
	}
	if len(detail.Metrics) > 0 {
		return detail, nil
	}
	metrics, err := client.Evaluations.Metrics(ctx, id)
	switch {
	case err == nil:
		detail.Metrics = metrics
	case evalapi.IsNotFound(err):
		detail.Metrics = nil
	default:
		logging.LogError(fmt.Sprintf("load metrics for evaluation %d", id), err)
	}
	return detail, nil
}
