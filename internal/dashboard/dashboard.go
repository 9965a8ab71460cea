// Package dashboard builds the overview snapshot: collection counts and recent runs.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Collection names used as keys in Snapshot.Errors.
const (
	CollectionModels      = "models"
	CollectionTestCases   = "test cases"
	CollectionCategories  = "categories"
	CollectionEvaluations = "evaluations"
)

// Snapshot holds one refresh of the four dashboard collections.
// A collection that failed to load is empty and has an entry in Errors.
type Snapshot struct {
	Models      []evalapi.Model
	TestCases   []evalapi.TestCase
	Categories  []string
	Evaluations []evalapi.Evaluation
	Errors      map[string]error
	FetchedAt   time.Time
}

// Counts are the figures shown in the dashboard's status panel.
type Counts struct {
	Models       int            `json:"models"`
	ActiveModels int            `json:"active_models"`
	TestCases    int            `json:"test_cases"`
	Categories   int            `json:"categories"`
	Evaluations  int            `json:"evaluations"`
	ByStatus     map[string]int `json:"by_status"`
}

// Load fetches all four collections in parallel. It never fails as a whole.
func Load(ctx context.Context, client *evalapi.Client) Snapshot {
	snap := Snapshot{Errors: map[string]error{}}
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	record := func(name string, err error) {
		logging.LogError("load "+name, err)
		mu.Lock()
		snap.Errors[name] = err
		mu.Unlock()
	}

	g.Go(func() error {
		models, err := client.Models.List(ctx)
		if err != nil {
			record(CollectionModels, err)
			return nil
		}
		snap.Models = models
		return nil
	})
	g.Go(func() error {
		cases, err := client.TestCases.List(ctx, "")
		if err != nil {
			record(CollectionTestCases, err)
			return nil
		}
		snap.TestCases = cases
		return nil
	})
	g.Go(func() error {
		categories, err := client.Categories.List(ctx)
		if err != nil {
			record(CollectionCategories, err)
			return nil
		}
		snap.Categories = categories
		return nil
	})
	g.Go(func() error {
		evals, err := client.Evaluations.List(ctx)
		if err != nil {
			record(CollectionEvaluations, err)
			return nil
		}
		snap.Evaluations = evals
		return nil
	})
	_ = g.Wait()

	snap.FetchedAt = time.Now()
	return snap
}

// Err joins the per-collection errors in a stable order, or returns nil.
func (s Snapshot) Err() error {
	var errs []error
	for _, name := range []string{CollectionModels, CollectionTestCases, CollectionCategories, CollectionEvaluations} {
		if err, ok := s.Errors[name]; ok && err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Counts derives the status panel figures.
func (s Snapshot) Counts() Counts {
	c := Counts{
		Models:      len(s.Models),
		TestCases:   len(s.TestCases),
		Categories:  len(s.Categories),
		Evaluations: len(s.Evaluations),
		ByStatus:    map[string]int{},
	}
	for _, m := range s.Models {
		if m.IsActive {
			c.ActiveModels++
		}
	}
	for _, e := range s.Evaluations {
		c.ByStatus[e.Status]++
	}
	return c
}

// Recent returns the n most recent evaluations in the snapshot.
func (s Snapshot) Recent(n int) []evalapi.Evaluation {
	return RecentEvaluations(s.Evaluations, n)
}

// RecentEvaluations returns up to n evaluations ordered by created_at, newest first.
func RecentEvaluations(evals []evalapi.Evaluation, n int) []evalapi.Evaluation {
	if n <= 0 || len(evals) == 0 {
		return nil
	}
	sorted := evalapi.NewestFirst(evals)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TriggerDemo starts the backend's demo evaluation.
func TriggerDemo(ctx context.Context, client *evalapi.Client) (evalapi.DemoStart, error) {
	demo, err := client.Evaluations.QuickDemo(ctx)
	if err != nil {
		logging.LogError("start demo evaluation", err)
		return evalapi.DemoStart{}, err
	}
	logging.LogEvent("demo evaluation started: %s", demo.Message)
	return demo, nil
}
