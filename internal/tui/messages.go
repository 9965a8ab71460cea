package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/evalboard/internal/dashboard"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/results"
)

// dashboardLoadedMsg carries a fresh dashboard snapshot.
type dashboardLoadedMsg struct{ snapshot dashboard.Snapshot }

// pollMsg fires when the dashboard refresh interval elapses. Ticks whose gen no
// longer matches the model are from an earlier visit to the dashboard and are dropped.
type pollMsg struct{ gen int }

// demoStartedMsg is sent when the backend accepted a quick demo run.
type demoStartedMsg struct{ demo evalapi.DemoStart }

// demoErr is sent when the quick demo request failed.
type demoErr struct{ error }

// demoSettledMsg clears the transient demo state after the refresh delay.
type demoSettledMsg struct{}

// modelsReadyMsg carries the model catalogue.
type modelsReadyMsg struct{ models []evalapi.Model }

// modelsLoadErr is sent when the models could not be fetched.
type modelsLoadErr struct{ error }

// testCasesReadyMsg carries every test case.
type testCasesReadyMsg struct{ cases []evalapi.TestCase }

// testCasesLoadErr is sent when the test cases could not be fetched.
type testCasesLoadErr struct{ error }

// evaluationsReadyMsg carries the evaluation list for the results page.
type evaluationsReadyMsg struct{ evaluations []evalapi.Evaluation }

// evaluationsLoadErr is sent when the evaluation list could not be fetched.
type evaluationsLoadErr struct{ error }

// resultsReadyMsg carries one evaluation's results and backend metrics.
type resultsReadyMsg struct {
	id     int
	detail evalapi.EvaluationResults
}

// resultsLoadErr is sent when an evaluation's results could not be fetched.
type resultsLoadErr struct {
	id int
	error
}

func loadDashboardCmd(ctx context.Context, client *evalapi.Client) tea.Cmd {
	return func() tea.Msg {
		return dashboardLoadedMsg{snapshot: dashboard.Load(ctx, client)}
	}
}

func pollCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollMsg{gen: gen}
	})
}

func triggerDemoCmd(ctx context.Context, client *evalapi.Client) tea.Cmd {
	return func() tea.Msg {
		demo, err := dashboard.TriggerDemo(ctx, client)
		if err != nil {
			return demoErr{error: err}
		}
		return demoStartedMsg{demo: demo}
	}
}

func demoSettleCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return demoSettledMsg{}
	})
}

func loadModelsCmd(ctx context.Context, client *evalapi.Client) tea.Cmd {
	return func() tea.Msg {
		list, err := client.Models.List(ctx)
		if err != nil {
			logging.LogError("load models", err)
			return modelsLoadErr{error: err}
		}
		return modelsReadyMsg{models: list}
	}
}

func loadTestCasesCmd(ctx context.Context, client *evalapi.Client) tea.Cmd {
	return func() tea.Msg {
		list, err := client.TestCases.List(ctx, "")
		if err != nil {
			logging.LogError("load test cases", err)
			return testCasesLoadErr{error: err}
		}
		return testCasesReadyMsg{cases: list}
	}
}

func loadEvaluationsCmd(ctx context.Context, client *evalapi.Client) tea.Cmd {
	return func() tea.Msg {
		list, err := client.Evaluations.List(ctx)
		if err != nil {
			logging.LogError("load evaluations", err)
			return evaluationsLoadErr{error: err}
		}
		return evaluationsReadyMsg{evaluations: list}
	}
}

func loadResultsCmd(ctx context.Context, client *evalapi.Client, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := results.Fetch(ctx, client, id)
		if err != nil {
			logging.LogError("load results", err)
			return resultsLoadErr{id: id, error: err}
		}
		return resultsReadyMsg{id: id, detail: detail}
	}
}
