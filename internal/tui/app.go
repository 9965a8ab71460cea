// Package tui implements the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/dashboard"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/mwiater/evalboard/internal/models"
	"github.com/mwiater/evalboard/internal/testcases"
)

// page is one of the dashboard's top-level views.
type page int

const (
	pageDashboard page = iota
	pageModels
	pageTestCases
	pageResults
	pageCount
)

var pageTitles = [pageCount]string{"Dashboard", "Models", "Test Cases", "Results"}

func (p page) String() string {
	if p < 0 || p >= pageCount {
		return "Unknown"
	}
	return pageTitles[p]
}

// demoState tracks the quick demo trigger on the dashboard.
type demoState int

const (
	demoIdle demoState = iota
	demoRunning
	demoStarted
	demoFailed
)

// model is the Bubble Tea model for the whole terminal dashboard.
type model struct {
	ctx     context.Context
	cfg     appconfig.Config
	client  *evalapi.Client
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	page    page
	now     func() time.Time

	width, height int

	snapshot    dashboard.Snapshot
	dashLoaded  bool
	dashLoading bool
	pollGen     int
	demo        demoState
	demoMessage string

	modelList     []evalapi.Model
	modelsLoaded  bool
	modelsLoading bool
	modelsErr     error
	modelFilter   models.Filter
	modelTable    table.Model

	caseList     []evalapi.TestCase
	casesLoaded  bool
	casesLoading bool
	casesErr     error
	visibleCases []evalapi.TestCase
	search       textinput.Model
	category     string
	caseTable    table.Model
	detailOpen   bool
	detail       viewport.Model
	selectedCase evalapi.TestCase

	completed      []evalapi.Evaluation
	evalsLoaded    bool
	evalsLoading   bool
	evalsErr       error
	selectedRun    int
	runResults     *evalapi.EvaluationResults
	runMetrics     []evalapi.PerformanceMetric
	resultsLoading bool
	resultsErr     error
	resultTable    table.Model
}

// newModel builds the initial model. Nothing is fetched until Init runs.
func newModel(ctx context.Context, cfg appconfig.Config, client *evalapi.Client) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "search name or description"
	ti.Prompt = "Search: "
	ti.CharLimit = 120

	return &model{
		ctx:         ctx,
		cfg:         cfg,
		client:      client,
		keys:        newKeyMap(),
		help:        help.New(),
		spinner:     s,
		page:        pageDashboard,
		now:         time.Now,
		modelFilter: models.FilterAll,
		modelTable:  newTable(modelColumns),
		search:      ti,
		category:    testcases.AllCategories,
		caseTable:   newTable(caseColumns),
		detail:      viewport.New(80, 20),
		resultTable: newTable(resultColumns),
	}
}

func newTable(cols []table.Column) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(styles),
	)
}

// Init starts the spinner and opens the dashboard.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.enterPage())
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardLoadedMsg:
		m.snapshot = msg.snapshot
		m.dashLoaded = true
		m.dashLoading = false
		return m, nil

	case pollMsg:
		if msg.gen != m.pollGen || m.page != pageDashboard {
			return m, nil
		}
		m.dashLoading = true
		return m, tea.Batch(loadDashboardCmd(m.ctx, m.client), pollCmd(m.cfg.PollInterval(), m.pollGen))

	case demoStartedMsg:
		m.demo = demoStarted
		m.demoMessage = "Demo started"
		if text := strings.TrimSpace(msg.demo.Message); text != "" {
			m.demoMessage = "Demo started: " + text
		}
		return m, demoSettleCmd(m.cfg.DemoRefreshDelay())

	case demoErr:
		m.demo = demoFailed
		m.demoMessage = "Error - try again"
		logging.LogError("quick demo", msg.error)
		return m, demoSettleCmd(m.cfg.DemoRefreshDelay())

	case demoSettledMsg:
		started := m.demo == demoStarted
		m.demo = demoIdle
		m.demoMessage = ""
		if started {
			m.dashLoading = true
			return m, loadDashboardCmd(m.ctx, m.client)
		}
		return m, nil

	case modelsReadyMsg:
		m.modelList = msg.models
		m.modelsLoaded = true
		m.modelsLoading = false
		m.modelsErr = nil
		m.refreshModelRows()
		return m, nil

	case modelsLoadErr:
		m.modelList = nil
		m.modelsLoaded = true
		m.modelsLoading = false
		m.modelsErr = msg.error
		m.refreshModelRows()
		return m, nil

	case testCasesReadyMsg:
		m.caseList = msg.cases
		m.casesLoaded = true
		m.casesLoading = false
		m.casesErr = nil
		m.refreshCaseRows()
		return m, nil

	case testCasesLoadErr:
		m.caseList = nil
		m.casesLoaded = true
		m.casesLoading = false
		m.casesErr = msg.error
		m.refreshCaseRows()
		return m, nil

	case evaluationsReadyMsg:
		return m, m.setEvaluations(msg.evaluations)

	case evaluationsLoadErr:
		m.completed = nil
		m.evalsLoaded = true
		m.evalsLoading = false
		m.evalsErr = msg.error
		m.runResults = nil
		m.refreshResultRows()
		return m, nil

	case resultsReadyMsg:
		if run, ok := m.selectedEvaluation(); !ok || run.ID != msg.id {
			return m, nil
		}
		detail := msg.detail
		m.runResults = &detail
		m.runMetrics = detail.Metrics
		m.resultsLoading = false
		m.resultsErr = nil
		m.refreshResultRows()
		return m, nil

	case resultsLoadErr:
		if run, ok := m.selectedEvaluation(); !ok || run.ID != msg.id {
			return m, nil
		}
		m.runResults = nil
		m.runMetrics = nil
		m.resultsLoading = false
		m.resultsErr = msg.error
		m.refreshResultRows()
		return m, nil
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.page == pageTestCases {
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		if m.detailOpen {
			return m.updateDetail(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		return m, m.switchPage((m.page + 1) % pageCount)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.switchPage((m.page + pageCount - 1) % pageCount)
	case key.Matches(msg, m.keys.Dashboard):
		return m, m.switchPage(pageDashboard)
	case key.Matches(msg, m.keys.Models):
		return m, m.switchPage(pageModels)
	case key.Matches(msg, m.keys.TestCases):
		return m, m.switchPage(pageTestCases)
	case key.Matches(msg, m.keys.Results):
		return m, m.switchPage(pageResults)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	}

	switch m.page {
	case pageDashboard:
		return m.updateDashboardKeys(msg)
	case pageModels:
		return m.updateModelKeys(msg)
	case pageTestCases:
		return m.updateCaseKeys(msg)
	case pageResults:
		return m.updateResultKeys(msg)
	}
	return m, nil
}

// switchPage moves to p and starts whatever fetch the page needs on entry.
func (m *model) switchPage(p page) tea.Cmd {
	if p == m.page {
		return nil
	}
	m.page = p
	return m.enterPage()
}

func (m *model) enterPage() tea.Cmd {
	m.keys.pageContext = m.page
	switch m.page {
	case pageDashboard:
		m.pollGen++
		m.dashLoading = true
		return tea.Batch(loadDashboardCmd(m.ctx, m.client), pollCmd(m.cfg.PollInterval(), m.pollGen))
	case pageModels:
		if m.modelsLoaded || m.modelsLoading {
			return nil
		}
		m.modelsLoading = true
		return loadModelsCmd(m.ctx, m.client)
	case pageTestCases:
		if m.casesLoaded || m.casesLoading {
			return nil
		}
		m.casesLoading = true
		return loadTestCasesCmd(m.ctx, m.client)
	case pageResults:
		if m.evalsLoaded || m.evalsLoading {
			return nil
		}
		m.evalsLoading = true
		return loadEvaluationsCmd(m.ctx, m.client)
	}
	return nil
}

// refresh re-fetches the current page's data regardless of what is cached.
func (m *model) refresh() tea.Cmd {
	switch m.page {
	case pageDashboard:
		m.dashLoading = true
		return loadDashboardCmd(m.ctx, m.client)
	case pageModels:
		m.modelsLoaded = false
		m.modelsLoading = false
	case pageTestCases:
		m.casesLoaded = false
		m.casesLoading = false
	case pageResults:
		m.evalsLoaded = false
		m.evalsLoading = false
	}
	return m.enterPage()
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	bodyHeight := height - 8
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	for _, t := range []*table.Model{&m.modelTable, &m.caseTable} {
		t.SetWidth(width - 2)
		t.SetHeight(bodyHeight - 2)
	}
	m.resultTable.SetWidth(width - 2)
	m.resultTable.SetHeight(bodyHeight / 2)
	m.search.Width = width - 12
	m.detail.Width = width - 8
	m.detail.Height = bodyHeight - 4
	if m.detailOpen {
		m.setDetailContent()
	}
}

// View renders the tab bar, the active page and the help footer.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var body string
	switch m.page {
	case pageDashboard:
		body = m.dashboardView()
	case pageModels:
		body = m.modelsView()
	case pageTestCases:
		body = m.testCasesView()
	case pageResults:
		body = m.resultsView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		"",
		body,
		"",
		m.help.View(m.keys),
	)
}

func (m *model) tabsView() string {
	tabs := []string{brandStyle.Render("evalboard")}
	for p := page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", int(p)+1, p)
		if p == m.page {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// loadingLine renders the spinner with a label.
func (m *model) loadingLine(label string) string {
	return fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render(label))
}

func errorBanner(err error) string {
	if err == nil {
		return ""
	}
	return errorStyle.Render("Error: " + err.Error())
}

// Start runs the terminal dashboard until the user quits. Logs go to the
// configured log file only, and every in-flight request is cancelled on exit.
func Start(ctx context.Context, cfg appconfig.Config) error {
	if err := logging.Init(cfg.LogFilePath(), false); err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		log.Println("Cancelling all running requests...")
		cancel()
	}()

	client := evalapi.NewFromConfig(cfg)
	logging.LogEvent("starting terminal dashboard against %s", client.BaseURL())

	p := tea.NewProgram(newModel(ctx, cfg, client), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
