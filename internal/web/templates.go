package web

import (
	"html/template"
	"strings"

	"github.com/mwiater/evalboard/internal/util"
)

func (s *Server) funcMap() template.FuncMap {
	return template.FuncMap{
		"currency":  util.FormatCurrency,
		"latency":   util.FormatLatency,
		"percent":   util.FormatPercent,
		"timestamp": util.FormatTimestamp,
		"relative": func(raw string) string {
			t, ok := util.ParseTimestamp(raw)
			if !ok {
				return ""
			}
			return util.RelativeTime(t, s.now())
		},
		"statusClass": func(status string) string {
			return "status-" + strings.ToLower(strings.TrimSpace(status))
		},
		"lookup": func(m map[string]int, k string) int { return m[k] },
	}
}

const pageTemplates = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    {{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}}{{if .RefreshURL}};url={{.RefreshURL}}{{end}}">{{end}}
    <title>evalboard - {{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f5f5f5; padding: 2rem; color: #333; }
        .container { max-width: 98%; margin: 0 auto; }
        header { background: white; padding: 1.5rem 2rem; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 2rem; }
        nav a { margin-right: 1rem; color: #555; text-decoration: none; font-weight: 500; }
        nav a.active { color: #5b4cdb; border-bottom: 2px solid #5b4cdb; }
        .subtitle { color: #666; font-size: 0.85rem; margin-top: 0.5rem; }
        .card { background: white; padding: 1.5rem; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 1.5rem; }
        .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; margin-bottom: 1.5rem; }
        .stat-value { font-size: 2rem; font-weight: bold; }
        .stat-label { color: #666; font-size: 0.85rem; }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid #eee; font-size: 0.9rem; }
        th { background: #fafafa; }
        .badge { display: inline-block; padding: 0.1rem 0.5rem; border-radius: 4px; color: white; font-size: 0.8rem; }
        .status-completed { background: #16a34a; }
        .status-running { background: #f59e0b; }
        .status-pending { background: #3b82f6; }
        .status-failed { background: #dc2626; }
        .errors { background: #fee2e2; color: #991b1b; padding: 1rem; border-radius: 8px; margin-bottom: 1.5rem; }
        .notice { padding: 0.75rem 1rem; border-radius: 8px; margin-bottom: 1rem; background: #e0e7ff; }
        .muted { color: #888; }
        .filters a { margin-right: 0.75rem; }
        .filters a.selected { font-weight: bold; }
        pre { white-space: pre-wrap; background: #fafafa; padding: 0.75rem; border-radius: 4px; }
        button { padding: 0.5rem 1rem; border: none; border-radius: 4px; background: #5b4cdb; color: white; cursor: pointer; }
    </style>
</head>
<body>
<div class="container">
<header>
    <h1>evalboard</h1>
    <nav>
        <a href="/" {{if eq .Active "dashboard"}}class="active"{{end}}>Dashboard</a>
        <a href="/models" {{if eq .Active "models"}}class="active"{{end}}>Models</a>
        <a href="/test-cases" {{if eq .Active "test-cases"}}class="active"{{end}}>Test Cases</a>
        <a href="/results" {{if eq .Active "results"}}class="active"{{end}}>Results</a>
    </nav>
    <div class="subtitle">Backend: {{.Backend}}</div>
</header>
{{if .Errors}}<div class="errors">{{range .Errors}}<div>Error: {{.}}</div>{{end}}</div>{{end}}
{{end}}

{{define "footer"}}
</div>
</body>
</html>{{end}}

{{define "dashboard"}}{{template "header" .}}
{{if eq .Demo "started"}}<div class="notice">Demo started. Refreshing shortly.</div>{{end}}
{{if eq .Demo "error"}}<div class="notice">Error - try again.</div>{{end}}
{{if eq .Demo "busy"}}<div class="notice">A demo request is already in progress.</div>{{end}}
<div class="stats-grid">
    <div class="card"><div class="stat-value">{{.Counts.Models}}</div><div class="stat-label">Models ({{.Counts.ActiveModels}} active)</div></div>
    <div class="card"><div class="stat-value">{{.Counts.TestCases}}</div><div class="stat-label">Test cases</div></div>
    <div class="card"><div class="stat-value">{{.Counts.Categories}}</div><div class="stat-label">Categories</div></div>
    <div class="card"><div class="stat-value">{{.Counts.Evaluations}}</div><div class="stat-label">Evaluations</div></div>
</div>
<div class="card">
    <h2>Runs by status</h2>
    {{range .Statuses}}<span class="badge {{statusClass .}}">{{.}} {{lookup $.Counts.ByStatus .}}</span> {{end}}
</div>
<div class="card">
    <h2>Recent evaluations</h2>
    {{if .Recent}}
    <table>
        <tr><th>ID</th><th>Name</th><th>Status</th><th>Created</th></tr>
        {{range .Recent}}
        <tr>
            <td>#{{.ID}}</td>
            <td>{{if eq .Status "completed"}}<a href="/results?evaluation={{.ID}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
            <td><span class="badge {{statusClass .Status}}">{{.Status}}</span></td>
            <td>{{timestamp .CreatedAt}} <span class="muted">{{relative .CreatedAt}}</span></td>
        </tr>
        {{end}}
    </table>
    {{else}}<p class="muted">No evaluations yet.</p>{{end}}
</div>
<form method="post" action="/demo"><button type="submit">Run quick demo</button></form>
<p class="muted">Refreshes every {{.PollSecs}}s.</p>
{{template "footer" .}}{{end}}

{{define "models"}}{{template "header" .}}
<div class="card filters">
    {{range .Filters}}<a href="/models?filter={{.Value}}" {{if .Selected}}class="selected"{{end}}>{{.Value}} ({{.Count}})</a>{{end}}
</div>
<div class="card">
    {{if .Models}}
    <table>
        <tr><th>Name</th><th>Provider</th><th>Model ID</th><th>Cost / 1K tokens</th><th>Max tokens</th><th>Status</th></tr>
        {{range .Models}}
        <tr>
            <td>{{.Name}}</td>
            <td><span class="badge" style="background: {{.ProviderHue}}">{{.ProviderName}}</span></td>
            <td><code>{{.ModelID}}</code></td>
            <td>{{currency .CostPer1KTokens}} <span class="muted">{{.CostTier}}</span></td>
            <td>{{.MaxTokens}} <span class="muted">{{.ContextSize}}</span></td>
            <td>{{if .IsActive}}active{{else}}inactive{{end}}</td>
        </tr>
        {{end}}
    </table>
    {{else}}<p class="muted">No models match the current filter.</p>{{end}}
</div>
{{template "footer" .}}{{end}}

{{define "test-cases"}}{{template "header" .}}
<div class="card">
    <form method="get" action="/test-cases">
        <input type="text" name="q" value="{{.Search}}" placeholder="Search name or description">
        <select name="category">
            {{range .Categories}}<option value="{{.}}" {{if eq . $.Category}}selected{{end}}>{{.}}</option>{{end}}
        </select>
        <button type="submit">Filter</button>
    </form>
    <p class="muted">{{len .Cases}} of {{.Total}} test cases</p>
</div>
<div class="card">
    {{if .Cases}}
    <table>
        <tr><th>ID</th><th>Name</th><th>Category</th><th>Difficulty</th><th>Created</th></tr>
        {{range .Cases}}
        <tr>
            <td>{{.ID}}</td>
            <td><a href="/test-cases/{{.ID}}">{{.Name}}</a></td>
            <td>{{.Category}}</td>
            <td>{{if .Difficulty}}{{.Difficulty}}{{else}}-{{end}}</td>
            <td>{{timestamp .CreatedAt}}</td>
        </tr>
        {{end}}
    </table>
    {{else}}<p class="muted">No test cases match the current search.</p>{{end}}
</div>
{{template "footer" .}}{{end}}

{{define "test-case"}}{{template "header" .}}
<div class="card">
    <p><a href="/test-cases">&larr; Back to test cases</a></p>
    {{if .Case.ID}}<h2>Test case #{{.Case.ID}}</h2>{{end}}
    {{range .Fields}}
    <h3>{{.Label}}</h3>
    <pre>{{.Value}}</pre>
    {{end}}
</div>
{{template "footer" .}}{{end}}

{{define "results"}}{{template "header" .}}
{{if .Found}}
<div class="card">
    {{template "run-picker" .}}
    <h2>#{{.Selected.ID}} {{.Selected.Name}}</h2>
    <p class="muted">{{.Totals.Results}} results, {{.Totals.Successful}} successful ({{percent .Totals.SuccessRate}}), total cost {{currency .Totals.TotalCost}}</p>
    <p>Export:
        <a href="/results/export?evaluation={{.Selected.ID}}&format=json">JSON</a>
        <a href="/results/export?evaluation={{.Selected.ID}}&format=yaml">YAML</a>
        <a href="/results/export?evaluation={{.Selected.ID}}&format=md">Markdown</a>
    </p>
</div>
{{if .Stats}}
<div class="card">
    <h2>By model</h2>
    <table>
        <tr><th>Model</th><th>Results</th><th>Mean accuracy</th><th>Mean latency</th><th>Total cost</th><th>Success rate</th></tr>
        {{range .Stats}}
        <tr><td>{{.Model}}</td><td>{{.Count}}</td><td>{{percent .MeanAccuracy}}</td><td>{{latency .MeanLatencyMS}}</td><td>{{currency .TotalCost}}</td><td>{{percent .SuccessRate}}</td></tr>
        {{end}}
    </table>
</div>
{{end}}
{{if .Metrics}}
<div class="card">
    <h2>Rankings</h2>
    <table>
        <tr><th>Model</th><th>Category</th><th>Overall</th><th>Accuracy</th><th>Speed</th><th>Cost</th></tr>
        {{range .Metrics}}
        <tr><td>{{.ModelName}}</td><td>{{.Category}}</td><td>{{.OverallRank}}</td><td>{{.AccuracyRank}}</td><td>{{.SpeedRank}}</td><td>{{.CostRank}}</td></tr>
        {{end}}
    </table>
</div>
{{end}}
<div class="card">
    <h2>Results</h2>
    {{if .Results}}
    <table>
        <tr><th>Model</th><th>Test case</th><th>Category</th><th>Accuracy</th><th>Latency</th><th>Cost</th><th>Error</th></tr>
        {{range .Results}}
        <tr><td>{{.ModelName}}</td><td>{{.TestCaseName}}</td><td>{{.Category}}</td><td>{{percent .AccuracyScore}}</td><td>{{latency .ResponseTimeMS}}</td><td>{{currency .CostUSD}}</td><td>{{if .Error}}{{.Error}}{{else}}-{{end}}</td></tr>
        {{end}}
    </table>
    {{else}}<p class="muted">This evaluation has no results.</p>{{end}}
</div>
{{else if .Runs}}
<div class="card">
    {{template "run-picker" .}}
    <p class="muted">Pick a completed evaluation.</p>
</div>
{{else}}
<div class="card"><p class="muted">No completed evaluations yet. Run a demo from the dashboard.</p></div>
{{end}}
{{template "footer" .}}{{end}}

{{define "run-picker"}}<form method="get" action="/results">
        <select name="evaluation">
            {{range .Runs}}<option value="{{.ID}}" {{if eq .ID $.Selected.ID}}selected{{end}}>#{{.ID}} {{.Name}} ({{timestamp .CreatedAt}})</option>{{end}}
        </select>
        <button type="submit">Show</button>
    </form>{{end}}
`
