// Package testcases implements search, category filtering and detail rendering for test cases.
package testcases

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
)

// AllCategories is the category option that disables category filtering.
const AllCategories = "all"

// Query narrows a test case list. Both conditions must hold.
type Query struct {
	Search   string
	Category string
}

// Matches reports whether tc satisfies q. The search is a case-insensitive
// substring match over name and description; spaces in the term are kept.
func (q Query) Matches(tc evalapi.TestCase) bool {
	if category := strings.TrimSpace(q.Category); category != "" && !strings.EqualFold(category, AllCategories) {
		if !strings.EqualFold(tc.Category, category) {
			return false
		}
	}
	needle := strings.ToLower(q.Search)
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(tc.Name + " " + tc.Description)
	return strings.Contains(haystack, needle)
}

// Filter returns the test cases matching q, preserving order.
func Filter(cases []evalapi.TestCase, q Query) []evalapi.TestCase {
	out := make([]evalapi.TestCase, 0, len(cases))
	for _, tc := range cases {
		if q.Matches(tc) {
			out = append(out, tc)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories present in cases, sorted.
func Categories(cases []evalapi.TestCase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tc := range cases {
		category := strings.TrimSpace(tc.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// CategoryOptions returns AllCategories followed by the categories present in cases.
func CategoryOptions(cases []evalapi.TestCase) []string {
	return append([]string{AllCategories}, Categories(cases)...)
}

// NextCategory returns the option after current, wrapping around.
func NextCategory(options []string, current string) string {
	if len(options) == 0 {
		return AllCategories
	}
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Find returns the test case with id.
func Find(cases []evalapi.TestCase, id int) (evalapi.TestCase, bool) {
	for _, tc := range cases {
		if tc.ID == id {
			return tc, true
		}
	}
	return evalapi.TestCase{}, false
}

// DifficultyColor maps a difficulty level to a terminal colour.
func DifficultyColor(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case "easy":
		return "46"
	case "medium":
		return "220"
	case "hard":
		return "196"
	default:
		return "250"
	}
}

// Field is one labelled section of the detail view.
type Field struct {
	Label string
	Value string
}

// Details returns the labelled fields of the detail view. Empty optional fields read "n/a".
func Details(tc evalapi.TestCase) []Field {
	orNA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "n/a"
		}
		return s
	}
	return []Field{
		{Label: "Name", Value: tc.Name},
		{Label: "Category", Value: orNA(tc.Category)},
		{Label: "Difficulty", Value: orNA(tc.Difficulty)},
		{Label: "Created", Value: orNA(util.FormatTimestamp(tc.CreatedAt))},
		{Label: "Description", Value: orNA(tc.Description)},
		{Label: "Input", Value: orNA(tc.InputText)},
		{Label: "Expected Output", Value: orNA(tc.ExpectedOutput)},
		{Label: "Evaluation Criteria", Value: orNA(tc.EvaluationCriteria)},
	}
}

// DetailText renders the detail fields as plain text wrapped to width.
func DetailText(tc evalapi.TestCase, width int) string {
	var b strings.Builder
	for i, f := range Details(tc) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n%s\n", f.Label, util.Wrap(f.Value, width))
	}
	return b.String()
}
