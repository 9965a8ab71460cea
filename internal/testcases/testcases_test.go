package testcases

import (
	"testing"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/stretchr/testify/assert"
)

func sampleCases() []evalapi.TestCase {
	return []evalapi.TestCase{
		{ID: 1, Name: "News Summary", Category: "summarization", Description: "Summarize a TECH article", Difficulty: "easy"},
		{ID: 2, Name: "Capital Cities", Category: "qa", Description: "Geography questions"},
		{ID: 3, Name: "Logic Puzzle", Category: "reasoning", Description: "Knights and knaves", Difficulty: "hard"},
		{ID: 4, Name: "Tech QA", Category: "qa", Description: "Questions about hardware"},
	}
}

func ids(cases []evalapi.TestCase) []int {
	out := []int{}
	for _, tc := range cases {
		out = append(out, tc.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	cases := sampleCases()

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{name: "empty query", query: Query{}, want: []int{1, 2, 3, 4}},
		{name: "case-insensitive name", query: Query{Search: "logic"}, want: []int{3}},
		{name: "matches description", query: Query{Search: "tech"}, want: []int{1, 4}},
		{name: "category only", query: Query{Category: "qa"}, want: []int{2, 4}},
		{name: "all category", query: Query{Category: "all"}, want: []int{1, 2, 3, 4}},
		{name: "search and category", query: Query{Search: "tech", Category: "qa"}, want: []int{4}},
		{name: "no match", query: Query{Search: "zzz"}, want: []int{}},
		{name: "trailing space is part of the term", query: Query{Search: "hardware "}, want: []int{}},
		{name: "without trailing space", query: Query{Search: "hardware"}, want: []int{4}},
		{name: "whitespace search is literal", query: Query{Search: "   "}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(cases, tt.query)))
		})
	}
}

func TestCategories(t *testing.T) {
	cases := append(sampleCases(), evalapi.TestCase{ID: 5, Category: ""})
	assert.Equal(t, []string{"qa", "reasoning", "summarization"}, Categories(cases))
	assert.Equal(t, []string{"all", "qa", "reasoning", "summarization"}, CategoryOptions(cases))
	assert.Nil(t, Categories(nil))
}

func TestNextCategory(t *testing.T) {
	options := []string{"all", "qa", "reasoning"}
	assert.Equal(t, "qa", NextCategory(options, "all"))
	assert.Equal(t, "all", NextCategory(options, "reasoning"))
	assert.Equal(t, "all", NextCategory(options, "missing"))
	assert.Equal(t, AllCategories, NextCategory(nil, "qa"))
}

func TestFindAndDetails(t *testing.T) {
	tc, ok := Find(sampleCases(), 3)
	assert.True(t, ok)
	assert.Equal(t, "Logic Puzzle", tc.Name)
	_, ok = Find(sampleCases(), 99)
	assert.False(t, ok)

	fields := Details(tc)
	assert.Equal(t, "Difficulty", fields[2].Label)
	assert.Equal(t, "hard", fields[2].Value)
	assert.Equal(t, "n/a", fields[6].Value)

	text := DetailText(tc, 40)
	assert.Contains(t, text, "Name:\nLogic Puzzle\n")
	assert.Contains(t, text, "Expected Output:\nn/a\n")
}

func TestDifficultyColor(t *testing.T) {
	assert.Equal(t, "46", DifficultyColor("Easy"))
	assert.Equal(t, "196", DifficultyColor("hard"))
	assert.Equal(t, "250", DifficultyColor(""))
}
