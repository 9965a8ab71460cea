package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeepsPartialData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			_, _ = w.Write([]byte(`[{"id":1,"name":"a","is_active":true},{"id":2,"name":"b","is_active":false}]`))
		case "/test-cases":
			_, _ = w.Write([]byte(`[{"id":1,"name":"t1","category":"qa"}]`))
		case "/categories":
			http.Error(w, `{"detail":"database locked"}`, http.StatusInternalServerError)
		case "/evaluations":
			_, _ = w.Write([]byte(`[
				{"id":1,"name":"old","status":"completed","created_at":"2025-01-01T00:00:00"},
				{"id":2,"name":"new","status":"running","created_at":"2025-01-03T00:00:00"}
			]`))
		}
	}))
	defer server.Close()

	client := evalapi.New(server.URL, time.Second, evalapi.WithHTTPClient(server.Client()))
	snap := Load(context.Background(), client)

	assert.Len(t, snap.Models, 2)
	assert.Len(t, snap.TestCases, 1)
	assert.Empty(t, snap.Categories)
	assert.Len(t, snap.Evaluations, 2)
	require.Contains(t, snap.Errors, CollectionCategories)
	require.Error(t, snap.Err())
	assert.Contains(t, snap.Err().Error(), "categories: ")
	assert.False(t, snap.FetchedAt.IsZero())

	counts := snap.Counts()
	assert.Equal(t, 2, counts.Models)
	assert.Equal(t, 1, counts.ActiveModels)
	assert.Equal(t, 0, counts.Categories)
	assert.Equal(t, 1, counts.ByStatus[evalapi.StatusRunning])
	assert.Equal(t, 1, counts.ByStatus[evalapi.StatusCompleted])

	recent := snap.Recent(5)
	require.Len(t, recent, 2)
	assert.Equal(t, "new", recent[0].Name)
}

func TestLoadUnreachableBackend(t *testing.T) {
	client := evalapi.New("http://127.0.0.1:1", 200*time.Millisecond)
	snap := Load(context.Background(), client)

	assert.Len(t, snap.Errors, 4)
	assert.Equal(t, Counts{ByStatus: map[string]int{}}, snap.Counts())
	assert.Empty(t, snap.Recent(5))
}

func TestRecentEvaluations(t *testing.T) {
	evals := []evalapi.Evaluation{
		{ID: 1, CreatedAt: "2025-01-01T10:00:00"},
		{ID: 2, CreatedAt: "garbage"},
		{ID: 3, CreatedAt: "2025-01-05T10:00:00Z"},
		{ID: 4, CreatedAt: "2025-01-03T10:00:00"},
		{ID: 5, CreatedAt: "2025-01-03T10:00:00"},
		{ID: 6, CreatedAt: "2025-01-02T10:00:00"},
		{ID: 7, CreatedAt: ""},
	}

	ids := func(in []evalapi.Evaluation) []int {
		var out []int
		for _, e := range in {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []int{3, 4, 5, 6, 1}, ids(RecentEvaluations(evals, 5)))
	assert.Equal(t, []int{3, 4, 5, 6, 1, 2, 7}, ids(RecentEvaluations(evals, 10)))
	assert.Nil(t, RecentEvaluations(evals, 0))
	assert.Nil(t, RecentEvaluations(nil, 5))
	assert.Equal(t, 1, evals[0].ID, "input must not be reordered")
}

func TestTriggerDemo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/evaluations/quick-demo", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Demo evaluation started","status":"running"}`))
	}))
	defer server.Close()

	client := evalapi.New(server.URL, time.Second)
	demo, err := TriggerDemo(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "running", demo.Status)

	server.Close()
	_, err = TriggerDemo(context.Background(), client)
	assert.Error(t, err)
}
