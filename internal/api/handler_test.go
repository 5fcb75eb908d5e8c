package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

func newTestServer(t *testing.T, repo store.EventRepo) *httptest.Server {
	t.Helper()
	h := NewHandler(method.NewSelector(method.DefaultConfig()), hints.DefaultConfig(), repo, nil)
	srv := httptest.NewServer(NewRouter(h, []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t, nil)

	var catalog []StrategyInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/catalog", &catalog))
	require.Len(t, catalog, 10)
	assert.Equal(t, "square-ending-in-5", catalog[0].Name)
	assert.Equal(t, 1, catalog[0].Priority)
	assert.Equal(t, "place-value", catalog[9].Name)

	var one StrategyInfo
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/catalog/squaring", &one))
	assert.Equal(t, "Squaring", one.DisplayName)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/v1/catalog/abacus", nil))
}

func TestRank(t *testing.T) {
	srv := newTestServer(t, nil)

	var r method.Ranking
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/rank?a=47&b=53", &r))
	assert.Equal(t, method.DifferenceOfSquares, r.Optimal.Strategy)
	assert.Equal(t, int64(2491), r.Optimal.Solution.Answer())
	assert.True(t, r.Optimal.Solution.Validated)
	assert.NotEmpty(t, r.ComparisonSummary)
}

func TestRankBadInput(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []string{
		"/api/v1/rank?a=47",
		"/api/v1/rank?a=x&b=2",
		"/api/v1/rank?a=2000000000&b=3",
		"/api/v1/hints?a=2&b=3&reveal=-1",
	}
	for _, path := range tests {
		var e ErrorResponse
		assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, path, &e), path)
		assert.NotEmpty(t, e.Error, path)
	}
}

func TestCandidates(t *testing.T) {
	srv := newTestServer(t, nil)
	var cands []method.Candidate
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/candidates?a=98&b=47", &cands))
	require.NotEmpty(t, cands)
	assert.Equal(t, method.NearPowerOfTen, cands[0].Strategy)
}

func TestHints(t *testing.T) {
	srv := newTestServer(t, nil)

	var resp HintsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/hints?a=47&b=53&reveal=2", &resp))
	assert.Equal(t, method.DifferenceOfSquares, resp.Result.Strategy)
	assert.Equal(t, hints.LevelFirstStep, resp.State.CurrentLevel)
	assert.Len(t, resp.State.RevealedHints, 2)

	// Over-revealing stops at the last hint.
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/hints?a=47&b=53&reveal=99", &resp))
	assert.False(t, resp.State.HasMoreHints)
	assert.Len(t, resp.State.RevealedHints, resp.State.TotalHints)
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t, nil)

	post := func(body string) (int, method.ValidationResult) {
		resp, err := http.Post(srv.URL+"/api/v1/validate", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		var res method.ValidationResult
		json.NewDecoder(resp.Body).Decode(&res)
		return resp.StatusCode, res
	}

	r, err := method.SelectOptimalMethod(24, 35)
	require.NoError(t, err)
	good, err := json.Marshal(ValidateRequest{A: 24, B: 35, Steps: r.Optimal.Solution.Steps})
	require.NoError(t, err)

	status, res := post(string(good))
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, res.Valid)

	status, res = post(`{"a":24,"b":35,"steps":[{"expression":"24 × 35","result":850}]}`)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)

	status, _ = post(`{"a":24,"b":35,"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// 2^32 × 2^32 would wrap to zero.
	status, _ = post(`{"a":4294967296,"b":4294967296,"steps":[{"expression":"0","result":0}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv, "/api/v1/stats", nil))

	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	repo := st.EventRepo()
	require.NoError(t, repo.AppendAttemptEvent(context.Background(), store.AttemptEventData{
		SessionID: "s", A: 47, B: 53, Strategy: "difference-of-squares", Answer: "2491", Correct: true,
	}))

	srv = newTestServer(t, repo)
	var stats []store.StrategyStat
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/v1/stats", &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Correct)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/rank", bytes.NewReader(nil))
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
