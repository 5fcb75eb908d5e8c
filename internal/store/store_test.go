package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, want := range []string{"session_events", "attempt_events", "hint_events", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", want,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", want, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendHintEvent(ctx, HintEventData{SessionID: "s1", A: 47, B: 53, Strategy: "difference-of-squares", Level: "method"}))
	require.NoError(t, repo.AppendAttemptEvent(ctx, AttemptEventData{SessionID: "s1", A: 47, B: 53, Strategy: "difference-of-squares", Answer: "2491", Correct: true, HintsRevealed: 1}))

	var hintSeq, attemptSeq int64
	require.NoError(t, s.DB().QueryRow("SELECT sequence FROM hint_events").Scan(&hintSeq))
	require.NoError(t, s.DB().QueryRow("SELECT sequence FROM attempt_events").Scan(&attemptSeq))
	assert.Less(t, hintSeq, attemptSeq)
}

func TestRecentAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts := []AttemptEventData{
		{SessionID: "s1", A: 47, B: 53, Strategy: "difference-of-squares", Answer: "2491", Correct: true},
		{SessionID: "s1", A: 98, B: 47, Strategy: "near-power-of-ten", Answer: "4600", Correct: false, HintsRevealed: 2},
		{SessionID: "s2", A: 73, B: 73, Strategy: "squaring", Skipped: true, HintsRevealed: 4},
	}
	for _, a := range attempts {
		require.NoError(t, repo.AppendAttemptEvent(ctx, a))
	}

	all, err := repo.RecentAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(73), all[0].A, "newest first")
	assert.True(t, all[0].Skipped)
	assert.False(t, all[0].Timestamp.IsZero())

	s1, err := repo.RecentAttempts(ctx, QueryOpts{SessionID: "s1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, s1, 1)
	assert.Equal(t, int64(98), s1[0].A)
	assert.Equal(t, "4600", s1[0].Answer)
	assert.Equal(t, 2, s1[0].HintsRevealed)

	sq, err := repo.RecentAttempts(ctx, QueryOpts{Strategy: "squaring"})
	require.NoError(t, err)
	require.Len(t, sq, 1)
	assert.Equal(t, "s2", sq[0].SessionID)
}

func TestStrategyStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, a := range []AttemptEventData{
		{SessionID: "s", A: 47, B: 53, Strategy: "difference-of-squares", Correct: true, HintsRevealed: 0, TimeMs: 4000},
		{SessionID: "s", A: 48, B: 52, Strategy: "difference-of-squares", Correct: false, HintsRevealed: 2, TimeMs: 8000},
		{SessionID: "s", A: 46, B: 54, Strategy: "difference-of-squares", Correct: true, HintsRevealed: 1, TimeMs: 6000},
		{SessionID: "s", A: 73, B: 73, Strategy: "squaring", Skipped: true},
	} {
		require.NoError(t, repo.AppendAttemptEvent(ctx, a))
	}

	stats, err := repo.StrategyStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	dos := stats[0]
	assert.Equal(t, "difference-of-squares", dos.Strategy)
	assert.Equal(t, 3, dos.Attempts)
	assert.Equal(t, 2, dos.Correct)
	assert.InDelta(t, 1.0, dos.AvgHints, 1e-9)
	assert.InDelta(t, 2.0/3.0, dos.Accuracy(), 1e-9)
	assert.Equal(t, "6s", dos.AvgTime.String())

	sq := stats[1]
	assert.Equal(t, "squaring", sq.Strategy)
	assert.Equal(t, 1, sq.Skipped)
	assert.Zero(t, sq.Accuracy())
}

func TestStrategyStatsEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().StrategyStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.Zero(t, StrategyStat{}.Accuracy())
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: SessionStarted, Difficulty: "medium"}))
	require.NoError(t, repo.AppendAttemptEvent(ctx, AttemptEventData{SessionID: "s", A: 2, B: 3, Strategy: "place_value", Answer: "6", Correct: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "walkthrough", Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "walkthrough", ErrorMessage: "boom"}))

	require.NoError(t, repo.Reset(ctx))

	for _, table := range []string{"session_events", "attempt_events", "hint_events", "llm_request_events"} {
		var n int
		require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}

	// The sequence keeps counting after a reset.
	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq)
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTALMATH_DB", dir+"/nested/test.db")
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/nested/test.db", p)
	assert.DirExists(t, dir+"/nested")
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTALMATH_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/mentalmath/mentalmath.db", p)
}

func TestRecentLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-sonnet", Purpose: "walkthrough",
		InputTokens: 120, OutputTokens: 80, LatencyMs: 900, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "walkthrough",
		LatencyMs: 30, ErrorMessage: "rate limited",
	}))

	got, err := repo.RecentLLMRequests(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "openai", got[0].Provider)
	assert.False(t, got[0].Success)
	assert.Equal(t, "rate limited", got[0].ErrorMessage)
	assert.Equal(t, "", got[1].ErrorMessage)
	assert.Equal(t, 120, got[1].InputTokens)

	got, err = repo.RecentLLMRequests(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
