package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func startSession(t *testing.T, opts Options, problems ...problemgen.Problem) *State {
	t.Helper()
	if len(problems) == 0 {
		problems = []problemgen.Problem{{A: 47, B: 53}, {A: 98, B: 47}, {A: 73, B: 73}}
	}
	opts.Generator = problemgen.NewSequence(problems...)
	s, err := Start(context.Background(), opts)
	require.NoError(t, err)
	return s
}

func TestStartServesFirstProblem(t *testing.T) {
	s := startSession(t, Options{})

	require.NotEmpty(t, s.SessionID)
	assert.Equal(t, PhaseActive, s.Phase)
	cur := s.CurrentProblem()
	require.NotNil(t, cur)
	assert.Equal(t, "47 × 53", cur.Problem.Text())
	assert.Equal(t, method.DifferenceOfSquares, cur.Strategy())
	assert.True(t, cur.HintState.HasMoreHints)
	assert.Equal(t, 1, s.TotalProblems)
}

func TestStartRequiresGenerator(t *testing.T) {
	_, err := Start(context.Background(), Options{})
	assert.Error(t, err)
}

func TestRevealHintsInOrder(t *testing.T) {
	s := startSession(t, Options{})
	ctx := context.Background()

	var levels []hints.Level
	for {
		h, ok, err := s.RevealHint(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		levels = append(levels, h.Level)
	}
	require.NotEmpty(t, levels)
	assert.Equal(t, hints.LevelMethod, levels[0])
	for i := 1; i < len(levels); i++ {
		assert.Greater(t, levels[i], levels[i-1])
	}
	assert.Equal(t, len(levels), s.TotalHints)
	assert.Equal(t, len(levels), s.Current.HintState.Revealed())
}

func TestSubmitAnswer(t *testing.T) {
	s := startSession(t, Options{})
	ctx := context.Background()

	correct, err := s.SubmitAnswer(ctx, "2,491")
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, PhaseFeedback, s.Phase)

	_, err = s.SubmitAnswer(ctx, "2491")
	assert.ErrorIs(t, err, ErrNotActive, "one answer per problem")

	_, _, err = s.RevealHint(ctx)
	assert.ErrorIs(t, err, ErrNotActive)

	require.NoError(t, s.Advance(ctx))
	correct, err = s.SubmitAnswer(ctx, "4600")
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Equal(t, 1, s.TotalCorrect)
}

func TestSessionEndsWhenGeneratorExhausted(t *testing.T) {
	s := startSession(t, Options{}, problemgen.Problem{A: 24, B: 35})
	ctx := context.Background()

	require.NoError(t, s.Skip(ctx))
	require.NoError(t, s.Advance(ctx))
	assert.Equal(t, PhaseSummary, s.Phase)
	assert.Nil(t, s.CurrentProblem())
	assert.ErrorIs(t, s.Advance(ctx), ErrEnded)
	assert.ErrorIs(t, s.Skip(ctx), ErrNotActive)
}

func TestMaxProblems(t *testing.T) {
	s := startSession(t, Options{MaxProblems: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Skip(ctx))
		require.NoError(t, s.Advance(ctx))
	}
	assert.Equal(t, PhaseSummary, s.Phase)
	assert.Equal(t, 2, s.TotalProblems)
}

func TestBuildSummary(t *testing.T) {
	s := startSession(t, Options{})
	ctx := context.Background()
	clock := s.StartTime
	s.now = func() time.Time { return clock }

	_, _, err := s.RevealHint(ctx)
	require.NoError(t, err)
	_, err = s.SubmitAnswer(ctx, "2491") // difference of squares, correct
	require.NoError(t, err)
	require.NoError(t, s.Advance(ctx))
	_, err = s.SubmitAnswer(ctx, "1") // near power of ten, wrong
	require.NoError(t, err)
	require.NoError(t, s.Advance(ctx))
	require.NoError(t, s.Skip(ctx)) // squaring, skipped

	clock = clock.Add(90 * time.Second)
	s.End(ctx)
	sum := BuildSummary(s)

	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Equal(t, 3, sum.TotalProblems)
	assert.Equal(t, 1, sum.TotalCorrect)
	assert.Equal(t, 1, sum.TotalSkipped)
	assert.Equal(t, 1, sum.TotalHints)
	assert.InDelta(t, 1.0/3.0, sum.Accuracy, 1e-9)

	require.Len(t, sum.Strategies, 3)
	// Catalog order: squaring, difference of squares, near power of ten.
	assert.Equal(t, method.Squaring, sum.Strategies[0].Strategy)
	assert.Equal(t, 1, sum.Strategies[0].Skipped)
	assert.Equal(t, method.DifferenceOfSquares, sum.Strategies[1].Strategy)
	assert.Equal(t, StrategyResult{Strategy: method.DifferenceOfSquares, Attempted: 1, Correct: 1, Hints: 1}, sum.Strategies[1])
	assert.Equal(t, method.NearPowerOfTen, sum.Strategies[2].Strategy)
}

func TestEventsRecorded(t *testing.T) {
	repo := openRepo(t)
	s := startSession(t, Options{EventRepo: repo, Difficulty: "medium"})
	ctx := context.Background()

	_, _, err := s.RevealHint(ctx)
	require.NoError(t, err)
	_, err = s.SubmitAnswer(ctx, "2491")
	require.NoError(t, err)
	s.End(ctx)

	attempts, err := repo.RecentAttempts(ctx, store.QueryOpts{SessionID: s.SessionID})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	a := attempts[0]
	assert.Equal(t, int64(47), a.A)
	assert.Equal(t, "difference-of-squares", a.Strategy)
	assert.True(t, a.Correct)
	assert.Equal(t, 1, a.HintsRevealed)

	stats, err := repo.StrategyStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Correct)
}

func TestWalkthroughFlow(t *testing.T) {
	content, _ := json.Marshal(map[string]any{
		"intro":        "Balanced around 50.",
		"steps":        []string{"50 squared is 2500.", "Take away 9 to get 2491."},
		"tip":          "Look for a round midpoint.",
		"final_answer": 2491,
	})
	svc := coach.NewService(llm.NewMockProvider(llm.MockResponse{Content: content}), coach.DefaultConfig(), nil)
	t.Cleanup(svc.Close)

	s := startSession(t, Options{Coach: svc})
	ctx := context.Background()
	require.NoError(t, s.Skip(ctx))
	require.True(t, s.RequestWalkthrough(ctx))

	require.Eventually(t, s.PollWalkthrough, 5*time.Second, 5*time.Millisecond)
	require.NotNil(t, s.Walkthrough)
	assert.Equal(t, int64(2491), s.Walkthrough.FinalAnswer)

	require.NoError(t, s.Advance(ctx))
	assert.Nil(t, s.Walkthrough)
}

func TestWalkthroughWithoutCoach(t *testing.T) {
	s := startSession(t, Options{})
	assert.False(t, s.RequestWalkthrough(context.Background()))
	assert.False(t, s.PollWalkthrough())
}

func TestWalkthroughFailureForCurrentProblem(t *testing.T) {
	svc := coach.NewService(llm.NewMockProvider(), coach.DefaultConfig(), nil)
	t.Cleanup(svc.Close)

	s := startSession(t, Options{Coach: svc})
	ctx := context.Background()
	require.NoError(t, s.Skip(ctx))
	require.True(t, s.RequestWalkthrough(ctx))

	require.Eventually(t, s.PollWalkthrough, 5*time.Second, 5*time.Millisecond)
	assert.Error(t, s.WalkthroughErr)
	assert.Nil(t, s.Walkthrough)
}

func TestLateWalkthroughFailureIsDropped(t *testing.T) {
	svc := coach.NewService(llm.NewMockProvider(), coach.DefaultConfig(), nil)

	s := startSession(t, Options{Coach: svc})
	ctx := context.Background()
	require.NoError(t, s.Skip(ctx))
	require.True(t, s.RequestWalkthrough(ctx))
	require.NoError(t, s.Advance(ctx))

	// Close waits for the request for 47 × 53 to settle.
	svc.Close()

	assert.False(t, s.PollWalkthrough())
	assert.NoError(t, s.WalkthroughErr)
	assert.Equal(t, int64(98), s.CurrentProblem().Problem.A)
}
