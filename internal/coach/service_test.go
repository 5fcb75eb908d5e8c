package coach

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testInput(t *testing.T) Input {
	t.Helper()
	r, err := method.SelectOptimalMethod(47, 53)
	require.NoError(t, err)
	require.Equal(t, method.DifferenceOfSquares, r.Optimal.Strategy)
	return InputFromRanking(r)
}

func walkthroughJSON(final int64, steps ...string) json.RawMessage {
	if len(steps) == 0 {
		steps = []string{
			"47 and 53 sit 3 either side of 50.",
			"So the product is 50 squared minus 3 squared.",
			"50 squared is 2500 and 3 squared is 9.",
			"2500 minus 9 gives 2491.",
		}
	}
	b, _ := json.Marshal(map[string]any{
		"intro":        "The two numbers are balanced around a round number.",
		"steps":        steps,
		"tip":          "Look for pairs with a round midpoint.",
		"final_answer": final,
	})
	return b
}

func TestWalkthrough_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: walkthroughJSON(2491)})
	svc := NewService(mock, DefaultConfig(), nil)

	w, err := svc.Walkthrough(context.Background(), testInput(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2491), w.FinalAnswer)
	assert.Equal(t, method.DifferenceOfSquares, w.Strategy)
	assert.Len(t, w.Steps, 4)
	assert.Equal(t, "mock", w.Model)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, WalkthroughSchema, calls[0].Schema)
	assert.Contains(t, calls[0].Messages[0].Content, "Problem: 47 × 53")
	assert.Contains(t, calls[0].Messages[0].Content, "Difference of Squares")
}

func TestWalkthrough_WrongAnswerIsDiscarded(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: walkthroughJSON(2490)},
		llm.MockResponse{Content: walkthroughJSON(2491)},
	)
	svc := NewService(mock, DefaultConfig(), nil)

	w, err := svc.Walkthrough(context.Background(), testInput(t))
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrWalkthroughMismatch)
	assert.Equal(t, 1, mock.CallCount(), "a wrong final answer is not retried")
}

func TestWalkthrough_RetriesWithFeedback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: walkthroughJSON(2491, "Multiply 47 by 50 to get 2350.")},
		llm.MockResponse{Content: walkthroughJSON(2491)},
	)
	svc := NewService(mock, DefaultConfig(), nil)

	w, err := svc.Walkthrough(context.Background(), testInput(t))
	require.NoError(t, err)
	assert.Equal(t, int64(2491), w.FinalAnswer)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1].Messages, 3)
	assert.Equal(t, llm.RoleAssistant, calls[1].Messages[1].Role)
	assert.Contains(t, calls[1].Messages[2].Content, "2350")
}

func TestWalkthrough_GivesUpAfterMaxAttempts(t *testing.T) {
	bad := walkthroughJSON(2491, "Multiply 47 by 50 to get 2350.")
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad}, llm.MockResponse{Content: bad})
	svc := NewService(mock, DefaultConfig(), nil)

	_, err := svc.Walkthrough(context.Background(), testInput(t))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "numbers", verr.Validator)
	assert.Equal(t, 2, mock.CallCount())
}

func TestWalkthrough_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"intro":"hi"}`)})
	svc := NewService(mock, DefaultConfig(), nil)

	_, err := svc.Walkthrough(context.Background(), testInput(t))
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestWalkthrough_NoDerivation(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig(), nil)
	_, err := svc.Walkthrough(context.Background(), Input{A: 2, B: 3})
	assert.Error(t, err)
}

func TestRequestAndConsume(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: walkthroughJSON(2491)})
	svc := NewService(mock, DefaultConfig(), nil)
	defer svc.Close()

	_, ok := svc.Consume()
	assert.False(t, ok)

	svc.Request(context.Background(), testInput(t))

	var res Result
	require.Eventually(t, func() bool {
		res, ok = svc.Consume()
		return ok
	}, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(2491), res.Walkthrough.FinalAnswer)

	_, ok = svc.Consume()
	assert.False(t, ok, "result is cleared after consumption")
}

func TestRequestReportsFailure(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig(), nil)
	defer svc.Close()

	svc.Request(context.Background(), testInput(t))
	var res Result
	require.Eventually(t, func() bool {
		var ok bool
		res, ok = svc.Consume()
		return ok
	}, 5*time.Second, 5*time.Millisecond)
	assert.Error(t, res.Err)
	assert.Nil(t, res.Walkthrough)
	assert.Equal(t, int64(47), res.Input.A)
	assert.Equal(t, int64(53), res.Input.B)
}

// blockingProvider waits for cancellation.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestCloseCancelsInFlight(t *testing.T) {
	svc := NewService(blockingProvider{}, DefaultConfig(), nil)
	in := testInput(t)
	svc.Request(context.Background(), in)
	svc.Request(context.Background(), in)

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	_, ok := svc.Consume()
	assert.False(t, ok, "canceled requests leave no result")

	svc.Request(context.Background(), in)
	_, ok = svc.Consume()
	assert.False(t, ok, "requests after Close are ignored")
}
