package store

import (
	"context"
	"time"
)

// QueryOpts filters attempt queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only this session when non-empty
	Strategy  string // only this strategy when non-empty
}

// Session lifecycle actions.
const (
	SessionStarted = "started"
	SessionEnded   = "ended"
)

// SessionEventData records a practice session starting or ending.
type SessionEventData struct {
	SessionID      string
	Action         string // SessionStarted or SessionEnded
	Difficulty     string
	ProblemsServed int
	CorrectAnswers int
	DurationSecs   int
}

// AttemptEventData records one answer (or skip) for a problem.
type AttemptEventData struct {
	SessionID     string
	A, B          int64
	Strategy      string // stable name of the optimal strategy
	Answer        string // raw learner input
	Correct       bool
	Skipped       bool
	HintsRevealed int
	TimeMs        int64
}

// HintEventData records a hint being revealed.
type HintEventData struct {
	SessionID string
	A, B      int64
	Strategy  string
	Level     string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Attempt is a stored attempt event.
type Attempt struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// LLMRequest is a stored LLM request event.
type LLMRequest struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// StrategyStat aggregates attempts whose optimal method was one strategy.
type StrategyStat struct {
	Strategy string        `json:"strategy"`
	Attempts int           `json:"attempts"`
	Correct  int           `json:"correct"`
	Skipped  int           `json:"skipped"`
	AvgHints float64       `json:"avg_hints"`
	AvgTime  time.Duration `json:"avg_time_ns"`
}

// Accuracy is the fraction of attempts answered correctly.
func (s StrategyStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// StrategyStats aggregates all attempts per strategy, most attempted first.
	StrategyStats(ctx context.Context) ([]StrategyStat, error)

	// RecentAttempts returns attempts newest first.
	RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// RecentLLMRequests returns LLM request events newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}
