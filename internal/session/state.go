// Package session runs a practice session: it serves problems, reveals
// hints one level at a time, checks answers and records events.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive   Phase = iota // Waiting for an answer
	PhaseFeedback              // Answer checked, solution may be shown
	PhaseSummary               // Session over
)

// Options configures a new session. Only Generator is required.
type Options struct {
	Generator  problemgen.Generator
	Selector   *method.Selector
	Hints      hints.Config
	Difficulty string

	// MaxProblems ends the session after that many problems. Zero means
	// until the generator runs out or End is called.
	MaxProblems int

	// EventRepo records session, attempt and hint events (nil if disabled).
	EventRepo store.EventRepo

	// Coach produces walkthroughs of the solution (nil if disabled).
	Coach *coach.Service

	Logger *zap.Logger
}

// ProblemState is the runtime state of the problem on screen.
type ProblemState struct {
	Problem problemgen.Problem
	Ranking *method.Ranking

	// Hints is the full hint sequence; HintState is how much of it the
	// learner has seen.
	Hints     *hints.Result
	HintState hints.State

	Answer   string
	Answered bool
	Correct  bool
	Skipped  bool

	StartedAt time.Time
	TimeTaken time.Duration
}

// Strategy returns the optimal strategy for the problem.
func (p *ProblemState) Strategy() method.Strategy {
	return p.Ranking.Optimal.Strategy
}

// Solution returns the optimal derivation.
func (p *ProblemState) Solution() *method.Solution {
	return p.Ranking.Optimal.Solution
}

// StrategyResult tracks per-strategy performance within a single session.
type StrategyResult struct {
	Strategy  method.Strategy
	Attempted int
	Correct   int
	Skipped   int
	Hints     int
}

// State tracks the runtime state of an active session.
type State struct {
	SessionID string
	Phase     Phase

	// Current is the problem being worked on (nil once the session ends).
	Current *ProblemState

	TotalProblems int
	TotalCorrect  int
	TotalSkipped  int
	TotalHints    int

	PerStrategy map[method.Strategy]*StrategyResult

	StartTime time.Time
	Elapsed   time.Duration

	// Walkthrough is the coached retelling of the current solution, once
	// it has arrived.
	Walkthrough *coach.Walkthrough

	// WalkthroughErr is the last coach failure, cleared on Advance.
	WalkthroughErr error

	opts Options
	now  func() time.Time
}
