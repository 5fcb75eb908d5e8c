package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

var (
	// ErrNotActive is returned when an operation needs an unanswered problem.
	ErrNotActive = errors.New("no problem awaiting an answer")

	// ErrEnded is returned once the session has reached its summary.
	ErrEnded = errors.New("session has ended")
)

// Start begins a session and serves its first problem.
func Start(ctx context.Context, opts Options) (*State, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("session: generator is required")
	}
	if opts.Selector == nil {
		opts.Selector = method.NewSelector(method.DefaultConfig())
	}
	if opts.Hints.MaxHints == 0 {
		opts.Hints = hints.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &State{
		SessionID:   uuid.New().String(),
		PerStrategy: make(map[method.Strategy]*StrategyResult),
		opts:        opts,
		now:         time.Now,
	}
	s.StartTime = s.now()

	s.record(ctx, "session", func(r store.EventRepo) error {
		return r.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.SessionID,
			Action:     store.SessionStarted,
			Difficulty: opts.Difficulty,
		})
	})
	opts.Logger.Info("session started",
		zap.String("session_id", s.SessionID),
		zap.String("difficulty", opts.Difficulty),
	)

	if err := s.Advance(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// CurrentProblem returns the problem on screen, or nil after the session ends.
func (s *State) CurrentProblem() *ProblemState {
	return s.Current
}

// Advance moves to the next problem, ending the session when the problem
// budget or the generator is exhausted.
func (s *State) Advance(ctx context.Context) error {
	if s.Phase == PhaseSummary {
		return ErrEnded
	}
	if s.opts.MaxProblems > 0 && s.TotalProblems >= s.opts.MaxProblems {
		s.End(ctx)
		return nil
	}

	p, err := s.opts.Generator.Generate(ctx)
	if errors.Is(err, problemgen.ErrExhausted) {
		s.End(ctx)
		return nil
	}
	if err != nil {
		return fmt.Errorf("generate problem: %w", err)
	}

	ranking, err := s.opts.Selector.Select(p.A, p.B)
	if err != nil {
		return fmt.Errorf("rank %s: %w", p, err)
	}
	h := hints.Generate(ranking, p.A, p.B, s.opts.Hints)

	s.Current = &ProblemState{
		Problem:   p,
		Ranking:   ranking,
		Hints:     h,
		HintState: hints.NewState(h),
		StartedAt: s.now(),
	}
	s.TotalProblems++
	s.Phase = PhaseActive
	s.Walkthrough = nil
	s.WalkthroughErr = nil

	s.opts.Logger.Debug("problem served",
		zap.String("problem", p.Text()),
		zap.Stringer("strategy", ranking.Optimal.Strategy),
	)
	return nil
}

// RevealHint reveals the next hint level for the current problem.
// It returns false when every hint is already shown.
func (s *State) RevealHint(ctx context.Context) (hints.Hint, bool, error) {
	cur := s.Current
	if cur == nil || s.Phase != PhaseActive {
		return hints.Hint{}, false, ErrNotActive
	}
	if !cur.HintState.HasMoreHints {
		return hints.Hint{}, false, nil
	}

	cur.HintState = hints.Reveal(cur.HintState, cur.Hints)
	h, _ := cur.HintState.Current()
	s.TotalHints++
	s.strategyResult(cur.Strategy()).Hints++

	s.record(ctx, "hint", func(r store.EventRepo) error {
		return r.AppendHintEvent(ctx, store.HintEventData{
			SessionID: s.SessionID,
			A:         cur.Problem.A,
			B:         cur.Problem.B,
			Strategy:  cur.Strategy().String(),
			Level:     h.Level.String(),
		})
	})
	return h, true, nil
}

// SubmitAnswer checks the learner's answer to the current problem.
func (s *State) SubmitAnswer(ctx context.Context, answer string) (bool, error) {
	cur := s.Current
	if cur == nil || s.Phase != PhaseActive {
		return false, ErrNotActive
	}

	correct := problemgen.CheckAnswer(answer, cur.Problem)
	cur.Answer = answer
	cur.Correct = correct
	s.finish(ctx, cur)

	res := s.strategyResult(cur.Strategy())
	res.Attempted++
	if correct {
		res.Correct++
		s.TotalCorrect++
	}
	return correct, nil
}

// Skip gives up on the current problem and reveals the solution.
func (s *State) Skip(ctx context.Context) error {
	cur := s.Current
	if cur == nil || s.Phase != PhaseActive {
		return ErrNotActive
	}
	cur.Skipped = true
	s.finish(ctx, cur)

	s.strategyResult(cur.Strategy()).Skipped++
	s.TotalSkipped++
	return nil
}

func (s *State) finish(ctx context.Context, cur *ProblemState) {
	cur.Answered = true
	cur.TimeTaken = s.now().Sub(cur.StartedAt)
	s.Phase = PhaseFeedback

	s.record(ctx, "attempt", func(r store.EventRepo) error {
		return r.AppendAttemptEvent(ctx, store.AttemptEventData{
			SessionID:     s.SessionID,
			A:             cur.Problem.A,
			B:             cur.Problem.B,
			Strategy:      cur.Strategy().String(),
			Answer:        cur.Answer,
			Correct:       cur.Correct,
			Skipped:       cur.Skipped,
			HintsRevealed: cur.HintState.Revealed(),
			TimeMs:        cur.TimeTaken.Milliseconds(),
		})
	})
}

// RequestWalkthrough asks the coach, if any, to retell the current
// solution in the background. It reports whether a request was made.
func (s *State) RequestWalkthrough(ctx context.Context) bool {
	if s.opts.Coach == nil || s.Current == nil {
		return false
	}
	s.opts.Coach.Request(ctx, coach.InputFromRanking(s.Current.Ranking))
	return true
}

// PollWalkthrough picks up a finished walkthrough. Results for a problem
// that is no longer current are dropped.
func (s *State) PollWalkthrough() bool {
	if s.opts.Coach == nil {
		return false
	}
	res, ok := s.opts.Coach.Consume()
	if !ok {
		return false
	}
	cur := s.Current
	if cur == nil || res.Input.A != cur.Problem.A || res.Input.B != cur.Problem.B {
		return false
	}
	if res.Err != nil {
		s.WalkthroughErr = res.Err
		s.opts.Logger.Warn("walkthrough failed", zap.Error(res.Err))
		return true
	}
	s.Walkthrough = res.Walkthrough
	return true
}

// End finishes the session and records the summary event. It is a no-op
// once the session has ended.
func (s *State) End(ctx context.Context) {
	if s.Phase == PhaseSummary {
		return
	}
	s.Phase = PhaseSummary
	s.Elapsed = s.now().Sub(s.StartTime)
	s.Current = nil

	s.record(ctx, "session", func(r store.EventRepo) error {
		return r.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.SessionID,
			Action:         store.SessionEnded,
			Difficulty:     s.opts.Difficulty,
			ProblemsServed: s.TotalProblems,
			CorrectAnswers: s.TotalCorrect,
			DurationSecs:   int(s.Elapsed.Seconds()),
		})
	})
	s.opts.Logger.Info("session ended",
		zap.String("session_id", s.SessionID),
		zap.Int("problems", s.TotalProblems),
		zap.Int("correct", s.TotalCorrect),
		zap.Duration("elapsed", s.Elapsed),
	)
}

func (s *State) strategyResult(st method.Strategy) *StrategyResult {
	r, ok := s.PerStrategy[st]
	if !ok {
		r = &StrategyResult{Strategy: st}
		s.PerStrategy[st] = r
	}
	return r
}

// record writes an event when a repo is configured. Failures are logged
// and never interrupt practice.
func (s *State) record(ctx context.Context, kind string, write func(store.EventRepo) error) {
	if s.opts.EventRepo == nil {
		return
	}
	if err := write(s.opts.EventRepo); err != nil {
		s.opts.Logger.Warn("failed to record event", zap.String("kind", kind), zap.Error(err))
	}
}
