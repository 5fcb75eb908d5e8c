// Package practice is the interactive practice screen: one problem at a
// time, hints on demand, and the worked solution after each answer.
package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/router"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/screen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/screens/summary"
	sess "github.com/bernhaaard/mental-math-trainer-sub002/internal/session"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/components"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/layout"
)

const tickInterval = 250 * time.Millisecond

// Screen implements screen.Screen for a practice session.
type Screen struct {
	ctx   context.Context
	opts  sess.Options
	state *sess.State
	input components.AnswerInput

	// showSolution is set once the learner answers or gives up.
	showSolution     bool
	showAlternatives bool
	lastCorrect      bool
	coaching         bool

	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a practice screen. The session starts on Init.
func New(ctx context.Context, opts sess.Options) *Screen {
	return &Screen{
		ctx:   ctx,
		opts:  opts,
		input: newInput(),
	}
}

func newInput() components.AnswerInput {
	return components.NewAnswerInput("Your answer...", 24)
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.startSession(), s.input.Init(), tickCmd())
}

func (s *Screen) Title() string {
	return "Practice"
}

func (s *Screen) Status() string {
	if s.state == nil {
		return ""
	}
	answered := s.state.TotalProblems
	if cur := s.state.Current; cur != nil && !cur.Answered {
		answered--
	}
	return formatStatus(s.state.TotalCorrect, answered, s.elapsed())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.state == nil || s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	}
	if s.showSolution {
		hints := []layout.KeyHint{
			{Key: "n/Enter", Description: "Next"},
			{Key: "a", Description: "Alternatives"},
		}
		if s.opts.Coach != nil {
			hints = append(hints, layout.KeyHint{Key: "w", Description: "Walkthrough"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "?", Description: "Hint"},
		{Key: "s", Description: "Show solution"},
		{Key: "Esc", Description: "Finish"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)

	case advancedMsg:
		return s.handleAdvanced(msg)

	case tickMsg:
		if s.state != nil && s.state.Phase != sess.PhaseSummary {
			if s.coaching && s.state.PollWalkthrough() {
				s.coaching = false
			}
			return s, tickCmd()
		}
		return s, nil

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state != nil && !s.showSolution {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) startSession() tea.Cmd {
	return func() tea.Msg {
		state, err := sess.Start(s.ctx, s.opts)
		return sessionStartedMsg{State: state, Err: err}
	}
}

func (s *Screen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	if s.state.Phase == sess.PhaseSummary {
		return s, endCmd()
	}
	return s, nil
}

func (s *Screen) handleAdvanced(msg advancedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if s.state.Phase == sess.PhaseSummary {
		return s, endCmd()
	}
	s.showSolution = false
	s.showAlternatives = false
	s.coaching = false
	s.input = newInput()
	return s, s.input.Init()
}

func (s *Screen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, tea.Quit
	}
	s.state.End(s.ctx)
	sum := sess.BuildSummary(s.state)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}
	if s.state == nil {
		return s, nil
	}
	if key == "esc" {
		return s, endCmd()
	}

	if s.showSolution {
		switch key {
		case "n", "enter":
			return s, s.advance()
		case "a":
			s.showAlternatives = !s.showAlternatives
		case "w":
			if !s.coaching && s.state.Walkthrough == nil && s.state.RequestWalkthrough(s.ctx) {
				s.coaching = true
			}
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s.submit()
	case "?":
		if _, _, err := s.state.RevealHint(s.ctx); err != nil && !errors.Is(err, sess.ErrNotActive) {
			s.errMsg = err.Error()
		}
		return s, nil
	case "s":
		if err := s.state.Skip(s.ctx); err == nil {
			s.showSolution = true
			s.input.Submit(false)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	if answer == "" {
		return s, nil
	}
	correct, err := s.state.SubmitAnswer(s.ctx, answer)
	if err != nil {
		return s, nil
	}
	s.lastCorrect = correct
	s.showSolution = true
	s.input.Submit(correct)
	return s, nil
}

func (s *Screen) advance() tea.Cmd {
	state := s.state
	ctx := s.ctx
	return func() tea.Msg {
		return advancedMsg{Err: state.Advance(ctx)}
	}
}

func (s *Screen) elapsed() time.Duration {
	if s.state == nil {
		return 0
	}
	if s.state.Phase == sess.PhaseSummary {
		return s.state.Elapsed
	}
	return time.Since(s.state.StartTime)
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
