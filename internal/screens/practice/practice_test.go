package practice

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/router"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/screens/summary"
	sess "github.com/bernhaaard/mental-math-trainer-sub002/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// started returns a screen whose session has served its first problem.
func started(t *testing.T, problems ...problemgen.Problem) *Screen {
	t.Helper()
	s := New(context.Background(), sess.Options{Generator: problemgen.NewSequence(problems...)})
	scr, _ := s.Update(s.startSession()())
	s = scr.(*Screen)
	require.Empty(t, s.errMsg)
	require.NotNil(t, s.state)
	return s
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *Screen, cmd tea.Cmd) (*Screen, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	scr, next := s.Update(cmd())
	return scr.(*Screen), next
}

func TestStartShowsProblem(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})

	view := s.View(100, 30)
	assert.Contains(t, view, "47 × 53 = ?")
	assert.Equal(t, "Practice", s.Title())
	assert.Contains(t, s.Status(), "✓ 0/0")
}

func TestHintKeyRevealsHints(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})

	scr, _ := s.Update(keyPress('?'))
	s = scr.(*Screen)
	assert.Equal(t, 1, s.state.Current.HintState.Revealed())
	assert.Contains(t, s.View(100, 30), "Difference of Squares")

	// The hint key never reaches the answer input.
	assert.Empty(t, s.input.Value())
}

func TestCorrectAnswerShowsSolution(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53}, problemgen.Problem{A: 73, B: 73})

	s.input.Model.SetValue("2491")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)

	require.True(t, s.showSolution)
	assert.True(t, s.lastCorrect)
	view := s.View(100, 40)
	assert.Contains(t, view, "Correct!")
	assert.Contains(t, view, "= 2491")
	assert.Contains(t, s.Status(), "✓ 1/1")

	scr, _ = s.Update(keyPress('a'))
	s = scr.(*Screen)
	assert.Contains(t, s.View(100, 60), "Other ways")

	// n moves on to the next problem.
	_, cmd := s.Update(keyPress('n'))
	s, _ = run(t, s, cmd)
	assert.False(t, s.showSolution)
	assert.Equal(t, int64(73), s.state.Current.Problem.A)
	assert.Empty(t, s.input.Value())
}

func TestWrongAnswer(t *testing.T) {
	s := started(t, problemgen.Problem{A: 98, B: 47})

	s.input.Model.SetValue("4600")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)

	assert.False(t, s.lastCorrect)
	assert.Contains(t, s.View(100, 40), "the answer is 4606")
	assert.Equal(t, method.NearPowerOfTen, s.state.Current.Strategy())
}

func TestEmptySubmitIgnored(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	assert.False(t, scr.(*Screen).showSolution)
}

func TestSkipShowsSolution(t *testing.T) {
	s := started(t, problemgen.Problem{A: 73, B: 73})

	scr, _ := s.Update(keyPress('s'))
	s = scr.(*Screen)

	require.True(t, s.showSolution)
	assert.Equal(t, 1, s.state.TotalSkipped)
	assert.Contains(t, s.View(100, 40), "The answer is 5329.")
}

func TestSessionEndReplacesWithSummary(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})

	s.input.Model.SetValue("2491")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)

	// The sequence is exhausted, so advancing ends the session.
	_, cmd := s.Update(keyPress('n'))
	s, cmd = run(t, s, cmd)
	s, cmd = run(t, s, cmd)

	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	assert.True(t, strings.Contains(sum.View(100, 30), "Correct: 1"))
	assert.Equal(t, sess.PhaseSummary, s.state.Phase)
}

func TestEscEndsSession(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	_, cmd = run(t, s, cmd)
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
}

func TestStartFailureShowsError(t *testing.T) {
	s := New(context.Background(), sess.Options{})
	scr, _ := s.Update(s.startSession()())
	s = scr.(*Screen)

	assert.Contains(t, s.View(100, 30), "generator is required")

	_, cmd := s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestWalkthroughKeyWithoutCoach(t *testing.T) {
	s := started(t, problemgen.Problem{A: 47, B: 53})
	s.input.Model.SetValue("1")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)

	scr, _ = s.Update(keyPress('w'))
	s = scr.(*Screen)
	assert.False(t, s.coaching)
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "w", h.Key)
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "✓ 3/4   1:05", formatStatus(3, 4, 65e9))
}
