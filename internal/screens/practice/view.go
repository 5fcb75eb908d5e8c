package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/layout"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/render"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.state == nil || s.state.Current == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nPreparing problem...")
	}

	cur := s.state.Current
	compact := layout.IsCompactHeight(height)
	cardWidth := min(width-4, 76)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Problem.Width(width).Render(cur.Problem.Text() + " = ?"))
	b.WriteString("\n\n")
	b.WriteString(render.Center(s.input.View(), width))
	b.WriteString("\n\n")

	if s.showSolution {
		b.WriteString(render.Center(s.feedbackLine(), width))
		b.WriteString("\n\n")
		b.WriteString(render.Center(render.Card(render.Solution(cur.Solution(), compact), cardWidth), width))
		if s.showAlternatives {
			b.WriteString("\n")
			b.WriteString(render.Center(render.Card(render.Alternatives(cur.Ranking.Alternatives), cardWidth), width))
		}
		if w := s.walkthroughView(); w != "" {
			b.WriteString("\n")
			b.WriteString(render.Center(render.Card(w, cardWidth), width))
		}
		return b.String()
	}

	if h, ok := cur.HintState.Current(); ok {
		b.WriteString(render.Center(render.Card(render.Hint(h), cardWidth), width))
		b.WriteString("\n")
		remaining := cur.HintState.TotalHints - cur.HintState.Revealed()
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("%d more %s", remaining, plural(remaining, "hint", "hints"))))
	}
	return b.String()
}

func (s *Screen) feedbackLine() string {
	cur := s.state.Current
	switch {
	case cur.Skipped:
		return theme.Hint.Render(fmt.Sprintf("The answer is %d.", cur.Problem.Product()))
	case s.lastCorrect:
		return theme.Correct.Render(fmt.Sprintf("Correct! %d in %s", cur.Problem.Product(), cur.TimeTaken.Round(100*time.Millisecond)))
	}
	return theme.Incorrect.Render(fmt.Sprintf("Not quite. You said %s, the answer is %d.", cur.Answer, cur.Problem.Product()))
}

func (s *Screen) walkthroughView() string {
	switch {
	case s.state.Walkthrough != nil:
		w := s.state.Walkthrough
		var b strings.Builder
		b.WriteString(theme.Strategy.Render("Coach"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(w.Intro))
		b.WriteString("\n")
		for i, step := range w.Steps {
			b.WriteString(fmt.Sprintf("%s %s\n", theme.Explanation.Render(fmt.Sprintf("%d.", i+1)), theme.Body.Render(step)))
		}
		if w.Tip != "" {
			b.WriteString(theme.Hint.Render("Tip: " + w.Tip))
		}
		return strings.TrimRight(b.String(), "\n")
	case s.coaching:
		return theme.Hint.Render("Asking the coach...")
	case s.state.WalkthroughErr != nil:
		return theme.Incorrect.Render("The coach is unavailable right now.")
	}
	return ""
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nSomething went wrong:\n" + msg + "\n\nPress any key to quit.")
}

func formatStatus(correct, answered int, elapsed time.Duration) string {
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("✓ %d/%d   %d:%02d", correct, answered, mins, secs)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
