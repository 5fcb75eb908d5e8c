// Package render draws derivations, hints and rankings for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

// Steps renders a derivation as a numbered list with sub-steps indented
// under their parent. Explanations are dropped when compact is set.
func Steps(steps []method.Step, compact bool) string {
	var b strings.Builder
	for i, s := range steps {
		writeStep(&b, fmt.Sprintf("%d.", i+1), s, 0, compact)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeStep(b *strings.Builder, bullet string, s method.Step, indent int, compact bool) {
	pad := strings.Repeat("   ", indent)
	b.WriteString(pad)
	b.WriteString(theme.Explanation.Render(bullet))
	b.WriteString(" ")
	b.WriteString(theme.Expression.Render(s.Expression))
	b.WriteString("\n")
	if !compact && s.Explanation != "" {
		b.WriteString(pad + "   ")
		b.WriteString(theme.Explanation.Render(s.Explanation))
		b.WriteString("\n")
	}
	for _, sub := range s.SubSteps {
		writeStep(b, "·", sub, indent+1, compact)
	}
}

// Solution renders the strategy name, the rationale and the steps.
func Solution(sol *method.Solution, compact bool) string {
	var b strings.Builder
	b.WriteString(theme.Strategy.Render(sol.Strategy.DisplayName()))
	b.WriteString("\n")
	if sol.Rationale != "" {
		b.WriteString(theme.Hint.Render(sol.Rationale))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Steps(sol.Steps, compact))
	b.WriteString("\n\n")
	b.WriteString(theme.StepResult.Render(fmt.Sprintf("= %d", sol.Answer())))
	return b.String()
}

// Alternatives lists the runner-up strategies and why each lost.
func Alternatives(alts []method.Alternative) string {
	if len(alts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Other ways"))
	b.WriteString("\n")
	for _, alt := range alts {
		b.WriteString(fmt.Sprintf("%s %s\n",
			theme.Strategy.Render("• "+alt.Strategy.DisplayName()),
			theme.Explanation.Render(fmt.Sprintf("(cost %.1f, %d steps)", alt.CostScore, len(alt.Steps))),
		))
		b.WriteString("  " + theme.Hint.Render(alt.WhyNotOptimal) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Hint renders one revealed hint.
func Hint(h hints.Hint) string {
	var b strings.Builder
	b.WriteString(theme.Strategy.Render(h.Title))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(h.Content))
	if h.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(h.Explanation))
	}
	return b.String()
}

// Card frames content at the given outer width.
func Card(content string, width int) string {
	return theme.Card.Width(max(width, 20)).Render(content)
}

// Center horizontally centers a block within width.
func Center(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
