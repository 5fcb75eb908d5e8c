package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

func TestSolution(t *testing.T) {
	r, err := method.SelectOptimalMethod(47, 53)
	require.NoError(t, err)

	out := Solution(r.Optimal.Solution, false)
	assert.Contains(t, out, method.DifferenceOfSquares.DisplayName())
	assert.Contains(t, out, "= 2491")
	for _, s := range r.Optimal.Solution.Steps {
		assert.Contains(t, out, s.Expression)
		assert.Contains(t, out, s.Explanation)
	}
}

func TestStepsCompactDropsExplanations(t *testing.T) {
	steps := []method.Step{
		{Expression: "20 × 7 = 140", Result: 140, Explanation: "Tens first"},
		{Expression: "140 + 21 = 161", Result: 161, Explanation: "Add the ones",
			SubSteps: []method.Step{{Expression: "3 × 7 = 21", Result: 21, Depth: 1}}},
	}

	full := Steps(steps, false)
	assert.Contains(t, full, "Tens first")
	assert.Contains(t, full, "3 × 7 = 21")

	compact := Steps(steps, true)
	assert.NotContains(t, compact, "Tens first")
	assert.Contains(t, compact, "3 × 7 = 21")
	assert.Equal(t, 3, strings.Count(compact, "\n")+1)
}

func TestAlternatives(t *testing.T) {
	assert.Empty(t, Alternatives(nil))

	r, err := method.SelectOptimalMethod(47, 53)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alternatives)

	out := Alternatives(r.Alternatives)
	for _, alt := range r.Alternatives {
		assert.Contains(t, out, alt.Strategy.DisplayName())
	}
}

func TestHint(t *testing.T) {
	out := Hint(hints.Hint{Title: "Method", Content: "Use Squaring.", Explanation: "Round to a friendly base"})
	assert.Contains(t, out, "Method")
	assert.Contains(t, out, "Use Squaring.")
	assert.Contains(t, out, "Round to a friendly base")
}
