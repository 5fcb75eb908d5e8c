// Package hints turns a ranked derivation into graduated hints that reveal
// the method first and then progressively more of the worked steps.
package hints

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

// Level is how much of the solution a hint gives away.
type Level int

const (
	LevelNone Level = iota
	LevelMethod
	LevelFirstStep
	LevelMoreSteps
	LevelNearlyComplete
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelMethod:
		return "method"
	case LevelFirstStep:
		return "first-step"
	case LevelMoreSteps:
		return "more-steps"
	case LevelNearlyComplete:
		return "nearly-complete"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Hint is one reveal in the sequence.
type Hint struct {
	Level         Level         `json:"level"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Explanation   string        `json:"explanation,omitempty"`
	RevealedSteps []method.Step `json:"revealed_steps,omitempty"`
}

// Result is the full hint sequence for one problem.
type Result struct {
	Strategy     method.Strategy `json:"strategy"`
	DisplayName  string          `json:"display_name"`
	Hints        []Hint          `json:"hints"`
	MaxHints     int             `json:"max_hints"`
	MethodReason string          `json:"method_reason"`
}

// Config controls hint generation.
type Config struct {
	MaxHints int `yaml:"max_hints" json:"max_hints"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxHints: 4}
}

// Generate builds the hint sequence for a ranked problem. The ranking must
// carry a validated optimal solution.
func Generate(r *method.Ranking, a, b int64, cfg Config) *Result {
	maxHints := max(cfg.MaxHints, 1)
	sol := r.Optimal.Solution
	steps := sol.Steps
	n := len(steps)
	hidden := maskTarget(a, b)

	all := []Hint{{
		Level:       LevelMethod,
		Title:       "Method",
		Content:     fmt.Sprintf("Use %s.", sol.Strategy.DisplayName()),
		Explanation: sol.Strategy.Description(),
	}}
	if n > 0 {
		all = append(all, stepHint(LevelFirstStep, "First step", steps[:1], hidden))
	}
	if n > 1 {
		all = append(all, stepHint(LevelMoreSteps, "Keep going", steps[:(n+1)/2], hidden))
	}
	if n > 2 {
		all = append(all, stepHint(LevelNearlyComplete, "Almost there", steps[:n-1], hidden))
	}
	if len(all) > maxHints {
		all = all[:maxHints]
	}

	return &Result{
		Strategy:     sol.Strategy,
		DisplayName:  sol.Strategy.DisplayName(),
		Hints:        all,
		MaxHints:     maxHints,
		MethodReason: sol.Rationale,
	}
}

func stepHint(level Level, title string, steps []method.Step, hidden string) Hint {
	revealed := make([]method.Step, len(steps))
	copy(revealed, steps)

	var lines []string
	for i, s := range revealed {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, mask(s.Expression, hidden)))
	}
	last := revealed[len(revealed)-1]
	return Hint{
		Level:         level,
		Title:         title,
		Content:       strings.Join(lines, "\n"),
		Explanation:   mask(last.Explanation, hidden),
		RevealedSteps: revealed,
	}
}

var numberPattern = regexp.MustCompile(`\d+`)

// maskTarget returns the digits hints must not show: the magnitude of
// a × b. It is empty when the product equals an operand, as in 1 × 5.
func maskTarget(a, b int64) string {
	p := abs(a * b)
	if p == abs(a) || p == abs(b) {
		return ""
	}
	return strconv.FormatInt(p, 10)
}

// mask replaces every number equal to target with "?".
func mask(s, target string) string {
	if target == "" {
		return s
	}
	return numberPattern.ReplaceAllStringFunc(s, func(tok string) string {
		if tok == target {
			return "?"
		}
		return tok
	})
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
