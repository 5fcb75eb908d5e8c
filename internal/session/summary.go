package session

import (
	"time"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration      time.Duration
	TotalProblems int
	TotalCorrect  int
	TotalSkipped  int
	TotalHints    int
	Accuracy      float64
	Strategies    []StrategyResult // catalog order, only strategies seen
}

// BuildSummary creates a Summary from the current session state.
// Problems served but not yet answered do not count towards accuracy.
func BuildSummary(state *State) *Summary {
	var results []StrategyResult
	answered := 0
	for _, st := range method.Catalog() {
		if r, ok := state.PerStrategy[st]; ok {
			results = append(results, *r)
			answered += r.Attempted + r.Skipped
		}
	}

	var accuracy float64
	if answered > 0 {
		accuracy = float64(state.TotalCorrect) / float64(answered)
	}

	elapsed := state.Elapsed
	if state.Phase != PhaseSummary {
		elapsed = state.now().Sub(state.StartTime)
	}

	return &Summary{
		Duration:      elapsed,
		TotalProblems: state.TotalProblems,
		TotalCorrect:  state.TotalCorrect,
		TotalSkipped:  state.TotalSkipped,
		TotalHints:    state.TotalHints,
		Accuracy:      accuracy,
		Strategies:    results,
	}
}
