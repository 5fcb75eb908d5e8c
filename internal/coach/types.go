// Package coach asks a language model to retell an engine derivation in a
// friendly voice. The engine's derivation stays authoritative: a
// walkthrough that disagrees with it is discarded.
package coach

import "github.com/bernhaaard/mental-math-trainer-sub002/internal/method"

// Input is a problem together with its validated derivation.
type Input struct {
	A, B     int64
	Solution *method.Solution
}

// InputFromRanking builds an Input from the optimal method of r.
func InputFromRanking(r *method.Ranking) Input {
	return Input{A: r.A, B: r.B, Solution: r.Optimal.Solution}
}

// Walkthrough is a coached retelling of one derivation.
type Walkthrough struct {
	A, B        int64
	Strategy    method.Strategy
	Intro       string
	Steps       []string
	Tip         string
	FinalAnswer int64
	Model       string
}

// Config holds walkthrough generation settings.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int `yaml:"max_attempts"`
}

// DefaultConfig returns sensible defaults for walkthrough generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   700,
		Temperature: 0.4,
		MaxAttempts: 2,
	}
}
