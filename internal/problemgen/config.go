package problemgen

import (
	"fmt"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

// Config controls the behavior of the RandomGenerator.
type Config struct {
	// Difficulty selects the operand ranges. Explicit A/B ranges override it.
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`

	// A and B override the preset ranges when non-zero.
	A Range `yaml:"a" json:"a"`
	B Range `yaml:"b" json:"b"`

	// AllowNegative flips the sign of each operand with probability 1/4.
	AllowNegative bool `yaml:"allow_negative" json:"allow_negative"`

	// Focus, when non-empty, is the stable name of a strategy that every
	// generated problem should be best solved with.
	Focus string `yaml:"focus" json:"focus"`

	// MaxFocusAttempts bounds the search for a focused problem.
	MaxFocusAttempts int `yaml:"max_focus_attempts" json:"max_focus_attempts"`

	// Seed makes generation reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		Difficulty:       DifficultyMedium,
		MaxFocusAttempts: 200,
	}
}

// ranges resolves the effective operand ranges.
func (c Config) ranges() (Range, Range, error) {
	a, b, err := presetRanges(c.Difficulty)
	if err != nil {
		return Range{}, Range{}, err
	}
	if c.A != (Range{}) {
		a = c.A
	}
	if c.B != (Range{}) {
		b = c.B
	}
	if !a.valid() || !b.valid() {
		return Range{}, Range{}, fmt.Errorf("invalid operand range a=%v b=%v", a, b)
	}
	if max(abs(a.Min), abs(a.Max), abs(b.Min), abs(b.Max)) > method.MaxOperand {
		return Range{}, Range{}, fmt.Errorf("operand range exceeds ±%d", method.MaxOperand)
	}
	return a, b, nil
}

func presetRanges(d Difficulty) (Range, Range, error) {
	switch d {
	case DifficultyEasy:
		return Range{11, 99}, Range{2, 9}, nil
	case DifficultyMedium, "":
		return Range{11, 99}, Range{11, 99}, nil
	case DifficultyHard:
		return Range{101, 999}, Range{11, 99}, nil
	case DifficultyExpert:
		return Range{101, 999}, Range{101, 999}, nil
	}
	return Range{}, Range{}, fmt.Errorf("unknown difficulty %q", d)
}
