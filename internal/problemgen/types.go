package problemgen

import (
	"fmt"
	"strconv"
)

// Problem is a two-operand multiplication. Either operand may be negative.
type Problem struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// Product returns the correct answer.
func (p Problem) Product() int64 {
	return p.A * p.B
}

// Text is the prompt shown to the learner, e.g. "47 × 53".
func (p Problem) Text() string {
	return fmt.Sprintf("%s × %s", operand(p.A), operand(p.B))
}

func (p Problem) String() string {
	return p.Text()
}

func operand(n int64) string {
	if n < 0 {
		return "(−" + strconv.FormatInt(-n, 10) + ")"
	}
	return strconv.FormatInt(n, 10)
}

// Difficulty names an operand range preset.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // two digits by one digit
	DifficultyMedium Difficulty = "medium" // two digits by two digits
	DifficultyHard   Difficulty = "hard"   // three digits by two digits
	DifficultyExpert Difficulty = "expert" // three digits by three digits
)

// Difficulties returns all presets from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium, hard or expert)", s)
}

// Range is an inclusive operand range.
type Range struct {
	Min int64 `yaml:"min" json:"min"`
	Max int64 `yaml:"max" json:"max"`
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}
