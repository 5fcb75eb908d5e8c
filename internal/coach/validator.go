package coach

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

// ErrWalkthroughMismatch marks a walkthrough whose final answer is not a × b.
var ErrWalkthroughMismatch = errors.New("walkthrough does not match the derivation")

// Validator checks a generated walkthrough against the engine's derivation.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "final-answer".
	Name() string

	// Validate returns nil if w is acceptable for in.
	Validate(w *Walkthrough, in Input) *ValidationError
}

// ValidationError describes why a walkthrough failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
	Err       error  // Optional sentinel
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultValidators returns the validators every walkthrough must pass.
func DefaultValidators() []Validator {
	return []Validator{
		FinalAnswerValidator{},
		StepCountValidator{},
		NumbersValidator{},
	}
}

// FinalAnswerValidator rejects a walkthrough that reaches the wrong product.
// It is not retryable: a model that cannot copy the answer is not trusted
// to retell the steps either.
type FinalAnswerValidator struct{}

func (FinalAnswerValidator) Name() string { return "final-answer" }

func (FinalAnswerValidator) Validate(w *Walkthrough, in Input) *ValidationError {
	if want := in.A * in.B; w.FinalAnswer != want {
		return &ValidationError{
			Validator: "final-answer",
			Message:   fmt.Sprintf("final answer %d, want %d", w.FinalAnswer, want),
			Err:       ErrWalkthroughMismatch,
		}
	}
	return nil
}

// StepCountValidator requires between one and twice as many steps as the
// derivation has at the top level, plus two for framing.
type StepCountValidator struct{}

func (StepCountValidator) Name() string { return "step-count" }

func (StepCountValidator) Validate(w *Walkthrough, in Input) *ValidationError {
	limit := 2*len(in.Solution.Steps) + 2
	if len(w.Steps) == 0 || len(w.Steps) > limit {
		return &ValidationError{
			Validator: "step-count",
			Message:   fmt.Sprintf("%d steps, want 1 to %d", len(w.Steps), limit),
			Retryable: true,
		}
	}
	return nil
}

var numberRe = regexp.MustCompile(`\d[\d,]*`)

// NumbersValidator rejects steps that mention numbers absent from the
// derivation. Numbers up to 10 are allowed for counting and place words.
type NumbersValidator struct{}

func (NumbersValidator) Name() string { return "numbers" }

func (NumbersValidator) Validate(w *Walkthrough, in Input) *ValidationError {
	known := derivationNumbers(in)
	for i, text := range w.Steps {
		for _, n := range extractNumbers(text) {
			if n > 10 && !known[n] {
				return &ValidationError{
					Validator: "numbers",
					Message:   fmt.Sprintf("step %d mentions %d, which is not in the derivation", i+1, n),
					Retryable: true,
				}
			}
		}
	}
	return nil
}

func derivationNumbers(in Input) map[int64]bool {
	known := map[int64]bool{abs(in.A): true, abs(in.B): true, abs(in.A * in.B): true}
	var walk func([]method.Step)
	walk = func(steps []method.Step) {
		for _, s := range steps {
			known[abs(s.Result)] = true
			for _, n := range extractNumbers(s.Expression) {
				known[n] = true
			}
			walk(s.SubSteps)
		}
	}
	walk(in.Solution.Steps)
	return known
}

func extractNumbers(text string) []int64 {
	var out []int64
	for _, m := range numberRe.FindAllString(text, -1) {
		m = strings.TrimRight(m, ",")
		n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
