package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumbers(t *testing.T) {
	assert.Equal(t, []int64{2491, 50, 3}, extractNumbers("2,491 is 50 squared less 3, squared."))
	assert.Empty(t, extractNumbers("no digits here"))
}

func TestValidators(t *testing.T) {
	in := testInput(t)
	good := &Walkthrough{FinalAnswer: 2491, Steps: []string{"50 squared is 2500.", "Take away 9 to get 2491."}}

	tests := []struct {
		name      string
		mutate    func(w *Walkthrough)
		validator string
		retryable bool
	}{
		{"good", func(w *Walkthrough) {}, "", false},
		{"wrong answer", func(w *Walkthrough) { w.FinalAnswer = 2501 }, "final-answer", false},
		{"no steps", func(w *Walkthrough) { w.Steps = nil }, "step-count", true},
		{"too many steps", func(w *Walkthrough) { w.Steps = make([]string, 20) }, "step-count", true},
		{"invented number", func(w *Walkthrough) { w.Steps = []string{"Think of 4700 first."} }, "numbers", true},
		{"small numbers allowed", func(w *Walkthrough) { w.Steps = []string{"Step 2: subtract 9."} }, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := *good
			tt.mutate(&w)

			var got *ValidationError
			for _, v := range DefaultValidators() {
				if got = v.Validate(&w, in); got != nil {
					break
				}
			}
			if tt.validator == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.validator, got.Validator)
				assert.Equal(t, tt.retryable, got.Retryable)
			}
		})
	}
}
