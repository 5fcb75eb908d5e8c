package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the problem's product.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Whitespace is trimmed
// - Thousands separators (",", "_", " ") are ignored
// - A leading "+" is ignored; "−" is accepted for negatives
// - Leading zeros are ignored (e.g., "0840" matches "840")
func CheckAnswer(learnerAnswer string, p Problem) bool {
	n, err := ParseAnswer(learnerAnswer)
	if err != nil {
		return false
	}
	return n == p.Product()
}

// ParseAnswer normalizes and parses a learner's integer answer.
func ParseAnswer(answer string) (int64, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, fmt.Errorf("empty answer")
	}
	answer = strings.NewReplacer(",", "", "_", "", " ", "", "−", "-").Replace(answer)
	answer = strings.TrimPrefix(answer, "+")

	n, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return n, nil
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
