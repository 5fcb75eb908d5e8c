package method

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrInvariant is matched by every *InvariantError.
	ErrInvariant = errors.New("method: invariant violation")

	// ErrNotApplicable means a strategy was asked to derive a pair it does not fit.
	ErrNotApplicable = errors.New("strategy not applicable")

	// ErrInvalidDerivation means the winning derivation failed validation.
	ErrInvalidDerivation = errors.New("derivation failed validation")

	// ErrNoStrategy means no catalog strategy accepted the pair.
	ErrNoStrategy = errors.New("no applicable strategy")

	// ErrOperandRange means an operand is outside the supported magnitude.
	ErrOperandRange = errors.New("operand out of range")
)

// InvariantError reports an internal defect: the engine produced something
// that contradicts its own guarantees. It is never a user error.
type InvariantError struct {
	Strategy Strategy
	A, B     int64
	Err      error
	Details  []string
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("method: %d × %d", e.A, e.B)
	if e.Strategy.Valid() {
		msg += " via " + e.Strategy.String()
	}
	msg += ": " + e.Err.Error()
	for _, d := range e.Details {
		msg += "; " + d
	}
	return msg
}

func (e *InvariantError) Unwrap() []error {
	return []error{ErrInvariant, e.Err}
}

// OperandError reports an operand the engine refuses to handle.
type OperandError struct {
	Value int64
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("method: operand %d exceeds ±%d", e.Value, MaxOperand)
}

func (e *OperandError) Unwrap() error {
	return ErrOperandRange
}
