package workflow

import (
	"errors"
	"fmt"
)

// PreconditionError a check that must pass before any mutation is attempted:
// empty selection, unresolved bank/method, unauthorized signer. Surfaced to
// the caller, never silently ignored.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NewPreconditionError builds a PreconditionError for op with a reason.
func NewPreconditionError(op, format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsPrecondition reports whether err is (or wraps) a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
