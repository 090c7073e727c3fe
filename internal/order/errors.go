package order

import (
	"errors"
	"fmt"
)

// ErrNotFound covers unknown request ids, tracking codes, and receipt ids.
var ErrNotFound = errors.New("not found")

// ErrLeadTimeViolation means the requested pickup is earlier than submission
// plus the quoted preparation window.
var ErrLeadTimeViolation = errors.New("pickup earlier than minimum preparation window")

// ConflictError is returned when a transition is attempted from a state that
// forbids it. It names the current status and the attempted target so the
// operator can see exactly why the action was refused.
type ConflictError struct {
	Current   Status
	Attempted Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.Current, e.Attempted)
}

// ValidationError is returned when a required field is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
