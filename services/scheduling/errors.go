package scheduling

import (
	"fmt"

	"suplient/models"
)

// InputError marks malformed input (date, zone, duration, subject) rejected
// before any I/O.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func NewInputError(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when the commit-time re-validation finds the
// requested slot no longer free. It carries the structured report the caller
// renders as "this time conflicts with ...". Recoverable by re-querying
// availability.
type ConflictError struct {
	Report *models.ConflictReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested slot conflicts with %d existing booking(s)", len(e.Report.Conflicts))
}
