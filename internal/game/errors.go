package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrIndexOutOfRange = errors.New("option index out of range")
	ErrLockedCategory  = errors.New("category is not editable")
	ErrEmptyOption     = errors.New("option is empty")
	ErrDuplicateKey    = errors.New("duplicate category key")
	ErrNoOptions       = errors.New("category has no options")
)

// ValidationError reports a bad category key, option index or option value.
// It always wraps one of the sentinel errors above.
type ValidationError struct {
	Op       string
	Category string
	Index    int // -1 when the error is not about a single option
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s %q[%d]: %v", e.Op, e.Category, e.Index, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Category, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(op, key string, index int, err error) *ValidationError {
	return &ValidationError{Op: op, Category: key, Index: index, Err: err}
}
