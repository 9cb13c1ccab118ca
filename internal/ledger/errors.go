package ledger

import "fmt"

// MissingFieldError reports a persisted transaction record without a required field.
type MissingFieldError struct {
	Index int // position in the transactions array
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("transaction %d: missing field %q", e.Index, e.Field)
}

// IOFailure reports a ledger file that could not be read or written.
type IOFailure struct {
	Op   string
	Path string
	Err  error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error { return e.Err }
