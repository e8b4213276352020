package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a payload with no body at all.
	ErrEmptyInput = errors.New("empty input payload")
	// ErrNoRecords is returned when parsing yields zero data rows.
	ErrNoRecords = errors.New("no records found in input")
)

// MalformedInputError reports an unparsable payload together with the first
// offending line for diagnosis. Any row-level failure aborts the whole batch.
type MalformedInputError struct {
	Line string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %v (line: %q)", e.Err, e.Line)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func malformed(line string, err error) error {
	return &MalformedInputError{Line: line, Err: err}
}
