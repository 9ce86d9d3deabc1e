package core

import (
	"errors"
	"fmt"
	"strings"
)

// Entity-level failure classes. Coercion and lookup failures are never
// reported as errors.
var (
	// ErrInput covers a CSV file that is missing, unreadable, malformed,
	// or lacks an expected column.
	ErrInput = errors.New("input error")

	// ErrDelivery covers a batch rejected or failed by the destination store.
	ErrDelivery = errors.New("delivery error")
)

// MissingColumnError reports expected headers absent from an export file.
type MissingColumnError struct {
	Entity  string
	File    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %s in %s",
		e.Entity, quoteAll(e.Columns), e.File)
}

// Is reports MissingColumnError as an input error.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrInput
}

// BatchError reports a failed insert of a contiguous slice of records.
// Start and End are 1-based, inclusive row positions within the file.
type BatchError struct {
	Entity string
	Table  string
	Start  int
	End    int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: insert rows %d-%d into %s: %v", e.Entity, e.Start, e.End, e.Table, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Is reports BatchError as a delivery error.
func (e *BatchError) Is(target error) bool {
	return target == ErrDelivery
}

// inputError wraps err as an ErrInput for the given entity.
func inputError(entity, op string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", entity, op, ErrInput, err)
}

func quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
