package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel signals callers branch on with errors.Is. These are expected
// outcomes, not failures: ingestion skips duplicates, promotion reports
// exhausted inventory, the installer refuses a second run.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrOutOfStock       = errors.New("out of stock")
	ErrAlreadyInstalled = errors.New("already installed")
)

// ValidationError lists the required input fields that were missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// NewValidation creates a ValidationError for the given field names.
func NewValidation(missing ...string) error {
	return &ValidationError{Missing: missing}
}

// ConnectionError wraps a failed storage connection attempt. Hint carries a
// remediation suggestion for the operator when one is known; it is advice
// only, never acted on automatically.
type ConnectionError struct {
	Hint string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("connection failed: %v (%s)", e.Err, e.Hint)
	}
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ConfigWriteError is fatal for an install run: without persisted
// configuration no schema work is attempted.
type ConfigWriteError struct {
	Err error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("could not write configuration: %v", e.Err)
}

func (e *ConfigWriteError) Unwrap() error { return e.Err }

// SchemaError reports which schema object failed to apply, preserving the
// backend's native error for the operator.
type SchemaError struct {
	Object string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("applying schema object %q: %v", e.Object, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// InvalidTransitionError rejects a fulfillment flag set out of order.
type InvalidTransitionError struct {
	WinnerID int64
	From     string
	To       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("winner %d: cannot advance to %s from %s", e.WinnerID, e.To, e.From)
}

// PersistenceError is a generic backend failure. Nothing in this package
// retries; callers apply their own policy.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistence wraps err as a PersistenceError for the named operation.
func NewPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// ConsistencyWarning flags a bounded counter that was asked to move past its
// bound. The counter was left clamped at the bound; the warning is surfaced
// so the caller can log or alert instead of silently absorbing it.
type ConsistencyWarning struct {
	Detail string
}

func (e *ConsistencyWarning) Error() string {
	return "consistency warning: " + e.Detail
}
