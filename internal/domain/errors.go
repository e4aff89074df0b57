package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidWeekKey = errors.New("invalid week key")
	ErrInvalidDay     = errors.New("invalid day index")
	ErrUnknownTask    = errors.New("unknown task")
	ErrUnknownStat    = errors.New("unknown stat field")
	ErrNotReady       = errors.New("week is still loading")
)

// BackendError represents a failed call to the completions API
type BackendError struct {
	Op      string // Operation: "load", "save", "summary", "ping"
	WeekKey string // Optional: week the call was for
	Status  int    // HTTP status when the server answered
	Err     error  // Underlying error
}

func (e *BackendError) Error() string {
	target := e.Op
	if e.WeekKey != "" {
		target = fmt.Sprintf("%s [%s]", e.Op, e.WeekKey)
	}
	if e.Err != nil {
		return fmt.Sprintf("backend %s: %v", target, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: unexpected status %d", target, e.Status)
	}
	return fmt.Sprintf("backend %s failed", target)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure in the persistence layer
type StoreError struct {
	Op      string
	WeekKey string
	Err     error
}

func (e *StoreError) Error() string {
	if e.WeekKey != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.WeekKey, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
