package analysis

import (
	"errors"
	"fmt"
)

// ErrNoFile indicates Analyze was called without a pending photo.
var ErrNoFile = errors.New("no file provided for analysis")

// ServiceUnavailableError indicates the completion-service gate could not
// produce a client. Description carries the gate's human-readable reason.
type ServiceUnavailableError struct {
	Description string
}

func (e *ServiceUnavailableError) Error() string {
	return e.Description
}

// FailedError wraps a network or service failure during analysis. Parse
// failures never produce it: they degrade to a zero estimate instead.
type FailedError struct {
	Err error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}
