package sim

import (
	"errors"
	"fmt"
)

// RunError represents a failed simulation run.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// SceneID identifies the scene being simulated, when known.
	SceneID string

	// Err is the underlying cause, if any.
	Err error
}

// RunErrorCode categorizes run errors.
type RunErrorCode string

const (
	// ErrCodeConfig indicates the setup could not be serialized.
	ErrCodeConfig RunErrorCode = "CONFIG"

	// ErrCodeEngine indicates the engine call failed.
	ErrCodeEngine RunErrorCode = "ENGINE_FAILED"

	// ErrCodeInvalidResponse indicates the engine returned a response whose
	// sample buffer does not match its declared shape.
	ErrCodeInvalidResponse RunErrorCode = "INVALID_RESPONSE"

	// ErrCodeRecord indicates the run could not be stored.
	ErrCodeRecord RunErrorCode = "RECORD_FAILED"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.SceneID != "" {
		msg = fmt.Sprintf("%s (scene=%s)", msg, e.SceneID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsEngineError returns true if err is an engine call failure.
func IsEngineError(err error) bool {
	return hasCode(err, ErrCodeEngine)
}

// IsInvalidResponse returns true if err reports a malformed engine response.
func IsInvalidResponse(err error) bool {
	return hasCode(err, ErrCodeInvalidResponse)
}

func hasCode(err error, code RunErrorCode) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
