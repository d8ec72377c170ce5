package legacytxt

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes legacy text parse failures.
type ParseErrorCode string

const (
	// ErrCodeMalformedList indicates a '[' never closed before input ends.
	ErrCodeMalformedList ParseErrorCode = "MALFORMED_LIST_LITERAL"

	// ErrCodeMissingAssignment indicates a logical line without '='.
	ErrCodeMissingAssignment ParseErrorCode = "MISSING_ASSIGNMENT"

	// ErrCodeEmptyPath indicates an empty field path or path segment.
	ErrCodeEmptyPath ParseErrorCode = "EMPTY_FIELD_PATH"

	// ErrCodePathConflict indicates a dotted path walking through a
	// field that already holds a non-mapping value.
	ErrCodePathConflict ParseErrorCode = "PATH_CONFLICT"
)

// ParseError reports a failure at a 1-based input line.
type ParseError struct {
	Line    int
	Code    ParseErrorCode
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMalformedList returns true if err is an unclosed list literal error.
func IsMalformedList(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeMalformedList
	}
	return false
}
