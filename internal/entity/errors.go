package entity

import (
	"errors"
	"fmt"
)

// Error represents a failure while capturing, serializing or reconstructing
// an entity. It carries structured fields for diagnostics.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Kind is the entity kind being built or serialized, if known.
	Kind string

	// Field is the dotted field path the error relates to, if any.
	Field string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes entity errors.
type ErrorCode string

const (
	// ErrCodeArity indicates more positional arguments than declared parameters.
	ErrCodeArity ErrorCode = "ARITY"

	// ErrCodeUnknownParam indicates a keyword argument no parameter declares.
	ErrCodeUnknownParam ErrorCode = "UNKNOWN_PARAM"

	// ErrCodeUnknownFieldClass indicates a nested mapping under a field name
	// that resolves to no registered entity kind.
	ErrCodeUnknownFieldClass ErrorCode = "UNKNOWN_FIELD_CLASS"

	// ErrCodeEncoding indicates a text leaf the target encoding cannot represent.
	ErrCodeEncoding ErrorCode = "ENCODING"

	// ErrCodeInvalidValue indicates a value of an unsupported shape.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind != "" && e.Field != "":
		return fmt.Sprintf("%s: %s (kind=%s, field=%s)", e.Code, e.Message, e.Kind, e.Field)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	case e.Kind != "":
		return fmt.Sprintf("%s: %s (kind=%s)", e.Code, e.Message, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewArityError creates an Error for too many positional arguments.
func NewArityError(kind string, got, declared int) *Error {
	return &Error{
		Code:    ErrCodeArity,
		Kind:    kind,
		Message: fmt.Sprintf("takes %d positional argument(s) but %d were given", declared, got),
	}
}

// NewUnknownParamError creates an Error for an undeclared keyword argument.
func NewUnknownParamError(kind, name string) *Error {
	return &Error{
		Code:    ErrCodeUnknownParam,
		Kind:    kind,
		Field:   name,
		Message: fmt.Sprintf("unexpected keyword argument %q", name),
	}
}

// NewUnknownFieldClassError creates an Error for a nested mapping whose
// field name has no registered entity kind.
func NewUnknownFieldClassError(kind, field string) *Error {
	return &Error{
		Code:    ErrCodeUnknownFieldClass,
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf("no entity kind registered for nested field %q", field),
	}
}

// NewEncodingError creates an Error for an unencodable text leaf.
func NewEncodingError(kind, field string, cause error) *Error {
	return &Error{
		Code:    ErrCodeEncoding,
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf("cannot encode text leaf: %v", cause),
	}
}

// NewInvalidValueError creates an Error for a value of an unsupported shape.
func NewInvalidValueError(kind, field, message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidValue,
		Kind:    kind,
		Field:   field,
		Message: message,
	}
}

// IsArityError returns true if err is an arity error.
// Uses errors.As to handle wrapped errors.
func IsArityError(err error) bool {
	return hasCode(err, ErrCodeArity)
}

// IsUnknownParam returns true if err is an unknown keyword argument error.
func IsUnknownParam(err error) bool {
	return hasCode(err, ErrCodeUnknownParam)
}

// IsUnknownFieldClass returns true if err is an unknown field class error.
func IsUnknownFieldClass(err error) bool {
	return hasCode(err, ErrCodeUnknownFieldClass)
}

// IsEncodingError returns true if err is a leaf encoding error.
func IsEncodingError(err error) bool {
	return hasCode(err, ErrCodeEncoding)
}

// IsInvalidValue returns true if err reports a value of an unsupported shape.
func IsInvalidValue(err error) bool {
	return hasCode(err, ErrCodeInvalidValue)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// underField prefixes the field path of an entity error with parent, so
// that failures deep in a graph report e.g. "room.surface.absorption".
// Other errors are wrapped with the parent name.
func underField(parent string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		if cp.Field == "" {
			cp.Field = parent
		} else {
			cp.Field = parent + "." + cp.Field
		}
		return &cp
	}
	return fmt.Errorf("%s: %w", parent, err)
}
