// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnresolvedIngredient indicates an item name that could not be
	// normalized to a canonical ingredient key
	TypeUnresolvedIngredient Type = "UNRESOLVED_INGREDIENT"

	// TypeUnitMismatch indicates a dose unit that cannot be converted to
	// the unit a nutrient limit is expressed in
	TypeUnitMismatch Type = "UNIT_MISMATCH"

	// TypeKnowledgeBase indicates malformed or missing reference data
	TypeKnowledgeBase Type = "KNOWLEDGE_BASE_ERROR"

	// TypeInvalidStackItem indicates a stack item rejected at the boundary
	TypeInvalidStackItem Type = "INVALID_STACK_ITEM"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeStorage indicates a history storage error
	TypeStorage Type = "STORAGE_ERROR"

	// TypeNotFound indicates a record not found error
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// UnresolvedIngredient creates an unresolved ingredient error
func UnresolvedIngredient(rawName string) *Error {
	return Newf(TypeUnresolvedIngredient, "ingredient not recognized: %s", rawName)
}

// UnitMismatch creates a unit mismatch error
func UnitMismatch(from, to string) *Error {
	return Newf(TypeUnitMismatch, "cannot convert %s to %s", from, to)
}

// KnowledgeBase creates a knowledge base error
func KnowledgeBase(message string, cause error) *Error {
	return Wrap(TypeKnowledgeBase, message, cause)
}

// InvalidStackItem creates an invalid stack item error
func InvalidStackItem(message string) *Error {
	return New(TypeInvalidStackItem, message)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Storage creates a storage error
func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}

// NotFound creates a not found error
func NotFound(recordType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", recordType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
