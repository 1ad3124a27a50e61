package errors

import (
	"fmt"
	"strings"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainBusinessRuleError indicates a business rule violation
	DomainBusinessRuleError DomainErrorType = "BUSINESS_RULE_ERROR"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainPreconditionError indicates that required input was missing before
	// an operation could start
	DomainPreconditionError DomainErrorType = "PRECONDITION_FAILED"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type    DomainErrorType        `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Field returns the "field" detail, or "" when none was recorded.
func (e *DomainError) Field() string {
	field, _ := e.Details["field"].(string)
	return field
}

// Sentinels for errors.Is comparisons. Use the constructors below to build
// instances carrying details; these are never mutated.
var (
	ErrParagraphNotFound = NewDomainError(
		DomainNotFoundError,
		"PARAGRAPH_NOT_FOUND",
		"The requested paragraph does not exist",
	)

	ErrUnknownParagraphKind = NewDomainError(
		DomainValidationError,
		"UNKNOWN_PARAGRAPH_KIND",
		"Paragraph kind must be one of main, same, sub, up",
	)

	ErrStaleRemovalPlan = NewDomainError(
		DomainConflictError,
		"STALE_REMOVAL_PLAN",
		"The outline changed after the removal was planned",
	)

	ErrEndorsementFieldMissing = NewDomainError(
		DomainPreconditionError,
		"ENDORSEMENT_FIELD_MISSING",
		"A required endorsement field is missing",
	)

	ErrDraftNotFound = NewDomainError(
		DomainNotFoundError,
		"DRAFT_NOT_FOUND",
		"The requested letter draft does not exist",
	)
)

// NewParagraphNotFound returns a not-found error carrying the paragraph id.
func NewParagraphNotFound(id int) *DomainError {
	return NewDomainError(DomainNotFoundError, ErrParagraphNotFound.Code,
		fmt.Sprintf("paragraph %d does not exist", id)).
		WithDetail("paragraph_id", id)
}

// NewEndorsementFieldMissing returns a precondition failure naming every
// missing field. The "field" detail holds the first one.
func NewEndorsementFieldMissing(fields ...string) *DomainError {
	err := NewDomainError(DomainPreconditionError, ErrEndorsementFieldMissing.Code,
		fmt.Sprintf("endorsement is missing required field(s): %s", strings.Join(fields, ", "))).
		WithDetail("fields", fields)
	if len(fields) > 0 {
		err.WithDetail("field", fields[0])
	}
	return err
}

// ValidationErrors aggregates multiple validation errors
type ValidationErrors struct {
	Errors []*DomainError `json:"errors"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*DomainError, 0),
	}
}

// Add adds a validation error
func (v *ValidationErrors) Add(field string, message string) {
	err := NewDomainError(DomainValidationError, "FIELD_VALIDATION_ERROR", message).
		WithDetail("field", field)
	v.Errors = append(v.Errors, err)
}

// AddError adds a pre-existing domain error
func (v *ValidationErrors) AddError(err *DomainError) {
	v.Errors = append(v.Errors, err)
}

// HasErrors returns true if there are validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Message
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(messages, "; "))
}

// ToMap converts validation errors to a map keyed by field
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)

	for _, err := range v.Errors {
		field, ok := err.Details["field"].(string)
		if !ok {
			field = "general"
		}
		result[field] = append(result[field], err.Message)
	}

	return result
}
