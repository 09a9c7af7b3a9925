package services

import (
	"errors"
	"fmt"

	"github.com/akalan-edu/portal-service/internal/validator"
)

// Sentinel errors mapped to 404 by handlers
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrClassNotFound      = fmt.Errorf("class %w", ErrNotFound)
	ErrInvitationNotFound = fmt.Errorf("invitation %w", ErrNotFound)
	ErrCourseNotFound     = fmt.Errorf("course %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", ErrNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission %w", ErrNotFound)
	ErrGradeNotFound      = fmt.Errorf("grade %w", ErrNotFound)
)

// ErrInvalidCredentials is returned by login with a wrong username/password
// or a role mismatch; the cause is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries field-level validation failures (HTTP 400)
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Errors.Error()
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Errors: validator.ValidationErrors{{
			Field:   field,
			Message: message,
			Value:   value,
		}},
	}
}

// NewValidationErrors wraps validator output
func NewValidationErrors(errs validator.ValidationErrors) *ValidationError {
	return &ValidationError{Errors: errs}
}

// PermissionError reports a denied operation (HTTP 403)
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// ConflictError reports a uniqueness or state conflict (HTTP 409)
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

// BusinessError reports a domain rule violation that is neither a permission
// nor a uniqueness problem (HTTP 422)
type BusinessError struct {
	Rule    string
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func NewBusinessError(rule, message string) *BusinessError {
	return &BusinessError{Rule: rule, Message: message}
}

// IsNotFound reports whether err is any of the not-found sentinels
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsBusinessError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}
