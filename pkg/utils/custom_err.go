package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns matches exactly one of these
// through errors.Is, and HandleServiceError picks the status code from it.
var (
	ErrValidation      = errors.New("validation failed")
	ErrBusinessRule    = errors.New("business rule violation")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrDatabaseError   = errors.New("database error")
)

// AppError is a user-facing error with a kind and an optional reason.
type AppError struct {
	kind   error
	reason *AppError
	msg    string
}

func newAppError(kind error, msg string) *AppError {
	return &AppError{kind: kind, msg: msg}
}

func (e *AppError) Error() string { return e.msg }

func (e *AppError) Unwrap() []error {
	if e.reason == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.reason}
}

// Kind returns the kind sentinel this error maps to.
func (e *AppError) Kind() error { return e.kind }

// Withf keeps the reason of e but replaces its message.
func (e *AppError) Withf(format string, args ...any) *AppError {
	root := e
	if e.reason != nil {
		root = e.reason
	}
	return &AppError{kind: e.kind, reason: root, msg: fmt.Sprintf(format, args...)}
}

var (
	ErrEmailAlreadyExists = newAppError(ErrBusinessRule, "Email is already registered")
	ErrInvalidCredentials = newAppError(ErrBusinessRule, "Invalid account or password")
	ErrAccountDisabled    = newAppError(ErrBusinessRule, "Account has been disabled")
	ErrWrongPassword      = newAppError(ErrBusinessRule, "Current password is incorrect")
	ErrPasswordMismatch   = newAppError(ErrValidation, "confirmPassword: does not match new password")

	ErrMemberNotFound = newAppError(ErrNotFound, "Member not found")
	ErrAdminNotFound  = newAppError(ErrNotFound, "Admin not found")

	ErrProductNotFound    = newAppError(ErrNotFound, "Product not found")
	ErrProductUnavailable = newAppError(ErrBusinessRule, "Product is not available")
	ErrOutOfStock         = newAppError(ErrBusinessRule, "Insufficient stock")
	ErrInvalidStatus      = newAppError(ErrValidation, "Invalid status value")

	ErrCartItemNotFound  = newAppError(ErrNotFound, "Cart item not found")
	ErrCartItemForbidden = newAppError(ErrForbidden, "Cart item belongs to another member")
	ErrCartEmpty         = newAppError(ErrBusinessRule, "Cart is empty")

	ErrOrderNotFound = newAppError(ErrNotFound, "Order not found")

	ErrPlanNotFound         = newAppError(ErrNotFound, "Subscription plan not found")
	ErrSubscriptionNotFound = newAppError(ErrNotFound, "Subscription not found")
	ErrAlreadySubscribed    = newAppError(ErrBusinessRule, "Already subscribed to this plan")
	ErrInvalidState         = newAppError(ErrBusinessRule, "Invalid state transition")

	ErrEmptyFile       = newAppError(ErrValidation, "Please choose a file to upload")
	ErrFileTooLarge    = newAppError(ErrValidation, "File size must not exceed 5MB")
	ErrInvalidFileType = newAppError(ErrValidation, "Only JPEG, PNG, GIF and WebP images are allowed")
	ErrInvalidFilename = newAppError(ErrValidation, "Invalid file name")

	ErrNotAuthenticated = newAppError(ErrUnauthenticated, "Not authenticated")
	ErrAdminOnly        = newAppError(ErrForbidden, "Admin permission required")
	ErrMemberOnly       = newAppError(ErrForbidden, "Member permission required")
)

// NewValidationError builds an ad-hoc validation error, e.g. for a bad path parameter.
func NewValidationError(format string, args ...any) *AppError {
	return newAppError(ErrValidation, fmt.Sprintf(format, args...))
}

// WrapDB marks a repository failure so it is reported as an internal error
// while keeping the cause for the logs.
func WrapDB(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDatabaseError, err)
}
