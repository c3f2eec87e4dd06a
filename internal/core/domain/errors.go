package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfDelete         = errors.New("users cannot delete their own account")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidDateRange   = errors.New("due date must not be before issue date")
)
