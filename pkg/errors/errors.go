package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrInvalidInput indicates the submission was rejected before dispatch
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates the client exceeded the submission window
	ErrRateLimited = errors.New("rate limited")

	// ErrDispatch indicates the mail relay could not accept the message
	ErrDispatch = errors.New("dispatch failed")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// RateLimitedError marks a client as over its submission window
func RateLimitedError(ip string) error {
	return fmt.Errorf("%s: %w", ip, ErrRateLimited)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// DispatchError wraps a transport error from the mail relay. The original
// error stays in the chain so callers can log the relay detail.
func DispatchError(err error) error {
	return fmt.Errorf("%w: %w", ErrDispatch, err)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
