package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("invalid input")
	ErrJurisdiction         = errors.New("jurisdiction rejected")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrQuotaExceeded        = errors.New("quota exceeded")
	ErrSubscriptionInactive = errors.New("subscription inactive")
	ErrUpstream             = errors.New("upstream failure")
	ErrNotFound             = errors.New("not found")
	ErrTemporary            = errors.New("temporary failure")
)

// PolicyError is a caller-facing rejection: Error() is the exact message
// returned to the client, Unwrap() carries the error kind.
type PolicyError struct {
	Kind    error
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

func (e *PolicyError) Unwrap() error { return e.Kind }

func NewPolicyError(kind error, message string) error {
	return &PolicyError{Kind: kind, Message: message}
}

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
