package domain

import (
	"errors"
	"fmt"
)

var (
	// A candidate or argument violates a numeric invariant.
	ErrInvalidInput = errors.New("invalid input")

	// The scorer was invoked with zero candidates. Callers must guard against this.
	ErrEmptyRouteSet = errors.New("empty route set")

	// No valid route exists for the request. This is a normal, user-visible outcome.
	ErrNoRoutesAvailable = errors.New("no routes available")

	// Invalid startup configuration, such as scoring weights that do not sum to 1.
	ErrConfiguration = errors.New("configuration error")

	ErrOutsideServiceArea = errors.New("location outside service area")
	ErrAddressNotFound    = errors.New("address not found")
	ErrProviderQuota      = errors.New("provider quota exceeded")
	ErrProviderDenied     = errors.New("provider request denied")
)

// ValidationError carries a message that is safe to return to API callers.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Msg string
}

func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Msg + ": " + ErrInvalidInput.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
