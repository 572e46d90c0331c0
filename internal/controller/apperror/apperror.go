// Package apperror defines the sentinel errors the HTTP layer maps to
// status codes.
package apperror

import "errors"

var (
	// ErrDisputeNotFound is returned when no stored dispute has the requested id.
	ErrDisputeNotFound = errors.New("dispute not found")

	// ErrDefenseNotFound is returned when no defense record has the requested id.
	ErrDefenseNotFound = errors.New("defense not found")

	// ErrOrderNotFound is returned when an operator-supplied order number
	// does not exist on the platform.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when a lifecycle operation would
	// move a dispute or defense backwards or out of a terminal state.
	// The record is left unchanged.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)
