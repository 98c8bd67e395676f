package domain

import "errors"

var (
	// ErrInvalidInput indicates caller-supplied input failed a precondition.
	// It is the only error the core operations surface to their callers.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition indicates a focus-flow step was taken out of order.
	ErrInvalidTransition = errors.New("invalid focus transition")
)
