package pacman

import "errors"

var (
	// ErrInvalidConfiguration is returned when counts, sizes or the arena
	// cannot describe a playable session.
	ErrInvalidConfiguration = errors.New("pacman: invalid configuration")

	// ErrPlacementExhausted is returned when no position satisfying the
	// spacing constraint was found within the attempt limit.
	ErrPlacementExhausted = errors.New("pacman: placement attempts exhausted")
)
