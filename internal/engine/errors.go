package engine

import "errors"

// Error taxonomy for callers. Bound violations are never surfaced: an
// out-of-bound internal price is clamped by the pricing policy.
var (
	// ErrInvalidRound reports a round driven out of sequence; the engine
	// never auto-corrects round ordering.
	ErrInvalidRound = errors.New("round out of sequence")

	// ErrSessionTerminal reports a NextRound call on a session whose status
	// can no longer change.
	ErrSessionTerminal = errors.New("session already terminal")
)
