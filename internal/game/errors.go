package game

import "errors"

// Protocol violations indicate a bug in the orchestration layer, not a user
// mistake. The engine raises them and does not attempt recovery.
var (
	// ErrGameEnded is returned for any advancement or answer after the game
	// has finished.
	ErrGameEnded = errors.New("game has ended")
	// ErrDecisionPending is returned when AdvanceGameState is called while a
	// decision is waiting to be answered.
	ErrDecisionPending = errors.New("a decision is already pending")
	// ErrNoDecisionPending is returned when an answer arrives with no
	// decision outstanding.
	ErrNoDecisionPending = errors.New("no decision is pending")
)

// ErrInvalidAnswer marks decision validation failures. These are rejected
// before any mutation occurs; the pending decision remains valid so the
// caller may retry with a corrected answer.
var ErrInvalidAnswer = errors.New("invalid decision answer")

// Illegal game actions are rule violations that the decision's option set
// should have made impossible. They indicate an engine bug.
var (
	ErrEmptyPile     = errors.New("supply pile is empty")
	ErrNoBuysLeft    = errors.New("no buys remaining")
	ErrCannotAfford  = errors.New("cannot afford card")
	ErrUnknownCard   = errors.New("unknown card")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrUnknownPile   = errors.New("unknown supply pile")
)
