package rules

import (
	"fmt"
	"strings"
)

// Phase represents the stages a deck-building turn passes through.
type Phase int

const (
	PhaseAction Phase = iota
	PhaseBuyPlayTreasure
	PhaseBuyPurchaseCard
	PhaseCleanup
)

var phaseNames = map[Phase]string{
	PhaseAction:          "ACTION",
	PhaseBuyPlayTreasure: "BUY_PLAY_TREASURE",
	PhaseBuyPurchaseCard: "BUY_PURCHASE_CARD",
	PhaseCleanup:         "CLEANUP",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// phaseSequence is the fixed order phases occur in within a turn.
var phaseSequence = []Phase{
	PhaseAction,
	PhaseBuyPlayTreasure,
	PhaseBuyPurchaseCard,
	PhaseCleanup,
}

// TurnManager tracks the active player, current phase, and turn progression.
// The turn number increments only when the rotation wraps back to the first
// player, so all players share one turn number per round.
type TurnManager struct {
	phaseIndex  int
	turnNumber  int
	activeIndex int
	playerOrder []string
}

// NewTurnManager creates a turn manager initialized at turn 1, action phase,
// with the first listed player active.
func NewTurnManager(playerOrder []string) *TurnManager {
	order := make([]string, 0, len(playerOrder))
	for _, p := range playerOrder {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			order = append(order, trimmed)
		}
	}
	return &TurnManager{
		phaseIndex:  0,
		turnNumber:  1,
		activeIndex: 0,
		playerOrder: order,
	}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return phaseSequence[tm.phaseIndex]
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	if len(tm.playerOrder) == 0 {
		return ""
	}
	return tm.playerOrder[tm.activeIndex]
}

// PlayerOrder returns the seating order.
func (tm *TurnManager) PlayerOrder() []string {
	order := make([]string, len(tm.playerOrder))
	copy(order, tm.playerOrder)
	return order
}

// PlayersAfter returns all other players in clockwise order starting from the
// seat after the given player. This is the resolution order for effects that
// target "each other player".
func (tm *TurnManager) PlayersAfter(player string) []string {
	start := 0
	for i, p := range tm.playerOrder {
		if p == player {
			start = i
			break
		}
	}
	others := make([]string, 0, len(tm.playerOrder)-1)
	for i := 1; i < len(tm.playerOrder); i++ {
		others = append(others, tm.playerOrder[(start+i)%len(tm.playerOrder)])
	}
	return others
}

// AdvancePhase moves to the next phase in the turn structure and returns it.
// Advancing past cleanup rotates the active player and starts their action
// phase; the turn number increments when rotation wraps to the first player.
func (tm *TurnManager) AdvancePhase() Phase {
	tm.phaseIndex++
	if tm.phaseIndex >= len(phaseSequence) {
		tm.phaseIndex = 0
		tm.activeIndex = (tm.activeIndex + 1) % len(tm.playerOrder)
		if tm.activeIndex == 0 {
			tm.turnNumber++
		}
	}
	return tm.CurrentPhase()
}

// IsTurnBoundary reports whether the manager is at the start of a turn, i.e.
// the action phase before anything has advanced within it.
func (tm *TurnManager) IsTurnBoundary() bool {
	return tm.phaseIndex == 0
}
