package game

import (
	"fmt"

	"github.com/google/uuid"
)

// EffectTarget declares who a template applies to when its card is played.
type EffectTarget int

const (
	// TargetActivePlayer binds the effect to the player who played the card.
	TargetActivePlayer EffectTarget = iota
	// TargetOtherPlayers binds one effect per opponent, resolving in
	// clockwise order starting after the active player.
	TargetOtherPlayers
	// TargetAllPlayers binds the active player first, then each opponent in
	// clockwise order.
	TargetAllPlayers
)

// EffectTemplate is a unit of card behavior. Binding a template to a concrete
// target player and triggering card produces an effect on the stack. Apply
// may mutate state directly, push further effects, or surface a decision.
type EffectTemplate struct {
	Name   string
	Target EffectTarget
	Apply  func(g *Game, target *Player, source *CardInPlay, run *EffectRun) error
}

// EffectRun is the shared state for one card play's full resolution. All
// effects bound from the same play share it; reaction windows mutate it to
// cancel the pending attack for specific targets.
type EffectRun struct {
	// Blocked marks players whose attack effects are canceled.
	Blocked map[string]bool
	// Reacted marks players whose reaction window has already been offered.
	Reacted map[string]bool
	// SetAside accumulates card instances parked during multi-step effects.
	SetAside []string
}

func newEffectRun() *EffectRun {
	return &EffectRun{
		Blocked: make(map[string]bool),
		Reacted: make(map[string]bool),
	}
}

// DecisionKind categorizes a decision for deciders and observers.
type DecisionKind string

const (
	DecisionPlayAction    DecisionKind = "PLAY_ACTION"
	DecisionPlayTreasures DecisionKind = "PLAY_TREASURES"
	DecisionBuyCard       DecisionKind = "BUY_CARD"
	DecisionDiscardCards  DecisionKind = "DISCARD_CARDS"
	DecisionTrashCards    DecisionKind = "TRASH_CARDS"
	DecisionGainCard      DecisionKind = "GAIN_CARD"
	DecisionSelectCards   DecisionKind = "SELECT_CARDS"
	DecisionReaction      DecisionKind = "REACTION"
	DecisionConfirm       DecisionKind = "CONFIRM"
)

// Confirm option identifiers used by yes/no decisions.
const (
	OptionYes = "yes"
	OptionNo  = "no"
)

// Decision is a typed request for player input. Surfacing one suspends the
// engine until the identified player answers; the continuation then resumes
// resolution. Exported fields describe the suspended state so deciders and
// telemetry can inspect it.
type Decision struct {
	ID         string
	PlayerID   string
	SourceID   string
	SourceName string
	Kind       DecisionKind
	Prompt     string

	// Options is the set of identifiers the answer may be drawn from: card
	// instance IDs, supply pile names, or the confirm options.
	Options []string
	// Min and Max bound the number of selections.
	Min, Max int

	// Context carries decision-specific details (e.g. the attack card a
	// reaction window responds to) for inspection.
	Context map[string]string

	resume func(g *Game, chosen []string) error
}

func newDecision(playerID string, kind DecisionKind, prompt string, options []string, min, max int, resume func(*Game, []string) error) *Decision {
	return &Decision{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Kind:     kind,
		Prompt:   prompt,
		Options:  options,
		Min:      min,
		Max:      max,
		Context:  make(map[string]string),
		resume:   resume,
	}
}

// withSource records the triggering card on the decision.
func (d *Decision) withSource(source *CardInPlay) *Decision {
	if source != nil {
		d.SourceID = source.ID
		d.SourceName = source.Card.Name
	}
	return d
}

// Validate checks an answer against the selection bounds and option set
// without mutating anything. A nil error means the answer is acceptable.
func (d *Decision) Validate(chosen []string) error {
	if len(chosen) < d.Min || len(chosen) > d.Max {
		return fmt.Errorf("%w: expected between %d and %d selections, got %d",
			ErrInvalidAnswer, d.Min, d.Max, len(chosen))
	}
	seen := make(map[string]bool, len(chosen))
	for _, choice := range chosen {
		if seen[choice] {
			return fmt.Errorf("%w: duplicate selection %q", ErrInvalidAnswer, choice)
		}
		seen[choice] = true
		if !d.offers(choice) {
			return fmt.Errorf("%w: option %q was not offered", ErrInvalidAnswer, choice)
		}
	}
	return nil
}

func (d *Decision) offers(option string) bool {
	for _, o := range d.Options {
		if o == option {
			return true
		}
	}
	return false
}
