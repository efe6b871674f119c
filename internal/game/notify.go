package game

import (
	"github.com/google/uuid"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// Event constructors used by templates, so each effect publishes the same
// shapes the engine primitives do.

// NewCardPlayedEvent builds a CARD_PLAYED event.
func NewCardPlayedEvent(playerID, cardID, cardName string) rules.Event {
	evt := rules.NewEvent(rules.EventCardPlayed, playerID, cardID, cardName)
	evt.ID = uuid.NewString()
	return evt
}

// NewCardSetAsideEvent builds a CARD_SET_ASIDE event.
func NewCardSetAsideEvent(playerID, cardID, cardName string) rules.Event {
	evt := rules.NewEvent(rules.EventCardSetAside, playerID, cardID, cardName)
	evt.ID = uuid.NewString()
	return evt
}

// NewDeckDiscardedEvent builds a DECK_DISCARDED event for the whole-deck
// discard effect.
func NewDeckDiscardedEvent(playerID string, count int) rules.Event {
	evt := rules.NewEventWithAmount(rules.EventDeckDiscarded, playerID, count)
	evt.ID = uuid.NewString()
	return evt
}
