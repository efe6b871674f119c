package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Game lifecycle events
	EventGameStarted EventType = "GAME_STARTED"
	EventGameEnded   EventType = "GAME_ENDED"

	// Turn events
	EventTurnStarted  EventType = "TURN_STARTED"
	EventPhaseChanged EventType = "PHASE_CHANGED"

	// Card movement events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventCardPlayed    EventType = "CARD_PLAYED"
	EventCardGained    EventType = "CARD_GAINED"
	EventCardBought    EventType = "CARD_BOUGHT"
	EventCardDiscarded EventType = "CARD_DISCARDED"
	EventCardTrashed   EventType = "CARD_TRASHED"
	EventCardRevealed  EventType = "CARD_REVEALED"
	EventCardPassed    EventType = "CARD_PASSED"
	EventCardSetAside  EventType = "CARD_SET_ASIDE"
	EventDeckShuffled  EventType = "DECK_SHUFFLED"
	EventDeckDiscarded EventType = "DECK_DISCARDED"

	// Supply events
	EventPileEmptied EventType = "PILE_EMPTIED"

	// Decision events
	EventDecisionOffered  EventType = "DECISION_OFFERED"
	EventDecisionResolved EventType = "DECISION_RESOLVED"

	// Attack/reaction events
	EventAttackBlocked EventType = "ATTACK_BLOCKED"
)

// Event represents a state change that observers may react to. Players and
// cards are referenced by stable identifier, never by zone position.
type Event struct {
	Type        EventType
	ID          string            // unique event ID
	PlayerID    string            // player the event happened to
	SourceID    string            // ID of the card instance that caused it, if any
	CardID      string            // ID of the card instance the event is about
	CardName    string            // catalog name of the card, if visible
	PileName    string            // supply pile name, for gain/buy/empty events
	Amount      int               // numeric value (cards drawn, coins, scores)
	Timestamp   time.Time         // when the event occurred
	Metadata    map[string]string // additional metadata
	Description string            // human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Listeners observe engine activity; they must not mutate engine
// state.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	listener := TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	}
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], listener)
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}

	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, playerID, cardID, cardName string) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		CardID:    cardID,
		CardName:  cardName,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, playerID string, amount int) Event {
	evt := NewEvent(eventType, playerID, "", "")
	evt.Amount = amount
	return evt
}
