// Package watchers provides common event watchers that accumulate per-game
// statistics from the event stream.
package watchers

import (
	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// CardsDrawnWatcher tracks cards drawn by players.
type CardsDrawnWatcher struct {
	*rules.BaseWatcher
	cardsDrawn map[string]int // playerID -> count
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	w := &CardsDrawnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		cardsDrawn:  make(map[string]int),
	}
	w.SetKey("CardsDrawnWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardDrawn || event.PlayerID == "" {
		return
	}
	w.cardsDrawn[event.PlayerID]++
}

// Reset clears the watcher's state.
func (w *CardsDrawnWatcher) Reset() {
	w.cardsDrawn = make(map[string]int)
}

// GetCount returns the number of cards drawn by a player.
func (w *CardsDrawnWatcher) GetCount(playerID string) int {
	return w.cardsDrawn[playerID]
}

// CardsGainedWatcher tracks cards gained from the supply by players.
type CardsGainedWatcher struct {
	*rules.BaseWatcher
	cardsGained map[string][]string // playerID -> list of card names
}

// NewCardsGainedWatcher creates a new cards gained watcher.
func NewCardsGainedWatcher() *CardsGainedWatcher {
	w := &CardsGainedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		cardsGained: make(map[string][]string),
	}
	w.SetKey("CardsGainedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsGainedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardGained {
		return
	}
	if event.PlayerID == "" || event.CardName == "" {
		return
	}
	w.cardsGained[event.PlayerID] = append(w.cardsGained[event.PlayerID], event.CardName)
}

// Reset clears the watcher's state.
func (w *CardsGainedWatcher) Reset() {
	w.cardsGained = make(map[string][]string)
}

// GetCardsGained returns the names of the cards a player has gained, in gain
// order.
func (w *CardsGainedWatcher) GetCardsGained(playerID string) []string {
	return w.cardsGained[playerID]
}

// GetCount returns the number of cards gained by a player.
func (w *CardsGainedWatcher) GetCount(playerID string) int {
	return len(w.cardsGained[playerID])
}

// CardsTrashedWatcher tracks cards trashed by players.
type CardsTrashedWatcher struct {
	*rules.BaseWatcher
	cardsTrashed map[string]int // playerID -> count
	total        int
}

// NewCardsTrashedWatcher creates a new cards trashed watcher.
func NewCardsTrashedWatcher() *CardsTrashedWatcher {
	w := &CardsTrashedWatcher{
		BaseWatcher:  rules.NewBaseWatcher(rules.WatcherScopeGame),
		cardsTrashed: make(map[string]int),
	}
	w.SetKey("CardsTrashedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsTrashedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardTrashed {
		return
	}
	if event.PlayerID != "" {
		w.cardsTrashed[event.PlayerID]++
	}
	w.total++
}

// Reset clears the watcher's state.
func (w *CardsTrashedWatcher) Reset() {
	w.cardsTrashed = make(map[string]int)
	w.total = 0
}

// GetCount returns the number of cards trashed by a player.
func (w *CardsTrashedWatcher) GetCount(playerID string) int {
	return w.cardsTrashed[playerID]
}

// GetTotalAmount returns the total number of cards trashed this game.
func (w *CardsTrashedWatcher) GetTotalAmount() int {
	return w.total
}

// EmptyPilesWatcher tracks supply piles that have run out.
type EmptyPilesWatcher struct {
	*rules.BaseWatcher
	emptied []string // pile names in depletion order
}

// NewEmptyPilesWatcher creates a new empty piles watcher.
func NewEmptyPilesWatcher() *EmptyPilesWatcher {
	w := &EmptyPilesWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
	}
	w.SetKey("EmptyPilesWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *EmptyPilesWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPileEmptied || event.PileName == "" {
		return
	}
	for _, name := range w.emptied {
		if name == event.PileName {
			return
		}
	}
	w.emptied = append(w.emptied, event.PileName)
}

// Reset clears the watcher's state.
func (w *EmptyPilesWatcher) Reset() {
	w.emptied = nil
}

// GetEmptyPiles returns the names of depleted piles in depletion order.
func (w *EmptyPilesWatcher) GetEmptyPiles() []string {
	return append([]string(nil), w.emptied...)
}

// GetCount returns the number of depleted piles.
func (w *EmptyPilesWatcher) GetCount() int {
	return len(w.emptied)
}

// TurnsTakenWatcher tracks the number of turns each player has started.
type TurnsTakenWatcher struct {
	*rules.BaseWatcher
	turnsTaken map[string]int // playerID -> count
}

// NewTurnsTakenWatcher creates a new turns taken watcher.
func NewTurnsTakenWatcher() *TurnsTakenWatcher {
	w := &TurnsTakenWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		turnsTaken:  make(map[string]int),
	}
	w.SetKey("TurnsTakenWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *TurnsTakenWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventTurnStarted || event.PlayerID == "" {
		return
	}
	w.turnsTaken[event.PlayerID]++
}

// Reset clears the watcher's state.
func (w *TurnsTakenWatcher) Reset() {
	w.turnsTaken = make(map[string]int)
}

// GetCount returns the number of turns a player has started.
func (w *TurnsTakenWatcher) GetCount(playerID string) int {
	return w.turnsTaken[playerID]
}
