package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dominionfree/dominion-server-go/internal/game"
	"github.com/dominionfree/dominion-server-go/internal/game/cards"
	"github.com/dominionfree/dominion-server-go/internal/game/watchers"
)

// Watchers observe a full random game; their tallies must agree with the
// engine's own bookkeeping at the end.
func TestWatchersTrackFullGame(t *testing.T) {
	g, err := game.NewGame(game.Options{
		Players: []string{"alice", "bob"},
		Catalog: cards.All(),
		Seed:    29,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	drawn := watchers.NewCardsDrawnWatcher()
	gained := watchers.NewCardsGainedWatcher()
	trashed := watchers.NewCardsTrashedWatcher()
	empty := watchers.NewEmptyPilesWatcher()
	turns := watchers.NewTurnsTakenWatcher()
	g.Watchers().AddWatcher(drawn)
	g.Watchers().AddWatcher(gained)
	g.Watchers().AddWatcher(trashed)
	g.Watchers().AddWatcher(empty)
	g.Watchers().AddWatcher(turns)

	deciders := map[string]game.Decider{
		"alice": game.NewRandomDecider(61),
		"bob":   game.NewRandomDecider(62),
	}
	require.NoError(t, game.Drive(context.Background(), g, deciders, 100000))
	require.Equal(t, game.GameStateFinished, g.State())

	assert.Positive(t, drawn.GetCount("alice"))
	assert.Positive(t, drawn.GetCount("bob"))

	// The first player's opening turn started before the watchers attached.
	assert.Equal(t, g.Player("alice").TurnsTaken-1, turns.GetCount("alice"))
	assert.Equal(t, g.Player("bob").TurnsTaken, turns.GetCount("bob"))

	for _, id := range []string{"alice", "bob"} {
		for _, name := range gained.GetCardsGained(id) {
			assert.NotNil(t, g.Pile(name), "gained card %s has no pile", name)
		}
	}

	// Thief can move a trashed treasure back out of the trash, so the event
	// tally is an upper bound on what remains there.
	assert.GreaterOrEqual(t, trashed.GetTotalAmount(), g.Trash().Count())

	for _, name := range empty.GetEmptyPiles() {
		pile := g.Pile(name)
		require.NotNil(t, pile)
		assert.True(t, pile.Empty(), "pile %s reported empty but holds %d", name, pile.Count)
	}
}
