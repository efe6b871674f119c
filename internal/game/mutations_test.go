package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

func TestDrawReshufflesMidDraw(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	// Arrange 3 cards in the deck and 4 in the discard, hand empty.
	for _, id := range alice.Hand.CardIDs() {
		require.NoError(t, g.moveCard(id, alice.Discard))
	}
	for alice.Deck.Count() > 3 {
		top, _ := alice.Deck.PeekTop()
		require.NoError(t, g.moveCard(top, alice.Discard))
	}
	require.Equal(t, 3, alice.Deck.Count())
	require.Equal(t, 7, alice.Discard.Count())

	shuffles := 0
	g.Events().SubscribeTyped(rules.EventDeckShuffled, func(rules.Event) { shuffles++ })

	drawn := g.draw(alice, 5)
	assert.Equal(t, 5, drawn)
	assert.Equal(t, 5, alice.Hand.Count())
	assert.Equal(t, 5, alice.Deck.Count())
	assert.Equal(t, 0, alice.Discard.Count())
	assert.Equal(t, 1, shuffles)
}

func TestDrawShortfallIsNotAnError(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	// Empty the deck; the hand holds 5 and the discard is empty, so only
	// the 5 deck cards remain drawable.
	drawn := g.draw(alice, 99)
	assert.Equal(t, 5, drawn)
	assert.Equal(t, 10, alice.Hand.Count())

	drawn = g.draw(alice, 1)
	assert.Equal(t, 0, drawn)
}

func TestGainFromPile(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	var gained, emptied []string
	g.Events().SubscribeTyped(rules.EventCardGained, func(e rules.Event) {
		gained = append(gained, e.CardName)
	})
	g.Events().SubscribeTyped(rules.EventPileEmptied, func(e rules.Event) {
		emptied = append(emptied, e.PileName)
	})

	before := g.Pile("Silver").Count
	instance, err := g.gainFromPile(alice, "Silver", alice.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Silver", instance.Card.Name)
	assert.Equal(t, before-1, g.Pile("Silver").Count)
	assert.True(t, alice.Discard.Contains(instance.ID))
	assert.Equal(t, []string{"Silver"}, gained)
	assert.Empty(t, emptied)

	// Draining the pile announces the depletion exactly once.
	g.Pile("Silver").Count = 1
	_, err = g.gainFromPile(alice, "Silver", alice.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"Silver"}, emptied)

	_, err = g.gainFromPile(alice, "Silver", alice.Discard)
	assert.ErrorIs(t, err, ErrEmptyPile)

	_, err = g.gainFromPile(alice, "No Such Pile", alice.Discard)
	assert.ErrorIs(t, err, ErrUnknownPile)
}

func TestZoneExclusivity(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	check := func() {
		t.Helper()
		for id := range g.cards {
			assert.Equal(t, 1, g.ZoneCountFor(id), "card %s must live in exactly one zone", id)
		}
	}
	check()

	// A move is remove-then-insert; repeat across zone kinds.
	id := alice.Hand.CardIDs()[0]
	require.NoError(t, g.moveCard(id, alice.Discard))
	check()
	require.NoError(t, g.moveCard(id, alice.Deck))
	check()
	require.NoError(t, g.moveCard(id, g.trash))
	check()
	require.NoError(t, g.moveCard(id, g.setAside))
	check()
}

func TestCardCensusConservation(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	before := g.CardCensus()

	// Trash, discard, gain, and shuffle; identities are conserved.
	id := alice.Hand.CardIDs()[0]
	require.NoError(t, g.trashCard(alice, id))
	_, err := g.gainFromPile(alice, "Gold", alice.Discard)
	require.NoError(t, err)
	require.NoError(t, g.discardCard(alice, alice.Hand.CardIDs()[0]))
	g.refillDeck(alice)

	assert.Equal(t, before, g.CardCensus())
}

func TestPlayActionValidation(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	smithy := giveCard(t, g, alice, "Smithy")

	assert.Error(t, g.playAction(alice, "ghost"))
	// Starting hands hold only treasures and victory cards.
	assert.Error(t, g.playAction(alice, alice.Hand.CardIDs()[0]))

	// A card in another player's hand is not playable.
	bobSmithy := giveCard(t, g, bob, "Smithy")
	assert.Error(t, g.playAction(alice, bobSmithy))

	g.turn.Actions = 0
	assert.Error(t, g.playAction(alice, smithy))
}

func TestPlayActionMovesCardAndPushesEffects(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	smithy := giveCard(t, g, alice, "Smithy")

	handBefore := alice.Hand.Count()
	require.NoError(t, g.playAction(alice, smithy))

	assert.Equal(t, 0, g.turn.Actions)
	assert.Equal(t, 1, g.turn.ActionsPlayed)
	assert.True(t, g.inPlay.Contains(smithy))
	assert.Equal(t, 1, g.stack.Len())

	// Resolving the stack performs the draw.
	item, err := g.stack.Pop()
	require.NoError(t, err)
	require.NoError(t, item.Resolve())
	assert.Equal(t, handBefore-1+3, alice.Hand.Count())
}

func TestPlayTreasureAddsCoins(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	gold := giveCard(t, g, alice, "Gold")

	require.NoError(t, g.playTreasure(alice, gold))
	assert.Equal(t, 3, g.turn.Coins)
	assert.True(t, g.inPlay.Contains(gold))

	estate := giveCard(t, g, alice, "Estate")
	assert.Error(t, g.playTreasure(alice, estate))
}

func TestPassCard(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	id := alice.Hand.CardIDs()[0]
	evt, err := g.passCard(alice, bob, id)
	require.NoError(t, err)
	assert.True(t, bob.Hand.Contains(id))
	assert.False(t, alice.Hand.Contains(id))
	assert.Equal(t, 1, g.ZoneCountFor(id))
	assert.Equal(t, rules.EventCardPassed, evt.Type)
	assert.Equal(t, "alice", evt.PlayerID)
	assert.Equal(t, "bob", evt.Metadata["to"])
}

func TestSurfaceGainDecisionFiltersPiles(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	require.NoError(t, g.surfaceGainDecision(alice, nil, 4, nil, alice.Discard))
	d := g.PendingDecision()
	require.NotNil(t, d)
	assert.Equal(t, DecisionGainCard, d.Kind)
	assert.Contains(t, d.Options, "Smithy")
	assert.Contains(t, d.Options, "Silver")
	assert.NotContains(t, d.Options, "Gold")
	assert.NotContains(t, d.Options, "Province")

	answer(t, g, []string{"Smithy"})
	assert.Contains(t, handNamesIn(g, alice.Discard), "Smithy")
}

func TestSurfaceGainDecisionFizzlesWithNoEligiblePile(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	onlyGold := func(c *Card) bool { return c.Name == "Gold" }
	require.NoError(t, g.surfaceGainDecision(alice, nil, 3, onlyGold, alice.Discard))
	assert.Nil(t, g.PendingDecision())
}
