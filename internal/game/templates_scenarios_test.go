package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// scenarioCatalog covers the multi-step effect templates: throne replays,
// deck digging, treasure theft, and the upgrade effects.
func scenarioCatalog() []*Card {
	treasure := func(c *Card) bool { return c.IsTreasure() }
	return []*Card{
		{Name: "Copper", Cost: 0, Money: 1, Types: CardTypeTreasure},
		{Name: "Silver", Cost: 3, Money: 2, Types: CardTypeTreasure},
		{Name: "Gold", Cost: 6, Money: 3, Types: CardTypeTreasure},
		{Name: "Estate", Cost: 2, VP: 1, Types: CardTypeVictory},
		{Name: "Duchy", Cost: 5, VP: 3, Types: CardTypeVictory},
		{Name: "Province", Cost: 8, VP: 6, Types: CardTypeVictory},
		{Name: "Curse", Cost: 0, VP: -1, Types: CardTypeCurse},

		{Name: "Chapel", Cost: 2, Types: CardTypeAction,
			Templates: []EffectTemplate{TrashUpTo(4, nil)}},
		{Name: "Chancellor", Cost: 3, Types: CardTypeAction,
			Templates: []EffectTemplate{AddCoins(2), MayDiscardDeck()}},
		{Name: "Bureaucrat", Cost: 4, Types: CardTypeAction | CardTypeAttack,
			Templates: []EffectTemplate{
				GainCardToDeck("Silver", TargetActivePlayer),
				PutVictoryOnDeck(),
			}},
		{Name: "Feast", Cost: 4, Types: CardTypeAction,
			Templates: []EffectTemplate{TrashSelf(), GainCostingUpTo(5)}},
		{Name: "Spy", Cost: 4, Types: CardTypeAction | CardTypeAttack,
			Templates: []EffectTemplate{
				DrawCards(1, TargetActivePlayer),
				AddActions(1),
				RevealTopAndMayDiscard(),
			}},
		{Name: "Thief", Cost: 4, Types: CardTypeAction | CardTypeAttack,
			Templates: []EffectTemplate{StealTreasure()}},
		{Name: "Throne Room", Cost: 4, Types: CardTypeAction,
			Templates: []EffectTemplate{PlayActionTwice()}},
		{Name: "Library", Cost: 5, Types: CardTypeAction,
			Templates: []EffectTemplate{DrawToHandSize(7)}},
		{Name: "Mine", Cost: 5, Types: CardTypeAction,
			Templates: []EffectTemplate{TrashFromHandThenGain(3, treasure, true)}},
		{Name: "Adventurer", Cost: 6, Types: CardTypeAction,
			Templates: []EffectTemplate{RevealUntilTreasures(2)}},
	}
}

func scenarioKingdom() []string {
	return []string{
		"Chapel", "Chancellor", "Bureaucrat", "Feast", "Spy",
		"Thief", "Throne Room", "Library", "Mine", "Adventurer",
	}
}

func newScenarioGame(t *testing.T, players []string, seed int64) *Game {
	t.Helper()
	g, err := NewGame(Options{
		Players: players,
		Kingdom: scenarioKingdom(),
		Catalog: scenarioCatalog(),
		Seed:    seed,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return g
}

func countTreasuresInHand(g *Game, p *Player) int {
	count := 0
	for _, id := range p.Hand.CardIDs() {
		if g.cards[id].Card.IsTreasure() {
			count++
		}
	}
	return count
}

func TestThroneRoomDoublesAction(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	throne := swapIntoHand(t, g, alice, "Throne Room")
	chancellor := giveCard(t, g, alice, "Chancellor")

	require.NoError(t, g.playAction(alice, throne))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Contains(t, d.Options, chancellor)
	answer(t, g, []string{chancellor})

	// Two full resolutions, each asking about the deck discard.
	for i := 0; i < 2; i++ {
		d = mustAdvance(t, g)
		require.Equal(t, DecisionConfirm, d.Kind)
		answer(t, g, []string{OptionNo})
	}

	assert.Equal(t, 4, g.turn.Coins)
	assert.True(t, g.inPlay.Contains(chancellor))
}

func TestThroneRoomOnFeastTrashesOnce(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	throne := swapIntoHand(t, g, alice, "Throne Room")
	feast := giveCard(t, g, alice, "Feast")

	require.NoError(t, g.playAction(alice, throne))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	answer(t, g, []string{feast})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionGainCard, d.Kind)
	answer(t, g, []string{"Silver"})

	// The second resolution still gains, but the card is already trashed.
	d = mustAdvance(t, g)
	require.Equal(t, DecisionGainCard, d.Kind)
	answer(t, g, []string{"Duchy"})
	mustAdvance(t, g)

	assert.True(t, g.trash.Contains(feast))
	assert.Equal(t, 1, g.trash.Count())
	names := handNamesIn(g, alice.Discard)
	assert.Contains(t, names, "Silver")
	assert.Contains(t, names, "Duchy")
}

func TestLibraryDrawsToSeven(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	library := swapIntoHand(t, g, alice, "Library")
	require.NoError(t, g.playAction(alice, library))
	mustAdvance(t, g)

	assert.Equal(t, 7, alice.Hand.Count())
}

func TestLibrarySetsAsideActions(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	library := swapIntoHand(t, g, alice, "Library")
	chapel := giveCard(t, g, alice, "Chapel")
	require.NoError(t, g.moveCard(chapel, alice.Deck))

	require.NoError(t, g.playAction(alice, library))

	// The chapel is on top of the deck, so it is the first card drawn.
	d := mustAdvance(t, g)
	require.Equal(t, DecisionConfirm, d.Kind)
	answer(t, g, []string{OptionYes})
	mustAdvance(t, g)

	assert.Equal(t, 7, alice.Hand.Count())
	assert.False(t, alice.Hand.Contains(chapel))
	assert.True(t, alice.Discard.Contains(chapel))
	assert.Equal(t, 0, g.setAside.Count())
}

func TestMineUpgradesTreasureIntoHand(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	mine := swapIntoHand(t, g, alice, "Mine")
	copper := giveCard(t, g, alice, "Copper")

	require.NoError(t, g.playAction(alice, mine))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	answer(t, g, []string{copper})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionGainCard, d.Kind)
	assert.Contains(t, d.Options, "Silver")
	assert.NotContains(t, d.Options, "Gold")
	assert.NotContains(t, d.Options, "Estate")
	answer(t, g, []string{"Silver"})
	mustAdvance(t, g)

	assert.Contains(t, handNames(g, alice), "Silver")
	assert.True(t, g.trash.Contains(copper))
}

func TestBureaucratGainsSilverAndAttacks(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	bureaucrat := swapIntoHand(t, g, alice, "Bureaucrat")
	estate := giveCard(t, g, bob, "Estate")

	require.NoError(t, g.playAction(alice, bureaucrat))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Equal(t, "bob", d.PlayerID)
	require.Contains(t, d.Options, estate)
	answer(t, g, []string{estate})
	mustAdvance(t, g)

	top, ok := alice.Deck.PeekTop()
	require.True(t, ok)
	assert.Equal(t, "Silver", g.cards[top].Card.Name)

	bobTop, ok := bob.Deck.PeekTop()
	require.True(t, ok)
	assert.Equal(t, estate, bobTop)
}

func TestChancellorDiscardsDeck(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	chancellor := swapIntoHand(t, g, alice, "Chancellor")
	deckSize := alice.Deck.Count()

	require.NoError(t, g.playAction(alice, chancellor))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionConfirm, d.Kind)
	answer(t, g, []string{OptionYes})
	mustAdvance(t, g)

	assert.Equal(t, 2, g.turn.Coins)
	assert.Equal(t, 0, alice.Deck.Count())
	assert.Equal(t, deckSize, alice.Discard.Count())
}

func TestSpyRevealsTopCards(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	spy := swapIntoHand(t, g, alice, "Spy")
	require.NoError(t, g.playAction(alice, spy))

	// The active player decides for every seat, starting with their own.
	d := mustAdvance(t, g)
	require.Equal(t, DecisionConfirm, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	require.Equal(t, "alice", d.Context["revealed_player"])
	answer(t, g, []string{OptionNo})

	d = mustAdvance(t, g)
	require.Equal(t, "alice", d.PlayerID)
	require.Equal(t, "bob", d.Context["revealed_player"])
	answer(t, g, []string{OptionYes})
	mustAdvance(t, g)

	assert.Equal(t, 5, alice.Hand.Count())
	assert.Equal(t, 1, g.turn.Actions)
	assert.Equal(t, 1, bob.Discard.Count())
}

func TestThiefStealsRevealedTreasure(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	thief := swapIntoHand(t, g, alice, "Thief")
	copper := giveCard(t, g, bob, "Copper")
	estate := giveCard(t, g, bob, "Estate")
	require.NoError(t, g.moveCard(copper, bob.Deck))
	require.NoError(t, g.moveCard(estate, bob.Deck))
	census := g.CardCensus()

	require.NoError(t, g.playAction(alice, thief))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	require.Equal(t, []string{copper}, d.Options)
	answer(t, g, []string{copper})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionConfirm, d.Kind)
	answer(t, g, []string{OptionYes})
	mustAdvance(t, g)

	assert.True(t, alice.Discard.Contains(copper))
	assert.True(t, bob.Discard.Contains(estate))
	assert.Equal(t, 0, g.setAside.Count())
	assert.Equal(t, census, g.CardCensus())
}

func TestThiefLeavesStolenTreasureInTrashWhenDeclined(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")
	bob := g.Player("bob")

	thief := swapIntoHand(t, g, alice, "Thief")
	copper := giveCard(t, g, bob, "Copper")
	require.NoError(t, g.moveCard(copper, bob.Deck))

	require.NoError(t, g.playAction(alice, thief))
	d := mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	answer(t, g, []string{copper})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionConfirm, d.Kind)
	answer(t, g, []string{OptionNo})
	mustAdvance(t, g)

	assert.True(t, g.trash.Contains(copper))
	assert.False(t, alice.Discard.Contains(copper))
}

func TestAdventurerDigsForTreasures(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	adventurer := swapIntoHand(t, g, alice, "Adventurer")
	require.NoError(t, g.playAction(alice, adventurer))
	before := countTreasuresInHand(g, alice)
	mustAdvance(t, g)

	assert.Equal(t, 6, alice.Hand.Count())
	assert.Equal(t, before+2, countTreasuresInHand(g, alice))
}

func TestChapelTrashesUpToFour(t *testing.T) {
	g := newScenarioGame(t, []string{"alice", "bob"}, 42)
	alice := g.Player("alice")

	chapel := swapIntoHand(t, g, alice, "Chapel")
	require.NoError(t, g.playAction(alice, chapel))

	d := mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	assert.Equal(t, 0, d.Min)
	assert.Equal(t, 4, d.Max)
	answer(t, g, d.Options[:3])
	mustAdvance(t, g)

	assert.Equal(t, 1, alice.Hand.Count())
	assert.Equal(t, 3, g.trash.Count())
}

func newPassGame(t *testing.T, players []string, seed int64) *Game {
	t.Helper()
	catalog := append(scenarioCatalog(), &Card{
		Name: "Masquerade", Cost: 3, Types: CardTypeAction,
		Templates: []EffectTemplate{
			DrawCards(2, TargetActivePlayer),
			PassCardsLeft(),
			TrashUpTo(1, nil),
		},
	})
	kingdom := []string{
		"Chapel", "Chancellor", "Bureaucrat", "Feast", "Spy",
		"Thief", "Throne Room", "Library", "Mine", "Masquerade",
	}
	g, err := NewGame(Options{
		Players: players,
		Kingdom: kingdom,
		Catalog: catalog,
		Seed:    seed,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return g
}

func TestMasqueradePassesCardsLeft(t *testing.T) {
	g := newPassGame(t, []string{"alice", "bob", "carol"}, 7)
	alice := g.Player("alice")
	bob := g.Player("bob")
	carol := g.Player("carol")

	masquerade := swapIntoHand(t, g, alice, "Masquerade")
	census := g.CardCensus()

	var passes []rules.Event
	g.Events().SubscribeTyped(rules.EventCardPassed, func(e rules.Event) {
		passes = append(passes, e)
	})

	require.NoError(t, g.playAction(alice, masquerade))

	d := mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	aliceGives := d.Options[0]
	answer(t, g, []string{aliceGives})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Equal(t, "bob", d.PlayerID)
	// Choices happen before any card moves; alice's card is not up for grabs.
	assert.NotContains(t, d.Options, aliceGives)
	bobGives := d.Options[0]
	answer(t, g, []string{bobGives})

	d = mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Equal(t, "carol", d.PlayerID)
	carolGives := d.Options[0]
	assert.Empty(t, passes)
	answer(t, g, []string{carolGives})

	assert.True(t, bob.Hand.Contains(aliceGives))
	assert.True(t, carol.Hand.Contains(bobGives))
	assert.True(t, alice.Hand.Contains(carolGives))
	assert.Equal(t, 6, alice.Hand.Count())
	assert.Equal(t, 5, bob.Hand.Count())
	assert.Equal(t, 5, carol.Hand.Count())

	require.Len(t, passes, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"},
		[]string{passes[0].PlayerID, passes[1].PlayerID, passes[2].PlayerID})
	assert.Equal(t, "bob", passes[0].Metadata["to"])
	assert.Equal(t, "carol", passes[1].Metadata["to"])
	assert.Equal(t, "alice", passes[2].Metadata["to"])

	d = mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	assert.Contains(t, d.Options, carolGives)
	answer(t, g, nil)

	assert.Equal(t, census, g.CardCensus())
}

func TestMasqueradeSkipsEmptyHands(t *testing.T) {
	g := newPassGame(t, []string{"alice", "bob"}, 7)
	alice := g.Player("alice")
	bob := g.Player("bob")

	masquerade := swapIntoHand(t, g, alice, "Masquerade")
	for _, id := range bob.Hand.CardIDs() {
		require.NoError(t, g.moveCard(id, bob.Deck))
	}

	require.NoError(t, g.playAction(alice, masquerade))

	d := mustAdvance(t, g)
	require.Equal(t, DecisionSelectCards, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	aliceGives := d.Options[0]
	answer(t, g, []string{aliceGives})

	// Bob has nothing to pass; the trash offer comes straight back to alice.
	d = mustAdvance(t, g)
	require.Equal(t, DecisionTrashCards, d.Kind)
	require.Equal(t, "alice", d.PlayerID)
	answer(t, g, nil)

	assert.True(t, bob.Hand.Contains(aliceGives))
	assert.Equal(t, 1, bob.Hand.Count())
	assert.Equal(t, 5, alice.Hand.Count())
}
