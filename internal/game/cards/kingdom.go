package cards

import (
	"github.com/dominionfree/dominion-server-go/internal/game"
)

func isTreasure(c *game.Card) bool { return c.IsTreasure() }

// Kingdom returns the variable kingdom cards. Ten of these piles are
// selected per game.
func Kingdom() []*game.Card {
	return []*game.Card{
		{
			Name: "Cellar", Set: SetBase, Cost: 2, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.AddActions(1),
				game.DiscardAnyThenDrawEqual(),
			},
		},
		{
			Name: "Chapel", Set: SetBase, Cost: 2, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.TrashUpTo(4, nil),
			},
		},
		{
			Name: "Moat", Set: SetBase, Cost: 2, Types: game.CardTypeAction | game.CardTypeReaction,
			Templates: []game.EffectTemplate{
				game.DrawCards(2, game.TargetActivePlayer),
			},
		},
		{
			Name: "Chancellor", Set: SetBase, Cost: 3, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.AddCoins(2),
				game.MayDiscardDeck(),
			},
		},
		{
			// Passing is not an attack; reactions do not trigger on it.
			Name: "Masquerade", Set: SetIntrigue, Cost: 3, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(2, game.TargetActivePlayer),
				game.PassCardsLeft(),
				game.TrashUpTo(1, nil),
			},
		},
		{
			Name: "Village", Set: SetBase, Cost: 3, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(1, game.TargetActivePlayer),
				game.AddActions(2),
			},
		},
		{
			Name: "Woodcutter", Set: SetBase, Cost: 3, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.AddBuys(1),
				game.AddCoins(2),
			},
		},
		{
			Name: "Workshop", Set: SetBase, Cost: 3, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.GainCostingUpTo(4),
			},
		},
		{
			Name: "Bureaucrat", Set: SetBase, Cost: 4, Types: game.CardTypeAction | game.CardTypeAttack,
			Templates: []game.EffectTemplate{
				game.GainCardToDeck("Silver", game.TargetActivePlayer),
				game.PutVictoryOnDeck(),
			},
		},
		{
			Name: "Feast", Set: SetBase, Cost: 4, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.TrashSelf(),
				game.GainCostingUpTo(5),
			},
		},
		{
			Name: "Gardens", Set: SetBase, Cost: 4, Types: game.CardTypeVictory,
			VPPerCards: 10,
		},
		{
			Name: "Militia", Set: SetBase, Cost: 4, Types: game.CardTypeAction | game.CardTypeAttack,
			Templates: []game.EffectTemplate{
				game.AddCoins(2),
				game.DiscardDownTo(3),
			},
		},
		{
			Name: "Moneylender", Set: SetBase, Cost: 4, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.MayTrashForCoins("Copper", 3),
			},
		},
		{
			Name: "Remodel", Set: SetBase, Cost: 4, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.TrashFromHandThenGain(2, nil, false),
			},
		},
		{
			Name: "Smithy", Set: SetBase, Cost: 4, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(3, game.TargetActivePlayer),
			},
		},
		{
			Name: "Spy", Set: SetBase, Cost: 4, Types: game.CardTypeAction | game.CardTypeAttack,
			Templates: []game.EffectTemplate{
				game.DrawCards(1, game.TargetActivePlayer),
				game.AddActions(1),
				game.RevealTopAndMayDiscard(),
			},
		},
		{
			Name: "Thief", Set: SetBase, Cost: 4, Types: game.CardTypeAction | game.CardTypeAttack,
			Templates: []game.EffectTemplate{
				game.StealTreasure(),
			},
		},
		{
			Name: "Throne Room", Set: SetBase, Cost: 4, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.PlayActionTwice(),
			},
		},
		{
			Name: "Council Room", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(4, game.TargetActivePlayer),
				game.AddBuys(1),
				game.DrawCards(1, game.TargetOtherPlayers),
			},
		},
		{
			Name: "Festival", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.AddActions(2),
				game.AddBuys(1),
				game.AddCoins(2),
			},
		},
		{
			Name: "Laboratory", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(2, game.TargetActivePlayer),
				game.AddActions(1),
			},
		},
		{
			Name: "Library", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawToHandSize(7),
			},
		},
		{
			Name: "Market", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.DrawCards(1, game.TargetActivePlayer),
				game.AddActions(1),
				game.AddBuys(1),
				game.AddCoins(1),
			},
		},
		{
			Name: "Mine", Set: SetBase, Cost: 5, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.TrashFromHandThenGain(3, isTreasure, true),
			},
		},
		{
			Name: "Witch", Set: SetBase, Cost: 5, Types: game.CardTypeAction | game.CardTypeAttack,
			Templates: []game.EffectTemplate{
				game.DrawCards(2, game.TargetActivePlayer),
				game.GainCard("Curse", game.TargetOtherPlayers),
			},
		},
		{
			Name: "Adventurer", Set: SetBase, Cost: 6, Types: game.CardTypeAction,
			Templates: []game.EffectTemplate{
				game.RevealUntilTreasures(2),
			},
		},
	}
}
