// Package cards defines the card catalog: the base treasure, victory, and
// curse cards plus the kingdom cards. Card behavior is
// composed entirely from the engine's generic effect templates; the engine
// never special-cases a card by name.
package cards

import (
	"github.com/dominionfree/dominion-server-go/internal/game"
)

// Set identifiers in card metadata.
const (
	SetBase     = "base"
	SetIntrigue = "intrigue"
)

// Base returns the cards present in every game: the three treasures, the
// three victory cards, and the curse.
func Base() []*game.Card {
	return []*game.Card{
		{Name: "Copper", Set: SetBase, Cost: 0, Money: 1, Types: game.CardTypeTreasure},
		{Name: "Silver", Set: SetBase, Cost: 3, Money: 2, Types: game.CardTypeTreasure},
		{Name: "Gold", Set: SetBase, Cost: 6, Money: 3, Types: game.CardTypeTreasure},

		{Name: "Estate", Set: SetBase, Cost: 2, VP: 1, Types: game.CardTypeVictory},
		{Name: "Duchy", Set: SetBase, Cost: 5, VP: 3, Types: game.CardTypeVictory},
		{Name: "Province", Set: SetBase, Cost: 8, VP: 6, Types: game.CardTypeVictory},

		{Name: "Curse", Set: SetBase, Cost: 0, VP: -1, Types: game.CardTypeCurse},
	}
}

// All returns the complete catalog: base cards plus every kingdom card.
func All() []*game.Card {
	return append(Base(), Kingdom()...)
}

// ByName indexes a catalog slice by card name.
func ByName(catalog []*game.Card) map[string]*game.Card {
	index := make(map[string]*game.Card, len(catalog))
	for _, c := range catalog {
		index[c.Name] = c
	}
	return index
}
