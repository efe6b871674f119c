package game

// TurnState holds the per-turn counters. A fresh TurnState replaces the old
// one at every turn boundary.
type TurnState struct {
	// Actions is the number of action cards that may still be played.
	Actions int
	// Buys is the number of purchases that may still be made.
	Buys int
	// Coins is the spendable coin total accumulated this turn.
	Coins int
	// ActionsPlayed counts action cards played this turn.
	ActionsPlayed int
	// Discount reduces every card's cost for the rest of the turn, never
	// below zero.
	Discount int
	// Bought records whether any card was bought this turn.
	Bought bool
}

// NewTurnState returns the default counters: 1 action, 1 buy, 0 coins.
func NewTurnState() *TurnState {
	return &TurnState{
		Actions: 1,
		Buys:    1,
	}
}

// EffectiveCost applies the turn's discount to a card's cost, floored at 0.
func (t *TurnState) EffectiveCost(c *Card) int {
	cost := c.Cost - t.Discount
	if cost < 0 {
		cost = 0
	}
	return cost
}
