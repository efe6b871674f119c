package game

// Player aggregates a hand, deck, and discard, plus the stable identifier
// used for targeting. Players are created once at setup and never destroyed
// mid-game; all mutation happens through the game's movement primitives.
type Player struct {
	ID   string
	Name string

	Hand    *CardGroup
	Deck    *CardStack
	Discard *CardGroup

	// TurnsTaken counts turns this player has started, for result reporting.
	TurnsTaken int
}

func newPlayer(id string) *Player {
	return &Player{
		ID:      id,
		Name:    id,
		Hand:    NewCardGroup("hand:" + id),
		Deck:    NewCardStack("deck:" + id),
		Discard: NewCardGroup("discard:" + id),
	}
}

// AllCardIDs returns every card instance the player owns across hand, deck,
// and discard. This is the full deck used for scoring.
func (p *Player) AllCardIDs() []string {
	ids := make([]string, 0, p.Hand.Count()+p.Deck.Count()+p.Discard.Count())
	ids = append(ids, p.Hand.CardIDs()...)
	ids = append(ids, p.Deck.CardIDs()...)
	ids = append(ids, p.Discard.CardIDs()...)
	return ids
}

// TotalCards returns the number of cards the player owns.
func (p *Player) TotalCards() int {
	return p.Hand.Count() + p.Deck.Count() + p.Discard.Count()
}
