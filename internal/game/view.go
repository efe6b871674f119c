package game

// GameView is a read-only projection of the game for one viewer. It hides
// information the viewer should not see: only the viewer's own hand is
// listed card by card, other hands appear as counts, and decks are counts
// plus nothing else.
type GameView struct {
	GameID         string           `json:"game_id"`
	State          GameState        `json:"state"`
	Phase          string           `json:"phase"`
	Turn           int              `json:"turn"`
	ActivePlayerID string           `json:"active_player_id"`
	ViewerID       string           `json:"viewer_id"`
	Players        []PlayerView     `json:"players"`
	Supply         []SupplyPileView `json:"supply"`
	TrashCount     int              `json:"trash_count"`
	TrashTop       *CardView        `json:"trash_top,omitempty"`
	InPlay         []CardView       `json:"in_play,omitempty"`
	Counters       TurnCountersView `json:"counters"`
	Pending        *DecisionView    `json:"pending,omitempty"`
}

// PlayerView is the per-player slice of a GameView.
type PlayerView struct {
	PlayerID    string     `json:"player_id"`
	Name        string     `json:"name"`
	DeckCount   int        `json:"deck_count"`
	HandCount   int        `json:"hand_count"`
	Hand        []CardView `json:"hand,omitempty"` // populated only for the viewer
	DiscardTop  *CardView  `json:"discard_top,omitempty"`
	DiscardSize int        `json:"discard_size"`
	TurnsTaken  int        `json:"turns_taken"`
}

// CardView describes a visible card instance.
type CardView struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Cost  int      `json:"cost"`
	Money int      `json:"money,omitempty"`
}

// SupplyPileView describes one supply pile.
type SupplyPileView struct {
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Count int    `json:"count"`
}

// TurnCountersView exposes the current turn's counters.
type TurnCountersView struct {
	Actions int `json:"actions"`
	Buys    int `json:"buys"`
	Coins   int `json:"coins"`
}

// DecisionView describes the pending decision without its continuation.
type DecisionView struct {
	ID         string       `json:"id"`
	PlayerID   string       `json:"player_id"`
	Kind       DecisionKind `json:"kind"`
	Prompt     string       `json:"prompt"`
	SourceName string       `json:"source_name,omitempty"`
	Options    []string     `json:"options"`
	Min        int          `json:"min"`
	Max        int          `json:"max"`
}

// GetView builds the projection for the given viewer.
func (g *Game) GetView(viewerID string) GameView {
	view := GameView{
		GameID:         g.id,
		State:          g.state,
		Phase:          g.turns.CurrentPhase().String(),
		Turn:           g.turns.TurnNumber(),
		ActivePlayerID: g.turns.ActivePlayer(),
		ViewerID:       viewerID,
		TrashCount:     g.trash.Count(),
	}
	if g.turn != nil {
		view.Counters = TurnCountersView{
			Actions: g.turn.Actions,
			Buys:    g.turn.Buys,
			Coins:   g.turn.Coins,
		}
	}

	if top, ok := g.trash.Last(); ok {
		cv := g.cardView(top)
		view.TrashTop = &cv
	}
	for _, id := range g.inPlay.CardIDs() {
		view.InPlay = append(view.InPlay, g.cardView(id))
	}

	for _, playerID := range g.turns.PlayerOrder() {
		p := g.players[playerID]
		pv := PlayerView{
			PlayerID:    p.ID,
			Name:        p.Name,
			DeckCount:   p.Deck.Count(),
			HandCount:   p.Hand.Count(),
			DiscardSize: p.Discard.Count(),
			TurnsTaken:  p.TurnsTaken,
		}
		if top, ok := p.Discard.Last(); ok {
			cv := g.cardView(top)
			pv.DiscardTop = &cv
		}
		if playerID == viewerID {
			for _, id := range p.Hand.CardIDs() {
				pv.Hand = append(pv.Hand, g.cardView(id))
			}
		}
		view.Players = append(view.Players, pv)
	}

	for _, name := range g.supplyOrder {
		pile := g.supply[name]
		view.Supply = append(view.Supply, SupplyPileView{
			Name:  name,
			Cost:  pile.Card.Cost,
			Count: pile.Count,
		})
	}

	if d := g.pending; d != nil {
		view.Pending = &DecisionView{
			ID:         d.ID,
			PlayerID:   d.PlayerID,
			Kind:       d.Kind,
			Prompt:     d.Prompt,
			SourceName: d.SourceName,
			Options:    append([]string(nil), d.Options...),
			Min:        d.Min,
			Max:        d.Max,
		}
	}
	return view
}

func (g *Game) cardView(cardID string) CardView {
	card := g.cards[cardID].Card
	return CardView{
		ID:    cardID,
		Name:  card.Name,
		Types: card.Types.Names(),
		Cost:  card.Cost,
		Money: card.Money,
	}
}
