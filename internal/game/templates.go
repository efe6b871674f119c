package game

import (
	"fmt"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// Generic effect templates. Card definitions are composed from these; the
// engine itself never special-cases a named card. Templates that need player
// input surface decisions through the suspend/resume protocol, and
// multi-step templates re-enqueue themselves on the effect stack.

// DrawCards draws n cards for the bound player.
func DrawCards(n int, target EffectTarget) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("+%d cards", n),
		Target: target,
		Apply: func(g *Game, p *Player, _ *CardInPlay, _ *EffectRun) error {
			g.draw(p, n)
			return nil
		},
	}
}

// AddActions grants additional action plays this turn.
func AddActions(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("+%d actions", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, _ *Player, _ *CardInPlay, _ *EffectRun) error {
			g.turn.Actions += n
			return nil
		},
	}
}

// AddBuys grants additional purchases this turn.
func AddBuys(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("+%d buys", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, _ *Player, _ *CardInPlay, _ *EffectRun) error {
			g.turn.Buys += n
			return nil
		},
	}
}

// AddCoins grants spendable coins this turn.
func AddCoins(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("+%d coins", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, _ *Player, _ *CardInPlay, _ *EffectRun) error {
			g.turn.Coins += n
			return nil
		},
	}
}

// AddDiscount lowers every card's cost for the rest of the turn.
func AddDiscount(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("cards cost %d less", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, _ *Player, _ *CardInPlay, _ *EffectRun) error {
			g.turn.Discount += n
			return nil
		},
	}
}

// GainCard gains a named card from the supply to the player's discard. A
// depleted pile makes this a no-op rather than an error.
func GainCard(pileName string, target EffectTarget) EffectTemplate {
	return EffectTemplate{
		Name:   "gain " + pileName,
		Target: target,
		Apply: func(g *Game, p *Player, _ *CardInPlay, _ *EffectRun) error {
			if pile, ok := g.supply[pileName]; !ok || pile.Empty() {
				return nil
			}
			_, err := g.gainFromPile(p, pileName, p.Discard)
			return err
		},
	}
}

// GainCardToDeck gains a named card from the supply onto the player's deck.
func GainCardToDeck(pileName string, target EffectTarget) EffectTemplate {
	return EffectTemplate{
		Name:   "gain " + pileName + " onto deck",
		Target: target,
		Apply: func(g *Game, p *Player, _ *CardInPlay, _ *EffectRun) error {
			if pile, ok := g.supply[pileName]; !ok || pile.Empty() {
				return nil
			}
			_, err := g.gainFromPile(p, pileName, p.Deck)
			return err
		},
	}
}

// DiscardDownTo forces the bound player to discard down to n cards in hand,
// choosing which to keep.
func DiscardDownTo(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("discard down to %d", n),
		Target: TargetOtherPlayers,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			excess := p.Hand.Count() - n
			if excess <= 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionDiscardCards,
				fmt.Sprintf("Discard %d cards", excess),
				g.handIDs(p, nil), excess, excess,
				func(g *Game, chosen []string) error {
					for _, id := range chosen {
						if err := g.discardCard(p, id); err != nil {
							return err
						}
					}
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// TrashUpTo lets the player trash up to n cards from hand matching the
// filter (nil matches everything).
func TrashUpTo(n int, filter func(*Card) bool) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("trash up to %d", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			options := g.handIDs(p, filter)
			if len(options) == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionTrashCards,
				fmt.Sprintf("Trash up to %d cards", n),
				options, 0, min(n, len(options)),
				func(g *Game, chosen []string) error {
					for _, id := range chosen {
						if err := g.trashCard(p, id); err != nil {
							return err
						}
					}
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// DiscardAnyThenDrawEqual lets the player discard any number of cards, then
// draw that many.
func DiscardAnyThenDrawEqual() EffectTemplate {
	return EffectTemplate{
		Name:   "discard any number, draw as many",
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			options := g.handIDs(p, nil)
			if len(options) == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionDiscardCards,
				"Discard any number of cards, then draw as many",
				options, 0, len(options),
				func(g *Game, chosen []string) error {
					for _, id := range chosen {
						if err := g.discardCard(p, id); err != nil {
							return err
						}
					}
					g.draw(p, len(chosen))
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// PassCardsLeft has every player choose a card from hand, starting with the
// active player, then moves all chosen cards to each chooser's left neighbor
// at once. Choices are made before any card moves, so a passed card cannot
// be passed on, and the transfers are announced as one ordered batch. A
// player with an empty hand passes nothing.
func PassCardsLeft() EffectTemplate {
	return EffectTemplate{
		Name:   "each player passes a card left",
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			order := g.turns.PlayerOrder()
			seats := make([]string, 0, len(order))
			for i, id := range order {
				if id == p.ID {
					seats = append(seats, order[i:]...)
					seats = append(seats, order[:i]...)
					break
				}
			}
			chosen := make(map[string]string, len(seats))

			var ask func(i int) error
			ask = func(i int) error {
				for ; i < len(seats); i++ {
					chooser := g.players[seats[i]]
					options := g.handIDs(chooser, nil)
					if len(options) == 0 {
						continue
					}
					next := i + 1
					d := newDecision(chooser.ID, DecisionSelectCards,
						"Choose a card to pass to your left",
						options, 1, 1,
						func(g *Game, sel []string) error {
							chosen[chooser.ID] = sel[0]
							return ask(next)
						}).withSource(source)
					g.surface(d)
					return nil
				}

				events := make([]rules.Event, 0, len(chosen))
				for j, id := range seats {
					cardID, ok := chosen[id]
					if !ok {
						continue
					}
					left := g.players[seats[(j+1)%len(seats)]]
					evt, err := g.passCard(g.players[id], left, cardID)
					if err != nil {
						return err
					}
					events = append(events, evt)
				}
				g.bus.PublishBatch(events)
				return nil
			}
			return ask(0)
		},
	}
}

// GainCostingUpTo lets the player choose any supply card costing at most
// maxCost to gain into their discard.
func GainCostingUpTo(maxCost int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("gain a card costing up to %d", maxCost),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			return g.surfaceGainDecision(p, source, maxCost, nil, p.Discard)
		},
	}
}

// TrashFromHandThenGain trashes exactly one card from hand, then gains a
// card costing up to the trashed card's cost plus delta. The gain filter
// restricts the gainable piles (nil allows any); gains land in destHand
// hands when toHand is set, otherwise the discard.
func TrashFromHandThenGain(delta int, filter func(*Card) bool, toHand bool) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("trash a card, gain one costing up to +%d", delta),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			options := g.handIDs(p, filter)
			if len(options) == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionTrashCards,
				"Trash a card from your hand",
				options, 1, 1,
				func(g *Game, chosen []string) error {
					trashed := g.cards[chosen[0]].Card
					if err := g.trashCard(p, chosen[0]); err != nil {
						return err
					}
					dest := Zone(p.Discard)
					if toHand {
						dest = p.Hand
					}
					return g.surfaceGainDecision(p, source, trashed.Cost+delta, filter, dest)
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// MayTrashForCoins offers to trash one named card from hand for coins.
func MayTrashForCoins(cardName string, coins int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("may trash a %s for +%d coins", cardName, coins),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			matches := g.handIDs(p, func(c *Card) bool { return c.Name == cardName })
			if len(matches) == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionConfirm,
				fmt.Sprintf("Trash a %s for +%d coins?", cardName, coins),
				[]string{OptionYes, OptionNo}, 1, 1,
				func(g *Game, chosen []string) error {
					if chosen[0] != OptionYes {
						return nil
					}
					if err := g.trashCard(p, matches[0]); err != nil {
						return err
					}
					g.turn.Coins += coins
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// MayDiscardDeck offers to move the entire deck to the discard.
func MayDiscardDeck() EffectTemplate {
	return EffectTemplate{
		Name:   "may put deck into discard",
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			if p.Deck.Count() == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionConfirm,
				"Put your deck into your discard pile?",
				[]string{OptionYes, OptionNo}, 1, 1,
				func(g *Game, chosen []string) error {
					if chosen[0] != OptionYes {
						return nil
					}
					moved := 0
					for _, id := range p.Deck.CardIDs() {
						if err := g.moveCard(id, p.Discard); err != nil {
							return err
						}
						moved++
					}
					g.bus.Publish(NewDeckDiscardedEvent(p.ID, moved))
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// TrashSelf trashes the triggering card from the in-play area. Playing the
// card again later is impossible because the instance is gone.
func TrashSelf() EffectTemplate {
	return EffectTemplate{
		Name:   "trash this card",
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			if zone, ok := g.zoneOf[source.ID]; !ok || zone != g.inPlay.ZoneID() {
				// Already moved elsewhere (e.g. played twice via a
				// throne effect); trashing applies once.
				return nil
			}
			return g.trashCard(p, source.ID)
		},
	}
}

// PutVictoryOnDeck forces the bound player to put a victory card from hand
// onto their deck, or reveal a hand with none.
func PutVictoryOnDeck() EffectTemplate {
	return EffectTemplate{
		Name:   "put a victory card onto deck",
		Target: TargetOtherPlayers,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			victories := g.handIDs(p, func(c *Card) bool { return c.IsVictory() })
			if len(victories) == 0 {
				for _, id := range p.Hand.CardIDs() {
					g.revealCard(p, id)
				}
				return nil
			}
			d := newDecision(p.ID, DecisionSelectCards,
				"Put a victory card from your hand onto your deck",
				victories, 1, 1,
				func(g *Game, chosen []string) error {
					g.revealCard(p, chosen[0])
					return g.moveCard(chosen[0], p.Deck)
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// DrawToHandSize draws until the player's hand holds target cards, offering
// to set aside each action card drawn; set-aside cards are discarded once
// drawing stops. The effect re-enqueues itself after every draw, so it is a
// multi-step state machine on the effect stack.
func DrawToHandSize(target int) EffectTemplate {
	var tpl EffectTemplate
	tpl = EffectTemplate{
		Name:   fmt.Sprintf("draw until %d cards in hand", target),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, run *EffectRun) error {
			flush := func() error {
				for _, id := range run.SetAside {
					if err := g.moveCard(id, p.Discard); err != nil {
						return err
					}
				}
				run.SetAside = nil
				return nil
			}

			if p.Hand.Count() >= target {
				return flush()
			}
			if g.draw(p, 1) == 0 {
				return flush()
			}

			// The drawn card is the newest hand entry.
			ids := p.Hand.CardIDs()
			drawnID := ids[len(ids)-1]
			drawn := g.cards[drawnID].Card

			// Keep drawing after this step resolves.
			g.pushEffect(tpl, p, source, run, false)

			if !drawn.IsAction() {
				return nil
			}
			d := newDecision(p.ID, DecisionConfirm,
				fmt.Sprintf("Set aside %s?", drawn.Name),
				[]string{OptionYes, OptionNo}, 1, 1,
				func(g *Game, chosen []string) error {
					if chosen[0] != OptionYes {
						return nil
					}
					if err := g.moveCard(drawnID, g.setAside); err != nil {
						return err
					}
					run.SetAside = append(run.SetAside, drawnID)
					g.bus.Publish(NewCardSetAsideEvent(p.ID, drawnID, drawn.Name))
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
	return tpl
}

// RevealUntilTreasures reveals cards from the deck until n treasures turn
// up; treasures go to hand, everything else is discarded. Short decks end
// the search early.
func RevealUntilTreasures(n int) EffectTemplate {
	return EffectTemplate{
		Name:   fmt.Sprintf("reveal until %d treasures", n),
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, _ *CardInPlay, _ *EffectRun) error {
			found := 0
			for found < n {
				if p.Deck.Count() == 0 {
					g.refillDeck(p)
				}
				top, ok := p.Deck.PeekTop()
				if !ok {
					break
				}
				g.revealCard(p, top)
				if g.cards[top].Card.IsTreasure() {
					if err := g.moveCard(top, p.Hand); err != nil {
						return err
					}
					found++
				} else {
					if err := g.discardCard(p, top); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

// RevealTopAndMayDiscard has each bound player reveal their top deck card;
// the active player then chooses whether it is discarded or put back.
func RevealTopAndMayDiscard() EffectTemplate {
	return EffectTemplate{
		Name:   "reveal top card, chooser may discard it",
		Target: TargetAllPlayers,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			if p.Deck.Count() == 0 {
				g.refillDeck(p)
			}
			top, ok := p.Deck.PeekTop()
			if !ok {
				return nil
			}
			g.revealCard(p, top)
			chooser := g.ActivePlayer()
			d := newDecision(chooser.ID, DecisionConfirm,
				fmt.Sprintf("Discard %s's revealed %s?", p.Name, g.cards[top].Card.Name),
				[]string{OptionYes, OptionNo}, 1, 1,
				func(g *Game, chosen []string) error {
					if chosen[0] != OptionYes {
						return nil
					}
					return g.discardCard(p, top)
				}).withSource(source)
			d.Context["revealed_player"] = p.ID
			g.surface(d)
			return nil
		},
	}
}

// PlayActionTwice lets the player choose an action card from hand and play
// it twice without spending actions for the replays.
func PlayActionTwice() EffectTemplate {
	return EffectTemplate{
		Name:   "play an action card twice",
		Target: TargetActivePlayer,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			options := g.handIDs(p, func(c *Card) bool { return c.IsAction() })
			if len(options) == 0 {
				return nil
			}
			d := newDecision(p.ID, DecisionSelectCards,
				"Choose an action card to play twice",
				options, 0, 1,
				func(g *Game, chosen []string) error {
					if len(chosen) == 0 {
						return nil
					}
					instance := g.cards[chosen[0]]
					if err := g.moveCard(instance.ID, g.inPlay); err != nil {
						return err
					}
					g.bus.Publish(NewCardPlayedEvent(p.ID, instance.ID, instance.Card.Name))
					// Two full, independent resolutions.
					g.pushCardEffects(instance, p, newEffectRun())
					g.pushCardEffects(instance, p, newEffectRun())
					return nil
				}).withSource(source)
			g.surface(d)
			return nil
		},
	}
}

// StealTreasure has each bound player reveal their top two cards; the
// active player trashes one revealed treasure per victim and may gain it,
// the rest is discarded.
func StealTreasure() EffectTemplate {
	return EffectTemplate{
		Name:   "reveal top two, steal a treasure",
		Target: TargetOtherPlayers,
		Apply: func(g *Game, p *Player, source *CardInPlay, _ *EffectRun) error {
			revealed := make([]string, 0, 2)
			for i := 0; i < 2; i++ {
				if p.Deck.Count() == 0 {
					g.refillDeck(p)
				}
				top, ok := p.Deck.PeekTop()
				if !ok {
					break
				}
				g.revealCard(p, top)
				if err := g.moveCard(top, g.setAside); err != nil {
					return err
				}
				revealed = append(revealed, top)
			}

			treasures := make([]string, 0, 2)
			for _, id := range revealed {
				if g.cards[id].Card.IsTreasure() {
					treasures = append(treasures, id)
				}
			}
			discardRest := func() error {
				for _, id := range revealed {
					if zone, ok := g.zoneOf[id]; ok && zone == g.setAside.ZoneID() {
						if err := g.moveCard(id, p.Discard); err != nil {
							return err
						}
					}
				}
				return nil
			}
			if len(treasures) == 0 {
				return discardRest()
			}

			chooser := g.ActivePlayer()
			d := newDecision(chooser.ID, DecisionTrashCards,
				fmt.Sprintf("Choose a treasure of %s's to trash", p.Name),
				treasures, 1, 1,
				func(g *Game, chosen []string) error {
					stolen := chosen[0]
					if err := g.trashCard(p, stolen); err != nil {
						return err
					}
					if err := discardRest(); err != nil {
						return err
					}
					keep := newDecision(chooser.ID, DecisionConfirm,
						fmt.Sprintf("Gain the trashed %s?", g.cards[stolen].Card.Name),
						[]string{OptionYes, OptionNo}, 1, 1,
						func(g *Game, chosen []string) error {
							if chosen[0] != OptionYes {
								return nil
							}
							return g.moveCard(stolen, chooser.Discard)
						}).withSource(source)
					g.surface(keep)
					return nil
				}).withSource(source)
			d.Context["victim"] = p.ID
			g.surface(d)
			return nil
		},
	}
}

// Custom wraps an arbitrary resolution function as a template, for card
// behaviors the generic constructors do not cover.
func Custom(name string, target EffectTarget, apply func(g *Game, p *Player, source *CardInPlay, run *EffectRun) error) EffectTemplate {
	return EffectTemplate{Name: name, Target: target, Apply: apply}
}
