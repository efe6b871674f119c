package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// handSize is the number of cards drawn for a fresh hand.
const handSize = 5

// moveCard relocates a card instance to the destination zone. The card is
// removed from its current zone before insertion, so an observer reacting to
// zone-change events never sees it in two zones at once.
func (g *Game) moveCard(cardID string, dest Zone) error {
	if _, ok := g.cards[cardID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	if zoneID, ok := g.zoneOf[cardID]; ok {
		zone, registered := g.zones[zoneID]
		if !registered {
			return fmt.Errorf("card %s indexed to unregistered zone %s", cardID, zoneID)
		}
		if !zone.Remove(cardID) {
			return fmt.Errorf("card %s missing from its indexed zone %s", cardID, zoneID)
		}
	}
	dest.Insert(cardID)
	g.zoneOf[cardID] = dest.ZoneID()
	return nil
}

// registerZone makes a zone reachable through the card-to-zone index.
func (g *Game) registerZone(z Zone) {
	g.zones[z.ZoneID()] = z
}

// draw moves up to n cards from the player's deck into their hand, shuffling
// the discard into a new deck whenever the deck runs out mid-draw. It returns
// the number of cards actually drawn; a short draw is not an error.
func (g *Game) draw(p *Player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if p.Deck.Count() == 0 {
			g.refillDeck(p)
		}
		top, ok := p.Deck.PeekTop()
		if !ok {
			break
		}
		if err := g.moveCard(top, p.Hand); err != nil {
			break
		}
		drawn++
		g.bus.Publish(rules.Event{
			Type:      rules.EventCardDrawn,
			ID:        uuid.NewString(),
			PlayerID:  p.ID,
			CardID:    top,
			CardName:  g.cards[top].Card.Name,
			Timestamp: time.Now(),
		})
	}
	return drawn
}

// refillDeck shuffles the discard into an empty deck. A no-op when the
// discard is also empty.
func (g *Game) refillDeck(p *Player) {
	if p.Deck.Count() != 0 || p.Discard.Count() == 0 {
		return
	}
	ids := p.Discard.CardIDs()
	g.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	for _, id := range ids {
		// moveCard handles removal from the discard.
		if err := g.moveCard(id, p.Deck); err != nil {
			return
		}
	}
	g.bus.Publish(rules.Event{
		Type:      rules.EventDeckShuffled,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		Amount:    p.Deck.Count(),
		Timestamp: time.Now(),
	})
}

// gainFromPile vends a new card instance from the named supply pile into the
// destination zone. Vending from an empty pile is an engine error.
func (g *Game) gainFromPile(p *Player, pileName string, dest Zone) (*CardInPlay, error) {
	pile, ok := g.supply[pileName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPile, pileName)
	}
	if pile.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPile, pileName)
	}

	pile.Count--
	instance := &CardInPlay{
		ID:   uuid.NewString(),
		Card: pile.Card,
	}
	g.cards[instance.ID] = instance
	dest.Insert(instance.ID)
	g.zoneOf[instance.ID] = dest.ZoneID()

	g.bus.Publish(rules.Event{
		Type:      rules.EventCardGained,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    instance.ID,
		CardName:  pile.Card.Name,
		PileName:  pileName,
		Timestamp: time.Now(),
	})
	if pile.Empty() {
		g.bus.Publish(rules.Event{
			Type:      rules.EventPileEmptied,
			ID:        uuid.NewString(),
			PileName:  pileName,
			Timestamp: time.Now(),
		})
	}
	return instance, nil
}

// surfaceGainDecision offers the player a choice of supply piles whose card
// costs at most maxCost, gaining the chosen card into dest. Piles that are
// empty or rejected by the filter are not offered; with no eligible pile the
// effect fizzles silently.
func (g *Game) surfaceGainDecision(p *Player, source *CardInPlay, maxCost int, filter func(*Card) bool, dest Zone) error {
	var options []string
	for _, name := range g.supplyOrder {
		pile := g.supply[name]
		if pile.Empty() || pile.Card.Cost > maxCost {
			continue
		}
		if filter != nil && !filter(pile.Card) {
			continue
		}
		options = append(options, name)
	}
	if len(options) == 0 {
		return nil
	}

	d := newDecision(p.ID, DecisionGainCard,
		fmt.Sprintf("Gain a card costing up to %d", maxCost),
		options, 1, 1,
		func(g *Game, chosen []string) error {
			_, err := g.gainFromPile(p, chosen[0], dest)
			return err
		}).withSource(source)
	g.surface(d)
	return nil
}

// discardCard moves a card from the player's hand to their discard.
func (g *Game) discardCard(p *Player, cardID string) error {
	if err := g.moveCard(cardID, p.Discard); err != nil {
		return err
	}
	g.bus.Publish(rules.Event{
		Type:      rules.EventCardDiscarded,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    cardID,
		CardName:  g.cards[cardID].Card.Name,
		Timestamp: time.Now(),
	})
	return nil
}

// trashCard moves a card to the shared trash.
func (g *Game) trashCard(p *Player, cardID string) error {
	if err := g.moveCard(cardID, g.trash); err != nil {
		return err
	}
	g.bus.Publish(rules.Event{
		Type:      rules.EventCardTrashed,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    cardID,
		CardName:  g.cards[cardID].Card.Name,
		Timestamp: time.Now(),
	})
	return nil
}

// revealCard announces a card without moving it.
func (g *Game) revealCard(p *Player, cardID string) {
	g.bus.Publish(rules.Event{
		Type:      rules.EventCardRevealed,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    cardID,
		CardName:  g.cards[cardID].Card.Name,
		Timestamp: time.Now(),
	})
}

// passCard moves a card from one player's hand to another's and returns the
// transfer announcement. The caller publishes it, so simultaneous passes can
// go out as a single ordered batch.
func (g *Game) passCard(from, to *Player, cardID string) (rules.Event, error) {
	if err := g.moveCard(cardID, to.Hand); err != nil {
		return rules.Event{}, err
	}
	evt := rules.NewEvent(rules.EventCardPassed, from.ID, cardID, g.cards[cardID].Card.Name)
	evt.ID = uuid.NewString()
	evt.Metadata["to"] = to.ID
	return evt, nil
}

// playAction spends an action, moves the card into play, and pushes its
// bound effects.
func (g *Game) playAction(p *Player, cardID string) error {
	instance, ok := g.cards[cardID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	if !instance.Card.IsAction() {
		return fmt.Errorf("card %s is not an action", instance.Card.Name)
	}
	if !p.Hand.Contains(cardID) {
		return fmt.Errorf("card %s is not in hand", instance.Card.Name)
	}
	if g.turn.Actions == 0 {
		return fmt.Errorf("no actions remaining")
	}

	g.turn.Actions--
	g.turn.ActionsPlayed++
	if err := g.moveCard(cardID, g.inPlay); err != nil {
		return err
	}
	g.bus.Publish(rules.Event{
		Type:      rules.EventCardPlayed,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    cardID,
		CardName:  instance.Card.Name,
		Timestamp: time.Now(),
	})
	if g.logger != nil {
		g.logger.Debug("action played",
			zap.String("game_id", g.id),
			zap.String("player_id", p.ID),
			zap.String("card", instance.Card.Name),
		)
	}

	g.pushCardEffects(instance, p, newEffectRun())
	return nil
}

// playTreasure moves a treasure into play and credits its coin value.
func (g *Game) playTreasure(p *Player, cardID string) error {
	instance, ok := g.cards[cardID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	if !instance.Card.IsTreasure() {
		return fmt.Errorf("card %s is not a treasure", instance.Card.Name)
	}
	if !p.Hand.Contains(cardID) {
		return fmt.Errorf("card %s is not in hand", instance.Card.Name)
	}

	if err := g.moveCard(cardID, g.inPlay); err != nil {
		return err
	}
	g.turn.Coins += instance.Card.Money
	g.bus.Publish(rules.Event{
		Type:      rules.EventCardPlayed,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		CardID:    cardID,
		CardName:  instance.Card.Name,
		Amount:    instance.Card.Money,
		Timestamp: time.Now(),
	})

	// Treasures can carry templates too (none in the base set).
	if len(instance.Card.Templates) > 0 {
		g.pushCardEffects(instance, p, newEffectRun())
	}
	return nil
}

// buyCard performs a purchase: spends coins and a buy, then gains the card
// to the player's discard. Violations here are engine bugs because the
// decision's option set should have prevented them.
func (g *Game) buyCard(p *Player, pileName string) error {
	pile, ok := g.supply[pileName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPile, pileName)
	}
	if g.turn.Buys == 0 {
		return fmt.Errorf("%w: buying %s", ErrNoBuysLeft, pileName)
	}
	if pile.Empty() {
		return fmt.Errorf("%w: buying %s", ErrEmptyPile, pileName)
	}
	cost := g.turn.EffectiveCost(pile.Card)
	if cost > g.turn.Coins {
		return fmt.Errorf("%w: %s costs %d, have %d coins", ErrCannotAfford, pileName, cost, g.turn.Coins)
	}

	g.turn.Coins -= cost
	g.turn.Buys--
	g.turn.Bought = true

	g.bus.Publish(rules.Event{
		Type:      rules.EventCardBought,
		ID:        uuid.NewString(),
		PlayerID:  p.ID,
		PileName:  pileName,
		CardName:  pile.Card.Name,
		Amount:    cost,
		Timestamp: time.Now(),
	})
	_, err := g.gainFromPile(p, pileName, p.Discard)
	return err
}

// pushCardEffects binds the card's templates to their resolved targets and
// pushes them so that, once popped, templates resolve in declared order and
// multi-player templates resolve the player after the active player first.
// Attack effects against other players get a reaction window that resolves
// immediately before them.
func (g *Game) pushCardEffects(source *CardInPlay, player *Player, run *EffectRun) {
	templates := source.Card.Templates
	for i := len(templates) - 1; i >= 0; i-- {
		tpl := templates[i]
		targets := g.resolveTargets(tpl.Target, player)
		for j := len(targets) - 1; j >= 0; j-- {
			target := targets[j]
			attackable := source.Card.IsAttack() && target.ID != player.ID
			g.pushEffect(tpl, target, source, run, attackable)
			if attackable {
				g.pushReactionWindow(target, source, run)
			}
		}
	}
}

// pushEffect pushes one bound effect. Attack effects check the shared run
// state and skip silently when a reaction canceled them.
func (g *Game) pushEffect(tpl EffectTemplate, target *Player, source *CardInPlay, run *EffectRun, attackable bool) {
	g.stack.Push(rules.StackItem{
		ID:          uuid.NewString(),
		PlayerID:    target.ID,
		SourceID:    source.ID,
		SourceName:  source.Card.Name,
		Description: fmt.Sprintf("%s: %s -> %s", source.Card.Name, tpl.Name, target.ID),
		Kind:        rules.StackItemKindEffect,
		Resolve: func() error {
			if attackable && run.Blocked[target.ID] {
				return nil
			}
			return tpl.Apply(g, target, source, run)
		},
	})
}

// pushReactionWindow pushes the nested decision offered to a targeted player
// before an attack effect resolves. Revealing a reaction cancels the attack
// for that player by mutating the shared run state. The window is offered at
// most once per target per card play.
func (g *Game) pushReactionWindow(target *Player, source *CardInPlay, run *EffectRun) {
	g.stack.Push(rules.StackItem{
		ID:          uuid.NewString(),
		PlayerID:    target.ID,
		SourceID:    source.ID,
		SourceName:  source.Card.Name,
		Description: fmt.Sprintf("%s: reaction window for %s", source.Card.Name, target.ID),
		Kind:        rules.StackItemKindReaction,
		Resolve: func() error {
			if run.Reacted[target.ID] {
				return nil
			}
			run.Reacted[target.ID] = true

			reactions := g.handIDs(target, func(c *Card) bool { return c.IsReaction() })
			if len(reactions) == 0 {
				return nil
			}
			d := newDecision(target.ID, DecisionReaction,
				fmt.Sprintf("Reveal a reaction card in response to %s?", source.Card.Name),
				reactions, 0, 1,
				func(g *Game, chosen []string) error {
					if len(chosen) == 0 {
						return nil
					}
					revealed := chosen[0]
					g.revealCard(target, revealed)
					run.Blocked[target.ID] = true
					g.bus.Publish(rules.Event{
						Type:      rules.EventAttackBlocked,
						ID:        uuid.NewString(),
						PlayerID:  target.ID,
						SourceID:  source.ID,
						CardID:    revealed,
						CardName:  g.cards[revealed].Card.Name,
						Timestamp: time.Now(),
						Metadata:  map[string]string{"attack": source.Card.Name},
					})
					return nil
				}).withSource(source)
			d.Context["attack"] = source.Card.Name
			g.surface(d)
			return nil
		},
	})
}

// resolveTargets expands a template's declared target into concrete players.
// Opponents resolve in clockwise order starting after the given player.
func (g *Game) resolveTargets(target EffectTarget, player *Player) []*Player {
	switch target {
	case TargetActivePlayer:
		return []*Player{player}
	case TargetOtherPlayers:
		others := g.turns.PlayersAfter(player.ID)
		targets := make([]*Player, 0, len(others))
		for _, id := range others {
			targets = append(targets, g.players[id])
		}
		return targets
	case TargetAllPlayers:
		targets := []*Player{player}
		for _, id := range g.turns.PlayersAfter(player.ID) {
			targets = append(targets, g.players[id])
		}
		return targets
	default:
		return nil
	}
}
