package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

// GameState represents the lifecycle state of a game.
type GameState string

const (
	GameStateInProgress GameState = "IN_PROGRESS"
	GameStateFinished   GameState = "FINISHED"
)

// GameResult holds terminal scores once the end-game condition triggers.
type GameResult struct {
	Scores  map[string]int
	Winners []string
	Turns   int
	EndedAt time.Time
}

// Game orchestrates turn phases, owns the effect/decision stack, and exposes
// the advancement protocol and mutation primitives used by effects. It is
// single-threaded and cooperative: at most one decision is pending at a
// time, and no mutation happens between surfacing a decision and receiving
// its answer.
type Game struct {
	id     string
	logger *zap.Logger
	rng    *rand.Rand

	players     map[string]*Player
	turns       *rules.TurnManager
	primaryPile string

	// cards is the arena of all vended card instances, addressed by ID.
	// zoneOf is the instance-to-zone index; zones registers every zone by
	// its identifier. Together they replace card-to-zone back-references.
	cards  map[string]*CardInPlay
	zones  map[string]Zone
	zoneOf map[string]string

	supply      map[string]*SupplyPile
	supplyOrder []string
	trash       *CardGroup
	inPlay      *CardGroup
	setAside    *CardGroup

	stack    *rules.StackManager
	bus      *rules.EventBus
	watchers *rules.WatcherRegistry
	pending  *Decision

	turn  *TurnState
	state GameState

	result *GameResult
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// State returns the lifecycle state.
func (g *Game) State() GameState { return g.state }

// Phase returns the current turn phase.
func (g *Game) Phase() rules.Phase { return g.turns.CurrentPhase() }

// TurnNumber returns the shared 1-based turn number.
func (g *Game) TurnNumber() int { return g.turns.TurnNumber() }

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() *Player { return g.players[g.turns.ActivePlayer()] }

// Player returns the player with the given identifier, or nil.
func (g *Game) Player(id string) *Player { return g.players[id] }

// PlayerOrder returns player identifiers in seating order.
func (g *Game) PlayerOrder() []string { return g.turns.PlayerOrder() }

// Turn returns the current turn's counters.
func (g *Game) Turn() *TurnState { return g.turn }

// Pile returns the supply pile with the given card name, or nil.
func (g *Game) Pile(name string) *SupplyPile { return g.supply[name] }

// PileNames returns supply pile names in setup order.
func (g *Game) PileNames() []string {
	names := make([]string, len(g.supplyOrder))
	copy(names, g.supplyOrder)
	return names
}

// Trash returns the shared trash zone.
func (g *Game) Trash() *CardGroup { return g.trash }

// InPlay returns the active player's in-play area.
func (g *Game) InPlay() *CardGroup { return g.inPlay }

// Card returns the card instance with the given identifier, or nil.
func (g *Game) Card(id string) *CardInPlay { return g.cards[id] }

// ZoneOf returns the zone identifier currently holding the card instance.
func (g *Game) ZoneOf(cardID string) (string, bool) {
	zone, ok := g.zoneOf[cardID]
	return zone, ok
}

// Events returns the bus observers subscribe to. Listeners must not mutate
// engine state.
func (g *Game) Events() *rules.EventBus { return g.bus }

// Watchers returns the registry of event-fed statistics watchers.
func (g *Game) Watchers() *rules.WatcherRegistry { return g.watchers }

// PendingDecision returns the decision currently suspending the engine, or
// nil.
func (g *Game) PendingDecision() *Decision { return g.pending }

// Result returns the terminal result once the game has finished, or nil.
func (g *Game) Result() *GameResult { return g.result }

// AdvanceGameState drives the engine forward until a decision surfaces or
// the game finishes. It returns the pending decision (nil when the game has
// ended). Calling it with a decision already pending, or after the game has
// ended, is a protocol violation.
func (g *Game) AdvanceGameState() (*Decision, error) {
	if g.state == GameStateFinished {
		return nil, ErrGameEnded
	}
	if g.pending != nil {
		return nil, ErrDecisionPending
	}
	for g.pending == nil && g.state == GameStateInProgress {
		if err := g.step(); err != nil {
			return nil, err
		}
	}
	return g.pending, nil
}

// step performs one unit of advancement: resolve the top effect if the stack
// is non-empty, otherwise dispatch on the current phase.
func (g *Game) step() error {
	if item, err := g.stack.Pop(); err == nil {
		return item.Resolve()
	}

	switch g.turns.CurrentPhase() {
	case rules.PhaseAction:
		return g.stepAction()
	case rules.PhaseBuyPlayTreasure:
		return g.stepPlayTreasures()
	case rules.PhaseBuyPurchaseCard:
		return g.stepBuy()
	case rules.PhaseCleanup:
		return g.stepCleanup()
	default:
		return fmt.Errorf("unhandled phase %s", g.turns.CurrentPhase())
	}
}

// ResolveDecision validates and applies an answer to the pending decision.
// Validation failures leave the decision pending so the caller may retry;
// answering with no decision outstanding or after game end is a protocol
// violation.
func (g *Game) ResolveDecision(chosen []string) error {
	if g.state == GameStateFinished {
		return ErrGameEnded
	}
	if g.pending == nil {
		return ErrNoDecisionPending
	}
	decision := g.pending
	if err := decision.Validate(chosen); err != nil {
		return err
	}

	// The decision is consumed before its continuation runs, so the
	// continuation may surface the next one.
	g.pending = nil
	g.bus.Publish(rules.Event{
		Type:      rules.EventDecisionResolved,
		ID:        uuid.NewString(),
		PlayerID:  decision.PlayerID,
		SourceID:  decision.SourceID,
		Amount:    len(chosen),
		Timestamp: time.Now(),
		Metadata:  map[string]string{"kind": string(decision.Kind)},
	})

	if g.logger != nil {
		g.logger.Debug("decision resolved",
			zap.String("game_id", g.id),
			zap.String("player_id", decision.PlayerID),
			zap.String("kind", string(decision.Kind)),
			zap.Int("selections", len(chosen)),
		)
	}

	if decision.resume == nil {
		return nil
	}
	return decision.resume(g, chosen)
}

// surface installs the given decision as pending and announces it.
func (g *Game) surface(d *Decision) {
	g.pending = d
	g.bus.Publish(rules.Event{
		Type:      rules.EventDecisionOffered,
		ID:        uuid.NewString(),
		PlayerID:  d.PlayerID,
		SourceID:  d.SourceID,
		CardName:  d.SourceName,
		Timestamp: time.Now(),
		Metadata: map[string]string{
			"kind":   string(d.Kind),
			"prompt": d.Prompt,
		},
	})
}

// stepAction either surfaces the "choose an action to play" decision or
// advances to the treasure-playing phase.
func (g *Game) stepAction() error {
	active := g.ActivePlayer()
	playable := g.handIDs(active, func(c *Card) bool { return c.IsAction() })
	if g.turn.Actions == 0 || len(playable) == 0 {
		g.advancePhase()
		return nil
	}

	d := newDecision(active.ID, DecisionPlayAction,
		"Choose an action card to play, or none to end the action phase",
		playable, 0, 1,
		func(g *Game, chosen []string) error {
			if len(chosen) == 0 {
				g.advancePhase()
				return nil
			}
			return g.playAction(active, chosen[0])
		})
	g.surface(d)
	return nil
}

// stepPlayTreasures surfaces the "play treasures" decision while the hand
// still holds any, then moves on to purchasing.
func (g *Game) stepPlayTreasures() error {
	active := g.ActivePlayer()
	treasures := g.handIDs(active, func(c *Card) bool { return c.IsTreasure() })
	if len(treasures) == 0 {
		g.advancePhase()
		return nil
	}

	d := newDecision(active.ID, DecisionPlayTreasures,
		"Choose treasures to play",
		treasures, 0, len(treasures),
		func(g *Game, chosen []string) error {
			if len(chosen) == 0 {
				g.advancePhase()
				return nil
			}
			for _, id := range chosen {
				if err := g.playTreasure(active, id); err != nil {
					return err
				}
			}
			return nil
		})
	g.surface(d)
	return nil
}

// stepBuy surfaces a purchase decision over affordable, non-empty piles.
func (g *Game) stepBuy() error {
	active := g.ActivePlayer()
	if g.turn.Buys == 0 {
		g.advancePhase()
		return nil
	}
	affordable := g.affordablePiles()
	if len(affordable) == 0 {
		g.advancePhase()
		return nil
	}

	d := newDecision(active.ID, DecisionBuyCard,
		"Choose a card to buy, or none to end the buy phase",
		affordable, 0, 1,
		func(g *Game, chosen []string) error {
			if len(chosen) == 0 {
				g.advancePhase()
				return nil
			}
			return g.buyCard(active, chosen[0])
		})
	g.surface(d)
	return nil
}

// stepCleanup discards everything in play and in hand, draws a fresh hand,
// and begins the next turn or ends the game.
func (g *Game) stepCleanup() error {
	active := g.ActivePlayer()

	for _, id := range g.inPlay.CardIDs() {
		if err := g.moveCard(id, active.Discard); err != nil {
			return err
		}
	}
	for _, id := range active.Hand.CardIDs() {
		if err := g.discardCard(active, id); err != nil {
			return err
		}
	}
	g.draw(active, handSize)

	g.advancePhase() // wraps to the next player's action phase
	return g.beginTurn()
}

// advancePhase moves the turn manager forward and announces the change.
func (g *Game) advancePhase() {
	phase := g.turns.AdvancePhase()
	g.bus.Publish(rules.Event{
		Type:        rules.EventPhaseChanged,
		ID:          uuid.NewString(),
		PlayerID:    g.turns.ActivePlayer(),
		Timestamp:   time.Now(),
		Metadata:    map[string]string{"phase": phase.String()},
		Description: fmt.Sprintf("phase changed to %s", phase),
	})
}

// beginTurn resets the turn counters and checks the end-game condition. It
// is called at every turn boundary, including the very first turn.
func (g *Game) beginTurn() error {
	if g.endConditionMet() {
		return g.finishGame()
	}

	g.turn = NewTurnState()
	active := g.ActivePlayer()
	active.TurnsTaken++

	g.bus.Publish(rules.Event{
		Type:        rules.EventTurnStarted,
		ID:          uuid.NewString(),
		PlayerID:    active.ID,
		Amount:      g.turns.TurnNumber(),
		Timestamp:   time.Now(),
		Description: fmt.Sprintf("turn %d: %s", g.turns.TurnNumber(), active.Name),
	})

	if g.logger != nil {
		g.logger.Debug("turn started",
			zap.String("game_id", g.id),
			zap.Int("turn", g.turns.TurnNumber()),
			zap.String("active_player", active.ID),
		)
	}
	return nil
}

// endConditionMet reports whether the primary victory pile is empty or the
// player-count-dependent number of piles has run out.
func (g *Game) endConditionMet() bool {
	if pile, ok := g.supply[g.primaryPile]; ok && pile.Empty() {
		return true
	}
	empty := 0
	for _, pile := range g.supply {
		if pile.Empty() {
			empty++
		}
	}
	threshold := 3
	if len(g.players) >= 3 {
		threshold = 4
	}
	return empty >= threshold
}

// finishGame computes terminal scores and emits the game-ended event. No
// further turns occur.
func (g *Game) finishGame() error {
	scores := make(map[string]int, len(g.players))
	first := true
	best := 0
	for id := range g.players {
		score := g.Score(g.players[id])
		scores[id] = score
		if first || score > best {
			best = score
			first = false
		}
	}
	winners := make([]string, 0, 1)
	for _, id := range g.turns.PlayerOrder() {
		if scores[id] == best {
			winners = append(winners, id)
		}
	}

	g.state = GameStateFinished
	g.result = &GameResult{
		Scores:  scores,
		Winners: winners,
		Turns:   g.turns.TurnNumber(),
		EndedAt: time.Now(),
	}

	meta := make(map[string]string, len(scores))
	for id, score := range scores {
		meta[id] = fmt.Sprintf("%d", score)
	}
	g.bus.Publish(rules.Event{
		Type:        rules.EventGameEnded,
		ID:          uuid.NewString(),
		Amount:      g.turns.TurnNumber(),
		Timestamp:   time.Now(),
		Metadata:    meta,
		Description: fmt.Sprintf("game over after %d turns", g.turns.TurnNumber()),
	})

	if g.logger != nil {
		g.logger.Info("game finished",
			zap.String("game_id", g.id),
			zap.Int("turns", g.turns.TurnNumber()),
			zap.Strings("winners", winners),
		)
	}
	return nil
}

// Score sums the victory-point contribution of every card the player owns.
// Contributions may depend on the full deck size.
func (g *Game) Score(p *Player) int {
	ids := p.AllCardIDs()
	total := len(ids)
	score := 0
	for _, id := range ids {
		score += g.cards[id].Card.VictoryPoints(total)
	}
	return score
}

// handIDs returns the instance IDs in the player's hand whose card satisfies
// the filter (nil matches everything).
func (g *Game) handIDs(p *Player, filter func(*Card) bool) []string {
	ids := make([]string, 0, p.Hand.Count())
	for _, id := range p.Hand.CardIDs() {
		if filter == nil || filter(g.cards[id].Card) {
			ids = append(ids, id)
		}
	}
	return ids
}

// affordablePiles returns non-empty pile names whose discounted cost fits
// the turn's coins, in setup order.
func (g *Game) affordablePiles() []string {
	names := make([]string, 0, len(g.supplyOrder))
	for _, name := range g.supplyOrder {
		pile := g.supply[name]
		if pile.Empty() {
			continue
		}
		if g.turn.EffectiveCost(pile.Card) <= g.turn.Coins {
			names = append(names, name)
		}
	}
	return names
}
