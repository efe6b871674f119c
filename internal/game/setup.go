package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/game/rules"
)

const (
	// kingdomSize is the number of variable card piles in the supply.
	kingdomSize = 10

	startingCoppers = 7
	startingEstates = 3

	copperPileSize = 60
	silverPileSize = 40
	goldPileSize   = 30
)

// Base card names every catalog must provide.
var baseCardNames = []string{"Copper", "Silver", "Gold", "Estate", "Duchy", "Province", "Curse"}

// Options configures game construction.
type Options struct {
	// GameID identifies the game; a fresh UUID is used when empty.
	GameID string
	// Players lists player identifiers in seating order. At least two.
	Players []string
	// Kingdom optionally forces a subset of the variable card piles by
	// name; the remainder is chosen at random from the catalog.
	Kingdom []string
	// Catalog is the full card catalog. It must include the base treasure,
	// victory, and curse cards.
	Catalog []*Card
	// Seed fixes the shuffle randomness; 0 derives a seed from the clock.
	Seed int64
	// Logger is optional.
	Logger *zap.Logger
}

// NewGame builds a game: supply piles sized for the player count, shuffled
// starting decks vended from the supply, opening hands drawn, and the first
// turn begun.
func NewGame(opts Options) (*Game, error) {
	if len(opts.Players) < 2 {
		return nil, fmt.Errorf("at least 2 players required")
	}
	if len(opts.Catalog) == 0 {
		return nil, fmt.Errorf("catalog is required")
	}

	byName := make(map[string]*Card, len(opts.Catalog))
	for _, c := range opts.Catalog {
		byName[c.Name] = c
	}
	for _, name := range baseCardNames {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("catalog is missing base card %s", name)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gameID := opts.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	g := &Game{
		id:          gameID,
		logger:      opts.Logger,
		rng:         rand.New(rand.NewSource(seed)),
		players:     make(map[string]*Player, len(opts.Players)),
		primaryPile: "Province",
		cards:       make(map[string]*CardInPlay),
		zones:       make(map[string]Zone),
		zoneOf:      make(map[string]string),
		supply:      make(map[string]*SupplyPile),
		trash:       NewCardGroup("trash"),
		inPlay:      NewCardGroup("in-play"),
		setAside:    NewCardGroup("set-aside"),
		stack:       rules.NewStackManager(),
		bus:         rules.NewEventBus(),
		watchers:    rules.NewWatcherRegistry(),
		state:       GameStateInProgress,
	}
	g.registerZone(g.trash)
	g.registerZone(g.inPlay)
	g.registerZone(g.setAside)

	for _, id := range opts.Players {
		if _, exists := g.players[id]; exists {
			return nil, fmt.Errorf("duplicate player %s", id)
		}
		p := newPlayer(id)
		g.players[id] = p
		g.registerZone(p.Hand)
		g.registerZone(p.Deck)
		g.registerZone(p.Discard)
	}
	g.turns = rules.NewTurnManager(opts.Players)

	// Wire watchers onto the event bus before any events flow.
	g.bus.Subscribe(func(event rules.Event) {
		g.watchers.NotifyWatchers(event)
	})

	if err := g.buildSupply(byName, opts.Kingdom, len(opts.Players)); err != nil {
		return nil, err
	}

	g.bus.Publish(rules.Event{
		Type:        rules.EventGameStarted,
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Description: fmt.Sprintf("game started with %d players", len(opts.Players)),
	})

	// Deal starting decks from the supply, then opening hands.
	for _, id := range opts.Players {
		p := g.players[id]
		for i := 0; i < startingCoppers; i++ {
			if _, err := g.gainFromPile(p, "Copper", p.Discard); err != nil {
				return nil, fmt.Errorf("dealing starting deck: %w", err)
			}
		}
		for i := 0; i < startingEstates; i++ {
			if _, err := g.gainFromPile(p, "Estate", p.Discard); err != nil {
				return nil, fmt.Errorf("dealing starting deck: %w", err)
			}
		}
		g.refillDeck(p)
		g.draw(p, handSize)
	}

	if g.logger != nil {
		g.logger.Info("engine started game",
			zap.String("game_id", gameID),
			zap.Strings("players", opts.Players),
			zap.Int64("seed", seed),
		)
	}

	if err := g.beginTurn(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildSupply creates the base piles and the kingdom piles. Victory pile
// sizes depend on the player count, and starting cards are vended from the
// piles afterwards, so the estate and copper piles are padded to cover them.
func (g *Game) buildSupply(byName map[string]*Card, forced []string, playerCount int) error {
	victoryCount := 12
	if playerCount == 2 {
		victoryCount = 8
	}
	curseCount := 10 * (playerCount - 1)

	baseCounts := map[string]int{
		"Copper":   copperPileSize,
		"Silver":   silverPileSize,
		"Gold":     goldPileSize,
		"Estate":   victoryCount + startingEstates*playerCount,
		"Duchy":    victoryCount,
		"Province": victoryCount,
		"Curse":    curseCount,
	}
	for _, name := range baseCardNames {
		g.addPile(byName[name], baseCounts[name])
	}

	kingdom, err := g.chooseKingdom(byName, forced)
	if err != nil {
		return err
	}
	for _, card := range kingdom {
		count := kingdomSize
		if card.IsVictory() {
			count = victoryCount
		}
		g.addPile(card, count)
	}
	return nil
}

func (g *Game) addPile(card *Card, count int) {
	g.supply[card.Name] = NewSupplyPile(card, count)
	g.supplyOrder = append(g.supplyOrder, card.Name)
}

// chooseKingdom validates any forced picks and fills the rest at random
// from the catalog's kingdom cards.
func (g *Game) chooseKingdom(byName map[string]*Card, forced []string) ([]*Card, error) {
	base := make(map[string]bool, len(baseCardNames))
	for _, name := range baseCardNames {
		base[name] = true
	}

	picked := make([]*Card, 0, kingdomSize)
	chosen := make(map[string]bool, kingdomSize)
	for _, name := range forced {
		card, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: forced kingdom card %s", ErrUnknownCard, name)
		}
		if base[name] {
			return nil, fmt.Errorf("base card %s cannot be a kingdom pile", name)
		}
		if chosen[name] {
			continue
		}
		chosen[name] = true
		picked = append(picked, card)
		if len(picked) == kingdomSize {
			return picked, nil
		}
	}

	candidates := make([]*Card, 0, len(byName))
	for name, card := range byName {
		if !base[name] && !chosen[name] {
			candidates = append(candidates, card)
		}
	}
	// Map iteration order is random; sort for a deterministic shuffle under
	// a fixed seed.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, card := range candidates {
		picked = append(picked, card)
		if len(picked) == kingdomSize {
			break
		}
	}
	return picked, nil
}
