package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// StateChecksum computes a deterministic checksum of the game state.
// Checksums guard against divergent states across drivers and let tests
// assert that two games driven identically converge byte for byte.
func (g *Game) StateChecksum() string {
	hash := sha256.New()
	hash.Write([]byte(g.canonicalState()))
	return hex.EncodeToString(hash.Sum(nil))
}

// canonicalState builds a canonical string representation of the state,
// independent of map iteration order and wall-clock time.
func (g *Game) canonicalState() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%s\n",
		g.state,
		g.turns.CurrentPhase(),
		g.turns.TurnNumber(),
		g.turns.ActivePlayer(),
	)
	if g.turn != nil {
		fmt.Fprintf(&buf, "TURN:%d|%d|%d|%d|%d|%t\n",
			g.turn.Actions,
			g.turn.Buys,
			g.turn.Coins,
			g.turn.ActionsPlayed,
			g.turn.Discount,
			g.turn.Bought,
		)
	}

	for _, playerID := range g.turns.PlayerOrder() {
		p := g.players[playerID]
		fmt.Fprintf(&buf, "PLAYER:%s|%d\n", playerID, p.TurnsTaken)
		writeZoneUnordered(&buf, "hand", g, p.Hand.CardIDs())
		writeZoneOrdered(&buf, "deck", g, p.Deck.CardIDs())
		writeZoneUnordered(&buf, "discard", g, p.Discard.CardIDs())
	}

	writeZoneUnordered(&buf, "trash", g, g.trash.CardIDs())
	writeZoneUnordered(&buf, "in-play", g, g.inPlay.CardIDs())
	writeZoneUnordered(&buf, "set-aside", g, g.setAside.CardIDs())

	for _, name := range g.supplyOrder {
		fmt.Fprintf(&buf, "PILE:%s|%d\n", name, g.supply[name].Count)
	}
	return buf.String()
}

// writeZoneUnordered writes a zone's card names sorted, since group order
// carries no game meaning.
func writeZoneUnordered(buf *bytes.Buffer, label string, g *Game, ids []string) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, g.cards[id].Card.Name)
	}
	sort.Strings(names)
	fmt.Fprintf(buf, "ZONE:%s:%v\n", label, names)
}

// writeZoneOrdered preserves order, since deck order is game-meaningful.
func writeZoneOrdered(buf *bytes.Buffer, label string, g *Game, ids []string) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, g.cards[id].Card.Name)
	}
	fmt.Fprintf(buf, "ZONE:%s:%v\n", label, names)
}

// CardCensus counts every card identity across all zones plus the remaining
// supply counts. For any legal sequence of operations the census for a name
// never changes once its pile exists.
func (g *Game) CardCensus() map[string]int {
	census := make(map[string]int)
	for _, instance := range g.cards {
		census[instance.Card.Name]++
	}
	for name, pile := range g.supply {
		census[name] += pile.Count
	}
	return census
}

// ZoneCountFor returns how many registered zones currently contain the card
// instance. The zone-exclusivity invariant requires this to be exactly 1
// for every card in the arena.
func (g *Game) ZoneCountFor(cardID string) int {
	count := 0
	for _, zone := range g.zones {
		if zone.Contains(cardID) {
			count++
		}
	}
	return count
}
