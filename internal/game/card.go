package game

// CardType is a bit set of card classifications. A card can carry several,
// e.g. an attack action or a kingdom victory card.
type CardType uint8

const (
	CardTypeAction CardType = 1 << iota
	CardTypeTreasure
	CardTypeVictory
	CardTypeCurse
	CardTypeAttack
	CardTypeReaction
)

var cardTypeNames = []struct {
	flag CardType
	name string
}{
	{CardTypeAction, "ACTION"},
	{CardTypeTreasure, "TREASURE"},
	{CardTypeVictory, "VICTORY"},
	{CardTypeCurse, "CURSE"},
	{CardTypeAttack, "ATTACK"},
	{CardTypeReaction, "REACTION"},
}

// Has reports whether the type set contains the given flag.
func (t CardType) Has(flag CardType) bool {
	return t&flag != 0
}

// Names returns the string form of every flag set, in declaration order.
func (t CardType) Names() []string {
	names := make([]string, 0, 2)
	for _, entry := range cardTypeNames {
		if t.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}

// Card is an immutable catalog entry. Cards are shared, stateless value
// objects; many CardInPlay instances may reference the same Card.
type Card struct {
	Name string
	Set  string

	// Cost is the acquisition cost in coins before any discount.
	Cost int

	// Money is the coin value produced when a treasure is played.
	Money int

	// VP is the flat victory-point contribution. VPPerCards, when non-zero,
	// adds one point per that many cards in the owner's full deck.
	VP         int
	VPPerCards int

	Types CardType

	// Templates is the ordered list of effects executed when the card is
	// played. Binding a template to a target player produces an Effect on
	// the stack.
	Templates []EffectTemplate
}

// IsAction reports whether the card can be played in the action phase.
func (c *Card) IsAction() bool { return c.Types.Has(CardTypeAction) }

// IsTreasure reports whether the card can be played for coins.
func (c *Card) IsTreasure() bool { return c.Types.Has(CardTypeTreasure) }

// IsVictory reports whether the card contributes scoring at game end.
func (c *Card) IsVictory() bool { return c.Types.Has(CardTypeVictory) }

// IsAttack reports whether playing the card opens reaction windows for the
// targeted players.
func (c *Card) IsAttack() bool { return c.Types.Has(CardTypeAttack) }

// IsReaction reports whether the card can be revealed from hand in response
// to an attack.
func (c *Card) IsReaction() bool { return c.Types.Has(CardTypeReaction) }

// VictoryPoints returns the card's contribution given the owner's total deck
// size. Cards like Gardens score relative to the full deck composition.
func (c *Card) VictoryPoints(deckSize int) int {
	vp := c.VP
	if c.VPPerCards > 0 {
		vp += deckSize / c.VPPerCards
	}
	return vp
}

// CardInPlay is a Card plus a unique instance identity. An instance belongs
// to exactly one zone at any time; the owning Game tracks the zone in its
// card-to-zone index rather than through a back-reference.
type CardInPlay struct {
	ID   string
	Card *Card
}
