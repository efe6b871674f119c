package game

// Zone is a named location card instances can occupy. Zones store instance
// identifiers only; the arena in Game maps identifiers to instances.
type Zone interface {
	ZoneID() string
	Insert(cardID string)
	Remove(cardID string) bool
	Contains(cardID string) bool
	Count() int
	CardIDs() []string
}

// CardGroup is an unordered zone (hand, discard, trash, set-aside area).
// Insertion order is preserved so option lists are deterministic, but no
// top/bottom semantics are implied.
type CardGroup struct {
	id  string
	ids []string
}

// NewCardGroup creates an empty group with the given zone identifier.
func NewCardGroup(id string) *CardGroup {
	return &CardGroup{id: id, ids: make([]string, 0, 10)}
}

func (g *CardGroup) ZoneID() string { return g.id }

func (g *CardGroup) Insert(cardID string) {
	g.ids = append(g.ids, cardID)
}

func (g *CardGroup) Remove(cardID string) bool {
	for i, id := range g.ids {
		if id == cardID {
			g.ids = append(g.ids[:i], g.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (g *CardGroup) Contains(cardID string) bool {
	for _, id := range g.ids {
		if id == cardID {
			return true
		}
	}
	return false
}

func (g *CardGroup) Count() int { return len(g.ids) }

func (g *CardGroup) CardIDs() []string {
	ids := make([]string, len(g.ids))
	copy(ids, g.ids)
	return ids
}

// Last returns the most recently inserted card, if any. Used for "top of
// discard" views.
func (g *CardGroup) Last() (string, bool) {
	if len(g.ids) == 0 {
		return "", false
	}
	return g.ids[len(g.ids)-1], true
}

// CardStack is an ordered zone (a deck). The top of the stack is the end of
// the slice; Insert pushes to the top.
type CardStack struct {
	id  string
	ids []string
}

// NewCardStack creates an empty stack with the given zone identifier.
func NewCardStack(id string) *CardStack {
	return &CardStack{id: id, ids: make([]string, 0, 10)}
}

func (s *CardStack) ZoneID() string { return s.id }

// Insert pushes a card onto the top of the stack.
func (s *CardStack) Insert(cardID string) {
	s.ids = append(s.ids, cardID)
}

func (s *CardStack) Remove(cardID string) bool {
	for i := len(s.ids) - 1; i >= 0; i-- {
		if s.ids[i] == cardID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (s *CardStack) Contains(cardID string) bool {
	for _, id := range s.ids {
		if id == cardID {
			return true
		}
	}
	return false
}

func (s *CardStack) Count() int { return len(s.ids) }

func (s *CardStack) CardIDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// PeekTop returns the top card without removing it.
func (s *CardStack) PeekTop() (string, bool) {
	if len(s.ids) == 0 {
		return "", false
	}
	return s.ids[len(s.ids)-1], true
}

// SupplyPile is a finite, count-only stock of a single card definition.
// It owns no card instances: gaining from the pile vends a freshly
// identified CardInPlay and decrements the count.
type SupplyPile struct {
	Card  *Card
	Count int
}

// NewSupplyPile creates a pile with the given remaining count.
func NewSupplyPile(card *Card, count int) *SupplyPile {
	return &SupplyPile{Card: card, Count: count}
}

// Empty reports whether the pile has been exhausted. Empty piles feed the
// end-game condition.
func (p *SupplyPile) Empty() bool { return p.Count == 0 }
