package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardGroupPreservesInsertionOrder(t *testing.T) {
	g := NewCardGroup("hand:alice")
	g.Insert("a")
	g.Insert("b")
	g.Insert("c")

	assert.Equal(t, "hand:alice", g.ZoneID())
	assert.Equal(t, []string{"a", "b", "c"}, g.CardIDs())
	assert.Equal(t, 3, g.Count())

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, "c", last)
}

func TestCardGroupRemove(t *testing.T) {
	g := NewCardGroup("discard")
	g.Insert("a")
	g.Insert("b")

	assert.True(t, g.Remove("a"))
	assert.False(t, g.Remove("a"))
	assert.False(t, g.Contains("a"))
	assert.Equal(t, []string{"b"}, g.CardIDs())

	_, ok := NewCardGroup("empty").Last()
	assert.False(t, ok)
}

func TestCardGroupCardIDsIsACopy(t *testing.T) {
	g := NewCardGroup("hand")
	g.Insert("a")

	ids := g.CardIDs()
	ids[0] = "x"
	assert.Equal(t, []string{"a"}, g.CardIDs())
}

func TestCardStackTopOrder(t *testing.T) {
	s := NewCardStack("deck:alice")
	s.Insert("a")
	s.Insert("b")

	// Top is the last inserted.
	top, ok := s.PeekTop()
	assert.True(t, ok)
	assert.Equal(t, "b", top)
	assert.Equal(t, []string{"a", "b"}, s.CardIDs())
}

func TestCardStackRemove(t *testing.T) {
	s := NewCardStack("deck")
	s.Insert("a")
	s.Insert("b")

	assert.True(t, s.Remove("b"))
	top, ok := s.PeekTop()
	assert.True(t, ok)
	assert.Equal(t, "a", top)

	assert.True(t, s.Remove("a"))
	_, ok = s.PeekTop()
	assert.False(t, ok)
	assert.False(t, s.Remove("a"))
}

func TestSupplyPileEmpty(t *testing.T) {
	pile := NewSupplyPile(&Card{Name: "Silver", Cost: 3}, 2)
	assert.False(t, pile.Empty())

	pile.Count = 0
	assert.True(t, pile.Empty())
}
