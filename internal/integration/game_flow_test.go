package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dominionfree/dominion-server-go/internal/config"
	"github.com/dominionfree/dominion-server-go/internal/game"
	"github.com/dominionfree/dominion-server-go/internal/game/cards"
	"github.com/dominionfree/dominion-server-go/internal/server"
)

func newManager(t testing.TB) *server.Manager {
	t.Helper()
	defaults := config.GameConfig{MinPlayers: 2, MaxPlayers: 4}
	return server.NewManager(cards.All(), defaults, nil, zaptest.NewLogger(t))
}

func TestCreateGameSurfacesFirstDecision(t *testing.T) {
	m := newManager(t)

	session, err := m.CreateGame([]string{"alice", "bob"}, 42)
	require.NoError(t, err)
	require.NotNil(t, session)

	view := session.View("alice")
	require.NotNil(t, view.Pending)
	assert.Equal(t, "alice", view.Pending.PlayerID)
	// Opening hands hold no action cards, so play opens on treasures.
	assert.Equal(t, game.DecisionPlayTreasures, view.Pending.Kind)
	assert.Equal(t, []string{"alice", "bob"}, session.Players())
	assert.False(t, session.Finished())
}

func TestCreateGameValidatesPlayerCount(t *testing.T) {
	m := newManager(t)

	_, err := m.CreateGame([]string{"alice"}, 0)
	assert.Error(t, err)

	_, err = m.CreateGame([]string{"a", "b", "c", "d", "e"}, 0)
	assert.Error(t, err)
}

func TestSessionRegistry(t *testing.T) {
	m := newManager(t)

	session, err := m.CreateGame([]string{"alice", "bob"}, 42)
	require.NoError(t, err)

	assert.Same(t, session, m.GetSession(session.GameID()))
	assert.Nil(t, m.GetSession("no-such-game"))

	m.RemoveSession(session.GameID())
	assert.Nil(t, m.GetSession(session.GameID()))
}

func TestResolveRejectsWrongPlayer(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	session, err := m.CreateGame([]string{"alice", "bob"}, 42)
	require.NoError(t, err)

	pending := session.View("bob").Pending
	require.NotNil(t, pending)
	require.Equal(t, "alice", pending.PlayerID)

	err = session.Resolve(ctx, "bob", nil)
	assert.ErrorIs(t, err, game.ErrInvalidAnswer)

	// The decision is still open for the right player.
	after := session.View("alice").Pending
	require.NotNil(t, after)
	assert.Equal(t, pending.ID, after.ID)
}

func TestResolveRejectsInvalidAnswerAndRetries(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	session, err := m.CreateGame([]string{"alice", "bob"}, 42)
	require.NoError(t, err)

	pending := session.View("alice").Pending
	require.NotNil(t, pending)

	err = session.Resolve(ctx, "alice", []string{"not-an-option"})
	assert.ErrorIs(t, err, game.ErrInvalidAnswer)
	require.NotNil(t, session.View("alice").Pending)

	// Declining to play treasures is a legal answer and moves the game on.
	require.NoError(t, session.Resolve(ctx, "alice", nil))
	next := session.View("alice").Pending
	require.NotNil(t, next)
	assert.NotEqual(t, pending.ID, next.ID)
}

func TestFullGameThroughManager(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	session, err := m.CreateGame([]string{"alice", "bob", "carol"}, 11)
	require.NoError(t, err)

	decider := game.NewRandomDecider(23)
	for steps := 0; !session.Finished(); steps++ {
		require.Less(t, steps, 100000, "game did not terminate")

		pending := session.View("alice").Pending
		require.NotNil(t, pending)

		view := session.View(pending.PlayerID)
		chosen, err := decider.Decide(ctx, view, *view.Pending)
		require.NoError(t, err)
		require.NoError(t, session.Resolve(ctx, pending.PlayerID, chosen))
	}

	result := session.Result()
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Winners)
	assert.Len(t, result.Scores, 3)
	for _, winner := range result.Winners {
		assert.Contains(t, result.Scores, winner)
	}
}
