package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSnapshotCapturesPublicState(t *testing.T) {
	g := newTestGame(t, []string{"alice", "bob"}, 42)

	snap := g.Snapshot()
	assert.Equal(t, g.ID(), snap.GameID)
	assert.Equal(t, 1, snap.Turn)
	assert.Equal(t, "alice", snap.ActivePlayerID)
	assert.Equal(t, g.StateChecksum(), snap.Checksum)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, 5, snap.Players[0].HandCount)
	assert.Equal(t, 5, snap.Players[0].DeckCount)
	assert.Equal(t, 10, snap.Supply["Smithy"])
}

func TestReplayPlaybackCursor(t *testing.T) {
	replay := NewReplay("game-1")
	for i := 0; i < 3; i++ {
		replay.RecordState(&Snapshot{GameID: "game-1", Turn: i + 1})
	}

	require.Equal(t, 3, replay.Size())
	assert.Equal(t, 1, replay.Next().Turn)
	assert.Equal(t, 2, replay.Next().Turn)
	assert.Equal(t, 2, replay.Previous().Turn)

	replay.Start()
	assert.Equal(t, 1, replay.Next().Turn)

	assert.Equal(t, 3, replay.Skip(5).Turn)
	assert.Nil(t, replay.GetStateAt(7))
	assert.Equal(t, 2, replay.GetStateAt(1).Turn)
}

func TestReplaySequenceNumbers(t *testing.T) {
	replay := NewReplay("game-1")
	a := &Snapshot{GameID: "game-1"}
	b := &Snapshot{GameID: "game-1"}
	replay.RecordState(a)
	replay.RecordState(b)

	assert.Equal(t, 0, a.Sequence)
	assert.Equal(t, 1, b.Sequence)
}

func TestReplaySaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, []string{"alice", "bob"}, 42)

	replay := NewReplay(g.ID())
	replay.RecordState(g.Snapshot())
	mustAdvance(t, g)
	answer(t, g, nil)
	replay.RecordState(g.Snapshot())

	require.NoError(t, replay.SaveToFile(dir))

	loaded, err := LoadReplayFromFile(dir, g.ID())
	require.NoError(t, err)
	require.Equal(t, replay.Size(), loaded.Size())
	assert.Equal(t, g.ID(), loaded.GameID)
	for i := 0; i < replay.Size(); i++ {
		assert.Equal(t, replay.GetStateAt(i).Checksum, loaded.GetStateAt(i).Checksum)
		assert.Equal(t, replay.GetStateAt(i).Supply, loaded.GetStateAt(i).Supply)
	}
}

func TestLoadMissingReplay(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nope")
	assert.Error(t, err)
}

func TestReplayRecorderLifecycle(t *testing.T) {
	dir := t.TempDir()
	rr := NewReplayRecorder(zaptest.NewLogger(t), dir)

	// Snapshots before recording starts are dropped.
	rr.RecordState("game-1", &Snapshot{GameID: "game-1"})
	_, exists := rr.GetReplay("game-1")
	assert.False(t, exists)

	rr.StartRecording("game-1")
	assert.True(t, rr.IsRecording("game-1"))
	rr.RecordState("game-1", &Snapshot{GameID: "game-1", Turn: 1})

	rr.StopRecording("game-1")
	assert.False(t, rr.IsRecording("game-1"))
	rr.RecordState("game-1", &Snapshot{GameID: "game-1", Turn: 2})

	replay, exists := rr.GetReplay("game-1")
	require.True(t, exists)
	assert.Equal(t, 1, replay.Size())

	require.NoError(t, rr.SaveReplay("game-1"))
	_, exists = rr.GetReplay("game-1")
	assert.False(t, exists)

	loaded, err := rr.LoadReplay("game-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Size())

	assert.Error(t, rr.SaveReplay("game-1"))
}

func TestReplayRecorderClear(t *testing.T) {
	rr := NewReplayRecorder(nil, t.TempDir())
	rr.StartRecording("game-1")
	rr.ClearReplay("game-1")

	_, exists := rr.GetReplay("game-1")
	assert.False(t, exists)
	assert.False(t, rr.IsRecording("game-1"))
}

// Two games driven identically must produce identical replay checksums, so a
// recorded replay can verify a re-simulation frame by frame.
func TestReplaysOfIdenticalGamesMatch(t *testing.T) {
	record := func() []*Snapshot {
		g := newTestGame(t, []string{"alice", "bob"}, 13)
		replay := NewReplay(g.ID())
		replay.RecordState(g.Snapshot())

		deciders := map[string]Decider{
			"alice": NewRandomDecider(71),
			"bob":   NewRandomDecider(72),
		}
		require.NoError(t, Drive(context.Background(), g, deciders, 50000))
		replay.RecordState(g.Snapshot())
		return replay.States
	}

	first := record()
	second := record()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Checksum, second[i].Checksum)
	}
}
