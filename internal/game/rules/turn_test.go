package rules

import (
	"reflect"
	"testing"
)

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager([]string{"alice", "bob"})

	expected := []Phase{
		PhaseAction,
		PhaseBuyPlayTreasure,
		PhaseBuyPurchaseCard,
		PhaseCleanup,
	}

	for i, exp := range expected {
		if tm.CurrentPhase() != exp {
			t.Fatalf("step %d: expected phase %s, got %s", i, exp, tm.CurrentPhase())
		}
		if tm.ActivePlayer() != "alice" {
			t.Fatalf("step %d: expected alice active, got %s", i, tm.ActivePlayer())
		}
		if i < len(expected)-1 {
			tm.AdvancePhase()
		}
	}
}

func TestTurnManagerRotation(t *testing.T) {
	tm := NewTurnManager([]string{"alice", "bob", "carol"})

	// A full pass through alice's phases hands the turn to bob without
	// bumping the shared turn number.
	for i := 0; i < len(phaseSequence); i++ {
		tm.AdvancePhase()
	}
	if tm.ActivePlayer() != "bob" {
		t.Fatalf("expected bob active after alice's cleanup, got %s", tm.ActivePlayer())
	}
	if tm.CurrentPhase() != PhaseAction {
		t.Fatalf("expected action phase for bob, got %s", tm.CurrentPhase())
	}
	if tm.TurnNumber() != 1 {
		t.Fatalf("expected shared turn 1 until rotation wraps, got %d", tm.TurnNumber())
	}
	if !tm.IsTurnBoundary() {
		t.Fatal("expected turn boundary at the start of bob's turn")
	}

	// Two more full turns wrap back to alice and increment the turn number.
	for i := 0; i < 2*len(phaseSequence); i++ {
		tm.AdvancePhase()
	}
	if tm.ActivePlayer() != "alice" {
		t.Fatalf("expected alice active after wrap, got %s", tm.ActivePlayer())
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn 2 after wrap, got %d", tm.TurnNumber())
	}
}

func TestPlayersAfter(t *testing.T) {
	tm := NewTurnManager([]string{"alice", "bob", "carol"})

	cases := []struct {
		player string
		want   []string
	}{
		{"alice", []string{"bob", "carol"}},
		{"bob", []string{"carol", "alice"}},
		{"carol", []string{"alice", "bob"}},
	}
	for _, tc := range cases {
		got := tm.PlayersAfter(tc.player)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("PlayersAfter(%s): expected %v, got %v", tc.player, tc.want, got)
		}
	}
}

func TestNewTurnManagerSkipsBlankNames(t *testing.T) {
	tm := NewTurnManager([]string{" alice ", "", "bob"})
	if got := tm.PlayerOrder(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Fatalf("expected trimmed order [alice bob], got %v", got)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseBuyPlayTreasure.String() != "BUY_PLAY_TREASURE" {
		t.Fatalf("unexpected phase name %s", PhaseBuyPlayTreasure)
	}
	if Phase(42).String() != "PHASE_42" {
		t.Fatalf("unexpected fallback name %s", Phase(42))
	}
}
