package game

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestProjectionMatchesIncrementalState: the state maintained incrementally by
// the engine must equal a fresh projection of the log after every command of a
// scripted two-player game.
func TestProjectionMatchesIncrementalState(t *testing.T) {
	g := NewGame()
	mustDo(t, g.StartGame([]string{"Alice", "Bob"}, nil, 42))

	script := []Command{
		{Type: CmdEndPhase, Player: 0},
		{Type: CmdPlayAllTreasures, Player: 0},
		{Type: CmdBuyCard, Player: 0, Card: "Copper"},
		{Type: CmdEndPhase, Player: 0},
		{Type: CmdEndPhase, Player: 1},
		{Type: CmdPlayAllTreasures, Player: 1},
		{Type: CmdEndPhase, Player: 1},
	}
	for i, cmd := range script {
		if _, err := g.Dispatch(cmd); err != nil {
			t.Fatalf("step %d (%s): %v", i, cmd.Type, err)
		}
		if !statesEqual(g.State, Project(g.Events)) {
			t.Fatalf("step %d (%s): incremental state diverged from projection", i, cmd.Type)
		}
	}
}

// TestProjectionPrefixesAreValid: every prefix of a valid log projects without
// panicking, which is what makes undo-by-truncation safe.
func TestProjectionPrefixesAreValid(t *testing.T) {
	g := NewGame()
	mustDo(t, g.StartGame([]string{"Alice", "Bob"}, nil, 7))
	mustDo(t, g.EndPhase(0))
	mustDo(t, g.PlayAllTreasures(0))
	mustDo(t, g.EndPhase(0))

	for i := 0; i <= len(g.Events); i++ {
		Project(g.Events[:i])
	}
}

// TestReplayIsDeterministic: replaying a recorded log reconstructs the same
// state, including deck orders, without consulting fresh randomness.
func TestReplayIsDeterministic(t *testing.T) {
	g := NewGame()
	mustDo(t, g.StartGame([]string{"Alice", "Bob", "Carol"}, nil, 99))
	mustDo(t, g.EndPhase(0))
	mustDo(t, g.PlayAllTreasures(0))
	mustDo(t, g.EndPhase(0))
	mustDo(t, g.EndPhase(1))
	mustDo(t, g.EndPhase(1))

	replayed := Replay(append([]Event(nil), g.Events...))
	if !statesEqual(g.State, replayed.State) {
		t.Fatal("replayed state differs from live state")
	}
	for i := range g.State.Players {
		if !reflect.DeepEqual(g.State.Players[i].Deck, replayed.State.Players[i].Deck) {
			t.Fatalf("seat %d deck order differs after replay", i)
		}
	}
}

// TestInitialSupplyCounts checks the per-player-count pile sizes.
func TestInitialSupplyCounts(t *testing.T) {
	for _, tc := range []struct {
		players int
		victory int
		curses  int
		coppers int
	}{
		{2, 8, 10, 46},
		{3, 12, 20, 39},
		{4, 12, 30, 32},
	} {
		supply := initialSupply(tc.players, DefaultKingdom)
		if supply["Province"] != tc.victory {
			t.Errorf("%dp: Province pile = %d, want %d", tc.players, supply["Province"], tc.victory)
		}
		if supply["Curse"] != tc.curses {
			t.Errorf("%dp: Curse pile = %d, want %d", tc.players, supply["Curse"], tc.curses)
		}
		if supply["Copper"] != tc.coppers {
			t.Errorf("%dp: Copper pile = %d, want %d", tc.players, supply["Copper"], tc.coppers)
		}
		if supply["Village"] != 10 {
			t.Errorf("%dp: Village pile = %d, want 10", tc.players, supply["Village"])
		}
	}
	// Gardens is a victory-card kingdom pile and scales with player count.
	kingdom := []string{"Artisan", "Bandit", "Bureaucrat", "Chapel", "Festival",
		"Gardens", "Sentry", "Throne Room", "Witch", "Workshop"}
	if got := initialSupply(2, kingdom)["Gardens"]; got != 8 {
		t.Errorf("2p Gardens pile = %d, want 8", got)
	}
}

// TestCostModifierProjection: a CostModified event lowers effective costs for
// the rest of the turn and resets when the next turn starts.
func TestCostModifierProjection(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	g.emit(0, Event{Type: EventCostModified, Delta: -2})
	if got := g.State.CostOf("Silver"); got != 1 {
		t.Errorf("Silver cost under -2 modifier = %d, want 1", got)
	}
	if got := g.State.CostOf("Copper"); got != 0 {
		t.Errorf("Copper cost floors at 0, got %d", got)
	}
	g.emit(0, Event{Type: EventTurnStarted, Player: 1, Turn: 2})
	if got := g.State.CostOf("Silver"); got != 3 {
		t.Errorf("Silver cost after turn change = %d, want 3", got)
	}
}

// statesEqual compares two states structurally via their JSON form, which
// ignores unexported fields and nil-versus-empty slice noise.
func statesEqual(a, b *GameState) bool {
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}
