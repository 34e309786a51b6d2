package log

import (
	"strings"
	"testing"

	"github.com/peterkuimelis/dbgx/internal/game"
)

func TestBuildTreeNestsByCause(t *testing.T) {
	events := []game.Event{
		{ID: 1, Type: game.EventCardPlayed, Player: 0, Card: "Smithy"},
		{ID: 2, CausedBy: 1, Type: game.EventCardDrawn, Player: 0, Card: "Copper"},
		{ID: 3, CausedBy: 1, Type: game.EventCardDrawn, Player: 0, Card: "Estate"},
		{ID: 4, Type: game.EventCardBought, Player: 0, Card: "Silver"},
	}
	roots := BuildTree(events, nil)
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("play has %d children, want 2 draws", len(roots[0].Children))
	}
	if len(roots[1].Children) != 0 {
		t.Fatal("buy should have no children")
	}
}

func TestFilteredEventsAdoptGrandchildren(t *testing.T) {
	// The draw is caused by a hidden DecisionRequired, whose cause is the
	// visible play: the draw must attach to the play, not vanish.
	events := []game.Event{
		{ID: 1, Type: game.EventCardPlayed, Player: 0, Card: "Cellar"},
		{ID: 2, CausedBy: 1, Type: game.EventDecisionRequired, Player: 0},
		{ID: 3, CausedBy: 2, Type: game.EventCardDrawn, Player: 0, Card: "Gold"},
	}
	roots := BuildTree(events, DefaultFilter)
	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Event.ID != 3 {
		t.Fatalf("draw was not adopted by the play: %+v", roots[0].Children)
	}
}

func TestDefaultFilterHidesBookkeeping(t *testing.T) {
	hidden := []game.Event{
		{Type: game.EventActionsModified},
		{Type: game.EventBuysModified},
		{Type: game.EventCoinsModified},
		{Type: game.EventCostModified},
		{Type: game.EventPhaseChanged},
		{Type: game.EventDecisionRequired},
		{Type: game.EventReactionOpportunity},
	}
	for _, ev := range hidden {
		if DefaultFilter(ev) {
			t.Errorf("%s should be hidden", ev.Type)
		}
	}
	if !DefaultFilter(game.Event{Type: game.EventCardPlayed}) {
		t.Error("CardPlayed should be visible")
	}
}

func TestTranscriptOfRealGame(t *testing.T) {
	g := game.NewGame()
	if err := g.StartGame([]string{"Alice", "Bob"}, nil, 42); err != nil {
		t.Fatal(err)
	}
	if err := g.EndPhase(0); err != nil {
		t.Fatal(err)
	}
	if err := g.PlayAllTreasures(0); err != nil {
		t.Fatal(err)
	}

	out := Transcript(g.Events, []string{"Alice", "Bob"}, DefaultFilter)
	for _, want := range []string{
		"Game started: Alice, Bob",
		"=== Turn 1 (Alice) ===",
		"Alice plays Copper",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript missing %q:\n%s", want, out)
		}
	}
	// Draws never leak the card name.
	if strings.Contains(out, "draws Copper") || strings.Contains(out, "draws Estate") {
		t.Errorf("transcript leaks drawn cards:\n%s", out)
	}
	// Opening draws indent under the game start.
	if !strings.Contains(out, "  Alice draws a card") {
		t.Errorf("draws are not indented under their cause:\n%s", out)
	}
}

func TestFormatEventFallbacks(t *testing.T) {
	if got := FormatEvent(game.Event{Type: game.EventCardDrawn, Player: 2}, nil); got != "P3 draws a card" {
		t.Errorf("missing names: got %q", got)
	}
	blocked := game.Event{Type: game.EventAttackResolved, Player: 1, Card: "Witch", Blocked: true}
	if got := FormatEvent(blocked, []string{"Alice", "Bob"}); got != "Bob is unaffected by Witch" {
		t.Errorf("blocked resolve: got %q", got)
	}
}
