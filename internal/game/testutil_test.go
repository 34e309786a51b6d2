package game

import (
	"testing"
)

// seatSetup describes one player's zones for a scenario. deck is listed top
// first; discard is listed bottom first.
type seatSetup struct {
	hand    []string
	deck    []string
	discard []string
}

// startScenario builds a game whose log opens with a synthetic but well-formed
// prefix giving each seat exactly the listed zones, with seat 0 at the start
// of turn 1. Discard contents are materialized as gains, so they come out of
// the supply.
func startScenario(t *testing.T, kingdom []string, seats ...seatSetup) *Game {
	t.Helper()
	if kingdom == nil {
		kingdom = DefaultKingdom
	}
	names := make([]string, len(seats))
	for i := range seats {
		names[i] = []string{"Alice", "Bob", "Carol", "Dave"}[i]
	}

	var events []Event
	id := 0
	next := func(cause int, ev Event) Event {
		id++
		ev.ID = id
		ev.CausedBy = cause
		events = append(events, ev)
		return ev
	}

	started := next(0, Event{Type: EventGameStarted, Players: names, Kingdom: kingdom, Seed: 1})
	for i, s := range seats {
		// Bottom-to-top order: deck bottom first, then the hand cards so the
		// first draw pops hand[0].
		cards := make([]string, 0, len(s.deck)+len(s.hand))
		for j := len(s.deck) - 1; j >= 0; j-- {
			cards = append(cards, s.deck[j])
		}
		for j := len(s.hand) - 1; j >= 0; j-- {
			cards = append(cards, s.hand[j])
		}
		if len(cards) > 0 {
			next(started.ID, Event{Type: EventDeckShuffled, Player: i, Cards: cards})
		}
		for _, c := range s.hand {
			next(started.ID, Event{Type: EventCardDrawn, Player: i, Card: c})
		}
		for _, c := range s.discard {
			next(started.ID, Event{Type: EventCardGained, Player: i, Card: c, To: ZoneDiscard})
		}
	}
	next(0, Event{Type: EventTurnStarted, Player: 0, Turn: 1})

	return Replay(events)
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("command rejected: %v", err)
	}
}

func wantCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, command was accepted", code)
	}
	if CodeOf(err) != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

// countEvents returns the number of events of the given type.
func countEvents(g *Game, typ EventType) int {
	return len(OfType(g.Events, typ))
}

// countEventsSince counts events of the given type appended at or after index
// start. Scenario prefixes materialize opening hands as draw events, so tests
// that count draws must start after the prefix.
func countEventsSince(g *Game, start int, typ EventType) int {
	return len(OfType(g.Events[start:], typ))
}

// lastEvent returns the most recent event, or a zero event if none.
func lastEvent(g *Game) Event {
	if len(g.Events) == 0 {
		return Event{}
	}
	return g.Events[len(g.Events)-1]
}

// handOf returns a copy of the player's hand.
func handOf(g *Game, player int) []string {
	return append([]string(nil), g.State.Players[player].Hand...)
}

// sameCards reports whether two card lists are equal as multisets.
func sameCards(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[string]int{}
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}
