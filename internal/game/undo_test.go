package game

import "testing"

func TestUndoRewindsToCommandBoundary(t *testing.T) {
	g := NewGame()
	mustDo(t, g.StartGame([]string{"Alice", "Bob"}, nil, 11))
	mustDo(t, g.EndPhase(0))

	// Remember the boundary: the last event before the treasures were played.
	mark := lastEvent(g).ID
	before := append([]Event(nil), g.Events...)

	mustDo(t, g.PlayAllTreasures(0))
	mustDo(t, g.EndPhase(0))

	mustDo(t, g.UndoTo(mark))
	if len(g.Events) != len(before) {
		t.Fatalf("log has %d events after undo, want %d", len(g.Events), len(before))
	}
	if !statesEqual(g.State, Project(before)) {
		t.Fatal("state after undo differs from the earlier projection")
	}
	if g.State.Phase != PhaseBuy || g.State.ActivePlayer != 0 {
		t.Fatalf("undo landed on phase=%s player=%d", g.State.Phase, g.State.ActivePlayer)
	}
}

func TestUndoIsIdempotent(t *testing.T) {
	g := NewGame()
	mustDo(t, g.StartGame([]string{"Alice", "Bob"}, nil, 11))
	mustDo(t, g.EndPhase(0))
	mark := lastEvent(g).ID
	mustDo(t, g.EndPhase(0))

	mustDo(t, g.UndoTo(mark))
	snapshot := append([]Event(nil), g.Events...)
	mustDo(t, g.UndoTo(mark)) // already there; no-op
	if len(g.Events) != len(snapshot) {
		t.Fatal("second undo to the same event changed the log")
	}
}

func TestUndoRejectsMidBatchTarget(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Smithy"}, deck: []string{"Copper", "Copper", "Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Smithy"))
	// The CardPlayed event sits mid-batch: the next event is its ActionsModified.
	played := OfType(g.Events, EventCardPlayed)[0]
	mustDo(t, g.EndPhase(0))
	wantCode(t, g.UndoTo(played.ID), ErrBadUndoTarget)
	wantCode(t, g.UndoTo(99999), ErrBadUndoTarget)
}

func TestUndoReplaysShufflesIdentically(t *testing.T) {
	// Force a mid-game shuffle, undo past it, redo the same command, and the
	// deck must come out in the same order.
	g := startScenario(t, nil,
		seatSetup{
			hand:    []string{"Smithy"},
			deck:    []string{"Copper"},
			discard: []string{"Gold", "Silver", "Estate", "Duchy", "Province"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mark := lastEvent(g).ID

	mustDo(t, g.PlayAction(0, "Smithy"))
	firstHand := handOf(g, 0)
	firstDeck := append([]string(nil), g.State.Players[0].Deck...)

	mustDo(t, g.UndoTo(mark))
	mustDo(t, g.PlayAction(0, "Smithy"))
	if !sameCards(firstHand, handOf(g, 0)) {
		t.Fatalf("redo drew a different hand: %v vs %v", firstHand, handOf(g, 0))
	}
	for i, c := range g.State.Players[0].Deck {
		if firstDeck[i] != c {
			t.Fatalf("redo produced a different deck order: %v vs %v", firstDeck, g.State.Players[0].Deck)
		}
	}
}

func TestUndoReplaysPartialDeckShuffle(t *testing.T) {
	// Sentry's reveal shuffles only the discard pile, leaving the last deck
	// card on top. Undo and redo must reproduce that exact order too.
	g := startScenario(t, deckTopKingdom,
		seatSetup{
			hand:    []string{"Sentry", "Copper"},
			deck:    []string{"Copper", "Copper"},
			discard: []string{"Gold", "Silver", "Estate"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mark := lastEvent(g).ID

	mustDo(t, g.PlayAction(0, "Sentry"))
	firstOptions := append([]string(nil), g.State.Pending.Options...)
	firstDeck := append([]string(nil), g.State.Players[0].Deck...)

	mustDo(t, g.UndoTo(mark))
	mustDo(t, g.PlayAction(0, "Sentry"))
	for i, c := range g.State.Pending.Options {
		if firstOptions[i] != c {
			t.Fatalf("redo revealed different cards: %v vs %v", firstOptions, g.State.Pending.Options)
		}
	}
	for i, c := range g.State.Players[0].Deck {
		if firstDeck[i] != c {
			t.Fatalf("redo produced a different deck order: %v vs %v", firstDeck, g.State.Players[0].Deck)
		}
	}
}

func TestUndoAfterGameOver(t *testing.T) {
	var sevenProvinces []string
	for i := 0; i < 7; i++ {
		sevenProvinces = append(sevenProvinces, "Province")
	}
	g := startScenario(t, nil,
		seatSetup{
			hand:    []string{"Copper", "Copper", "Copper", "Copper", "Copper", "Copper", "Copper", "Copper"},
			deck:    []string{"Copper", "Copper", "Copper", "Copper", "Copper"},
			discard: sevenProvinces,
		},
		seatSetup{hand: []string{"Estate"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.EndPhase(0))
	mustDo(t, g.PlayAllTreasures(0))
	mark := lastEvent(g).ID
	mustDo(t, g.BuyCard(0, "Province"))
	mustDo(t, g.EndPhase(0))
	if !g.State.GameOver {
		t.Fatal("setup: game should be over")
	}

	// The ending is as undoable as anything else.
	mustDo(t, g.UndoTo(mark))
	if g.State.GameOver {
		t.Fatal("game still over after undoing the final turn")
	}
	if g.State.Supply["Province"] != 1 {
		t.Fatalf("Province pile = %d after undo, want 1", g.State.Supply["Province"])
	}
	mustDo(t, g.BuyCard(0, "Province"))
}
