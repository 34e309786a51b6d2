package game

import "testing"

var bigKingdom = []string{"Artisan", "Bandit", "Bureaucrat", "Chapel", "Festival",
	"Gardens", "Sentry", "Throne Room", "Witch", "Workshop"}

var deckTopKingdom = []string{"Artisan", "Bureaucrat", "Council Room", "Festival",
	"Harbinger", "Laboratory", "Moneylender", "Sentry", "Village", "Witch"}

func TestCellarDiscardAndRedraw(t *testing.T) {
	// Discard three Estates, draw the three Golds waiting on top of the deck.
	g := startScenario(t, nil,
		seatSetup{
			hand: []string{"Cellar", "Estate", "Estate", "Estate", "Copper", "Silver"},
			deck: []string{"Gold", "Gold", "Gold"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Cellar"))
	pc := g.State.Pending
	if pc == nil || pc.Stage != StageCellarDiscard {
		t.Fatalf("pending = %+v, want a Cellar discard decision", pc)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Estate", "Estate", "Estate"}))

	if !sameCards(handOf(g, 0), []string{"Copper", "Silver", "Gold", "Gold", "Gold"}) {
		t.Fatalf("hand after Cellar = %v", handOf(g, 0))
	}
	if g.State.Actions != 1 { // 1 - 1 to play + 1 from Cellar
		t.Fatalf("actions = %d, want 1", g.State.Actions)
	}
	if g.State.Pending != nil {
		t.Fatal("decision not cleared")
	}

	// The discards and draws hang off the player's answer.
	resolved := OfType(g.Events, EventDecisionResolved)[0]
	for _, ev := range OfType(g.Events, EventCardDiscarded) {
		if ev.CausedBy != resolved.ID {
			t.Errorf("discard %d caused by %d, want %d", ev.ID, ev.CausedBy, resolved.ID)
		}
	}
	drawn := 0
	for _, ev := range OfType(g.Events, EventCardDrawn) {
		if ev.CausedBy == resolved.ID {
			drawn++
			if ev.Card != "Gold" {
				t.Errorf("drew %s, want Gold", ev.Card)
			}
		}
	}
	if drawn != 3 {
		t.Fatalf("drew %d cards from the decision, want 3", drawn)
	}
}

func TestCellarSkipDiscardsNothing(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Cellar", "Estate"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	before := len(g.Events)
	mustDo(t, g.PlayAction(0, "Cellar"))
	mustDo(t, g.SkipDecision(0))

	if g.State.Pending != nil {
		t.Fatal("decision not cleared by skip")
	}
	if !sameCards(handOf(g, 0), []string{"Estate"}) {
		t.Fatalf("hand = %v, want [Estate]", handOf(g, 0))
	}
	if countEventsSince(g, before, EventCardDiscarded) != 0 || countEventsSince(g, before, EventCardDrawn) != 0 {
		t.Fatal("skip still moved cards")
	}
}

func TestChapelTrashesUpToFour(t *testing.T) {
	g := startScenario(t, bigKingdom,
		seatSetup{hand: []string{"Chapel", "Estate", "Estate", "Copper", "Copper"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Chapel"))
	mustDo(t, g.SubmitDecision(0, []string{"Estate", "Estate", "Copper"}))

	if !sameCards(g.State.Trash, []string{"Estate", "Estate", "Copper"}) {
		t.Fatalf("trash = %v", g.State.Trash)
	}
	if !sameCards(handOf(g, 0), []string{"Copper"}) {
		t.Fatalf("hand = %v, want [Copper]", handOf(g, 0))
	}
}

func TestHarbingerTopdecksFromDiscard(t *testing.T) {
	g := startScenario(t, deckTopKingdom,
		seatSetup{
			hand:    []string{"Harbinger"},
			deck:    []string{"Copper", "Estate"},
			discard: []string{"Silver", "Gold"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Harbinger")) // +1 Card draws the Copper
	pc := g.State.Pending
	if pc == nil || pc.Stage != StageHarbingerTopdeck {
		t.Fatalf("pending = %+v, want a Harbinger topdeck decision", pc)
	}
	if !sameCards(pc.Options, []string{"Silver", "Gold"}) {
		t.Fatalf("options = %v, want the discard pile", pc.Options)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Gold"}))

	deck := g.State.Players[0].Deck
	if deck[len(deck)-1] != "Gold" {
		t.Fatalf("deck top = %s, want Gold", deck[len(deck)-1])
	}
	if !sameCards(g.State.Players[0].Discard, []string{"Silver"}) {
		t.Fatalf("discard = %v, want [Silver]", g.State.Players[0].Discard)
	}
}

func TestMoneylenderTradesCopperForCoins(t *testing.T) {
	g := startScenario(t, deckTopKingdom,
		seatSetup{hand: []string{"Moneylender", "Copper", "Copper"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Moneylender"))
	mustDo(t, g.SubmitDecision(0, []string{"Copper"}))

	if g.State.Coins != 3 {
		t.Fatalf("coins = %d, want 3", g.State.Coins)
	}
	if !sameCards(g.State.Trash, []string{"Copper"}) {
		t.Fatalf("trash = %v, want [Copper]", g.State.Trash)
	}
	if !sameCards(handOf(g, 0), []string{"Copper"}) {
		t.Fatalf("hand = %v, want [Copper]", handOf(g, 0))
	}
}

func TestMoneylenderWithoutCopperFizzles(t *testing.T) {
	g := startScenario(t, deckTopKingdom,
		seatSetup{hand: []string{"Moneylender", "Silver"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Moneylender"))
	if g.State.Pending != nil {
		t.Fatal("no Copper in hand, yet a decision is pending")
	}
	if g.State.Coins != 0 {
		t.Fatalf("coins = %d, want 0", g.State.Coins)
	}
}

func TestWorkshopGainsUnderCeiling(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Workshop"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Workshop"))
	pc := g.State.Pending
	if pc == nil || pc.Stage != StageWorkshopGain {
		t.Fatalf("pending = %+v, want a Workshop gain decision", pc)
	}
	for _, opt := range pc.Options {
		if MustCard(opt).Cost > 4 {
			t.Errorf("option %s costs more than $4", opt)
		}
	}
	mustDo(t, g.SubmitDecision(0, []string{"Smithy"}))

	if !sameCards(g.State.Players[0].Discard, []string{"Smithy"}) {
		t.Fatalf("discard = %v, want [Smithy]", g.State.Players[0].Discard)
	}
	if g.State.Supply["Smithy"] != 9 {
		t.Fatalf("Smithy pile = %d, want 9", g.State.Supply["Smithy"])
	}
}

func TestRemodelTrashThenGain(t *testing.T) {
	// Trash an Estate ($2), gain a card costing up to $4.
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Remodel", "Estate", "Gold"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Remodel"))
	mustDo(t, g.SubmitDecision(0, []string{"Estate"}))

	pc := g.State.Pending
	if pc == nil || pc.Stage != StageRemodelGain {
		t.Fatalf("pending = %+v, want a Remodel gain decision", pc)
	}
	for _, opt := range pc.Options {
		if MustCard(opt).Cost > 4 {
			t.Errorf("option %s exceeds the $4 ceiling", opt)
		}
	}
	wantCode(t, g.SubmitDecision(0, []string{"Duchy"}), ErrInvalidSelection)
	mustDo(t, g.SubmitDecision(0, []string{"Smithy"}))

	if !sameCards(g.State.Trash, []string{"Estate"}) {
		t.Fatalf("trash = %v, want [Estate]", g.State.Trash)
	}
	if !sameCards(g.State.Players[0].Discard, []string{"Smithy"}) {
		t.Fatalf("discard = %v, want [Smithy]", g.State.Players[0].Discard)
	}
}

func TestMineUpgradesTreasureIntoHand(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Mine", "Silver", "Estate"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Mine"))
	pc := g.State.Pending
	if !sameCards(pc.Options, []string{"Silver"}) {
		t.Fatalf("trash options = %v, want only the treasures in hand", pc.Options)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Silver"}))

	pc = g.State.Pending
	if pc == nil || pc.Stage != StageMineGain {
		t.Fatalf("pending = %+v, want a Mine gain decision", pc)
	}
	// Ceiling $6, treasures only.
	if !sameCards(pc.Options, []string{"Copper", "Silver", "Gold"}) {
		t.Fatalf("gain options = %v", pc.Options)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Gold"}))

	if !g.State.Players[0].HandHas("Gold") {
		t.Fatal("gained Gold is not in hand")
	}
	if !sameCards(g.State.Trash, []string{"Silver"}) {
		t.Fatalf("trash = %v, want [Silver]", g.State.Trash)
	}
}

func TestMineSkipEndsEffect(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Mine", "Silver"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Mine"))
	mustDo(t, g.SkipDecision(0))
	if g.State.Pending != nil {
		t.Fatal("skipping the trash should end the whole effect")
	}
	if len(g.State.Trash) != 0 {
		t.Fatalf("trash = %v, want empty", g.State.Trash)
	}
}

func TestArtisanGainThenTopdeck(t *testing.T) {
	g := startScenario(t, bigKingdom,
		seatSetup{hand: []string{"Artisan"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Artisan"))
	pc := g.State.Pending
	if pc == nil || pc.Stage != StageArtisanGain {
		t.Fatalf("pending = %+v, want an Artisan gain decision", pc)
	}
	for _, opt := range pc.Options {
		if MustCard(opt).Cost > 5 {
			t.Errorf("option %s exceeds the $5 ceiling", opt)
		}
	}
	mustDo(t, g.SubmitDecision(0, []string{"Duchy"}))

	// The gained Duchy landed in hand; now a card must go back on the deck.
	pc = g.State.Pending
	if pc == nil || pc.Stage != StageArtisanTopdeck {
		t.Fatalf("pending = %+v, want an Artisan topdeck decision", pc)
	}
	if pc.Min != 1 {
		t.Fatal("the topdeck is not optional")
	}
	mustDo(t, g.SubmitDecision(0, []string{"Duchy"}))

	deck := g.State.Players[0].Deck
	if deck[len(deck)-1] != "Duchy" {
		t.Fatalf("deck top = %s, want Duchy", deck[len(deck)-1])
	}
	if len(handOf(g, 0)) != 0 {
		t.Fatalf("hand = %v, want empty", handOf(g, 0))
	}
}

func TestSentryTrashAndDiscardRouting(t *testing.T) {
	// Draw one, look at the next two, trash the Curse, discard the Estate.
	g := startScenario(t, bigKingdom,
		seatSetup{hand: []string{"Sentry"}, deck: []string{"Copper", "Curse", "Estate", "Gold", "Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Sentry"))

	pc := g.State.Pending
	if pc == nil || pc.Stage != StageSentryTrash {
		t.Fatalf("pending = %+v, want a Sentry trash decision", pc)
	}
	if !sameCards(pc.Options, []string{"Curse", "Estate"}) {
		t.Fatalf("revealed = %v, want the two cards under the drawn one", pc.Options)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Curse"}))

	pc = g.State.Pending
	if pc == nil || pc.Stage != StageSentryDiscard {
		t.Fatalf("pending = %+v, want a Sentry discard decision", pc)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Estate"}))

	// Nothing left to order.
	if g.State.Pending != nil {
		t.Fatalf("pending = %+v, want none", g.State.Pending)
	}
	p := g.State.Players[0]
	if !sameCards(p.Deck, []string{"Gold", "Gold"}) {
		t.Fatalf("deck = %v, want two Golds", p.Deck)
	}
	if !sameCards(g.State.Trash, []string{"Curse"}) || !sameCards(p.Discard, []string{"Estate"}) {
		t.Fatalf("trash = %v discard = %v", g.State.Trash, p.Discard)
	}
}

func TestSentryOrderPutsChosenCardOnTop(t *testing.T) {
	g := startScenario(t, bigKingdom,
		seatSetup{hand: []string{"Sentry"}, deck: []string{"Copper", "Silver", "Estate", "Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Sentry"))
	mustDo(t, g.SubmitDecision(0, nil)) // trash nothing
	mustDo(t, g.SubmitDecision(0, nil)) // discard nothing

	pc := g.State.Pending
	if pc == nil || pc.Stage != StageSentryOrder {
		t.Fatalf("pending = %+v, want a Sentry order decision", pc)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Estate"}))

	deck := g.State.Players[0].Deck
	if deck[len(deck)-1] != "Estate" || deck[len(deck)-2] != "Silver" {
		t.Fatalf("deck order = %v, want Estate over Silver", deck)
	}
}

func TestThroneRoomDoublesGrants(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{
			hand: []string{"Throne Room", "Smithy"},
			deck: []string{"Copper", "Copper", "Copper", "Estate", "Estate", "Estate", "Gold"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	before := len(g.Events)
	mustDo(t, g.PlayAction(0, "Throne Room"))
	mustDo(t, g.SubmitDecision(0, []string{"Smithy"}))

	// Smithy's +3 Cards fires once per execution, twice total.
	if n := countEventsSince(g, before, EventCardDrawn); n != 6 {
		t.Fatalf("drew %d cards, want 6", n)
	}
	if len(handOf(g, 0)) != 6 {
		t.Fatalf("hand size = %d, want 6", len(handOf(g, 0)))
	}
	// Only the Throne Room play itself cost an action.
	if n := countEventsSince(g, before, EventActionsModified); n != 1 {
		t.Fatalf("ActionsModified events = %d, want 1", n)
	}
	if g.State.Actions != 0 {
		t.Fatalf("actions = %d, want 0", g.State.Actions)
	}
}

func TestThroneRoomReplaysMultiStageEffect(t *testing.T) {
	// Remodel under Throne Room resolves its two decisions, then starts over
	// for the second execution.
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Throne Room", "Remodel", "Estate", "Estate"}, deck: []string{"Copper"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Throne Room"))
	mustDo(t, g.SubmitDecision(0, []string{"Remodel"}))
	mustDo(t, g.SubmitDecision(0, []string{"Estate"})) // first trash
	mustDo(t, g.SubmitDecision(0, []string{"Smithy"})) // first gain

	pc := g.State.Pending
	if pc == nil || pc.Stage != StageRemodelTrash {
		t.Fatalf("pending = %+v, want the second Remodel trash", pc)
	}
	mustDo(t, g.SubmitDecision(0, []string{"Estate"}))
	mustDo(t, g.SubmitDecision(0, []string{"Village"}))

	if g.State.Pending != nil {
		t.Fatal("effect chain did not finish")
	}
	if !sameCards(g.State.Trash, []string{"Estate", "Estate"}) {
		t.Fatalf("trash = %v, want both Estates", g.State.Trash)
	}
	if !sameCards(g.State.Players[0].Discard, []string{"Smithy", "Village"}) {
		t.Fatalf("discard = %v", g.State.Players[0].Discard)
	}
	// Remodel itself was played once; the replay reuses the same card.
	n := 0
	for _, ev := range OfType(g.Events, EventCardPlayed) {
		if ev.Card == "Remodel" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("Remodel CardPlayed events = %d, want 1", n)
	}
}

func TestThroneRoomWithoutActionsFizzles(t *testing.T) {
	g := startScenario(t, nil,
		seatSetup{hand: []string{"Throne Room", "Copper"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Throne Room"))
	if g.State.Pending != nil {
		t.Fatal("no action in hand, yet a decision is pending")
	}
	mustDo(t, g.EndPhase(0))
}

func TestCouncilRoomDrawsForEveryone(t *testing.T) {
	g := startScenario(t, deckTopKingdom,
		seatSetup{hand: []string{"Council Room"}, deck: []string{"Copper", "Copper", "Copper", "Copper", "Copper"}},
		seatSetup{hand: []string{"Estate"}, deck: []string{"Gold"}},
		seatSetup{hand: []string{"Estate"}, deck: []string{"Gold"}},
	)
	mustDo(t, g.PlayAction(0, "Council Room"))

	if len(handOf(g, 0)) != 4 {
		t.Fatalf("own hand = %d cards, want 4", len(handOf(g, 0)))
	}
	if g.State.Buys != 2 {
		t.Fatalf("buys = %d, want 2", g.State.Buys)
	}
	for seat := 1; seat <= 2; seat++ {
		if !sameCards(handOf(g, seat), []string{"Estate", "Gold"}) {
			t.Errorf("seat %d hand = %v, want [Estate Gold]", seat, handOf(g, seat))
		}
	}
}

func TestSimpleGrantChain(t *testing.T) {
	g := startScenario(t, deckTopKingdom,
		seatSetup{
			hand: []string{"Village", "Market", "Festival", "Laboratory"},
			deck: []string{"Copper", "Copper", "Copper", "Copper"},
		},
		seatSetup{hand: []string{"Copper"}, deck: []string{"Copper"}},
	)
	mustDo(t, g.PlayAction(0, "Village"))    // +1 Card +2 Actions
	mustDo(t, g.PlayAction(0, "Market"))     // +1 Card +1 Action +1 Buy +$1
	mustDo(t, g.PlayAction(0, "Festival"))   // +2 Actions +1 Buy +$2
	mustDo(t, g.PlayAction(0, "Laboratory")) // +2 Cards +1 Action

	st := g.State
	if st.Actions != 3 || st.Buys != 3 || st.Coins != 3 {
		t.Fatalf("counters = %d/%d/%d, want 3/3/3", st.Actions, st.Buys, st.Coins)
	}
	if len(handOf(g, 0)) != 4 {
		t.Fatalf("hand size = %d, want 4", len(handOf(g, 0)))
	}
}

func TestGardensScoresPerTenCards(t *testing.T) {
	twentyCards := []string{"Gardens"}
	for i := 0; i < 19; i++ {
		twentyCards = append(twentyCards, "Copper")
	}
	// Score is a pure function of owned cards.
	st := &GameState{Players: []*PlayerState{{Discard: twentyCards}}}
	if got := st.Score(0); got != 2 {
		t.Fatalf("score = %d, want 2 (20 cards, one Gardens)", got)
	}
}
