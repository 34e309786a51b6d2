package game

import "fmt"

// Project folds an ordered event list into a GameState. It is pure and total
// on well-formed logs: any prefix of a valid log yields a valid intermediate
// state. Shuffles are never performed here; a DeckShuffled event always
// carries the complete new deck order, so replay is deterministic.
//
// Malformed references (e.g. discarding a card that is not in the named zone)
// are producer bugs, not runtime conditions, and panic.
func Project(events []Event) *GameState {
	st := &GameState{Winner: -1}
	for i := range events {
		apply(st, &events[i])
	}
	return st
}

// apply is the one application rule per event type. The engine uses the same
// function for incremental appends, which is what makes projection
// associative over concatenation.
func apply(st *GameState, ev *Event) {
	switch ev.Type {
	case EventGameStarted:
		st.Players = nil
		for _, name := range ev.Players {
			st.Players = append(st.Players, &PlayerState{Name: name})
		}
		st.Kingdom = append([]string(nil), ev.Kingdom...)
		st.Supply = initialSupply(len(ev.Players), ev.Kingdom)
		st.Winner = -1

	case EventTurnStarted:
		st.ActivePlayer = ev.Player
		st.Turn = ev.Turn
		st.Phase = PhaseAction
		st.Actions = 1
		st.Buys = 1
		st.Coins = 0
		st.CostDelta = 0

	case EventPhaseChanged:
		st.Phase = ev.Phase

	case EventTurnEnded:
		// Cleanup is recorded by the discard/draw events around this marker.

	case EventDeckShuffled:
		p := st.Players[ev.Player]
		p.Deck = append([]string(nil), ev.Cards...)
		p.Discard = nil

	case EventCardDrawn:
		p := st.Players[ev.Player]
		if len(p.Deck) == 0 {
			panicf("draw from empty deck: %+v", ev)
		}
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.Hand = append(p.Hand, ev.Card)

	case EventCardPlayed, EventTreasurePlayed:
		p := st.Players[ev.Player]
		p.Hand = removeFirst(p.Hand, ev.Card)
		p.InPlay = append(p.InPlay, ev.Card)
		p.InPlayIDs = append(p.InPlayIDs, ev.ID)

	case EventTreasureUnplayed:
		p := st.Players[ev.Player]
		i := lastIndex(p.InPlay, ev.Card)
		if i < 0 {
			panicf("unplay a card not in play: %+v", ev)
		}
		p.InPlay = append(p.InPlay[:i], p.InPlay[i+1:]...)
		p.InPlayIDs = append(p.InPlayIDs[:i], p.InPlayIDs[i+1:]...)
		p.Hand = append(p.Hand, ev.Card)

	case EventCardBought:
		// Marker; the zone move is the CardGained event it causes.

	case EventCardGained:
		if st.Supply[ev.Card] <= 0 {
			panicf("gain from empty pile: %+v", ev)
		}
		st.Supply[ev.Card]--
		p := st.Players[ev.Player]
		switch ev.To {
		case ZoneHand:
			p.Hand = append(p.Hand, ev.Card)
		case ZoneDeck:
			p.Deck = append(p.Deck, ev.Card)
		default:
			p.Discard = append(p.Discard, ev.Card)
		}

	case EventCardDiscarded:
		p := st.Players[ev.Player]
		takeFrom(p, ev)
		p.Discard = append(p.Discard, ev.Card)

	case EventCardTrashed:
		p := st.Players[ev.Player]
		takeFrom(p, ev)
		st.Trash = append(st.Trash, ev.Card)

	case EventCardTopdecked:
		p := st.Players[ev.Player]
		takeFrom(p, ev)
		p.Deck = append(p.Deck, ev.Card)

	case EventCardRevealed:
		// Information only; the card does not move.

	case EventActionsModified:
		st.Actions += ev.Delta

	case EventBuysModified:
		st.Buys += ev.Delta

	case EventCoinsModified:
		st.Coins += ev.Delta

	case EventCostModified:
		st.CostDelta += ev.Delta

	case EventDecisionRequired, EventReactionOpportunity:
		st.Pending = ev.Choice.clone()
		st.Pending.EventID = ev.ID

	case EventDecisionResolved, EventDecisionSkipped, EventReactionRevealed, EventReactionDeclined:
		st.Pending = nil

	case EventAttackDeclared, EventAttackResolved:
		// Markers for the causality log; zone moves are separate events.

	case EventGameEnded:
		st.GameOver = true
		st.Winner = ev.Winner
		st.Scores = append([]int(nil), ev.Scores...)

	default:
		panicf("unknown event type %d", ev.Type)
	}
}

// takeFrom removes ev.Card from the zone named by ev.From.
func takeFrom(p *PlayerState, ev *Event) {
	switch ev.From {
	case ZoneInPlay:
		i := lastIndex(p.InPlay, ev.Card)
		if i < 0 {
			panicf("card not in play: %+v", ev)
		}
		p.InPlay = append(p.InPlay[:i], p.InPlay[i+1:]...)
		p.InPlayIDs = append(p.InPlayIDs[:i], p.InPlayIDs[i+1:]...)
	case ZoneDeck:
		// Producers only ever reference cards at or near the top.
		i := lastIndex(p.Deck, ev.Card)
		if i < 0 {
			panicf("card not in deck: %+v", ev)
		}
		p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
	case ZoneDiscard:
		i := lastIndex(p.Discard, ev.Card)
		if i < 0 {
			panicf("card not in discard: %+v", ev)
		}
		p.Discard = append(p.Discard[:i], p.Discard[i+1:]...)
	default:
		p.Hand = removeFirst(p.Hand, ev.Card)
	}
}

// initialSupply builds the supply piles for the given player count and
// kingdom selection.
func initialSupply(players int, kingdom []string) map[string]int {
	victory := 12
	if players <= 2 {
		victory = 8
	}
	supply := map[string]int{
		"Copper":   60 - 7*players,
		"Silver":   40,
		"Gold":     30,
		"Estate":   victory,
		"Duchy":    victory,
		"Province": victory,
		"Curse":    10 * (players - 1),
	}
	for _, name := range kingdom {
		if MustCard(name).Types.Is(TypeVictory) {
			supply[name] = victory
		} else {
			supply[name] = 10
		}
	}
	return supply
}

func removeFirst(s []string, card string) []string {
	for i, c := range s {
		if c == card {
			return append(s[:i], s[i+1:]...)
		}
	}
	panicf("card %q not present", card)
	return nil
}

func lastIndex(s []string, card string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == card {
			return i
		}
	}
	return -1
}

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("game: malformed event log: "+format, args...))
}
