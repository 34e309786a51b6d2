package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/dbgx/internal/game"
)

// playerName returns the seat's name, or "P1".."P4" when names are missing.
func playerName(names []string, p int) string {
	if p >= 0 && p < len(names) && names[p] != "" {
		return names[p]
	}
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e game.Event, names []string) string {
	who := playerName(names, e.Player)
	switch e.Type {
	case game.EventGameStarted:
		return fmt.Sprintf("Game started: %s", strings.Join(e.Players, ", "))
	case game.EventTurnStarted:
		return fmt.Sprintf("=== Turn %d (%s) ===", e.Turn, who)
	case game.EventPhaseChanged:
		return fmt.Sprintf("Phase → %s", e.Phase)
	case game.EventTurnEnded:
		return fmt.Sprintf("%s ends their turn", who)
	case game.EventDeckShuffled:
		return fmt.Sprintf("%s shuffles their deck", who)
	case game.EventCardDrawn:
		return fmt.Sprintf("%s draws a card", who)
	case game.EventCardPlayed:
		return fmt.Sprintf("%s plays %s", who, e.Card)
	case game.EventTreasurePlayed:
		return fmt.Sprintf("%s plays %s", who, e.Card)
	case game.EventTreasureUnplayed:
		return fmt.Sprintf("%s takes back %s", who, e.Card)
	case game.EventCardBought:
		return fmt.Sprintf("%s buys %s", who, e.Card)
	case game.EventCardGained:
		switch e.To {
		case game.ZoneHand:
			return fmt.Sprintf("%s gains %s to their hand", who, e.Card)
		case game.ZoneDeck:
			return fmt.Sprintf("%s gains %s onto their deck", who, e.Card)
		default:
			return fmt.Sprintf("%s gains %s", who, e.Card)
		}
	case game.EventCardDiscarded:
		return fmt.Sprintf("%s discards %s", who, e.Card)
	case game.EventCardTrashed:
		return fmt.Sprintf("%s trashes %s", who, e.Card)
	case game.EventCardTopdecked:
		return fmt.Sprintf("%s puts %s onto their deck", who, e.Card)
	case game.EventCardRevealed:
		if len(e.Cards) > 0 {
			return fmt.Sprintf("%s reveals %s", who, strings.Join(e.Cards, ", "))
		}
		return fmt.Sprintf("%s reveals %s", who, e.Card)
	case game.EventActionsModified:
		return fmt.Sprintf("%s: %+d Actions", who, e.Delta)
	case game.EventBuysModified:
		return fmt.Sprintf("%s: %+d Buys", who, e.Delta)
	case game.EventCoinsModified:
		return fmt.Sprintf("%s: %+d$", who, e.Delta)
	case game.EventCostModified:
		return fmt.Sprintf("Costs change by %+d", e.Delta)
	case game.EventDecisionRequired:
		if e.Choice != nil {
			return fmt.Sprintf("%s must decide: %s", who, e.Choice.Prompt)
		}
		return fmt.Sprintf("%s must decide", who)
	case game.EventDecisionResolved:
		if len(e.Cards) == 0 {
			return fmt.Sprintf("%s chooses nothing", who)
		}
		return fmt.Sprintf("%s chooses %s", who, strings.Join(e.Cards, ", "))
	case game.EventDecisionSkipped:
		return fmt.Sprintf("%s declines", who)
	case game.EventReactionOpportunity:
		return fmt.Sprintf("%s may react", who)
	case game.EventReactionRevealed:
		return fmt.Sprintf("%s reveals %s!", who, e.Card)
	case game.EventReactionDeclined:
		return fmt.Sprintf("%s does not react", who)
	case game.EventAttackDeclared:
		return fmt.Sprintf("%s attacks with %s", who, e.Card)
	case game.EventAttackResolved:
		if e.Blocked {
			return fmt.Sprintf("%s is unaffected by %s", who, e.Card)
		}
		return fmt.Sprintf("%s is hit by %s", who, e.Card)
	case game.EventGameEnded:
		return fmt.Sprintf("%s wins! (scores: %v)", playerName(names, e.Winner), e.Scores)
	default:
		return e.Type.String()
	}
}

// WriteTranscript writes the filtered causality tree as indented lines.
func WriteTranscript(w io.Writer, events []game.Event, names []string, visible Filter) {
	for _, n := range BuildTree(events, visible) {
		writeNode(w, n, names, 0)
	}
}

func writeNode(w io.Writer, n *Node, names []string, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), FormatEvent(n.Event, names))
	for _, c := range n.Children {
		writeNode(w, c, names, depth+1)
	}
}

// Transcript returns the formatted transcript as a string.
func Transcript(events []game.Event, names []string, visible Filter) string {
	var sb strings.Builder
	WriteTranscript(&sb, events, names, visible)
	return sb.String()
}
