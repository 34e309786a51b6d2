// Package log renders a game's event list as a human-readable transcript.
// Events nest under their causal parent, so a played card's draws, gains, and
// decisions indent beneath the play that produced them.
package log

import "github.com/peterkuimelis/dbgx/internal/game"

// Node is one rendered event plus the visible events it caused.
type Node struct {
	Event    game.Event
	Children []*Node
}

// Filter decides whether an event appears in the transcript. A nil Filter
// shows everything.
type Filter func(game.Event) bool

// BuildTree arranges events into a forest by causality. An event whose cause
// is filtered out is adopted by its nearest visible ancestor, so hiding noisy
// intermediates never orphans their children.
func BuildTree(events []game.Event, visible Filter) []*Node {
	nodes := make(map[int]*Node, len(events))
	byID := make(map[int]*game.Event, len(events))
	var roots []*Node
	for i := range events {
		ev := events[i]
		byID[ev.ID] = &events[i]
		if visible != nil && !visible(ev) {
			continue
		}
		n := &Node{Event: ev}
		nodes[ev.ID] = n
		if parent := nearestVisible(ev.CausedBy, nodes, byID); parent != nil {
			parent.Children = append(parent.Children, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots
}

// nearestVisible walks the cause chain upward until it hits a rendered node.
func nearestVisible(cause int, nodes map[int]*Node, byID map[int]*game.Event) *Node {
	for cause != 0 {
		if n, ok := nodes[cause]; ok {
			return n
		}
		ev, ok := byID[cause]
		if !ok {
			return nil
		}
		cause = ev.CausedBy
	}
	return nil
}

// DefaultFilter hides bookkeeping events that only exist to drive the
// projection: counter deltas, phase markers, and the choice round trips.
func DefaultFilter(ev game.Event) bool {
	switch ev.Type {
	case game.EventActionsModified, game.EventBuysModified, game.EventCoinsModified,
		game.EventCostModified, game.EventPhaseChanged,
		game.EventDecisionRequired, game.EventReactionOpportunity:
		return false
	}
	return true
}
