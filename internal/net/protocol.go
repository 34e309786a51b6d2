package net

// Message types for the JSON protocol over TCP.

import (
	"github.com/peterkuimelis/dbgx/internal/game"
	gamelog "github.com/peterkuimelis/dbgx/internal/log"
)

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "join" or "command"

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "command"
	Command *game.Command `json:"command,omitempty"`
}

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "welcome", "update", "error", "game_over"

	// For "welcome"
	Seat int `json:"seat,omitempty"`

	// For "update": the new events (redacted for this seat) and the resulting
	// state view. An undo sends a full replacement log instead.
	Events  []EventView `json:"events,omitempty"`
	Replace bool        `json:"replace,omitempty"`
	State   *StateView  `json:"state,omitempty"`

	// For "error"
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`

	// For "game_over". Transcript is the full game rendered as a causality
	// tree; draws and shuffles format without card identities, so it is safe
	// to send to every seat.
	Winner     int    `json:"winner,omitempty"`
	Scores     []int  `json:"scores,omitempty"`
	Result     string `json:"result,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// EventView is one log entry as one seat is allowed to see it.
type EventView struct {
	ID       int    `json:"id"`
	CausedBy int    `json:"causedBy,omitempty"`
	Type     string `json:"type"`
	Player   int    `json:"player"`
	Card     string `json:"card,omitempty"`
	Details  string `json:"details"`
}

// StateView is the game state from one seat's perspective. Hidden zones are
// reduced to counts.
type StateView struct {
	Seat         int            `json:"seat"`
	Turn         int            `json:"turn"`
	ActivePlayer int            `json:"activePlayer"`
	Phase        string         `json:"phase"`
	Actions      int            `json:"actions"`
	Buys         int            `json:"buys"`
	Coins        int            `json:"coins"`
	Supply       map[string]int `json:"supply"`
	Kingdom      []string       `json:"kingdom"`
	Trash        []string       `json:"trash,omitempty"`

	Hand    []string     `json:"hand"`
	Players []PlayerView `json:"players"`

	Pending *PendingView `json:"pending,omitempty"`

	GameOver bool  `json:"gameOver,omitempty"`
	Winner   int   `json:"winner,omitempty"`
	Scores   []int `json:"scores,omitempty"`
}

// PlayerView shows one seat's public zones.
type PlayerView struct {
	Name        string   `json:"name"`
	HandCount   int      `json:"handCount"`
	DeckCount   int      `json:"deckCount"`
	DiscardTop  string   `json:"discardTop,omitempty"`
	DiscardSize int      `json:"discardSize"`
	InPlay      []string `json:"inPlay,omitempty"`
}

// PendingView describes the outstanding choice. Options are included only for
// the seat that owns the choice; everyone else just sees who is holding up the
// game.
type PendingView struct {
	Kind    string   `json:"kind"`
	Player  int      `json:"player"`
	Yours   bool     `json:"yours"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Card    string   `json:"card,omitempty"`
}

// BuildStateView creates a StateView from the perspective of the given seat.
func BuildStateView(st *game.GameState, seat int) *StateView {
	sv := &StateView{
		Seat:         seat,
		Turn:         st.Turn,
		ActivePlayer: st.ActivePlayer,
		Phase:        st.Phase.String(),
		Actions:      st.Actions,
		Buys:         st.Buys,
		Coins:        st.Coins,
		Supply:       st.Supply,
		Kingdom:      st.Kingdom,
		Trash:        st.Trash,
		GameOver:     st.GameOver,
		Winner:       st.Winner,
		Scores:       st.Scores,
	}
	for i, p := range st.Players {
		pv := PlayerView{
			Name:        p.Name,
			HandCount:   p.HandCount(),
			DeckCount:   p.DeckCount(),
			DiscardSize: len(p.Discard),
			InPlay:      p.InPlay,
		}
		if len(p.Discard) > 0 {
			pv.DiscardTop = p.Discard[len(p.Discard)-1]
		}
		sv.Players = append(sv.Players, pv)
		if i == seat {
			sv.Hand = append([]string(nil), p.Hand...)
		}
	}
	if pc := st.Pending; pc != nil {
		pv := &PendingView{
			Kind:   pc.Kind.String(),
			Player: pc.Player,
			Yours:  pc.Player == seat,
			Card:   pc.Card,
		}
		if pc.Player == seat {
			pv.Prompt = pc.Prompt
			pv.Min = pc.Min
			pv.Max = pc.Max
			if pc.Kind == game.ChoiceReaction {
				pv.Options = pc.Reactions
				pv.Prompt = "Reveal a Reaction to block " + pc.TriggerCard + "?"
			} else {
				pv.Options = pc.Options
			}
		}
		sv.Pending = pv
	}
	return sv
}

// RedactEvent renders one event for a given seat, stripping information that
// seat is not entitled to: other players' drawn cards and every deck order.
func RedactEvent(ev game.Event, seat int, names []string) EventView {
	view := EventView{
		ID:       ev.ID,
		CausedBy: ev.CausedBy,
		Type:     ev.Type.String(),
		Player:   ev.Player,
		Card:     ev.Card,
		Details:  gamelog.FormatEvent(ev, names),
	}
	switch ev.Type {
	case game.EventCardDrawn:
		if ev.Player != seat {
			view.Card = ""
		}
	case game.EventDeckShuffled:
		view.Card = ""
	case game.EventDecisionRequired, game.EventReactionOpportunity:
		// The choice payload travels in the state view, owner only.
		view.Card = ""
	}
	return view
}

// RedactEvents renders a batch for one seat.
func RedactEvents(events []game.Event, seat int, names []string) []EventView {
	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		out = append(out, RedactEvent(ev, seat, names))
	}
	return out
}
