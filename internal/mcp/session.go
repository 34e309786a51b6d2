// Package mcp exposes a game over the Model Context Protocol so an AI agent
// can occupy one seat while a human plays the other over TCP.
package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdnet "net"
	"sync"

	"github.com/peterkuimelis/dbgx/internal/game"
	dbgxnet "github.com/peterkuimelis/dbgx/internal/net"
)

// GameSession holds the state of a single MCP game session: the game itself,
// the human player's TCP connection, and the event buffer drained into each
// tool response.
type GameSession struct {
	mu sync.Mutex

	game      *game.Game
	agentSeat int
	names     []string

	listener  stdnet.Listener
	humanConn stdnet.Conn
	humanEnc  *json.Encoder

	// Events the agent has not been shown yet, redacted for its seat.
	buffer []dbgxnet.EventView
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []dbgxnet.EventView  `json:"events"`
	State    *dbgxnet.StateView   `json:"state,omitempty"`
	Pending  *dbgxnet.PendingView `json:"pending,omitempty"`
	GameOver bool                 `json:"game_over"`
	Winner   int                  `json:"winner,omitempty"`
	Result   string               `json:"result,omitempty"`
	Port     string               `json:"port,omitempty"`
}

// NewGameSession starts a TCP listener, waits for the human player to connect
// via `dbgx join`, then starts the game with the agent at agentSeat.
func NewGameSession(agentName string, agentSeat int, kingdom []string, seed int64, port string) (*GameSession, error) {
	if agentSeat != 0 && agentSeat != 1 {
		return nil, fmt.Errorf("agent seat must be 0 or 1, got %d", agentSeat)
	}

	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	// Blocks until the human runs `dbgx join`.
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}
	var join dbgxnet.ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil || join.Type != "join" {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	humanName := join.Name
	if humanName == "" {
		humanName = "Human"
	}

	names := make([]string, 2)
	names[agentSeat] = agentName
	names[1-agentSeat] = humanName

	g := game.NewGame()
	if err := g.StartGame(names, kingdom, seed); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("start game: %w", err)
	}

	sess := &GameSession{
		game:      g,
		agentSeat: agentSeat,
		names:     names,
		listener:  ln,
		humanConn: conn,
		humanEnc:  json.NewEncoder(conn),
	}
	sess.buffer = dbgxnet.RedactEvents(g.Events, agentSeat, names)

	sess.sendHuman(dbgxnet.ServerMessage{Type: "welcome", Seat: 1 - agentSeat})
	sess.sendHuman(dbgxnet.ServerMessage{
		Type:    "update",
		Replace: true,
		Events:  dbgxnet.RedactEvents(g.Events, 1-agentSeat, names),
		State:   dbgxnet.BuildStateView(g.State, 1-agentSeat),
	})

	go sess.serveHuman()
	return sess, nil
}

// Dispatch applies one command for the agent's seat, buffers the resulting
// events, and pushes an update to the human.
func (s *GameSession) Dispatch(cmd game.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd.Player = s.agentSeat
	return s.dispatchLocked(cmd)
}

func (s *GameSession) dispatchLocked(cmd game.Command) error {
	events, err := s.game.Dispatch(cmd)
	if err != nil {
		return err
	}
	if cmd.Type == game.CmdRequestUndo {
		s.buffer = dbgxnet.RedactEvents(s.game.Events, s.agentSeat, s.names)
		s.sendHuman(dbgxnet.ServerMessage{
			Type:    "update",
			Replace: true,
			Events:  dbgxnet.RedactEvents(s.game.Events, 1-s.agentSeat, s.names),
			State:   dbgxnet.BuildStateView(s.game.State, 1-s.agentSeat),
		})
		return nil
	}
	s.buffer = append(s.buffer, dbgxnet.RedactEvents(events, s.agentSeat, s.names)...)
	s.sendHuman(dbgxnet.ServerMessage{
		Type:   "update",
		Events: dbgxnet.RedactEvents(events, 1-s.agentSeat, s.names),
		State:  dbgxnet.BuildStateView(s.game.State, 1-s.agentSeat),
	})
	if s.game.State.GameOver {
		s.sendHuman(dbgxnet.ServerMessage{
			Type:   "game_over",
			Winner: s.game.State.Winner,
			Scores: s.game.State.Scores,
			Result: s.result(),
		})
	}
	return nil
}

// serveHuman applies the human's commands as they arrive.
func (s *GameSession) serveHuman() {
	dec := json.NewDecoder(s.humanConn)
	for {
		var msg dbgxnet.ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, io.EOF) {
				s.sendHuman(dbgxnet.ServerMessage{Type: "error", Code: "read_failed", Error: err.Error()})
			}
			return
		}
		if msg.Type != "command" || msg.Command == nil {
			s.sendHuman(dbgxnet.ServerMessage{Type: "error", Code: "bad_message", Error: "expected a command"})
			continue
		}
		s.mu.Lock()
		cmd := *msg.Command
		cmd.Player = 1 - s.agentSeat
		if err := s.dispatchLocked(cmd); err != nil {
			s.sendHuman(dbgxnet.ServerMessage{
				Type:  "error",
				Code:  game.CodeOf(err).String(),
				Error: err.Error(),
			})
		}
		s.mu.Unlock()
	}
}

// Response drains the agent's event buffer into a ToolResponse with the
// current state and pending choice.
func (s *GameSession) Response() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.buffer
	s.buffer = nil
	if events == nil {
		events = []dbgxnet.EventView{}
	}
	st := s.game.State
	resp := &ToolResponse{
		Events:   events,
		State:    dbgxnet.BuildStateView(st, s.agentSeat),
		GameOver: st.GameOver,
	}
	if resp.State != nil {
		resp.Pending = resp.State.Pending
	}
	if st.GameOver {
		resp.Winner = st.Winner
		resp.Result = s.result()
	}
	return resp
}

// PendingOwner reports who the outstanding choice belongs to: "agent",
// "human", or "" when nothing is pending.
func (s *GameSession) PendingOwner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc := s.game.State.Pending
	if pc == nil {
		return ""
	}
	if pc.Player == s.agentSeat {
		return "agent"
	}
	return "human"
}

func (s *GameSession) result() string {
	st := s.game.State
	if !st.GameOver || st.Winner < 0 {
		return ""
	}
	return fmt.Sprintf("%s wins with %d points", s.names[st.Winner], st.Scores[st.Winner])
}

// Close tears down the TCP resources.
func (s *GameSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.humanConn != nil {
		s.humanConn.Close()
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

func (s *GameSession) sendHuman(msg dbgxnet.ServerMessage) {
	if s.humanEnc != nil {
		_ = s.humanEnc.Encode(msg)
	}
}
