package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/dbgx/internal/game"
	gamelog "github.com/peterkuimelis/dbgx/internal/log"
)

// Server hosts one game over TCP. The host occupies seat 0 through an
// in-process pipe; each remote player takes the next seat as they join. All
// commands funnel through a single loop, so the Game itself is never touched
// concurrently.
type Server struct {
	Port     string
	Seats    int // total player count including the host
	HostName string
	Kingdom  []string
	Seed     int64
	Logger   *zap.Logger
}

type seat struct {
	index int
	name  string
	conn  net.Conn
	enc   *json.Encoder
	mu    sync.Mutex
}

func (s *seat) send(msg ServerMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(msg)
}

type seatCommand struct {
	seat int
	cmd  game.Command
}

// Run listens, waits for every remote seat to join, starts the game, and
// serves commands until the connection set drains or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Seats < 2 || s.Seats > 4 {
		return fmt.Errorf("need 2-4 seats, got %d", s.Seats)
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	s.Logger.Info("listening", zap.String("port", s.Port), zap.Int("seats", s.Seats))

	hostConn, hostServerConn := net.Pipe()
	seats := []*seat{{index: 0, name: s.HostName, conn: hostServerConn, enc: json.NewEncoder(hostServerConn)}}

	fmt.Printf("Waiting for %d opponent(s) on port %s...\n", s.Seats-1, s.Port)
	for len(seats) < s.Seats {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		var join ClientMessage
		if err := json.NewDecoder(conn).Decode(&join); err != nil || join.Type != "join" {
			s.Logger.Warn("bad handshake", zap.String("remote", conn.RemoteAddr().String()))
			conn.Close()
			continue
		}
		name := join.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", len(seats)+1)
		}
		st := &seat{index: len(seats), name: name, conn: conn, enc: json.NewEncoder(conn)}
		seats = append(seats, st)
		s.Logger.Info("seat joined", zap.Int("seat", st.index), zap.String("name", name),
			zap.String("remote", conn.RemoteAddr().String()))
		fmt.Printf("%s joined (seat %d)\n", name, st.index)
	}

	names := make([]string, len(seats))
	for i, st := range seats {
		names[i] = st.name
	}

	g := game.NewGame()
	if err := g.StartGame(names, s.Kingdom, s.Seed); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	s.Logger.Info("game started", zap.Strings("players", names))

	cmds := make(chan seatCommand)
	var wg sync.WaitGroup
	for _, st := range seats {
		st.send(ServerMessage{Type: "welcome", Seat: st.index})
		wg.Add(1)
		go func(st *seat) {
			defer wg.Done()
			s.readSeat(ctx, st, cmds)
		}(st)
	}
	go func() {
		wg.Wait()
		close(cmds)
	}()

	// Host REPL over the pipe.
	go func() {
		c := &Client{conn: hostConn, name: s.HostName}
		if err := c.Run(ctx); err != nil && !errors.Is(err, io.EOF) {
			s.Logger.Warn("host repl exited", zap.Error(err))
		}
	}()

	s.broadcastReplace(g, seats, names)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sc, ok := <-cmds:
			if !ok {
				return nil
			}
			s.handle(g, seats, names, sc)
		}
	}
}

func (s *Server) readSeat(ctx context.Context, st *seat, cmds chan<- seatCommand) {
	dec := json.NewDecoder(st.conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.Logger.Warn("seat read failed", zap.Int("seat", st.index), zap.Error(err))
			}
			return
		}
		if msg.Type != "command" || msg.Command == nil {
			st.send(ServerMessage{Type: "error", Code: "bad_message", Error: "expected a command"})
			continue
		}
		cmds <- seatCommand{seat: st.index, cmd: *msg.Command}
	}
}

func (s *Server) handle(g *game.Game, seats []*seat, names []string, sc seatCommand) {
	cmd := sc.cmd
	cmd.Player = sc.seat // seats speak only for themselves
	events, err := g.Dispatch(cmd)
	if err != nil {
		s.Logger.Info("command rejected", zap.Int("seat", sc.seat),
			zap.Stringer("command", cmd.Type), zap.Error(err))
		seats[sc.seat].send(ServerMessage{
			Type:  "error",
			Code:  game.CodeOf(err).String(),
			Error: err.Error(),
		})
		return
	}
	s.Logger.Info("command applied", zap.Int("seat", sc.seat),
		zap.Stringer("command", cmd.Type), zap.Int("events", len(events)))

	if cmd.Type == game.CmdRequestUndo {
		// The log shrank; every seat gets a full replacement.
		s.broadcastReplace(g, seats, names)
	} else {
		for _, st := range seats {
			st.send(ServerMessage{
				Type:   "update",
				Events: RedactEvents(events, st.index, names),
				State:  BuildStateView(g.State, st.index),
			})
		}
	}

	if g.State.GameOver {
		result := fmt.Sprintf("%s wins with %d points",
			names[g.State.Winner], g.State.Scores[g.State.Winner])
		transcript := gamelog.Transcript(g.Events, names, gamelog.DefaultFilter)
		for _, st := range seats {
			st.send(ServerMessage{
				Type:       "game_over",
				Winner:     g.State.Winner,
				Scores:     g.State.Scores,
				Result:     result,
				Transcript: transcript,
			})
		}
	}
}

func (s *Server) broadcastReplace(g *game.Game, seats []*seat, names []string) {
	for _, st := range seats {
		st.send(ServerMessage{
			Type:    "update",
			Replace: true,
			Events:  RedactEvents(g.Events, st.index, names),
			State:   BuildStateView(g.State, st.index),
		})
	}
}
