package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/peterkuimelis/dbgx/internal/game"
)

// Client connects a terminal player to a game server.
type Client struct {
	conn net.Conn
	name string

	mu    sync.Mutex
	seat  int
	state *StateView
}

// Connect dials a server, joins with the given name, and runs the REPL.
func Connect(ctx context.Context, addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	fmt.Println("Connected! Waiting for the game to start...")

	c := &Client{conn: conn, name: name}
	return c.Run(ctx)
}

// Run receives server messages in the background and reads commands from
// stdin. It returns when the connection closes or the user quits.
func (c *Client) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- c.receive() }()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	enc := json.NewEncoder(c.conn)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd, ok := c.parse(strings.TrimSpace(line))
			if !ok {
				continue
			}
			if err := enc.Encode(ClientMessage{Type: "command", Command: cmd}); err != nil {
				return fmt.Errorf("send command: %w", err)
			}
		}
	}
}

func (c *Client) receive() error {
	dec := json.NewDecoder(c.conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return err
		}
		switch msg.Type {
		case "welcome":
			c.mu.Lock()
			c.seat = msg.Seat
			c.mu.Unlock()
			fmt.Printf("You are seat %d\n", msg.Seat)

		case "update":
			for _, ev := range msg.Events {
				fmt.Println("  " + ev.Details)
			}
			c.mu.Lock()
			c.state = msg.State
			c.mu.Unlock()
			c.renderPrompt(msg.State)

		case "error":
			fmt.Printf("!! %s\n", msg.Error)

		case "game_over":
			fmt.Println()
			fmt.Println("═══════════════════════════════════")
			fmt.Println("          GAME OVER")
			fmt.Println("═══════════════════════════════════")
			fmt.Println(msg.Result)
			fmt.Println("═══════════════════════════════════")
			if msg.Transcript != "" {
				fmt.Println()
				fmt.Println("Game transcript:")
				fmt.Print(msg.Transcript)
			}
		}
	}
}

// renderPrompt shows the hand and available moves whenever it is this seat's
// turn to do something.
func (c *Client) renderPrompt(sv *StateView) {
	if sv == nil {
		return
	}
	if p := sv.Pending; p != nil {
		if !p.Yours {
			return
		}
		fmt.Printf("\n%s\n", p.Prompt)
		for i, opt := range p.Options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
		if p.Kind == "Reaction" {
			fmt.Println("(reveal <card>, or decline)")
		} else if p.Min == 0 {
			fmt.Println("(pick <cards>, or skip)")
		} else {
			fmt.Printf("(pick %d-%d cards)\n", p.Min, p.Max)
		}
		return
	}
	if sv.ActivePlayer != sv.Seat || sv.GameOver {
		return
	}
	fmt.Printf("\nTurn %d | %s phase | %d action(s), %d buy(s), $%d\n",
		sv.Turn, sv.Phase, sv.Actions, sv.Buys, sv.Coins)
	fmt.Printf("Hand: %s\n", strings.Join(sv.Hand, ", "))
	if sv.Phase == "Buy" {
		fmt.Println("(play <treasure>, all, buy <card>, end)")
	} else {
		fmt.Println("(play <card>, end)")
	}
}

// parse turns a typed line into a command. Card names keep their spaces, so
// everything after the verb is the argument.
func (c *Client) parse(line string) (*game.Command, bool) {
	if line == "" {
		return nil, false
	}
	verb, rest := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		verb, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	c.mu.Lock()
	sv := c.state
	c.mu.Unlock()

	switch strings.ToLower(verb) {
	case "play":
		card := matchCard(rest)
		if sv != nil && sv.Phase == "Buy" {
			return &game.Command{Type: game.CmdPlayTreasure, Card: card}, true
		}
		return &game.Command{Type: game.CmdPlayAction, Card: card}, true
	case "all", "coins":
		return &game.Command{Type: game.CmdPlayAllTreasures}, true
	case "unplay":
		return &game.Command{Type: game.CmdUnplayTreasure, Card: matchCard(rest)}, true
	case "buy":
		return &game.Command{Type: game.CmdBuyCard, Card: matchCard(rest)}, true
	case "end":
		return &game.Command{Type: game.CmdEndPhase}, true
	case "pick":
		return &game.Command{Type: game.CmdSubmitDecision, Cards: c.parsePicks(rest, sv)}, true
	case "skip":
		return &game.Command{Type: game.CmdSkipDecision}, true
	case "reveal":
		card := matchCard(rest)
		if card == "" {
			card = "Moat"
		}
		return &game.Command{Type: game.CmdRevealReaction, Card: card}, true
	case "decline":
		return &game.Command{Type: game.CmdDeclineReaction}, true
	case "undo":
		id, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Println("usage: undo <event id>")
			return nil, false
		}
		return &game.Command{Type: game.CmdRequestUndo, ToEventID: id}, true
	case "hand", "state":
		c.renderPrompt(sv)
		return nil, false
	case "supply":
		renderSupply(sv)
		return nil, false
	case "help":
		fmt.Println("commands: play, all, unplay, buy, end, pick, skip, reveal, decline, undo, hand, supply")
		return nil, false
	default:
		fmt.Printf("unknown command %q (try help)\n", verb)
		return nil, false
	}
}

// parsePicks reads a comma-separated card list, accepting option numbers from
// the last prompt as shorthand.
func (c *Client) parsePicks(rest string, sv *StateView) []string {
	var picks []string
	if rest == "" {
		return picks
	}
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if n, err := strconv.Atoi(part); err == nil && sv != nil && sv.Pending != nil &&
			n >= 1 && n <= len(sv.Pending.Options) {
			picks = append(picks, sv.Pending.Options[n-1])
			continue
		}
		picks = append(picks, matchCard(part))
	}
	return picks
}

// matchCard canonicalizes a typed card name case-insensitively.
func matchCard(s string) string {
	if s == "" {
		return s
	}
	for _, name := range game.CatalogOrder {
		if strings.EqualFold(name, s) {
			return name
		}
	}
	return s
}

func renderSupply(sv *StateView) {
	if sv == nil {
		return
	}
	names := make([]string, 0, len(sv.Supply))
	for name := range sv.Supply {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s x%d\n", name, sv.Supply[name])
	}
}
