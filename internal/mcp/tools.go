package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/dbgx/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// Config set by main before the server starts.
var (
	agentName  = "Claude"
	setupsFile string
	port       string
)

// SetSetupsFile sets the path to the kingdom setups YAML file.
func SetSetupsFile(path string) {
	setupsFile = path
}

// SetPort sets the TCP port for the human player connection.
func SetPort(p string) {
	port = p
}

// SetAgentName sets the display name for the agent's seat.
func SetAgentName(name string) {
	agentName = name
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(playActionTool(), handlePlayAction)
	s.AddTool(playTreasuresTool(), handlePlayTreasures)
	s.AddTool(buyCardTool(), handleBuyCard)
	s.AddTool(endPhaseTool(), handleEndPhase)
	s.AddTool(submitDecisionTool(), handleSubmitDecision)
	s.AddTool(skipDecisionTool(), handleSkipDecision)
	s.AddTool(revealReactionTool(), handleRevealReaction)
	s.AddTool(declineReactionTool(), handleDeclineReaction)
	s.AddTool(requestUndoTool(), handleRequestUndo)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new deck-building game against a human. "+
			"The human connects via `dbgx join --addr localhost:<port>` in a separate terminal. "+
			"This call blocks until the human connects."),
		mcp.WithNumber("agent_seat", mcp.Description("Which seat the agent takes: 0 = goes first, 1 = goes second (default 0)")),
		mcp.WithString("setup", mcp.Description("Named kingdom setup from the setups file (default: the standard first-game kingdom)")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for reproducible games (default: random)")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, new events since the last call, and the pending choice. Read-only."),
	)
}

func playActionTool() mcp.Tool {
	return mcp.NewTool("play_action",
		mcp.WithDescription("Play an Action card from your hand during your action phase."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Name of the Action card to play (e.g. 'Village')")),
	)
}

func playTreasuresTool() mcp.Tool {
	return mcp.NewTool("play_treasures",
		mcp.WithDescription("Play every Treasure card in your hand during your buy phase."),
	)
}

func buyCardTool() mcp.Tool {
	return mcp.NewTool("buy_card",
		mcp.WithDescription("Buy a card from the supply during your buy phase."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Name of the card to buy")),
	)
}

func endPhaseTool() mcp.Tool {
	return mcp.NewTool("end_phase",
		mcp.WithDescription("End the current phase: action phase -> buy phase, buy phase -> end of turn."),
	)
}

func submitDecisionTool() mcp.Tool {
	return mcp.NewTool("submit_decision",
		mcp.WithDescription("Answer the pending decision with a selection of cards. Use when the pending choice is a Decision owned by you."),
		mcp.WithString("cards", mcp.Description("Comma-separated card names to select (e.g. 'Estate, Estate, Copper'), or empty for none")),
	)
}

func skipDecisionTool() mcp.Tool {
	return mcp.NewTool("skip_decision",
		mcp.WithDescription("Decline an optional pending decision (one whose minimum selection is zero)."),
	)
}

func revealReactionTool() mcp.Tool {
	return mcp.NewTool("reveal_reaction",
		mcp.WithDescription("Reveal a Reaction card from your hand to block the attack you are being targeted by."),
		mcp.WithString("card", mcp.Description("Reaction card to reveal (default 'Moat')")),
	)
}

func declineReactionTool() mcp.Tool {
	return mcp.NewTool("decline_reaction",
		mcp.WithDescription("Decline to reveal a Reaction, letting the attack resolve against you."),
	)
}

func requestUndoTool() mcp.Tool {
	return mcp.NewTool("request_undo",
		mcp.WithDescription("Rewind the game to just after the given event id. The log is truncated and replayed."),
		mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event id to rewind to (from the event log)")),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	seat := request.GetInt("agent_seat", 0)
	seed := int64(request.GetInt("seed", 0))
	var kingdom []string
	if name := request.GetString("setup", ""); name != "" {
		if setupsFile == "" {
			return mcp.NewToolResultError("No setups file configured; start without a setup name."), nil
		}
		setups, err := game.LoadSetups(setupsFile)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load setups: %v", err), nil
		}
		setup, ok := game.FindSetup(setups, name)
		if !ok {
			return mcp.NewToolResultErrorf("No setup named %q.", name), nil
		}
		kingdom = setup.Cards
	}

	sess, err := NewGameSession(agentName, seat, kingdom, seed, port)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	resp := sess.Response()
	resp.Port = port
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Response())), nil
}

func handlePlayAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdPlayAction, Card: request.GetString("card", "")})
}

func handlePlayTreasures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdPlayAllTreasures})
}

func handleBuyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdBuyCard, Card: request.GetString("card", "")})
}

func handleEndPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdEndPhase})
}

func handleSubmitDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var cards []string
	if raw := strings.TrimSpace(request.GetString("cards", "")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			cards = append(cards, strings.TrimSpace(part))
		}
	}
	return dispatch(game.Command{Type: game.CmdSubmitDecision, Cards: cards})
}

func handleSkipDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdSkipDecision})
}

func handleRevealReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card := request.GetString("card", "")
	if card == "" {
		card = "Moat"
	}
	return dispatch(game.Command{Type: game.CmdRevealReaction, Card: card})
}

func handleDeclineReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdDeclineReaction})
}

func handleRequestUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatch(game.Command{Type: game.CmdRequestUndo, ToEventID: request.GetInt("event_id", 0)})
}

// dispatch applies one agent command to the active session and returns the
// fresh response, or the rule error as tool output so the agent can correct
// itself.
func dispatch(cmd game.Command) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	if err := sess.Dispatch(cmd); err != nil {
		if owner := sess.PendingOwner(); owner == "human" {
			return mcp.NewToolResultErrorf("%v (waiting for the human player to respond in their terminal)", err), nil
		}
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	resp := sess.Response()
	if resp.GameOver {
		sess.Close()
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
