package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// CommandType enumerates the player-facing commands.
type CommandType int

const (
	CmdStartGame CommandType = iota + 1
	CmdPlayAction
	CmdPlayTreasure
	CmdPlayAllTreasures
	CmdUnplayTreasure
	CmdBuyCard
	CmdEndPhase
	CmdSubmitDecision
	CmdSkipDecision
	CmdRevealReaction
	CmdDeclineReaction
	CmdRequestUndo
)

func (t CommandType) String() string {
	switch t {
	case CmdStartGame:
		return "start_game"
	case CmdPlayAction:
		return "play_action"
	case CmdPlayTreasure:
		return "play_treasure"
	case CmdPlayAllTreasures:
		return "play_all_treasures"
	case CmdUnplayTreasure:
		return "unplay_treasure"
	case CmdBuyCard:
		return "buy_card"
	case CmdEndPhase:
		return "end_phase"
	case CmdSubmitDecision:
		return "submit_decision"
	case CmdSkipDecision:
		return "skip_decision"
	case CmdRevealReaction:
		return "reveal_reaction"
	case CmdDeclineReaction:
		return "decline_reaction"
	case CmdRequestUndo:
		return "request_undo"
	default:
		return "unknown"
	}
}

// ParseCommandType maps a wire name back to its CommandType, or 0.
func ParseCommandType(s string) CommandType {
	for t := CmdStartGame; t <= CmdRequestUndo; t++ {
		if t.String() == s {
			return t
		}
	}
	return 0
}

// Command types travel as wire names, not enum values, so the protocol stays
// readable and stable across reorderings of the constant block.
func (t CommandType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CommandType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ct := ParseCommandType(s)
	if ct == 0 {
		return fmt.Errorf("unknown command type %q", s)
	}
	*t = ct
	return nil
}

// Command is one player request. Which fields matter depends on Type.
type Command struct {
	Type   CommandType `json:"type"`
	Player int         `json:"player"`

	Card  string   `json:"card,omitempty"`
	Cards []string `json:"cards,omitempty"`

	// StartGame
	Players []string `json:"players,omitempty"`
	Kingdom []string `json:"kingdom,omitempty"`
	Seed    int64    `json:"seed,omitempty"`

	// RequestUndo
	ToEventID int    `json:"toEventId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Dispatch validates and executes one command. On success it returns the
// events the command appended, in order; on rejection it returns a *RuleError
// and the log is untouched. RequestUndo succeeds with an empty batch since it
// shrinks the log instead.
func (g *Game) Dispatch(cmd Command) ([]Event, error) {
	start := len(g.Events)
	var err error
	switch cmd.Type {
	case CmdStartGame:
		err = g.StartGame(cmd.Players, cmd.Kingdom, cmd.Seed)
	case CmdPlayAction:
		err = g.PlayAction(cmd.Player, cmd.Card)
	case CmdPlayTreasure:
		err = g.PlayTreasure(cmd.Player, cmd.Card)
	case CmdPlayAllTreasures:
		err = g.PlayAllTreasures(cmd.Player)
	case CmdUnplayTreasure:
		err = g.UnplayTreasure(cmd.Player, cmd.Card)
	case CmdBuyCard:
		err = g.BuyCard(cmd.Player, cmd.Card)
	case CmdEndPhase:
		err = g.EndPhase(cmd.Player)
	case CmdSubmitDecision:
		err = g.SubmitDecision(cmd.Player, cmd.Cards)
	case CmdSkipDecision:
		err = g.SkipDecision(cmd.Player)
	case CmdRevealReaction:
		err = g.RevealReaction(cmd.Player, cmd.Card)
	case CmdDeclineReaction:
		err = g.DeclineReaction(cmd.Player)
	case CmdRequestUndo:
		err = g.UndoTo(cmd.ToEventID)
	default:
		err = ruleErr(ErrUnknownCommand, "unknown command type %d", cmd.Type)
	}
	if err != nil {
		return nil, err
	}
	if len(g.Events) <= start {
		return nil, nil
	}
	return append([]Event(nil), g.Events[start:]...), nil
}

// StartGame begins a game for 2-4 named players. A nil kingdom selects
// DefaultKingdom. A zero seed draws one from the clock; the chosen seed is
// recorded in the GameStarted event either way.
func (g *Game) StartGame(players []string, kingdom []string, seed int64) error {
	if len(g.Events) > 0 {
		return ruleErr(ErrBadConfig, "game already started")
	}
	if len(players) < 2 || len(players) > 4 {
		return ruleErr(ErrBadConfig, "need 2-4 players, got %d", len(players))
	}
	if kingdom == nil {
		kingdom = DefaultKingdom
	}
	if err := ValidateKingdom(kingdom); err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	started := g.emit(0, Event{
		Type:    EventGameStarted,
		Players: append([]string(nil), players...),
		Kingdom: append([]string(nil), kingdom...),
		Seed:    seed,
	})
	for p := range players {
		deck := make([]string, 0, 10)
		for i := 0; i < 7; i++ {
			deck = append(deck, "Copper")
		}
		for i := 0; i < 3; i++ {
			deck = append(deck, "Estate")
		}
		g.emit(started.ID, Event{Type: EventDeckShuffled, Player: p, Cards: g.shuffleOrder(deck)})
		g.drawCards(started.ID, p, 5)
	}
	g.emit(0, Event{Type: EventTurnStarted, Player: 0, Turn: 1})
	return nil
}

func basicPile(name string) bool {
	switch name {
	case "Copper", "Silver", "Gold", "Estate", "Duchy", "Province", "Curse":
		return true
	}
	return false
}

// PlayAction plays an action card from the active player's hand.
func (g *Game) PlayAction(player int, card string) error {
	if err := g.gateTurn(player, PhaseAction); err != nil {
		return err
	}
	def, ok := Lookup(card)
	if !ok {
		return ruleErr(ErrUnknownCard, "unknown card %q", card)
	}
	if !def.IsAction() {
		return ruleErr(ErrNotAnAction, "%s is not an Action card", card)
	}
	if !g.State.Players[player].HandHas(card) {
		return ruleErr(ErrCardNotInHand, "%s is not in hand", card)
	}
	if g.State.Actions < 1 {
		return ruleErr(ErrNoActions, "no actions remaining")
	}
	played := g.emit(0, Event{Type: EventCardPlayed, Player: player, Card: card})
	g.addActions(played.ID, -1)
	g.playEffect(played.ID, player, card, ChoiceMeta{})
	return nil
}

// PlayTreasure plays one treasure card during the buy phase.
func (g *Game) PlayTreasure(player int, card string) error {
	if err := g.gateTurn(player, PhaseBuy); err != nil {
		return err
	}
	def, ok := Lookup(card)
	if !ok {
		return ruleErr(ErrUnknownCard, "unknown card %q", card)
	}
	if !def.IsTreasure() {
		return ruleErr(ErrNotATreasure, "%s is not a Treasure card", card)
	}
	if !g.State.Players[player].HandHas(card) {
		return ruleErr(ErrCardNotInHand, "%s is not in hand", card)
	}
	played := g.emit(0, Event{Type: EventTreasurePlayed, Player: player, Card: card})
	g.addCoins(played.ID, def.Treasure)
	return nil
}

// PlayAllTreasures plays every treasure in the active player's hand.
func (g *Game) PlayAllTreasures(player int) error {
	if err := g.gateTurn(player, PhaseBuy); err != nil {
		return err
	}
	hand := append([]string(nil), g.State.Players[player].Hand...)
	for _, card := range hand {
		def := MustCard(card)
		if !def.IsTreasure() {
			continue
		}
		played := g.emit(0, Event{Type: EventTreasurePlayed, Player: player, Card: card})
		g.addCoins(played.ID, def.Treasure)
	}
	return nil
}

// UnplayTreasure returns a played treasure to hand, refunding its coins. Only
// possible while the coins it produced are still unspent.
func (g *Game) UnplayTreasure(player int, card string) error {
	if err := g.gateTurn(player, PhaseBuy); err != nil {
		return err
	}
	def, ok := Lookup(card)
	if !ok {
		return ruleErr(ErrUnknownCard, "unknown card %q", card)
	}
	if !def.IsTreasure() {
		return ruleErr(ErrNotATreasure, "%s is not a Treasure card", card)
	}
	if lastIndex(g.State.Players[player].InPlay, card) < 0 {
		return ruleErr(ErrCardNotInPlay, "%s is not in play", card)
	}
	if g.State.Coins < def.Treasure {
		return ruleErr(ErrInsufficientCoins, "coins already spent")
	}
	unplayed := g.emit(0, Event{Type: EventTreasureUnplayed, Player: player, Card: card})
	g.addCoins(unplayed.ID, -def.Treasure)
	return nil
}

// BuyCard buys one card from the supply at its effective cost.
func (g *Game) BuyCard(player int, card string) error {
	if err := g.gateTurn(player, PhaseBuy); err != nil {
		return err
	}
	if _, ok := Lookup(card); !ok {
		return ruleErr(ErrUnknownCard, "unknown card %q", card)
	}
	if _, ok := g.State.Supply[card]; !ok {
		return ruleErr(ErrUnknownCard, "%s is not in the supply", card)
	}
	if g.State.Buys < 1 {
		return ruleErr(ErrNoBuys, "no buys remaining")
	}
	if g.State.Supply[card] <= 0 {
		return ruleErr(ErrSupplyEmpty, "the %s pile is empty", card)
	}
	cost := g.State.CostOf(card)
	if g.State.Coins < cost {
		return ruleErr(ErrInsufficientCoins, "%s costs $%d, have $%d", card, cost, g.State.Coins)
	}
	bought := g.emit(0, Event{Type: EventCardBought, Player: player, Card: card})
	g.addCoins(bought.ID, -cost)
	g.addBuys(bought.ID, -1)
	g.gainCard(bought.ID, player, card, ZoneDiscard)
	return nil
}

// EndPhase advances action -> buy, or ends the turn from the buy phase:
// cleanup discards, a fresh hand of five, then the game-over check and either
// GameEnded or the next TurnStarted.
func (g *Game) EndPhase(player int) error {
	if err := g.gateTurn(player, PhaseNone); err != nil {
		return err
	}
	if g.State.Phase == PhaseAction {
		g.emit(0, Event{Type: EventPhaseChanged, Player: player, Phase: PhaseBuy})
		return nil
	}

	ended := g.emit(0, Event{Type: EventTurnEnded, Player: player, Turn: g.State.Turn})
	p := g.State.Players[player]
	for _, card := range append([]string(nil), p.InPlay...) {
		g.discardCard(ended.ID, player, card, ZoneInPlay)
	}
	for _, card := range append([]string(nil), p.Hand...) {
		g.discardCard(ended.ID, player, card, ZoneHand)
	}
	g.drawCards(ended.ID, player, 5)

	if g.State.Supply["Province"] == 0 || g.State.EmptyPiles() >= 3 {
		winner, scores := g.finalStandings()
		g.emit(ended.ID, Event{Type: EventGameEnded, Winner: winner, Scores: scores})
		return nil
	}
	g.emit(0, Event{Type: EventTurnStarted, Player: g.State.NextPlayer(player), Turn: g.State.Turn + 1})
	return nil
}

// finalStandings scores every player and picks the winner: highest score, ties
// broken in favor of the player who took fewer turns, then the earlier seat.
func (g *Game) finalStandings() (int, []int) {
	n := g.State.NumPlayers()
	scores := make([]int, n)
	for i := range scores {
		scores[i] = g.State.Score(i)
	}
	turns := func(seat int) int { return (g.State.Turn + n - 1 - seat) / n }
	winner := 0
	for i := 1; i < n; i++ {
		if scores[i] > scores[winner] ||
			(scores[i] == scores[winner] && turns(i) < turns(winner)) {
			winner = i
		}
	}
	return winner, scores
}

// SubmitDecision answers the pending decision with a selection of cards.
func (g *Game) SubmitDecision(player int, cards []string) error {
	pc, err := g.gateChoice(player, ChoiceDecision)
	if err != nil {
		return err
	}
	if len(cards) < pc.Min || len(cards) > pc.Max {
		return ruleErr(ErrInvalidSelection, "select between %d and %d cards", pc.Min, pc.Max)
	}
	remaining := append([]string(nil), pc.Options...)
	for _, c := range cards {
		i := lastIndex(remaining, c)
		if i < 0 {
			return ruleErr(ErrInvalidSelection, "%s is not among the options", c)
		}
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	resolved := g.emit(pc.EventID, Event{Type: EventDecisionResolved, Player: player,
		Cards: append([]string(nil), cards...)})
	g.resumeEffect(pc, cards, resolved.ID)
	return nil
}

// SkipDecision declines an optional pending decision, resuming the effect with
// an empty selection.
func (g *Game) SkipDecision(player int) error {
	pc, err := g.gateChoice(player, ChoiceDecision)
	if err != nil {
		return err
	}
	if pc.Min > 0 {
		return ruleErr(ErrRequiredChoice, "this decision requires at least %d cards", pc.Min)
	}
	skipped := g.emit(pc.EventID, Event{Type: EventDecisionSkipped, Player: player})
	g.resumeEffect(pc, nil, skipped.ID)
	return nil
}

// RevealReaction answers a pending reaction opportunity by revealing a
// reaction card, blocking the attack against this player.
func (g *Game) RevealReaction(player int, card string) error {
	pc, err := g.gateChoice(player, ChoiceReaction)
	if err != nil {
		return err
	}
	if lastIndex(pc.Reactions, card) < 0 {
		return ruleErr(ErrInvalidSelection, "%s is not a revealable Reaction", card)
	}
	g.revealReaction(pc, card)
	return nil
}

// DeclineReaction waives a pending reaction opportunity.
func (g *Game) DeclineReaction(player int) error {
	pc, err := g.gateChoice(player, ChoiceReaction)
	if err != nil {
		return err
	}
	g.declineReaction(pc)
	return nil
}

// gateTurn is the shared guard for turn-scoped commands: the game must be
// running with no pending choice, the caller must be the active player, and
// when wantPhase is set the turn must be in that phase.
func (g *Game) gateTurn(player int, wantPhase Phase) error {
	if len(g.Events) == 0 {
		return ruleErr(ErrGameNotStarted, "game has not started")
	}
	if g.State.GameOver {
		return ruleErr(ErrGameOver, "game is over")
	}
	if g.State.Pending != nil {
		return ruleErr(ErrChoicePending, "a choice by %s is pending",
			g.State.Players[g.State.Pending.Player].Name)
	}
	if player != g.State.ActivePlayer {
		return ruleErr(ErrNotYourTurn, "it is %s's turn", g.State.Players[g.State.ActivePlayer].Name)
	}
	if wantPhase != PhaseNone && g.State.Phase != wantPhase {
		return ruleErr(ErrWrongPhase, "not in the %s phase", wantPhase)
	}
	return nil
}

// gateChoice is the shared guard for choice responses: there must be a pending
// choice of the right kind owned by the caller.
func (g *Game) gateChoice(player int, kind ChoiceKind) (*PendingChoice, error) {
	if len(g.Events) == 0 {
		return nil, ruleErr(ErrGameNotStarted, "game has not started")
	}
	pc := g.State.Pending
	if pc == nil {
		return nil, ruleErr(ErrNoPendingChoice, "no choice is pending")
	}
	if pc.Kind != kind {
		return nil, ruleErr(ErrWrongChoiceKind, "the pending choice is a %s", pc.Kind)
	}
	if pc.Player != player {
		return nil, ruleErr(ErrWrongChoiceOwner, "the pending choice belongs to %s",
			g.State.Players[pc.Player].Name)
	}
	return pc, nil
}
