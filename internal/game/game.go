package game

import (
	"math/rand"
)

// Game owns one game instance: the ordered event log, the state projected
// from it, the per-game event id counter, and the seeded RNG used to
// materialize shuffles. Handlers never mutate State directly; every
// transition is an event appended through emit and applied by the same rule
// the projector uses, so State == Project(Events) at every step.
//
// A Game is not safe for concurrent use; callers serialize commands per game
// (the session layer's job).
type Game struct {
	Events []Event
	State  *GameState

	nextID int
	rng    *rand.Rand
}

// NewGame creates an empty game. The first accepted command must be StartGame.
func NewGame() *Game {
	return &Game{State: &GameState{Winner: -1}}
}

// Replay reconstructs a game from an existing event log, e.g. one loaded by
// an external persistence collaborator. The RNG is reseeded from the
// GameStarted event and burned past the shuffles already in the log.
func Replay(events []Event) *Game {
	g := NewGame()
	for i := range events {
		ev := events[i]
		if ev.Type == EventGameStarted {
			g.rng = rand.New(rand.NewSource(ev.Seed))
		}
		if ev.Type == EventDeckShuffled && g.rng != nil {
			// Consume the same amount of randomness the original producer
			// did. ensureDeck permutes only the discard pile and keeps the
			// remaining deck on top; the opening shuffle (empty discard)
			// permutes the whole deck.
			n := len(g.State.Players[ev.Player].Discard)
			if n == 0 {
				n = len(ev.Cards)
			}
			g.rng.Perm(n)
		}
		g.nextID = ev.ID
		g.Events = append(g.Events, ev)
		apply(g.State, &g.Events[len(g.Events)-1])
	}
	return g
}

// emit stamps an event with the next id and its cause, appends it to the log,
// and applies it to the projected state.
func (g *Game) emit(cause int, ev Event) *Event {
	g.nextID++
	ev.ID = g.nextID
	ev.CausedBy = cause
	g.Events = append(g.Events, ev)
	applied := &g.Events[len(g.Events)-1]
	apply(g.State, applied)
	return applied
}

// shuffleOrder returns a random permutation of cards using the game RNG.
func (g *Game) shuffleOrder(cards []string) []string {
	out := make([]string, len(cards))
	for i, j := range g.rng.Perm(len(cards)) {
		out[i] = cards[j]
	}
	return out
}

// ensureDeck makes sure the player's deck holds at least n cards, shuffling
// the discard pile underneath the remaining deck when necessary. The shuffle
// is materialized as a DeckShuffled event carrying the complete new order, so
// projection never re-invokes randomness.
func (g *Game) ensureDeck(cause, player, n int) {
	p := g.State.Players[player]
	if len(p.Deck) >= n || len(p.Discard) == 0 {
		return
	}
	newDeck := g.shuffleOrder(p.Discard)
	newDeck = append(newDeck, p.Deck...) // remaining deck stays on top
	g.emit(cause, Event{Type: EventDeckShuffled, Player: player, Cards: newDeck})
}

// drawCards draws up to n cards for the player, emitting one CardDrawn per
// card and a DeckShuffled first if the deck runs dry. Returns the cards
// actually drawn.
func (g *Game) drawCards(cause, player, n int) []string {
	var drawn []string
	for i := 0; i < n; i++ {
		g.ensureDeck(cause, player, 1)
		p := g.State.Players[player]
		if len(p.Deck) == 0 {
			break
		}
		card := p.Deck[len(p.Deck)-1]
		g.emit(cause, Event{Type: EventCardDrawn, Player: player, Card: card})
		drawn = append(drawn, card)
	}
	return drawn
}

// gainCard moves a card from the supply to the given zone of the player.
// Returns false without emitting when the pile is empty.
func (g *Game) gainCard(cause, player int, card string, to Zone) bool {
	if g.State.Supply[card] <= 0 {
		return false
	}
	g.emit(cause, Event{Type: EventCardGained, Player: player, Card: card, To: to})
	return true
}

func (g *Game) discardCard(cause, player int, card string, from Zone) {
	g.emit(cause, Event{Type: EventCardDiscarded, Player: player, Card: card, From: from})
}

func (g *Game) trashCard(cause, player int, card string, from Zone) {
	g.emit(cause, Event{Type: EventCardTrashed, Player: player, Card: card, From: from})
}

func (g *Game) topdeckCard(cause, player int, card string, from Zone) {
	g.emit(cause, Event{Type: EventCardTopdecked, Player: player, Card: card, From: from})
}

func (g *Game) addActions(cause, delta int) {
	if delta != 0 {
		g.emit(cause, Event{Type: EventActionsModified, Player: g.State.ActivePlayer, Delta: delta})
	}
}

func (g *Game) addBuys(cause, delta int) {
	if delta != 0 {
		g.emit(cause, Event{Type: EventBuysModified, Player: g.State.ActivePlayer, Delta: delta})
	}
}

func (g *Game) addCoins(cause, delta int) {
	if delta != 0 {
		g.emit(cause, Event{Type: EventCoinsModified, Player: g.State.ActivePlayer, Delta: delta})
	}
}

// requireDecision halts resolution with a pending decision.
func (g *Game) requireDecision(cause int, pc *PendingChoice) {
	pc.Kind = ChoiceDecision
	g.emit(cause, Event{Type: EventDecisionRequired, Player: pc.Player, Choice: pc})
}

// playEffect runs a card's full activation: the fixed grants and the effect
// starter exactly once, then the attack protocol for attack cards. When the
// whole chain completes without pausing, any owed Throne Room executions run.
//
// This is the only place one-time grants are emitted; decision resumption
// goes through resumeEffect and can never re-enter this function for the same
// play.
func (g *Game) playEffect(cause, player int, card string, inherit ChoiceMeta) {
	def := MustCard(card)
	if def.Cards > 0 {
		g.drawCards(cause, player, def.Cards)
	}
	g.addActions(cause, def.Actions)
	g.addBuys(cause, def.Buys)
	g.addCoins(cause, def.Coins)
	if def.Play != nil {
		def.Play(g, cause, player, inherit)
	}
	if def.IsAttack() && g.State.Pending == nil {
		g.declareAttack(cause, player, card, inherit)
	}
	if g.State.Pending == nil {
		g.finishEffect(player, inherit)
	}
}

// finishEffect runs after an effect chain fully completes: it pops the next
// owed Throne Room execution, if any, and replays the target.
func (g *Game) finishEffect(player int, meta ChoiceMeta) {
	stack := meta.Throne
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Remaining <= 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		stack[len(stack)-1].Remaining--
		g.playEffect(top.Cause, player, top.Card, ChoiceMeta{Throne: stack})
		return
	}
}
