package game

// PlayerState holds one player's zones. The deck's top is the last element;
// draws pop from the tail. InPlayIDs mirrors InPlay and records the id of the
// CardPlayed/TreasurePlayed event that put each card there, so effects can
// refer to "the card just played" even with duplicate names.
type PlayerState struct {
	Name      string   `json:"name"`
	Deck      []string `json:"deck"`
	Hand      []string `json:"hand"`
	Discard   []string `json:"discard"`
	InPlay    []string `json:"inPlay"`
	InPlayIDs []int    `json:"inPlayIds"`
}

// HandCount returns the number of cards in hand.
func (p *PlayerState) HandCount() int { return len(p.Hand) }

// DeckCount returns the number of cards remaining in the deck.
func (p *PlayerState) DeckCount() int { return len(p.Deck) }

// HandHas reports whether the hand contains the named card.
func (p *PlayerState) HandHas(card string) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// AllCards returns every card the player owns across all zones.
func (p *PlayerState) AllCards() []string {
	all := make([]string, 0, len(p.Deck)+len(p.Hand)+len(p.Discard)+len(p.InPlay))
	all = append(all, p.Deck...)
	all = append(all, p.Hand...)
	all = append(all, p.Discard...)
	all = append(all, p.InPlay...)
	return all
}

// GameState is the snapshot derived from the event log. No field is ever set
// by any path other than the projector.
type GameState struct {
	Players []*PlayerState `json:"players"`
	Supply  map[string]int `json:"supply"`
	Kingdom []string       `json:"kingdom"`
	Trash   []string       `json:"trash"`

	Turn         int   `json:"turn"`
	ActivePlayer int   `json:"activePlayer"`
	Phase        Phase `json:"phase"`
	Actions      int   `json:"actions"`
	Buys         int   `json:"buys"`
	Coins        int   `json:"coins"`
	CostDelta    int   `json:"costDelta,omitempty"` // active cost modifier, reset each turn

	Pending *PendingChoice `json:"pending,omitempty"`

	GameOver bool  `json:"gameOver"`
	Winner   int   `json:"winner,omitempty"`
	Scores   []int `json:"scores,omitempty"`
}

// NumPlayers returns the number of seats.
func (st *GameState) NumPlayers() int { return len(st.Players) }

// NextPlayer returns the seat after p in turn order.
func (st *GameState) NextPlayer(p int) int { return (p + 1) % len(st.Players) }

// Opponents returns all other seats in turn order starting after p.
func (st *GameState) Opponents(p int) []int {
	var out []int
	for i := st.NextPlayer(p); i != p; i = st.NextPlayer(i) {
		out = append(out, i)
	}
	return out
}

// CostOf returns the effective cost of a card under the active cost modifier,
// floored at zero.
func (st *GameState) CostOf(card string) int {
	cost := MustCard(card).Cost + st.CostDelta
	if cost < 0 {
		cost = 0
	}
	return cost
}

// SupplyCards returns the supply pile names whose effective cost is at most
// ceiling and which are not empty, in catalog order.
func (st *GameState) SupplyCards(ceiling int, filter func(*CardDef) bool) []string {
	var out []string
	for _, name := range CatalogOrder {
		count, ok := st.Supply[name]
		if !ok || count == 0 {
			continue
		}
		def := MustCard(name)
		if st.CostOf(name) > ceiling {
			continue
		}
		if filter != nil && !filter(def) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// EmptyPiles returns the number of exhausted supply piles.
func (st *GameState) EmptyPiles() int {
	n := 0
	for _, count := range st.Supply {
		if count == 0 {
			n++
		}
	}
	return n
}

// Score computes a player's victory points across every zone they own.
func (st *GameState) Score(player int) int {
	total := 0
	all := st.Players[player].AllCards()
	for _, name := range all {
		def := MustCard(name)
		if def.VPFunc != nil {
			total += def.VPFunc(all)
		} else {
			total += def.VP
		}
	}
	return total
}
