package game

import "fmt"

// CardDef is a static catalog entry. The catalog is fixed and loaded once;
// nothing here is mutable at runtime.
type CardDef struct {
	Name  string
	Text  string
	Cost  int
	Types CardType

	// Fixed grants applied once when the card is played as an action.
	Cards   int
	Actions int
	Buys    int
	Coins   int

	// Coin value when played as a treasure.
	Treasure int

	// Victory points. VPFunc, when set, overrides VP and receives every card
	// the player owns (Gardens).
	VP     int
	VPFunc func(all []string) int

	// Play is the multi-stage effect starter, run exactly once per play after
	// the fixed grants. Nil for cards whose whole text is the grants above.
	Play starterFunc
}

// starterFunc performs a card's one-time effects and may leave a pending
// choice. inherit carries resume context (Throne Room frames) that any
// pending it creates must preserve.
type starterFunc func(g *Game, cause, player int, inherit ChoiceMeta)

func (c *CardDef) String() string { return c.Name }

// IsAction reports whether the card can be played in the action phase.
func (c *CardDef) IsAction() bool { return c.Types.Is(TypeAction) }

// IsTreasure reports whether the card can be played in the buy phase.
func (c *CardDef) IsTreasure() bool { return c.Types.Is(TypeTreasure) }

// IsAttack reports whether playing the card targets every other player.
func (c *CardDef) IsAttack() bool { return c.Types.Is(TypeAttack) }

// IsReaction reports whether the card can be revealed from hand to block an
// attack.
func (c *CardDef) IsReaction() bool { return c.Types.Is(TypeReaction) }

// CatalogOrder lists every card in display order: basics by cost, then the
// kingdom cards alphabetically.
var CatalogOrder = []string{
	"Copper", "Silver", "Gold", "Estate", "Duchy", "Province", "Curse",
	"Artisan", "Bandit", "Bureaucrat", "Cellar", "Chapel", "Council Room",
	"Festival", "Gardens", "Harbinger", "Laboratory", "Market", "Militia",
	"Mine", "Moat", "Moneylender", "Remodel", "Sentry", "Smithy",
	"Throne Room", "Village", "Witch", "Workshop",
}

// DefaultKingdom is the ten-pile selection used when none is given.
var DefaultKingdom = []string{
	"Cellar", "Market", "Militia", "Mine", "Moat",
	"Remodel", "Smithy", "Throne Room", "Village", "Workshop",
}

// catalog maps card name to definition. Populated in init rather than a
// composite literal: the starter funcs reach back into the catalog through
// MustCard, and a package-level literal would form an initialization cycle.
var catalog map[string]*CardDef

func init() {
	catalog = map[string]*CardDef{
		// --- Basic cards ---
		"Copper": {
			Name: "Copper", Text: "$1", Cost: 0, Types: TypeTreasure, Treasure: 1,
		},
		"Silver": {
			Name: "Silver", Text: "$2", Cost: 3, Types: TypeTreasure, Treasure: 2,
		},
		"Gold": {
			Name: "Gold", Text: "$3", Cost: 6, Types: TypeTreasure, Treasure: 3,
		},
		"Estate": {
			Name: "Estate", Text: "1 VP", Cost: 2, Types: TypeVictory, VP: 1,
		},
		"Duchy": {
			Name: "Duchy", Text: "3 VP", Cost: 5, Types: TypeVictory, VP: 3,
		},
		"Province": {
			Name: "Province", Text: "6 VP", Cost: 8, Types: TypeVictory, VP: 6,
		},
		"Curse": {
			Name: "Curse", Text: "-1 VP", Cost: 0, Types: TypeCurse, VP: -1,
		},

		// --- Kingdom cards ---
		"Artisan": {
			Name: "Artisan", Text: "Gain a card to your hand costing up to $5. Put a card from your hand onto your deck.",
			Cost: 6, Types: TypeAction, Play: playArtisan,
		},
		"Bandit": {
			Name: "Bandit", Text: "Gain a Gold. Each other player reveals the top 2 cards of their deck, trashes a revealed Treasure other than Copper, and discards the rest.",
			Cost: 5, Types: TypeAction | TypeAttack, Play: playBandit,
		},
		"Bureaucrat": {
			Name: "Bureaucrat", Text: "Gain a Silver onto your deck. Each other player reveals a Victory card from their hand and puts it onto their deck (or reveals a hand with no Victory cards).",
			Cost: 4, Types: TypeAction | TypeAttack, Play: playBureaucrat,
		},
		"Cellar": {
			Name: "Cellar", Text: "+1 Action. Discard any number of cards, then draw that many.",
			Cost: 2, Types: TypeAction, Actions: 1, Play: playCellar,
		},
		"Chapel": {
			Name: "Chapel", Text: "Trash up to 4 cards from your hand.",
			Cost: 2, Types: TypeAction, Play: playChapel,
		},
		"Council Room": {
			Name: "Council Room", Text: "+4 Cards, +1 Buy. Each other player draws a card.",
			Cost: 5, Types: TypeAction, Cards: 4, Buys: 1, Play: playCouncilRoom,
		},
		"Festival": {
			Name: "Festival", Text: "+2 Actions, +1 Buy, +$2.",
			Cost: 5, Types: TypeAction, Actions: 2, Buys: 1, Coins: 2,
		},
		"Gardens": {
			Name: "Gardens", Text: "Worth 1 VP per 10 cards you have (round down).",
			Cost: 4, Types: TypeVictory,
			VPFunc: func(all []string) int { return len(all) / 10 },
		},
		"Harbinger": {
			Name: "Harbinger", Text: "+1 Card, +1 Action. Look through your discard pile. You may put a card from it onto your deck.",
			Cost: 3, Types: TypeAction, Cards: 1, Actions: 1, Play: playHarbinger,
		},
		"Laboratory": {
			Name: "Laboratory", Text: "+2 Cards, +1 Action.",
			Cost: 5, Types: TypeAction, Cards: 2, Actions: 1,
		},
		"Market": {
			Name: "Market", Text: "+1 Card, +1 Action, +1 Buy, +$1.",
			Cost: 5, Types: TypeAction, Cards: 1, Actions: 1, Buys: 1, Coins: 1,
		},
		"Militia": {
			Name: "Militia", Text: "+$2. Each other player discards down to 3 cards in hand.",
			Cost: 4, Types: TypeAction | TypeAttack, Coins: 2,
		},
		"Mine": {
			Name: "Mine", Text: "You may trash a Treasure from your hand. Gain a Treasure to your hand costing up to $3 more than it.",
			Cost: 5, Types: TypeAction, Play: playMine,
		},
		"Moat": {
			Name: "Moat", Text: "+2 Cards. When another player plays an Attack card, you may first reveal this from your hand, to be unaffected by it.",
			Cost: 2, Types: TypeAction | TypeReaction, Cards: 2,
		},
		"Moneylender": {
			Name: "Moneylender", Text: "You may trash a Copper from your hand for +$3.",
			Cost: 4, Types: TypeAction, Play: playMoneylender,
		},
		"Remodel": {
			Name: "Remodel", Text: "Trash a card from your hand. Gain a card costing up to $2 more than it.",
			Cost: 4, Types: TypeAction, Play: playRemodel,
		},
		"Sentry": {
			Name: "Sentry", Text: "+1 Card, +1 Action. Look at the top 2 cards of your deck. Trash and/or discard any number of them. Put the rest back on top in any order.",
			Cost: 5, Types: TypeAction, Cards: 1, Actions: 1, Play: playSentry,
		},
		"Smithy": {
			Name: "Smithy", Text: "+3 Cards.",
			Cost: 4, Types: TypeAction, Cards: 3,
		},
		"Throne Room": {
			Name: "Throne Room", Text: "You may play an Action card from your hand twice.",
			Cost: 4, Types: TypeAction, Play: playThroneRoom,
		},
		"Village": {
			Name: "Village", Text: "+1 Card, +2 Actions.",
			Cost: 3, Types: TypeAction, Cards: 1, Actions: 2,
		},
		"Witch": {
			Name: "Witch", Text: "+2 Cards. Each other player gains a Curse.",
			Cost: 5, Types: TypeAction | TypeAttack, Cards: 2,
		},
		"Workshop": {
			Name: "Workshop", Text: "Gain a card costing up to $4.",
			Cost: 3, Types: TypeAction, Play: playWorkshop,
		},
	}
}

// Lookup returns the catalog entry for a card name.
func Lookup(name string) (*CardDef, bool) {
	def, ok := catalog[name]
	return def, ok
}

// MustCard returns the catalog entry for a name known to be valid.
func MustCard(name string) *CardDef {
	def, ok := catalog[name]
	if !ok {
		panic(fmt.Sprintf("card not in catalog: %q", name))
	}
	return def
}
