package game

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseAction
	PhaseBuy
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "Action"
	case PhaseBuy:
		return "Buy"
	default:
		return "None"
	}
}

// Zone identifies where a card lives.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneDeck
	ZoneHand
	ZoneDiscard
	ZoneInPlay
	ZoneSupply
	ZoneTrash
)

func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneDiscard:
		return "Discard"
	case ZoneInPlay:
		return "In Play"
	case ZoneSupply:
		return "Supply"
	case ZoneTrash:
		return "Trash"
	default:
		return "None"
	}
}

// CardType is a bitmask of a card's type tags.
type CardType int

const (
	TypeAction CardType = 1 << iota
	TypeTreasure
	TypeVictory
	TypeCurse
	TypeAttack
	TypeReaction
)

func (t CardType) Is(flag CardType) bool { return t&flag != 0 }

func (t CardType) String() string {
	var s string
	add := func(name string) {
		if s != "" {
			s += "-"
		}
		s += name
	}
	if t.Is(TypeAction) {
		add("Action")
	}
	if t.Is(TypeTreasure) {
		add("Treasure")
	}
	if t.Is(TypeVictory) {
		add("Victory")
	}
	if t.Is(TypeCurse) {
		add("Curse")
	}
	if t.Is(TypeAttack) {
		add("Attack")
	}
	if t.Is(TypeReaction) {
		add("Reaction")
	}
	return s
}
