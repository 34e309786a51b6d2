package game

// EventType enumerates every state delta the engine can record. The ordered
// event list is the single source of truth for a game; GameState is always a
// projection of it.
type EventType int

const (
	EventGameStarted EventType = iota
	EventTurnStarted
	EventPhaseChanged
	EventTurnEnded
	EventDeckShuffled
	EventCardDrawn
	EventCardPlayed
	EventTreasurePlayed
	EventTreasureUnplayed
	EventCardBought
	EventCardGained
	EventCardDiscarded
	EventCardTrashed
	EventCardTopdecked
	EventCardRevealed
	EventActionsModified
	EventBuysModified
	EventCoinsModified
	EventCostModified
	EventDecisionRequired
	EventDecisionResolved
	EventDecisionSkipped
	EventReactionOpportunity
	EventReactionRevealed
	EventReactionDeclined
	EventAttackDeclared
	EventAttackResolved
	EventGameEnded
)

func (e EventType) String() string {
	switch e {
	case EventGameStarted:
		return "GameStarted"
	case EventTurnStarted:
		return "TurnStarted"
	case EventPhaseChanged:
		return "PhaseChanged"
	case EventTurnEnded:
		return "TurnEnded"
	case EventDeckShuffled:
		return "DeckShuffled"
	case EventCardDrawn:
		return "CardDrawn"
	case EventCardPlayed:
		return "CardPlayed"
	case EventTreasurePlayed:
		return "TreasurePlayed"
	case EventTreasureUnplayed:
		return "TreasureUnplayed"
	case EventCardBought:
		return "CardBought"
	case EventCardGained:
		return "CardGained"
	case EventCardDiscarded:
		return "CardDiscarded"
	case EventCardTrashed:
		return "CardTrashed"
	case EventCardTopdecked:
		return "CardTopdecked"
	case EventCardRevealed:
		return "CardRevealed"
	case EventActionsModified:
		return "ActionsModified"
	case EventBuysModified:
		return "BuysModified"
	case EventCoinsModified:
		return "CoinsModified"
	case EventCostModified:
		return "CostModified"
	case EventDecisionRequired:
		return "DecisionRequired"
	case EventDecisionResolved:
		return "DecisionResolved"
	case EventDecisionSkipped:
		return "DecisionSkipped"
	case EventReactionOpportunity:
		return "ReactionOpportunity"
	case EventReactionRevealed:
		return "ReactionRevealed"
	case EventReactionDeclined:
		return "ReactionDeclined"
	case EventAttackDeclared:
		return "AttackDeclared"
	case EventAttackResolved:
		return "AttackResolved"
	case EventGameEnded:
		return "GameEnded"
	default:
		return "Unknown"
	}
}

// Event is a single entry in the game log. Which payload fields are meaningful
// depends on Type:
//
//	GameStarted          Players, Kingdom, Seed
//	TurnStarted          Player, Turn
//	PhaseChanged         Phase
//	TurnEnded            Player
//	DeckShuffled         Player, Cards (complete new deck order, top = last)
//	CardDrawn            Player, Card
//	CardPlayed           Player, Card
//	TreasurePlayed       Player, Card
//	TreasureUnplayed     Player, Card
//	CardBought           Player, Card
//	CardGained           Player, Card, To
//	CardDiscarded        Player, Card, From
//	CardTrashed          Player, Card, From
//	CardTopdecked        Player, Card, From
//	CardRevealed         Player, Card or Cards
//	*Modified            Player, Delta
//	DecisionRequired     Choice (Kind == ChoiceDecision)
//	DecisionResolved     Player, Cards (the selection)
//	DecisionSkipped      Player
//	ReactionOpportunity  Choice (Kind == ChoiceReaction)
//	ReactionRevealed     Player, Card
//	ReactionDeclined     Player
//	AttackDeclared       Player (attacker), Card
//	AttackResolved       Player (target), Card, Blocked
//	GameEnded            Winner, Scores
//
// CausedBy links an event to its logical cause; 0 means the event is a root.
type Event struct {
	ID       int       `json:"id"`
	CausedBy int       `json:"causedBy,omitempty"`
	Type     EventType `json:"type"`

	Player int      `json:"player,omitempty"`
	Card   string   `json:"card,omitempty"`
	Cards  []string `json:"cards,omitempty"`
	From   Zone     `json:"from,omitempty"`
	To     Zone     `json:"to,omitempty"`
	Delta  int      `json:"delta,omitempty"`

	Turn  int   `json:"turn,omitempty"`
	Phase Phase `json:"phase,omitempty"`

	Choice *PendingChoice `json:"choice,omitempty"`

	Blocked bool `json:"blocked,omitempty"`

	Players []string `json:"players,omitempty"`
	Kingdom []string `json:"kingdom,omitempty"`
	Seed    int64    `json:"seed,omitempty"`
	Winner  int      `json:"winner,omitempty"`
	Scores  []int    `json:"scores,omitempty"`
}

// OfType returns the subset of events matching the given type, preserving order.
func OfType(events []Event, t EventType) []Event {
	var result []Event
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}
