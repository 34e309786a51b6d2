package game

// ChoiceKind distinguishes the two shapes of pending choice.
type ChoiceKind int

const (
	ChoiceDecision ChoiceKind = iota + 1
	ChoiceReaction
)

func (k ChoiceKind) String() string {
	switch k {
	case ChoiceDecision:
		return "Decision"
	case ChoiceReaction:
		return "Reaction"
	default:
		return "None"
	}
}

// Stage identifies which branch of a multi-stage card effect a pending
// decision belongs to, so the resolver can resume at the right point.
type Stage int

const (
	StageNone Stage = iota
	StageCellarDiscard
	StageChapelTrash
	StageHarbingerTopdeck
	StageMoneylenderTrash
	StageWorkshopGain
	StageRemodelTrash
	StageRemodelGain
	StageMineTrash
	StageMineGain
	StageArtisanGain
	StageArtisanTopdeck
	StageSentryTrash
	StageSentryDiscard
	StageSentryOrder
	StageThroneChoose
	StageMilitiaDiscard
	StageBureaucratTopdeck
	StageBanditTrash
)

func (s Stage) String() string {
	switch s {
	case StageCellarDiscard:
		return "cellar/discard"
	case StageChapelTrash:
		return "chapel/trash"
	case StageHarbingerTopdeck:
		return "harbinger/topdeck"
	case StageMoneylenderTrash:
		return "moneylender/trash"
	case StageWorkshopGain:
		return "workshop/gain"
	case StageRemodelTrash:
		return "remodel/trash"
	case StageRemodelGain:
		return "remodel/gain"
	case StageMineTrash:
		return "mine/trash"
	case StageMineGain:
		return "mine/gain"
	case StageArtisanGain:
		return "artisan/gain"
	case StageArtisanTopdeck:
		return "artisan/topdeck"
	case StageSentryTrash:
		return "sentry/trash"
	case StageSentryDiscard:
		return "sentry/discard"
	case StageSentryOrder:
		return "sentry/order"
	case StageThroneChoose:
		return "throne/choose"
	case StageMilitiaDiscard:
		return "militia/discard"
	case StageBureaucratTopdeck:
		return "bureaucrat/topdeck"
	case StageBanditTrash:
		return "bandit/trash"
	default:
		return "none"
	}
}

// PendingChoice is the single outstanding interactive choice blocking turn
// progress. At most one exists at a time; it is created by a DecisionRequired
// or ReactionOpportunity event and destroyed by the matching response event.
type PendingChoice struct {
	Kind    ChoiceKind `json:"kind"`
	Player  int        `json:"player"`
	EventID int        `json:"eventId,omitempty"` // id of the event that created it

	// Decision fields
	Prompt   string   `json:"prompt,omitempty"`
	FromZone Zone     `json:"fromZone,omitempty"`
	Options  []string `json:"options,omitempty"`
	Min      int      `json:"min"`
	Max      int      `json:"max,omitempty"`
	Card     string   `json:"card,omitempty"` // card being resolved
	Stage    Stage    `json:"stage,omitempty"`

	// Reaction fields
	TriggerCard   string   `json:"triggerCard,omitempty"`
	TriggerPlayer int      `json:"triggerPlayer,omitempty"`
	Reactions     []string `json:"reactions,omitempty"`

	Meta ChoiceMeta `json:"meta,omitempty"`
}

// ChoiceMeta is the typed resume context carried across decision round trips.
type ChoiceMeta struct {
	// Gain stages (Workshop/Remodel/Mine/Artisan).
	GainCeiling int  `json:"gainCeiling,omitempty"`
	GainZone    Zone `json:"gainZone,omitempty"`

	// Sentry: cards revealed from the top of the deck still to be routed.
	Routing []string `json:"routing,omitempty"`

	// Throne Room executions still owed, innermost card last.
	Throne []ThroneFrame `json:"throne,omitempty"`

	// Attack scan cursor (see AttackScan).
	Scan *AttackScan `json:"scan,omitempty"`
}

// ThroneFrame records one Throne Room target and how many extra executions of
// it remain.
type ThroneFrame struct {
	Card      string `json:"card"`
	Remaining int    `json:"remaining"`
	Cause     int    `json:"cause"` // event id the replays are attributed to
}

// AttackScan is the cursor state of an in-flight attack, kept inside the
// pending choice so the scan survives across command round trips.
type AttackScan struct {
	Card      string `json:"card"`
	Attacker  int    `json:"attacker"`
	Targets   []int  `json:"targets"`
	Cursor    int    `json:"cursor"`
	Blocked   []int  `json:"blocked,omitempty"`
	Cause     int    `json:"cause"`               // id of the AttackDeclared event
	Resolving bool   `json:"resolving,omitempty"` // false: reaction scan, true: per-target resolution
}

// IsBlocked reports whether the given target revealed a reaction.
func (s *AttackScan) IsBlocked(target int) bool {
	for _, b := range s.Blocked {
		if b == target {
			return true
		}
	}
	return false
}

func (p *PendingChoice) clone() *PendingChoice {
	if p == nil {
		return nil
	}
	c := *p
	c.Options = append([]string(nil), p.Options...)
	c.Reactions = append([]string(nil), p.Reactions...)
	c.Meta.Routing = append([]string(nil), p.Meta.Routing...)
	c.Meta.Throne = append([]ThroneFrame(nil), p.Meta.Throne...)
	if p.Meta.Scan != nil {
		s := *p.Meta.Scan
		s.Targets = append([]int(nil), p.Meta.Scan.Targets...)
		s.Blocked = append([]int(nil), p.Meta.Scan.Blocked...)
		c.Meta.Scan = &s
	}
	return &c
}
