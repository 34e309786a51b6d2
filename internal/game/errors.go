package game

import "fmt"

// ErrorCode classifies a command rejection. Rejections carry no state change
// and no events; the caller may retry with corrected input.
type ErrorCode int

const (
	ErrUnknownCommand ErrorCode = iota + 1
	ErrGameNotStarted
	ErrGameOver
	ErrNotYourTurn
	ErrWrongPhase
	ErrNoActions
	ErrNoBuys
	ErrCardNotInHand
	ErrCardNotInPlay
	ErrNotAnAction
	ErrNotATreasure
	ErrUnknownCard
	ErrSupplyEmpty
	ErrInsufficientCoins
	ErrChoicePending
	ErrNoPendingChoice
	ErrWrongChoiceOwner
	ErrWrongChoiceKind
	ErrRequiredChoice
	ErrInvalidSelection
	ErrBadUndoTarget
	ErrBadConfig
)

func (c ErrorCode) String() string {
	switch c {
	case ErrUnknownCommand:
		return "unknown_command"
	case ErrGameNotStarted:
		return "game_not_started"
	case ErrGameOver:
		return "game_over"
	case ErrNotYourTurn:
		return "not_your_turn"
	case ErrWrongPhase:
		return "wrong_phase"
	case ErrNoActions:
		return "no_actions"
	case ErrNoBuys:
		return "no_buys"
	case ErrCardNotInHand:
		return "card_not_in_hand"
	case ErrCardNotInPlay:
		return "card_not_in_play"
	case ErrNotAnAction:
		return "not_an_action"
	case ErrNotATreasure:
		return "not_a_treasure"
	case ErrUnknownCard:
		return "unknown_card"
	case ErrSupplyEmpty:
		return "supply_empty"
	case ErrInsufficientCoins:
		return "insufficient_coins"
	case ErrChoicePending:
		return "choice_pending"
	case ErrNoPendingChoice:
		return "no_pending_choice"
	case ErrWrongChoiceOwner:
		return "wrong_choice_owner"
	case ErrWrongChoiceKind:
		return "wrong_choice_kind"
	case ErrRequiredChoice:
		return "required_choice"
	case ErrInvalidSelection:
		return "invalid_selection"
	case ErrBadUndoTarget:
		return "bad_undo_target"
	case ErrBadConfig:
		return "bad_config"
	default:
		return "unknown"
	}
}

// RuleError is the typed failure returned by every rejected command.
type RuleError struct {
	Code ErrorCode
	Msg  string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func ruleErr(code ErrorCode, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code from a command error, or 0 for nil/foreign
// errors.
func CodeOf(err error) ErrorCode {
	if re, ok := err.(*RuleError); ok {
		return re.Code
	}
	return 0
}
