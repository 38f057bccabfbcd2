package battle

import "time"

// CommandType enumerates the supported battle commands.
type CommandType string

const (
	CommandSelectColumnTarget   CommandType = "SelectColumnTarget"
	CommandSelectEnemyTarget    CommandType = "SelectEnemyTarget"
	CommandReselectLastTarget   CommandType = "ReselectLastTarget"
	CommandClearTargetSelection CommandType = "ClearTargetSelection"
	CommandPlayCard             CommandType = "PlayCard"
	CommandEndPlayerTurn        CommandType = "EndPlayerTurn"
	CommandAddActionBonus       CommandType = "AddActionBonus"
	CommandResetBattle          CommandType = "ResetBattle"
)

// Command represents an intent captured for processing on the next tick.
type Command struct {
	OriginTick uint64
	IssuedAt   time.Time
	Type       CommandType
	Column     *ColumnTargetCommand
	Enemy      *EnemyTargetCommand
	Play       *PlayCardCommand
	EndTurn    *EndTurnCommand
	Bonus      *ActionBonusCommand
}

// ColumnTargetCommand selects a grid column as the pending target.
type ColumnTargetCommand struct {
	Column int
}

// EnemyTargetCommand selects a living enemy, targeting its column.
type EnemyTargetCommand struct {
	EnemyID string
}

// PlayCardCommand previews or commits the card in a hand slot.
type PlayCardCommand struct {
	Slot int
}

// EndTurnCommand ends the player turn with a reason for the log.
type EndTurnCommand struct {
	Reason string
}

// ActionBonusCommand grants extra actions.
type ActionBonusCommand struct {
	Amount int
}

// Reject reasons surfaced to callers. Every rejection leaves battle state
// unchanged.
const (
	RejectWrongPhase       = "wrong_phase"
	RejectSlotOutOfRange   = "slot_out_of_range"
	RejectSlotEmpty        = "slot_empty"
	RejectHandNotReady     = "hand_not_ready"
	RejectHandDisabled     = "hand_disabled"
	RejectNoTargetSelected = "no_target_selected"
	RejectNoValidTarget    = "no_valid_target"
	RejectWeaponOnCooldown = "weapon_on_cooldown"
	RejectNoActions        = "no_actions"
	RejectUnknownCommand   = "unknown_command"
	RejectUnknownEnemy     = "unknown_enemy"
	RejectInvalidArgument  = "invalid_argument"
	RejectBattleOver       = "battle_over"
)

// CommandResult reports whether a command mutated the session and why not.
type CommandResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

func accepted() CommandResult {
	return CommandResult{Accepted: true}
}

func rejected(reason, message string) CommandResult {
	return CommandResult{Accepted: false, Reason: reason, Message: message}
}
