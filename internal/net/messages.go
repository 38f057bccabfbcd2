package net

import (
	"fmt"

	"gatefall/server/internal/battle"
)

// clientMessage is the JSON envelope accepted on the websocket.
type clientMessage struct {
	Type    string `json:"type"`
	Seq     uint64 `json:"seq,omitempty"`
	Slot    *int   `json:"slot,omitempty"`
	Column  *int   `json:"column,omitempty"`
	EnemyID string `json:"enemyId,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Amount  *int   `json:"amount,omitempty"`
}

// command maps an envelope to a battle command.
func (m clientMessage) command() (battle.Command, error) {
	switch m.Type {
	case "select_column":
		if m.Column == nil {
			return battle.Command{}, fmt.Errorf("select_column requires column")
		}
		return battle.Command{
			Type:   battle.CommandSelectColumnTarget,
			Column: &battle.ColumnTargetCommand{Column: *m.Column},
		}, nil
	case "select_enemy":
		if m.EnemyID == "" {
			return battle.Command{}, fmt.Errorf("select_enemy requires enemyId")
		}
		return battle.Command{
			Type:  battle.CommandSelectEnemyTarget,
			Enemy: &battle.EnemyTargetCommand{EnemyID: m.EnemyID},
		}, nil
	case "reselect_target":
		return battle.Command{Type: battle.CommandReselectLastTarget}, nil
	case "clear_target":
		return battle.Command{Type: battle.CommandClearTargetSelection}, nil
	case "play_card":
		if m.Slot == nil {
			return battle.Command{}, fmt.Errorf("play_card requires slot")
		}
		return battle.Command{
			Type: battle.CommandPlayCard,
			Play: &battle.PlayCardCommand{Slot: *m.Slot},
		}, nil
	case "end_turn":
		return battle.Command{
			Type:    battle.CommandEndPlayerTurn,
			EndTurn: &battle.EndTurnCommand{Reason: m.Reason},
		}, nil
	case "add_action_bonus":
		if m.Amount == nil {
			return battle.Command{}, fmt.Errorf("add_action_bonus requires amount")
		}
		return battle.Command{
			Type:  battle.CommandAddActionBonus,
			Bonus: &battle.ActionBonusCommand{Amount: *m.Amount},
		}, nil
	case "reset":
		return battle.Command{Type: battle.CommandResetBattle}, nil
	}
	return battle.Command{}, fmt.Errorf("unsupported message type %q", m.Type)
}

// serverMessage is the JSON envelope pushed to clients.
type serverMessage struct {
	Type     string           `json:"type"`
	ClientID string           `json:"clientId,omitempty"`
	Seq      uint64           `json:"seq,omitempty"`
	Tick     uint64           `json:"tick,omitempty"`
	Snapshot *battle.Snapshot `json:"snapshot,omitempty"`
	Events   []battle.Event   `json:"events,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Message  string           `json:"message,omitempty"`
	Retry    bool             `json:"retry,omitempty"`
}
