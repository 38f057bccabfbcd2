package battle

import (
	"context"

	"gatefall/server/logging"
)

const (
	// EventBattleStarted is emitted when a session begins or resets.
	EventBattleStarted logging.EventType = "battle.started"
	// EventCardPlayed is emitted when a card commit resolves.
	EventCardPlayed logging.EventType = "battle.card_played"
	// EventGateDestroyed is emitted when a gate falls.
	EventGateDestroyed logging.EventType = "battle.gate_destroyed"
	// EventSpawnWave is emitted when gates place enemies.
	EventSpawnWave logging.EventType = "battle.spawn_wave"
	// EventBattleEnded is emitted when a terminal phase is entered.
	EventBattleEnded logging.EventType = "battle.ended"
	// EventCommandRejected is emitted when a command bounces.
	EventCommandRejected logging.EventType = "battle.command_rejected"
)

// BattleStartedPayload describes the opening battlefield.
type BattleStartedPayload struct {
	Columns int    `json:"columns"`
	Seed    string `json:"seed"`
}

// CardPlayedPayload describes a committed card play.
type CardPlayedPayload struct {
	WeaponID    string `json:"weaponId"`
	FinalDamage int    `json:"finalDamage"`
	EnemiesHit  int    `json:"enemiesHit"`
	GatesHit    int    `json:"gatesHit"`
}

// GateDestroyedPayload identifies the fallen gate.
type GateDestroyedPayload struct {
	GateID   string `json:"gateId"`
	GateType string `json:"gateType"`
}

// SpawnWavePayload describes one enemy-turn spawn pass.
type SpawnWavePayload struct {
	Turn    int `json:"turn"`
	Spawned int `json:"spawned"`
}

// BattleEndedPayload mirrors the terminal summary.
type BattleEndedPayload struct {
	Victory   bool   `json:"victory"`
	Condition string `json:"condition"`
	TurnsUsed int    `json:"turnsUsed"`
}

// CommandRejectedPayload records why a command bounced.
type CommandRejectedPayload struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

func battleRef(sessionID string) logging.EntityRef {
	return logging.EntityRef{ID: sessionID, Kind: logging.EntityKindBattle}
}

// BattleStarted publishes a battle.started event.
func BattleStarted(ctx context.Context, pub logging.Publisher, tick uint64, sessionID string, columns int, seed string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBattleStarted,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  BattleStartedPayload{Columns: columns, Seed: seed},
	})
}

// CardPlayed publishes a battle.card_played event.
func CardPlayed(ctx context.Context, pub logging.Publisher, tick uint64, sessionID, weaponID string, finalDamage, enemiesHit, gatesHit int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCardPlayed,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  CardPlayedPayload{WeaponID: weaponID, FinalDamage: finalDamage, EnemiesHit: enemiesHit, GatesHit: gatesHit},
	})
}

// GateDestroyed publishes a battle.gate_destroyed event.
func GateDestroyed(ctx context.Context, pub logging.Publisher, tick uint64, sessionID, gateID, gateType string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventGateDestroyed,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Targets:  []logging.EntityRef{{ID: gateID, Kind: logging.EntityKindGate}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  GateDestroyedPayload{GateID: gateID, GateType: gateType},
	})
}

// SpawnWave publishes a battle.spawn_wave event.
func SpawnWave(ctx context.Context, pub logging.Publisher, tick uint64, sessionID string, turn, spawned int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSpawnWave,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  SpawnWavePayload{Turn: turn, Spawned: spawned},
	})
}

// BattleEnded publishes a battle.ended event.
func BattleEnded(ctx context.Context, pub logging.Publisher, tick uint64, sessionID string, victory bool, condition string, turnsUsed int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBattleEnded,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  BattleEndedPayload{Victory: victory, Condition: condition, TurnsUsed: turnsUsed},
	})
}

// CommandRejected publishes a battle.command_rejected event.
func CommandRejected(ctx context.Context, pub logging.Publisher, tick uint64, sessionID, command, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCommandRejected,
		Tick:     tick,
		Actor:    battleRef(sessionID),
		Severity: logging.SeverityDebug,
		Category: logging.CategorySystem,
		Payload:  CommandRejectedPayload{Command: command, Reason: reason},
	})
}
