package battle

// EventKind identifies the type of an outbound battle event.
type EventKind string

const (
	// EventTurnChanged announces a new turn counter value and phase.
	EventTurnChanged EventKind = "turn_changed"
	// EventGameStateChanged announces a phase transition.
	EventGameStateChanged EventKind = "game_state_changed"
	// EventPlayerDataChanged announces a player health or power change.
	EventPlayerDataChanged EventKind = "player_data_changed"
	// EventHandGenerated announces a freshly generated hand.
	EventHandGenerated EventKind = "hand_generated"
	// EventHandCleared announces the hand being emptied.
	EventHandCleared EventKind = "hand_cleared"
	// EventCardPlayed announces a committed card with its result.
	EventCardPlayed EventKind = "card_played"
	// EventPendingDamageCalculated announces a new preview.
	EventPendingDamageCalculated EventKind = "pending_damage_calculated"
	// EventPendingDamageApplied announces a committed preview.
	EventPendingDamageApplied EventKind = "pending_damage_applied"
	// EventPendingDamageCleared announces a dropped preview.
	EventPendingDamageCleared EventKind = "pending_damage_cleared"
	// EventActionsChanged announces a remaining/max action change.
	EventActionsChanged EventKind = "actions_changed"
	// EventActionsExhausted announces the budget reaching zero.
	EventActionsExhausted EventKind = "actions_exhausted"
	// EventAutoTurnEnd announces a scheduled automatic turn end firing.
	EventAutoTurnEnd EventKind = "auto_turn_end"
	// EventGateDamaged announces gate health loss.
	EventGateDamaged EventKind = "gate_damaged"
	// EventGateDestroyed announces a gate reaching zero health.
	EventGateDestroyed EventKind = "gate_destroyed"
	// EventEnemySpawned announces an enemy placed on the grid.
	EventEnemySpawned EventKind = "enemy_spawned"
	// EventEnemyDefeated announces an enemy removed from the grid.
	EventEnemyDefeated EventKind = "enemy_defeated"
	// EventBattleEnded announces a terminal phase with its summary.
	EventBattleEnded EventKind = "battle_ended"
)

// Event is one outbound notification. Events accumulate in the session
// journal during a tick and are drained by the gateway for broadcast.
type Event struct {
	Kind     EventKind `json:"kind"`
	Tick     uint64    `json:"tick"`
	EntityID string    `json:"entityId,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// TurnChangedPayload carries the turn counter and phase.
type TurnChangedPayload struct {
	Turn  int   `json:"turn"`
	Phase Phase `json:"phase"`
}

// PlayerDataPayload carries the player record after a change.
type PlayerDataPayload struct {
	Health          int `json:"health"`
	MaxHealth       int `json:"maxHealth"`
	BaseAttackPower int `json:"baseAttackPower"`
}

// HandPayload carries the generated card list.
type HandPayload struct {
	Cards []*CardData `json:"cards"`
}

// CardPlayedPayload carries the result of a committed card.
type CardPlayedPayload struct {
	Card         CardData        `json:"card"`
	Slot         int             `json:"slot"`
	Breakdown    DamageBreakdown `json:"breakdown"`
	EnemyIDs     []string        `json:"enemyIds,omitempty"`
	GateIDs      []string        `json:"gateIds,omitempty"`
	CombosClosed []string        `json:"combosClosed,omitempty"`
}

// PendingDamagePayload carries a preview's breakdown and target ids.
type PendingDamagePayload struct {
	Card      CardData        `json:"card"`
	Slot      int             `json:"slot"`
	Breakdown DamageBreakdown `json:"breakdown"`
	EnemyIDs  []string        `json:"enemyIds,omitempty"`
	GateIDs   []string        `json:"gateIds,omitempty"`
}

// ActionsPayload carries the action budget after a change.
type ActionsPayload struct {
	Remaining int `json:"remaining"`
	Max       int `json:"max"`
}

// GatePayload carries a gate's health after a change.
type GatePayload struct {
	GateID    string   `json:"gateId"`
	Column    int      `json:"column"`
	Type      GateType `json:"type"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"maxHealth"`
}

// EnemyPayload carries an enemy's identity and cell.
type EnemyPayload struct {
	EnemyID      string       `json:"enemyId"`
	DefinitionID string       `json:"definitionId"`
	Position     GridPosition `json:"position"`
	Health       int          `json:"health"`
	GateID       string       `json:"gateId,omitempty"`
}

// journal accumulates events during a tick. Single writer: the session.
type journal struct {
	events []Event
}

func (j *journal) append(event Event) {
	j.events = append(j.events, event)
}

// Drain returns accumulated events and empties the journal.
func (j *journal) Drain() []Event {
	if j == nil || len(j.events) == 0 {
		return nil
	}
	drained := j.events
	j.events = nil
	return drained
}
