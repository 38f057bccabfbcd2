package battle

// VictoryCondition names the reason a battle ended. Precedence is fixed:
// gates-destroyed is checked before enemies-defeated, and victory before
// defeat, so simultaneous conditions report deterministically.
type VictoryCondition string

const (
	ConditionNone            VictoryCondition = ""
	ConditionGatesDestroyed  VictoryCondition = "gates_destroyed"
	ConditionEnemiesDefeated VictoryCondition = "enemies_defeated"
	ConditionPlayerDied      VictoryCondition = "player_died"
	ConditionTurnLimit       VictoryCondition = "turn_limit"
)

// BattleStats accumulates over the lifetime of one battle.
type BattleStats struct {
	DamageDealt     int `json:"damageDealt"`
	DamageTaken     int `json:"damageTaken"`
	EnemiesDefeated int `json:"enemiesDefeated"`
	GatesDestroyed  int `json:"gatesDestroyed"`
	CardsPlayed     int `json:"cardsPlayed"`
	EnemiesSpawned  int `json:"enemiesSpawned"`
}

// BattleSummary is the record snapshotted the instant a terminal phase is
// entered; nothing mutates it afterwards.
type BattleSummary struct {
	Victory   bool             `json:"victory"`
	Condition VictoryCondition `json:"condition"`
	TurnsUsed int              `json:"turnsUsed"`
	Stats     BattleStats      `json:"stats"`
}
