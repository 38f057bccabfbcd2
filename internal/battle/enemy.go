package battle

import "github.com/google/uuid"

// EnemyDefinition is the static designer definition for one enemy kind.
type EnemyDefinition struct {
	ID          string `json:"id" jsonschema:"title=Enemy id,pattern=^[a-z0-9\\-]+$"`
	Name        string `json:"name"`
	Health      int    `json:"health" jsonschema:"minimum=1"`
	AttackPower int    `json:"attackPower" jsonschema:"minimum=0"`
}

// EnemyInstance is a live enemy bound to a grid cell. Instances are created
// by the spawn scheduler and removed from the grid when health reaches zero.
type EnemyInstance struct {
	ID             string       `json:"id"`
	DefinitionID   string       `json:"definitionId"`
	Position       GridPosition `json:"position"`
	Health         int          `json:"health"`
	MaxHealth      int          `json:"maxHealth"`
	AttackPower    int          `json:"attackPower"`
	AssignedGateID string       `json:"assignedGateId"`

	attackBuff float64
}

// NewEnemyInstance instantiates a definition off-grid; the caller places it.
func NewEnemyInstance(def EnemyDefinition, gateID string) *EnemyInstance {
	return &EnemyInstance{
		ID:             uuid.NewString(),
		DefinitionID:   def.ID,
		Position:       NoPosition,
		Health:         def.Health,
		MaxHealth:      def.Health,
		AttackPower:    def.AttackPower,
		AssignedGateID: gateID,
	}
}

// Alive reports whether the enemy still has health remaining.
func (e *EnemyInstance) Alive() bool {
	return e != nil && e.Health > 0
}

// ApplyDamage reduces health, flooring at zero, and returns the amount
// actually absorbed.
func (e *EnemyInstance) ApplyDamage(amount int) int {
	if e == nil || amount <= 0 {
		return 0
	}
	if amount > e.Health {
		amount = e.Health
	}
	e.Health -= amount
	return amount
}

// BuffAttack applies a multiplicative attack buff for the current enemy
// round. Buffs do not stack across rounds; ClearBuffs resets them.
func (e *EnemyInstance) BuffAttack(multiplier float64) {
	if e == nil || multiplier <= 0 {
		return
	}
	if multiplier > e.attackBuff {
		e.attackBuff = multiplier
	}
}

// ClearBuffs drops any round-scoped buffs.
func (e *EnemyInstance) ClearBuffs() {
	if e == nil {
		return
	}
	e.attackBuff = 0
}

// EffectiveAttack returns the attack power with round buffs applied.
func (e *EnemyInstance) EffectiveAttack() int {
	if e == nil {
		return 0
	}
	if e.attackBuff > 1 {
		return int(float64(e.AttackPower) * e.attackBuff)
	}
	return e.AttackPower
}
