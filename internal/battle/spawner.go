package battle

import (
	"math/rand"

	"gatefall/server/internal/telemetry"
)

const (
	patternAWave        = 2
	patternBWave        = 3
	patternBTurnStride  = 3
	patternCOpeningWave = 5
	patternCTrickle     = 1
	patternCInterval    = 2
	onDamageThreshold   = 0.8
	defensiveThreshold  = 0.5
)

// SpawnScheduler runs each gate's spawn pattern against the field during the
// enemy turn. It never mutates gates it skips, and a gate with unresolvable
// enemy data degrades to a logged no-op rather than blocking later turns.
type SpawnScheduler struct {
	field   *GridField
	catalog *Catalog
	rng     *rand.Rand
	logger  telemetry.Logger
}

// NewSpawnScheduler wires a scheduler to a field and catalog.
func NewSpawnScheduler(field *GridField, catalog *Catalog, rng *rand.Rand, logger telemetry.Logger) *SpawnScheduler {
	return &SpawnScheduler{field: field, catalog: catalog, rng: rng, logger: logger}
}

// Eligible evaluates the gate's pattern against the current turn without
// mutating anything.
func (s *SpawnScheduler) Eligible(gate *Gate, turn int) bool {
	if s == nil || gate == nil || gate.IsDestroyed() {
		return false
	}
	// Pattern C's opening wave ignores the interval floor.
	if gate.Pattern == PatternC && !gate.FirstSummonDone {
		return true
	}
	if turn-gate.LastSummonTurn < gate.SummonInterval {
		return false
	}
	switch gate.Pattern {
	case PatternA:
		return true
	case PatternB:
		return turn%patternBTurnStride == 0
	case PatternC:
		return turn-gate.LastSummonTurn >= patternCInterval
	case PatternPeriodic:
		return gate.SummonInterval > 0 && turn%gate.SummonInterval == 0
	case PatternOnDamage:
		return gate.HealthRatio() < onDamageThreshold
	case PatternDefensive:
		return gate.HealthRatio() < defensiveThreshold
	case PatternContinuous:
		return true
	}
	return false
}

// WaveSize returns how many enemies the gate's pattern produces this turn.
func (s *SpawnScheduler) WaveSize(gate *Gate) int {
	if gate == nil {
		return 0
	}
	switch gate.Pattern {
	case PatternA:
		return patternAWave
	case PatternB:
		return patternBWave
	case PatternC:
		if !gate.FirstSummonDone {
			return patternCOpeningWave
		}
		return patternCTrickle
	default:
		return 1
	}
}

// RunGate executes one spawn attempt for a gate. On success it places the
// wave at random empty cells (stopping early when the grid fills), tags each
// enemy with the gate id, and advances the gate's summon history. It returns
// the enemies actually placed.
func (s *SpawnScheduler) RunGate(gate *Gate, turn int) []*EnemyInstance {
	if s == nil || s.field == nil || !s.Eligible(gate, turn) {
		return nil
	}
	pool := gate.SpawnPool
	if len(pool) == 0 {
		pool = s.catalog.GateConfigFor(gate.Type).SpawnPool
	}
	if len(pool) == 0 {
		if s.logger != nil {
			s.logger.Printf("gate %s has no spawn pool; skipping", gate.ID)
		}
		return nil
	}

	var spawned []*EnemyInstance
	for i := 0; i < s.WaveSize(gate); i++ {
		position := s.field.RandomEmptyPosition()
		if position.IsNone() {
			break
		}
		enemyID := pool[randomIndex(s.rng, len(pool))]
		def, ok := s.catalog.Enemy(enemyID)
		if !ok {
			if s.logger != nil {
				s.logger.Printf("gate %s references unknown enemy %q; skipping", gate.ID, enemyID)
			}
			continue
		}
		enemy := NewEnemyInstance(def, gate.ID)
		if !s.field.PlaceEnemy(enemy, position) {
			continue
		}
		spawned = append(spawned, enemy)
	}

	if len(spawned) > 0 || (gate.Pattern == PatternC && !gate.FirstSummonDone) {
		gate.LastSummonTurn = turn
		if gate.Pattern == PatternC {
			gate.FirstSummonDone = true
		}
	}
	return spawned
}

// Run processes every standing gate in column order and returns all enemies
// placed this turn.
func (s *SpawnScheduler) Run(turn int) []*EnemyInstance {
	if s == nil || s.field == nil {
		return nil
	}
	var spawned []*EnemyInstance
	for _, gate := range s.field.Gates() {
		spawned = append(spawned, s.RunGate(gate, turn)...)
	}
	return spawned
}
