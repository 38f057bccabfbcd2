package battle

import "fmt"

// GateType classifies a gate's base health and default behaviour.
type GateType string

const (
	GateStandard GateType = "standard"
	GateElite    GateType = "elite"
	GateSupport  GateType = "support"
	GateSummoner GateType = "summoner"
	GateFortress GateType = "fortress"
)

// SpawnPattern selects the eligibility rule the spawn scheduler applies to a
// gate each enemy turn.
type SpawnPattern string

const (
	// PatternA spawns a fixed pair every time the interval elapses.
	PatternA SpawnPattern = "pattern_a"
	// PatternB spawns three enemies every third turn.
	PatternB SpawnPattern = "pattern_b"
	// PatternC opens with a five-enemy wave, then trickles one every two
	// turns. The opening wave ignores the interval floor.
	PatternC SpawnPattern = "pattern_c"
	// PatternPeriodic spawns whenever the turn counter is a multiple of the
	// gate's interval.
	PatternPeriodic SpawnPattern = "periodic"
	// PatternOnDamage activates once the gate drops below 80% health.
	PatternOnDamage SpawnPattern = "on_damage"
	// PatternDefensive activates once the gate drops below 50% health.
	PatternDefensive SpawnPattern = "defensive"
	// PatternContinuous is always eligible, subject to the interval floor.
	PatternContinuous SpawnPattern = "continuous"
)

// GateEffectType enumerates the strategic auras a gate can carry.
type GateEffectType string

const (
	EffectNone           GateEffectType = ""
	EffectBuffAllEnemies GateEffectType = "buff_all_enemies"
	EffectAttackBoost    GateEffectType = "attack_boost"
	EffectDefenseBoost   GateEffectType = "defense_boost"
	EffectRegeneration   GateEffectType = "regeneration"
)

// GateEffect pairs an aura with its strength multiplier.
type GateEffect struct {
	Type     GateEffectType `json:"type,omitempty"`
	Strength float64        `json:"strength,omitempty" jsonschema:"minimum=0"`
}

// GateConfig is the designer base configuration for one gate type.
type GateConfig struct {
	Type           GateType     `json:"type"`
	BaseHealth     int          `json:"baseHealth" jsonschema:"minimum=1"`
	Pattern        SpawnPattern `json:"pattern"`
	SummonInterval int          `json:"summonInterval" jsonschema:"minimum=1"`
	SpawnPool      []string     `json:"spawnPool,omitempty" jsonschema:"description=Enemy ids this gate may summon; empty uses the type default"`
	Effect         GateEffect   `json:"effect,omitempty"`
}

// Gate is a destructible, column-aligned spawner sitting behind the grid.
// Gates are created once at battle start and never deleted; destruction only
// zeroes health and disables the effect and spawner.
type Gate struct {
	ID             string       `json:"id"`
	Column         int          `json:"column"`
	Type           GateType     `json:"type"`
	Health         int          `json:"health"`
	MaxHealth      int          `json:"maxHealth"`
	Pattern        SpawnPattern `json:"pattern"`
	SummonInterval int          `json:"summonInterval"`
	SpawnPool      []string     `json:"spawnPool,omitempty"`
	Effect         GateEffect   `json:"effect,omitempty"`

	LastSummonTurn  int  `json:"lastSummonTurn"`
	FirstSummonDone bool `json:"firstSummonDone"`
}

// NewGate builds a gate for the given column from a base configuration.
func NewGate(column int, cfg GateConfig) *Gate {
	interval := cfg.SummonInterval
	if interval <= 0 {
		interval = 1
	}
	return &Gate{
		ID:             fmt.Sprintf("gate-%d", column),
		Column:         column,
		Type:           cfg.Type,
		Health:         cfg.BaseHealth,
		MaxHealth:      cfg.BaseHealth,
		Pattern:        cfg.Pattern,
		SummonInterval: interval,
		SpawnPool:      append([]string(nil), cfg.SpawnPool...),
		Effect:         cfg.Effect,
	}
}

// IsDestroyed reports whether the gate has been reduced to zero health.
func (g *Gate) IsDestroyed() bool {
	return g == nil || g.Health <= 0
}

// ApplyDamage reduces gate health, clamping to [0, MaxHealth], and returns
// the amount absorbed. A live defense-boost aura halves incoming damage.
func (g *Gate) ApplyDamage(amount int) int {
	if g == nil || g.IsDestroyed() || amount <= 0 {
		return 0
	}
	if g.Effect.Type == EffectDefenseBoost {
		amount /= 2
		if amount < 1 {
			amount = 1
		}
	}
	if amount > g.Health {
		amount = g.Health
	}
	g.Health -= amount
	return amount
}

// Heal restores gate health up to the maximum.
func (g *Gate) Heal(amount int) int {
	if g == nil || g.IsDestroyed() || amount <= 0 {
		return 0
	}
	if g.Health+amount > g.MaxHealth {
		amount = g.MaxHealth - g.Health
	}
	g.Health += amount
	return amount
}

// HealthRatio returns current health as a fraction of the maximum.
func (g *Gate) HealthRatio() float64 {
	if g == nil || g.MaxHealth <= 0 {
		return 0
	}
	return float64(g.Health) / float64(g.MaxHealth)
}

// EffectActive reports whether the gate's aura should still tick.
func (g *Gate) EffectActive() bool {
	return g != nil && !g.IsDestroyed() && g.Effect.Type != EffectNone
}

// GateLayout returns the fixed design table mapping a total gate count to the
// gate type per column. The table is deliberately deterministic so battles
// with equal configs open identically.
func GateLayout(count int) []GateType {
	switch count {
	case 1:
		return []GateType{GateFortress}
	case 2:
		return []GateType{GateSupport, GateStandard}
	case 3:
		return []GateType{GateSupport, GateStandard, GateElite}
	case 4:
		return []GateType{GateSupport, GateSummoner, GateStandard, GateElite}
	case 5:
		return []GateType{GateSupport, GateSummoner, GateStandard, GateElite, GateFortress}
	case 6:
		return []GateType{GateSupport, GateSummoner, GateStandard, GateStandard, GateElite, GateFortress}
	}
	if count < 1 {
		return nil
	}
	cycle := []GateType{GateSupport, GateStandard, GateElite}
	layout := make([]GateType, count)
	for i := range layout {
		layout[i] = cycle[i%len(cycle)]
	}
	return layout
}
