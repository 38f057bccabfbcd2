package battle

import (
	"fmt"
	"math"
	"strings"
)

// DamageModifier is a composable hook contributing a multiplier on top of
// base and combo damage (equipment, battle buffs). Hooks must be pure
// functions of the card and battle state so preview and commit agree.
type DamageModifier func(card CardData) float64

// DamageBreakdown is the full accounting of one damage computation. Final is
// round(base × combo × other), rounding half away from zero.
type DamageBreakdown struct {
	BaseDamage      int     `json:"baseDamage"`
	ComboMultiplier float64 `json:"comboMultiplier"`
	ComboDamage     int     `json:"comboDamage"`
	OtherMultiplier float64 `json:"otherMultiplier"`
	OtherDamage     int     `json:"otherDamage"`
	FinalDamage     int     `json:"finalDamage"`
	Description     string  `json:"description"`
}

// TargetSet is the resolved target list for one card play.
type TargetSet struct {
	Enemies []*EnemyInstance
	Gates   []*Gate
}

// Empty reports whether resolution found nothing to hit.
func (t TargetSet) Empty() bool {
	return len(t.Enemies) == 0 && len(t.Gates) == 0
}

// PendingDamageInfo is the single in-flight preview result. At most one
// exists per session; it is replaced wholesale (clear-then-set), never
// mutated through aliases.
type PendingDamageInfo struct {
	Card      CardData        `json:"card"`
	Slot      int             `json:"slot"`
	Breakdown DamageBreakdown `json:"breakdown"`
	Targets   TargetSet       `json:"-"`
}

// DamagePipeline combines base weapon power, the combo multiplier, and the
// other-effects multiplier into a final integer damage value plus its
// breakdown. Given identical battle state it produces identical output for
// preview and commit calls.
type DamagePipeline struct {
	player    *PlayerState
	field     *GridField
	combos    *ComboEngine
	modifiers []DamageModifier
}

// NewDamagePipeline wires a pipeline to the session's collaborators.
func NewDamagePipeline(player *PlayerState, field *GridField, combos *ComboEngine) *DamagePipeline {
	return &DamagePipeline{player: player, field: field, combos: combos}
}

// AddModifier registers an other-effects hook. Modifiers multiply together;
// with none registered the other multiplier is 1.
func (p *DamagePipeline) AddModifier(modifier DamageModifier) {
	if p == nil || modifier == nil {
		return
	}
	p.modifiers = append(p.modifiers, modifier)
}

// ResolveTargets applies the card's range class against the field. A nil
// error with an empty set never happens: zero targets is a resolution
// failure.
func (p *DamagePipeline) ResolveTargets(card CardData) (TargetSet, error) {
	if p == nil || p.field == nil {
		return TargetSet{}, fmt.Errorf("damage pipeline not initialised")
	}
	var targets TargetSet
	switch card.Weapon.Range {
	case RangeAll:
		targets.Enemies = p.field.LivingEnemies()
	case RangeRow1:
		targets.Enemies = p.field.EnemiesInRow(0)
	case RangeRow2:
		targets.Enemies = p.field.EnemiesInRow(1)
	case RangeColumn:
		// Column shots pierce: the gate is hit even when enemies stand in
		// front of it.
		targets.Enemies = p.field.EnemiesInColumn(card.TargetColumn)
		if gate := p.field.GateInColumn(card.TargetColumn); gate != nil && !gate.IsDestroyed() {
			targets.Gates = append(targets.Gates, gate)
		}
	case RangeSelf:
		return TargetSet{}, fmt.Errorf("self-range card %s has no field target", card.ID)
	default:
		if enemy := p.field.FrontEnemyInColumn(card.TargetColumn); enemy != nil {
			targets.Enemies = append(targets.Enemies, enemy)
		} else if p.field.CanAttackGate(card.TargetColumn) {
			targets.Gates = append(targets.Gates, p.field.GateInColumn(card.TargetColumn))
		}
	}
	if targets.Empty() {
		return TargetSet{}, fmt.Errorf("no valid target for card %s in column %d", card.ID, card.TargetColumn)
	}
	return targets, nil
}

// ComputeDamage runs the full pipeline for a card. simulateCombo selects the
// combo engine mode: true previews without mutating combo progress, false
// advances it. The returned breakdown is identical in both modes for
// unchanged state.
func (p *DamagePipeline) ComputeDamage(card CardData, simulateCombo bool) (DamageBreakdown, ComboResult) {
	combo := ComboResult{Multiplier: 1.0}
	if p == nil {
		return DamageBreakdown{}, combo
	}
	base := card.Weapon.BasePower
	if p.player != nil {
		base += p.player.BaseAttackPower
	}
	combo = p.combos.RecordUse(card.Weapon, simulateCombo)

	other := 1.0
	for _, modifier := range p.modifiers {
		if value := modifier(card); value > 0 {
			other *= value
		}
	}

	comboDamage := roundHalfAway(float64(base) * combo.Multiplier)
	final := roundHalfAway(float64(base) * combo.Multiplier * other)
	breakdown := DamageBreakdown{
		BaseDamage:      base,
		ComboMultiplier: combo.Multiplier,
		ComboDamage:     comboDamage,
		OtherMultiplier: other,
		OtherDamage:     final - comboDamage,
		FinalDamage:     final,
	}
	breakdown.Description = describeBreakdown(card, breakdown)
	return breakdown, combo
}

// roundHalfAway rounds half away from zero. math.Round already implements
// that convention; the wrapper pins the choice in one place for the tests.
func roundHalfAway(value float64) int {
	return int(math.Round(value))
}

func describeBreakdown(card CardData, b DamageBreakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d", card.Weapon.Name, b.BaseDamage)
	if b.ComboMultiplier > 1 {
		fmt.Fprintf(&sb, " x%.2g combo", b.ComboMultiplier)
	}
	if b.OtherMultiplier != 1 {
		fmt.Fprintf(&sb, " x%.2g effects", b.OtherMultiplier)
	}
	fmt.Fprintf(&sb, " = %d", b.FinalDamage)
	return sb.String()
}
