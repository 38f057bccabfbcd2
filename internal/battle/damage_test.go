package battle

import "testing"

type pipelineFixture struct {
	field    *GridField
	player   *PlayerState
	combos   *ComboEngine
	pipeline *DamagePipeline
}

func newPipelineFixture(t *testing.T, columns int) *pipelineFixture {
	t.Helper()
	catalog := DefaultCatalog()
	field := NewGridField(columns, catalog, NewDeterministicRNG("damage-test", "field"))
	player := NewPlayerState(100, 0, nil)
	combos := NewComboEngine(catalog.Combos)
	return &pipelineFixture{
		field:    field,
		player:   player,
		combos:   combos,
		pipeline: NewDamagePipeline(player, field, combos),
	}
}

func columnCard(weaponID string, column int, t *testing.T) CardData {
	t.Helper()
	weapon, ok := DefaultCatalog().Weapon(weaponID)
	if !ok {
		t.Fatalf("weapon %q missing from default catalog", weaponID)
	}
	card := NewCard(weapon, 0)
	card.TargetColumn = column
	return card
}

func TestResolveTargetsFrontEnemyFirst(t *testing.T) {
	fx := newPipelineFixture(t, 2)
	front := testEnemy(t, "grunt")
	back := testEnemy(t, "bruiser")
	fx.field.PlaceEnemy(front, GridPosition{Column: 0, Row: 0})
	fx.field.PlaceEnemy(back, GridPosition{Column: 0, Row: 1})

	targets, err := fx.pipeline.ResolveTargets(columnCard("shortsword", 0, t))
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if len(targets.Enemies) != 1 || targets.Enemies[0] != front {
		t.Fatalf("expected single front enemy target")
	}
	if len(targets.Gates) != 0 {
		t.Fatalf("expected no gate target while enemies screen it")
	}
}

func TestResolveTargetsFallsBackToGate(t *testing.T) {
	fx := newPipelineFixture(t, 2)

	targets, err := fx.pipeline.ResolveTargets(columnCard("shortsword", 1, t))
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if len(targets.Gates) != 1 || targets.Gates[0] != fx.field.GateInColumn(1) {
		t.Fatalf("expected empty column to resolve to its gate")
	}
}

func TestResolveTargetsColumnPiercesToGate(t *testing.T) {
	fx := newPipelineFixture(t, 2)
	front := testEnemy(t, "grunt")
	back := testEnemy(t, "grunt")
	fx.field.PlaceEnemy(front, GridPosition{Column: 0, Row: 0})
	fx.field.PlaceEnemy(back, GridPosition{Column: 0, Row: 1})

	targets, err := fx.pipeline.ResolveTargets(columnCard("ballista", 0, t))
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if len(targets.Enemies) != 2 {
		t.Fatalf("expected both column enemies, got %d", len(targets.Enemies))
	}
	if len(targets.Gates) != 1 {
		t.Fatalf("expected the screened gate to still be hit, got %d gates", len(targets.Gates))
	}
}

func TestResolveTargetsRowAndAll(t *testing.T) {
	fx := newPipelineFixture(t, 3)
	fx.field.PlaceEnemy(testEnemy(t, "grunt"), GridPosition{Column: 0, Row: 0})
	fx.field.PlaceEnemy(testEnemy(t, "grunt"), GridPosition{Column: 2, Row: 0})
	fx.field.PlaceEnemy(testEnemy(t, "grunt"), GridPosition{Column: 1, Row: 1})

	row, err := fx.pipeline.ResolveTargets(columnCard("halberd", -1, t))
	if err != nil {
		t.Fatalf("unexpected row resolve error: %v", err)
	}
	if len(row.Enemies) != 2 {
		t.Fatalf("expected 2 front-row targets, got %d", len(row.Enemies))
	}

	all, err := fx.pipeline.ResolveTargets(columnCard("stormcaller", -1, t))
	if err != nil {
		t.Fatalf("unexpected all resolve error: %v", err)
	}
	if len(all.Enemies) != 3 {
		t.Fatalf("expected all 3 enemies, got %d", len(all.Enemies))
	}
	if len(all.Gates) != 0 {
		t.Fatalf("all-range cards must not hit gates, got %d", len(all.Gates))
	}
}

func TestResolveTargetsErrors(t *testing.T) {
	fx := newPipelineFixture(t, 2)

	// Row sweep over an empty field has nothing to hit.
	if _, err := fx.pipeline.ResolveTargets(columnCard("halberd", -1, t)); err == nil {
		t.Fatalf("expected resolve error on an empty row")
	}

	// Front-range card into a column with a destroyed gate.
	fx.field.GateInColumn(0).Health = 0
	if _, err := fx.pipeline.ResolveTargets(columnCard("shortsword", 0, t)); err == nil {
		t.Fatalf("expected resolve error for destroyed gate column")
	}

	self := NewCard(WeaponData{ID: "ward", Range: RangeSelf}, 0)
	if _, err := fx.pipeline.ResolveTargets(self); err == nil {
		t.Fatalf("expected resolve error for self-range card")
	}
}

func TestComputeDamagePreviewMatchesCommit(t *testing.T) {
	fx := newPipelineFixture(t, 2)
	card := columnCard("shortsword", 0, t)

	// Advance twin-edge so the next slash completes it.
	fx.combos.RecordUse(card.Weapon, false)

	preview, previewCombo := fx.pipeline.ComputeDamage(card, true)
	commit, commitCombo := fx.pipeline.ComputeDamage(card, false)

	if preview.FinalDamage != commit.FinalDamage {
		t.Fatalf("preview damage %d diverged from commit %d", preview.FinalDamage, commit.FinalDamage)
	}
	if preview != commit {
		t.Fatalf("preview breakdown %+v diverged from commit %+v", preview, commit)
	}
	if previewCombo.Multiplier != commitCombo.Multiplier {
		t.Fatalf("preview multiplier %v diverged from commit %v", previewCombo.Multiplier, commitCombo.Multiplier)
	}
	if commit.FinalDamage != 45 {
		t.Fatalf("expected 30 x 1.5 = 45, got %d", commit.FinalDamage)
	}
}

func TestComputeDamageAddsPlayerAttackPower(t *testing.T) {
	fx := newPipelineFixture(t, 2)
	fx.player.BaseAttackPower = 10
	card := columnCard("shortsword", 0, t)

	breakdown, _ := fx.pipeline.ComputeDamage(card, true)
	if breakdown.BaseDamage != 40 {
		t.Fatalf("expected base 30+10, got %d", breakdown.BaseDamage)
	}
	if breakdown.FinalDamage != 40 {
		t.Fatalf("expected final 40 with no multipliers, got %d", breakdown.FinalDamage)
	}
}

func TestComputeDamageOtherModifiers(t *testing.T) {
	fx := newPipelineFixture(t, 2)
	fx.pipeline.AddModifier(func(CardData) float64 { return 1.25 })
	card := columnCard("shortsword", 0, t)

	breakdown, _ := fx.pipeline.ComputeDamage(card, true)
	if breakdown.OtherMultiplier != 1.25 {
		t.Fatalf("expected other multiplier 1.25, got %v", breakdown.OtherMultiplier)
	}
	if breakdown.FinalDamage != 38 {
		t.Fatalf("expected round(30 x 1.25) = 38, got %d", breakdown.FinalDamage)
	}
	if breakdown.OtherDamage != breakdown.FinalDamage-breakdown.ComboDamage {
		t.Fatalf("breakdown components do not account for the final value: %+v", breakdown)
	}
}

func TestRoundHalfAway(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{2.4, 2},
		{2.5, 3},
		{2.6, 3},
		{37.5, 38},
		{0, 0},
	}
	for _, tc := range cases {
		if got := roundHalfAway(tc.in); got != tc.want {
			t.Fatalf("roundHalfAway(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
