package battle

import "testing"

// quietCatalog returns the default catalog with every gate's spawn pool and
// aura removed so scenario tests control the field exactly.
func quietCatalog() *Catalog {
	catalog := DefaultCatalog()
	for gateType, cfg := range catalog.Gates {
		cfg.SpawnPool = nil
		cfg.Effect = GateEffect{}
		catalog.Gates[gateType] = cfg
	}
	return catalog
}

// calmCatalog keeps gate auras but removes spawn pools.
func calmCatalog() *Catalog {
	catalog := DefaultCatalog()
	for gateType, cfg := range catalog.Gates {
		cfg.SpawnPool = nil
		catalog.Gates[gateType] = cfg
	}
	return catalog
}

func newTestSession(t *testing.T, cfg Config, catalog *Catalog) *Session {
	t.Helper()
	session, err := NewSession(cfg, catalog, Deps{})
	if err != nil {
		t.Fatalf("unexpected session error: %v", err)
	}
	return session
}

func placeTestEnemy(t *testing.T, s *Session, enemyID string, position GridPosition) *EnemyInstance {
	t.Helper()
	def, ok := DefaultCatalog().Enemy(enemyID)
	if !ok {
		t.Fatalf("enemy %q missing from default catalog", enemyID)
	}
	enemy := NewEnemyInstance(def, "gate-0")
	if !s.PlaceEnemy(enemy, position) {
		t.Fatalf("failed to place %s at %s", enemyID, position)
	}
	return enemy
}

func dispatch(t *testing.T, s *Session, cmd Command) CommandResult {
	t.Helper()
	return s.Dispatch(cmd)
}

func mustAccept(t *testing.T, s *Session, cmd Command) {
	t.Helper()
	if result := s.Dispatch(cmd); !result.Accepted {
		t.Fatalf("command %s rejected: %s (%s)", cmd.Type, result.Reason, result.Message)
	}
}

func mustReject(t *testing.T, s *Session, cmd Command, reason string) {
	t.Helper()
	result := s.Dispatch(cmd)
	if result.Accepted {
		t.Fatalf("command %s unexpectedly accepted", cmd.Type)
	}
	if result.Reason != reason {
		t.Fatalf("command %s rejected with %s, want %s", cmd.Type, result.Reason, reason)
	}
}

func selectColumnCmd(column int) Command {
	return Command{Type: CommandSelectColumnTarget, Column: &ColumnTargetCommand{Column: column}}
}

func playCmd(slot int) Command {
	return Command{Type: CommandPlayCard, Play: &PlayCardCommand{Slot: slot}}
}

func endTurnCmd() Command {
	return Command{Type: CommandEndPlayerTurn}
}

func TestSessionStartsInFirstPlayerTurn(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "start"}, quietCatalog())

	if session.Phase() != PhasePlayerTurn {
		t.Fatalf("expected player turn, got %s", session.Phase())
	}
	if session.Turn() != 1 {
		t.Fatalf("expected turn 1, got %d", session.Turn())
	}
	if session.Hand().State() != HandGenerated {
		t.Fatalf("expected generated hand, got %s", session.Hand().State())
	}
	if session.Economy().Remaining() != 3 {
		t.Fatalf("expected 3 actions, got %d", session.Economy().Remaining())
	}
	if events := session.DrainEvents(); len(events) == 0 {
		t.Fatalf("expected startup events in the journal")
	}
	if events := session.DrainEvents(); len(events) != 0 {
		t.Fatalf("expected drained journal to stay empty, got %d events", len(events))
	}
}

func TestTwoClickPreviewThenCommit(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "two-click",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	enemy := placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))

	pending := session.Pending()
	if pending == nil {
		t.Fatalf("expected a pending preview after the first click")
	}
	if pending.Breakdown.FinalDamage != 30 {
		t.Fatalf("expected preview damage 30, got %d", pending.Breakdown.FinalDamage)
	}
	if enemy.Health != 80 {
		t.Fatalf("preview mutated enemy health to %d", enemy.Health)
	}
	if session.Combos().Progress("twin-edge") != 0 {
		t.Fatalf("preview advanced combo progress to %d", session.Combos().Progress("twin-edge"))
	}
	if session.Economy().Remaining() != 3 {
		t.Fatalf("preview consumed an action: %d remaining", session.Economy().Remaining())
	}
	if session.Hand().Selected() != 0 {
		t.Fatalf("expected slot 0 selected, got %d", session.Hand().Selected())
	}

	mustAccept(t, session, playCmd(0))

	if session.Pending() != nil {
		t.Fatalf("expected pending cleared after commit")
	}
	if enemy.Health != 50 {
		t.Fatalf("expected enemy at 50 health after commit, got %d", enemy.Health)
	}
	if session.Hand().Card(0) != nil {
		t.Fatalf("expected committed slot consumed")
	}
	if session.Economy().Remaining() != 2 {
		t.Fatalf("expected 2 actions remaining, got %d", session.Economy().Remaining())
	}
	if session.Combos().Progress("twin-edge") != 1 {
		t.Fatalf("expected commit to advance twin-edge, got %d", session.Combos().Progress("twin-edge"))
	}
	if session.Stats().CardsPlayed != 1 || session.Stats().DamageDealt != 30 {
		t.Fatalf("unexpected stats: %+v", session.Stats())
	}
}

func TestPreviewMatchesCommitThroughComboCompletion(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "combo-parity",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	enemy := placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))
	if enemy.Health != 50 {
		t.Fatalf("expected 50 health after the first commit, got %d", enemy.Health)
	}

	// The second slash completes twin-edge; preview must already show it.
	mustAccept(t, session, playCmd(1))
	pending := session.Pending()
	if pending == nil {
		t.Fatalf("expected a pending preview")
	}
	if pending.Breakdown.ComboMultiplier != 1.5 || pending.Breakdown.FinalDamage != 45 {
		t.Fatalf("expected previewed combo damage 45, got %+v", pending.Breakdown)
	}
	previewed := pending.Breakdown.FinalDamage

	mustAccept(t, session, playCmd(1))
	if enemy.Health != 50-previewed {
		t.Fatalf("commit dealt %d, preview promised %d", 50-enemy.Health, previewed)
	}
	if session.Combos().Progress("twin-edge") != 0 {
		t.Fatalf("expected twin-edge reset after completion, got %d", session.Combos().Progress("twin-edge"))
	}
}

func TestSwitchingSlotsReplacesPreview(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "switch",
		EquippedWeapons: []string{"shortsword", "longbow"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	first := session.Pending()

	mustAccept(t, session, playCmd(1))
	second := session.Pending()
	if second == nil || second.Slot != 1 {
		t.Fatalf("expected preview to move to slot 1, got %+v", second)
	}
	if first.Card.ID == second.Card.ID {
		t.Fatalf("expected a different card in the new preview")
	}
	if session.Hand().Card(0) == nil || session.Hand().Card(1) == nil {
		t.Fatalf("switching previews must not consume slots")
	}
}

func TestRetargetAfterPreviewRequiresNewPreview(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "retarget",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	first := placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})
	second := placeTestEnemy(t, session, "bruiser", GridPosition{Column: 1, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	if session.Pending() == nil {
		t.Fatalf("expected a preview at column 0")
	}

	mustAccept(t, session, selectColumnCmd(1))
	if session.Pending() != nil {
		t.Fatalf("retargeting must drop the stale preview")
	}

	mustAccept(t, session, playCmd(0))
	if session.Pending() == nil {
		t.Fatalf("expected a fresh preview at the new column, not a commit")
	}
	if first.Health != first.MaxHealth || second.Health != second.MaxHealth {
		t.Fatalf("preview after retarget dealt damage: %d, %d", first.Health, second.Health)
	}
	if session.Economy().Remaining() != 3 {
		t.Fatalf("preview after retarget consumed an action, %d remaining", session.Economy().Remaining())
	}

	mustAccept(t, session, playCmd(0))
	if second.Health != second.MaxHealth-30 {
		t.Fatalf("expected the commit to hit column 1 for 30, got %d", second.MaxHealth-second.Health)
	}
	if first.Health != first.MaxHealth {
		t.Fatalf("column 0 must be untouched, got %d", first.Health)
	}
}

func TestPlayCardRejections(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "rejections",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustReject(t, session, playCmd(-1), RejectSlotOutOfRange)
	mustReject(t, session, playCmd(9), RejectSlotOutOfRange)
	mustReject(t, session, playCmd(0), RejectNoTargetSelected)
	mustReject(t, session, Command{Type: CommandPlayCard}, RejectInvalidArgument)
	mustReject(t, session, Command{Type: CommandType("Bogus")}, RejectUnknownCommand)
	mustReject(t, session, selectColumnCmd(7), RejectInvalidArgument)
	mustReject(t, session, Command{Type: CommandSelectEnemyTarget, Enemy: &EnemyTargetCommand{EnemyID: "ghost"}}, RejectUnknownEnemy)

	counters := session.Counters().Snapshot()
	if counters.CommandsRejected == 0 {
		t.Fatalf("expected rejected commands to be counted")
	}
}

func TestSelectEnemyTargetsItsColumn(t *testing.T) {
	session := newTestSession(t, Config{Columns: 3, Seed: "enemy-target"}, quietCatalog())
	enemy := placeTestEnemy(t, session, "grunt", GridPosition{Column: 2, Row: 1})

	mustAccept(t, session, Command{Type: CommandSelectEnemyTarget, Enemy: &EnemyTargetCommand{EnemyID: enemy.ID}})
	if !session.target.hasTarget || session.target.column != 2 {
		t.Fatalf("expected column 2 targeted, got %+v", session.target)
	}
}

func TestReselectLastTarget(t *testing.T) {
	session := newTestSession(t, Config{Columns: 3, Seed: "reselect"}, quietCatalog())

	mustReject(t, session, Command{Type: CommandReselectLastTarget}, RejectNoTargetSelected)

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, selectColumnCmd(1))
	mustAccept(t, session, Command{Type: CommandReselectLastTarget})
	if session.target.column != 0 {
		t.Fatalf("expected reselect to restore column 0, got %d", session.target.column)
	}

	mustAccept(t, session, Command{Type: CommandClearTargetSelection})
	if session.target.hasTarget {
		t.Fatalf("expected target cleared")
	}
}

func TestColumnRangePiercesToGate(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "pierce",
		EquippedWeapons: []string{"ballista"},
	}, quietCatalog())
	enemy := placeTestEnemy(t, session, "grunt", GridPosition{Column: 0, Row: 0})
	gate := session.Field().GateInColumn(0)
	gateHealth := gate.Health

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))

	if enemy.Health != 40-26 {
		t.Fatalf("expected enemy at %d, got %d", 40-26, enemy.Health)
	}
	if gate.Health != gateHealth-26 {
		t.Fatalf("expected screened gate to take damage, got %d/%d", gate.Health, gateHealth)
	}
}

func TestWeaponCooldownBlocksReplay(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "cooldown",
		EquippedWeapons: []string{"ballista"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))

	mustReject(t, session, playCmd(1), RejectWeaponOnCooldown)
}

func TestAutoTurnEndAfterExhaustion(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:             2,
		Seed:                "auto-end",
		BaseActions:         1,
		AutoEndOnExhaustion: true,
		AutoEndDelayTicks:   2,
		EquippedWeapons:     []string{"shortsword"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))

	if !session.Hand().Disabled() {
		t.Fatalf("expected hand disabled on exhaustion")
	}
	mustReject(t, session, playCmd(1), RejectHandDisabled)

	session.Step()
	if session.Phase() != PhasePlayerTurn || session.Turn() != 1 {
		t.Fatalf("turn ended before the grace delay elapsed")
	}

	session.Step()
	if session.Turn() != 2 {
		t.Fatalf("expected auto end to reach turn 2, got turn %d in %s", session.Turn(), session.Phase())
	}
	if session.Phase() != PhasePlayerTurn {
		t.Fatalf("expected control back with the player, got %s", session.Phase())
	}
	if session.Player().Health != 100-12 {
		t.Fatalf("expected the bruiser to connect for 12, got health %d", session.Player().Health)
	}
	if session.Hand().Disabled() {
		t.Fatalf("expected the regenerated hand to be enabled")
	}
	if session.Economy().Remaining() != 1 {
		t.Fatalf("expected the action budget refilled, got %d", session.Economy().Remaining())
	}
}

func TestManualEndTurnCancelsScheduledAutoEnd(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:             2,
		Seed:                "manual-end",
		BaseActions:         1,
		AutoEndOnExhaustion: true,
		AutoEndDelayTicks:   5,
		EquippedWeapons:     []string{"shortsword"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, endTurnCmd())

	if session.Turn() != 2 {
		t.Fatalf("expected manual end to reach turn 2, got %d", session.Turn())
	}
	// The stale deferred end must not fire in the new turn.
	for i := 0; i < 6; i++ {
		session.Step()
	}
	if session.Turn() != 2 {
		t.Fatalf("stale auto end advanced the battle to turn %d", session.Turn())
	}
}

func TestGateAurasDuringEnemyTurn(t *testing.T) {
	session := newTestSession(t, Config{Columns: 3, Seed: "auras"}, calmCatalog())

	supportGate := session.Field().GateInColumn(0)
	supportGate.ApplyDamage(20)
	damagedHealth := supportGate.Health

	eliteGate := session.Field().GateInColumn(2)
	boosted := NewEnemyInstance(EnemyDefinition{ID: "grunt", Health: 40, AttackPower: 6}, eliteGate.ID)
	plain := NewEnemyInstance(EnemyDefinition{ID: "grunt", Health: 40, AttackPower: 6}, "gate-1")
	if !session.PlaceEnemy(boosted, GridPosition{Column: 2, Row: 0}) {
		t.Fatalf("failed to place boosted enemy")
	}
	if !session.PlaceEnemy(plain, GridPosition{Column: 1, Row: 0}) {
		t.Fatalf("failed to place plain enemy")
	}

	mustAccept(t, session, endTurnCmd())

	// Regeneration heals strength x max/20 = 5.
	if supportGate.Health != damagedHealth+5 {
		t.Fatalf("expected support gate at %d, got %d", damagedHealth+5, supportGate.Health)
	}
	// The elite aura boosts only its own gate's enemies: 6x1.5 + 6 = 15.
	if session.Player().Health != 100-15 {
		t.Fatalf("expected player at 85, got %d", session.Player().Health)
	}
	// Buffs are round-scoped.
	if boosted.EffectiveAttack() != 6 {
		t.Fatalf("expected buff cleared after the enemy turn, got %d", boosted.EffectiveAttack())
	}
}

func TestVictoryWhenAllGatesDestroyed(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "gates-win",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())

	session.Field().GateInColumn(0).Health = 0
	session.Field().GateInColumn(1).Health = 10

	mustAccept(t, session, selectColumnCmd(1))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))

	if session.Phase() != PhaseVictory {
		t.Fatalf("expected victory, got %s", session.Phase())
	}
	summary := session.Summary()
	if summary == nil || !summary.Victory || summary.Condition != ConditionGatesDestroyed {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Stats.GatesDestroyed != 1 {
		t.Fatalf("expected one gate destroyed this battle, got %d", summary.Stats.GatesDestroyed)
	}
}

func TestVictoryWhenEnemiesCleared(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "clear-win",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	enemy := placeTestEnemy(t, session, "grunt", GridPosition{Column: 0, Row: 0})
	enemy.Health = 25

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))

	if session.Phase() != PhaseVictory {
		t.Fatalf("expected victory, got %s", session.Phase())
	}
	if session.Summary().Condition != ConditionEnemiesDefeated {
		t.Fatalf("expected enemies-defeated victory, got %s", session.Summary().Condition)
	}
}

func TestNoVictoryBeforeAnyEnemyAppears(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "no-early-win"}, quietCatalog())

	session.Step()
	session.Step()
	if session.Phase() != PhasePlayerTurn {
		t.Fatalf("an empty opening board ended the battle: %s", session.Phase())
	}
}

func TestDefeatWhenPlayerDies(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:      2,
		Seed:         "player-death",
		PlayerHealth: 10,
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})

	mustAccept(t, session, endTurnCmd())

	if session.Phase() != PhaseDefeat {
		t.Fatalf("expected defeat, got %s", session.Phase())
	}
	if session.Summary().Condition != ConditionPlayerDied {
		t.Fatalf("expected player-died defeat, got %s", session.Summary().Condition)
	}
}

func TestDefeatAtTurnLimit(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "turn-limit", MaxTurns: 2}, quietCatalog())
	placeTestEnemy(t, session, "grunt", GridPosition{Column: 0, Row: 1})

	mustAccept(t, session, endTurnCmd())
	if session.Turn() != 2 {
		t.Fatalf("expected turn 2, got %d", session.Turn())
	}
	session.Step()

	if session.Phase() != PhaseDefeat {
		t.Fatalf("expected defeat at the turn limit, got %s", session.Phase())
	}
	if session.Summary().Condition != ConditionTurnLimit {
		t.Fatalf("expected turn-limit defeat, got %s", session.Summary().Condition)
	}
}

func TestGateVictoryOutranksPlayerDeath(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "precedence"}, quietCatalog())
	for _, gate := range session.Field().Gates() {
		gate.Health = 0
	}
	session.Player().Health = 0

	session.Step()

	if session.Phase() != PhaseVictory {
		t.Fatalf("expected gate victory to outrank player death, got %s", session.Phase())
	}
	if session.Summary().Condition != ConditionGatesDestroyed {
		t.Fatalf("expected gates-destroyed condition, got %s", session.Summary().Condition)
	}
}

func TestTerminalBattleRejectsCommands(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "terminal", PlayerHealth: 5}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})
	mustAccept(t, session, endTurnCmd())
	if session.Phase() != PhaseDefeat {
		t.Fatalf("expected defeat, got %s", session.Phase())
	}

	mustReject(t, session, playCmd(0), RejectBattleOver)
	mustReject(t, session, endTurnCmd(), RejectWrongPhase)
}

func TestVictoryAllowsMopUpPlays(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "mop-up",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	straggler := placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})
	session.Field().GateInColumn(0).Health = 0
	session.Field().GateInColumn(1).Health = 10

	mustAccept(t, session, selectColumnCmd(1))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))
	if session.Phase() != PhaseVictory {
		t.Fatalf("expected victory, got %s", session.Phase())
	}
	summary := *session.Summary()

	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	if session.Pending() == nil {
		t.Fatalf("expected a mop-up preview after victory")
	}
	mustAccept(t, session, playCmd(0))
	if straggler.Health != 35 {
		t.Fatalf("expected the straggler at 35 after the combo-boosted hit, got %d", straggler.Health)
	}
	if session.Phase() != PhaseVictory {
		t.Fatalf("mop-up must stay in the victory phase, got %s", session.Phase())
	}
	if got := *session.Summary(); got != summary {
		t.Fatalf("mop-up changed the battle summary: %+v -> %+v", summary, got)
	}
	mustReject(t, session, endTurnCmd(), RejectWrongPhase)
}

func TestResetRestoresFreshBattle(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "reset",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})
	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, playCmd(0))
	mustAccept(t, session, endTurnCmd())

	mustAccept(t, session, Command{Type: CommandResetBattle})

	if session.Phase() != PhasePlayerTurn || session.Turn() != 1 {
		t.Fatalf("expected a fresh first turn, got %s turn %d", session.Phase(), session.Turn())
	}
	if len(session.Field().LivingEnemies()) != 0 {
		t.Fatalf("expected an empty grid after reset")
	}
	for _, gate := range session.Field().Gates() {
		if gate.Health != gate.MaxHealth {
			t.Fatalf("expected gate %s restored, got %d/%d", gate.ID, gate.Health, gate.MaxHealth)
		}
	}
	if session.Player().Health != session.Player().MaxHealth {
		t.Fatalf("expected full player health, got %d", session.Player().Health)
	}
	if session.Stats() != (BattleStats{}) {
		t.Fatalf("expected zeroed stats, got %+v", session.Stats())
	}
	if session.Combos().Progress("twin-edge") != 0 {
		t.Fatalf("expected combos reset, got %d", session.Combos().Progress("twin-edge"))
	}
}

func TestActionBonusCommand(t *testing.T) {
	session := newTestSession(t, Config{Columns: 2, Seed: "bonus"}, quietCatalog())

	mustReject(t, session, Command{Type: CommandAddActionBonus}, RejectInvalidArgument)
	mustReject(t, session, Command{Type: CommandAddActionBonus, Bonus: &ActionBonusCommand{Amount: 0}}, RejectInvalidArgument)

	mustAccept(t, session, Command{Type: CommandAddActionBonus, Bonus: &ActionBonusCommand{Amount: 2}})
	if session.Economy().Remaining() != 5 || session.Economy().Max() != 5 {
		t.Fatalf("expected budget 5/5, got %d/%d", session.Economy().Remaining(), session.Economy().Max())
	}
}

func TestComboBonusActionsGrantedOnCommit(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "volley",
		EquippedWeapons: []string{"longbow"},
	}, quietCatalog())
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 0, Row: 0})
	placeTestEnemy(t, session, "bruiser", GridPosition{Column: 1, Row: 0})

	mustAccept(t, session, selectColumnCmd(0))
	for slot := 0; slot < 3; slot++ {
		mustAccept(t, session, playCmd(slot))
		mustAccept(t, session, playCmd(slot))
	}

	// Three pierce hits complete piercing-volley: +1 action on the commit.
	if session.Economy().Remaining() != 1 {
		t.Fatalf("expected 1 action left after the volley bonus, got %d", session.Economy().Remaining())
	}
	if session.Economy().Max() != 4 {
		t.Fatalf("expected max raised to 4, got %d", session.Economy().Max())
	}
}

func TestSnapshotReflectsSessionState(t *testing.T) {
	session := newTestSession(t, Config{
		Columns:         2,
		Seed:            "snapshot",
		EquippedWeapons: []string{"shortsword"},
	}, quietCatalog())
	placeTestEnemy(t, session, "grunt", GridPosition{Column: 0, Row: 0})
	mustAccept(t, session, selectColumnCmd(0))
	mustAccept(t, session, playCmd(0))

	snapshot := session.Snapshot()
	if snapshot.Phase != PhasePlayerTurn || snapshot.Turn != 1 {
		t.Fatalf("unexpected phase/turn in snapshot: %s/%d", snapshot.Phase, snapshot.Turn)
	}
	if snapshot.Columns != 2 || len(snapshot.Gates) != 2 {
		t.Fatalf("unexpected field shape: %d columns, %d gates", snapshot.Columns, len(snapshot.Gates))
	}
	if len(snapshot.Enemies) != 1 {
		t.Fatalf("expected one enemy in snapshot, got %d", len(snapshot.Enemies))
	}
	if snapshot.Pending == nil || snapshot.Pending.Slot != 0 {
		t.Fatalf("expected pending preview in snapshot, got %+v", snapshot.Pending)
	}
	if snapshot.Selected != 0 {
		t.Fatalf("expected selected slot 0, got %d", snapshot.Selected)
	}

	// Mutating the snapshot must not touch the session.
	snapshot.Gates[0].Health = 1
	if session.Field().GateInColumn(0).Health == 1 {
		t.Fatalf("snapshot aliases live gate state")
	}
}
