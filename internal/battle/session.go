package battle

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"gatefall/server/internal/telemetry"
	"gatefall/server/logging"
	loggingbattle "gatefall/server/logging/battle"
)

// RNGFactory builds a seeded random source for a subsystem label.
type RNGFactory func(rootSeed, label string) *rand.Rand

// Deps carries the injected collaborators for a session.
type Deps struct {
	Publisher logging.Publisher
	Logger    telemetry.Logger
	RNG       RNGFactory
}

type targetSelection struct {
	column     int
	hasTarget  bool
	lastColumn int
	hasLast    bool
}

type deferredTurnEnd struct {
	scheduled bool
	dueTick   uint64
}

// Session owns one battle: the grid, gates, scheduler, combo engine, damage
// pipeline, action economy, turn machine, hand, player record, journal, and
// the single pending-damage slot. It is the only mutator of that state; the
// loop goroutine drives it and everything else reads snapshots.
type Session struct {
	ID      string
	config  Config
	catalog *Catalog

	rng       *rand.Rand
	field     *GridField
	scheduler *SpawnScheduler
	combos    *ComboEngine
	pipeline  *DamagePipeline
	economy   *ActionEconomy
	turns     *TurnMachine
	hand      *HandController
	player    *PlayerState

	publisher logging.Publisher
	logger    telemetry.Logger
	counters  *Counters
	journal   journal

	currentTick uint64
	stats       BattleStats
	summary     *BattleSummary
	pending     *PendingDamageInfo
	target      targetSelection
	autoEnd     deferredTurnEnd
	weapons     []WeaponData
	enemiesSeen bool
}

// NewSession constructs and starts a battle. The turn machine enters the
// first player turn before NewSession returns.
func NewSession(cfg Config, catalog *Catalog, deps Deps) (*Session, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	normalized := cfg.normalized()

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	rngFactory := deps.RNG
	if rngFactory == nil {
		rngFactory = NewDeterministicRNG
	}

	s := &Session{
		ID:        uuid.NewString(),
		config:    normalized,
		catalog:   catalog,
		rng:       rngFactory(normalized.Seed, "battle"),
		publisher: publisher,
		logger:    deps.Logger,
		counters:  &Counters{},
	}

	s.field = NewGridField(normalized.Columns, catalog, s.rng)
	s.scheduler = NewSpawnScheduler(s.field, catalog, rngFactory(normalized.Seed, "spawns"), deps.Logger)
	s.combos = NewComboEngine(catalog.Combos)
	s.player = NewPlayerState(normalized.PlayerHealth, normalized.PlayerAttackPower, s.equippedIDs())
	s.pipeline = NewDamagePipeline(s.player, s.field, s.combos)
	s.economy = NewActionEconomy(normalized.BaseActions)
	s.hand = NewHandController(normalized.HandSize)
	s.weapons = s.resolveWeapons()

	s.economy.SetHooks(s.onActionsChanged, s.onActionsExhausted)
	s.turns = NewTurnMachine(TurnHooks{
		OnPlayerTurn: s.enterPlayerTurn,
		OnTerminal:   s.enterTerminal,
	})

	if err := s.turns.Begin(); err != nil {
		return nil, fmt.Errorf("begin battle: %w", err)
	}
	loggingbattle.BattleStarted(context.Background(), s.publisher, s.currentTick, s.ID, normalized.Columns, normalized.Seed)
	return s, nil
}

func (s *Session) equippedIDs() []string {
	if len(s.config.EquippedWeapons) > 0 {
		return s.config.EquippedWeapons
	}
	return s.catalog.DefaultWeaponIDs()
}

// resolveWeapons maps equipped weapon ids to definitions, dropping unknown
// ids so a broken loadout degrades to fewer cards instead of a crash.
func (s *Session) resolveWeapons() []WeaponData {
	var weapons []WeaponData
	for _, id := range s.equippedIDs() {
		weapon, ok := s.catalog.Weapon(id)
		if !ok {
			if s.logger != nil {
				s.logger.Printf("equipped weapon %q not in catalog; no card generated", id)
			}
			continue
		}
		weapons = append(weapons, weapon)
	}
	return weapons
}

// Accessors used by tests and the gateway. None of them mutate.

func (s *Session) Config() Config            { return s.config }
func (s *Session) Field() *GridField         { return s.field }
func (s *Session) Combos() *ComboEngine      { return s.combos }
func (s *Session) Pipeline() *DamagePipeline { return s.pipeline }
func (s *Session) Economy() *ActionEconomy   { return s.economy }
func (s *Session) Hand() *HandController     { return s.hand }
func (s *Session) Player() *PlayerState      { return s.player }
func (s *Session) Phase() Phase              { return s.turns.Phase() }
func (s *Session) Turn() int                 { return s.turns.Turn() }
func (s *Session) Tick() uint64              { return s.currentTick }
func (s *Session) Stats() BattleStats        { return s.stats }
func (s *Session) Counters() *Counters       { return s.counters }

// Pending returns the current preview, nil when none is outstanding.
func (s *Session) Pending() *PendingDamageInfo {
	return s.pending
}

// Summary returns the terminal battle summary once the battle has ended.
func (s *Session) Summary() *BattleSummary {
	return s.summary
}

// DrainEvents empties the outbound journal for broadcast.
func (s *Session) DrainEvents() []Event {
	return s.journal.Drain()
}

// PlaceEnemy inserts an enemy onto the grid through the session so scenario
// setup and gate-independent spawns share the occupancy bookkeeping.
func (s *Session) PlaceEnemy(enemy *EnemyInstance, position GridPosition) bool {
	if !s.field.PlaceEnemy(enemy, position) {
		return false
	}
	s.enemiesSeen = true
	s.journal.append(Event{Kind: EventEnemySpawned, Tick: s.currentTick, EntityID: enemy.ID, Payload: EnemyPayload{
		EnemyID:      enemy.ID,
		DefinitionID: enemy.DefinitionID,
		Position:     enemy.Position,
		Health:       enemy.Health,
		GateID:       enemy.AssignedGateID,
	}})
	return true
}

// Step advances the session by one tick: deferred work runs, then the win
// and lose conditions are re-evaluated.
func (s *Session) Step() {
	s.currentTick++
	if s.autoEnd.scheduled && s.currentTick >= s.autoEnd.dueTick {
		s.autoEnd.scheduled = false
		if s.turns.Phase() == PhasePlayerTurn {
			s.journal.append(Event{Kind: EventAutoTurnEnd, Tick: s.currentTick})
			s.endPlayerTurn("actions_exhausted")
		}
	}
	s.evaluateOutcome()
}

// Dispatch routes one command. Rejections leave the session untouched and
// carry a machine-readable reason.
func (s *Session) Dispatch(cmd Command) CommandResult {
	result := s.dispatch(cmd)
	s.counters.RecordCommand(result.Accepted)
	if !result.Accepted {
		loggingbattle.CommandRejected(context.Background(), s.publisher, s.currentTick, s.ID, string(cmd.Type), result.Reason)
	}
	return result
}

func (s *Session) dispatch(cmd Command) CommandResult {
	switch cmd.Type {
	case CommandSelectColumnTarget:
		if cmd.Column == nil {
			return rejected(RejectInvalidArgument, "missing column payload")
		}
		return s.selectColumn(cmd.Column.Column)
	case CommandSelectEnemyTarget:
		if cmd.Enemy == nil {
			return rejected(RejectInvalidArgument, "missing enemy payload")
		}
		return s.selectEnemy(cmd.Enemy.EnemyID)
	case CommandReselectLastTarget:
		return s.reselectLastTarget()
	case CommandClearTargetSelection:
		return s.clearTargetSelection()
	case CommandPlayCard:
		if cmd.Play == nil {
			return rejected(RejectInvalidArgument, "missing play payload")
		}
		return s.playCard(cmd.Play.Slot)
	case CommandEndPlayerTurn:
		reason := "manual"
		if cmd.EndTurn != nil && cmd.EndTurn.Reason != "" {
			reason = cmd.EndTurn.Reason
		}
		if s.turns.Phase() != PhasePlayerTurn {
			return rejected(RejectWrongPhase, fmt.Sprintf("cannot end turn during %s", s.turns.Phase()))
		}
		s.endPlayerTurn(reason)
		return accepted()
	case CommandAddActionBonus:
		if cmd.Bonus == nil || cmd.Bonus.Amount <= 0 {
			return rejected(RejectInvalidArgument, "bonus must be positive")
		}
		s.economy.AddBonus(cmd.Bonus.Amount)
		return accepted()
	case CommandResetBattle:
		return s.reset()
	}
	return rejected(RejectUnknownCommand, fmt.Sprintf("unsupported command %q", cmd.Type))
}

func (s *Session) selectColumn(column int) CommandResult {
	if column < 0 || column >= s.field.Columns() {
		return rejected(RejectInvalidArgument, fmt.Sprintf("column %d out of range", column))
	}
	s.clearPending()
	s.hand.Deselect()
	if s.target.hasTarget {
		s.target.lastColumn = s.target.column
		s.target.hasLast = true
	}
	s.target.column = column
	s.target.hasTarget = true
	return accepted()
}

func (s *Session) selectEnemy(enemyID string) CommandResult {
	for _, enemy := range s.field.LivingEnemies() {
		if enemy.ID == enemyID {
			return s.selectColumn(enemy.Position.Column)
		}
	}
	return rejected(RejectUnknownEnemy, fmt.Sprintf("no living enemy %q", enemyID))
}

func (s *Session) reselectLastTarget() CommandResult {
	if !s.target.hasLast {
		return rejected(RejectNoTargetSelected, "no previous target to reselect")
	}
	return s.selectColumn(s.target.lastColumn)
}

func (s *Session) clearTargetSelection() CommandResult {
	s.clearPending()
	s.hand.Deselect()
	s.target.hasTarget = false
	return accepted()
}

// playCard runs the two-click protocol for a hand slot: first selection
// previews, selecting the same slot again commits, selecting a different
// slot replaces the preview. Every playability check precedes any mutation.
func (s *Session) playCard(slot int) CommandResult {
	// Victory stays playable so remaining enemies can be mopped up; the
	// battle summary keeps the values it had when the phase was entered.
	switch phase := s.turns.Phase(); phase {
	case PhasePlayerTurn, PhaseVictory:
	case PhaseDefeat:
		return rejected(RejectBattleOver, "the battle has ended")
	default:
		return rejected(RejectWrongPhase, fmt.Sprintf("cards are not playable during %s", phase))
	}
	if slot < 0 || slot >= s.hand.Size() {
		return rejected(RejectSlotOutOfRange, fmt.Sprintf("slot %d out of range", slot))
	}
	card := s.hand.Card(slot)
	if card == nil {
		return rejected(RejectSlotEmpty, fmt.Sprintf("slot %d is empty", slot))
	}
	if s.hand.State() != HandGenerated {
		return rejected(RejectHandNotReady, fmt.Sprintf("hand is %s", s.hand.State()))
	}
	if s.hand.Disabled() {
		return rejected(RejectHandDisabled, "hand input is disabled")
	}
	if card.RequiresColumn() && !s.target.hasTarget {
		return rejected(RejectNoTargetSelected, "select a target column first")
	}

	resolved := *card
	if resolved.RequiresColumn() {
		resolved.TargetColumn = s.target.column
	}
	targets, err := s.pipeline.ResolveTargets(resolved)
	if err != nil {
		return rejected(RejectNoValidTarget, err.Error())
	}
	if s.player.OnCooldown(resolved.Weapon.ID) {
		return rejected(RejectWeaponOnCooldown, fmt.Sprintf("%s is on cooldown for %d more turn(s)", resolved.Weapon.Name, s.player.CooldownRemaining(resolved.Weapon.ID)))
	}
	if s.economy.Remaining() <= 0 {
		return rejected(RejectNoActions, "no actions remaining")
	}

	if s.hand.Selected() != slot {
		return s.previewCard(resolved, slot, targets)
	}
	return s.commitCard(resolved, slot)
}

// previewCard computes pending damage without mutating combo or field state.
func (s *Session) previewCard(card CardData, slot int, targets TargetSet) CommandResult {
	breakdown, _ := s.pipeline.ComputeDamage(card, true)
	s.clearPending()
	s.pending = &PendingDamageInfo{Card: card, Slot: slot, Breakdown: breakdown, Targets: targets}
	s.hand.Select(slot)
	s.journal.append(Event{Kind: EventPendingDamageCalculated, Tick: s.currentTick, EntityID: card.ID, Payload: PendingDamagePayload{
		Card:      card,
		Slot:      slot,
		Breakdown: breakdown,
		EnemyIDs:  enemyIDs(targets.Enemies),
		GateIDs:   gateIDs(targets.Gates),
	}})
	return accepted()
}

// commitCard re-resolves and applies damage, advances combos, consumes an
// action, clears the slot, and starts the weapon cooldown. The commit runs
// to completion before control returns.
func (s *Session) commitCard(card CardData, slot int) CommandResult {
	targets, err := s.pipeline.ResolveTargets(card)
	if err != nil {
		s.clearPending()
		s.hand.Deselect()
		return rejected(RejectNoValidTarget, err.Error())
	}
	breakdown, combo := s.pipeline.ComputeDamage(card, false)

	for _, enemy := range targets.Enemies {
		absorbed := enemy.ApplyDamage(breakdown.FinalDamage)
		s.stats.DamageDealt += absorbed
		if !enemy.Alive() {
			s.field.RemoveEnemy(enemy.Position)
			s.stats.EnemiesDefeated++
			s.counters.RecordEnemyDefeated()
			s.journal.append(Event{Kind: EventEnemyDefeated, Tick: s.currentTick, EntityID: enemy.ID, Payload: EnemyPayload{
				EnemyID:      enemy.ID,
				DefinitionID: enemy.DefinitionID,
				Position:     NoPosition,
				GateID:       enemy.AssignedGateID,
			}})
		}
	}
	for _, gate := range targets.Gates {
		absorbed := gate.ApplyDamage(breakdown.FinalDamage)
		s.stats.DamageDealt += absorbed
		s.journal.append(Event{Kind: EventGateDamaged, Tick: s.currentTick, EntityID: gate.ID, Payload: GatePayload{
			GateID:    gate.ID,
			Column:    gate.Column,
			Type:      gate.Type,
			Health:    gate.Health,
			MaxHealth: gate.MaxHealth,
		}})
		if gate.IsDestroyed() {
			s.stats.GatesDestroyed++
			s.counters.RecordGateDestroyed()
			s.journal.append(Event{Kind: EventGateDestroyed, Tick: s.currentTick, EntityID: gate.ID})
			loggingbattle.GateDestroyed(context.Background(), s.publisher, s.currentTick, s.ID, gate.ID, string(gate.Type))
		}
	}

	if combo.BonusActions > 0 {
		s.economy.AddBonus(combo.BonusActions)
	}

	s.journal.append(Event{Kind: EventPendingDamageApplied, Tick: s.currentTick, EntityID: card.ID})
	s.pending = nil
	s.hand.ConsumeSlot(slot)
	s.player.SetCooldown(card.Weapon.ID, card.Weapon.CooldownTurns)
	s.stats.CardsPlayed++
	s.counters.RecordCardPlayed(breakdown.FinalDamage)
	s.journal.append(Event{Kind: EventCardPlayed, Tick: s.currentTick, EntityID: card.ID, Payload: CardPlayedPayload{
		Card:         card,
		Slot:         slot,
		Breakdown:    breakdown,
		EnemyIDs:     enemyIDs(targets.Enemies),
		GateIDs:      gateIDs(targets.Gates),
		CombosClosed: combo.Completed,
	}})
	loggingbattle.CardPlayed(context.Background(), s.publisher, s.currentTick, s.ID, card.Weapon.ID, breakdown.FinalDamage, len(targets.Enemies), len(targets.Gates))

	s.economy.Consume()
	s.evaluateOutcome()
	return accepted()
}

func (s *Session) clearPending() {
	if s.pending == nil {
		return
	}
	s.journal.append(Event{Kind: EventPendingDamageCleared, Tick: s.currentTick, EntityID: s.pending.Card.ID})
	s.pending = nil
}

// endPlayerTurn hands control to the enemies and, unless the battle ended
// during their turn, returns it to the player.
func (s *Session) endPlayerTurn(reason string) {
	s.clearPending()
	s.hand.Deselect()
	s.autoEnd.scheduled = false
	if err := s.turns.EndPlayerTurn(); err != nil {
		if s.logger != nil {
			s.logger.Printf("end player turn (%s): %v", reason, err)
		}
		return
	}
	s.journal.append(Event{Kind: EventGameStateChanged, Tick: s.currentTick, Payload: TurnChangedPayload{Turn: s.turns.Turn(), Phase: PhaseEnemyTurn}})
	s.runEnemyTurn(s.turns.Turn())
	if s.evaluateOutcome() {
		return
	}
	if err := s.turns.EndEnemyTurn(); err != nil && s.logger != nil {
		s.logger.Printf("end enemy turn: %v", err)
	}
}

// runEnemyTurn ticks gate auras, runs every living enemy's attack, then the
// spawn scheduler for every gate.
func (s *Session) runEnemyTurn(turn int) {
	for _, gate := range s.field.Gates() {
		if !gate.EffectActive() {
			continue
		}
		switch gate.Effect.Type {
		case EffectRegeneration:
			healed := gate.Heal(roundHalfAway(gate.Effect.Strength * float64(gate.MaxHealth) / 20))
			if healed > 0 {
				s.journal.append(Event{Kind: EventGateDamaged, Tick: s.currentTick, EntityID: gate.ID, Payload: GatePayload{
					GateID:    gate.ID,
					Column:    gate.Column,
					Type:      gate.Type,
					Health:    gate.Health,
					MaxHealth: gate.MaxHealth,
				}})
			}
		case EffectAttackBoost:
			for _, enemy := range s.field.LivingEnemies() {
				if enemy.AssignedGateID == gate.ID {
					enemy.BuffAttack(gate.Effect.Strength)
				}
			}
		case EffectBuffAllEnemies:
			for _, enemy := range s.field.LivingEnemies() {
				enemy.BuffAttack(gate.Effect.Strength)
			}
		}
	}

	taken := 0
	for _, enemy := range s.field.LivingEnemies() {
		taken += s.player.ApplyDamage(enemy.EffectiveAttack())
		if !s.player.Alive() {
			break
		}
	}
	for _, enemy := range s.field.LivingEnemies() {
		enemy.ClearBuffs()
	}
	if taken > 0 {
		s.stats.DamageTaken += taken
		s.counters.RecordDamageTaken(taken)
		s.journal.append(Event{Kind: EventPlayerDataChanged, Tick: s.currentTick, Payload: PlayerDataPayload{
			Health:          s.player.Health,
			MaxHealth:       s.player.MaxHealth,
			BaseAttackPower: s.player.BaseAttackPower,
		}})
	}

	spawned := s.scheduler.Run(turn)
	if len(spawned) > 0 {
		s.enemiesSeen = true
		s.stats.EnemiesSpawned += len(spawned)
		s.counters.RecordSpawns(len(spawned))
		for _, enemy := range spawned {
			s.journal.append(Event{Kind: EventEnemySpawned, Tick: s.currentTick, EntityID: enemy.ID, Payload: EnemyPayload{
				EnemyID:      enemy.ID,
				DefinitionID: enemy.DefinitionID,
				Position:     enemy.Position,
				Health:       enemy.Health,
				GateID:       enemy.AssignedGateID,
			}})
		}
		loggingbattle.SpawnWave(context.Background(), s.publisher, s.currentTick, s.ID, turn, len(spawned))
	}
}

// enterPlayerTurn runs at every player-turn entry: cooldowns tick, the
// action budget refills, and the hand regenerates.
func (s *Session) enterPlayerTurn(turn int) {
	s.autoEnd.scheduled = false
	s.player.TickCooldowns()
	s.economy.ResetForTurn()
	s.hand.Generate(s.weapons)
	s.journal.append(Event{Kind: EventTurnChanged, Tick: s.currentTick, Payload: TurnChangedPayload{Turn: turn, Phase: PhasePlayerTurn}})
	if s.hand.State() == HandGenerated {
		s.journal.append(Event{Kind: EventHandGenerated, Tick: s.currentTick, Payload: HandPayload{Cards: s.hand.Cards()}})
	} else {
		s.journal.append(Event{Kind: EventHandCleared, Tick: s.currentTick})
	}
	if s.config.OpeningWave && turn == 1 {
		s.openingWave()
	}
}

// openingWave seeds the grid at battle start so the first player turn faces
// resistance: every gate places one enemy, summoner gates their full first
// pattern wave.
func (s *Session) openingWave() {
	for _, gate := range s.field.Gates() {
		if gate.Pattern == PatternC && !gate.FirstSummonDone {
			spawned := s.scheduler.RunGate(gate, 0)
			s.recordOpeningSpawns(spawned)
			continue
		}
		pool := gate.SpawnPool
		if len(pool) == 0 {
			continue
		}
		def, ok := s.catalog.Enemy(pool[randomIndex(s.rng, len(pool))])
		if !ok {
			continue
		}
		position := s.field.RandomEmptyPosition()
		if position.IsNone() {
			return
		}
		enemy := NewEnemyInstance(def, gate.ID)
		if s.field.PlaceEnemy(enemy, position) {
			s.recordOpeningSpawns([]*EnemyInstance{enemy})
		}
	}
}

func (s *Session) recordOpeningSpawns(spawned []*EnemyInstance) {
	if len(spawned) == 0 {
		return
	}
	s.enemiesSeen = true
	s.stats.EnemiesSpawned += len(spawned)
	s.counters.RecordSpawns(len(spawned))
	for _, enemy := range spawned {
		s.journal.append(Event{Kind: EventEnemySpawned, Tick: s.currentTick, EntityID: enemy.ID, Payload: EnemyPayload{
			EnemyID:      enemy.ID,
			DefinitionID: enemy.DefinitionID,
			Position:     enemy.Position,
			Health:       enemy.Health,
			GateID:       enemy.AssignedGateID,
		}})
	}
}

func (s *Session) onActionsChanged(remaining, max int) {
	s.journal.append(Event{Kind: EventActionsChanged, Tick: s.currentTick, Payload: ActionsPayload{Remaining: remaining, Max: max}})
}

// onActionsExhausted disables hand input immediately and, when configured,
// schedules the deferred automatic turn end. The commit that emptied the
// budget has already completed by the time this fires.
func (s *Session) onActionsExhausted() {
	s.journal.append(Event{Kind: EventActionsExhausted, Tick: s.currentTick})
	s.hand.Disable()
	if s.config.AutoEndOnExhaustion {
		s.autoEnd.scheduled = true
		s.autoEnd.dueTick = s.currentTick + uint64(s.config.AutoEndDelayTicks)
	}
}

// evaluateOutcome checks the terminal conditions in fixed precedence order:
// gates destroyed, enemies defeated, player dead, turn limit. It returns
// true when the battle is (or just became) terminal.
func (s *Session) evaluateOutcome() bool {
	phase := s.turns.Phase()
	if phase.Terminal() {
		return true
	}
	if phase == PhaseInitializing {
		return false
	}
	switch {
	case s.field.AllGatesDestroyed():
		s.finish(true, ConditionGatesDestroyed)
	case s.enemiesSeen && len(s.field.LivingEnemies()) == 0:
		s.finish(true, ConditionEnemiesDefeated)
	case !s.player.Alive():
		s.finish(false, ConditionPlayerDied)
	case s.turns.Turn() >= s.config.MaxTurns:
		s.finish(false, ConditionTurnLimit)
	default:
		return false
	}
	return true
}

func (s *Session) finish(victory bool, condition VictoryCondition) {
	s.summary = &BattleSummary{
		Victory:   victory,
		Condition: condition,
		TurnsUsed: s.turns.Turn(),
		Stats:     s.stats,
	}
	var err error
	if victory {
		err = s.turns.Win()
	} else {
		err = s.turns.Lose()
	}
	if err != nil && s.logger != nil {
		s.logger.Printf("terminal transition: %v", err)
	}
}

// enterTerminal fires from the turn machine the instant a terminal phase is
// entered. The summary was snapshotted by finish before the transition.
func (s *Session) enterTerminal(phase Phase) {
	s.autoEnd.scheduled = false
	s.clearPending()
	summary := s.summary
	if summary == nil {
		summary = &BattleSummary{Victory: phase == PhaseVictory, TurnsUsed: s.turns.Turn(), Stats: s.stats}
		s.summary = summary
	}
	s.journal.append(Event{Kind: EventGameStateChanged, Tick: s.currentTick, Payload: TurnChangedPayload{Turn: s.turns.Turn(), Phase: phase}})
	s.journal.append(Event{Kind: EventBattleEnded, Tick: s.currentTick, Payload: *summary})
	loggingbattle.BattleEnded(context.Background(), s.publisher, s.currentTick, s.ID, summary.Victory, string(summary.Condition), summary.TurnsUsed)
}

// reset rebuilds the battle in place: fresh gates, empty grid, cleared
// combos and bonuses, full player health, and a new turn machine.
func (s *Session) reset() CommandResult {
	s.field.Reset(s.catalog)
	s.combos.Reset()
	s.economy.ResetBonus()
	s.player.Health = s.player.MaxHealth
	s.player.ResetCooldowns()
	s.stats = BattleStats{}
	s.summary = nil
	s.pending = nil
	s.target = targetSelection{}
	s.autoEnd = deferredTurnEnd{}
	s.enemiesSeen = false
	s.hand.Clear()
	s.turns = NewTurnMachine(TurnHooks{
		OnPlayerTurn: s.enterPlayerTurn,
		OnTerminal:   s.enterTerminal,
	})
	if err := s.turns.Begin(); err != nil {
		return rejected(RejectInvalidArgument, err.Error())
	}
	loggingbattle.BattleStarted(context.Background(), s.publisher, s.currentTick, s.ID, s.config.Columns, s.config.Seed)
	return accepted()
}

func enemyIDs(enemies []*EnemyInstance) []string {
	if len(enemies) == 0 {
		return nil
	}
	ids := make([]string, 0, len(enemies))
	for _, enemy := range enemies {
		ids = append(ids, enemy.ID)
	}
	return ids
}

func gateIDs(gates []*Gate) []string {
	if len(gates) == 0 {
		return nil
	}
	ids := make([]string, 0, len(gates))
	for _, gate := range gates {
		ids = append(ids, gate.ID)
	}
	return ids
}
