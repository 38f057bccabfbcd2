package battle

// Snapshot is the full read-only projection of a session, built once per
// tick for broadcast and for the diagnostics endpoint.
type Snapshot struct {
	SessionID string                `json:"sessionId"`
	Phase     Phase                 `json:"phase"`
	Turn      int                   `json:"turn"`
	Tick      uint64                `json:"tick"`
	Player    PlayerDataPayload     `json:"player"`
	Gates     []GatePayload         `json:"gates"`
	Enemies   []EnemyPayload        `json:"enemies"`
	Hand      []*CardData           `json:"hand"`
	HandState HandState             `json:"handState"`
	Selected  int                   `json:"selectedSlot"`
	Actions   ActionsPayload        `json:"actions"`
	Pending   *PendingDamagePayload `json:"pending,omitempty"`
	Stats     BattleStats           `json:"stats"`
	Summary   *BattleSummary        `json:"summary,omitempty"`
	Columns   int                   `json:"columns"`
}

// Snapshot builds the current projection. It copies everything it exposes;
// callers never see live session state.
func (s *Session) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	snapshot := Snapshot{
		SessionID: s.ID,
		Phase:     s.turns.Phase(),
		Turn:      s.turns.Turn(),
		Tick:      s.currentTick,
		Player: PlayerDataPayload{
			Health:          s.player.Health,
			MaxHealth:       s.player.MaxHealth,
			BaseAttackPower: s.player.BaseAttackPower,
		},
		Hand:      s.hand.Cards(),
		HandState: s.hand.State(),
		Selected:  s.hand.Selected(),
		Actions:   ActionsPayload{Remaining: s.economy.Remaining(), Max: s.economy.Max()},
		Stats:     s.stats,
		Columns:   s.field.Columns(),
	}
	for _, gate := range s.field.Gates() {
		snapshot.Gates = append(snapshot.Gates, GatePayload{
			GateID:    gate.ID,
			Column:    gate.Column,
			Type:      gate.Type,
			Health:    gate.Health,
			MaxHealth: gate.MaxHealth,
		})
	}
	for _, enemy := range s.field.LivingEnemies() {
		snapshot.Enemies = append(snapshot.Enemies, EnemyPayload{
			EnemyID:      enemy.ID,
			DefinitionID: enemy.DefinitionID,
			Position:     enemy.Position,
			Health:       enemy.Health,
			GateID:       enemy.AssignedGateID,
		})
	}
	if s.pending != nil {
		snapshot.Pending = &PendingDamagePayload{
			Card:      s.pending.Card,
			Slot:      s.pending.Slot,
			Breakdown: s.pending.Breakdown,
			EnemyIDs:  enemyIDs(s.pending.Targets.Enemies),
			GateIDs:   gateIDs(s.pending.Targets.Gates),
		}
	}
	if s.summary != nil {
		copied := *s.summary
		snapshot.Summary = &copied
	}
	return snapshot
}
