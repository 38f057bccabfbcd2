package battle

import (
	"sync/atomic"
	"time"
)

// Counters tracks session throughput with atomics so the diagnostics
// endpoint can read while the loop writes.
type Counters struct {
	commandsProcessed  atomic.Uint64
	commandsRejected   atomic.Uint64
	cardsPlayed        atomic.Uint64
	damageDealt        atomic.Uint64
	damageTaken        atomic.Uint64
	enemiesSpawned     atomic.Uint64
	enemiesDefeated    atomic.Uint64
	gatesDestroyed     atomic.Uint64
	tickDurationMillis atomic.Int64
}

// CountersSnapshot is the JSON projection of the counters.
type CountersSnapshot struct {
	CommandsProcessed  uint64 `json:"commandsProcessed"`
	CommandsRejected   uint64 `json:"commandsRejected"`
	CardsPlayed        uint64 `json:"cardsPlayed"`
	DamageDealt        uint64 `json:"damageDealt"`
	DamageTaken        uint64 `json:"damageTaken"`
	EnemiesSpawned     uint64 `json:"enemiesSpawned"`
	EnemiesDefeated    uint64 `json:"enemiesDefeated"`
	GatesDestroyed     uint64 `json:"gatesDestroyed"`
	TickDurationMillis int64  `json:"tickDurationMillis"`
}

func (c *Counters) RecordCommand(accepted bool) {
	if c == nil {
		return
	}
	if accepted {
		c.commandsProcessed.Add(1)
	} else {
		c.commandsRejected.Add(1)
	}
}

func (c *Counters) RecordCardPlayed(damage int) {
	if c == nil {
		return
	}
	c.cardsPlayed.Add(1)
	if damage > 0 {
		c.damageDealt.Add(uint64(damage))
	}
}

func (c *Counters) RecordDamageTaken(amount int) {
	if c == nil || amount <= 0 {
		return
	}
	c.damageTaken.Add(uint64(amount))
}

func (c *Counters) RecordSpawns(count int) {
	if c == nil || count <= 0 {
		return
	}
	c.enemiesSpawned.Add(uint64(count))
}

func (c *Counters) RecordEnemyDefeated() {
	if c == nil {
		return
	}
	c.enemiesDefeated.Add(1)
}

func (c *Counters) RecordGateDestroyed() {
	if c == nil {
		return
	}
	c.gatesDestroyed.Add(1)
}

func (c *Counters) RecordTickDuration(duration time.Duration) {
	if c == nil {
		return
	}
	millis := duration.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	c.tickDurationMillis.Store(millis)
}

// Snapshot copies the counters for diagnostics.
func (c *Counters) Snapshot() CountersSnapshot {
	if c == nil {
		return CountersSnapshot{}
	}
	return CountersSnapshot{
		CommandsProcessed:  c.commandsProcessed.Load(),
		CommandsRejected:   c.commandsRejected.Load(),
		CardsPlayed:        c.cardsPlayed.Load(),
		DamageDealt:        c.damageDealt.Load(),
		DamageTaken:        c.damageTaken.Load(),
		EnemiesSpawned:     c.enemiesSpawned.Load(),
		EnemiesDefeated:    c.enemiesDefeated.Load(),
		GatesDestroyed:     c.gatesDestroyed.Load(),
		TickDurationMillis: c.tickDurationMillis.Load(),
	}
}
