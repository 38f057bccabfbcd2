package battle

// PlayerState is the inbound player record the session consumes: health, base
// attack power, the equipped weapon ids the hand regenerates from, and the
// per-weapon cooldown counters the turn machine decrements.
type PlayerState struct {
	Health          int      `json:"health"`
	MaxHealth       int      `json:"maxHealth"`
	BaseAttackPower int      `json:"baseAttackPower"`
	Equipped        []string `json:"equipped"`

	cooldowns map[string]int
}

// NewPlayerState builds a player record from the session config.
func NewPlayerState(health, attackPower int, equipped []string) *PlayerState {
	return &PlayerState{
		Health:          health,
		MaxHealth:       health,
		BaseAttackPower: attackPower,
		Equipped:        append([]string(nil), equipped...),
		cooldowns:       make(map[string]int),
	}
}

// Alive reports whether the player still has health remaining.
func (p *PlayerState) Alive() bool {
	return p != nil && p.Health > 0
}

// ApplyDamage reduces health, flooring at zero, and returns the amount
// absorbed.
func (p *PlayerState) ApplyDamage(amount int) int {
	if p == nil || amount <= 0 {
		return 0
	}
	if amount > p.Health {
		amount = p.Health
	}
	p.Health -= amount
	return amount
}

// OnCooldown reports whether a weapon is still cooling down.
func (p *PlayerState) OnCooldown(weaponID string) bool {
	if p == nil {
		return false
	}
	return p.cooldowns[weaponID] > 0
}

// SetCooldown starts a weapon's cooldown. Zero-turn weapons never enter the
// map.
func (p *PlayerState) SetCooldown(weaponID string, turns int) {
	if p == nil || turns <= 0 {
		return
	}
	if p.cooldowns == nil {
		p.cooldowns = make(map[string]int)
	}
	p.cooldowns[weaponID] = turns
}

// TickCooldowns decrements every active cooldown by one turn.
func (p *PlayerState) TickCooldowns() {
	for weaponID, remaining := range p.cooldowns {
		if remaining <= 1 {
			delete(p.cooldowns, weaponID)
			continue
		}
		p.cooldowns[weaponID] = remaining - 1
	}
}

// CooldownRemaining returns the turns left on a weapon's cooldown.
func (p *PlayerState) CooldownRemaining(weaponID string) int {
	if p == nil {
		return 0
	}
	return p.cooldowns[weaponID]
}

// ResetCooldowns clears every cooldown. Used on battle reset.
func (p *PlayerState) ResetCooldowns() {
	if p == nil {
		return
	}
	p.cooldowns = make(map[string]int)
}
