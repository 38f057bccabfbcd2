package battle

import "strings"

const defaultSeed = "skirmish"

// Config captures the tunables used when constructing a battle session.
type Config struct {
	Columns             int      `json:"columns" toml:"columns"`
	HandSize            int      `json:"handSize" toml:"hand_size"`
	BaseActions         int      `json:"baseActions" toml:"base_actions"`
	MaxTurns            int      `json:"maxTurns" toml:"max_turns"`
	AutoEndOnExhaustion bool     `json:"autoEndOnExhaustion" toml:"auto_end_on_exhaustion"`
	OpeningWave         bool     `json:"openingWave" toml:"opening_wave"`
	AutoEndDelayTicks   int      `json:"autoEndDelayTicks" toml:"auto_end_delay_ticks"`
	PlayerHealth        int      `json:"playerHealth" toml:"player_health"`
	PlayerAttackPower   int      `json:"playerAttackPower" toml:"player_attack_power"`
	EquippedWeapons     []string `json:"equippedWeapons" toml:"equipped_weapons"`
	Seed                string   `json:"seed" toml:"seed"`
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	normalized := cfg
	if normalized.Columns <= 0 {
		normalized.Columns = 4
	}
	if normalized.HandSize <= 0 {
		normalized.HandSize = 5
	}
	if normalized.BaseActions <= 0 {
		normalized.BaseActions = 3
	}
	if normalized.MaxTurns <= 0 {
		normalized.MaxTurns = 30
	}
	if normalized.AutoEndDelayTicks <= 0 {
		normalized.AutoEndDelayTicks = 8
	}
	if normalized.PlayerHealth <= 0 {
		normalized.PlayerHealth = 100
	}
	if normalized.PlayerAttackPower < 0 {
		normalized.PlayerAttackPower = 0
	}
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultSeed
	}
	return normalized
}

// DefaultConfig mirrors the battle the prototype client boots into.
func DefaultConfig() Config {
	return Config{
		Columns:             4,
		HandSize:            5,
		BaseActions:         3,
		MaxTurns:            30,
		AutoEndOnExhaustion: true,
		OpeningWave:         true,
		AutoEndDelayTicks:   8,
		PlayerHealth:        100,
		PlayerAttackPower:   10,
		Seed:                defaultSeed,
	}
}
