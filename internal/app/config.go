package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"gatefall/server/internal/battle"
)

const (
	envConfigPath  = "GATEFALL_CONFIG"
	envListenAddr  = "GATEFALL_ADDR"
	envBattleSeed  = "GATEFALL_SEED"
	envTickRate    = "GATEFALL_TICK_RATE"
	envCatalogPath = "GATEFALL_CATALOG"
	envLogJSONPath = "GATEFALL_LOG_JSON"
)

// Config is the process-level configuration: HTTP address, tick cadence,
// logging sinks, and the embedded battle config. Values load from an
// optional TOML file, then environment variables override.
type Config struct {
	ListenAddr  string        `toml:"listen_addr"`
	TickRate    int           `toml:"tick_rate"`
	CatalogPath string        `toml:"catalog_path"`
	LogJSONPath string        `toml:"log_json_path"`
	Battle      battle.Config `toml:"battle"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		TickRate:   15,
		Battle:     battle.DefaultConfig(),
	}
}

// LoadConfig reads the TOML file at path (or the defaults when path is
// empty or missing) and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.TickRate <= 0 {
		cfg.TickRate = 15
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(envListenAddr); addr != "" {
		c.ListenAddr = addr
	}
	if seed := os.Getenv(envBattleSeed); seed != "" {
		c.Battle.Seed = seed
	}
	if raw := os.Getenv(envTickRate); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			c.TickRate = value
		}
	}
	if path := os.Getenv(envCatalogPath); path != "" {
		c.CatalogPath = path
	}
	if path := os.Getenv(envLogJSONPath); path != "" {
		c.LogJSONPath = path
	}
}
