package battle

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog holds the static designer tables a battle session resolves against:
// gate base configurations, enemy definitions, weapon definitions, and combo
// definitions. The built-in defaults cover the prototype content; a JSON
// overlay authored against the generated schema may replace any table.
type Catalog struct {
	Gates   map[GateType]GateConfig
	Enemies map[string]EnemyDefinition
	Weapons map[string]WeaponData
	Combos  []ComboDefinition
}

// CatalogFile models the JSON contract for designer-authored catalog
// overlays. It is shared with the schema generator so validation and editor
// tooling stay in sync with the loader.
type CatalogFile struct {
	Gates   []GateConfig      `json:"gates,omitempty" jsonschema:"description=Gate base configurations keyed by type"`
	Enemies []EnemyDefinition `json:"enemies,omitempty" jsonschema:"description=Enemy kinds referenced by gate spawn pools"`
	Weapons []WeaponData      `json:"weapons,omitempty" jsonschema:"description=Weapon definitions the hand projects into cards"`
	Combos  []ComboDefinition `json:"combos,omitempty" jsonschema:"description=Declarative combo sequences"`
}

// DefaultCatalog returns the built-in prototype content.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Gates: map[GateType]GateConfig{
			GateStandard: {
				Type:           GateStandard,
				BaseHealth:     120,
				Pattern:        PatternA,
				SummonInterval: 1,
				SpawnPool:      []string{"grunt"},
			},
			GateElite: {
				Type:           GateElite,
				BaseHealth:     180,
				Pattern:        PatternB,
				SummonInterval: 1,
				SpawnPool:      []string{"grunt", "bruiser"},
				Effect:         GateEffect{Type: EffectAttackBoost, Strength: 1.5},
			},
			GateSupport: {
				Type:           GateSupport,
				BaseHealth:     100,
				Pattern:        PatternPeriodic,
				SummonInterval: 2,
				SpawnPool:      []string{"grunt"},
				Effect:         GateEffect{Type: EffectRegeneration, Strength: 1.0},
			},
			GateSummoner: {
				Type:           GateSummoner,
				BaseHealth:     140,
				Pattern:        PatternC,
				SummonInterval: 2,
				SpawnPool:      []string{"grunt", "swarmling"},
			},
			GateFortress: {
				Type:           GateFortress,
				BaseHealth:     260,
				Pattern:        PatternDefensive,
				SummonInterval: 2,
				SpawnPool:      []string{"bruiser"},
				Effect:         GateEffect{Type: EffectDefenseBoost, Strength: 1.0},
			},
		},
		Enemies: map[string]EnemyDefinition{
			"grunt":     {ID: "grunt", Name: "Grunt", Health: 40, AttackPower: 6},
			"swarmling": {ID: "swarmling", Name: "Swarmling", Health: 15, AttackPower: 3},
			"bruiser":   {ID: "bruiser", Name: "Bruiser", Health: 80, AttackPower: 12},
		},
		Weapons: map[string]WeaponData{
			"shortsword": {
				ID: "shortsword", Name: "Shortsword", BasePower: 30,
				Range: RangeSingleFront, Attribute: AttributeSlash,
				CriticalRate: 0.1, CooldownTurns: 0, UsableConsecutive: true,
			},
			"longbow": {
				ID: "longbow", Name: "Longbow", BasePower: 22,
				Range: RangeSingleAny, Attribute: AttributePierce,
				CriticalRate: 0.15, CooldownTurns: 0, UsableConsecutive: true,
			},
			"halberd": {
				ID: "halberd", Name: "Halberd", BasePower: 18,
				Range: RangeRow1, Attribute: AttributeSlash,
				CooldownTurns: 1,
			},
			"ballista": {
				ID: "ballista", Name: "Ballista", BasePower: 26,
				Range: RangeColumn, Attribute: AttributePierce,
				CooldownTurns: 2,
			},
			"stormcaller": {
				ID: "stormcaller", Name: "Stormcaller", BasePower: 14,
				Range: RangeAll, Attribute: AttributeEnergy,
				CooldownTurns: 3,
			},
		},
		Combos: []ComboDefinition{
			{
				ID:   "twin-edge",
				Name: "Twin Edge",
				Steps: []ComboStep{
					{Attribute: AttributeSlash},
					{Attribute: AttributeSlash},
				},
				Effects: []ComboEffect{
					{Type: ComboEffectDamageMultiplier, Value: 1.5},
				},
			},
			{
				ID:   "piercing-volley",
				Name: "Piercing Volley",
				Steps: []ComboStep{
					{Attribute: AttributePierce},
					{Attribute: AttributePierce},
					{Attribute: AttributePierce},
				},
				Effects: []ComboEffect{
					{Type: ComboEffectDamageMultiplier, Value: 2.0},
					{Type: ComboEffectBonusActions, Value: 1},
				},
			},
			{
				ID:   "storm-break",
				Name: "Storm Break",
				Steps: []ComboStep{
					{WeaponID: "stormcaller"},
					{Range: RangeColumn},
				},
				Effects: []ComboEffect{
					{Type: ComboEffectDamageMultiplier, Value: 2.5},
				},
			},
		},
	}
}

// LoadCatalog reads a JSON overlay and merges it over the defaults. A missing
// path returns the defaults untouched; a malformed file is an error so broken
// designer data is caught at boot, not mid-battle.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	catalog.merge(file)
	return catalog, nil
}

func (c *Catalog) merge(file CatalogFile) {
	for _, gate := range file.Gates {
		if gate.Type == "" {
			continue
		}
		c.Gates[gate.Type] = gate
	}
	for _, enemy := range file.Enemies {
		if enemy.ID == "" {
			continue
		}
		c.Enemies[enemy.ID] = enemy
	}
	for _, weapon := range file.Weapons {
		if weapon.ID == "" {
			continue
		}
		c.Weapons[weapon.ID] = weapon
	}
	if len(file.Combos) > 0 {
		c.Combos = append([]ComboDefinition(nil), file.Combos...)
	}
}

// GateConfigFor resolves the base configuration for a gate type, falling back
// to the standard gate so an unknown type degrades instead of crashing setup.
func (c *Catalog) GateConfigFor(gateType GateType) GateConfig {
	if c != nil {
		if cfg, ok := c.Gates[gateType]; ok {
			return cfg
		}
		if cfg, ok := c.Gates[GateStandard]; ok {
			cfg.Type = gateType
			return cfg
		}
	}
	return GateConfig{Type: gateType, BaseHealth: 100, Pattern: PatternA, SummonInterval: 1}
}

// Enemy resolves an enemy definition by id.
func (c *Catalog) Enemy(id string) (EnemyDefinition, bool) {
	if c == nil {
		return EnemyDefinition{}, false
	}
	def, ok := c.Enemies[id]
	return def, ok
}

// Weapon resolves a weapon definition by id.
func (c *Catalog) Weapon(id string) (WeaponData, bool) {
	if c == nil {
		return WeaponData{}, false
	}
	def, ok := c.Weapons[id]
	return def, ok
}

// DefaultWeaponIDs lists the built-in loadout used when the session config
// does not name an equipped set. Order is stable for hand generation.
func (c *Catalog) DefaultWeaponIDs() []string {
	return []string{"shortsword", "longbow", "halberd", "ballista", "stormcaller"}
}
