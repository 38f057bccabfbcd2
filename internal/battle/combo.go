package battle

// ComboEffectType enumerates what a completed combo grants.
type ComboEffectType string

const (
	ComboEffectDamageMultiplier ComboEffectType = "damage_multiplier"
	ComboEffectBonusActions     ComboEffectType = "bonus_actions"
)

// ComboEffect is one grant attached to a combo definition.
type ComboEffect struct {
	Type  ComboEffectType `json:"type"`
	Value float64         `json:"value" jsonschema:"minimum=0"`
}

// ComboStep is a matcher for one required weapon use. Every non-zero field
// must match the used weapon for the step to advance.
type ComboStep struct {
	WeaponID  string          `json:"weaponId,omitempty"`
	Range     RangeClass      `json:"range,omitempty"`
	Attribute WeaponAttribute `json:"attribute,omitempty"`
}

// Matches reports whether a weapon use satisfies this step.
func (s ComboStep) Matches(weapon WeaponData) bool {
	if s.WeaponID != "" && s.WeaponID != weapon.ID {
		return false
	}
	if s.Range != "" && s.Range != weapon.Range {
		return false
	}
	if s.Attribute != "" && s.Attribute != weapon.Attribute {
		return false
	}
	return s.WeaponID != "" || s.Range != "" || s.Attribute != ""
}

// ComboDefinition is a declarative weapon-use sequence and its grants.
type ComboDefinition struct {
	ID      string        `json:"id" jsonschema:"title=Combo id,pattern=^[a-z0-9\\-]+$"`
	Name    string        `json:"name"`
	Steps   []ComboStep   `json:"steps" jsonschema:"minItems=1"`
	Effects []ComboEffect `json:"effects"`
}

// DamageMultiplier returns the product of the combo's damage-multiplier
// effects, 1 when it has none.
func (d ComboDefinition) DamageMultiplier() float64 {
	multiplier := 1.0
	for _, effect := range d.Effects {
		if effect.Type == ComboEffectDamageMultiplier && effect.Value > 0 {
			multiplier *= effect.Value
		}
	}
	return multiplier
}

// BonusActions returns the summed bonus-action grants of the combo.
func (d ComboDefinition) BonusActions() int {
	bonus := 0
	for _, effect := range d.Effects {
		if effect.Type == ComboEffectBonusActions && effect.Value > 0 {
			bonus += int(effect.Value)
		}
	}
	return bonus
}

// ComboResult reports the outcome of recording one weapon use.
type ComboResult struct {
	Multiplier   float64  `json:"multiplier"`
	BonusActions int      `json:"bonusActions"`
	Completed    []string `json:"completed,omitempty"`
}

// ComboEngine tracks every combo definition's progress independently. A
// non-matching use never resets other in-progress combos; each sequence
// advances or completes on its own schedule.
type ComboEngine struct {
	definitions []ComboDefinition
	progress    map[string]int
}

// NewComboEngine starts all combos at NotStarted.
func NewComboEngine(definitions []ComboDefinition) *ComboEngine {
	return &ComboEngine{
		definitions: append([]ComboDefinition(nil), definitions...),
		progress:    make(map[string]int),
	}
}

// Progress returns the current step index for a combo id.
func (e *ComboEngine) Progress(id string) int {
	if e == nil {
		return 0
	}
	return e.progress[id]
}

// Definitions returns the tracked combo definitions.
func (e *ComboEngine) Definitions() []ComboDefinition {
	if e == nil {
		return nil
	}
	return e.definitions
}

// RecordUse evaluates a weapon use against every combo. With simulate=true it
// answers "what multiplier would this use earn right now" without touching
// any progress; with simulate=false it advances matching combos, resets the
// ones that complete, and reports the real grants.
//
// When several combos complete on the same use, the reported multiplier is
// the largest single combo's multiplier in both modes, which is what keeps
// preview and commit byte-identical; bonus actions accumulate across every
// completion.
func (e *ComboEngine) RecordUse(weapon WeaponData, simulate bool) ComboResult {
	result := ComboResult{Multiplier: 1.0}
	if e == nil {
		return result
	}
	for _, def := range e.definitions {
		if len(def.Steps) == 0 {
			continue
		}
		step := e.progress[def.ID]
		if step >= len(def.Steps) {
			step = 0
		}
		if !def.Steps[step].Matches(weapon) {
			continue
		}
		completes := step == len(def.Steps)-1
		if completes {
			if multiplier := def.DamageMultiplier(); multiplier > result.Multiplier {
				result.Multiplier = multiplier
			}
			if !simulate {
				result.BonusActions += def.BonusActions()
				result.Completed = append(result.Completed, def.ID)
				e.progress[def.ID] = 0
			}
			continue
		}
		if !simulate {
			e.progress[def.ID] = step + 1
		}
	}
	return result
}

// Reset returns every combo to NotStarted. Used on battle reset; combo
// progress never persists across battles.
func (e *ComboEngine) Reset() {
	if e == nil {
		return
	}
	e.progress = make(map[string]int)
}
