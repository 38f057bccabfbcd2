package battle

import "fmt"

// RangeClass describes which cells a weapon can reach.
type RangeClass string

const (
	RangeSingleFront RangeClass = "single_front"
	RangeSingleAny   RangeClass = "single_any"
	RangeRow1        RangeClass = "row1"
	RangeRow2        RangeClass = "row2"
	RangeColumn      RangeClass = "column"
	RangeAll         RangeClass = "all"
	RangeSelf        RangeClass = "self"
)

// WeaponAttribute tags a weapon for combo step matching.
type WeaponAttribute string

const (
	AttributeSlash  WeaponAttribute = "slash"
	AttributePierce WeaponAttribute = "pierce"
	AttributeBlunt  WeaponAttribute = "blunt"
	AttributeEnergy WeaponAttribute = "energy"
)

// WeaponData is the static designer definition a card projects.
type WeaponData struct {
	ID                string          `json:"id" jsonschema:"title=Weapon id,pattern=^[a-z0-9\\-]+$"`
	Name              string          `json:"name"`
	BasePower         int             `json:"basePower" jsonschema:"minimum=0"`
	Range             RangeClass      `json:"range"`
	Attribute         WeaponAttribute `json:"attribute,omitempty"`
	CriticalRate      float64         `json:"criticalRate,omitempty" jsonschema:"minimum=0,maximum=1"`
	CooldownTurns     int             `json:"cooldownTurns,omitempty" jsonschema:"minimum=0"`
	UsableConsecutive bool            `json:"usableConsecutive,omitempty"`
}

// CardData is the per-slot projection of a weapon the hand exposes. Cards are
// regenerated every turn from the equipped weapon set and carry no owned
// state beyond their identity.
type CardData struct {
	ID           string     `json:"id"`
	Weapon       WeaponData `json:"weapon"`
	TargetColumn int        `json:"targetColumn"`
}

// NewCard projects a weapon into a hand card. The slot index keeps ids
// stable within a turn even when weapons repeat across slots.
func NewCard(weapon WeaponData, slot int) CardData {
	return CardData{
		ID:           fmt.Sprintf("card-%s-%d", weapon.ID, slot),
		Weapon:       weapon,
		TargetColumn: -1,
	}
}

// RequiresColumn reports whether the card's range resolves against a chosen
// column rather than the whole field or a row.
func (c CardData) RequiresColumn() bool {
	switch c.Weapon.Range {
	case RangeAll, RangeRow1, RangeRow2, RangeSelf:
		return false
	default:
		return true
	}
}
