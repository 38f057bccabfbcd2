package battle

// HandState tracks the hand's lifecycle within a turn. Cards are only
// playable from the Generated state; mid-transition plays are rejected.
type HandState string

const (
	HandEmpty      HandState = "empty"
	HandGenerating HandState = "generating"
	HandGenerated  HandState = "generated"
)

// HandController surfaces a fixed-size ordered array of playable card slots,
// regenerated from the equipped weapons every player turn. It owns the
// selection cursor for the two-click preview/commit protocol; the session
// owns the playability rules.
type HandController struct {
	size     int
	slots    []*CardData
	state    HandState
	selected int
	disabled bool
}

// NewHandController builds an empty hand with the given slot count.
func NewHandController(size int) *HandController {
	if size < 1 {
		size = 1
	}
	return &HandController{
		size:     size,
		slots:    make([]*CardData, size),
		state:    HandEmpty,
		selected: -1,
	}
}

// Generate fills every slot from the weapon set, repeating cards cyclically
// when fewer distinct weapons exist than slots. An empty weapon set leaves
// the hand empty.
func (h *HandController) Generate(weapons []WeaponData) {
	if h == nil {
		return
	}
	h.state = HandGenerating
	h.selected = -1
	h.disabled = false
	h.slots = make([]*CardData, h.size)
	if len(weapons) == 0 {
		h.state = HandEmpty
		return
	}
	for slot := 0; slot < h.size; slot++ {
		card := NewCard(weapons[slot%len(weapons)], slot)
		h.slots[slot] = &card
	}
	h.state = HandGenerated
}

// Clear empties every slot and drops the selection.
func (h *HandController) Clear() {
	if h == nil {
		return
	}
	h.slots = make([]*CardData, h.size)
	h.state = HandEmpty
	h.selected = -1
}

// Size returns the slot count.
func (h *HandController) Size() int {
	if h == nil {
		return 0
	}
	return h.size
}

// State returns the hand lifecycle state.
func (h *HandController) State() HandState {
	if h == nil {
		return HandEmpty
	}
	return h.state
}

// Card returns the card in a slot, nil when empty or out of range.
func (h *HandController) Card(slot int) *CardData {
	if h == nil || slot < 0 || slot >= len(h.slots) {
		return nil
	}
	return h.slots[slot]
}

// Cards returns a snapshot of the slot array; empty slots are nil.
func (h *HandController) Cards() []*CardData {
	if h == nil {
		return nil
	}
	return append([]*CardData(nil), h.slots...)
}

// Selected returns the selected slot index, -1 when nothing is selected.
func (h *HandController) Selected() int {
	if h == nil {
		return -1
	}
	return h.selected
}

// Select moves the selection cursor. Selecting an already-selected slot is
// the commit half of the two-click protocol; the session decides that.
func (h *HandController) Select(slot int) {
	if h == nil || slot < 0 || slot >= len(h.slots) {
		return
	}
	h.selected = slot
}

// Deselect drops the selection cursor.
func (h *HandController) Deselect() {
	if h == nil {
		return
	}
	h.selected = -1
}

// ConsumeSlot clears a slot after its card committed and drops the
// selection.
func (h *HandController) ConsumeSlot(slot int) {
	if h == nil || slot < 0 || slot >= len(h.slots) {
		return
	}
	h.slots[slot] = nil
	h.selected = -1
}

// Disable locks the hand against further input until the next generation.
// The session calls this the instant the action economy reports exhaustion.
func (h *HandController) Disable() {
	if h == nil {
		return
	}
	h.disabled = true
	h.selected = -1
}

// Disabled reports whether hand input is locked.
func (h *HandController) Disabled() bool {
	return h != nil && h.disabled
}
