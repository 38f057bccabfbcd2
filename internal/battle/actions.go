package battle

// ActionEconomy tracks the per-turn budget of card plays. remaining resets to
// base+bonus at player-turn entry; the bonus persists across turns until
// explicitly reset.
type ActionEconomy struct {
	remaining int
	base      int
	bonus     int
	exhausted bool

	onChanged   func(remaining, max int)
	onExhausted func()
}

// NewActionEconomy builds an economy with the given per-turn base.
func NewActionEconomy(base int) *ActionEconomy {
	if base < 1 {
		base = 1
	}
	return &ActionEconomy{base: base}
}

// SetHooks registers the change and exhaustion callbacks. The exhaustion hook
// fires exactly once per turn, on the consume that empties the budget.
func (a *ActionEconomy) SetHooks(onChanged func(remaining, max int), onExhausted func()) {
	if a == nil {
		return
	}
	a.onChanged = onChanged
	a.onExhausted = onExhausted
}

// Remaining returns the actions left this turn.
func (a *ActionEconomy) Remaining() int {
	if a == nil {
		return 0
	}
	return a.remaining
}

// Max returns the current per-turn maximum (base + bonus).
func (a *ActionEconomy) Max() int {
	if a == nil {
		return 0
	}
	return a.base + a.bonus
}

// ResetForTurn refills the budget at player-turn entry.
func (a *ActionEconomy) ResetForTurn() {
	if a == nil {
		return
	}
	a.remaining = a.Max()
	a.exhausted = false
	a.notifyChanged()
}

// Consume spends one action, flooring at zero. It returns false when nothing
// was left to spend. Emptying the budget fires the exhaustion hook once.
func (a *ActionEconomy) Consume() bool {
	if a == nil || a.remaining <= 0 {
		return false
	}
	a.remaining--
	a.notifyChanged()
	if a.remaining == 0 && !a.exhausted {
		a.exhausted = true
		if a.onExhausted != nil {
			a.onExhausted()
		}
	}
	return true
}

// AddBonus permanently raises future turn maxima by n and, mid-turn, also
// raises the current remaining count immediately.
func (a *ActionEconomy) AddBonus(n int) {
	if a == nil || n <= 0 {
		return
	}
	a.bonus += n
	a.remaining += n
	if a.remaining > 0 {
		a.exhausted = false
	}
	a.notifyChanged()
}

// ResetBonus clears the accumulated bonus. Used on battle reset.
func (a *ActionEconomy) ResetBonus() {
	if a == nil {
		return
	}
	a.bonus = 0
}

func (a *ActionEconomy) notifyChanged() {
	if a.onChanged != nil {
		a.onChanged(a.remaining, a.Max())
	}
}
