package battle

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Phase identifies where the turn state machine currently sits.
type Phase string

const (
	PhaseInitializing Phase = "initializing"
	PhasePlayerTurn   Phase = "player_turn"
	PhaseEnemyTurn    Phase = "enemy_turn"
	PhaseVictory      Phase = "victory"
	PhaseDefeat       Phase = "defeat"
)

// Terminal reports whether the phase ends the battle.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

const (
	eventBeginBattle   = "begin_battle"
	eventEndPlayerTurn = "end_player_turn"
	eventEndEnemyTurn  = "end_enemy_turn"
	eventWin           = "win"
	eventLose          = "lose"
)

// TurnHooks receive phase-entry notifications from the machine. The turn
// counter has already advanced when OnPlayerTurn fires.
type TurnHooks struct {
	OnPlayerTurn func(turn int)
	OnEnemyTurn  func(turn int)
	OnTerminal   func(phase Phase)
}

// TurnMachine owns the authoritative turn counter and the battle phase
// transitions: Initializing → PlayerTurn ⇄ EnemyTurn → Victory|Defeat.
type TurnMachine struct {
	machine *fsm.FSM
	turn    int
	hooks   TurnHooks
}

// NewTurnMachine builds the machine in the Initializing phase.
func NewTurnMachine(hooks TurnHooks) *TurnMachine {
	m := &TurnMachine{hooks: hooks}
	m.machine = fsm.NewFSM(
		string(PhaseInitializing),
		fsm.Events{
			{Name: eventBeginBattle, Src: []string{string(PhaseInitializing)}, Dst: string(PhasePlayerTurn)},
			{Name: eventEndPlayerTurn, Src: []string{string(PhasePlayerTurn)}, Dst: string(PhaseEnemyTurn)},
			{Name: eventEndEnemyTurn, Src: []string{string(PhaseEnemyTurn)}, Dst: string(PhasePlayerTurn)},
			{Name: eventWin, Src: []string{string(PhasePlayerTurn), string(PhaseEnemyTurn)}, Dst: string(PhaseVictory)},
			{Name: eventLose, Src: []string{string(PhasePlayerTurn), string(PhaseEnemyTurn)}, Dst: string(PhaseDefeat)},
		},
		fsm.Callbacks{
			"enter_" + string(PhasePlayerTurn): func(_ context.Context, _ *fsm.Event) {
				m.turn++
				if m.hooks.OnPlayerTurn != nil {
					m.hooks.OnPlayerTurn(m.turn)
				}
			},
			"enter_" + string(PhaseEnemyTurn): func(_ context.Context, _ *fsm.Event) {
				if m.hooks.OnEnemyTurn != nil {
					m.hooks.OnEnemyTurn(m.turn)
				}
			},
			"enter_" + string(PhaseVictory): func(_ context.Context, _ *fsm.Event) {
				if m.hooks.OnTerminal != nil {
					m.hooks.OnTerminal(PhaseVictory)
				}
			},
			"enter_" + string(PhaseDefeat): func(_ context.Context, _ *fsm.Event) {
				if m.hooks.OnTerminal != nil {
					m.hooks.OnTerminal(PhaseDefeat)
				}
			},
		},
	)
	return m
}

// Phase returns the current phase.
func (m *TurnMachine) Phase() Phase {
	if m == nil || m.machine == nil {
		return PhaseInitializing
	}
	return Phase(m.machine.Current())
}

// Turn returns the authoritative turn counter. It is zero until the battle
// begins and increments on every player-turn entry.
func (m *TurnMachine) Turn() int {
	if m == nil {
		return 0
	}
	return m.turn
}

// Begin kicks the machine from Initializing into the first player turn.
func (m *TurnMachine) Begin() error {
	return m.fire(eventBeginBattle)
}

// EndPlayerTurn transitions PlayerTurn → EnemyTurn.
func (m *TurnMachine) EndPlayerTurn() error {
	return m.fire(eventEndPlayerTurn)
}

// EndEnemyTurn transitions EnemyTurn → PlayerTurn.
func (m *TurnMachine) EndEnemyTurn() error {
	return m.fire(eventEndEnemyTurn)
}

// Win enters the terminal Victory phase.
func (m *TurnMachine) Win() error {
	return m.fire(eventWin)
}

// Lose enters the terminal Defeat phase.
func (m *TurnMachine) Lose() error {
	return m.fire(eventLose)
}

func (m *TurnMachine) fire(event string) error {
	if m == nil || m.machine == nil {
		return fmt.Errorf("turn machine not initialised")
	}
	if err := m.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("turn transition %s from %s: %w", event, m.Phase(), err)
	}
	return nil
}
