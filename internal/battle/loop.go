package battle

import (
	"sync"
	"time"
)

const (
	// CommandRejectQueueFull indicates the command buffer is saturated.
	CommandRejectQueueFull = "queue_full"

	defaultTickRate        = 15
	defaultCommandCapacity = 256
)

// LoopConfig tunes command buffering and tick cadence.
type LoopConfig struct {
	TickRate        int
	CommandCapacity int
}

// CommandOutcome pairs a processed command with its result so the gateway
// can route acks and rejections back to the issuing connection.
type CommandOutcome struct {
	OriginID string
	Seq      uint64
	Type     CommandType
	Result   CommandResult
}

// StepResult captures everything one tick produced.
type StepResult struct {
	Tick     uint64
	Now      time.Time
	Events   []Event
	Outcomes []CommandOutcome
	Snapshot Snapshot
	Duration time.Duration
}

// LoopHooks let the gateway observe each completed tick.
type LoopHooks struct {
	AfterStep func(StepResult)
}

// Loop serializes all session mutation onto a single goroutine: commands are
// staged from any goroutine and drained on the next fixed-rate tick.
type Loop struct {
	session *Session
	config  LoopConfig
	hooks   LoopHooks

	mu     sync.Mutex
	queue  []queuedCommand
	closed bool
}

type queuedCommand struct {
	originID string
	seq      uint64
	command  Command
}

// NewLoop wraps a session with a bounded command queue.
func NewLoop(session *Session, cfg LoopConfig, hooks LoopHooks) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.CommandCapacity <= 0 {
		cfg.CommandCapacity = defaultCommandCapacity
	}
	return &Loop{session: session, config: cfg, hooks: hooks}
}

// Session exposes the underlying session for read-only access.
func (l *Loop) Session() *Session {
	if l == nil {
		return nil
	}
	return l.session
}

// Enqueue stages a command for the next tick. It reports false with a
// reason when the buffer is full.
func (l *Loop) Enqueue(originID string, seq uint64, cmd Command) (bool, string) {
	if l == nil {
		return false, CommandRejectQueueFull
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) >= l.config.CommandCapacity {
		return false, CommandRejectQueueFull
	}
	cmd.IssuedAt = time.Now()
	cmd.OriginTick = l.session.Tick()
	l.queue = append(l.queue, queuedCommand{originID: originID, seq: seq, command: cmd})
	return true, ""
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) drain() []queuedCommand {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.queue
	l.queue = nil
	return drained
}

// Advance executes one tick: staged commands dispatch in arrival order, the
// session steps, and the journal drains into the result.
func (l *Loop) Advance(now time.Time) StepResult {
	if l == nil || l.session == nil {
		return StepResult{}
	}
	start := time.Now()
	staged := l.drain()
	outcomes := make([]CommandOutcome, 0, len(staged))
	for _, item := range staged {
		result := l.session.Dispatch(item.command)
		outcomes = append(outcomes, CommandOutcome{
			OriginID: item.originID,
			Seq:      item.seq,
			Type:     item.command.Type,
			Result:   result,
		})
	}
	l.session.Step()
	result := StepResult{
		Tick:     l.session.Tick(),
		Now:      now,
		Events:   l.session.DrainEvents(),
		Outcomes: outcomes,
		Snapshot: l.session.Snapshot(),
		Duration: time.Since(start),
	}
	l.session.Counters().RecordTickDuration(result.Duration)
	return result
}

// Run drives the fixed-rate tick loop until the stop channel closes.
func (l *Loop) Run(stop <-chan struct{}) {
	if l == nil {
		return
	}
	ticker := time.NewTicker(time.Second / time.Duration(l.config.TickRate))
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			result := l.Advance(now)
			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}
