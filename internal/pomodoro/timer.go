package pomodoro

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
)

const maxMinutes = 600

// State is the published view of the timer.
type State struct {
	Active    bool      `json:"active"`
	Minutes   int       `json:"minutes"`
	Remaining int       `json:"remaining"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// Timer counts a focus session down one second per tick. Finishing records a
// completed session; stopping or restarting an active run records it as
// stopped early.
type Timer struct {
	stats          *Stats
	tick           time.Duration
	defaultMinutes int
	log            logger.Logger
	state          *observe.Cell[State]
	now            func() time.Time

	mu     sync.Mutex
	cur    State
	stopCh chan struct{}
}

func NewTimer(stats *Stats, defaultMinutes int, tick time.Duration, log logger.Logger) *Timer {
	if tick <= 0 {
		tick = time.Second
	}
	return &Timer{
		stats:          stats,
		tick:           tick,
		defaultMinutes: defaultMinutes,
		log:            log,
		state:          observe.NewCell(State{}),
		now:            time.Now,
	}
}

// Start begins a run of the given length; zero uses the configured default.
func (t *Timer) Start(minutes int) error {
	if minutes == 0 {
		minutes = t.defaultMinutes
	}
	if minutes < 1 || minutes > maxMinutes {
		return fmt.Errorf("timer length must be between 1 and %d minutes, got %d", maxMinutes, minutes)
	}

	t.mu.Lock()
	t.abandonLocked()
	stop := make(chan struct{})
	t.stopCh = stop
	t.cur = State{
		Active:    true,
		Minutes:   minutes,
		Remaining: minutes * 60,
		StartedAt: t.now(),
	}
	snap := t.cur
	t.mu.Unlock()

	t.state.Set(snap)
	t.log.Info("pomodoro started", logger.Int("minutes", minutes))
	go t.run(stop)
	return nil
}

// Stop ends the active run early. It reports false when no run was active.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	wasActive := t.abandonLocked()
	snap := t.cur
	t.mu.Unlock()

	if wasActive {
		t.state.Set(snap)
	}
	return wasActive
}

// State returns the current snapshot.
func (t *Timer) State() State { return t.state.Get() }

func (t *Timer) Subscribe(fn func(State)) (cancel func()) { return t.state.Subscribe(fn) }

// abandonLocked stops the ticking goroutine and records the run as stopped early.
func (t *Timer) abandonLocked() bool {
	if !t.cur.Active {
		return false
	}
	close(t.stopCh)
	t.stopCh = nil
	t.stats.AddSession(context.Background(), t.cur.StartedAt, t.now(), StoppedEarly)
	t.log.Info("pomodoro stopped early", logger.Int("remaining", t.cur.Remaining))
	t.cur = State{Minutes: t.cur.Minutes}
	return true
}

func (t *Timer) run(stop <-chan struct{}) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := t.step(stop); done {
				return
			}
		}
	}
}

// step advances the run by one second. It ignores ticks from a run that was
// already replaced.
func (t *Timer) step(stop <-chan struct{}) bool {
	t.mu.Lock()
	if t.stopCh == nil || !sameChan(t.stopCh, stop) {
		t.mu.Unlock()
		return true
	}

	t.cur.Remaining--
	if t.cur.Remaining > 0 {
		snap := t.cur
		t.mu.Unlock()
		t.state.Set(snap)
		return false
	}

	started := t.cur.StartedAt
	t.stopCh = nil
	t.cur = State{Minutes: t.cur.Minutes}
	snap := t.cur
	t.mu.Unlock()

	t.stats.AddSession(context.Background(), started, t.now(), Completed)
	t.log.Info("pomodoro completed")
	t.state.Set(snap)
	return true
}

func sameChan(a chan struct{}, b <-chan struct{}) bool {
	return (<-chan struct{})(a) == b
}
