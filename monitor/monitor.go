package monitor

import (
	"context"
	"sync"
	"time"

	"facility/meta"

	"github.com/rs/zerolog/log"
)

type PlayerState int

const (
	Uninit PlayerState = iota
	Starting
	WaitingForMe
	WaitingForOpponent
	Terminating
)

func (s PlayerState) String() string {
	switch s {
	case Uninit:
		return "UNINIT"
	case Starting:
		return "STARTING"
	case WaitingForMe:
		return "WAITING_FOR_ME"
	case WaitingForOpponent:
		return "WAITING_FOR_OPPONENT"
	case Terminating:
		return "TERMINATING"
	}
	return "UNKNOWN"
}

type Option func(m *Monitor)

func WithCheck(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.check = d
		}
	}
}

func WithInfo(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.info = d
		}
	}
}

// WithStall sets how long a state may stay unchanged before a warning, and
// the minimum spacing between warnings.
func WithStall(wait, warn time.Duration) Option {
	return func(m *Monitor) {
		if wait > 0 {
			m.wait = wait
		}
		if warn > 0 {
			m.warn = warn
		}
	}
}

// Monitor watches a player's progress and logs when it stalls. It never
// touches the game.
type Monitor struct {
	check time.Duration
	info  time.Duration
	warn  time.Duration
	wait  time.Duration

	mu         sync.Mutex
	state      PlayerState
	round      int
	stop       bool
	warnings   int
	start      time.Time
	lastChange time.Time
	lastInfo   time.Time
	lastWarn   time.Time
}

func New(opts ...Option) *Monitor {
	now := time.Now()
	m := &Monitor{
		check:      meta.MONITOR_CHECK,
		info:       meta.MONITOR_INFO,
		warn:       meta.MONITOR_WARN,
		wait:       meta.MONITOR_WAIT,
		start:      now,
		lastChange: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetState records the round and the player's state. The stall timer only
// restarts when the state actually changes. A nil Monitor ignores all calls
// but Run; its State is Uninit and it has no warnings.
func (m *Monitor) SetState(round int, state PlayerState) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.round = round
	if m.state != state {
		m.state = state
		m.lastChange = time.Now()
	}
}

func (m *Monitor) State() (int, PlayerState) {
	if m == nil {
		return 0, Uninit
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.round, m.state
}

func (m *Monitor) RequestStop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

// Warnings counts the stall warnings logged so far.
func (m *Monitor) Warnings() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warnings
}

func (m *Monitor) Log(message string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	log.Info().
		Int("round", m.round).
		Int64("gametime", int64(time.Since(m.start).Seconds())).
		Msgf("monitor: %s", message)
}

// Run polls until RequestStop, the Terminating state or ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	now := time.Now()
	m.mu.Lock()
	m.start, m.lastInfo, m.lastWarn = now, now, now
	m.mu.Unlock()

	ticker := time.NewTicker(m.check)
	defer ticker.Stop()
	for !m.done() {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.checkProgress(now)
			m.checkInfo(now)
		}
	}
}

func (m *Monitor) done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop || m.state == Terminating
}

func (m *Monitor) checkProgress(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stalled := now.Sub(m.lastChange)
	if stalled > m.wait && now.Sub(m.lastWarn) > m.warn {
		log.Warn().
			Int("round", m.round).
			Str("state", m.state.String()).
			Msgf("monitor: player in state %s for %d sec", m.state, int(stalled.Seconds()))
		m.lastWarn = now
		m.warnings++
	}
}

func (m *Monitor) checkInfo(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastInfo) > m.info {
		log.Info().Int("round", m.round).Msg("monitor: alive")
		m.lastInfo = now
	}
}
