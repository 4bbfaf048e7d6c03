package player

import (
	"fmt"
	"time"

	"facility/game"
	"facility/meta"
)

// Strategy picks moves for one side of a game. Initialize is called once
// before the first move; NextMove once per ply owned by the strategy and must
// return a FREE index.
type Strategy interface {
	Name() string
	About() string
	Initialize(state game.State) error
	NextMove(state game.State) (int, error)
}

// profile carries what every strategy shares: its side and its identity.
type profile struct {
	me      game.Player
	name    string
	version string
}

func (p profile) Name() string {
	return p.name
}

func (p profile) About() string {
	return fmt.Sprintf("%s v%s", p.name, p.version)
}

type options struct {
	minSleep   time.Duration
	maxSleep   time.Duration
	sleepSeed  uint64
	sleep      func(time.Duration)
	riskFactor float64
}

func defaultOptions() options {
	return options{
		minSleep:   meta.SLOW_MIN_SLEEP,
		maxSleep:   meta.SLOW_MAX_SLEEP,
		sleepSeed:  meta.SLOW_SEED,
		sleep:      time.Sleep,
		riskFactor: meta.RISK_FACTOR,
	}
}

type Option func(o *options)

// WithSleepRange bounds the pause of the slow strategy. Zero disables it.
func WithSleepRange(min, max time.Duration) Option {
	return func(o *options) {
		if min >= 0 && max >= min {
			o.minSleep = min
			o.maxSleep = max
		}
	}
}

func WithSleepSeed(seed uint64) Option {
	return func(o *options) {
		o.sleepSeed = seed
	}
}

// WithSleepFn replaces time.Sleep, mostly for tests.
func WithSleepFn(sleep func(time.Duration)) Option {
	return func(o *options) {
		if sleep != nil {
			o.sleep = sleep
		}
	}
}

// WithRiskFactor sets the discount applied to NightHawk's blocking moves.
func WithRiskFactor(factor float64) Option {
	return func(o *options) {
		if factor > 0 {
			o.riskFactor = factor
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
