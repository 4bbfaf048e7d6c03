package player

import (
	"time"

	"facility/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Slow sleeps for a random duration before every move, then takes the
// highest FREE index. It stands in for an unresponsive opponent.
type Slow struct {
	profile
	minSleep time.Duration
	maxSleep time.Duration
	sleep    func(time.Duration)
	gen      *rand.Rand
}

func NewSlow(me game.Player, opts ...Option) *Slow {
	o := buildOptions(opts)
	return &Slow{
		profile:  profile{me: me, name: "slow", version: "1.0"},
		minSleep: o.minSleep,
		maxSleep: o.maxSleep,
		sleep:    o.sleep,
		gen:      rand.New(rand.NewSource(o.sleepSeed)),
	}
}

func (s *Slow) Initialize(game.State) error {
	return nil
}

func (s *Slow) NextMove(state game.State) (int, error) {
	if d := s.pause(); d > 0 {
		log.Debug().Msgf("%s sleeping %v", s.About(), d)
		s.sleep(d)
	}
	for i := state.NumNodes() - 1; i >= 0; i-- {
		if state.Status(i) == game.Free {
			return i, nil
		}
	}
	return -1, ErrNoAvailableMove
}

func (s *Slow) pause() time.Duration {
	spread := s.maxSleep - s.minSleep
	if spread <= 0 {
		return s.minSleep
	}
	return s.minSleep + time.Duration(s.gen.Int63n(int64(spread)+1))
}
