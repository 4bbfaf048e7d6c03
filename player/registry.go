package player

import (
	"strings"

	"facility/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type Constructor func(me game.Player, opts ...Option) Strategy

var registry = map[string]Constructor{
	"first-free": func(me game.Player, opts ...Option) Strategy {
		return NewFirstFree(me, opts...)
	},
	"random-wrap": func(me game.Player, opts ...Option) Strategy {
		return NewRandomWrap(me, opts...)
	},
	"highest": func(me game.Player, opts ...Option) Strategy {
		return NewHighest(me, opts...)
	},
	"slow": func(me game.Player, opts ...Option) Strategy {
		return NewSlow(me, opts...)
	},
	"nighthawk": func(me game.Player, opts ...Option) Strategy {
		return NewNightHawk(me, opts...)
	},
	"nighthawk-complement": func(me game.Player, opts ...Option) Strategy {
		return NewNightHawkComplement(me, opts...)
	},
}

var aliases = map[string]string{
	"simple1": "first-free",
	"simple2": "random-wrap",
}

// New builds the strategy registered under name for side me.
func New(name string, me game.Player, opts ...Option) (Strategy, error) {
	c, ok := registry[canonical(name)]
	if !ok {
		return nil, errors.Wrapf(game.ErrConfig, "unknown strategy %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return c(me, opts...), nil
}

// Known reports whether name resolves to a registered strategy.
func Known(name string) bool {
	_, ok := registry[canonical(name)]
	return ok
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func canonical(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		return target
	}
	return key
}
