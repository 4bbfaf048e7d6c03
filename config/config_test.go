package config

import (
	"os"
	"path/filepath"
	"testing"

	"facility/game"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path gives the defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("file overlays the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "facility.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"size": 24, "game_type": "complement", "strategy_b": "nighthawk-complement"}`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 24, cfg.Size)
		require.Equal(t, game.Complement, cfg.Type())
		require.Equal(t, "nighthawk", cfg.StrategyA)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "facility.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"size": `), 0644))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"small mirrored board": func(c *Config) { c.Size, c.GameType = 6, "copy" },
		"unknown game type":    func(c *Config) { c.GameType = "chess" },
		"unknown strategy":     func(c *Config) { c.StrategyB = "minimax" },
		"unknown host role":    func(c *Config) { c.HostRole = "C" },
		"empty sleep range":    func(c *Config) { c.SlowMinSleepMs, c.SlowMaxSleepMs = 10, 5 },
		"unknown format":       func(c *Config) { c.Tournament.Formats = []string{"xml"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), game.ErrConfig)
		})
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, cfg.Seed, cfg.ResolveSeed())

	cfg.Seed = 0
	seed := cfg.ResolveSeed()
	require.NotZero(t, seed)
	require.Equal(t, seed, cfg.Seed)
}
