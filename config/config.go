package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"facility/game"
	"facility/meta"
	"facility/monitor"
	"facility/player"

	"lukechampine.com/frand"
)

type TournamentConfig struct {
	Strategies  []string `json:"strategies"`
	Games       int      `json:"games"` // seeds per matchup
	Parallelism int      `json:"parallelism"`
	OutDir      string   `json:"out_dir"`
	Formats     []string `json:"formats"` // csv, parquet
}

type Config struct {
	Size      int    `json:"size"`
	Seed      uint64 `json:"seed"` // 0 picks a random seed
	GameType  string `json:"game_type"`
	StrategyA string `json:"strategy_a"`
	StrategyB string `json:"strategy_b"`
	Verbose   bool   `json:"verbose"`
	LogLevel  string `json:"log_level"`

	RiskFactor     float64 `json:"risk_factor"`
	SlowMinSleepMs int     `json:"slow_min_sleep_ms"`
	SlowMaxSleepMs int     `json:"slow_max_sleep_ms"`

	MonitorCheckMs int `json:"monitor_check_ms"`
	MonitorInfoMs  int `json:"monitor_info_ms"`
	MonitorWaitMs  int `json:"monitor_wait_ms"`
	MonitorWarnMs  int `json:"monitor_warn_ms"`

	Addr     string `json:"addr"`      // host listen address
	URL      string `json:"url"`       // peer dial address
	HostRole string `json:"host_role"` // side played by the host

	Tournament TournamentConfig `json:"tournament"`
}

func DefaultConfig() Config {
	return Config{
		Size:      meta.DEFAULT_N,
		Seed:      meta.DEFAULT_SEED,
		GameType:  game.Normal.String(),
		StrategyA: "nighthawk",
		StrategyB: "highest",
		LogLevel:  "info",

		RiskFactor:     meta.RISK_FACTOR,
		SlowMinSleepMs: int(meta.SLOW_MIN_SLEEP / time.Millisecond),
		SlowMaxSleepMs: int(meta.SLOW_MAX_SLEEP / time.Millisecond),

		MonitorCheckMs: int(meta.MONITOR_CHECK / time.Millisecond),
		MonitorInfoMs:  int(meta.MONITOR_INFO / time.Millisecond),
		MonitorWaitMs:  int(meta.MONITOR_WAIT / time.Millisecond),
		MonitorWarnMs:  int(meta.MONITOR_WARN / time.Millisecond),

		Addr:     ":8080",
		URL:      "ws://localhost:8080/ws",
		HostRole: game.PlayerA.String(),

		Tournament: TournamentConfig{
			Strategies:  []string{"nighthawk", "highest", "first-free", "random-wrap"},
			Games:       10,
			Parallelism: 4,
			OutDir:      "experiments",
			Formats:     []string{"csv", "parquet"},
		},
	}
}

// Load overlays the JSON file at path on the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	gameType, err := game.ParseGameType(c.GameType)
	if err != nil {
		return err
	}
	if c.Size <= 0 {
		return fmt.Errorf("board size %d must be positive: %w", c.Size, game.ErrConfig)
	}
	if gameType.Mirrored() && c.Size < meta.MIN_MIRRORED_SIZE {
		return fmt.Errorf("%s needs at least %d nodes, got %d: %w", gameType, meta.MIN_MIRRORED_SIZE, c.Size, game.ErrConfig)
	}
	for _, name := range append([]string{c.StrategyA, c.StrategyB}, c.Tournament.Strategies...) {
		if !player.Known(name) {
			return fmt.Errorf("unknown strategy %q (known: %s): %w", name, strings.Join(player.Names(), ", "), game.ErrConfig)
		}
	}
	if _, err := game.ParsePlayer(c.HostRole); err != nil {
		return err
	}
	if c.SlowMinSleepMs < 0 || c.SlowMaxSleepMs < c.SlowMinSleepMs {
		return fmt.Errorf("slow sleep range [%d, %d] ms is empty: %w", c.SlowMinSleepMs, c.SlowMaxSleepMs, game.ErrConfig)
	}
	for _, format := range c.Tournament.Formats {
		if format != "csv" && format != "parquet" {
			return fmt.Errorf("unknown output format %q: %w", format, game.ErrConfig)
		}
	}
	return nil
}

// ResolveSeed replaces a zero seed with a random one.
func (c *Config) ResolveSeed() uint64 {
	if c.Seed == 0 {
		c.Seed = frand.Uint64n(math.MaxUint32) + 1
	}
	return c.Seed
}

// Type assumes Validate passed.
func (c Config) Type() game.GameType {
	t, _ := game.ParseGameType(c.GameType)
	return t
}

func (c Config) Role() game.Player {
	p, _ := game.ParsePlayer(c.HostRole)
	return p
}

func (c Config) PlayerOptions() []player.Option {
	return []player.Option{
		player.WithRiskFactor(c.RiskFactor),
		player.WithSleepRange(ms(c.SlowMinSleepMs), ms(c.SlowMaxSleepMs)),
	}
}

func (c Config) MonitorOptions() []monitor.Option {
	return []monitor.Option{
		monitor.WithCheck(ms(c.MonitorCheckMs)),
		monitor.WithInfo(ms(c.MonitorInfoMs)),
		monitor.WithStall(ms(c.MonitorWaitMs), ms(c.MonitorWarnMs)),
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
