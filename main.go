package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"facility/communication/client"
	"facility/communication/server"
	"facility/config"
	"facility/engine"
	"facility/experiments"
	"facility/experiments/metrics"
	"facility/game"
	"facility/gamemaster"
	"facility/monitor"
	"facility/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: facility <command> [flags]

commands:
  play        play two strategies against each other locally
  serve       host a game and wait for a peer on /ws
  join        join a hosted game
  tournament  play every pairing of strategies over many seeds
  throughput  time one pairing over growing boards`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "tournament":
		err = runTournament(ctx, os.Args[2:])
	case "throughput":
		err = runThroughput(ctx, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("facility failed")
		if errors.Is(err, game.ErrConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// commonFlags registers the flags shared by every command on fs and returns
// a function that builds the final configuration once fs is parsed.
func commonFlags(fs *flag.FlagSet) func() (config.Config, error) {
	defaults := config.DefaultConfig()
	path := fs.String("config", "", "JSON config file overlaid on the defaults")
	size := fs.Int("n", 0, fmt.Sprintf("number of nodes (default %d)", defaults.Size))
	seed := fs.Uint64("seed", 0, "board seed, 0 keeps the configured one")
	gameType := fs.String("type", "", "game type: normal, copy or complement")
	verbose := fs.Bool("v", false, "log every move and the final breakdown")
	level := fs.String("log-level", "", "debug, info, warn or error")

	return func() (config.Config, error) {
		cfg, err := config.Load(*path)
		if err != nil {
			return cfg, err
		}
		if *size > 0 {
			cfg.Size = *size
		}
		if *seed > 0 {
			cfg.Seed = *seed
		}
		if *gameType != "" {
			cfg.GameType = *gameType
		}
		if *verbose {
			cfg.Verbose = true
		}
		if *level != "" {
			cfg.LogLevel = *level
		}
		setupLogging(cfg.LogLevel)
		return cfg, nil
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func startMonitor(ctx context.Context, cfg config.Config) *monitor.Monitor {
	m := monitor.New(cfg.MonitorOptions()...)
	go m.Run(ctx)
	return m
}

func engineOptions(cfg config.Config, m *monitor.Monitor) []engine.Option {
	opts := []engine.Option{engine.WithMonitor(m)}
	if cfg.Verbose {
		opts = append(opts, engine.WithVerbose())
	}
	return opts
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	build := commonFlags(fs)
	a := fs.String("a", "", "strategy of player A")
	b := fs.String("b", "", "strategy of player B")
	_ = fs.Parse(args)

	cfg, err := build()
	if err != nil {
		return err
	}
	if *a != "" {
		cfg.StrategyA = *a
	}
	if *b != "" {
		cfg.StrategyB = *b
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ResolveSeed()

	sa, err := player.New(cfg.StrategyA, game.PlayerA, cfg.PlayerOptions()...)
	if err != nil {
		return err
	}
	sb, err := player.New(cfg.StrategyB, game.PlayerB, cfg.PlayerOptions()...)
	if err != nil {
		return err
	}

	m := startMonitor(ctx, cfg)
	e, err := engine.NewLocalEngine(cfg.Size, cfg.Seed, cfg.Type(), sa, sb, engineOptions(cfg, m)...)
	if err != nil {
		return err
	}
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	report(e.State, result)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	build := commonFlags(fs)
	addr := fs.String("addr", "", "listen address")
	strategy := fs.String("strategy", "", "host strategy")
	role := fs.String("role", "", "side played by the host: A or B")
	_ = fs.Parse(args)

	cfg, err := build()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *strategy != "" {
		cfg.StrategyA = *strategy
	}
	if *role != "" {
		cfg.HostRole = *role
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ResolveSeed()

	s, err := player.New(cfg.StrategyA, cfg.Role(), cfg.PlayerOptions()...)
	if err != nil {
		return err
	}

	sc := server.NewServerCommunicator()
	serveErr := make(chan error, 1)
	go func() { serveErr <- sc.Start(cfg.Addr) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sc.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("waiting for a peer on %s/ws", cfg.Addr)
	acceptCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := <-serveErr; err != nil {
			log.Error().Err(err).Msg("server stopped")
			cancel()
		}
	}()
	conn, err := sc.Accept(acceptCtx)
	if err != nil {
		return err
	}
	defer conn.Close()

	m := startMonitor(ctx, cfg)
	opts := []gamemaster.Option{gamemaster.WithMonitor(m)}
	if cfg.Verbose {
		opts = append(opts, gamemaster.WithVerbose())
	}
	settings := gamemaster.Settings{Size: cfg.Size, Seed: cfg.Seed, GameType: cfg.Type(), Role: cfg.Role()}
	gm, err := gamemaster.NewGameMaster(conn, settings, s, opts...)
	if err != nil {
		return err
	}
	result, err := gm.RunGame(ctx)
	if err != nil {
		return err
	}
	report(gm.State, result)
	return nil
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	build := commonFlags(fs)
	url := fs.String("url", "", "host websocket address")
	strategy := fs.String("strategy", "", "peer strategy")
	_ = fs.Parse(args)

	cfg, err := build()
	if err != nil {
		return err
	}
	if *url != "" {
		cfg.URL = *url
	}
	if *strategy != "" {
		cfg.StrategyB = *strategy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	conn, err := client.Dial(ctx, cfg.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	m := startMonitor(ctx, cfg)
	factory := func(me game.Player) (player.Strategy, error) {
		return player.New(cfg.StrategyB, me, cfg.PlayerOptions()...)
	}
	e := engine.NewRemoteEngine(conn, factory, engineOptions(cfg, m)...)
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	report(e.State, result)
	return nil
}

func runTournament(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tournament", flag.ExitOnError)
	build := commonFlags(fs)
	strategies := fs.String("strategies", "", "comma separated strategies")
	games := fs.Int("games", 0, "seeds per matchup")
	parallelism := fs.Int("parallel", 0, "games played at once")
	out := fs.String("out", "", "output directory")
	formats := fs.String("formats", "", "comma separated output formats: csv, parquet")
	_ = fs.Parse(args)

	cfg, err := build()
	if err != nil {
		return err
	}
	if *strategies != "" {
		cfg.Tournament.Strategies = strings.Split(*strategies, ",")
	}
	if *games > 0 {
		cfg.Tournament.Games = *games
	}
	if *parallelism > 0 {
		cfg.Tournament.Parallelism = *parallelism
	}
	if *out != "" {
		cfg.Tournament.OutDir = *out
	}
	if *formats != "" {
		cfg.Tournament.Formats = strings.Split(*formats, ",")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ResolveSeed()

	t := experiments.Tournament{
		Name:          "tournament",
		Matchups:      experiments.RoundRobin(cfg.Tournament.Strategies),
		Seeds:         experiments.Seeds(cfg.Seed, cfg.Tournament.Games),
		Size:          cfg.Size,
		GameType:      cfg.Type(),
		Parallelism:   cfg.Tournament.Parallelism,
		PlayerOptions: cfg.PlayerOptions(),
	}
	rep, err := t.Run(ctx)
	if err != nil {
		return err
	}
	for i, s := range rep.Standings {
		fmt.Printf("%2d. %-22s games %3d  wins %3d  losses %3d  draws %3d  forfeits %2d  points %d\n",
			i+1, s.Strategy, s.Games, s.Wins, s.Losses, s.Draws, s.Forfeits, s.Points)
	}

	w, err := metrics.NewWriter(cfg.Tournament.OutDir, t.Name)
	if err != nil {
		return err
	}
	if err := experiments.WriteReport(w, rep, cfg.Tournament.Formats); err != nil {
		return err
	}
	log.Info().Msgf("records written to %s", w.Dir())
	return nil
}

func runThroughput(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("throughput", flag.ExitOnError)
	build := commonFlags(fs)
	a := fs.String("a", "nighthawk", "strategy of player A")
	b := fs.String("b", "highest", "strategy of player B")
	sizes := fs.String("sizes", "10,100,1000,10000", "comma separated board sizes")
	_ = fs.Parse(args)

	cfg, err := build()
	if err != nil {
		return err
	}
	cfg.StrategyA, cfg.StrategyB = *a, *b
	if err := cfg.Validate(); err != nil {
		return err
	}

	var boardSizes []int
	for _, field := range strings.Split(*sizes, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(field), "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("bad board size %q: %w", field, game.ErrConfig)
		}
		boardSizes = append(boardSizes, n)
	}

	stats, rep, err := experiments.RunThroughput(ctx, experiments.Matchup{A: cfg.StrategyA, B: cfg.StrategyB},
		boardSizes, cfg.ResolveSeed(), cfg.Tournament.Parallelism)
	if err != nil {
		return err
	}
	for _, s := range stats {
		fmt.Printf("size %6d  moves %5d  per move %10v  slowest %10v\n", s.Size, s.Moves, s.PerMove(), s.MaxMove)
	}

	w, err := metrics.NewWriter(cfg.Tournament.OutDir, "throughput")
	if err != nil {
		return err
	}
	return experiments.WriteReport(w, rep, cfg.Tournament.Formats)
}

func report(state *game.GameState, result engine.Result) {
	a, b := state.MoveCounts()
	fmt.Println(state)
	fmt.Printf("%s\n", result.Score)
	fmt.Printf("Moves -- Player A: %d, Player B: %d\n", a, b)
	switch {
	case result.Forfeit:
		fmt.Printf("%s wins by forfeit of %s\n", result.WinnerName(), result.ForfeitName())
	case result.Draw:
		fmt.Println("Draw")
	default:
		fmt.Printf("%s wins\n", result.WinnerName())
	}
	if state.Type().Mirrored() && !result.Forfeit {
		fmt.Printf("Pairs check: %t\n", result.Paired)
	}
	if result.Proof != "" {
		fmt.Printf("Proof: %s\n", result.Proof)
	}
}
