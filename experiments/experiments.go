package experiments

import (
	"context"
	"fmt"
	"sync"

	"facility/engine"
	"facility/experiments/metrics"
	"facility/game"
	"facility/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Matchup struct {
	A string
	B string
}

// RoundRobin pairs every strategy with every other one on both sides.
func RoundRobin(strategies []string) []Matchup {
	matchups := []Matchup{}
	for _, a := range strategies {
		for _, b := range strategies {
			if a != b {
				matchups = append(matchups, Matchup{A: a, B: b})
			}
		}
	}
	return matchups
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// Tournament plays every matchup on every seed. Each game gets fresh
// strategies and its own engine.
type Tournament struct {
	Name          string
	Matchups      []Matchup
	Seeds         []uint64
	Size          int
	GameType      game.GameType
	Parallelism   int
	PlayerOptions []player.Option
}

type Standing struct {
	Strategy string
	Games    int
	Wins     int
	Losses   int
	Draws    int
	Forfeits int
	Points   int
}

type Report struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Standings []Standing
}

type job struct {
	matchup Matchup
	seed    uint64
}

type gameOutput struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays all games, at most Parallelism at a time. The first strategy
// error cancels the remaining games.
func (t Tournament) Run(ctx context.Context) (Report, error) {
	jobs := []job{}
	for _, m := range t.Matchups {
		for _, seed := range t.Seeds {
			jobs = append(jobs, job{matchup: m, seed: seed})
		}
	}

	log.Info().Msgf("starting %s tournament: %d matchups, %d games...", t.Name, len(t.Matchups), len(jobs))

	outputs := make([]gameOutput, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.Parallelism, 1))

	var mu sync.Mutex
	completed := 0
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			out, err := t.runGame(ctx, j)
			if err != nil {
				return fmt.Errorf("%s vs %s on seed %d: %w", j.matchup.A, j.matchup.B, j.seed, err)
			}
			outputs[i] = out

			mu.Lock()
			completed++
			log.Info().Msgf("completed game %d of %d: %s vs %s with winner: %s",
				completed, len(jobs), j.matchup.A, j.matchup.B, winnerLabel(out.game))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{}
	for _, out := range outputs {
		report.Games = append(report.Games, out.game)
		report.Moves = append(report.Moves, out.moves...)
	}
	report.Standings = standings(report.Games)

	log.Info().Msgf("completed %s tournament", t.Name)
	return report, nil
}

func (t Tournament) runGame(ctx context.Context, j job) (gameOutput, error) {
	a, err := player.New(j.matchup.A, game.PlayerA, t.PlayerOptions...)
	if err != nil {
		return gameOutput{}, err
	}
	b, err := player.New(j.matchup.B, game.PlayerB, t.PlayerOptions...)
	if err != nil {
		return gameOutput{}, err
	}

	e, err := engine.NewLocalEngine(t.Size, j.seed, t.GameType, a, b, engine.WithCollector(metrics.NewCollector()))
	if err != nil {
		return gameOutput{}, err
	}
	result, err := e.Run(ctx)
	if err != nil {
		return gameOutput{}, err
	}

	id := uuid.NewString()
	out := gameOutput{
		game: metrics.GameRecord{
			ID:         id,
			StrategyA:  a.Name(),
			StrategyB:  b.Name(),
			Seed:       j.seed,
			Size:       t.Size,
			GameType:   t.GameType.String(),
			GameMetric: result.Game,
		},
	}
	for _, mm := range result.MoveStats {
		out.moves = append(out.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return out, nil
}

func winnerLabel(r metrics.GameRecord) string {
	switch r.Winner {
	case game.PlayerA.String():
		return r.StrategyA
	case game.PlayerB.String():
		return r.StrategyB
	}
	return "draw"
}

func standings(games []metrics.GameRecord) []Standing {
	byName := map[string]*Standing{}
	get := func(name string) *Standing {
		s, ok := byName[name]
		if !ok {
			s = &Standing{Strategy: name}
			byName[name] = s
		}
		return s
	}

	for _, r := range games {
		a, b := get(r.StrategyA), get(r.StrategyB)
		a.Games++
		b.Games++
		a.Points += r.ScoreA
		b.Points += r.ScoreB
		switch r.Winner {
		case game.PlayerA.String():
			a.Wins++
			b.Losses++
		case game.PlayerB.String():
			b.Wins++
			a.Losses++
		default:
			a.Draws++
			b.Draws++
		}
		switch r.Forfeit {
		case game.PlayerA.String():
			a.Forfeits++
		case game.PlayerB.String():
			b.Forfeits++
		}
	}

	result := make([]Standing, 0, len(byName))
	for _, s := range byName {
		result = append(result, *s)
	}
	slices.SortFunc(result, func(x, y Standing) int {
		if x.Wins != y.Wins {
			return y.Wins - x.Wins
		}
		if x.Points != y.Points {
			return y.Points - x.Points
		}
		if x.Strategy < y.Strategy {
			return -1
		}
		return 1
	})
	return result
}

// WriteReport stores the records in every requested format.
func WriteReport(w *metrics.Writer, report Report, formats []string) error {
	for _, format := range formats {
		switch format {
		case "csv":
			if err := w.WriteGameRecords(report.Games); err != nil {
				return err
			}
			log.Info().Msg("stored game records")
			if err := w.WriteMoveRecords(report.Moves); err != nil {
				return err
			}
			log.Info().Msg("stored move records")
		case "parquet":
			if err := w.WriteGameParquet(report.Games); err != nil {
				return err
			}
			if err := w.WriteMoveParquet(report.Moves); err != nil {
				return err
			}
			log.Info().Msg("stored parquet records")
		default:
			return fmt.Errorf("unknown output format %q: %w", format, game.ErrConfig)
		}
	}
	return nil
}
