package experiments

import (
	"context"
	"time"

	"facility/experiments/metrics"
	"facility/game"

	"github.com/rs/zerolog/log"
)

// SizeStats summarizes how long strategies took per move on one board size.
type SizeStats struct {
	Size      int
	Moves     int
	TotalTime time.Duration
	MaxMove   time.Duration
}

func (s SizeStats) PerMove() time.Duration {
	if s.Moves == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Moves)
}

// RunThroughput plays matchup once per size and reports per-move timings.
// NightHawk's cost per move should stay flat as boards grow.
func RunThroughput(ctx context.Context, matchup Matchup, sizes []int, seed uint64, parallelism int) ([]SizeStats, Report, error) {
	log.Info().Msg("starting throughput experiment...")

	stats := []SizeStats{}
	merged := Report{}
	for _, size := range sizes {
		t := Tournament{
			Name:        "throughput",
			Matchups:    []Matchup{matchup},
			Seeds:       []uint64{seed},
			Size:        size,
			GameType:    game.Normal,
			Parallelism: parallelism,
		}
		report, err := t.Run(ctx)
		if err != nil {
			return nil, Report{}, err
		}
		s := summarize(size, report.Moves)
		stats = append(stats, s)
		merged.Games = append(merged.Games, report.Games...)
		merged.Moves = append(merged.Moves, report.Moves...)

		log.Info().Msgf("size %d: %d moves, %v per move, slowest %v", size, s.Moves, s.PerMove(), s.MaxMove)
	}
	merged.Standings = standings(merged.Games)

	log.Info().Msg("completed throughput experiment")
	return stats, merged, nil
}

func summarize(size int, moves []metrics.MoveRecord) SizeStats {
	s := SizeStats{Size: size, Moves: len(moves)}
	for _, m := range moves {
		s.TotalTime += m.Duration
		s.MaxMove = max(s.MaxMove, m.Duration)
	}
	return s
}
