package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type gameRow struct {
	ID         string `parquet:"id"`
	StrategyA  string `parquet:"strategy_a,dict"`
	StrategyB  string `parquet:"strategy_b,dict"`
	Seed       int64  `parquet:"seed"`
	Size       int32  `parquet:"size"`
	GameType   string `parquet:"game_type,dict"`
	Winner     string `parquet:"winner,dict"`
	Forfeit    string `parquet:"forfeit,dict"`
	ScoreA     int32  `parquet:"score_a"`
	ScoreB     int32  `parquet:"score_b"`
	Moves      int32  `parquet:"moves"`
	StartMs    int64  `parquet:"start_ms"`
	DurationUs int64  `parquet:"duration_us"`
}

type moveRow struct {
	Game       string `parquet:"game,dict"`
	Step       int32  `parquet:"step"`
	Player     string `parquet:"player,dict"`
	Index      int32  `parquet:"index"`
	Value      int32  `parquet:"value"`
	ScoreA     int32  `parquet:"score_a"`
	ScoreB     int32  `parquet:"score_b"`
	DurationUs int64  `parquet:"duration_us"`
}

func (w *Writer) WriteGameParquet(records []GameRecord) error {
	rows := make([]gameRow, len(records))
	for i, r := range records {
		rows[i] = gameRow{
			ID:         r.ID,
			StrategyA:  r.StrategyA,
			StrategyB:  r.StrategyB,
			Seed:       int64(r.Seed),
			Size:       int32(r.Size),
			GameType:   r.GameType,
			Winner:     r.Winner,
			Forfeit:    r.Forfeit,
			ScoreA:     int32(r.ScoreA),
			ScoreB:     int32(r.ScoreB),
			Moves:      int32(r.TotalMoves),
			StartMs:    r.StartTime.UnixMilli(),
			DurationUs: r.Duration.Microseconds(),
		}
	}
	return writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), rows, "game_record_v1")
}

func (w *Writer) WriteMoveParquet(records []MoveRecord) error {
	rows := make([]moveRow, len(records))
	for i, r := range records {
		rows[i] = moveRow{
			Game:       r.Game,
			Step:       int32(r.Step),
			Player:     r.Player,
			Index:      int32(r.Index),
			Value:      int32(r.Value),
			ScoreA:     int32(r.ScoreA),
			ScoreB:     int32(r.ScoreB),
			DurationUs: r.Duration.Microseconds(),
		}
	}
	return writeParquet(filepath.Join(w.baseDir, "move_records.parquet"), rows, "move_record_v1")
}

// writeParquet writes to a temp file and renames it into place.
func writeParquet[T any](outPath string, rows []T, schema string) error {
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
