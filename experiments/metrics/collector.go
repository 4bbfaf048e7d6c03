package metrics

import (
	"time"

	"facility/game"
)

type MoveMetric struct {
	Step     int
	Player   string
	Index    int
	Value    int
	ScoreA   int
	ScoreB   int
	Duration time.Duration // time the strategy spent choosing
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // empty on a draw
	Forfeit        string // player who lost by an illegal move, if any
	ScoreA         int
	ScoreB         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records one game. It is owned by a single engine and not safe
// for concurrent use.
type Collector interface {
	Start()
	StartMove()
	AddMove(step int, player game.Player, index, value int, score game.Score)
	Complete(winner string, forfeit string, score game.Score) GameMetric
	Moves() []MoveMetric
}

type collector struct {
	startTime time.Time
	moveStart time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.moves = c.moves[:0]
}

func (c *collector) StartMove() {
	c.moveStart = time.Now()
}

func (c *collector) AddMove(step int, player game.Player, index, value int, score game.Score) {
	c.moves = append(c.moves, MoveMetric{
		Step:     step,
		Player:   player.String(),
		Index:    index,
		Value:    value,
		ScoreA:   score.A,
		ScoreB:   score.B,
		Duration: time.Since(c.moveStart),
	})
}

func (c *collector) Complete(winner string, forfeit string, score game.Score) GameMetric {
	end := time.Now()
	return GameMetric{
		StartingPlayer: game.PlayerA.String(),
		Winner:         winner,
		Forfeit:        forfeit,
		ScoreA:         score.A,
		ScoreB:         score.B,
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     len(c.moves),
	}
}

func (c *collector) Moves() []MoveMetric {
	return append([]MoveMetric(nil), c.moves...)
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start() {}
func (c *dummyCollector) StartMove() {}
func (c *dummyCollector) AddMove(int, game.Player, int, int, game.Score) {}
func (c *dummyCollector) Complete(winner string, forfeit string, score game.Score) GameMetric {
	return GameMetric{Winner: winner, Forfeit: forfeit, ScoreA: score.A, ScoreB: score.B}
}
func (c *dummyCollector) Moves() []MoveMetric { return nil }
