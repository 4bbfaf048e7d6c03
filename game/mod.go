package game

// State is the read-only view of a game handed to strategies and reporters.
// Slice accessors return copies; the engine stays the single writer.
type State interface {
	NumNodes() int
	Value(index int) int
	Values() []int
	Status(index int) Status
	Statuses() []Status
	NumMoves() int
	Moves() []int
	Move(ply int) int
	LastMove() (index int, ok bool)
	CurrentPlayer() Player
	Score() Score
	IsFinished() bool
	Seed() uint64
	Type() GameType
}
