package game

// Rules decide how runs of owned nodes turn into points.
type Rules interface {
	BonusMinGroupSize() int
	BonusFactor() int
}

// Run is a maximal sequence of one owner's nodes where only blocked nodes
// may sit in between.
type Run struct {
	Left   int  // index of the first owned node
	Right  int  // index of the last owned node
	Count  int  // owned nodes in the run
	Sum    int  // raw value of the owned nodes
	Bonus  bool // Count reached the bonus size
	Points int
}

// Runs scans statuses left to right and splits owner's nodes into runs.
// Blocked nodes are transparent; free nodes and the opponent's nodes end a run.
func Runs(values []int, statuses []Status, owner Status, rules Rules) []Run {
	var runs []Run
	var cur Run

	flush := func() {
		if cur.Count == 0 {
			return
		}
		cur.Points = cur.Sum
		if cur.Count >= rules.BonusMinGroupSize() {
			cur.Bonus = true
			cur.Points *= rules.BonusFactor()
		}
		runs = append(runs, cur)
		cur = Run{}
	}

	for idx, status := range statuses {
		switch status {
		case owner:
			if cur.Count == 0 {
				cur.Left = idx
			}
			cur.Right = idx
			cur.Count++
			cur.Sum += values[idx]
		case Blocked:
			continue
		default:
			flush()
		}
	}
	flush()

	return runs
}

// ScoreRuns returns owner's score for the given board.
func ScoreRuns(values []int, statuses []Status, owner Status, rules Rules) int {
	score := 0
	for _, run := range Runs(values, statuses, owner, rules) {
		score += run.Points
	}
	return score
}
