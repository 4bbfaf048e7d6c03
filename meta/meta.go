// meta/meta.go
package meta

import "time"

// MIN_VALUE is the smallest value handed out by the mirrored game types.
const MIN_VALUE = 10

// MAX_VALUE is the largest value of a NORMAL board node.
const MAX_VALUE = 50

// BONUS_MIN_GROUP_SIZE is the run length from which the bonus applies.
const BONUS_MIN_GROUP_SIZE = 3

// BONUS_FACTOR multiplies the value of a bonused run.
const BONUS_FACTOR = 3

// COMPLEMENT_CONSTANT is the sum of every mirrored pair of a COMPLEMENT board.
// Kept fixed rather than derived from MAX_VALUE, see game.checkComplementRange.
const COMPLEMENT_CONSTANT = 9999

// MIN_MIRRORED_SIZE is the smallest board accepted by COPY and COMPLEMENT.
const MIN_MIRRORED_SIZE = 8

const DEFAULT_N = 10

const DEFAULT_SEED = 1234

// RISK_FACTOR discounts the value of a blocking move against an offensive one.
const RISK_FACTOR = 2.5 / 3.0

// Slow player sleep range, drawn per move.
const (
	SLOW_SEED      = 1234
	SLOW_MIN_SLEEP = 21 * time.Second
	SLOW_MAX_SLEEP = 23 * time.Second
)

// Monitor timings.
const (
	MONITOR_CHECK = 500 * time.Millisecond
	MONITOR_INFO  = 8 * time.Second
	MONITOR_WARN  = 10 * time.Second
	MONITOR_WAIT  = 10 * time.Second
)
