package engine

import (
	"sync/atomic"
	"time"

	"github.com/hailam/chessfork/internal/board"
)

// Limits contains the time control and search bounds for one search.
type Limits struct {
	Time      [2]time.Duration // wtime, btime (remaining time for each color)
	Inc       [2]time.Duration // winc, binc (increment per move)
	MovesToGo int              // moves until next time control (0 = sudden death)
	MoveTime  time.Duration    // fixed time per move (overrides other time controls)
	Depth     int              // maximum search depth (0 = no limit)
	Nodes     uint64           // maximum nodes to search (0 = no limit)
	Infinite  bool             // search until stopped
}

const (
	// defaultMovesToGo is assumed when the clock gives no moves-to-go.
	defaultMovesToGo = 40
	// overheadMargin is kept back when the budget would use the whole clock.
	overheadMargin = 150 * time.Millisecond
	// panicBudget is used when even the margin does not fit.
	panicBudget = 100 * time.Millisecond
)

// Timer decides when a search must stop. The stop flag only ever goes from
// clear to set, and may be set from another goroutine.
type Timer struct {
	limits   Limits
	start    time.Time
	stopTime time.Time
	budget   time.Duration
	timed    bool
	stopped  atomic.Bool
}

// NewTimer creates a timer for the side to move. The clock starts on Start.
func NewTimer(limits Limits, us board.Color) *Timer {
	t := &Timer{limits: limits}

	switch {
	case limits.MoveTime > 0:
		t.budget = limits.MoveTime
		t.timed = true
	case limits.Infinite || limits.Time[us] <= 0:
		// Only depth, node or stop limits apply.
	default:
		timeLeft := limits.Time[us]
		mtg := limits.MovesToGo
		if mtg <= 0 {
			mtg = defaultMovesToGo
		}
		budget := timeLeft/time.Duration(mtg) + 3*limits.Inc[us]/4
		if budget >= timeLeft {
			budget = timeLeft - overheadMargin
			if budget <= 0 {
				budget = panicBudget
			}
		}
		t.budget = budget
		t.timed = true
	}

	return t
}

// Start starts the clock.
func (t *Timer) Start() {
	t.start = time.Now()
	if t.timed {
		t.stopTime = t.start.Add(t.budget)
	}
}

// Budget returns the time allotted to this move, or 0 if untimed.
func (t *Timer) Budget() time.Duration {
	return t.budget
}

// Timed reports whether a wall-clock limit applies.
func (t *Timer) Timed() bool {
	return t.timed
}

// MaxNodes returns the node limit, 0 for none.
func (t *Timer) MaxNodes() uint64 {
	return t.limits.Nodes
}

// MaxDepth returns the depth limit, clamped to MaxPly.
func (t *Timer) MaxDepth() int {
	if t.limits.Depth <= 0 || t.limits.Depth > MaxPly {
		return MaxPly
	}
	return t.limits.Depth
}

// Infinite reports whether the search should run until stopped.
func (t *Timer) Infinite() bool {
	return t.limits.Infinite
}

// CheckTime sets the stop flag if the wall clock passed the stop time.
func (t *Timer) CheckTime() {
	if !t.timed || t.stopped.Load() {
		return
	}
	if !time.Now().Before(t.stopTime) {
		t.stopped.Store(true)
	}
}

// ForceStop sets the stop flag. It is safe to call more than once.
func (t *Timer) ForceStop() {
	t.stopped.Store(true)
}

// Stopped reports whether the search must unwind.
func (t *Timer) Stopped() bool {
	return t.stopped.Load()
}

// Elapsed returns the time elapsed since Start.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
