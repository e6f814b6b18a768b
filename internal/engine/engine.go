// Package engine implements the chess AI search engine.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/hailam/chessfork/internal/board"
	"github.com/hailam/chessfork/internal/eval"
)

// SearchInfo contains information about one completed depth.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	NPS   uint64
	Time  time.Duration
	PV    []board.Move
}

// Result is the outcome of a search.
type Result struct {
	BestMove board.Move
	Score    int
	Depth    int // Last completed depth, 0 if none completed
	Nodes    uint64
	Elapsed  time.Duration
	PV       []board.Move
}

// Engine is the chess AI engine.
type Engine struct {
	mu    sync.Mutex
	eval  eval.Func
	timer *Timer // Timer of the running search, nil when idle

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine using the given evaluation. A nil function
// selects eval.Evaluate.
func NewEngine(f eval.Func) *Engine {
	if f == nil {
		f = eval.Evaluate
	}
	return &Engine{eval: f}
}

// SetEval replaces the evaluation used by later searches.
func (e *Engine) SetEval(f eval.Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eval = f
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	e.mu.Lock()
	f := e.eval
	e.mu.Unlock()
	return f(pos)
}

// SearchWithLimits searches pos under limits with a fresh timer.
func (e *Engine) SearchWithLimits(pos *board.Position, limits Limits) Result {
	return e.Search(pos, NewTimer(limits, pos.SideToMove))
}

// Search runs iterative deepening on a copy of pos until the timer stops it
// or the depth limit is reached. A depth that is cut short never replaces
// the result of the previous one. Callers that need to stop the search from
// another goroutine create the timer themselves and call ForceStop on it.
func (e *Engine) Search(pos *board.Position, timer *Timer) Result {
	e.mu.Lock()
	e.timer = timer
	f := e.eval
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.timer = nil
		e.mu.Unlock()
	}()

	root := *pos
	s := NewSearcher(f, timer)
	timer.Start()

	var result Result
	for depth := 1; depth <= timer.MaxDepth(); depth++ {
		score := s.Negamax(&root, depth, 0, -Infinity, Infinity)

		if timer.Stopped() {
			if result.BestMove.Equal(board.NoMove) {
				result.BestMove = s.RootPV().Best()
				result.PV = s.RootPV().Moves()
			}
			break
		}

		result.BestMove = s.RootPV().Best()
		result.Score = score
		result.Depth = depth
		result.PV = s.RootPV().Moves()

		if e.OnInfo != nil {
			elapsed := timer.Elapsed()
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: s.Nodes(),
				NPS:   nodesPerSecond(s.Nodes(), elapsed),
				Time:  elapsed,
				PV:    result.PV,
			})
		}

		// Nothing left to search once the root is decided.
		if result.BestMove.Equal(board.NoMove) || (IsMateScore(score) && !timer.Infinite()) {
			break
		}
	}

	// A partial first iteration may not have raised alpha at the root.
	if result.BestMove.Equal(board.NoMove) {
		if legal := root.GenerateLegalMoves(); legal.Len() > 0 {
			result.BestMove = legal.Get(0)
			result.PV = []board.Move{result.BestMove}
		}
	}

	result.Nodes = s.Nodes()
	result.Elapsed = timer.Elapsed()
	return result
}

// Stop stops the current search, if any.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.ForceStop()
	}
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) uint64 {
	ms := uint64(elapsed.Milliseconds()) + 1
	return nodes * 1000 / ms
}

// IsMateScore reports whether a score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > CheckmateThreshold || score < -CheckmateThreshold
}

// MateIn converts a mate score to moves until mate, negative when the side to
// move is getting mated.
func MateIn(score int) int {
	if score > 0 {
		plies := Infinity - score
		return (plies + 1) / 2
	}
	plies := Infinity + score
	return -(plies + 1) / 2
}

// ScoreToUCI formats a score as "cp N" or "mate N".
func ScoreToUCI(score int) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if IsMateScore(score) {
		if n := MateIn(score); n < 0 {
			return fmt.Sprintf("Mated in %d", -n)
		}
		return fmt.Sprintf("Mate in %d", MateIn(score))
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
