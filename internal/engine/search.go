package engine

import (
	"github.com/hailam/chessfork/internal/board"
	"github.com/hailam/chessfork/internal/eval"
)

// Search constants
const (
	Infinity           = 10000
	CheckmateThreshold = 9000
	DrawScore          = 0
	MaxPly             = 100
	MaxPV              = 50

	// timeCheckMask sets how often the wall clock is read. Lower values stop
	// sooner at the cost of more clock reads.
	timeCheckMask = 2047
)

// PVLine is a fixed-capacity principal variation.
type PVLine struct {
	moves [MaxPV]board.Move
	n     int
}

// Clear empties the line.
func (pv *PVLine) Clear() {
	pv.n = 0
}

// Best returns the first move of the line, or NoMove.
func (pv *PVLine) Best() board.Move {
	if pv.n == 0 {
		return board.NoMove
	}
	return pv.moves[0]
}

// Moves returns a copy of the line.
func (pv *PVLine) Moves() []board.Move {
	out := make([]board.Move, pv.n)
	copy(out, pv.moves[:pv.n])
	return out
}

// update sets the line to m followed by the child's line.
func (pv *PVLine) update(m board.Move, child *PVLine) {
	pv.moves[0] = m
	n := copy(pv.moves[1:], child.moves[:child.n])
	pv.n = n + 1
}

// Searcher holds the state threaded through one search: node counter, the
// hashes of the positions on the current path and one PV buffer per ply.
type Searcher struct {
	eval  eval.Func
	timer *Timer

	nodes   uint64
	history [MaxPly + 1]uint64
	pv      [MaxPly + 2]PVLine
}

// NewSearcher creates a searcher bound to an evaluation and a timer.
func NewSearcher(f eval.Func, timer *Timer) *Searcher {
	return &Searcher{eval: f, timer: timer}
}

// Nodes returns the nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// RootPV returns the principal variation of the last root search.
func (s *Searcher) RootPV() *PVLine {
	return &s.pv[0]
}

// checkLimits counts budgets before a node is expanded and reports whether
// the search must unwind.
func (s *Searcher) checkLimits() bool {
	if limit := s.timer.MaxNodes(); limit > 0 && s.nodes >= limit {
		s.timer.ForceStop()
	}
	if s.nodes&timeCheckMask == 0 {
		s.timer.CheckTime()
	}
	return s.timer.Stopped()
}

// isRepetition reports whether the position matches an ancestor on the
// current path. Only positions since the last irreversible move can match.
func (s *Searcher) isRepetition(pos *board.Position, ply int) bool {
	stop := ply - pos.HalfMoveClock
	if stop < 0 {
		stop = 0
	}
	for i := ply - 2; i >= stop; i -= 2 {
		if s.history[i] == pos.Hash {
			return true
		}
	}
	return false
}

// Negamax searches pos to depth with an alpha-beta window and fills the PV
// buffer of ply. A stopped search returns 0.
func (s *Searcher) Negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	s.pv[ply].Clear()
	s.nodes++

	if ply >= MaxPly {
		return s.eval(pos)
	}

	us := pos.SideToMove
	kingSq := pos.KingSquare(us)
	inCheck := pos.IsSquareAttacked(kingSq, us.Other())

	if ply > 0 {
		if s.isRepetition(pos, ply) {
			return DrawScore
		}
		// A mate delivered on the hundredth half-move still counts.
		if pos.HalfMoveClock >= 100 && (!inCheck || pos.HasLegalMoves()) {
			return DrawScore
		}
		if pos.IsInsufficientMaterial() {
			return DrawScore
		}
	}

	if inCheck {
		depth++
	}

	if depth <= 0 {
		s.nodes--
		return s.Quiescence(pos, ply, alpha, beta)
	}

	if s.checkLimits() {
		return 0
	}

	s.history[ply] = pos.Hash
	pinned := pos.PinnedPieces(us)

	var moves board.MoveList
	pos.GenerateMoves(&moves)
	ScoreMoves(pos, &moves)

	bestScore := -Infinity
	legal := 0
	child := &s.pv[ply+1]

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(&moves, i)

		next := *pos
		if !next.MakeMove(m, inCheck, kingSq, pinned) {
			continue
		}
		legal++

		score := -s.Negamax(&next, depth-1, ply+1, -beta, -alpha)
		if s.timer.Stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if bestScore >= beta {
			break
		}
		if bestScore > alpha {
			alpha = bestScore
			s.pv[ply].update(m, child)
		}
	}

	if legal == 0 {
		if inCheck {
			return -Infinity + ply
		}
		return DrawScore
	}

	return bestScore
}

// Quiescence extends the search along captures until the position is quiet.
// The static evaluation is a lower bound the side to move can stand on.
func (s *Searcher) Quiescence(pos *board.Position, ply, alpha, beta int) int {
	s.pv[ply].Clear()
	s.nodes++

	if s.checkLimits() {
		return 0
	}

	bestScore := s.eval(pos)
	if ply >= MaxPly || bestScore >= beta {
		return bestScore
	}
	if bestScore > alpha {
		alpha = bestScore
	}

	us := pos.SideToMove
	kingSq := pos.KingSquare(us)
	inCheck := pos.IsSquareAttacked(kingSq, us.Other())
	pinned := pos.PinnedPieces(us)

	var moves board.MoveList
	pos.GenerateCaptures(&moves)
	ScoreMoves(pos, &moves)

	child := &s.pv[ply+1]

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(&moves, i)

		next := *pos
		if !next.MakeMove(m, inCheck, kingSq, pinned) {
			continue
		}

		score := -s.Quiescence(&next, ply+1, -beta, -alpha)
		if s.timer.Stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if bestScore >= beta {
			break
		}
		if bestScore > alpha {
			alpha = bestScore
			s.pv[ply].update(m, child)
		}
	}

	return bestScore
}
