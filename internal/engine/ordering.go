package engine

import (
	"github.com/hailam/chessfork/internal/board"
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
var mvvLva = [6][6]uint16{
	//          P   N   B   R   Q   K  (victim)
	/* P */ {30, 31, 32, 33, 34, 0},
	/* N */ {25, 26, 27, 28, 29, 0},
	/* B */ {20, 21, 22, 23, 24, 0},
	/* R */ {15, 16, 17, 18, 19, 0},
	/* Q */ {10, 11, 12, 13, 14, 0},
	/* K */ {5, 6, 7, 8, 9, 0},
}

// captureVictim returns the piece type a move captures, or NoPieceType.
func captureVictim(pos *board.Position, m board.Move) board.PieceType {
	switch m.Type() {
	case board.Attack:
		if m.IsEnPassant() {
			return board.Pawn
		}
		return pos.PieceTypeAt(m.To())
	case board.Promotion:
		return pos.PieceTypeAt(m.To())
	}
	return board.NoPieceType
}

// ScoreMoves stores an MVV-LVA score in every capture. Other moves score 0.
func ScoreMoves(pos *board.Position, moves *board.MoveList) {
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		victim := captureVictim(pos, m)
		if victim == board.NoPieceType {
			continue
		}
		attacker := pos.PieceTypeAt(m.From())
		moves.Set(i, m.WithScore(mvvLva[attacker][victim]))
	}
}

// PickMove swaps the highest scoring move at or after index i into slot i
// and returns it.
func PickMove(moves *board.MoveList, i int) board.Move {
	best := i
	bestScore := moves.Get(i).Score()
	for j := i + 1; j < moves.Len(); j++ {
		if s := moves.Get(j).Score(); s > bestScore {
			best, bestScore = j, s
		}
	}
	if best != i {
		moves.Swap(i, best)
	}
	return moves.Get(i)
}
