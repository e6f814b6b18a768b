// Package eval holds the static evaluation functions used by the search.
// Every function is pure and scores a position from the side to move's
// point of view.
package eval

import (
	"fmt"

	"github.com/hailam/chessfork/internal/board"
)

// Func scores a position in centipawns for the side to move.
type Func func(pos *board.Position) int

// Material values
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 320
	RookValue   = 500
	QueenValue  = 950
)

// PieceValues is indexed by board.PieceType. The king has no material value.
var PieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0, 0}

// Piece-square tables, written as seen by the owner with row 0 being the far
// rank. White looks squares up mirrored, black looks them up directly.
var (
	pawnTable = [64]int{
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, -5, 0, 25, 25, 0, -5, -5,
		-5, -5, 5, 10, 10, 5, -5, -5,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	knightTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 15, 15, 15, 15, 0, 0,
		0, 0, 15, 0, 0, 15, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	bishopTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 15, 10, 10, 15, 0, 0,
		0, 0, 15, 10, 10, 15, 0, 0,
		0, 15, 0, 0, 0, 0, 15, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	rookTable = [64]int{
		25, 25, 15, 5, 5, 15, 25, 25,
		25, 25, 15, 5, 5, 15, 25, 25,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 50, 50, 0, 0, 0,
		0, 0, 0, 50, 50, 0, 0, 0,
	}

	queenTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 20, 10, 10, 20, 0, 0,
		0, 0, 20, 15, 15, 20, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	kingTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, -25, -25, 0, 0, 0,
		0, 0, 0, -25, -25, 0, 0, 0,
		50, 50, 0, 0, 0, 0, 50, 50,
	}

	pieceTables = [6]*[64]int{&pawnTable, &knightTable, &bishopTable, &rookTable, &queenTable, &kingTable}
)

// tableIndex maps a board square to a table slot for the piece's owner.
func tableIndex(sq board.Square, c board.Color) int {
	if c == board.White {
		return int(sq.Mirror())
	}
	return int(sq)
}

// Evaluate scores material plus piece-square bonuses.
func Evaluate(pos *board.Position) int {
	var score [2]int
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			table := pieceTables[pt]
			bb := pos.PiecesOf(c, pt)
			score[c] += bb.PopCount() * PieceValues[pt]
			for bb != 0 {
				score[c] += table[tableIndex(bb.PopMSB(), c)]
			}
		}
	}
	us := pos.SideToMove
	return score[us] - score[us.Other()]
}

// Material scores material only.
func Material(pos *board.Position) int {
	var score [2]int
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt < board.King; pt++ {
			score[c] += pos.PiecesOf(c, pt).PopCount() * PieceValues[pt]
		}
	}
	us := pos.SideToMove
	return score[us] - score[us.Other()]
}

// Names of the available evaluation functions.
const (
	NamePSQT     = "psqt"
	NameMaterial = "material"
)

// ByName returns the evaluation function registered under name.
func ByName(name string) (Func, error) {
	switch name {
	case NamePSQT, "":
		return Evaluate, nil
	case NameMaterial:
		return Material, nil
	}
	return nil, fmt.Errorf("unknown evaluation %q", name)
}
