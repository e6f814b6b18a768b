// Package perft counts move-generation leaf nodes and checks them against
// known results and independent move generators.
package perft

import (
	"sort"

	"github.com/hailam/chessfork/internal/board"
)

// Count returns the number of leaf nodes depth plies below pos.
func Count(pos *board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var moves board.MoveList
	pos.GenerateMoves(&moves)
	us := pos.SideToMove
	inCheck := pos.InCheck()
	kingSq := pos.KingSquare(us)
	pinned := pos.PinnedPieces(us)

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		child := *pos
		if !child.MakeMove(moves.Get(i), inCheck, kingSq, pinned) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		nodes += Count(&child, depth-1)
	}
	return nodes
}

// DivideEntry is the leaf count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide returns the leaf count below each legal root move, sorted by move.
func Divide(pos *board.Position, depth int) []DivideEntry {
	if depth < 1 {
		depth = 1
	}

	legal := pos.GenerateLegalMoves()
	entries := make([]DivideEntry, 0, legal.Len())
	for _, m := range legal.Slice() {
		child := *pos
		child.MakeMoveChecked(m)
		entries = append(entries, DivideEntry{
			Move:  m.String(),
			Nodes: Count(&child, depth-1),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move < entries[j].Move
	})
	return entries
}

// Total sums the counts of a divide.
func Total(entries []DivideEntry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}
