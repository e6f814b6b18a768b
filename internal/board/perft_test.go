package board

import "testing"

// perft counts the number of leaf nodes at the given depth using copy-make.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GeneratePseudoLegalMoves()
	us := p.SideToMove
	inCheck := p.InCheck()
	kingSq := p.KingSquare(us)
	pinned := p.PinnedPieces(us)

	var nodes int64
	for _, m := range moves.Slice() {
		child := *p
		if !child.MakeMove(m, inCheck, kingSq, pinned) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		nodes += perft(&child, depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		depth    int
		expected int64
		long     bool
	}{
		{"start/1", StartFEN, 1, 20, false},
		{"start/2", StartFEN, 2, 400, false},
		{"start/3", StartFEN, 3, 8902, false},
		{"start/4", StartFEN, 4, 197281, true},
		{"kiwipete/1", KiwipeteFEN, 1, 48, false},
		{"kiwipete/2", KiwipeteFEN, 2, 2039, false},
		{"kiwipete/3", KiwipeteFEN, 3, 97862, true},
		{"position3/1", Position3FEN, 1, 14, false},
		{"position3/2", Position3FEN, 2, 191, false},
		{"position3/3", Position3FEN, 3, 2812, false},
		{"position3/4", Position3FEN, 4, 43238, true},
		{"position4/1", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6, false},
		{"position4/2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264, false},
		{"position4/3", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467, false},
		{"position5/1", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 1, 44, false},
		{"position5/2", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2, 1486, false},
		{"position5/3", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 3, 62379, true},
		{"ep-pin/1", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 1, 6, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			pos := MustParseFEN(tc.fen)
			if got := perft(pos, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftMatchesLegalMoveCount(t *testing.T) {
	for _, fen := range []string{StartFEN, KiwipeteFEN, Position3FEN} {
		pos := MustParseFEN(fen)
		if got, want := perft(pos, 1), int64(pos.GenerateLegalMoves().Len()); got != want {
			t.Errorf("%s: perft(1) = %d, legal moves = %d", fen, got, want)
		}
	}
}

func BenchmarkPerftStart(b *testing.B) {
	pos := NewPosition()
	for i := 0; i < b.N; i++ {
		perft(pos, 3)
	}
}
