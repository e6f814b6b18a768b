package eval

import (
	"strings"
	"testing"

	"github.com/hailam/chessfork/internal/board"
)

// flip mirrors a FEN vertically and swaps colours and side to move.
func flip(t *testing.T, fen string) *board.Position {
	t.Helper()
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	placement := swapCase(strings.Join(ranks, "/"))

	side := "w"
	if fields[1] == "w" {
		side = "b"
	}
	castling := "-"
	if fields[2] != "-" {
		castling = swapCase(fields[2])
	}
	ep := "-"
	if fields[3] != "-" {
		ep = string(fields[3][0]) + string("87654321"[fields[3][1]-'1'])
	}

	pos, err := board.ParseFEN(strings.Join([]string{placement, side, castling, ep, "0", "1"}, " "))
	if err != nil {
		t.Fatalf("flipped FEN: %v", err)
	}
	return pos
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}

func TestEvaluationSymmetry(t *testing.T) {
	fens := []string{
		board.StartFEN,
		board.KiwipeteFEN,
		board.Position3FEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"6k1/5ppp/8/8/8/8/1Q3PPP/6K1 b - - 0 1",
	}

	for _, fn := range []struct {
		name string
		f    Func
	}{{NamePSQT, Evaluate}, {NameMaterial, Material}} {
		for _, fen := range fens {
			t.Run(fn.name+"/"+fen, func(t *testing.T) {
				pos := board.MustParseFEN(fen)
				mirrored := flip(t, fen)

				// Same score for the mover; opposite score from white's side.
				if got, want := fn.f(mirrored), fn.f(pos); got != want {
					t.Errorf("mirrored score = %d, want %d", got, want)
				}
			})
		}
	}
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	if got := Evaluate(pos); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
	if got := Material(pos); got != 0 {
		t.Errorf("Material(start) = %d, want 0", got)
	}
}

func TestEvaluateSideToMove(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		// Extra white queen on d1 (mirror index 59, row 7).
		{"white up a queen", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", QueenValue},
		{"same, black to move", "4k3/8/8/8/8/8/8/3QK3 b - - 0 1", -QueenValue},
		// Pawn on e4 scores 25 from the table.
		{"central pawn", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", PawnValue + 25},
		// Rook on the seventh rank.
		{"rook on seventh", "4k3/R7/8/8/8/8/8/4K3 w - - 0 1", RookValue + 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(board.MustParseFEN(tc.fen)); got != tc.want {
				t.Errorf("Evaluate() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("nnue"); err == nil {
		t.Error("expected an error for an unknown evaluation")
	}
	f, err := ByName(NameMaterial)
	if err != nil {
		t.Fatal(err)
	}
	if got := f(board.MustParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")); got != QueenValue {
		t.Errorf("material = %d, want %d", got, QueenValue)
	}
}
