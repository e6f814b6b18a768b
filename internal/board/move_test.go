package board

import (
	"errors"
	"testing"
)

func TestMoveEncoding(t *testing.T) {
	tests := []struct {
		name  string
		move  Move
		from  Square
		to    Square
		typ   MoveType
		flag  uint8
		uci   string
		promo bool
		ep    bool
	}{
		{"quiet", NewMove(E2, E4, Quiet, FlagNone), E2, E4, Quiet, FlagNone, "e2e4", false, false},
		{"attack", NewMove(D4, E5, Attack, FlagNone), D4, E5, Attack, FlagNone, "d4e5", false, false},
		{"en passant", NewMove(E5, D6, Attack, FlagEnPassant), E5, D6, Attack, FlagEnPassant, "e5d6", false, true},
		{"castle", NewMove(E1, G1, Castle, FlagNone), E1, G1, Castle, FlagNone, "e1g1", false, false},
		{"queen promotion", NewPromotion(A7, A8, Queen), A7, A8, Promotion, FlagPromoQueen, "a7a8q", true, false},
		{"knight promotion", NewPromotion(H2, G1, Knight), H2, G1, Promotion, FlagPromoKnight, "h2g1n", true, false},
		{"corner", NewMove(H8, A1, Quiet, FlagNone), H8, A1, Quiet, FlagNone, "h8a1", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.move.WithScore(0xBEEF)
			if m.From() != tc.from || m.To() != tc.to {
				t.Errorf("squares = %s%s, want %s%s", m.From(), m.To(), tc.from, tc.to)
			}
			if m.Type() != tc.typ {
				t.Errorf("Type() = %s, want %s", m.Type(), tc.typ)
			}
			if m.Flag() != tc.flag {
				t.Errorf("Flag() = %d, want %d", m.Flag(), tc.flag)
			}
			if m.Score() != 0xBEEF {
				t.Errorf("Score() = %#x", m.Score())
			}
			if m.String() != tc.uci {
				t.Errorf("String() = %q, want %q", m.String(), tc.uci)
			}
			if m.IsPromotion() != tc.promo || m.IsEnPassant() != tc.ep {
				t.Errorf("IsPromotion=%v IsEnPassant=%v", m.IsPromotion(), m.IsEnPassant())
			}
			if !m.Equal(tc.move) {
				t.Error("score bits affect equality")
			}
		})
	}
}

func TestMoveEqualityIgnoresScore(t *testing.T) {
	a := NewMove(G1, F3, Quiet, FlagNone).WithScore(10)
	b := NewMove(G1, F3, Quiet, FlagNone).WithScore(20)
	if !a.Equal(b) {
		t.Error("moves differing only in score should be equal")
	}
	if a.Equal(NewMove(G1, H3, Quiet, FlagNone)) {
		t.Error("different destinations compared equal")
	}
	if NewPromotion(A7, A8, Queen).Equal(NewPromotion(A7, A8, Rook)) {
		t.Error("different promotion pieces compared equal")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want Move
	}{
		{"quiet", StartFEN, "g1f3", NewMove(G1, F3, Quiet, FlagNone)},
		{"double push", StartFEN, "e2e4", NewMove(E2, E4, Quiet, FlagNone)},
		{"capture", KiwipeteFEN, "e5f7", NewMove(E5, F7, Attack, FlagNone)},
		{"castle", KiwipeteFEN, "e1c1", NewMove(E1, C1, Castle, FlagNone)},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", NewMove(E5, D6, Attack, FlagEnPassant)},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8r", NewPromotion(A7, A8, Rook)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			got, err := ParseMove(tc.uci, pos)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.uci, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseMove(%q) = %s/%s, want %s/%s", tc.uci, got, got.Type(), tc.want, tc.want.Type())
			}
			if got.String() != tc.uci {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"", "e2", "e2e9", "z2e4", "e4e5", "e7e5", "e2e4x", "e2e4qq"} {
		if _, err := ParseMove(s, pos); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", s, err)
		}
	}
}

func TestMoveListContains(t *testing.T) {
	ml := NewMoveList()
	ml.Add(NewMove(E2, E4, Quiet, FlagNone).WithScore(5))
	ml.Add(NewMove(D2, D4, Quiet, FlagNone))
	ml.Swap(0, 1)

	if ml.Len() != 2 {
		t.Fatalf("Len() = %d", ml.Len())
	}
	if !ml.Contains(NewMove(E2, E4, Quiet, FlagNone)) {
		t.Error("Contains ignored a scored move")
	}
	if ml.Get(0).String() != "d2d4" {
		t.Errorf("Get(0) = %s after swap", ml.Get(0))
	}
	ml.Clear()
	if ml.Len() != 0 {
		t.Error("Clear() left moves behind")
	}
}
