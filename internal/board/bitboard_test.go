package board

import "testing"

func TestBitboardRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		b := Empty.Set(sq)
		if !b.IsSet(sq) {
			t.Errorf("%s: bit not set", sq)
		}
		if b.Clear(sq) != Empty {
			t.Errorf("%s: clear did not restore empty board", sq)
		}
		if b.PopCount() != 1 {
			t.Errorf("%s: popcount = %d", sq, b.PopCount())
		}
		if got := b.MSB(); got != sq {
			t.Errorf("MSB(%s) = %s", sq, got)
		}
	}
}

func TestBitOrder(t *testing.T) {
	tests := []struct {
		sq   Square
		want Bitboard
	}{
		{A1, 1 << 63},
		{H1, 1 << 56},
		{A8, 1 << 7},
		{H8, 1},
	}
	for _, tc := range tests {
		if got := SquareBB(tc.sq); got != tc.want {
			t.Errorf("SquareBB(%s) = %#x, want %#x", tc.sq, uint64(got), uint64(tc.want))
		}
	}
	if Empty.MSB() != NoSquare {
		t.Errorf("MSB(empty) = %d, want NoSquare", Empty.MSB())
	}
}

func TestPopMSBOrder(t *testing.T) {
	b := SquareBB(H8) | SquareBB(A1) | SquareBB(E4)
	want := []Square{A1, E4, H8}
	for i, w := range want {
		if got := b.PopMSB(); got != w {
			t.Errorf("pop %d = %s, want %s", i, got, w)
		}
	}
	if b != Empty {
		t.Errorf("board not empty after popping: %#x", uint64(b))
	}
}

func TestShiftsClipFiles(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{"h4 east", SquareBB(H4).East(), Empty},
		{"a4 west", SquareBB(A4).West(), Empty},
		{"h4 northeast", SquareBB(H4).NorthEast(), Empty},
		{"a4 southwest", SquareBB(A4).SouthWest(), Empty},
		{"e4 north", SquareBB(E4).North(), SquareBB(E5)},
		{"e4 south", SquareBB(E4).South(), SquareBB(E3)},
		{"e4 east", SquareBB(E4).East(), SquareBB(F4)},
		{"e4 west", SquareBB(E4).West(), SquareBB(D4)},
		{"e4 northwest", SquareBB(E4).NorthWest(), SquareBB(D5)},
		{"e4 southeast", SquareBB(E4).SouthEast(), SquareBB(F3)},
		{"h8 north", SquareBB(H8).North(), Empty},
		{"a1 south", SquareBB(A1).South(), Empty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got\n%v\nwant\n%v", tc.got, tc.want)
			}
		})
	}
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want int
	}{
		{"knight a1", KnightAttacks(A1), 2},
		{"knight e4", KnightAttacks(E4), 8},
		{"knight h5", KnightAttacks(H5), 4},
		{"king a1", KingAttacks(A1), 3},
		{"king e4", KingAttacks(E4), 8},
		{"white pawn a2", PawnAttacks(A2, White), 1},
		{"black pawn e7", PawnAttacks(E7, Black), 2},
	}
	for _, tc := range tests {
		if got := tc.got.PopCount(); got != tc.want {
			t.Errorf("%s: %d squares, want %d", tc.name, got, tc.want)
		}
	}

	if PawnAttacks(E4, White) != SquareBB(D5)|SquareBB(F5) {
		t.Errorf("white pawn e4 attacks\n%v", PawnAttacks(E4, White))
	}
	if PawnPushes(E7, Black) != SquareBB(E6) {
		t.Errorf("black pawn e7 push\n%v", PawnPushes(E7, Black))
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		a, b Square
		want Bitboard
	}{
		{A1, A4, SquareBB(A2) | SquareBB(A3)},
		{A1, D4, SquareBB(B2) | SquareBB(C3)},
		{H1, E4, SquareBB(G2) | SquareBB(F3)},
		{E1, E2, Empty},
		{A1, B3, Empty},
	}
	for _, tc := range tests {
		if got := Between(tc.a, tc.b); got != tc.want {
			t.Errorf("Between(%s, %s) =\n%v", tc.a, tc.b, got)
		}
		if Between(tc.a, tc.b) != Between(tc.b, tc.a) {
			t.Errorf("Between(%s, %s) not symmetric", tc.a, tc.b)
		}
	}
}
