package board

import (
	"errors"
	"testing"
)

func TestToSAN(t *testing.T) {
	tests := []struct {
		fen  string
		uci  string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{KiwipeteFEN, "e1g1", "O-O"},
		{KiwipeteFEN, "e1c1", "O-O-O"},
		{KiwipeteFEN, "e5f7", "Nxf7"},
		{KiwipeteFEN, "c3b5", "Nb5"},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
		{"7k/6pp/8/8/8/8/8/K6R w - - 0 1", "h1h2", "Rh2"},
		{"7k/6pp/8/8/8/8/8/KR6 w - - 0 1", "b1b8", "Rb8#"},
		{"4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			m, err := ParseMove(tc.uci, pos)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.uci, err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.uci, got, tc.want)
			}
			back, err := ParseSAN(tc.want, pos)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.want, err)
			}
			if !back.Equal(m) {
				t.Errorf("ParseSAN(%q) = %s, want %s", tc.want, back, m)
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	var moves []Move
	p := pos.Copy()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := ParseMove(s, p)
		if err != nil {
			t.Fatal(err)
		}
		moves = append(moves, m)
		p.MakeMoveChecked(m)
	}

	want := []string{"f3", "e5", "g4", "Qh4#"}
	got := MovesToSAN(pos, moves)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSANErrors(t *testing.T) {
	tests := []struct {
		fen string
		san string
	}{
		{StartFEN, "e5"},
		{StartFEN, "O-O"},
		{StartFEN, "Zf3"},
		{StartFEN, "N"},
		{StartFEN, "Nf3=Q"},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8=K"},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8"},
		{KiwipeteFEN, "Nf3"},
	}
	for _, tc := range tests {
		pos := MustParseFEN(tc.fen)
		if m, err := ParseSAN(tc.san, pos); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseSAN(%q) = %s, %v; want ErrInvalidMove", tc.san, m, err)
		}
	}
}

func TestParseSANVariants(t *testing.T) {
	tests := []struct {
		fen  string
		san  string
		want string
	}{
		{StartFEN, "Nf3+", "g1f3"},
		{StartFEN, "e4!?", "e2e4"},
		{KiwipeteFEN, "0-0", "e1g1"},
		{KiwipeteFEN, "dxe6", "d5e6"},
		{KiwipeteFEN, "Ng1f3", ""},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8=N", "a7a8n"},
	}
	for _, tc := range tests {
		m, err := ParseSAN(tc.san, MustParseFEN(tc.fen))
		if tc.want == "" {
			if err == nil {
				t.Errorf("ParseSAN(%q) = %s, want error", tc.san, m)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSAN(%q): %v", tc.san, err)
			continue
		}
		if m.String() != tc.want {
			t.Errorf("ParseSAN(%q) = %s, want %s", tc.san, m, tc.want)
		}
	}
}
