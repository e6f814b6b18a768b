package board

import (
	"fmt"
	"strings"
)

// sanLetters holds the SAN letter of each piece type.
const sanLetters = "PNBRQK"

// ToSAN formats m in Standard Algebraic Notation. Moves that are not legal in
// pos fall back to coordinate notation.
func (m Move) ToSAN(pos *Position) string {
	if m.Equal(NoMove) {
		return "-"
	}

	from, to := m.From(), m.To()
	pt := pos.PieceTypeAt(from)
	if pt == NoPieceType {
		return m.String()
	}

	after := *pos
	if !after.MakeMoveChecked(m) {
		return m.String()
	}

	var sb strings.Builder
	switch {
	case m.IsCastling() && to > from:
		sb.WriteString("O-O")
	case m.IsCastling():
		sb.WriteString("O-O-O")
	default:
		capture := m.IsCapture(pos)
		if pt == Pawn {
			if capture {
				sb.WriteByte(byte('a' + from.File()))
			}
		} else {
			sb.WriteByte(sanLetters[pt])
			sb.WriteString(disambiguation(pos, m, pt))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(sanLetters[m.Promotion()])
		}
	}

	switch {
	case after.IsCheckmate():
		sb.WriteByte('#')
	case after.InCheck():
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()

	var rivals Bitboard
	for _, o := range pos.GenerateLegalMoves().Slice() {
		if o.To() == m.To() && o.From() != from && pos.PieceTypeAt(o.From()) == pt {
			rivals = rivals.Set(o.From())
		}
	}

	switch {
	case rivals.Empty():
		return ""
	case rivals&FileMask[from.File()] == 0:
		return from.String()[:1]
	case rivals&RankMask[from.Rank()] == 0:
		return from.String()[1:]
	}
	return from.String()
}

// ParseSAN finds the legal move of pos written as san. Check and mate
// suffixes are optional; "0-0" is accepted for castling.
func ParseSAN(san string, pos *Position) (Move, error) {
	s := strings.TrimRight(strings.TrimSpace(san), "+#!?")
	bad := func(reason string) (Move, error) {
		return NoMove, fmt.Errorf("%w: %q %s", ErrInvalidMove, san, reason)
	}

	switch strings.ReplaceAll(s, "0", "O") {
	case "O-O":
		return findCastle(pos, true, san)
	case "O-O-O":
		return findCastle(pos, false, san)
	}

	promo := NoPieceType
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+2 != len(s) {
			return bad("has a malformed promotion")
		}
		promo = PieceType(strings.IndexByte(sanLetters, s[i+1]))
		if promo == Pawn || promo == King || promo > King {
			return bad("promotes to an invalid piece")
		}
		s = s[:i]
	}

	capture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		i := strings.IndexByte(sanLetters, s[0])
		if i <= 0 {
			return bad("names an unknown piece")
		}
		pt = PieceType(i)
		s = s[1:]
	}

	if len(s) < 2 {
		return bad("has no destination")
	}
	to, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, san, err)
	}

	file, rank := -1, -1
	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return bad("has a malformed origin")
		}
	}

	for _, m := range pos.GenerateLegalMoves().Slice() {
		from := m.From()
		switch {
		case m.To() != to, pos.PieceTypeAt(from) != pt, m.IsCastling():
		case file >= 0 && from.File() != file, rank >= 0 && from.Rank() != rank:
		case capture && !m.IsCapture(pos):
		case m.IsPromotion() != (promo != NoPieceType):
		case m.IsPromotion() && m.Promotion() != promo:
		default:
			return m, nil
		}
	}
	return bad("matches no legal move")
}

func findCastle(pos *Position, kingSide bool, san string) (Move, error) {
	for _, m := range pos.GenerateLegalMoves().Slice() {
		if m.IsCastling() && (m.To() > m.From()) == kingSide {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q castling is not legal", ErrInvalidMove, san)
}

// MovesToSAN formats a line of moves played from pos. The result stops
// before the first move that is not legal.
func MovesToSAN(pos *Position, moves []Move) []string {
	out := make([]string, 0, len(moves))
	p := *pos
	for _, m := range moves {
		san := m.ToSAN(&p)
		if !p.MakeMoveChecked(m) {
			break
		}
		out = append(out, san)
	}
	return out
}
