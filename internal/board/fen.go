package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known test positions.
const (
	StartFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
)

// castlingLetters lists the FEN letters in output order.
var castlingLetters = [...]struct {
	letter byte
	right  CastlingRights
}{
	{'K', WhiteKingSideCastle},
	{'Q', WhiteQueenSideCastle},
	{'k', BlackKingSideCastle},
	{'q', BlackQueenSideCastle},
}

// ParseFEN parses a FEN string. The half-move clock and full-move number may
// be omitted and default to 0 and 1.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: %d fields", ErrInvalidFEN, len(fields))
	}
	// Pad the optional counters.
	fields = append(fields, "0", "1")[:6]

	pos := NewEmptyPosition()
	if err := placePieces(pos, fields[0]); err != nil {
		return nil, err
	}

	side := strings.Index("wb", fields[1])
	if len(fields[1]) != 1 || side < 0 {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	pos.SetSideToMove(Color(side))

	rights, err := castlingFromFEN(fields[2])
	if err != nil {
		return nil, err
	}
	pos.SetCastlingRights(rights)

	if ep := fields[3]; ep != "-" {
		sq, err := ParseSquare(ep)
		if err != nil || (sq.Rank() != 2 && sq.Rank() != 5) {
			return nil, fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, ep)
		}
		pos.SetEnPassant(sq)
	}

	if pos.HalfMoveClock, err = strconv.Atoi(fields[4]); err != nil || pos.HalfMoveClock < 0 {
		return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, fields[4])
	}
	if pos.FullMoveNumber, err = strconv.Atoi(fields[5]); err != nil || pos.FullMoveNumber < 1 {
		return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, fields[5])
	}

	if err := pos.Validate(); err != nil {
		return nil, err
	}
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on malformed input.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// placePieces fills pos from the placement field, rank 8 first.
func placePieces(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}

	for i, row := range rows {
		rank, file := 7-i, 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			switch {
			case file > 7:
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case PieceFromChar(c) != NoPiece:
				p := PieceFromChar(c)
				pos.PlacePiece(p.Type(), p.Color(), NewSquare(file, rank))
				file++
			default:
				return fmt.Errorf("%w: piece %q", ErrInvalidFEN, c)
			}
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d covers %d files", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

func castlingFromFEN(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var rights CastlingRights
next:
	for i := 0; i < len(s); i++ {
		for _, cl := range castlingLetters {
			if cl.letter == s[i] {
				rights |= cl.right
				continue next
			}
		}
		return NoCastling, fmt.Errorf("%w: castling %q", ErrInvalidFEN, s)
	}
	return rights, nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		gap := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteString(pc.String())
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	fmt.Fprintf(&sb, " %c %s %s %d %d", "wb"[p.SideToMove], p.CastlingRights, p.EnPassant,
		p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
