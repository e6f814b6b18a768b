package board

import "fmt"

// Move encodes a chess move in 32 bits:
// bits 26-31: from square
// bits 20-25: to square
// bits 18-19: move type (quiet, attack, castle, promotion)
// bits 16-17: type-specific flag (promotion piece or en passant)
// bits 0-15:  ordering score, ignored by Equal
type Move uint32

// MoveType is the kind of a move.
type MoveType uint8

const (
	Quiet MoveType = iota
	Attack
	Castle
	Promotion
)

func (t MoveType) String() string {
	switch t {
	case Quiet:
		return "quiet"
	case Attack:
		return "attack"
	case Castle:
		return "castle"
	default:
		return "promotion"
	}
}

// Move flags. Promotion moves carry the piece, attacks may carry FlagEnPassant.
const (
	FlagNone      uint8 = 0
	FlagEnPassant uint8 = 1

	FlagPromoKnight uint8 = 0
	FlagPromoBishop uint8 = 1
	FlagPromoRook   uint8 = 2
	FlagPromoQueen  uint8 = 3
)

const (
	fromShift  = 26
	toShift    = 20
	typeShift  = 18
	flagShift  = 16
	scoreMask  = 0xFFFF
	identity   = ^Move(scoreMask)
	squareBits = 0x3F
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove packs a move without an ordering score.
func NewMove(from, to Square, mt MoveType, flag uint8) Move {
	return Move(from)<<fromShift | Move(to)<<toShift | Move(mt&3)<<typeShift | Move(flag&3)<<flagShift
}

// NewPromotion creates a promotion move to the given piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to, Promotion, uint8(promo-Knight))
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m>>fromShift) & squareBits
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m>>toShift) & squareBits
}

// Type returns the move kind.
func (m Move) Type() MoveType {
	return MoveType(m>>typeShift) & 3
}

// Flag returns the kind-specific flag.
func (m Move) Flag() uint8 {
	return uint8(m>>flagShift) & 3
}

// Score returns the ordering score.
func (m Move) Score() uint16 {
	return uint16(m & scoreMask)
}

// WithScore returns the move carrying the given ordering score.
func (m Move) WithScore(score uint16) Move {
	return m&identity | Move(score)
}

// Equal reports whether two moves are the same, ignoring ordering scores.
func (m Move) Equal(o Move) bool {
	return m&identity == o&identity
}

// Promotion returns the promotion piece type (only valid if IsPromotion() is true).
func (m Move) Promotion() PieceType {
	return Knight + PieceType(m.Flag())
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Type() == Promotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Type() == Castle
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Type() == Attack && m.Flag() == FlagEnPassant
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	switch m.Type() {
	case Attack:
		return true
	case Promotion:
		return pos.Sides[pos.SideToMove.Other()].IsSet(m.To())
	}
	return false
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.Equal(NoMove) {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Flag()])
	}
	return s
}

// ParseMove parses a UCI format move string. The position is needed to tell
// castling, captures and en passant apart from quiet moves.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	pt := pos.PieceTypeAt(from)
	if pt == NoPieceType || pos.ColorAt(from) != pos.SideToMove {
		return NoMove, fmt.Errorf("%w: no %s piece at %s", ErrInvalidMove, pos.SideToMove, from)
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
		if pt != Pawn {
			return NoMove, fmt.Errorf("%w: only pawns promote", ErrInvalidMove)
		}
		return NewPromotion(from, to, promo), nil
	}

	switch {
	case pt == King && abs(int(to)-int(from)) == 2:
		return NewMove(from, to, Castle, FlagNone), nil
	case pt == Pawn && to == pos.EnPassant:
		return NewMove(from, to, Attack, FlagEnPassant), nil
	case pos.Sides[pos.SideToMove.Other()].IsSet(to):
		return NewMove(from, to, Attack, FlagNone), nil
	}
	return NewMove(from, to, Quiet, FlagNone), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
