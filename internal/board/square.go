// Package board implements the chess position model: bitboards, attack
// tables, Zobrist hashing, move encoding and legal move generation.
package board

import "fmt"

// Square is an index 0-63, A1=0, H1=7, A8=56, H8=63. Its bit in a Bitboard
// is counted from the most significant end.
type Square uint8

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3, 8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

// NoSquare marks an absent square, such as no en-passant target.
const NoSquare Square = 64

// NewSquare creates a square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) >> 3 }

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool { return sq < NoSquare }

// Mirror flips sq to the same file on the opposite rank.
func (sq Square) Mirror() Square { return sq ^ 56 }

// String returns the coordinate name, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses a coordinate name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
