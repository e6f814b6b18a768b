package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Squares are indexed most-significant-bit first: A1 = bit 63, H1 = bit 56,
// A8 = bit 7, H8 = bit 0.
type Bitboard uint64

// msb is the bit that represents square 0 (A1).
const msb Bitboard = 1 << 63

// File masks
const (
	FileA Bitboard = 0x8080808080808080
	FileB Bitboard = 0x4040404040404040
	FileC Bitboard = 0x2020202020202020
	FileD Bitboard = 0x1010101010101010
	FileE Bitboard = 0x0808080808080808
	FileF Bitboard = 0x0404040404040404
	FileG Bitboard = 0x0202020202020202
	FileH Bitboard = 0x0101010101010101
)

// Rank masks
const (
	Rank1 Bitboard = 0xFF00000000000000
	Rank2 Bitboard = 0x00FF000000000000
	Rank3 Bitboard = 0x0000FF0000000000
	Rank4 Bitboard = 0x000000FF00000000
	Rank5 Bitboard = 0x00000000FF000000
	Rank6 Bitboard = 0x0000000000FF0000
	Rank7 Bitboard = 0x000000000000FF00
	Rank8 Bitboard = 0x00000000000000FF
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	// Edges
	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	Edges Bitboard = FileA | FileH | Rank1 | Rank8
)

// FileMask returns the file mask for a given file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask returns the rank mask for a given rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return msb >> sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | msb>>sq
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (msb >> sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(msb>>sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// MSB returns the square of the most significant set bit, which is the
// lowest square index on the board. NoSquare for an empty board.
func (b Bitboard) MSB() Square {
	return Square(bits.LeadingZeros64(uint64(b)))
}

// PopMSB removes and returns the most significant bit.
func (b *Bitboard) PopMSB() Square {
	sq := b.MSB()
	*b &^= msb >> sq
	return sq
}

// Reverse mirrors the bit order.
func (b Bitboard) Reverse() Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Shift operations for table generation

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard {
	return b >> 8
}

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard {
	return b << 8
}

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard {
	return (b >> 1) & NotFileA
}

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard {
	return (b << 1) & NotFileH
}

// NorthEast shifts the bitboard one square toward the h8 corner.
func (b Bitboard) NorthEast() Bitboard {
	return (b >> 9) & NotFileA
}

// NorthWest shifts the bitboard one square toward the a8 corner.
func (b Bitboard) NorthWest() Bitboard {
	return (b >> 7) & NotFileH
}

// SouthEast shifts the bitboard one square toward the h1 corner.
func (b Bitboard) SouthEast() Bitboard {
	return (b << 7) & NotFileA
}

// SouthWest shifts the bitboard one square toward the a1 corner.
func (b Bitboard) SouthWest() Bitboard {
	return (b << 9) & NotFileH
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
