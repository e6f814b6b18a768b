package board

// Direction identifies one of the eight ray directions.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) & 7
}

// step shifts a bitboard one square in the direction, clipping file wraps.
func (d Direction) step(b Bitboard) Bitboard {
	switch d {
	case North:
		return b.North()
	case NorthEast:
		return b.NorthEast()
	case East:
		return b.East()
	case SouthEast:
		return b.SouthEast()
	case South:
		return b.South()
	case SouthWest:
		return b.SouthWest()
	case West:
		return b.West()
	default:
		return b.NorthWest()
	}
}

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
	pawnPushes    [2][64]Bitboard // [Color][Square] - single push targets

	rays      [8][64]Bitboard  // [Direction][Square], origin excluded
	betweenBB [64][64]Bitboard // Squares strictly between two aligned squares

	// Line masks through a square, the square itself excluded.
	fileLine     [64]Bitboard
	rankLine     [64]Bitboard
	diagLine     [64]Bitboard
	antiDiagLine [64]Bitboard
)

func init() {
	initLeaperAttacks()
	initRays()
	initMagics() // From magic.go
}

func initLeaperAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = bb.North().NorthEast() | bb.North().NorthWest() |
			bb.South().SouthEast() | bb.South().SouthWest() |
			bb.East().NorthEast() | bb.East().SouthEast() |
			bb.West().NorthWest() | bb.West().SouthWest()

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()

		pawnPushes[White][sq] = bb.North()
		pawnPushes[Black][sq] = bb.South()
	}
}

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for d := North; d <= NorthWest; d++ {
			var ray Bitboard
			for bb := d.step(SquareBB(sq)); bb != 0; bb = d.step(bb) {
				ray |= bb
			}
			rays[d][sq] = ray
		}

		fileLine[sq] = rays[North][sq] | rays[South][sq]
		rankLine[sq] = rays[East][sq] | rays[West][sq]
		diagLine[sq] = rays[NorthEast][sq] | rays[SouthWest][sq]
		antiDiagLine[sq] = rays[NorthWest][sq] | rays[SouthEast][sq]
	}

	for from := A1; from <= H8; from++ {
		for d := North; d <= NorthWest; d++ {
			ray := rays[d][from]
			for ray != 0 {
				to := ray.PopMSB()
				betweenBB[from][to] = rays[d][from] & rays[d.Opposite()][to]
			}
		}
	}
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn attack bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// PawnPushes returns the pawn push target bitboard for a square and color.
func PawnPushes(sq Square, c Color) Bitboard {
	return pawnPushes[c][sq]
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if squares are not aligned (not on same rank, file, or diagonal).
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// IsSquareAttacked returns true if the square is attacked by the given color.
// Leaper tables are tried first; sliders are only looked up if those miss.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	them := p.Sides[byColor]
	if pawnAttacks[byColor.Other()][sq]&p.Pieces[Pawn]&them != 0 {
		return true
	}
	if knightAttacks[sq]&p.Pieces[Knight]&them != 0 {
		return true
	}
	if kingAttacks[sq]&p.Pieces[King]&them != 0 {
		return true
	}
	occupied := p.Occupied()
	if BishopAttacks(sq, occupied)&(p.Pieces[Bishop]|p.Pieces[Queen])&them != 0 {
		return true
	}
	return RookAttacks(sq, occupied)&(p.Pieces[Rook]|p.Pieces[Queen])&them != 0
}
