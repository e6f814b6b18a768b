package board

import (
	"fmt"
)

// Magic bitboard implementation for sliding piece attacks.
// Magic numbers are searched for at startup from fixed per-rank seeds, so the
// resulting tables are identical on every run.

// Slider selects the sliding-piece geometry of a magic table.
type Slider uint8

const (
	RookSlider Slider = iota
	BishopSlider
)

func (s Slider) String() string {
	if s == RookSlider {
		return "rook"
	}
	return "bishop"
}

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask  Bitboard // Relevant occupancy mask (excludes edges)
	Magic uint64   // Magic multiplier
	Shift uint8    // Bits to shift right
}

// index hashes an occupancy into the square's attack table.
func (m *Magic) index(occupied Bitboard) uint64 {
	return (uint64(occupied&m.Mask) * m.Magic) >> m.Shift
}

// MagicTable is the immutable per-square lookup for one slider type.
type MagicTable struct {
	Slider  Slider
	Magics  [64]Magic
	attacks [64][]Bitboard
}

// Attacks returns the attack set of a slider on sq for the given occupancy.
func (t *MagicTable) Attacks(sq Square, occupied Bitboard) Bitboard {
	m := &t.Magics[sq]
	return t.attacks[sq][m.index(occupied)]
}

// MagicSeeds are the xorshift seeds used for squares on each rank.
var MagicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

// MaxMagicAttempts bounds the candidate search for a single square.
const MaxMagicAttempts = 1_000_000

var (
	rookMagics   *MagicTable
	bishopMagics *MagicTable
)

func initMagics() {
	var err error
	if rookMagics, err = BuildMagicTable(RookSlider, MagicSeeds, MaxMagicAttempts); err != nil {
		panic(err)
	}
	if bishopMagics, err = BuildMagicTable(BishopSlider, MagicSeeds, MaxMagicAttempts); err != nil {
		panic(err)
	}
}

// BuildMagicTable searches a magic multiplier for every square and fills the
// dense attack tables. It fails if any square needs more than maxAttempts
// candidates.
func BuildMagicTable(slider Slider, seeds [8]uint64, maxAttempts int) (*MagicTable, error) {
	t := &MagicTable{Slider: slider}
	rng := newPRNG(0)

	for sq := A1; sq <= H8; sq++ {
		mask := slidingAttacks(slider, sq, 0) &^ relevantEdges(slider, sq)
		bits := mask.PopCount()
		size := 1 << bits

		subsets := make([]Bitboard, 0, size)
		attacks := make([]Bitboard, 0, size)
		for occ := Bitboard(0); ; {
			subsets = append(subsets, occ)
			attacks = append(attacks, slidingAttacks(slider, sq, occ))
			occ = (occ - mask) & mask
			if occ == 0 {
				break
			}
		}

		m := Magic{Mask: mask, Shift: uint8(64 - bits)}
		table := make([]Bitboard, size)
		rng.seed(seeds[sq.Rank()])

		found := false
		for attempt := 0; attempt < maxAttempts && !found; attempt++ {
			m.Magic = rng.sparse()
			clear(table)
			found = true
			for i, occ := range subsets {
				idx := m.index(occ)
				// Slider attack sets are never empty, so zero marks a free slot.
				if table[idx] != 0 && table[idx] != attacks[i] {
					found = false
					break
				}
				table[idx] = attacks[i]
			}
		}
		if !found {
			return nil, fmt.Errorf("no %s magic for %s after %d attempts", slider, sq, maxAttempts)
		}

		t.Magics[sq] = m
		t.attacks[sq] = table
	}

	return t, nil
}

// relevantEdges returns the edge squares that never influence a slider's
// attacks from sq. A rook on an edge file or rank keeps the far squares of
// that line in its mask.
func relevantEdges(slider Slider, sq Square) Bitboard {
	if slider == BishopSlider {
		return Edges
	}
	return ((Rank1 | Rank8) &^ RankMask[sq.Rank()]) | ((FileA | FileH) &^ FileMask[sq.File()])
}

// slidingAttacks computes attacks with hyperbola quintessence: each line is
// resolved independently, once forward and once on the bit-reversed board.
func slidingAttacks(slider Slider, sq Square, occupied Bitboard) Bitboard {
	if slider == RookSlider {
		return lineAttacks(sq, occupied, fileLine[sq]) | lineAttacks(sq, occupied, rankLine[sq])
	}
	return lineAttacks(sq, occupied, diagLine[sq]) | lineAttacks(sq, occupied, antiDiagLine[sq])
}

func lineAttacks(sq Square, occupied, line Bitboard) Bitboard {
	slider := SquareBB(sq)
	o := occupied & line
	forward := o - 2*slider
	reverse := (o.Reverse() - 2*slider.Reverse()).Reverse()
	return (forward ^ reverse) & line
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rookMagics.Attacks(sq, occupied)
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return bishopMagics.Attacks(sq, occupied)
}

// RookAttacksSlow walks the four rook rays until the first blocker.
func RookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayWalk(sq, occupied, North, East, South, West)
}

// BishopAttacksSlow walks the four bishop rays until the first blocker.
func BishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayWalk(sq, occupied, NorthEast, SouthEast, SouthWest, NorthWest)
}

func rayWalk(sq Square, occupied Bitboard, dirs ...Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for bb := d.step(SquareBB(sq)); bb != 0; bb = d.step(bb) {
			attacks |= bb
			if occupied&bb != 0 {
				break
			}
		}
	}
	return attacks
}
