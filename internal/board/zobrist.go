package board

const zobristSeed = 0x98F107A2BEEF1234

// zobristKeys are the random keys folded into Position.Hash: one per
// (colour, piece, square), one per en-passant file, one per castling-rights
// value and one for white to move.
type zobristKeys struct {
	piece       [2][6][64]uint64
	enPassant   [8]uint64
	castling    [16]uint64
	whiteToMove uint64
}

var keys = newZobristKeys(zobristSeed)

func newZobristKeys(seed uint64) *zobristKeys {
	rng := newPRNG(seed)
	k := new(zobristKeys)

	for c := range k.piece {
		for pt := range k.piece[c] {
			for sq := range k.piece[c][pt] {
				k.piece[c][pt][sq] = rng.next()
			}
		}
	}
	for f := range k.enPassant {
		k.enPassant[f] = rng.next()
	}
	for cr := range k.castling {
		k.castling[cr] = rng.next()
	}
	k.whiteToMove = rng.next()

	return k
}
