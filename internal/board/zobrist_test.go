package board

import "testing"

func TestZobristKeysDistinct(t *testing.T) {
	seen := make(map[uint64]string)
	add := func(k uint64, name string) {
		if k == 0 {
			t.Errorf("%s is zero", name)
		}
		if prev, ok := seen[k]; ok {
			t.Errorf("%s collides with %s", name, prev)
		}
		seen[k] = name
	}

	for c := range keys.piece {
		for pt := range keys.piece[c] {
			for sq := range keys.piece[c][pt] {
				add(keys.piece[c][pt][sq], Color(c).String()+" "+PieceType(pt).String()+" "+Square(sq).String())
			}
		}
	}
	for f, k := range keys.enPassant {
		add(k, "ep file "+string(rune('a'+f)))
	}
	for cr, k := range keys.castling {
		add(k, "castling "+CastlingRights(cr).String())
	}
	add(keys.whiteToMove, "white to move")
}

func TestZobristKeysReproducible(t *testing.T) {
	if *newZobristKeys(zobristSeed) != *keys {
		t.Error("rebuilding keys from the seed gave different keys")
	}
	if newZobristKeys(zobristSeed+1).whiteToMove == keys.whiteToMove {
		t.Error("a different seed gave the same side key")
	}
}

func TestSideToMoveChangesHash(t *testing.T) {
	pos := MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	other := MustParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if pos.Hash^other.Hash != keys.whiteToMove {
		t.Errorf("side to move hashes differ by %x, want %x", pos.Hash^other.Hash, keys.whiteToMove)
	}
}
