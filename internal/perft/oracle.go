package perft

import (
	"fmt"
	"sort"

	"github.com/dylhunn/dragontoothmg"
	"github.com/freeeve/pgn/v3"

	"github.com/hailam/chessfork/internal/board"
)

// DragontoothOracle counts nodes with the dragontoothmg move generator.
type DragontoothOracle struct{}

// Perft returns the leaf count of fen at depth.
func (DragontoothOracle) Perft(fen string, depth int) (uint64, error) {
	// dragontoothmg does not validate its input.
	if _, err := board.ParseFEN(fen); err != nil {
		return 0, err
	}
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth), nil
}

// RootMoves returns the legal root moves in coordinate notation, sorted.
func (DragontoothOracle) RootMoves(fen string) ([]string, error) {
	if _, err := board.ParseFEN(fen); err != nil {
		return nil, err
	}
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	sort.Strings(out)
	return out, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// PGNOracle answers root queries with the freeeve/pgn move generator.
type PGNOracle struct{}

// RootMoves returns the number of legal moves in fen.
func (PGNOracle) RootMoves(fen string) (int, error) {
	gs, err := pgn.NewGame(fen)
	if err != nil {
		return 0, fmt.Errorf("parse FEN: %w", err)
	}
	return len(pgn.GenerateLegalMoves(gs)), nil
}

// InCheck reports whether the side to move in fen is in check.
func (PGNOracle) InCheck(fen string) (bool, error) {
	gs, err := pgn.NewGame(fen)
	if err != nil {
		return false, fmt.Errorf("parse FEN: %w", err)
	}
	return gs.IsInCheck(), nil
}

// CrossCheck compares Count against the dragontoothmg oracle at depth and
// returns an error wrapping ErrMismatch when they differ.
func CrossCheck(fen string, depth int) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	want, err := DragontoothOracle{}.Perft(fen, depth)
	if err != nil {
		return err
	}
	if got := Count(pos, depth); got != want {
		return fmt.Errorf("%w: %s perft(%d) = %d, oracle %d", ErrMismatch, fen, depth, got, want)
	}
	return nil
}
