package board

import "errors"

var (
	// ErrInvalidSquare is returned for square names outside a1-h8.
	ErrInvalidSquare = errors.New("invalid square")
	// ErrInvalidFEN is returned for malformed or inconsistent FEN strings.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrInvalidMove is returned for unparseable or impossible move text.
	ErrInvalidMove = errors.New("invalid move")
)
