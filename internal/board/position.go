package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options as a 4-bit field.
type CastlingRights uint8

const (
	BlackQueenSideCastle CastlingRights = 1 << iota // q
	BlackKingSideCastle                             // k
	WhiteQueenSideCastle                            // Q
	WhiteKingSideCastle                             // K
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingSpoilers masks the rights that survive a move touching a square.
var castlingSpoilers = [64]CastlingRights{
	0xb, 0xf, 0xf, 0xf, 0x3, 0xf, 0xf, 0x7,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf, 0xf,
	0xe, 0xf, 0xf, 0xf, 0xc, 0xf, 0xf, 0xd,
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	b := make([]byte, 0, 4)
	for _, cl := range castlingLetters {
		if cr&cl.right != 0 {
			b = append(b, cl.letter)
		}
	}
	return string(b)
}

// Position represents a complete chess position. It is a plain value: copying
// the struct yields an independent position.
type Position struct {
	// Piece bitboards by type, and occupancy by side.
	Pieces [6]Bitboard
	Sides  [2]Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// Zobrist hash, maintained incrementally by every mutation.
	Hash uint64
}

// NewEmptyPosition returns a position with no pieces, white to move and no
// castling rights.
func NewEmptyPosition() *Position {
	return &Position{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		Hash:           keys.whiteToMove ^ keys.castling[NoCastling],
	}
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	return MustParseFEN(StartFEN)
}

// Copy returns an independent duplicate of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Occupied returns all occupied squares.
func (p *Position) Occupied() Bitboard {
	return p.Sides[White] | p.Sides[Black]
}

// PiecesOf returns the bitboard of one piece type of one color.
func (p *Position) PiecesOf(c Color, pt PieceType) Bitboard {
	return p.Pieces[pt] & p.Sides[c]
}

// KingSquare returns the square of the given side's king.
func (p *Position) KingSquare(c Color) Square {
	return (p.Pieces[King] & p.Sides[c]).MSB()
}

// PlacePiece puts a piece on an empty square, updating both the type and
// side boards and the hash.
func (p *Position) PlacePiece(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[pt] |= bb
	p.Sides[c] |= bb
	p.Hash ^= keys.piece[c][pt][sq]
}

// RemovePiece takes a piece off its square, updating both the type and side
// boards and the hash.
func (p *Position) RemovePiece(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[pt] &^= bb
	p.Sides[c] &^= bb
	p.Hash ^= keys.piece[c][pt][sq]
}

// PieceTypeAt returns the type of the piece on sq, or NoPieceType.
// The lookup extracts one bit per board instead of branching.
func (p *Position) PieceTypeAt(sq Square) PieceType {
	shift := 63 - uint(sq)
	v := uint64(p.Pieces[Pawn]>>shift)&1 |
		(uint64(p.Pieces[Knight]>>shift)&1)*2 |
		(uint64(p.Pieces[Bishop]>>shift)&1)*3 |
		(uint64(p.Pieces[Rook]>>shift)&1)*4 |
		(uint64(p.Pieces[Queen]>>shift)&1)*5 |
		(uint64(p.Pieces[King]>>shift)&1)*6
	return PieceType((v + 6) % 7)
}

// ColorAt returns the color of the piece on sq, or NoColor.
func (p *Position) ColorAt(sq Square) Color {
	shift := 63 - uint(sq)
	w := uint64(p.Sides[White]>>shift) & 1
	b := uint64(p.Sides[Black]>>shift) & 1
	return Color(b + 2*(1-w-b))
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return NewPiece(p.PieceTypeAt(sq), p.ColorAt(sq))
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.Occupied().IsSet(sq)
}

// SetSideToMove changes the side to move, keeping the hash in step.
func (p *Position) SetSideToMove(c Color) {
	if c != p.SideToMove {
		p.Hash ^= keys.whiteToMove
		p.SideToMove = c
	}
}

// SetCastlingRights replaces the castling rights, keeping the hash in step.
func (p *Position) SetCastlingRights(cr CastlingRights) {
	p.Hash ^= keys.castling[p.CastlingRights]
	p.CastlingRights = cr & AllCastling
	p.Hash ^= keys.castling[p.CastlingRights]
}

// SetEnPassant replaces the en-passant target, keeping the hash in step.
func (p *Position) SetEnPassant(sq Square) {
	if p.EnPassant != NoSquare {
		p.Hash ^= keys.enPassant[p.EnPassant.File()]
	}
	p.EnPassant = sq
	if sq != NoSquare {
		p.Hash ^= keys.enPassant[sq.File()]
	}
}

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.PiecesOf(c, pt)
			for bb != 0 {
				hash ^= keys.piece[c][pt][bb.PopMSB()]
			}
		}
	}

	if p.SideToMove == White {
		hash ^= keys.whiteToMove
	}
	hash ^= keys.castling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		hash ^= keys.enPassant[p.EnPassant.File()]
	}

	return hash
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.SideToMove), p.SideToMove.Other())
}

// PinnedPieces returns the pieces of color us that are the only piece between
// their king and an enemy slider. Enemy rays are cast from the king through
// enemy occupancy only, so friendly pieces on the ray are seen through.
func (p *Position) PinnedPieces(us Color) Bitboard {
	them := us.Other()
	ksq := p.KingSquare(us)
	enemy := p.Sides[them]

	snipers := RookAttacks(ksq, enemy) & (p.Pieces[Rook] | p.Pieces[Queen]) & enemy
	snipers |= BishopAttacks(ksq, enemy) & (p.Pieces[Bishop] | p.Pieces[Queen]) & enemy

	var pinned Bitboard
	for snipers != 0 {
		sq := snipers.PopMSB()
		blockers := betweenBB[ksq][sq] & p.Sides[us]
		if blockers.PopCount() == 1 {
			pinned |= blockers
		}
	}
	return pinned
}

// Validate checks that the position is internally consistent.
func (p *Position) Validate() error {
	if p.Sides[White]&p.Sides[Black] != 0 {
		return fmt.Errorf("%w: square owned by both sides", ErrInvalidFEN)
	}
	var union Bitboard
	for pt := Pawn; pt <= King; pt++ {
		if union&p.Pieces[pt] != 0 {
			return fmt.Errorf("%w: square holds two piece types", ErrInvalidFEN)
		}
		union |= p.Pieces[pt]
	}
	if union != p.Occupied() {
		return fmt.Errorf("%w: piece and side boards disagree", ErrInvalidFEN)
	}
	if p.PiecesOf(White, King).PopCount() != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidFEN)
	}
	if p.PiecesOf(Black, King).PopCount() != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidFEN)
	}
	if p.Pieces[Pawn]&(Rank1|Rank8) != 0 {
		return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidFEN)
	}
	if p.IsSquareAttacked(p.KingSquare(p.SideToMove.Other()), p.SideToMove) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	if p.Hash != p.ComputeHash() {
		return fmt.Errorf("%w: hash out of sync", ErrInvalidFEN)
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "FEN: %s\n", p.ToFEN())
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash)
	return sb.String()
}
