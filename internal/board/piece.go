package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

var colorNames = [...]string{"White", "Black", "NoColor"}

func (c Color) String() string {
	if c > NoColor {
		c = NoColor
	}
	return colorNames[c]
}

// PieceType is a kind of piece regardless of colour. Its order matches the
// Position.Pieces array.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return pieceTypeNames[pt]
}

// Piece is a coloured piece encoded as type + 6*color, so white pieces come
// first in FEN letter order.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceChars lists FEN letters in Piece order.
const pieceChars = "PNBRQKpnbrqk"

// NewPiece combines a type and a colour. Out-of-range inputs give NoPiece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + 6*Piece(c)
}

// Type returns the piece's type.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the piece's colour.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, upper case for white.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar converts a FEN letter to a Piece, or NoPiece.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}
