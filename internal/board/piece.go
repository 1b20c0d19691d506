package board

import "fmt"

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType<<1 | color, so bit 0 is the color and the
// remaining bits are the type. NoPiece has no color.
type Piece uint8

const (
	WhitePawn Piece = iota
	BlackPawn
	WhiteKnight
	BlackKnight
	WhiteBishop
	BlackBishop
	WhiteRook
	BlackRook
	WhiteQueen
	BlackQueen
	WhiteKing
	BlackKing
	NoPiece
)

const pieceChars = "PpNnBbRrQqKk"

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType {
		return NoPiece
	}
	return Piece(pt)<<1 | Piece(c&1)
}

// PieceFromIndex converts a raw ordinal into a Piece. 12 yields NoPiece.
func PieceFromIndex(i int) (Piece, error) {
	if i < 0 || i > int(NoPiece) {
		return NoPiece, fmt.Errorf("%w: %d", ErrPieceOutOfRange, i)
	}
	return Piece(i), nil
}

// PieceFromChar converts a FEN character to a Piece. The second result is
// false for anything outside "PpNnBbRrQqKk".
func PieceFromChar(c byte) (Piece, bool) {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i), true
		}
	}
	return NoPiece, false
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p >> 1)
}

// Color returns the Color of the piece. Meaningless for NoPiece.
func (p Piece) Color() Color {
	return Color(p & 1)
}

// WithColor returns the same piece type in color c. Meaningless for NoPiece.
func (p Piece) WithColor(c Color) Piece {
	return p&^1 | Piece(c&1)
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black; false for NoPiece.
func (p Piece) Char() (byte, bool) {
	if p >= NoPiece {
		return 0, false
	}
	return pieceChars[p], true
}

var pieceSymbols = [...]string{"♙", "♟", "♘", "♞", "♗", "♝", "♖", "♜", "♕", "♛", "♔", "♚"}

// Symbol returns the Unicode chess glyph for the piece, or a space.
func (p Piece) Symbol() string {
	if p >= NoPiece {
		return " "
	}
	return pieceSymbols[p]
}

// String returns the FEN character for the piece, or a space for NoPiece.
func (p Piece) String() string {
	c, ok := p.Char()
	if !ok {
		return " "
	}
	return string(c)
}
