package board

import (
	"fmt"
	"strings"
)

// Board represents a complete chess position.
//
// Placement is held three ways at once: a per-square array, one bitboard
// per piece and one per color. AddPiece is the only path that changes
// placement and keeps all three in step. Board is a plain value; assigning
// it takes an independent snapshot.
type Board struct {
	pieces  [64]Piece
	pieceBB [12]Bitboard
	colorBB [2]Bitboard

	sideToMove     Color
	enPassant      Square
	castlingRights CastlingRights
	halfMoveClock  uint
	fullMoveNumber uint
}

// EmptyBoard returns a board with no pieces, White to move, no castling
// rights, no en passant square and the move counters at 0 and 1.
func EmptyBoard() Board {
	b := Board{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for sq := range b.pieces {
		b.pieces[sq] = NoPiece
	}
	return b
}

// NewBoard creates the starting position.
func NewBoard() Board {
	return MustParseFEN(StartFEN)
}

// AddPiece places p on sq. An existing occupant is taken off first.
// NoPiece and NoSquare are ignored.
func (b *Board) AddPiece(p Piece, sq Square) {
	if p >= NoPiece || !sq.IsValid() {
		return
	}
	b.removePiece(sq)
	b.pieceBB[p].Add(sq)
	b.colorBB[p.Color()].Add(sq)
	b.pieces[sq] = p
}

// removePiece clears sq from all three views and returns what was there.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	if p >= NoPiece {
		return NoPiece
	}
	b.pieceBB[p].Remove(sq)
	b.colorBB[p.Color()].Remove(sq)
	b.pieces[sq] = NoPiece
	return p
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.pieces[sq]
}

// Pieces returns a copy of the per-square array.
func (b *Board) Pieces() [64]Piece {
	return b.pieces
}

// PieceBitboard returns the squares holding exactly p.
func (b *Board) PieceBitboard(p Piece) Bitboard {
	if p >= NoPiece {
		return Empty
	}
	return b.pieceBB[p]
}

// ColorBitboard returns the squares holding any piece of color c.
func (b *Board) ColorBitboard(c Color) Bitboard {
	return b.colorBB[c&1]
}

// Occupied returns all occupied squares.
func (b *Board) Occupied() Bitboard {
	return b.colorBB[White] | b.colorBB[Black]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == NoPiece
}

// KingSquare returns the lowest square holding c's king, or NoSquare.
func (b *Board) KingSquare(c Color) Square {
	return b.pieceBB[NewPiece(King, c)].LSB()
}

func (b *Board) SideToMove() Color              { return b.sideToMove }
func (b *Board) EnPassant() Square              { return b.enPassant }
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }
func (b *Board) HalfMoveClock() uint            { return b.halfMoveClock }
func (b *Board) FullMoveNumber() uint           { return b.fullMoveNumber }

func (b *Board) SetSideToMove(c Color) {
	b.sideToMove = c & 1
}

// SetEnPassant sets the en passant target; anything but a real square
// clears it.
func (b *Board) SetEnPassant(sq Square) {
	if !sq.IsValid() {
		sq = NoSquare
	}
	b.enPassant = sq
}

func (b *Board) SetCastlingRights(cr CastlingRights) {
	b.castlingRights = cr & AllCastling
}

func (b *Board) SetMoveCounters(halfMoves, fullMoves uint) {
	b.halfMoveClock = halfMoves
	b.fullMoveNumber = fullMoves
}

// Validate checks that the array and both bitboard views agree.
func (b *Board) Validate() error {
	var seenPiece [12]Bitboard
	var seenColor [2]Bitboard
	for i, p := range b.pieces {
		sq := Square(i)
		if p == NoPiece {
			continue
		}
		if p > NoPiece {
			return fmt.Errorf("%w: square %s holds %d", ErrInconsistentBoard, sq, uint8(p))
		}
		seenPiece[p].Add(sq)
		seenColor[p.Color()].Add(sq)
	}
	if seenPiece != b.pieceBB {
		return fmt.Errorf("%w: piece bitboards disagree with the square array", ErrInconsistentBoard)
	}
	if seenColor != b.colorBB {
		return fmt.Errorf("%w: color bitboards disagree with the square array", ErrInconsistentBoard)
	}
	return nil
}

// String returns a visual representation of the position.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.pieces[NewSquare(file, rank)]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "FEN: %s\n", b.FEN())
	return sb.String()
}
