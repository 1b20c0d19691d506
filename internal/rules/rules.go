// Package rules lists and applies legal moves for board positions by
// delegating to the dragontoothmg move generator.
//
// The core board package deliberately has no notion of legality; this
// package is the collaborator that produces tagged board.Move values and
// advances positions.
package rules

import (
	"errors"
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/chesscore/internal/board"
)

var (
	ErrUnplayable  = errors.New("position cannot be played")
	ErrIllegalMove = errors.New("illegal move")
)

var promotionTypes = map[dragontoothmg.Piece]board.PieceType{
	dragontoothmg.Knight: board.Knight,
	dragontoothmg.Bishop: board.Bishop,
	dragontoothmg.Rook:   board.Rook,
	dragontoothmg.Queen:  board.Queen,
}

// CheckPlayable rejects positions the generator cannot handle: each side
// needs exactly one king and no pawn may stand on the first or last rank.
func CheckPlayable(b *board.Board) error {
	if n := b.PieceBitboard(board.WhiteKing).PopCount(); n != 1 {
		return fmt.Errorf("%w: white has %d kings", ErrUnplayable, n)
	}
	if n := b.PieceBitboard(board.BlackKing).PopCount(); n != 1 {
		return fmt.Errorf("%w: black has %d kings", ErrUnplayable, n)
	}
	pawns := b.PieceBitboard(board.WhitePawn) | b.PieceBitboard(board.BlackPawn)
	if pawns&(board.Rank1|board.Rank8) != 0 {
		return fmt.Errorf("%w: pawns on rank 1 or 8", ErrUnplayable)
	}
	return nil
}

// castlingHomes lists the king and rook squares each right depends on.
var castlingHomes = []struct {
	right      board.CastlingRights
	king, rook board.Piece
	kingSq     board.Square
	rookSq     board.Square
}{
	{board.WhiteKingSideCastle, board.WhiteKing, board.WhiteRook, board.E1, board.H1},
	{board.WhiteQueenSideCastle, board.WhiteKing, board.WhiteRook, board.E1, board.A1},
	{board.BlackKingSideCastle, board.BlackKing, board.BlackRook, board.E8, board.H8},
	{board.BlackQueenSideCastle, board.BlackKing, board.BlackRook, board.E8, board.A8},
}

// effectiveCastling returns the castling rights of b that are backed by a
// king and rook on their home squares.
func effectiveCastling(b *board.Board) board.CastlingRights {
	cr := b.CastlingRights()
	for _, h := range castlingHomes {
		if b.PieceAt(h.kingSq) != h.king || b.PieceAt(h.rookSq) != h.rook {
			cr.Remove(h.right)
		}
	}
	return cr
}

// effectiveEnPassant returns the en passant square of b if a pawn of the
// side not to move could just have double-pushed past it, else NoSquare.
func effectiveEnPassant(b *board.Board) board.Square {
	ep := b.EnPassant()
	if !ep.IsValid() || !b.IsEmpty(ep) {
		return board.NoSquare
	}
	us := b.SideToMove()
	them := us.Other()
	if ep.RelativeRank(us) != 5 {
		return board.NoSquare
	}
	pushed := ep - 8
	if us == board.Black {
		pushed = ep + 8
	}
	if b.PieceAt(pushed) != board.NewPiece(board.Pawn, them) {
		return board.NoSquare
	}
	return ep
}

// load converts a board into the generator's representation via FEN.
// Castling rights and en passant squares the placement cannot back are
// dropped; the generator does not check either field.
func load(b *board.Board) (dt dragontoothmg.Board, err error) {
	if err := CheckPlayable(b); err != nil {
		return dt, err
	}
	clean := *b
	clean.SetCastlingRights(effectiveCastling(b))
	clean.SetEnPassant(effectiveEnPassant(b))

	err = guard(func() {
		dt = dragontoothmg.ParseFen(clean.FEN())
	})
	return dt, err
}

// guard runs f and turns a generator panic into ErrUnplayable.
func guard(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnplayable, r)
		}
	}()
	f()
	return nil
}

// generate loads b and lists the generator's legal moves.
func generate(b *board.Board) (dt dragontoothmg.Board, moves []dragontoothmg.Move, err error) {
	dt, err = load(b)
	if err != nil {
		return dt, nil, err
	}
	err = guard(func() {
		moves = dt.GenerateLegalMoves()
	})
	return dt, moves, err
}

// LegalMoves returns every legal move in the position, tagged from the
// board's own state.
func LegalMoves(b *board.Board) (*board.MoveList, error) {
	_, moves, err := generate(b)
	if err != nil {
		return nil, err
	}

	ml := &board.MoveList{}
	for _, mv := range moves {
		from, to := board.Square(mv.From()), board.Square(mv.To())
		ml.Add(board.NewMove(from, to, classify(b, from, to, mv.Promote())))
	}
	return ml, nil
}

// classify derives the move tag from the board before the move.
func classify(b *board.Board, from, to board.Square, promote dragontoothmg.Piece) board.MoveType {
	capture := !b.IsEmpty(to)

	if pt, ok := promotionTypes[promote]; ok {
		mt := board.PromotionKnight + board.MoveType(pt-board.Knight)
		if capture {
			mt |= board.Capture
		}
		return mt
	}

	switch b.PieceAt(from).Type() {
	case board.King:
		if abs(to.File()-from.File()) == 2 {
			return board.Castling
		}
	case board.Pawn:
		if to == b.EnPassant() && !capture && to.File() != from.File() {
			return board.EnPassant
		}
		if abs(to.Rank()-from.Rank()) == 2 {
			return board.DoublePush
		}
	}

	if capture {
		return board.Capture
	}
	return board.Normal
}

// FindMove returns the legal move whose UCI text is uci.
func FindMove(b *board.Board, uci string) (board.Move, error) {
	ml, err := LegalMoves(b)
	if err != nil {
		return board.NoMove, err
	}
	for _, m := range ml.Slice() {
		if m.String() == uci {
			return m, nil
		}
	}
	return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, uci)
}

// Apply plays m and returns the resulting position; b is left untouched.
func Apply(b board.Board, m board.Move) (board.Board, error) {
	dt, moves, err := generate(&b)
	if err != nil {
		return b, err
	}

	for _, mv := range moves {
		if board.Square(mv.From()) != m.From() || board.Square(mv.To()) != m.To() {
			continue
		}
		promo := board.NoPieceType
		if pt, ok := promotionTypes[mv.Promote()]; ok {
			promo = pt
		}
		if promo != m.Type().PromotionType() {
			continue
		}

		var fen string
		if err := guard(func() {
			dt.Apply(mv)
			fen = dt.ToFen()
		}); err != nil {
			return b, err
		}
		next, _, err := board.ParseFEN(fen)
		if err != nil {
			return b, fmt.Errorf("re-reading generator position: %w", err)
		}
		return next, nil
	}

	return b, fmt.Errorf("%w: %s", ErrIllegalMove, m)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
