package rules

import (
	"errors"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

const (
	kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	enPassant = "rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3"
)

func countTypes(ml *board.MoveList) map[board.MoveType]int {
	counts := make(map[board.MoveType]int)
	for _, m := range ml.Slice() {
		counts[m.Type()]++
	}
	return counts
}

func TestLegalMovesCounts(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		total    int
		captures int
		castles  int
	}{
		{"startpos", board.StartFEN, 20, 0, 0},
		{"kiwipete", kiwipete, 48, 8, 2},
		{"position3", position3, 14, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.MustParseFEN(tc.fen)
			ml, err := LegalMoves(&b)
			if err != nil {
				t.Fatalf("LegalMoves: %v", err)
			}
			if ml.Len() != tc.total {
				t.Errorf("moves = %d, want %d", ml.Len(), tc.total)
			}
			captures := 0
			for _, m := range ml.Slice() {
				if m.IsCapture() {
					captures++
				}
			}
			if captures != tc.captures {
				t.Errorf("captures = %d, want %d", captures, tc.captures)
			}
			if n := countTypes(ml)[board.Castling]; n != tc.castles {
				t.Errorf("castles = %d, want %d", n, tc.castles)
			}
		})
	}
}

func TestLegalMovesTags(t *testing.T) {
	b := board.NewBoard()
	ml, err := LegalMoves(&b)
	if err != nil {
		t.Fatal(err)
	}
	counts := countTypes(ml)
	if counts[board.DoublePush] != 8 || counts[board.Normal] != 12 {
		t.Errorf("startpos tags = %v", counts)
	}

	b = board.MustParseFEN(position5)
	ml, err = LegalMoves(&b)
	if err != nil {
		t.Fatal(err)
	}
	if ml.Len() != 44 {
		t.Errorf("position5 moves = %d, want 44", ml.Len())
	}
	counts = countTypes(ml)
	for _, mt := range []board.MoveType{
		board.PromotionCaptureKnight, board.PromotionCaptureBishop,
		board.PromotionCaptureRook, board.PromotionCaptureQueen,
	} {
		if counts[mt] != 1 {
			t.Errorf("%s count = %d, want 1", mt, counts[mt])
		}
	}
	if counts[board.Castling] != 1 {
		t.Errorf("castling count = %d, want 1", counts[board.Castling])
	}

	b = board.MustParseFEN(enPassant)
	m, err := FindMove(&b, "d5c6")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != board.EnPassant || !m.IsCapture() {
		t.Errorf("d5c6 tagged %s", m.Type())
	}
}

func TestApplyCastling(t *testing.T) {
	b := board.MustParseFEN(kiwipete)
	m, err := FindMove(&b, "e1g1")
	if err != nil {
		t.Fatal(err)
	}
	next, err := Apply(b, m)
	if err != nil {
		t.Fatal(err)
	}

	rookFrom, rookTo := m.CastlingRookSquares()
	if next.PieceAt(board.G1) != board.WhiteKing || next.PieceAt(rookTo) != board.WhiteRook || !next.IsEmpty(rookFrom) {
		t.Errorf("after e1g1:\n%s", next)
	}
	if next.SideToMove() != board.Black {
		t.Error("side to move did not flip")
	}
	if next.CastlingRights().CanCastle(board.White, true) || next.CastlingRights().CanCastle(board.White, false) {
		t.Errorf("white castling rights kept: %s", next.CastlingRights())
	}
	if b.PieceAt(board.E1) != board.WhiteKing {
		t.Error("Apply mutated its input")
	}
	if err := next.Validate(); err != nil {
		t.Error(err)
	}
}

func TestApplyPromotionAndEnPassant(t *testing.T) {
	b := board.MustParseFEN(position5)
	m, err := FindMove(&b, "d7c8q")
	if err != nil {
		t.Fatal(err)
	}
	next, err := Apply(b, m)
	if err != nil {
		t.Fatal(err)
	}
	if next.PieceAt(board.C8) != board.WhiteQueen || !next.IsEmpty(board.D7) {
		t.Errorf("after d7c8q:\n%s", next)
	}

	b = board.MustParseFEN(enPassant)
	next, err = Apply(b, board.NewMove(board.D5, board.C6, board.EnPassant))
	if err != nil {
		t.Fatal(err)
	}
	if next.PieceAt(board.C6) != board.WhitePawn || !next.IsEmpty(board.C5) || !next.IsEmpty(board.D5) {
		t.Errorf("after d5c6 e.p.:\n%s", next)
	}
}

func TestApplyDoublePushSetsEnPassant(t *testing.T) {
	next, err := Apply(board.NewBoard(), board.NewMove(board.E2, board.E4, board.DoublePush))
	if err != nil {
		t.Fatal(err)
	}
	if next.PieceAt(board.E4) != board.WhitePawn || next.SideToMove() != board.Black {
		t.Errorf("after e2e4:\n%s", next)
	}
	if next.FullMoveNumber() != 1 {
		t.Errorf("full moves = %d, want 1", next.FullMoveNumber())
	}
}

func TestIllegalAndUnplayable(t *testing.T) {
	b := board.NewBoard()
	if _, err := FindMove(&b, "e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("FindMove(e2e5) error = %v", err)
	}
	if _, err := Apply(b, board.NewMove(board.E1, board.E2, board.Normal)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Apply(e1e2) error = %v", err)
	}

	empty := board.EmptyBoard()
	if _, err := LegalMoves(&empty); !errors.Is(err, ErrUnplayable) {
		t.Errorf("LegalMoves(empty) error = %v", err)
	}

	pawnOnBackRank := board.MustParseFEN("4k3/8/8/8/8/8/8/P3K3 w - - 0 1")
	if err := CheckPlayable(&pawnOnBackRank); !errors.Is(err, ErrUnplayable) {
		t.Errorf("CheckPlayable error = %v", err)
	}
}

func TestCastlingNeedsKingAndRookAtHome(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"no rooks", "4k3/8/8/8/8/8/8/4K3 w KQ - 0 1", nil},
		{"queen side rook only", "r3k3/8/8/8/8/8/8/R3K3 w KQkq - 0 1", []string{"e1c1"}},
		{"king off home", "4k3/8/8/8/8/8/8/R4K1R w KQ - 0 1", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.MustParseFEN(tc.fen)
			ml, err := LegalMoves(&b)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, m := range ml.Slice() {
				if m.IsCastling() {
					got = append(got, m.String())
				}
			}
			if len(got) != len(tc.want) || (len(got) == 1 && got[0] != tc.want[0]) {
				t.Errorf("castling moves = %v, want %v", got, tc.want)
			}
		})
	}

	b := board.MustParseFEN("4k3/8/8/8/8/8/8/4K3 w KQ - 0 1")
	if _, err := Apply(b, board.NewMove(board.E1, board.G1, board.Castling)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Apply(e1g1) without a rook: error = %v", err)
	}
}

func TestEnPassantNeedsPushedPawn(t *testing.T) {
	b := board.MustParseFEN("4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1")
	ml, err := LegalMoves(&b)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range ml.Slice() {
		if m.Type() == board.EnPassant || m.To() == board.E6 {
			t.Errorf("capture onto an unbacked en passant square: %s", m)
		}
	}
	if ml.Len() != 6 {
		t.Errorf("moves = %d, want 6", ml.Len())
	}
}

func TestGuardRecoversPanics(t *testing.T) {
	err := guard(func() { panic("bad board") })
	if !errors.Is(err, ErrUnplayable) {
		t.Errorf("guard error = %v", err)
	}
	if err := guard(func() {}); err != nil {
		t.Errorf("guard(no panic) = %v", err)
	}
}
