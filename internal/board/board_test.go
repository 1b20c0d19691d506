package board

import (
	"strings"
	"testing"
)

func TestEmptyBoard(t *testing.T) {
	b := EmptyBoard()
	if b.Occupied() != Empty {
		t.Error("empty board has pieces")
	}
	for sq := A1; sq <= H8; sq++ {
		if b.PieceAt(sq) != NoPiece {
			t.Fatalf("%s holds %s", sq, b.PieceAt(sq))
		}
	}
	if b.FEN() != "8/8/8/8/8/8/8/8 w - - 0 1" {
		t.Errorf("FEN() = %q", b.FEN())
	}
	if err := b.Validate(); err != nil {
		t.Error(err)
	}
}

func TestAddPieceKeepsViewsInStep(t *testing.T) {
	b := EmptyBoard()
	b.AddPiece(WhiteRook, A1)
	b.AddPiece(BlackKnight, G8)
	b.AddPiece(WhiteKing, E1)

	if b.PieceAt(A1) != WhiteRook || !b.PieceBitboard(WhiteRook).Has(A1) || !b.ColorBitboard(White).Has(A1) {
		t.Error("a1 rook not in every view")
	}
	if !b.ColorBitboard(Black).Has(G8) || b.ColorBitboard(White).Has(G8) {
		t.Error("g8 knight color bitboards wrong")
	}
	if b.KingSquare(White) != E1 || b.KingSquare(Black) != NoSquare {
		t.Errorf("KingSquare = %s/%s", b.KingSquare(White), b.KingSquare(Black))
	}

	// Replacing an occupant takes it out of its old bitboards.
	b.AddPiece(BlackQueen, A1)
	if b.PieceBitboard(WhiteRook).Has(A1) || b.ColorBitboard(White).Has(A1) {
		t.Error("replaced rook left behind in bitboards")
	}
	if b.PieceAt(A1) != BlackQueen || !b.ColorBitboard(Black).Has(A1) {
		t.Error("queen not placed")
	}
	if b.Occupied().PopCount() != 3 {
		t.Errorf("occupied = %d squares, want 3", b.Occupied().PopCount())
	}

	b.AddPiece(NoPiece, B2)
	b.AddPiece(WhitePawn, NoSquare)
	if b.Occupied().PopCount() != 3 {
		t.Error("NoPiece/NoSquare placement changed the board")
	}
	if err := b.Validate(); err != nil {
		t.Error(err)
	}
}

func TestBoardPlacementRoundTrip(t *testing.T) {
	b := EmptyBoard()
	for i, p := range realPieces {
		b.AddPiece(p, Square(i*5))
	}
	b.SetSideToMove(Black)
	b.SetCastlingRights(WhiteQueenSideCastle | BlackKingSideCastle)
	b.SetEnPassant(D3)
	b.SetMoveCounters(7, 31)

	parsed, diags, err := ParseFEN(b.FEN())
	if err != nil || len(diags) != 0 {
		t.Fatalf("ParseFEN(%q) = %v, %v", b.FEN(), diags, err)
	}
	if parsed != b {
		t.Errorf("round trip mismatch:\n%s\n%s", b, parsed)
	}
}

func TestBoardCopyIsSnapshot(t *testing.T) {
	orig := NewBoard()
	snapshot := orig
	snapshot.AddPiece(WhiteQueen, E4)
	snapshot.SetSideToMove(Black)

	if orig.PieceAt(E4) != NoPiece || orig.SideToMove() != White {
		t.Error("mutating a copy changed the original")
	}
	if orig == snapshot {
		t.Error("copies should differ after mutation")
	}
	if orig != NewBoard() {
		t.Error("original no longer equals the starting position")
	}
}

func TestBoardSetters(t *testing.T) {
	b := EmptyBoard()
	b.SetEnPassant(Square(99))
	if b.EnPassant() != NoSquare {
		t.Errorf("SetEnPassant(99) = %s", b.EnPassant())
	}
	b.SetCastlingRights(CastlingRights(0xFF))
	if b.CastlingRights() != AllCastling {
		t.Errorf("SetCastlingRights masked to %04b", b.CastlingRights())
	}
	if b.PieceBitboard(NoPiece) != Empty || b.PieceAt(NoSquare) != NoPiece {
		t.Error("sentinel lookups should be empty")
	}
}

func TestValidateDetectsDrift(t *testing.T) {
	b := NewBoard()
	b.pieceBB[WhitePawn].Remove(E2)
	if err := b.Validate(); err == nil {
		t.Error("Validate missed a piece bitboard drift")
	}

	b = NewBoard()
	b.colorBB[Black].Add(E4)
	if err := b.Validate(); err == nil {
		t.Error("Validate missed a color bitboard drift")
	}
}

func TestBoardString(t *testing.T) {
	s := NewBoard().String()
	if !strings.Contains(s, "8  r n b q k b n r") || !strings.Contains(s, "FEN: "+canonicalStart) {
		t.Errorf("String() = %s", s)
	}
}
