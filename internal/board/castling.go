package board

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	BlackKingSideCastle                             // k
	WhiteQueenSideCastle                            // Q
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | BlackKingSideCastle | WhiteQueenSideCastle | BlackQueenSideCastle
)

// castlingOrder is the FEN output order.
var castlingOrder = [4]struct {
	right CastlingRights
	char  byte
}{
	{WhiteKingSideCastle, 'K'},
	{BlackKingSideCastle, 'k'},
	{WhiteQueenSideCastle, 'Q'},
	{BlackQueenSideCastle, 'q'},
}

// CastlingFromChar maps one of K, k, Q, q to its right.
func CastlingFromChar(c byte) (CastlingRights, bool) {
	for _, e := range castlingOrder {
		if e.char == c {
			return e.right, true
		}
	}
	return NoCastling, false
}

// Has returns true if every right in r is present.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// Add sets the given rights.
func (cr *CastlingRights) Add(r CastlingRights) {
	*cr |= r & AllCastling
}

// Remove clears the given rights.
func (cr *CastlingRights) Remove(r CastlingRights) {
	*cr &^= r
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.Has(WhiteKingSideCastle)
		}
		return cr.Has(WhiteQueenSideCastle)
	}
	if kingSide {
		return cr.Has(BlackKingSideCastle)
	}
	return cr.Has(BlackQueenSideCastle)
}

// String returns the FEN castling rights string, always in K, k, Q, q order.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	buf := make([]byte, 0, 4)
	for _, e := range castlingOrder {
		if cr.Has(e.right) {
			buf = append(buf, e.char)
		}
	}
	return string(buf)
}
