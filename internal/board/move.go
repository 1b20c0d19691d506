package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: move type tag (see MoveType)
type Move uint16

// MoveType is the 4-bit tag of a move. Bit 3 marks a promotion, bit 2 a
// capture; for promotions the low two bits select the piece.
type MoveType uint8

const (
	Normal                 MoveType = 0b0000
	DoublePush             MoveType = 0b0001
	Castling               MoveType = 0b0010
	Capture                MoveType = 0b0100
	EnPassant              MoveType = 0b0101
	PromotionKnight        MoveType = 0b1000
	PromotionBishop        MoveType = 0b1001
	PromotionRook          MoveType = 0b1010
	PromotionQueen         MoveType = 0b1011
	PromotionCaptureKnight MoveType = 0b1100
	PromotionCaptureBishop MoveType = 0b1101
	PromotionCaptureRook   MoveType = 0b1110
	PromotionCaptureQueen  MoveType = 0b1111

	// InvalidMoveType is reported for the three unused tag patterns.
	InvalidMoveType MoveType = 0xFF
)

const (
	captureFlag   MoveType = 0b0100
	promotionFlag MoveType = 0b1000
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// MoveTypeFromBits converts a raw 4-bit tag into a MoveType.
func MoveTypeFromBits(bits uint8) (MoveType, error) {
	switch mt := MoveType(bits); mt {
	case Normal, DoublePush, Castling, Capture, EnPassant,
		PromotionKnight, PromotionBishop, PromotionRook, PromotionQueen,
		PromotionCaptureKnight, PromotionCaptureBishop, PromotionCaptureRook, PromotionCaptureQueen:
		return mt, nil
	}
	return InvalidMoveType, fmt.Errorf("%w: %04b", ErrInvalidMoveType, bits)
}

// IsCapture returns true for captures, en passant and capturing promotions.
func (mt MoveType) IsCapture() bool {
	return mt != InvalidMoveType && mt&captureFlag != 0
}

// IsPromotion returns true for the eight promotion tags.
func (mt MoveType) IsPromotion() bool {
	return mt != InvalidMoveType && mt&promotionFlag != 0
}

// PromotionType returns the promoted piece type, or NoPieceType.
func (mt MoveType) PromotionType() PieceType {
	if !mt.IsPromotion() {
		return NoPieceType
	}
	return Knight + PieceType(mt&0b11)
}

var moveTypeNames = map[MoveType]string{
	Normal:                 "Normal",
	DoublePush:             "DoublePush",
	Castling:               "Castling",
	Capture:                "Capture",
	EnPassant:              "EnPassant",
	PromotionKnight:        "PromotionKnight",
	PromotionBishop:        "PromotionBishop",
	PromotionRook:          "PromotionRook",
	PromotionQueen:         "PromotionQueen",
	PromotionCaptureKnight: "PromotionCaptureKnight",
	PromotionCaptureBishop: "PromotionCaptureBishop",
	PromotionCaptureRook:   "PromotionCaptureRook",
	PromotionCaptureQueen:  "PromotionCaptureQueen",
}

func (mt MoveType) String() string {
	if name, ok := moveTypeNames[mt]; ok {
		return name
	}
	return "Invalid"
}

// NewMove packs a move. from and to must be real squares (0-63) and mt one
// of the 13 defined tags; nothing is validated, and InvalidMoveType packs
// as PromotionCaptureQueen.
func NewMove(from, to Square, mt MoveType) Move {
	return Move(from)&0x3F | (Move(to)&0x3F)<<6 | Move(mt&0xF)<<12
}

// MoveFromRaw checks a packed word read from outside the process.
func MoveFromRaw(raw uint16) (Move, error) {
	if _, err := MoveTypeFromBits(uint8(raw >> 12)); err != nil {
		return NoMove, err
	}
	return Move(raw), nil
}

// Raw returns the packed 16-bit word.
func (m Move) Raw() uint16 {
	return uint16(m)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Type returns the move tag, or InvalidMoveType for an unused pattern.
func (m Move) Type() MoveType {
	mt, err := MoveTypeFromBits(uint8(m >> 12))
	if err != nil {
		return InvalidMoveType
	}
	return mt
}

// IsCapture returns true if the tag marks a capture.
func (m Move) IsCapture() bool {
	return m.Type().IsCapture()
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Type().IsPromotion()
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Type() == Castling
}

// Promotion returns the promoted piece in White; the mover's color comes
// from the board.
func (m Move) Promotion() (Piece, bool) {
	pt := m.Type().PromotionType()
	if pt == NoPieceType {
		return NoPiece, false
	}
	return NewPiece(pt, White), true
}

// CastlingRookSquares returns where the rook starts and lands for a castling
// move, keyed by the king's destination. Any other destination yields
// (NoSquare, NoSquare).
func (m Move) CastlingRookSquares() (from, to Square) {
	switch m.To() {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	return NoSquare, NoSquare
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if pt := m.Type().PromotionType(); pt != NoPieceType {
		s += string(pt.Char())
	}

	return s
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
