package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
//
// The set algebra is Go's own operators on the named type: & | ^ &^ and
// unary ^ for complement, << and >> for shifts, plus their compound
// assignment forms for in-place updates.
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA Bitboard = ^FileA
	NotFileH Bitboard = ^FileH
)

// FileMask returns the file mask for a given file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask returns the rank mask for a given rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// NewBitboard wraps a raw 64-bit value.
func NewBitboard(raw uint64) Bitboard {
	return Bitboard(raw)
}

// Add sets the bit for sq.
func (b *Bitboard) Add(sq Square) {
	*b |= sq.Bitboard()
}

// Remove clears the bit for sq.
func (b *Bitboard) Remove(sq Square) {
	*b &^= sq.Bitboard()
}

// Has returns true if the bit at the given square is set.
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bitboard() != 0
}

// HasAny returns true if any of the given squares is set.
func (b Bitboard) HasAny(squares ...Square) bool {
	for _, sq := range squares {
		if b.Has(sq) {
			return true
		}
	}
	return false
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// IsNotEmpty returns true if there are any bits set.
func (b Bitboard) IsNotEmpty() bool {
	return b != 0
}

// Shift shifts left for positive n and right for negative n.
func (b Bitboard) Shift(n int) Bitboard {
	if n >= 0 {
		return b << uint(n)
	}
	return b >> uint(-n)
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the most significant bit (highest square index).
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotFileA
}

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotFileH
}

// SquareIter walks the set squares of a private copy of a bitboard,
// lowest index first. It is one-shot.
type SquareIter struct {
	rest Bitboard
}

// Iter returns an iterator over the set squares.
func (b Bitboard) Iter() SquareIter {
	return SquareIter{rest: b}
}

// Next consumes and returns the next square.
func (it *SquareIter) Next() (Square, bool) {
	if it.rest == 0 {
		return NoSquare, false
	}
	return it.rest.PopLSB(), true
}

// Len returns the number of squares not yet consumed.
func (it *SquareIter) Len() int {
	return it.rest.PopCount()
}

// All yields each set square once, lowest index first.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		rest := b
		for rest != 0 {
			if !yield(rest.PopLSB()) {
				return
			}
		}
	}
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
