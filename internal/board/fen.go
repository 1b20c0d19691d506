package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Diagnostic reports input that ParseFEN skipped without failing.
type Diagnostic struct {
	Field  string // FEN field name, e.g. "castling"
	Offset int    // byte offset within the field, -1 for a whole field
	Text   string // offending input
	Reason string
}

func (d Diagnostic) String() string {
	if d.Offset < 0 {
		return fmt.Sprintf("%s: %q %s", d.Field, d.Text, d.Reason)
	}
	return fmt.Sprintf("%s[%d]: %q %s", d.Field, d.Offset, d.Text, d.Reason)
}

// ParseFEN parses a FEN string with 4 to 6 fields.
//
// An unknown placement character, a malformed rank or an active color
// other than "w"/"b" fails the whole parse. A bad en passant square becomes
// NoSquare and bad move counters fall back to 0 and 1. Unknown castling
// characters are skipped and reported as diagnostics. On a hard failure
// the returned board is EmptyBoard().
func ParseFEN(fen string) (Board, []Diagnostic, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return EmptyBoard(), nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := EmptyBoard()
	var diags []Diagnostic

	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return EmptyBoard(), nil, err
	}

	side, err := ParseColor(parts[1])
	if err != nil {
		return EmptyBoard(), nil, err
	}
	b.sideToMove = side

	diags = append(diags, parseCastlingRights(&b, parts[2])...)

	b.enPassant = ParseSquare(parts[3])

	if len(parts) > 4 {
		if n, err := strconv.ParseUint(parts[4], 10, 0); err == nil {
			b.halfMoveClock = uint(n)
		}
	}
	if len(parts) > 5 {
		if n, err := strconv.ParseUint(parts[5], 10, 0); err == nil {
			b.fullMoveNumber = uint(n)
		}
	}
	for i := 6; i < len(parts); i++ {
		diags = append(diags, Diagnostic{Field: "trailing", Offset: -1, Text: parts[i], Reason: "ignored"})
	}

	return b, diags, nil
}

// MustParseFEN is like ParseFEN but panics on a hard failure.
func MustParseFEN(fen string) Board {
	b, _, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// FEN lists rank 8 first while a1 is square 0, so ranks are inverted.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidPlacement, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidPlacement, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece, ok := PieceFromChar(c)
			if !ok {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidPlacement, c)
			}
			b.AddPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d covers %d squares", ErrInvalidPlacement, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(b *Board, castling string) []Diagnostic {
	var diags []Diagnostic
	for i := 0; i < len(castling); i++ {
		c := castling[i]
		if c == '-' {
			continue
		}
		right, ok := CastlingFromChar(c)
		if !ok {
			diags = append(diags, Diagnostic{
				Field:  "castling",
				Offset: i,
				Text:   string(c),
				Reason: "is not a castling right",
			})
			continue
		}
		b.castlingRights.Add(right)
	}
	return diags
}

// FEN returns the FEN representation of the position.
func (b Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			c, ok := b.pieces[NewSquare(file, rank)].Char()
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(b.sideToMove.Char())

	sb.WriteByte(' ')
	sb.WriteString(b.castlingRights.String())

	// Square.String renders NoSquare as "-".
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(b.halfMoveClock), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(b.fullMoveNumber), 10))

	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using FEN.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.FEN()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Diagnostics are
// dropped; use ParseFEN to see them.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, _, err := ParseFEN(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
