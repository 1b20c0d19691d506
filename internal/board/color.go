package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// ColorFromIndex converts a raw ordinal into a Color.
func ColorFromIndex(i int) (Color, error) {
	if i != int(White) && i != int(Black) {
		return White, fmt.Errorf("%w: %d", ErrColorOutOfRange, i)
	}
	return Color(i), nil
}

// ParseColor parses the FEN active-color field.
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return White, fmt.Errorf("%w: %q", ErrInvalidActiveColor, s)
}

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Char returns the FEN character for the color.
func (c Color) Char() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}
