// Package diagram draws board positions as SVG documents and raster images.
//
// SVG output comes from svgo. Raster output goes through oksvg and rasterx,
// which ignore <text>, so piece letters are drawn afterwards with an
// OpenType face.
package diagram

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// Theme defines the colors of a diagram.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	WhitePiece  color.RGBA
	BlackPiece  color.RGBA
	Outline     color.RGBA
}

// DefaultTheme returns the tan and brown board colors.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		WhitePiece:  color.RGBA{248, 248, 248, 255},
		BlackPiece:  color.RGBA{40, 44, 52, 255},
		Outline:     color.RGBA{20, 20, 20, 255},
	}
}

// SquareColor returns the fill for sq; a1 is dark.
func (t Theme) SquareColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return t.DarkSquare
	}
	return t.LightSquare
}

// pieceColors returns the disc fill and the letter color for p.
func (t Theme) pieceColors(p board.Piece) (fill, ink color.RGBA) {
	if p.Color() == board.White {
		return t.WhitePiece, t.BlackPiece
	}
	return t.BlackPiece, t.WhitePiece
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// letter is the glyph drawn on a piece disc: the piece type in upper case.
func letter(p board.Piece) string {
	return strings.ToUpper(string(p.Type().Char()))
}
