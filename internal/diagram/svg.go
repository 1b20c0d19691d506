package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chesscore/internal/board"
)

// errWriter keeps the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// squareSize returns the side of one square for a board of size pixels.
func squareSize(size int) (int, error) {
	if size < 8 {
		return 0, fmt.Errorf("diagram size %d is smaller than 8", size)
	}
	return size / 8, nil
}

// WriteBoardSVG writes b as an SVG document with rank 1 at the bottom.
// The document is square with side size rounded down to a multiple of 8.
func WriteBoardSVG(w io.Writer, b *board.Board, size int, theme Theme) error {
	sq, err := squareSize(size)
	if err != nil {
		return err
	}
	side := sq * 8

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(side, side, 0, 0, side, side)
	for s := board.A1; s <= board.H8; s++ {
		x, y := s.File()*sq, (7-s.Rank())*sq
		canvas.Rect(x, y, sq, sq, fmt.Sprintf(`fill="%s"`, hex(theme.SquareColor(s))))
	}
	for s := board.A1; s <= board.H8; s++ {
		p := b.PieceAt(s)
		if p == board.NoPiece {
			continue
		}
		writeDisc(canvas, p, s.File()*sq, (7-s.Rank())*sq, sq, theme)
	}
	canvas.End()
	return ew.err
}

// WritePieceSVG writes a single piece disc on a transparent background.
func WritePieceSVG(w io.Writer, p board.Piece, size int, theme Theme) error {
	if p >= board.NoPiece {
		return fmt.Errorf("%w: %d", board.ErrPieceOutOfRange, uint8(p))
	}
	if size < 1 {
		return fmt.Errorf("diagram size %d is not positive", size)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(size, size, 0, 0, size, size)
	writeDisc(canvas, p, 0, 0, size, theme)
	canvas.End()
	return ew.err
}

// writeDisc draws p as an outlined disc with its letter inside the cell
// whose top-left corner is (x, y).
func writeDisc(canvas *svg.SVG, p board.Piece, x, y, cell int, theme Theme) {
	fill, ink := theme.pieceColors(p)
	stroke := max(cell/24, 1)
	cx, cy := x+cell/2, y+cell/2
	canvas.Circle(cx, cy, cell*2/5,
		fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%d"`, hex(fill), hex(theme.Outline), stroke))
	canvas.Text(cx, cy, letter(p),
		fmt.Sprintf(`fill="%s" font-family="Go, sans-serif" font-size="%d" text-anchor="middle" dominant-baseline="central"`,
			hex(ink), cell/2))
}
