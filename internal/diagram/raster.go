package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chesscore/internal/board"
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Rasterize renders an SVG document into a width x height RGBA image with
// anti-aliasing. Text elements are not rendered.
func Rasterize(r io.Reader, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// BoardImage renders b as a square image whose side is size rounded down
// to a multiple of 8.
func BoardImage(b *board.Board, size int, theme Theme) (*image.RGBA, error) {
	var buf bytes.Buffer
	if err := WriteBoardSVG(&buf, b, size, theme); err != nil {
		return nil, err
	}
	sq := size / 8
	img, err := Rasterize(&buf, sq*8, sq*8)
	if err != nil {
		return nil, err
	}

	face, err := newFace(float64(sq) / 2)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	for s := board.A1; s <= board.H8; s++ {
		p := b.PieceAt(s)
		if p == board.NoPiece {
			continue
		}
		_, ink := theme.pieceColors(p)
		cx := s.File()*sq + sq/2
		cy := (7-s.Rank())*sq + sq/2
		drawGlyph(img, face, letter(p), cx, cy, ink)
	}
	return img, nil
}

// PieceImage renders a single piece on a transparent size x size image.
func PieceImage(p board.Piece, size int, theme Theme) (*image.RGBA, error) {
	var buf bytes.Buffer
	if err := WritePieceSVG(&buf, p, size, theme); err != nil {
		return nil, err
	}
	img, err := Rasterize(&buf, size, size)
	if err != nil {
		return nil, err
	}

	face, err := newFace(float64(size) / 2)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	_, ink := theme.pieceColors(p)
	drawGlyph(img, face, letter(p), size/2, size/2, ink)
	return img, nil
}

func newFace(size float64) (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("parsing Go font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawGlyph draws s centered on (cx, cy).
func drawGlyph(dst draw.Image, face font.Face, s string, cx, cy int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s)
	capHeight := face.Metrics().CapHeight
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - width/2,
		Y: fixed.I(cy) + capHeight/2,
	}
	d.DrawString(s)
}

// Scale resamples src to width x height with Catmull-Rom filtering.
func Scale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
