// Package ui implements a position viewer using Ebitengine.
package ui

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/rules"
	"github.com/hailam/chesscore/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// Entry is one position in the viewer.
type Entry struct {
	Label       string
	Board       board.Board
	Diagnostics []board.Diagnostic
}

// Viewer implements ebiten.Game. It steps through a list of positions and
// lets the user play legal moves on the one shown.
type Viewer struct {
	entries []Entry
	index   int
	flipped bool

	selected board.Square
	targets  *board.MoveList
	lastMove board.Move
	status   string

	store *storage.Store // may be nil
	log   logr.Logger

	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	scale float64
}

// NewViewer creates a viewer for entries. store may be nil, in which case
// saving is disabled.
func NewViewer(entries []Entry, store *storage.Store, log logr.Logger) (*Viewer, error) {
	if len(entries) == 0 {
		return nil, errors.New("no positions to show")
	}
	r := NewRenderer(BoardSize, SquareSize, log)
	return &Viewer{
		entries:  entries,
		selected: board.NoSquare,
		store:    store,
		log:      log,
		renderer: r,
		input:    NewInputHandler(),
		panel:    NewPanel(BoardSize, PanelWidth, r.Theme()),
		scale:    1.0,
	}, nil
}

func (v *Viewer) current() *Entry {
	return &v.entries[v.index]
}

// Update handles keyboard and mouse input.
func (v *Viewer) Update() error {
	v.input.Update()

	switch {
	case IsKeyJustPressed(ebiten.KeyArrowRight):
		v.step(1)
	case IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.step(-1)
	case IsKeyJustPressed(ebiten.KeyF):
		v.flipped = !v.flipped
		v.renderer.SetFlipped(v.flipped)
	case IsKeyJustPressed(ebiten.KeyS):
		v.save()
	case IsKeyJustPressed(ebiten.KeyEscape):
		v.clearSelection()
	}

	if v.input.IsLeftJustPressed() {
		v.handleClick(v.input.MousePosition())
	}
	return nil
}

// step moves through the list with wrap-around.
func (v *Viewer) step(delta int) {
	n := len(v.entries)
	v.index = ((v.index+delta)%n + n) % n
	v.lastMove = board.NoMove
	v.status = ""
	v.clearSelection()
}

func (v *Viewer) clearSelection() {
	v.selected = board.NoSquare
	v.targets = nil
}

func (v *Viewer) handleClick(x, y int) {
	sq := v.renderer.ScreenToSquare(x, y)
	if sq == board.NoSquare {
		return
	}
	e := v.current()

	if v.selected != board.NoSquare && v.targets != nil {
		for _, m := range v.targets.Slice() {
			if m.To() != sq {
				continue
			}
			// Promotions always become queens from the board.
			if m.IsPromotion() && m.Type().PromotionType() != board.Queen {
				continue
			}
			v.play(m)
			return
		}
	}

	p := e.Board.PieceAt(sq)
	if p == board.NoPiece || p.Color() != e.Board.SideToMove() {
		v.clearSelection()
		return
	}
	v.selected = sq
	v.targets = v.legalMovesFrom(sq)
}

func (v *Viewer) legalMovesFrom(sq board.Square) *board.MoveList {
	e := v.current()
	all, err := rules.LegalMoves(&e.Board)
	if err != nil {
		v.status = err.Error()
		return nil
	}
	from := &board.MoveList{}
	for _, m := range all.Slice() {
		if m.From() == sq {
			from.Add(m)
		}
	}
	return from
}

func (v *Viewer) play(m board.Move) {
	e := v.current()
	next, err := rules.Apply(e.Board, m)
	if err != nil {
		v.status = err.Error()
		v.log.Error(err, "applying move", "move", m.String(), "fen", e.Board.FEN())
		return
	}
	v.log.V(1).Info("played", "move", m.String(), "type", m.Type().String(), "fen", next.FEN())
	e.Board = next
	e.Diagnostics = nil
	v.lastMove = m
	v.status = ""
	v.clearSelection()
}

func (v *Viewer) save() {
	if v.store == nil {
		v.status = "no position store open"
		return
	}
	e := v.current()
	if err := v.store.Save(e.Label, e.Board); err != nil {
		v.status = err.Error()
		v.log.Error(err, "saving position", "name", e.Label)
		return
	}
	v.status = fmt.Sprintf("saved as %q", e.Label)
}

// Draw renders the board and the side panel.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.renderer.SetScale(v.scale)
	v.panel.SetScale(v.scale)

	screen.Fill(v.renderer.Theme().Background)

	e := v.current()
	v.renderer.DrawBoard(screen)
	v.renderer.DrawHighlights(screen, &e.Board, v.selected, v.targets, v.lastMove)
	v.renderer.DrawPieces(screen, &e.Board)
	v.panel.Draw(screen, e, v.index, len(v.entries), v.status)
}

// Layout returns the screen size in device pixels.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.scale = ebiten.Monitor().DeviceScaleFactor()
	if v.scale < 1.0 {
		v.scale = 1.0
	}
	v.input.SetScale(v.scale)
	return int(float64(ScreenWidth) * v.scale), int(float64(ScreenHeight) * v.scale)
}
