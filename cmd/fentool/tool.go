package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/rules"
	"github.com/hailam/chesscore/internal/storage"
)

// options are the per-position actions selected on the command line.
type options struct {
	moves    bool
	svgPath  string
	pngPath  string
	size     int
	saveName string
	lookup   bool
}

// tool processes positions and writes a plain text report to out.
type tool struct {
	opts  options
	out   io.Writer
	store *storage.Store // nil unless an action needs it
	log   logr.Logger
	theme diagram.Theme
}

// input is one FEN to process with the name it came from.
type input struct {
	source string
	fen    string
}

// readInputs returns args as inputs or, with no args, one input per
// non-blank line of r.
func readInputs(args []string, r io.Reader) ([]input, error) {
	var ins []input
	if len(args) > 0 {
		for i, a := range args {
			ins = append(ins, input{source: fmt.Sprintf("arg %d", i+1), fen: a})
		}
		return ins, nil
	}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ins = append(ins, input{source: fmt.Sprintf("line %d", line), fen: text})
	}
	return ins, sc.Err()
}

// run processes every input and reports how many failed.
func (t *tool) run(ins []input) int {
	failed := 0
	for i, in := range ins {
		if err := t.process(in, i, len(ins)); err != nil {
			fmt.Fprintf(t.out, "%s: error: %v\n", in.source, err)
			t.log.V(1).Info("position failed", "source", in.source, "error", err.Error())
			failed++
		}
	}
	return failed
}

func (t *tool) process(in input, i, n int) error {
	b, diags, err := board.ParseFEN(in.fen)
	if err != nil {
		return err
	}
	return t.report(in.source, b, diags, i, n)
}

func (t *tool) report(source string, b board.Board, diags []board.Diagnostic, i, n int) error {
	fmt.Fprintf(t.out, "%s: %s\n", source, b.FEN())
	for _, d := range diags {
		fmt.Fprintf(t.out, "  note: %s\n", d)
	}

	if t.opts.moves {
		ml, err := rules.LegalMoves(&b)
		if err != nil {
			return err
		}
		uci := make([]string, 0, ml.Len())
		for _, m := range ml.Slice() {
			uci = append(uci, m.String())
		}
		slices.Sort(uci)
		fmt.Fprintf(t.out, "  moves (%d): %s\n", len(uci), strings.Join(uci, " "))
	}

	if t.opts.svgPath != "" {
		path := numbered(t.opts.svgPath, i, n)
		if err := writeFile(path, func(w io.Writer) error {
			return diagram.WriteBoardSVG(w, &b, t.opts.size, t.theme)
		}); err != nil {
			return err
		}
		fmt.Fprintf(t.out, "  svg: %s\n", path)
	}

	if t.opts.pngPath != "" {
		img, err := diagram.BoardImage(&b, t.opts.size, t.theme)
		if err != nil {
			return err
		}
		path := numbered(t.opts.pngPath, i, n)
		if err := writeFile(path, func(w io.Writer) error {
			return diagram.WritePNG(w, img)
		}); err != nil {
			return err
		}
		fmt.Fprintf(t.out, "  png: %s\n", path)
	}

	if t.opts.lookup {
		name, err := t.store.LookupFEN(b.FEN())
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintln(t.out, "  saved as: (none)")
		case err != nil:
			return err
		default:
			fmt.Fprintf(t.out, "  saved as: %s\n", name)
		}
	}

	if t.opts.saveName != "" {
		name := t.opts.saveName
		if n > 1 {
			name = fmt.Sprintf("%s-%d", name, i+1)
		}
		if err := t.store.Save(name, b); err != nil {
			return err
		}
		fmt.Fprintf(t.out, "  saved: %s\n", name)
	}
	return nil
}

// load reports a stored position as if it had been given on the command line.
func (t *tool) load(name string) error {
	b, rec, err := t.store.Load(name)
	if err != nil {
		return err
	}
	return t.report(rec.Name, b, nil, 0, 1)
}

// list prints every stored position followed by the store size.
func (t *tool) list() error {
	recs, err := t.store.List()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Fprintf(t.out, "%-20s %s  (saved %s)\n", rec.Name, rec.FEN, humanize.Time(rec.SavedAt))
	}
	lsm, vlog := t.store.Size()
	fmt.Fprintf(t.out, "%s positions, %s on disk\n",
		humanize.Comma(int64(len(recs))), humanize.Bytes(uint64(lsm+vlog)))
	return nil
}

// numbered inserts "-N" before the extension when several positions share
// one output path.
func numbered(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
