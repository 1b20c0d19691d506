// chesscore viewer - browse and play through FEN positions with Ebitengine
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/logging"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/ui"
)

var (
	verbosity = flag.Int("v", 0, "log verbosity (overridden by "+logging.VerbosityEnv+")")
	useStore  = flag.Bool("store", false, "show saved positions and enable saving with S")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [FEN ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.New(os.Stderr, "viewer", logging.Verbosity(*verbosity))

	var entries []ui.Entry
	for i, fen := range flag.Args() {
		b, diags, err := board.ParseFEN(fen)
		if err != nil {
			logger.Error(err, "skipping position", "fen", fen)
			continue
		}
		for _, d := range diags {
			logger.Info("FEN diagnostic", "fen", fen, "diagnostic", d.String())
		}
		entries = append(entries, ui.Entry{Label: fmt.Sprintf("position-%d", i+1), Board: b, Diagnostics: diags})
	}

	var store *storage.Store
	if *useStore {
		var err error
		store, err = storage.OpenDefault(logger.WithName("storage"))
		if err != nil {
			log.Fatal("could not open position store: ", err)
		}
		defer store.Close()

		recs, err := store.List()
		if err != nil {
			log.Fatal("could not list saved positions: ", err)
		}
		for _, rec := range recs {
			b, _, err := store.Load(rec.Name)
			if err != nil {
				logger.Error(err, "skipping saved position", "name", rec.Name)
				continue
			}
			entries = append(entries, ui.Entry{Label: rec.Name, Board: b})
		}
	}

	if len(entries) == 0 {
		entries = append(entries, ui.Entry{Label: "start", Board: board.NewBoard()})
	}

	viewer, err := ui.NewViewer(entries, store, logger.WithName("ui"))
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("chesscore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		logger.Error(err, "viewer stopped")
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
