// Command fentool parses, normalizes and exports FEN positions.
//
// Usage:
//
//	fentool [flags] [FEN ...]
//
// With no FEN arguments, positions are read one per line from standard
// input. Each is printed in canonical form along with any diagnostics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/logging"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	verbosity  = flag.Int("v", 0, "log verbosity (overridden by "+logging.VerbosityEnv+")")

	moves   = flag.Bool("moves", false, "list legal moves")
	svgPath = flag.String("svg", "", "write an SVG diagram to this file")
	pngPath = flag.String("png", "", "write a PNG diagram to this file")
	size    = flag.Int("size", 400, "diagram size in pixels")

	saveName   = flag.String("save", "", "save positions in the store under this name")
	loadName   = flag.String("load", "", "report the stored position with this name")
	deleteName = flag.String("delete", "", "delete the stored position with this name")
	lookup     = flag.Bool("lookup", false, "print the name each position is stored under")
	list       = flag.Bool("list", false, "list stored positions")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run does the work of main and returns the exit code, so deferred
// cleanup happens before the process exits.
func run() int {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	logger := logging.New(os.Stderr, "fentool", logging.Verbosity(*verbosity))

	t := &tool{
		opts: options{
			moves:    *moves,
			svgPath:  *svgPath,
			pngPath:  *pngPath,
			size:     *size,
			saveName: *saveName,
			lookup:   *lookup,
		},
		out:   os.Stdout,
		log:   logger,
		theme: diagram.DefaultTheme(),
	}

	needStore := *saveName != "" || *loadName != "" || *deleteName != "" || *lookup || *list
	if needStore {
		store, err := storage.OpenDefault(logger.WithName("storage"))
		if err != nil {
			logger.Error(err, "opening position store")
			return 1
		}
		defer store.Close()
		t.store = store
	}

	storeOnly := *loadName != "" || *deleteName != "" || *list
	code := 0

	if *deleteName != "" {
		if err := t.store.Delete(*deleteName); err != nil {
			fmt.Fprintf(os.Stderr, "delete: %v\n", err)
			code = 1
		}
	}
	if *loadName != "" {
		if err := t.load(*loadName); err != nil {
			fmt.Fprintf(os.Stderr, "load: %v\n", err)
			code = 1
		}
	}
	if *list {
		if err := t.list(); err != nil {
			fmt.Fprintf(os.Stderr, "list: %v\n", err)
			code = 1
		}
	}

	if storeOnly && flag.NArg() == 0 {
		return code
	}

	ins, err := readInputs(flag.Args(), os.Stdin)
	if err != nil {
		logger.Error(err, "reading input")
		return 1
	}
	if failed := t.run(ins); failed > 0 {
		logger.V(1).Info("done with failures", "failed", failed, "total", len(ins))
		code = 1
	}
	return code
}
