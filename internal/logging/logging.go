// Package logging builds the logr.Logger shared by the binaries and the
// position store.
package logging

import (
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// VerbosityEnv overrides the -v flag when set.
const VerbosityEnv = "CHESSCORE_VERBOSITY"

// New returns a logger writing to w through the stdlib log package.
// Messages at V(n) with n greater than verbosity are dropped.
func New(w io.Writer, name string, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(w, "", log.LstdFlags)).WithName(name)
}

// Verbosity resolves the effective verbosity: the environment wins over
// flagValue when it holds a valid integer.
func Verbosity(flagValue int) int {
	if s := os.Getenv(VerbosityEnv); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return flagValue
}

// Discard returns a logger that drops everything.
func Discard() logr.Logger {
	return logr.Discard()
}
