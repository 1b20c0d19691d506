package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "fentool", 1)

	log.Info("parsed", "fen", "8/8/8/8/8/8/8/8 w - - 0 1")
	log.V(1).Info("detail")
	log.V(2).Info("hidden")

	out := buf.String()
	if !strings.Contains(out, "fentool") || !strings.Contains(out, "parsed") {
		t.Errorf("missing name or message in %q", out)
	}
	if !strings.Contains(out, "detail") {
		t.Errorf("V(1) message dropped: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("V(2) message logged at verbosity 1: %q", out)
	}
}

func TestVerbosityEnv(t *testing.T) {
	t.Setenv(VerbosityEnv, "")
	if v := Verbosity(3); v != 3 {
		t.Errorf("Verbosity(3) = %d with empty env", v)
	}
	t.Setenv(VerbosityEnv, "2")
	if v := Verbosity(0); v != 2 {
		t.Errorf("Verbosity(0) = %d, want 2", v)
	}
	t.Setenv(VerbosityEnv, "loud")
	if v := Verbosity(1); v != 1 {
		t.Errorf("Verbosity(1) = %d with bad env", v)
	}
}
