package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openMemory(t)
	start := board.NewBoard()
	kiwi := board.MustParseFEN(kiwipete)

	if err := s.Save("start", start); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("kiwipete", kiwi); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Run("Load", func(t *testing.T) {
		b, rec, err := s.Load("kiwipete")
		if err != nil {
			t.Fatal(err)
		}
		if b != kiwi {
			t.Errorf("loaded board differs:\n%s", b)
		}
		if rec.Name != "kiwipete" || rec.FEN != kiwi.FEN() || rec.SavedAt.IsZero() {
			t.Errorf("record = %+v", rec)
		}
	})

	t.Run("LookupFEN", func(t *testing.T) {
		// Castling order and spacing differ from the stored canonical form.
		name, err := s.LookupFEN("  " + board.StartFEN + " ")
		if err != nil {
			t.Fatal(err)
		}
		if name != "start" {
			t.Errorf("LookupFEN = %q, want start", name)
		}
		if _, err := s.LookupFEN("8/8/8/8/8/8/8/8 w - - 0 1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("LookupFEN(empty board) error = %v", err)
		}
		if _, err := s.LookupFEN("not a fen"); !errors.Is(err, board.ErrInvalidFEN) {
			t.Errorf("LookupFEN(garbage) error = %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		recs, err := s.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 2 || recs[0].Name != "kiwipete" || recs[1].Name != "start" {
			t.Errorf("List = %+v", recs)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := s.Save("start", kiwi); err != nil {
			t.Fatal(err)
		}
		b, _, err := s.Load("start")
		if err != nil {
			t.Fatal(err)
		}
		if b != kiwi {
			t.Errorf("overwritten board not returned:\n%s", b)
		}
		if _, err := s.LookupFEN(board.StartFEN); !errors.Is(err, ErrNotFound) {
			t.Errorf("stale FEN index still resolves: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.Delete("kiwipete"); err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.Load("kiwipete"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load after Delete error = %v", err)
		}
		if err := s.Delete("kiwipete"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete error = %v", err)
		}
	})
}

func TestLookupFENAfterDeletingDuplicate(t *testing.T) {
	s := openMemory(t)
	kiwi := board.MustParseFEN(kiwipete)

	for _, name := range []string{"first", "second"} {
		if err := s.Save(name, kiwi); err != nil {
			t.Fatal(err)
		}
	}
	if name, err := s.LookupFEN(kiwipete); err != nil || name != "second" {
		t.Fatalf("LookupFEN = %q, %v; want second", name, err)
	}

	if err := s.Delete("second"); err != nil {
		t.Fatal(err)
	}
	if name, err := s.LookupFEN(kiwipete); err != nil || name != "first" {
		t.Errorf("LookupFEN after Delete = %q, %v; want first", name, err)
	}

	if err := s.Save("first", board.NewBoard()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LookupFEN(kiwipete); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookupFEN with no holder left error = %v", err)
	}
}

func TestLoadMissingReturnsEmptyBoard(t *testing.T) {
	s := openMemory(t)
	b, _, err := s.Load("nothing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v", err)
	}
	if b != board.EmptyBoard() {
		t.Errorf("Load on error returned\n%s", b)
	}
}

func TestSaveEmptyName(t *testing.T) {
	s := openMemory(t)
	if err := s.Save("", board.NewBoard()); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Save(\"\") error = %v", err)
	}
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("kiwipete", board.MustParseFEN(kiwipete)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	name, err := s.LookupFEN(kiwipete)
	if err != nil {
		t.Fatal(err)
	}
	if name != "kiwipete" {
		t.Errorf("LookupFEN after reopen = %q", name)
	}
}

func TestDataPaths(t *testing.T) {
	override := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, override)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != override {
		t.Errorf("GetDataDir = %q, want %q", dataDir, override)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
