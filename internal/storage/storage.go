package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/go-logr/logr"

	"github.com/hailam/chesscore/internal/board"
)

// Storage key prefixes
const (
	prefixPosition = "pos/"
	prefixFEN      = "fen/"
)

var (
	ErrNotFound  = errors.New("position not found")
	ErrEmptyName = errors.New("position name is empty")
)

// Record is the stored form of a named position.
type Record struct {
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	SavedAt time.Time `json:"saved_at"`
}

// Options configures Open.
type Options struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool
	// CacheEntries bounds the parsed-board cache; 0 means 1024.
	CacheEntries int64
	Logger       logr.Logger
}

// Store wraps BadgerDB for named positions. Parsed boards are kept in a
// ristretto cache keyed by name.
type Store struct {
	db    *badger.DB
	cache *ristretto.Cache[string, board.Board]
	log   logr.Logger
}

// Open opens or creates a store.
func Open(opts Options) (*Store, error) {
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = 1024
	}

	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithLogger(badgerLogger{log: opts.Logger.WithName("badger")})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening position store: %w", err)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, board.Board]{
		NumCounters: opts.CacheEntries * 10,
		MaxCost:     opts.CacheEntries,
		BufferItems: 64,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating board cache: %w", err)
	}

	opts.Logger.V(1).Info("position store open", "dir", opts.Dir, "inMemory", opts.InMemory)
	return &Store{db: db, cache: cache, log: opts.Logger}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault(log logr.Logger) (*Store, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(Options{Dir: dir, Logger: log})
}

// Close closes the database
func (s *Store) Close() error {
	s.cache.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(name string) []byte {
	return []byte(prefixPosition + name)
}

// fenKey indexes a canonical FEN by its xxhash digest.
func fenKey(fen string) []byte {
	return fmt.Appendf(nil, "%s%016x", prefixFEN, xxhash.Sum64String(fen))
}

func getRecord(txn *badger.Txn, name string) (Record, error) {
	var rec Record
	item, err := txn.Get(positionKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return rec, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}

// releaseIndex detaches rec from the FEN index. If the index points at rec
// it is moved to another record holding the same FEN, or removed when none
// is left.
func releaseIndex(txn *badger.Txn, rec Record) error {
	key := fenKey(rec.FEN)
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	owner, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	if string(owner) != rec.Name {
		return nil
	}

	heir, err := findByFEN(txn, rec.FEN, rec.Name)
	if err != nil {
		return err
	}
	if heir == "" {
		return txn.Delete(key)
	}
	return txn.Set(key, []byte(heir))
}

// findByFEN returns the first record name other than skip whose FEN is fen,
// or "" if there is none.
func findByFEN(txn *badger.Txn, fen, skip string) (string, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(prefixPosition)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var rec Record
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return "", err
		}
		if rec.FEN == fen && rec.Name != skip {
			return rec.Name, nil
		}
	}
	return "", nil
}

// Save stores b under name, replacing any earlier position of that name.
func (s *Store) Save(name string, b board.Board) error {
	if name == "" {
		return ErrEmptyName
	}
	rec := Record{Name: name, FEN: b.FEN(), SavedAt: time.Now().UTC()}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		old, err := getRecord(txn, name)
		switch {
		case err == nil:
			if old.FEN != rec.FEN {
				if err := releaseIndex(txn, old); err != nil {
					return err
				}
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}
		if err := txn.Set(positionKey(name), data); err != nil {
			return err
		}
		return txn.Set(fenKey(rec.FEN), []byte(name))
	})
	if err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}

	s.cache.Set(name, b, 1)
	s.cache.Wait()
	s.log.V(1).Info("saved position", "name", name, "fen", rec.FEN)
	return nil
}

// Load returns the position stored under name along with its record.
func (s *Store) Load(name string) (board.Board, Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, name)
		return err
	})
	if err != nil {
		return board.EmptyBoard(), rec, err
	}

	if b, ok := s.cache.Get(name); ok && b.FEN() == rec.FEN {
		return b, rec, nil
	}

	b, diags, err := board.ParseFEN(rec.FEN)
	if err != nil {
		return board.EmptyBoard(), rec, fmt.Errorf("stored position %q: %w", name, err)
	}
	for _, d := range diags {
		s.log.Info("stored FEN diagnostic", "name", name, "diagnostic", d.String())
	}
	s.cache.Set(name, b, 1)
	return b, rec, nil
}

// LookupFEN returns the name a position was saved under. fen is
// canonicalized first, so castling order and spacing do not matter. When
// several names hold the same position, the most recently saved one is
// returned; deleting or overwriting it falls back to one of the others.
func (s *Store) LookupFEN(fen string) (string, error) {
	b, _, err := board.ParseFEN(fen)
	if err != nil {
		return "", err
	}
	canonical := b.FEN()

	var name string
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fenKey(canonical))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, canonical)
		}
		if err != nil {
			return err
		}
		owner, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		// Guard against digest collisions.
		rec, err := getRecord(txn, string(owner))
		if err != nil {
			return err
		}
		if rec.FEN != canonical {
			return fmt.Errorf("%w: %s", ErrNotFound, canonical)
		}
		name = rec.Name
		return nil
	})
	return name, err
}

// List returns all records ordered by name.
func (s *Store) List() ([]Record, error) {
	var recs []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixPosition)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				key := strings.TrimPrefix(string(it.Item().Key()), prefixPosition)
				return fmt.Errorf("decoding %q: %w", key, err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return recs, err
}

// Delete removes the position stored under name.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, name)
		if err != nil {
			return err
		}
		if err := releaseIndex(txn, rec); err != nil {
			return err
		}
		return txn.Delete(positionKey(name))
	})
	if err != nil {
		return err
	}
	s.cache.Del(name)
	return nil
}

// Size reports the on-disk LSM and value log sizes in bytes.
func (s *Store) Size() (lsm, vlog int64) {
	return s.db.Size()
}
