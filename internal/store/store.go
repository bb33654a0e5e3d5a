// Package store caches finished alignment results in BadgerDB so that an
// interrupted batch can resume without recomputing items.
//
// Keys are "result/<solver>/<fingerprint>/<id>"; the fingerprint hashes the
// scores and the target, so a changed input never hits a stale entry.
// Values are JSON-encoded align.Result records.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/duralign/align"
)

// ErrPathRequired indicates a persistent store without a directory.
var ErrPathRequired = errors.New("store: path is required for persistent database")

// Config holds configuration for a Store.
type Config struct {
	// Dir is the directory for BadgerDB files. Ignored when InMemory is true.
	Dir string

	// InMemory enables in-memory mode (no disk persistence).
	InMemory bool

	// Logger receives BadgerDB's internal logs. If nil they are discarded.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a result cache. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the cache described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, ErrPathRequired
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: create database directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key identifies one cached result.
type Key struct {
	ID          string
	Solver      string
	Fingerprint uint64
}

func (k Key) bytes() []byte {
	return []byte(fmt.Sprintf("result/%s/%016x/%s", k.Solver, k.Fingerprint, k.ID))
}

// KeyFor builds the cache key of item under solver.
func KeyFor(item align.Item, solver align.Solver) Key {
	return Key{ID: item.ID, Solver: solver.String(), Fingerprint: Fingerprint(item)}
}

// Fingerprint hashes the shape, scores and target of item with xxHash64.
func Fingerprint(item align.Item) uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	if item.Scores != nil {
		put(uint64(item.Scores.Rows()))
		put(uint64(item.Scores.Cols()))
		for i := 0; i < item.Scores.Rows(); i++ {
			row, _ := item.Scores.Row(i)
			for _, v := range row {
				put(math.Float64bits(v))
			}
		}
	}
	put(uint64(len(item.Target)))
	for _, sym := range item.Target {
		put(uint64(int64(sym)))
	}

	return h.Sum64()
}

// Get returns the cached result for k. ok is false on a miss.
func (s *Store) Get(k Key) (res *align.Result, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k.bytes())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			res = new(align.Result)
			if err := json.Unmarshal(val, res); err != nil {
				return fmt.Errorf("store: decode %s: %w", k.ID, err)
			}
			ok = true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}

	return res, ok, nil
}

// Put stores res under k, replacing any previous value.
func (s *Store) Put(k Key, res *align.Result) error {
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", k.ID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k.bytes(), val)
	})
}

// Len counts cached results.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("result/")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})

	return n, err
}
