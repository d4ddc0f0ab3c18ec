package landmarks

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/unmute-ai/signplay/sign"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache stores canonical frame sequences keyed by sign name. Loop-single
// playback refetches the same sign every iteration; the cache makes those
// refetches free.
type Cache interface {
	// Frames returns the cached sequence for a sign.
	//
	// Parameters:
	//   - signName: the canonical sign name
	//
	// Returns:
	//   - []sign.Frame: the cached frame sequence
	//   - error: ErrNotFound on a cache miss
	Frames(signName string) ([]sign.Frame, error)

	// Store caches the sequence for a sign, replacing any previous entry.
	//
	// Parameters:
	//   - signName: the canonical sign name
	//   - frames: the frame sequence to cache
	//
	// Returns:
	//   - error: an error if the write fails
	Store(signName string, frames []sign.Frame) error

	// Close flushes and closes the underlying store.
	Close() error
}

type cache struct {
	db *badger.DB

	inMemory bool
	ttl      time.Duration
}

var _ Cache = &cache{}

// NewCache opens a badger-backed frame cache in the given directory.
//
// Parameters:
//   - dir: the directory for the store's data files (ignored with WithInMemory)
//   - options: functional options for in-memory mode or entry TTL
//
// Returns:
//   - Cache: the opened cache
//   - error: an error if the store cannot be opened
func NewCache(dir string, options ...CacheBuilderOption) (Cache, error) {
	c := &cache{}
	for _, opt := range options {
		opt(c)
	}

	dbOpts := badger.DefaultOptions(dir).WithLogger(nil)
	if c.inMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("landmarks: open cache: %w", err)
	}
	c.db = db
	return c, nil
}

func cacheKey(signName string) []byte {
	return []byte("frames:" + signName)
}

func (c *cache) Frames(signName string) ([]sign.Frame, error) {
	var frames []sign.Frame
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(signName))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &frames)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("landmarks: read cache for %q: %w", signName, err)
	}
	return frames, nil
}

func (c *cache) Store(signName string, frames []sign.Frame) error {
	val, err := msgpack.Marshal(frames)
	if err != nil {
		return fmt.Errorf("landmarks: encode cache entry for %q: %w", signName, err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(signName), val)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (c *cache) Close() error {
	return c.db.Close()
}
