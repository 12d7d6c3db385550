package badger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ruvnet/arcadia-goap/domain/cache"
)

// Cache is a BadgerDB-backed implementation of cache.Cache. Unlike the
// in-memory cache it keeps computed plans across process restarts, so an
// agent resumes with a warm cache. Expiration uses BadgerDB's native TTL.
type Cache struct {
	db        *badger.DB
	keyPrefix string
	hits      atomic.Int64
	misses    atomic.Int64
	gcStop    chan struct{}
	gcWg      sync.WaitGroup
}

// NewCache creates a new BadgerDB cache with the given configuration.
func NewCache(cfg Config, opts ...Option) (*Cache, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
		gcStop:    make(chan struct{}),
	}

	if cfg.GCInterval > 0 && !cfg.InMemory {
		c.startGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return c, nil
}

// NewCacheFromDB creates a cache from an existing BadgerDB database.
func NewCacheFromDB(db *badger.DB, keyPrefix string) *Cache {
	return &Cache{
		db:        db,
		keyPrefix: keyPrefix,
		gcStop:    make(chan struct{}),
	}
}

// startGC runs value log garbage collection until the cache closes.
func (c *Cache) startGC(interval time.Duration, discardRatio float64) {
	c.gcWg.Add(1)
	go func() {
		defer c.gcWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.gcStop:
				return
			case <-ticker.C:
				for {
					if err := c.db.RunValueLogGC(discardRatio); err != nil {
						break
					}
				}
			}
		}
	}()
}

// prefixKey adds the key prefix and cache namespace.
func (c *Cache) prefixKey(key string) []byte {
	return []byte(c.keyPrefix + "cache:" + key)
}

// Get retrieves a value from the cache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	prefixedKey := c.prefixKey(key)
	var value []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefixedKey)
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	c.hits.Add(1)
	return value, true, nil
}

// Set stores a value in the cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if key == "" {
		return cache.ErrInvalidKey
	}

	prefixedKey := c.prefixKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(prefixedKey, value)
		if opts.TTL > 0 {
			e = e.WithTTL(opts.TTL)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefixedKey := c.prefixKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(prefixedKey)
	})
}

// Exists checks if a key exists in the cache.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prefixedKey := c.prefixKey(key)

	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(prefixedKey)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Clear removes all entries with the cache prefix.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.DropPrefix([]byte(c.keyPrefix + "cache:"))
}

// Stats returns cache statistics. Size counts live keys, which requires a
// full prefix scan.
func (c *Cache) Stats() cache.Stats {
	var size int64

	_ = c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(c.keyPrefix + "cache:")

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			size++
		}
		return nil
	})

	return cache.Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}

// Close stops garbage collection and closes the database.
func (c *Cache) Close() error {
	close(c.gcStop)
	c.gcWg.Wait()

	return c.db.Close()
}

// DB returns the underlying BadgerDB database.
func (c *Cache) DB() *badger.DB {
	return c.db
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
