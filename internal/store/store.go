// Package store provides the persistent key-value state shared by the
// session config and the thumbnail cache.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSettings   = []byte("settings")
	bucketThumbnails = []byte("thumbnails")
)

// Store implements string get/set on top of BoltDB with a write-through
// memory cache. With an empty directory it runs memory-only, which the tests
// rely on.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex

	cache map[string]string
}

// Open opens (or creates) the store under dir. An empty dir selects
// memory-only mode with no persistence.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "romdeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSettings, bucketThumbnails} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string]string)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) get(bucket []byte, key string) (string, bool) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if v, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var value string
	var found bool
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})

	if !found {
		return "", false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = value
	s.mu.Unlock()

	return value, true
}

func (s *Store) set(bucket []byte, key, value string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = value
	s.mu.Unlock()

	if s.db == nil {
		return nil // memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), []byte(value))
	})
}

// GetSetting reads a persisted setting.
func (s *Store) GetSetting(key string) (string, bool) {
	return s.get(bucketSettings, key)
}

// SetSetting writes a persisted setting. Last writer wins; settings writes
// are user-driven and serial.
func (s *Store) SetSetting(key, value string) error {
	return s.set(bucketSettings, key, value)
}

// GetThumbnail reads a cached thumbnail URL.
func (s *Store) GetThumbnail(key string) (string, bool) {
	return s.get(bucketThumbnails, key)
}

// SetThumbnail writes a thumbnail URL. Keys are write-once in practice:
// derivation is pure, so recomputation always yields the same value.
func (s *Store) SetThumbnail(key, value string) error {
	return s.set(bucketThumbnails, key, value)
}
