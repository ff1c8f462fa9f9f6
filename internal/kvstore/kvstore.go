// Package kvstore provides the bucketed key-value store handle that the
// host passes through to module configuration construction. Values are
// opaque bytes; callers decide on encoding.
package kvstore

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a badger-backed key-value store with bucket/key composite keys.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	opts := badger.DefaultOptions(path)
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores value under bucket/key.
func (s *Store) Put(bucket, key string, value []byte) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("bucket and key are required")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(bucket, key), value)
	})
}

// Get returns the value stored under bucket/key, or ErrNotFound.
func (s *Store) Get(bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeKey(bucket, key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes bucket/key. Deleting a missing key is not an error.
func (s *Store) Delete(bucket, key string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("bucket and key are required")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(makeKey(bucket, key))
	})
}

// ForEach iterates all keys in a bucket in key order.
func (s *Store) ForEach(bucket string, fn func(key, value []byte) error) error {
	if bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	prefix := []byte(bucket + "/")
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.Key()
			key := string(k[len(prefix):])
			if err := item.Value(func(val []byte) error {
				return fn([]byte(key), val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func makeKey(bucket, key string) []byte {
	return []byte(filepath.ToSlash(bucket + "/" + key))
}
