// ABOUTME: Badger KV wrapper and snapshot key layout
// ABOUTME: Handles opening the local store at the XDG data path
package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
)

const (
	// AppName is the application name for the local data directory.
	AppName = "crmdeck"

	// Snapshot keys. Each store owns exactly one key and rewrites the whole
	// aggregate under it on every mutation.
	dataKey    = "crmdeck:data"
	sessionKey = "crmdeck:session"
	themeKey   = "crmdeck:theme"
)

// KV wraps the local badger database used for snapshot persistence.
type KV struct {
	db *badger.DB
}

// DataDir returns the directory holding the local store, honoring the
// CRMDECK_DATA_DIR override.
func DataDir() string {
	if dir := os.Getenv("CRMDECK_DATA_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, AppName)
}

// Open opens (or creates) the badger store at dir.
func Open(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &KV{db: db}, nil
}

// Close closes the underlying badger database.
func (kv *KV) Close() error {
	return kv.db.Close()
}

// Get retrieves a value by key. Returns (nil, nil) when the key is absent.
func (kv *KV) Get(key string) ([]byte, error) {
	var value []byte
	err := kv.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value under key.
func (kv *KV) Set(key string, value []byte) error {
	return kv.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes a key. Deleting an absent key is not an error.
func (kv *KV) Delete(key string) error {
	return kv.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
