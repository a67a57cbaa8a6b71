package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BucketName is the bbolt bucket holding every key.
const BucketName = "sppd"

// Bolt represents the bbolt database wrapper.
type Bolt struct {
	db *bolt.DB
}

var _ Backend = (*Bolt)(nil)

// OpenBolt opens (or creates) the database file and initializes the bucket.
func OpenBolt(dbPath string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketName)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketName, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *Bolt) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketName)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}

		// Copy the value since it's only valid during the transaction.
		value = bytes.Clone(data)
		return nil
	})
	return value, err
}

// Put stores value under key.
func (s *Bolt) Put(key string, value []byte) error {
	return s.Apply(Put(key, value))
}

// Remove deletes key.
func (s *Bolt) Remove(key string) error {
	return s.Apply(Remove(key))
}

// Apply runs every op inside a single read-write transaction.
func (s *Bolt) Apply(ops ...Op) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketName)
		}

		for _, op := range ops {
			if op.Value == nil {
				if err := b.Delete([]byte(op.Key)); err != nil {
					return fmt.Errorf("failed to delete %s: %w", op.Key, err)
				}
				continue
			}
			if err := b.Put([]byte(op.Key), op.Value); err != nil {
				return fmt.Errorf("failed to put %s: %w", op.Key, err)
			}
		}
		return nil
	})
}

// Close closes the database.
func (s *Bolt) Close() error {
	return s.db.Close()
}
