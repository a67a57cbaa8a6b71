// Package storage provides the local key-value backends the repository persists into.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned when a write would exceed the backend's size limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Op is a single write in a batch. A nil Value removes the key.
type Op struct {
	Key   string
	Value []byte
}

// Put returns an Op storing value under key.
func Put(key string, value []byte) Op { return Op{Key: key, Value: value} }

// Remove returns an Op deleting key.
func Remove(key string) Op { return Op{Key: key} }

// Backend is a string-keyed store of opaque values.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Apply performs all ops or none of them.
	Apply(ops ...Op) error

	// Close releases the backend's resources.
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindBolt   Kind = "bolt"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Open creates the backend of the given kind. path is ignored for memory backends and
// maxBytes is ignored for file backends.
func Open(kind Kind, path string, maxBytes int64) (Backend, error) {
	switch kind {
	case KindBolt, "":
		b, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMemory:
		return NewMemory(maxBytes), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
