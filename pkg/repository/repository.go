// Package repository persists travel orders, lumpsum entries, receipts and settings
// into a storage.Backend.
//
// Storage faults never escape as panics: reads log the fault and return an empty
// collection (or default settings), writes report it as an error.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
)

// Key identifies a persisted collection.
type Key string

// Storage keys.
const (
	KeySPPD     Key = "sppd_data"
	KeyLumpsum  Key = "lumpsum_data"
	KeyKuitansi Key = "kuitansi_data"
	KeySettings Key = "app_settings"
)

// Keys lists every persisted key.
var Keys = []Key{KeySPPD, KeyLumpsum, KeyKuitansi, KeySettings}

// Repository is the single writer of the persisted records.
type Repository struct {
	backend storage.Backend
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces the clock used for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// New creates a Repository on top of backend.
func New(backend storage.Backend, opts ...Option) *Repository {
	r := &Repository{
		backend: backend,
		now:     time.Now,
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewID generates a record identifier: "id_" followed by a UUIDv7, whose leading
// bits are the creation time in milliseconds and whose tail is random.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "id_" + uuid.NewString()
	}
	return "id_" + id.String()
}

// Get returns the full collection stored under key in insertion order.
// A missing or unreadable collection yields an empty slice.
func (r *Repository) Get(key Key) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(key)
}

// Set overwrites the collection stored under key.
func (r *Repository) Set(key Key, records []Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set(key, records)
}

// Add assigns a new identifier and creation time to rec, appends it to the collection
// and returns the stored record.
func (r *Repository) Add(key Key, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := rec.Clone()
	if item == nil {
		item = Record{}
	}
	delete(item, "updatedAt")
	if err := item.setJSON("id", r.newID()); err != nil {
		return nil, err
	}
	if err := item.setJSON("createdAt", r.now().UTC()); err != nil {
		return nil, err
	}

	data := append(r.get(key), item)
	if err := r.set(key, data); err != nil {
		return nil, err
	}
	return item.Clone(), nil
}

// Update shallow-merges fields over the record with the given id and stamps updatedAt.
// It returns nil without error when no record has that id.
func (r *Repository) Update(key Key, id string, fields Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.get(key)
	index := slices.IndexFunc(data, func(rec Record) bool { return rec.ID() == id })
	if index == -1 {
		return nil, nil
	}

	merged := data[index].merge(fields)
	if err := merged.setJSON("updatedAt", r.now().UTC()); err != nil {
		return nil, err
	}
	data[index] = merged

	if err := r.set(key, data); err != nil {
		return nil, err
	}
	return merged.Clone(), nil
}

// Delete removes the record with the given id. Deleting an absent id succeeds.
func (r *Repository) Delete(key Key, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := slices.DeleteFunc(r.get(key), func(rec Record) bool { return rec.ID() == id })
	return r.set(key, filtered)
}

// GetByID returns the record with the given id, or nil.
func (r *Repository) GetByID(key Key, id string) Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.get(key) {
		if rec.ID() == id {
			return rec
		}
	}
	return nil
}

// get reads a collection. The caller holds r.mu.
func (r *Repository) get(key Key) []Record {
	data, err := r.backend.Get(string(key))
	if errors.Is(err, storage.ErrNotFound) {
		return []Record{}
	}
	if err != nil {
		slog.Error("failed to read collection", "key", key, "error", err)
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("failed to decode collection", "key", key, "error", err)
		return []Record{}
	}
	// A null element cannot be addressed by id; drop it.
	records = slices.DeleteFunc(records, func(rec Record) bool { return rec == nil })
	if records == nil {
		records = []Record{}
	}
	return records
}

// set writes a collection. The caller holds r.mu.
func (r *Repository) set(key Key, records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		slog.Error("failed to encode collection", "key", key, "error", err)
		return err
	}
	if err := r.backend.Put(string(key), data); err != nil {
		slog.Error("failed to save collection", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return data, nil
}
