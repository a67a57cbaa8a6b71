package repository

import "log/slog"

// Collection is a typed view of one stored collection.
type Collection[T any] struct {
	repo *Repository
	key  Key
}

// NewCollection returns the typed view of key.
func NewCollection[T any](repo *Repository, key Key) Collection[T] {
	return Collection[T]{repo: repo, key: key}
}

// Key returns the storage key of the collection.
func (c Collection[T]) Key() Key { return c.key }

// All returns every record that decodes into T, in insertion order.
func (c Collection[T]) All() []T {
	return decodeAll[T](c.key, c.repo.Get(c.key))
}

// Add stores item as a new record.
func (c Collection[T]) Add(item T) (*T, error) {
	rec, err := ToRecord(item)
	if err != nil {
		return nil, err
	}
	stored, err := c.repo.Add(c.key, rec)
	if err != nil {
		return nil, err
	}
	return decode[T](stored)
}

// Update applies patch, a struct whose non-nil fields are merged into the record.
// It returns nil without error when the id is unknown.
func (c Collection[T]) Update(id string, patch any) (*T, error) {
	fields, err := ToRecord(patch)
	if err != nil {
		return nil, err
	}
	stored, err := c.repo.Update(c.key, id, fields)
	if err != nil || stored == nil {
		return nil, err
	}
	return decode[T](stored)
}

// Delete removes the record with the given id.
func (c Collection[T]) Delete(id string) error {
	return c.repo.Delete(c.key, id)
}

// ByID returns the record with the given id, or nil.
func (c Collection[T]) ByID(id string) *T {
	rec := c.repo.GetByID(c.key, id)
	if rec == nil {
		return nil
	}
	v, err := decode[T](rec)
	if err != nil {
		slog.Error("failed to decode record", "key", c.key, "id", id, "error", err)
		return nil
	}
	return v
}

// Find returns the first record matching fn, or nil.
func (c Collection[T]) Find(fn func(T) bool) *T {
	for _, v := range c.All() {
		if fn(v) {
			return &v
		}
	}
	return nil
}

func decode[T any](rec Record) (*T, error) {
	v, err := FromRecord[T](rec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeAll[T any](key Key, records []Record) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := FromRecord[T](rec)
		if err != nil {
			slog.Error("skipping unreadable record", "key", key, "id", rec.ID(), "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
