package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
)

// ErrInvalidImport is returned when an import payload does not have the export shape.
var ErrInvalidImport = errors.New("invalid import data")

// Export is the backup document holding every collection and the settings.
type Export struct {
	SPPD       []Record        `json:"sppd"`
	Lumpsum    []Record        `json:"lumpsum"`
	Kuitansi   []Record        `json:"kuitansi"`
	Settings   models.Settings `json:"settings"`
	ExportedAt time.Time       `json:"exportedAt"`
}

// Import is a parsed import payload. Nil fields leave the stored value untouched.
type Import struct {
	SPPD     []Record
	Lumpsum  []Record
	Kuitansi []Record
	Settings *models.Settings
}

// GetSettings returns the stored settings, or the defaults when none are stored
// or the stored value is unreadable.
func (r *Repository) GetSettings() models.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings()
}

func (r *Repository) settings() models.Settings {
	data, err := r.backend.Get(string(KeySettings))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("failed to read settings", "error", err)
		}
		return models.DefaultSettings()
	}

	var s models.Settings
	if err := json.Unmarshal(data, &s); err != nil || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		slog.Warn("stored settings are unreadable, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return s
}

// SaveSettings replaces the stored settings.
func (r *Repository) SaveSettings(s models.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.Put(string(KeySettings), data); err != nil {
		slog.Error("failed to save settings", "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// DefaultSettings returns the settings used when none are stored.
func (r *Repository) DefaultSettings() models.Settings {
	return models.DefaultSettings()
}

// ExportAll snapshots every collection and the settings.
func (r *Repository) ExportAll() Export {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Export{
		SPPD:       r.get(KeySPPD),
		Lumpsum:    r.get(KeyLumpsum),
		Kuitansi:   r.get(KeyKuitansi),
		Settings:   r.settings(),
		ExportedAt: r.now().UTC(),
	}
}

// ExportJSON returns the export document as indented JSON.
func (r *Repository) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.ExportAll(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ParseImport decodes an import payload. Absent and null fields are left nil.
// Any other field whose shape does not match the export document fails the
// whole payload with ErrInvalidImport.
func ParseImport(data []byte) (*Import, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrInvalidImport)
	}

	var in Import
	var err error
	if in.SPPD, err = parseCollection(doc, "sppd"); err != nil {
		return nil, err
	}
	if in.Lumpsum, err = parseCollection(doc, "lumpsum"); err != nil {
		return nil, err
	}
	if in.Kuitansi, err = parseCollection(doc, "kuitansi"); err != nil {
		return nil, err
	}

	if raw, ok := present(doc, "settings"); ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: settings must be an object", ErrInvalidImport)
		}
		var s models.Settings
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: settings: %v", ErrInvalidImport, err)
		}
		in.Settings = &s
	}
	return &in, nil
}

func present(doc map[string]json.RawMessage, field string) (json.RawMessage, bool) {
	raw, ok := doc[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func parseCollection(doc map[string]json.RawMessage, field string) ([]Record, error) {
	raw, ok := present(doc, field)
	if !ok {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s must be an array of objects", ErrInvalidImport, field)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ImportAll replaces every collection present in in. All writes land in one batch.
func (r *Repository) ImportAll(in Import) error {
	var ops []storage.Op
	collections := []struct {
		key     Key
		records []Record
	}{
		{KeySPPD, in.SPPD},
		{KeyLumpsum, in.Lumpsum},
		{KeyKuitansi, in.Kuitansi},
	}
	for _, c := range collections {
		if c.records == nil {
			continue
		}
		data, err := encodeRecords(c.records)
		if err != nil {
			return err
		}
		ops = append(ops, storage.Put(string(c.key), data))
	}
	if in.Settings != nil {
		data, err := json.Marshal(in.Settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		ops = append(ops, storage.Put(string(KeySettings), data))
	}
	if len(ops) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.Apply(ops...); err != nil {
		slog.Error("failed to import data", "error", err)
		return fmt.Errorf("failed to import data: %w", err)
	}
	return nil
}

// ImportJSON parses data and imports it.
func (r *Repository) ImportJSON(data []byte) error {
	in, err := ParseImport(data)
	if err != nil {
		return err
	}
	return r.ImportAll(*in)
}

// ClearAll removes every persisted key.
func (r *Repository) ClearAll() error {
	ops := make([]storage.Op, 0, len(Keys))
	for _, key := range Keys {
		ops = append(ops, storage.Remove(string(key)))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.Apply(ops...); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}

// GetStats summarizes the stored collections. Lumpsum totals that are not
// numeric count as zero.
func (r *Repository) GetStats() models.Stats {
	total := decimal.Zero
	for _, rec := range r.Get(KeyLumpsum) {
		var amount decimal.Decimal
		if err := json.Unmarshal(rec["total"], &amount); err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return models.Stats{
		TotalSPPD:     len(r.Get(KeySPPD)),
		TotalLumpsum:  total.InexactFloat64(),
		TotalKuitansi: len(r.Get(KeyKuitansi)),
	}
}
