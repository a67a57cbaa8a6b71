package repository

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Record is a stored record in its serialized form: one JSON value per field name.
// Fields that are not touched by an update keep their exact stored bytes.
type Record map[string]json.RawMessage

// ID returns the record identifier, or "" when the record has none.
func (r Record) ID() string {
	return r.String("id")
}

// String decodes the named field as a string. Missing, null and non-string fields yield "".
func (r Record) String(field string) string {
	raw, ok := r[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Clone returns a copy of r that shares no field storage with it.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// merge overlays fields on top of r. The identifier and creation time are never replaced.
func (r Record) merge(fields Record) Record {
	out := r.Clone()
	patch := fields.Clone()
	delete(patch, "id")
	delete(patch, "createdAt")
	maps.Copy(out, patch)
	return out
}

// setJSON stores v under field.
func (r Record) setJSON(field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", field, err)
	}
	r[field] = raw
	return nil
}

// ToRecord converts a typed value into a Record.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to convert record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("record must be a JSON object, got %s", data)
	}
	return rec, nil
}

// FromRecord decodes a Record into a typed value.
func FromRecord[T any](rec Record) (T, error) {
	var v T
	data, err := json.Marshal(rec)
	if err != nil {
		return v, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode record %s: %w", rec.ID(), err)
	}
	return v, nil
}
