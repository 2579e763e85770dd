package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TrackingData is free-form carrier metadata stored as JSON text.
// A nil map means no tracking metadata was recorded.
type TrackingData map[string]any

// Value serializes the map for the tracking_data column.
func (t TrackingData) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]any(t))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return string(b), nil
}

// Scan reads the tracking_data column back into a map.
func (t *TrackingData) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrSerialization, src)
	}

	if strings.TrimSpace(raw) == "" {
		*t = nil
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	*t = m
	return nil
}

// Clone returns a deep copy made through a JSON round trip, so the copy
// shares no nested maps or slices with t.
func (t TrackingData) Clone() TrackingData {
	if t == nil {
		return nil
	}
	b, err := json.Marshal(map[string]any(t))
	if err != nil {
		return t
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return t
	}
	return m
}

// Check reports whether the map can be persisted.
func (t TrackingData) Check() error {
	_, err := t.Value()
	return err
}
