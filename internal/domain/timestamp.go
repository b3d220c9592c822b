package domain

import (
	"encoding/json"
	"time"
)

// Timestamp is an optional instant: either unset or a concrete time. It exists
// so that shift transitions (not started / started at t / ended at t) are
// exhaustive instead of leaning on pointer nil-ness. It serializes as an
// ISO-8601 string, or null when unset.
type Timestamp struct {
	t   time.Time
	set bool
}

// At returns a set Timestamp for t.
func At(t time.Time) Timestamp {
	return Timestamp{t: t, set: true}
}

// IsSet reports whether the timestamp holds a value.
func (ts Timestamp) IsSet() bool {
	return ts.set
}

// Time returns the held instant. Zero when unset.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Equal compares two timestamps, treating unset as equal only to unset.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.set != other.set {
		return false
	}
	return !ts.set || ts.t.Equal(other.t)
}

// MarshalJSON encodes the instant as RFC3339, or null when unset.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.set {
		return []byte("null"), nil
	}
	return json.Marshal(ts.t.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts null, an empty string, or an RFC3339 string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	*ts = Timestamp{t: parsed, set: true}
	return nil
}
