// Package wirefmt carries the lenient decode types used at the API
// boundary. The CRM backend is inconsistent about encodings: dates
// arrive as epoch milliseconds or ISO strings, flags as 0/1 integers
// or booleans, numbers occasionally as strings. Each type here decodes
// every shape observed on the wire and re-encodes the canonical one,
// so decoding canonical output again is a no-op.
package wirefmt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Time accepts epoch-millisecond numbers, RFC3339 strings and a few
// legacy date layouts. The zero value reports !Valid.
type Time struct {
	T     time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON never fails on malformed input; it leaves the value unset.
func (t *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.T = parsed.UTC()
				t.Valid = true
				return nil
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.T = time.UnixMilli(ms).UTC()
			t.Valid = true
		}
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		t.T = time.UnixMilli(ms).UTC()
		t.Valid = true
	}
	return nil
}

// MarshalJSON emits the canonical RFC3339 string, or null when unset.
func (t Time) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.T.UTC().Format(time.RFC3339))
}

// Or returns the held time or the fallback when unset.
func (t Time) Or(fallback time.Time) time.Time {
	if t.Valid {
		return t.T
	}
	return fallback
}

// Bool accepts true/false, 0/1 integers and their string forms.
type Bool struct {
	B     bool
	Valid bool
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch {
	case bytes.Equal(data, []byte("true")):
		b.B, b.Valid = true, true
	case bytes.Equal(data, []byte("false")):
		b.B, b.Valid = false, true
	default:
		s := strings.Trim(string(data), `"`)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			b.B, b.Valid = n != 0, true
		}
	}
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(b.B)
}

// Float accepts JSON numbers and numeric strings.
type Float struct {
	F     float64
	Valid bool
}

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.F, f.Valid = v, true
	}
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.F)
}

// Or returns the held value or the fallback when unset.
func (f Float) Or(fallback float64) float64 {
	if f.Valid {
		return f.F
	}
	return fallback
}

// Int accepts JSON numbers and numeric strings, truncating floats.
type Int struct {
	N     int64
	Valid bool
}

func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		i.N, i.Valid = v, true
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		i.N, i.Valid = int64(v), true
	}
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.N)
}

// Or returns the held value or the fallback when unset.
func (i Int) Or(fallback int64) int64 {
	if i.Valid {
		return i.N
	}
	return fallback
}

// FirstString returns the first non-empty string.
func FirstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
