package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// timestampLayouts are tried in order when decoding a server timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// Timestamp is a server-owned instant. Decoding never fails: a value in an
// unknown format is kept verbatim in Raw and the Time stays zero.
type Timestamp struct {
	time.Time
	Raw string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// ParseTimestamp reads s using the first layout that fits.
func ParseTimestamp(s string) Timestamp {
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{Raw: s}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = ParseTimestamp(s)
		return nil
	}
	if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*t = Timestamp{Time: time.Unix(n, 0).UTC()}
		return nil
	}
	*t = Timestamp{Raw: string(b)}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case t.Raw != "":
		return json.Marshal(t.Raw)
	case t.Time.IsZero():
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// IsZero reports whether neither a time nor a raw value is present.
func (t Timestamp) IsZero() bool { return t.Time.IsZero() && t.Raw == "" }

// Equal compares instants, or raw values when the time was not understood.
func (t Timestamp) Equal(u Timestamp) bool { return t.Time.Equal(u.Time) && t.Raw == u.Raw }

// Format renders the time with layout, or Raw when the time is unknown.
func (t Timestamp) Format(layout string) string {
	if t.Time.IsZero() && t.Raw != "" {
		return t.Raw
	}
	return t.Time.Format(layout)
}

func (t Timestamp) String() string { return t.Format(time.RFC3339) }
