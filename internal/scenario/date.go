package scenario

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// date is a calendar day on the wire. It is written as YYYY-MM-DD and read
// from that form, a full ISO timestamp, or a Firestore
// {seconds, nanoseconds} object.
type date struct {
	time.Time
}

func newDate(t time.Time) date {
	return date{Time: t}
}

func optionalDate(t *time.Time) *date {
	if t == nil || t.IsZero() {
		return nil
	}

	return &date{Time: *t}
}

func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}

	return new(d.Time)
}

func (d *date) value() time.Time {
	if d == nil {
		return time.Time{}
	}

	return d.Time
}

func (d date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}

	return json.Marshal(d.UTC().Format(time.DateOnly))
}

type firestoreTimestamp struct {
	Seconds     *int64 `json:"seconds"`
	Nanoseconds *int64 `json:"nanoseconds"`
}

func (d *date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		d.Time = time.Time{}
		return nil
	case data[0] == '{':
		var ts firestoreTimestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return fmt.Errorf("parsing timestamp: %w", err)
		}

		if ts.Seconds == nil || ts.Nanoseconds == nil {
			return fmt.Errorf("timestamp %s needs seconds and nanoseconds", data)
		}

		d.Time = time.Unix(*ts.Seconds, *ts.Nanoseconds).UTC()

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing date: %w", err)
	}

	t, err := parseDate(s)
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t.UTC(), nil
}
