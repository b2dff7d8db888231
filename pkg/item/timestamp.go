package item

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses an RFC 3339 timestamp with optional fractional seconds.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with a lenient JSON form: an empty or
// malformed value decodes to the zero time rather than failing the whole
// document.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}
	switch v := raw.(type) {
	case string:
		parsed, err := ParseTime(v)
		if err != nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = parsed
	case float64:
		// Epoch milliseconds.
		t.Time = time.UnixMilli(int64(v)).UTC()
	default:
		t.Time = time.Time{}
	}
	return nil
}

// MarshalYAML renders the timestamp the same way as JSON.
func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.String(), nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339Nano)
}
