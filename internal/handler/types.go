package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// looseString accepts a JSON string or a number, so a frequency can be
// sent as "weekly" or 3.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(n.String())
	return nil
}

// dateTime accepts RFC 3339 timestamps and bare YYYY-MM-DD dates, the
// latter as midnight UTC.
type dateTime struct {
	time.Time
}

var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", time.DateOnly}

func parseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func (d *dateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	t, err := parseDateTime(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ptr returns the time behind d, nil when d is absent or zero.
func (d *dateTime) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (s *looseString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
