package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date sent as "2006-01-02". Full RFC 3339 timestamps are
// accepted and truncated to their date.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted date
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q must look like 2006-01-02", s)
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return nil
}

// Ptr returns the date as *time.Time; a nil Date gives nil
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
