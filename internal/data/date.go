package data

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with day granularity. The zero value means "no
// date": the client sends a publication date of "" for drafts, and the
// database stores NULL.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string. The empty string parses to the zero
// Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String formats the date as "YYYY-MM-DD", or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether two dates fall on the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string, or "" when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", "" or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as a "YYYY-MM-DD" string, or NULL when absent.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads a date from a NULL, string, []byte or time.Time column value.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
