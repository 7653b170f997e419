package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly is a calendar date without a time component. It is the bucket key
// for diary entries and the due-date type for tasks: JSON and Postgres both
// see it as "YYYY-MM-DD".
type DateOnly struct {
	time.Time
}

// NewDate builds a DateOnly in UTC.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOnly{t}, nil
}

// Key returns the canonical "YYYY-MM-DD" form.
func (d DateOnly) Key() string {
	return d.Format(dateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *DateOnly) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOnly{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}
