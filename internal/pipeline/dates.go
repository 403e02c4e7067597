package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyDate is wrapped when a transaction carries no date at all.
var ErrEmptyDate = errors.New("empty date")

// MalformedTransactionError names the transaction whose date could not be parsed.
type MalformedTransactionError struct {
	TransactionID string
	Date          string
	Err           error
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("transaction %s: malformed date %q: %v", e.TransactionID, e.Date, e.Err)
}

func (e *MalformedTransactionError) Unwrap() error { return e.Err }

// Accepted timestamp layouts, tried in order after the bare date form.
// Layouts without an offset are local time.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a recorded transaction date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if d, err := time.Parse(dayLayout, s); err == nil {
		return DayKey(d.Format(dayLayout)).Time(), nil
	}
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatDate renders t in the canonical stored form.
func FormatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}
