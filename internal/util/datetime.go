// Package util provides small shared helpers: datetime normalization,
// URL slug generation and filename sanitization.
package util

import (
	"errors"
	"strings"
	"time"
)

// DateTimeLayout is the canonical storage form for event datetimes.
const DateTimeLayout = "2006-01-02 15:04:05"

// acceptedDateTimeLayouts lists the input forms clients may submit, tried in order.
var acceptedDateTimeLayouts = []string{
	DateTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var (
	// ErrDateTimeRequired is returned for empty datetime input.
	ErrDateTimeRequired = errors.New("date and time is required")
	// ErrDateTimeInvalid is returned when no accepted layout matches.
	ErrDateTimeInvalid = errors.New("invalid date and time format")
)

// NormalizeDateTime parses a client-submitted datetime in any accepted form and
// renders it in the canonical layout. Empty and unparseable input fail with
// distinct errors so callers can report which rule was broken.
func NormalizeDateTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrDateTimeRequired
	}
	for _, layout := range acceptedDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateTimeLayout), nil
		}
	}
	return "", ErrDateTimeInvalid
}
