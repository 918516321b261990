package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical storage format for calendar dates.
const DateLayout = "2006-01-02"

var errEmptyDate = errors.New("date is empty")

// dateLayouts are tried in order. Layouts without a zone parse as UTC.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"2006-01",
	"2006",
	time.RFC1123,
	time.RFC1123Z,
}

// CleanedDate parses a user-supplied calendar date and returns it normalized
// to YYYY-MM-DD. Timestamps with an offset are converted to UTC first.
func CleanedDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errEmptyDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("unable to parse date: %q", raw)
}
