package utils

import (
	"fmt"
	"strings"
	"time"
)

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDatetime parses an ISO-8601 string. A trailing "Z" is treated as UTC.
func ParseDatetime(value string) (time.Time, error) {
	normalized := strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime format: %s", value)
}

// FormatDatetime renders a timestamp as ISO-8601 in UTC. The fractional
// part is fixed-width so the strings sort chronologically.
func FormatDatetime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z07:00")
}
