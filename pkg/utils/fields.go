package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Deliberately not RFC-complete, it only accepts local@domain.tld shaped
// addresses.
var emailPattern = regexp.MustCompile(`^[\w.\-+]+@([\w\-]+\.)+[\w\-]{2,}$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateRequiredFields reports whether every listed field is present in
// data. A field that is present but falsy (empty string, zero, false, nil)
// counts as missing.
func ValidateRequiredFields(data map[string]interface{}, required []string) (bool, string) {
	var missing []string
	for _, field := range required {
		value, ok := data[field]
		if !ok || isFalsy(value) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return false, fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return true, ""
}

func isFalsy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case int:
		return value == 0
	case int64:
		return value == 0
	case float64:
		return value == 0
	default:
		return false
	}
}
