package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDate  = regexp.MustCompile(`^(\d{4})-\d{2}-\d{2}$`)
	reType  = regexp.MustCompile(`^(add|remove|adjust)$`)
)

// ID validates a simple resource identifier (product/category/supplier/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Date validates a YYYY-MM-DD filter value. Accepted years run from 1900 to ten
// years past the current one; anything else yields a descriptive message for the
// caller. Empty input is allowed and returns ok with no error.
func Date(s, fieldName string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	m := reDate.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%s must have a valid 4-digit year (YYYY-MM-DD format)", fieldName)
	}
	year, _ := strconv.Atoi(m[1])
	maxYear := time.Now().Year() + 10
	if year < 1900 || year > maxYear {
		return "", fmt.Errorf("%s year must be between 1900 and %d", fieldName, maxYear)
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("%s is not a valid date", fieldName)
	}
	return s, nil
}

// Period validates a report lookback window. Empty defaults to "month".
func Period(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return "month", true
	case "day", "week", "month":
		return s, true
	}
	return "", false
}

// LogType validates an inventory log type filter.
func LogType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reType.MatchString(s)
}

// Page parses a 1-based page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit parses a page size, clamped to avoid abuse.
func Limit(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
