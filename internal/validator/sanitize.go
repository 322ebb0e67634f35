package validator

import (
	"regexp"
	"strconv"
)

// Query selector formats. A value that fails its pattern is treated as if
// it were never sent: the caller falls back to the current grading period
// instead of erroring, so a stale bookmark still returns something useful.
var (
	reRunID       = regexp.MustCompile(`^[0-6]$`)
	reRunDate     = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]20\d{2}$`)
	reAlertsScore = regexp.MustCompile(`^\d{1,2}$`)
)

// SanitizeRunID returns the run id query value as an int, or false when the
// value is absent or malformed.
func SanitizeRunID(raw string) (int, bool) {
	if !reRunID.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SanitizeRunDate validates a run date query value (M/D/YYYY, slash or dash
// separated). The date itself is parsed later in the school timezone.
func SanitizeRunDate(raw string) (string, bool) {
	if !reRunDate.MatchString(raw) {
		return "", false
	}
	return raw, true
}

// SanitizeAlertsScore returns the alert threshold query value as an int, or
// false when absent or malformed. Thresholds are one or two digits.
func SanitizeAlertsScore(raw string) (int, bool) {
	if !reAlertsScore.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
