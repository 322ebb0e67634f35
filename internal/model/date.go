package model

import (
	"strings"
	"time"
)

// schoolDateLayouts are the calendar date formats the SIS export uses:
// month and day without zero padding, slash or dash separated.
var schoolDateLayouts = []string{"1/2/2006", "1-2-2006"}

// ParseSchoolDate parses a district calendar date in the school's timezone.
// Period boundaries and due dates are midnight local time; parsing them in
// the wrong zone shifts every interval by hours and misfiles boundary work.
func ParseSchoolDate(value string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range schoolDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
