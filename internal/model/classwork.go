package model

import (
	"strconv"
	"strings"
)

// MissingScore is the sentinel the district SIS exports for work that was
// never turned in. It is not a numeric grade and must stay out of averages.
const MissingScore = "M"

const (
	missingWorkTag = "[missing work]"
	lowScoreTag    = "[low score]"
)

// courseIDWidth is the fixed width of the course identifier prefix on the
// composite course label (e.g. "0123 - 1 Algebra II"). The SIS export pads
// short identifiers with spaces, so the prefix is trimmed after slicing.
const courseIDWidth = 9

// ClassworkEntry is a single assignment on a student's record. Entries are
// immutable once loaded; CourseID and DateDueMs are derived at read time.
type ClassworkEntry struct {
	Course       string `json:"course"`
	CourseID     string `json:"course_id"`
	Assignment   string `json:"assignment"`
	Category     string `json:"category"`
	DateAssigned string `json:"date_assigned,omitempty"`
	DateDue      string `json:"date_due"`
	DateDueMs    int64  `json:"date_due_ms"`
	Score        string `json:"score"`
	Comment      string `json:"comment"`
}

// Graded reports whether the entry carries a score at all. Ungraded work has
// an empty score string and is excluded from both listings and averages.
func (e ClassworkEntry) Graded() bool {
	return e.Score != ""
}

// Alert is a classwork entry flagged for parent attention: a low score or a
// teacher comment.
type Alert struct {
	Date       string `json:"date"`
	Course     string `json:"course"`
	Assignment string `json:"assignment"`
	Score      string `json:"score"`
	Comment    string `json:"comment"`
}

// CourseAverage is the weighted average for one course over a grading
// period, formatted with exactly two decimal places.
type CourseAverage struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Average    string `json:"average"`
}

// ExtractCourseID slices the fixed-width identifier prefix off a composite
// course label and trims the padding. Labels shorter than the prefix width
// are trimmed whole.
func ExtractCourseID(courseLabel string) string {
	r := []rune(courseLabel)
	if len(r) > courseIDWidth {
		r = r[:courseIDWidth]
	}
	return strings.TrimSpace(string(r))
}

// ParseScore parses a raw score string into a numeric grade. It is total:
// the second return is false for ungraded (empty), missing-work sentinel,
// and any other non-numeric value, so callers never feed garbage into
// arithmetic.
func ParseScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TagMissingWork prefixes a comment with the missing-work marker when the
// score carries the sentinel value.
func TagMissingWork(score, comment string) string {
	if score == MissingScore {
		return strings.TrimSpace(missingWorkTag + " " + comment)
	}
	return comment
}

// TagLowScore prefixes a comment with the low-score marker.
func TagLowScore(comment string) string {
	return strings.TrimSpace(lowScoreTag + " " + comment)
}
