package model

// StudentRecord is a student's profile as loaded from the dataset. The API
// is read-only, so there are no create/update payloads.
type StudentRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Grade    string   `json:"grade"`
	Building string   `json:"building"`
	Homeroom string   `json:"homeroom"`
	Courses  []string `json:"courses"`
}

// StudentIDParam binds the studentId path segment. The district issues
// six-digit identifiers; anything else is rejected before touching the core.
type StudentIDParam struct {
	StudentID string `uri:"studentId" binding:"required,studentid"`
}
