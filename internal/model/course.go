package model

// CourseDefinition is the catalog record for one course: its display name
// and the category weights used for averaging. Weights are fractions of the
// final grade; categories with no graded work in a period are redistributed
// by the aggregator rather than dragging the average down.
type CourseDefinition struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Categories    map[string]float64 `json:"category"`
	CategoryTotal float64            `json:"category_total,omitempty"`
}

// WeightSum returns the sum of all category weights. A healthy catalog entry
// sums to 1; anything else is a data-entry problem worth a diagnostic.
func (c CourseDefinition) WeightSum() float64 {
	var sum float64
	for _, w := range c.Categories {
		sum += w
	}
	return sum
}

// CourseRecord is the per-course slice of a student's classwork listing:
// catalog info plus the entries that fall in the requested period.
type CourseRecord struct {
	Name          string             `json:"name"`
	Categories    map[string]float64 `json:"category"`
	CategoryTotal float64            `json:"category_total,omitempty"`
	Classwork     []ClassworkEntry   `json:"classwork"`
}
