package review

import "fmt"

// Category is one of the three fixed rating dimensions.
type Category string

const (
	CategoryService       Category = "service"
	CategorySolving       Category = "solving"
	CategoryCommunication Category = "communication"
)

// Categories lists the dimensions in display order.
var Categories = []Category{CategoryService, CategorySolving, CategoryCommunication}

var categoryLabels = map[Category]string{
	CategoryService:       "Service",
	CategorySolving:       "Problem Solving",
	CategoryCommunication: "Communication",
}

// Label returns the human-readable name for the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// ParseCategory validates a raw category value, typically a component
// custom ID fragment.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// DraftKey identifies one in-progress rating: one rater scoring one admin.
type DraftKey struct {
	AdminID string
	RaterID string
}

// Draft is a partial rating. A zero field is unset; valid scores are 1-5.
type Draft struct {
	Service       int
	Solving       int
	Communication int
}

// Complete reports whether all three categories have been scored.
func (d Draft) Complete() bool {
	return d.Service != 0 && d.Solving != 0 && d.Communication != 0
}

// Set overwrites one category's score. Re-voting a category before
// submission is allowed and replaces the earlier pick.
func (d *Draft) Set(c Category, score int) {
	switch c {
	case CategoryService:
		d.Service = score
	case CategorySolving:
		d.Solving = score
	case CategoryCommunication:
		d.Communication = score
	}
}

// Score returns the stored value for one category, 0 when unset.
func (d Draft) Score(c Category) int {
	switch c {
	case CategoryService:
		return d.Service
	case CategorySolving:
		return d.Solving
	case CategoryCommunication:
		return d.Communication
	}
	return 0
}

// Remaining lists the categories that still need a score.
func (d Draft) Remaining() []Category {
	var out []Category
	for _, c := range Categories {
		if d.Score(c) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// SubmitResult reports the outcome of one star selection.
type SubmitResult struct {
	Draft     Draft
	Completed bool
}
