// Package domain defines the core types and interfaces for the ordering app.
// All other packages depend on domain; domain depends on nothing but the
// decimal type used for prices.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Course classifies a dish. The zero value means "no course".
type Course string

const (
	CourseUnset   Course = ""
	CourseStarter Course = "starter"
	CourseMain    Course = "main"
	CourseDessert Course = "dessert"
)

// Courses lists the settable courses in menu order.
var Courses = []Course{CourseStarter, CourseMain, CourseDessert}

// String returns the canonical lowercase name, or "none" when unset.
func (c Course) String() string {
	if c == CourseUnset {
		return "none"
	}
	return string(c)
}

// IsSet reports whether c is one of the three known courses.
func (c Course) IsSet() bool {
	switch c {
	case CourseStarter, CourseMain, CourseDessert:
		return true
	default:
		return false
	}
}

// ParseCourse normalizes a course label. Matching is case-insensitive and
// ignores surrounding space, so "Starter" and " starter" both map to
// CourseStarter. An empty label yields CourseUnset with ok=true; anything
// else unrecognised yields CourseUnset with ok=false.
func ParseCourse(label string) (Course, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return CourseUnset, true
	}
	for _, c := range Courses {
		if string(c) == l {
			return c, true
		}
	}
	return CourseUnset, false
}

// MenuItem is a single dish. Treat it as immutable once built; it is always
// passed and stored by value.
type MenuItem struct {
	DishName    string
	Description string
	Course      Course
	Price       string // decimal string, validated by NewMenuItem
}

// NewMenuItem builds a MenuItem after checking the price. The price is kept
// as typed so sums stay exact; rounding happens only when amounts are
// formatted. The course label is normalized through ParseCourse; an unknown
// label is treated as unset.
func NewMenuItem(name, description, course, price string) (MenuItem, error) {
	if _, err := ParsePrice(price); err != nil {
		return MenuItem{}, err
	}
	c, _ := ParseCourse(course)
	return MenuItem{
		DishName:    strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Course:      c,
		Price:       strings.TrimSpace(price),
	}, nil
}

// Amount returns the parsed price.
func (m MenuItem) Amount() (decimal.Decimal, error) {
	return ParsePrice(m.Price)
}

// ParsePrice parses a non-negative decimal amount such as "59.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewValidationError(ErrInvalidPrice, "price")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError(ErrInvalidPrice, "price")
	}
	if d.IsNegative() {
		return decimal.Zero, NewValidationError(ErrInvalidPrice, "price")
	}
	return d, nil
}

// Entry is one slot in the cart. ID is assigned when the item enters the
// selection so that two entries for the same dish stay distinguishable.
type Entry struct {
	ID   string
	Item MenuItem
}

// Draft holds the raw form fields while a custom dish is being authored.
type Draft struct {
	DishName    string
	Description string
	Course      string
	Price       string
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Draft field names accepted by field-level updates.
const (
	FieldDishName    = "dishName"
	FieldDescription = "description"
	FieldCourse      = "course"
	FieldPrice       = "price"
)

// Filter narrows a list of dishes. The zero value matches everything.
type Filter struct {
	Text   string
	Course Course
}

// IsZero reports whether the filter imposes no constraint.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Text) == "" && f.Course == CourseUnset
}
