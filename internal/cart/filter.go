package cart

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/hammamikhairi/ottomenu/internal/domain"
)

// Match is a selection entry that passed the current filter, together with
// its position in the unfiltered selection.
type Match struct {
	Index int
	Entry domain.Entry
}

// FilterView returns the items whose dish name or description contains text
// (case-insensitive) and whose course equals course, when course is set.
// The result is always a new slice; items is never modified.
func FilterView(items []domain.MenuItem, text string, course domain.Course) []domain.MenuItem {
	m := newMatcher(text, course)
	out := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if m.match(item) {
			out = append(out, item)
		}
	}
	return out
}

// matcher holds a folded query. A cases.Caser is stateful, so each matcher
// gets its own.
type matcher struct {
	fold   cases.Caser
	query  string
	course string
}

func newMatcher(text string, course domain.Course) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.query = m.fold.String(strings.TrimSpace(text))
	if course != domain.CourseUnset {
		m.course = m.fold.String(string(course))
	}
	return m
}

func (m *matcher) match(item domain.MenuItem) bool {
	if m.query != "" &&
		!strings.Contains(m.fold.String(item.DishName), m.query) &&
		!strings.Contains(m.fold.String(item.Description), m.query) {
		return false
	}
	if m.course == "" {
		return true
	}
	return m.fold.String(string(item.Course)) == m.course
}
