package cart

import (
	"strings"

	"github.com/hammamikhairi/ottomenu/internal/domain"
)

// ValidateDraft turns a draft into a MenuItem. Fields are checked in form
// order (dish name, description, course, price). Every blank field is
// reported in one *domain.ValidationError of kind ErrMissingFields; only when
// all fields are present is the price parsed, failing with ErrInvalidPrice.
func ValidateDraft(d domain.Draft) (domain.MenuItem, error) {
	var missing []string
	if strings.TrimSpace(d.DishName) == "" {
		missing = append(missing, domain.FieldDishName)
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, domain.FieldDescription)
	}
	course, ok := domain.ParseCourse(d.Course)
	if !ok || !course.IsSet() {
		missing = append(missing, domain.FieldCourse)
	}
	if strings.TrimSpace(d.Price) == "" {
		missing = append(missing, domain.FieldPrice)
	}
	if len(missing) > 0 {
		return domain.MenuItem{}, domain.NewValidationError(domain.ErrMissingFields, missing...)
	}

	return domain.NewMenuItem(d.DishName, d.Description, string(course), d.Price)
}

// setDraftField returns d with one field replaced.
func setDraftField(d domain.Draft, name, value string) (domain.Draft, error) {
	switch name {
	case domain.FieldDishName:
		d.DishName = value
	case domain.FieldDescription:
		d.Description = value
	case domain.FieldCourse:
		d.Course = value
	case domain.FieldPrice:
		d.Price = value
	default:
		return d, domain.ErrUnknownField
	}
	return d, nil
}
