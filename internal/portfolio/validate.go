package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrDuplicateID is returned when an entry's id is already taken within its
// collection.
var ErrDuplicateID = errors.New("duplicate id")

var validate = validator.New()

// ValidateStruct checks s against its validate tags and returns one error
// listing every failing field.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Validate checks field constraints and id uniqueness in every collection.
func (c Content) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	if err := uniqueIDs("experience", c.Experience, func(e Experience) int { return e.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("projects", c.Projects, func(p Project) int { return p.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("achievements", c.Achievements, func(a Achievement) int { return a.ID }); err != nil {
		return err
	}
	return ValidateEducation(c.Education)
}

// ValidateEducation checks a replacement education list.
func ValidateEducation(list []Education) error {
	for _, e := range list {
		if err := ValidateStruct(e); err != nil {
			return err
		}
	}
	return uniqueIDs("education", list, func(e Education) int { return e.ID })
}

func uniqueIDs[T any](collection string, items []T, id func(T) int) error {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		n := id(it)
		if seen[n] {
			return fmt.Errorf("%s: %w %d", collection, ErrDuplicateID, n)
		}
		seen[n] = true
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
