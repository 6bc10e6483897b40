package catalog

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
)

// Validate checks categories for structural errors.
// Returns a slice of errors (empty if valid).
func Validate(categories []domain.Category) []error {
	var errs []error

	catIDs := map[string]bool{}
	for i, cat := range categories {
		where := fmt.Sprintf("category[%d]", i)
		if cat.ID != "" {
			where = cat.ID
		}
		if cat.Source != "" {
			where += " (" + cat.Source + ")"
		}

		switch {
		case cat.ID == "":
			errs = append(errs, fmt.Errorf("%s: id is required", where))
		case strings.ContainsAny(cat.ID, " \t\n/"):
			errs = append(errs, fmt.Errorf("%s: id must not contain spaces or slashes", where))
		case catIDs[cat.ID]:
			errs = append(errs, fmt.Errorf("%s: duplicate category id", where))
		}
		catIDs[cat.ID] = true

		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		}
		if len(cat.Subcategories) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one subcategory is required", where))
		}

		subIDs := map[string]bool{}
		for j, sub := range cat.Subcategories {
			subWhere := fmt.Sprintf("%s/subcategory[%d]", where, j)
			if sub.ID != "" {
				subWhere = where + "/" + sub.ID
			}
			switch {
			case sub.ID == "":
				errs = append(errs, fmt.Errorf("%s: id is required", subWhere))
			case strings.ContainsAny(sub.ID, " \t\n/"):
				errs = append(errs, fmt.Errorf("%s: id must not contain spaces or slashes", subWhere))
			case subIDs[sub.ID]:
				errs = append(errs, fmt.Errorf("%s: duplicate subcategory id", subWhere))
			}
			subIDs[sub.ID] = true

			if sub.Name == "" {
				errs = append(errs, fmt.Errorf("%s: name is required", subWhere))
			}
			errs = append(errs, validateSubcategory(subWhere, sub)...)
		}
	}

	return errs
}

func validateSubcategory(where string, sub domain.Subcategory) []error {
	var errs []error

	if len(sub.Questions) == 0 {
		errs = append(errs, fmt.Errorf("%s: at least one question is required", where))
	}

	qIDs := map[string]bool{}
	for k, q := range sub.Questions {
		switch {
		case q.ID == "":
			errs = append(errs, fmt.Errorf("%s: question[%d]: id is required", where, k))
		case !prompt.ValidName(q.ID):
			errs = append(errs, fmt.Errorf("%s: question[%d]: id %q may only contain letters, digits, '_', '-' and '.'", where, k, q.ID))
		case prompt.IsBuiltin(q.ID):
			errs = append(errs, fmt.Errorf("%s: question[%d]: id %q is reserved", where, k, q.ID))
		case qIDs[q.ID]:
			errs = append(errs, fmt.Errorf("%s: question[%d]: duplicate id %q", where, k, q.ID))
		}
		qIDs[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Errorf("%s: question[%d]: text is required", where, k))
		}
	}

	if strings.TrimSpace(sub.Template) == "" {
		errs = append(errs, fmt.Errorf("%s: template is required", where))
		return errs
	}

	names, err := prompt.Placeholders(sub.Template)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: template: %w", where, err))
		return errs
	}
	for _, name := range names {
		if !qIDs[name] && !prompt.IsBuiltin(name) {
			errs = append(errs, fmt.Errorf("%s: template references unknown placeholder {%s}", where, name))
		}
	}

	return errs
}
