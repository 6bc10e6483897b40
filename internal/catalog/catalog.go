// Package catalog loads and validates the question bank and template store.
//
// The built-in catalog is embedded in the binary. Users can add categories by
// dropping JSON or YAML files into the catalog directory; those are appended
// after the built-ins and validated together once at startup.
package catalog

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

// File is the on-disk shape of a catalog file.
type File struct {
	Categories []domain.Category `json:"categories" yaml:"categories"`
}

// Catalog is the validated, read-only set of categories.
type Catalog struct {
	categories []*domain.Category
	byID       map[string]*domain.Category
}

// New validates categories and indexes them. Any problem is reported as
// ErrDataIntegrity wrapping every individual error.
func New(categories []domain.Category) (*Catalog, error) {
	if errs := Validate(categories); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataIntegrity, errors.Join(errs...))
	}

	c := &Catalog{
		categories: make([]*domain.Category, 0, len(categories)),
		byID:       make(map[string]*domain.Category, len(categories)),
	}
	for i := range categories {
		cat := categories[i]
		c.categories = append(c.categories, &cat)
		c.byID[cat.ID] = &cat
	}
	return c, nil
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []*domain.Category {
	return c.categories
}

// Custom returns only the categories loaded from user catalog files.
func (c *Catalog) Custom() []*domain.Category {
	var out []*domain.Category
	for _, cat := range c.categories {
		if cat.IsCustom() {
			out = append(out, cat)
		}
	}
	return out
}

func (c *Catalog) Category(id string) (*domain.Category, error) {
	cat, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
	}
	return cat, nil
}

func (c *Catalog) Subcategory(categoryID, subcategoryID string) (*domain.Category, *domain.Subcategory, error) {
	cat, err := c.Category(categoryID)
	if err != nil {
		return nil, nil, err
	}
	sub, ok := cat.Subcategory(subcategoryID)
	if !ok {
		return nil, nil, fmt.Errorf("subcategory %q in %s: %w", subcategoryID, categoryID, domain.ErrNotFound)
	}
	return cat, sub, nil
}

// all returns a value copy of every category, for re-validation.
func (c *Catalog) all() []domain.Category {
	out := make([]domain.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, *cat)
	}
	return out
}
