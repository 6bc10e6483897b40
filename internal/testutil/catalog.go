package testutil

import (
	"testing"

	"github.com/alexanderramin/promptcraft/internal/catalog"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/stretchr/testify/require"
)

// TestCategories returns a small catalog used across package tests.
//
//	app/mobile: style, audience, budget (optional)
//	app/web:    stack
//	art/poster: subject, mood (optional)
func TestCategories() []domain.Category {
	return []domain.Category{
		{
			ID: "app", Name: "App", Description: "Applications",
			Subcategories: []domain.Subcategory{
				{
					ID: "mobile", Name: "Mobile App",
					Questions: []domain.Question{
						{ID: "style", Text: "What style?"},
						{ID: "audience", Text: "Who is it for?"},
						{ID: "budget", Text: "Any budget?", Hint: "e.g. $5k", Optional: true},
					},
					Template: "Build a {style} app for {audience}\nBudget: {budget}",
				},
				{
					ID: "web", Name: "Web App",
					Questions: []domain.Question{
						{ID: "stack", Text: "Which stack?"},
					},
					Template: "Use {stack}.",
				},
			},
		},
		{
			ID: "art", Name: "Art",
			Subcategories: []domain.Subcategory{
				{
					ID: "poster", Name: "Poster",
					Questions: []domain.Question{
						{ID: "subject", Text: "What subject?"},
						{ID: "mood", Text: "What mood?", Optional: true},
					},
					Template: "A poster of {subject} ({category}/{subcategory})\nMood: {mood}\n\n{answers_summary}",
				},
			},
		},
	}
}

// NewCatalog builds a validated catalog from TestCategories.
func NewCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(TestCategories())
	require.NoError(t, err)
	return c
}
