package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/google/uuid"
)

// BaseTime anchors fixture timestamps so ordering assertions are stable.
var BaseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type EntryOption func(*domain.HistoryEntry)

func WithCategory(categoryID, subcategoryID string) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.CategoryID = categoryID
		e.SubcategoryID = subcategoryID
	}
}

func WithContent(content string) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.Content = content
		e.WordCount = len(strings.Fields(content))
		e.CharCount = len([]rune(content))
	}
}

func WithCreatedAt(t time.Time) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.CreatedAt = t
	}
}

func WithAnswers(answers map[string]string) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.Answers = answers
	}
}

func WithCopiedAt(t time.Time) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.CopiedAt = &t
	}
}

func WithSavedPath(path string) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.SavedPath = &path
	}
}

func WithID(id string) EntryOption {
	return func(e *domain.HistoryEntry) {
		e.ID = id
	}
}

// NewTestEntry returns a code/script history entry created at BaseTime.
func NewTestEntry(opts ...EntryOption) *domain.HistoryEntry {
	e := &domain.HistoryEntry{
		ID:            uuid.New().String(),
		CategoryID:    "code",
		SubcategoryID: "script",
		Answers:       map[string]string{"task": "rename files"},
		CreatedAt:     BaseTime,
	}
	WithContent("Write a script to rename files")(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestPrompt returns a generated app/mobile prompt.
func NewTestPrompt(opts ...func(*domain.GeneratedPrompt)) *domain.GeneratedPrompt {
	p := &domain.GeneratedPrompt{
		CategoryID:      "app",
		CategoryName:    "App",
		SubcategoryID:   "mobile",
		SubcategoryName: "Mobile App",
		Content:         "Build a minimal app for teens",
		Answers:         map[string]string{"style": "minimal", "audience": "teens"},
		GeneratedAt:     BaseTime,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
