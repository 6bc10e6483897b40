package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type HistoryEntry struct {
	ID            string
	CategoryID    string
	SubcategoryID string
	Content       string
	Answers       map[string]string
	WordCount     int
	CharCount     int
	CreatedAt     time.Time
	CopiedAt      *time.Time
	SavedPath     *string
}

// NewHistoryEntry builds the history record of a generated prompt.
func NewHistoryEntry(id string, p *GeneratedPrompt) *HistoryEntry {
	answers := make(map[string]string, len(p.Answers))
	for k, v := range p.Answers {
		answers[k] = v
	}
	return &HistoryEntry{
		ID:            id,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		Content:       p.Content,
		Answers:       answers,
		WordCount:     len(strings.Fields(p.Content)),
		CharCount:     utf8.RuneCountInString(p.Content),
		CreatedAt:     p.GeneratedAt,
	}
}

// ShortID returns the leading characters of the entry id used in listings.
func (e *HistoryEntry) ShortID() string {
	if len(e.ID) > 8 {
		return e.ID[:8]
	}
	return e.ID
}

// KeyCount pairs a grouping key with the number of entries under it.
type KeyCount struct {
	Key   string
	Count int
}

type HistoryStats struct {
	Total          int
	TotalWords     int
	Copied         int
	Saved          int
	ByCategory     []KeyCount
	TopSubcategory []KeyCount // keyed "category/subcategory"
	LastCreatedAt  *time.Time
}
