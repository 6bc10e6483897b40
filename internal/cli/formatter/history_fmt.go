package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

// previewWidth is the rune budget of the content column in history listings.
const previewWidth = 48

// FormatHistoryList renders history entries newest first as a table.
func FormatHistoryList(entries []*domain.HistoryEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No prompts in history.") + "\n"
	}

	headers := []string{"ID", "CREATED", "PROMPT TYPE", "WORDS", "", "PREVIEW"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestamp(e.CreatedAt, now),
			StyleGreen.Render(e.CategoryID + "/" + e.SubcategoryID),
			fmt.Sprintf("%d", e.WordCount),
			exportFlags(e),
			Truncate(e.Content, previewWidth),
		})
	}
	return RenderTable(headers, rows)
}

// exportFlags marks entries that were copied (c) or saved (s).
func exportFlags(e *domain.HistoryEntry) string {
	var flags []string
	if e.CopiedAt != nil {
		flags = append(flags, "c")
	}
	if e.SavedPath != nil {
		flags = append(flags, "s")
	}
	return StyleBlue.Render(strings.Join(flags, ""))
}

// FormatHistoryEntry renders one entry with its answers and full content.
func FormatHistoryEntry(e *domain.HistoryEntry) string {
	var b strings.Builder

	b.WriteString(Header(e.CategoryID + "/" + e.SubcategoryID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:     "), e.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Created:"), e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s %s, %s\n", Dim("Size:   "),
		Plural(e.WordCount, "word", "words"), Plural(e.CharCount, "char", "chars"))
	if e.CopiedAt != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Copied: "), e.CopiedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if e.SavedPath != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Saved:  "), *e.SavedPath)
	}

	if len(e.Answers) > 0 {
		keys := make([]string, 0, len(e.Answers))
		for k := range e.Answers {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("ANSWERS"))
		b.WriteString("\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render(k+":"), e.Answers[k])
		}
	}

	b.WriteString("\n")
	b.WriteString(RenderBox("Prompt", e.Content))
	b.WriteString("\n")
	return b.String()
}

// FormatStats renders aggregate history numbers.
func FormatStats(s *domain.HistoryStats, now time.Time) string {
	if s.Total == 0 {
		return Dim("No prompts in history.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("History"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", Dim("Prompts:    "), s.Total)
	fmt.Fprintf(&b, "%s %d\n", Dim("Words:      "), s.TotalWords)
	fmt.Fprintf(&b, "%s %d\n", Dim("Avg words:  "), s.TotalWords/s.Total)
	fmt.Fprintf(&b, "%s %d\n", Dim("Copied:     "), s.Copied)
	fmt.Fprintf(&b, "%s %d\n", Dim("Saved:      "), s.Saved)
	if s.LastCreatedAt != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Last prompt:"), HumanTimestamp(*s.LastCreatedAt, now))
	}

	if len(s.ByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(formatCounts("By category", s.ByCategory, s.Total))
	}
	if len(s.TopSubcategory) > 0 {
		b.WriteString("\n")
		b.WriteString(formatCounts("Top prompt types", s.TopSubcategory, s.Total))
	}
	return b.String()
}

func formatCounts(title string, counts []domain.KeyCount, total int) string {
	rows := make([][]string, 0, len(counts))
	for _, kc := range counts {
		rows = append(rows, []string{
			StyleGreen.Render(kc.Key),
			fmt.Sprintf("%d", kc.Count),
			Dim(fmt.Sprintf("%d%%", kc.Count*100/total)),
		})
	}
	return RenderTable([]string{strings.ToUpper(title), "PROMPTS", "SHARE"}, rows)
}
