package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDate(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days fall back to date", now.Add(-72 * time.Hour), "Feb 4, 2026"},
		{"future falls back to date", now.Add(time.Hour), "Today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.input, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "two lines", Truncate("two\nlines", 20))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 word", Plural(1, "word", "words"))
	assert.Equal(t, "0 words", Plural(0, "word", "words"))
	assert.Equal(t, "3 subcategories", Plural(3, "subcategory", "subcategories"))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a", "first"}, {"longer", "second"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "ID      NAME", lines[0])
	assert.Equal(t, "a       first", lines[2])
	assert.Equal(t, "longer  second", lines[3])
}

func TestRenderTable_TrimsEmptyTrailingCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "QUESTION", ""},
		[][]string{{"a", "first", "optional"}, {"b", "second", ""}, {"c"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "a   first     optional", lines[2])
	assert.Equal(t, "b   second", lines[3])
	assert.Equal(t, "c", lines[4])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestHeader(t *testing.T) {
	got := stripANSI(Header("History"))
	assert.Equal(t, "HISTORY\n───────", got)
}

func TestRenderBox_IncludesTitleAndContent(t *testing.T) {
	got := stripANSI(RenderBox("Prompt", "hello"))
	assert.Contains(t, got, "PROMPT")
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "╭")
}
