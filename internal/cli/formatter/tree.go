package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Badge  string // pre-styled, right-aligned
	Detail string // dim text after the title
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// FormatCatalogTree renders categories with their prompt types and question
// counts as a tree.
func FormatCatalogTree(cats []*domain.Category) string {
	if len(cats) == 0 {
		return Dim("No categories.") + "\n"
	}

	var items []TreeItem
	for _, c := range cats {
		items = append(items, TreeItem{
			Title:  Bold(c.Name) + " " + Dim("("+c.ID+")"),
			Badge:  SourceBadge(c),
			Detail: c.Description,
		})
		for i, s := range c.Subcategories {
			items = append(items, TreeItem{
				Title:  s.Name + " " + Dim("("+s.ID+")"),
				Level:  1,
				IsLast: i == len(c.Subcategories)-1,
				Badge:  StyleBlue.Render(fmt.Sprintf("[ %s ]", Plural(len(s.Questions), "question", "questions"))),
			})
		}
	}
	return RenderTree(items)
}

// RenderTree renders items as an indented tree with box-drawing connectors.
// Badges are right-aligned to the widest line.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0

	// lastAt tracks whether the open ancestor at each level was the last child.
	var lastAt []bool
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level && l < len(lastAt); l++ {
				if lastAt[l] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(lastAt) <= item.Level {
			lastAt = append(lastAt, false)
		}
		lastAt[item.Level] = item.IsLast

		content := prefix.String() + item.Title
		if item.Detail != "" {
			content += "  " + Dim(item.Detail)
		}
		contents[idx] = content
		if w := lipgloss.Width(content); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Badge != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + item.Badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
