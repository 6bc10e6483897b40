package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

// FormatCategories renders the category table shown by "categories".
func FormatCategories(cats []*domain.Category) string {
	if len(cats) == 0 {
		return Dim("No categories.") + "\n"
	}

	headers := []string{"#", "ID", "NAME", "SUBCATEGORIES", "SOURCE"}
	rows := make([][]string, 0, len(cats))
	for i, c := range cats {
		subs := make([]string, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs = append(subs, s.ID)
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			StyleGreen.Render(c.ID),
			Bold(c.Name),
			strings.Join(subs, ", "),
			SourceBadge(c),
		})
	}
	return RenderTable(headers, rows)
}

// FormatQuestions renders one subcategory: its questions and template.
func FormatQuestions(cat *domain.Category, sub *domain.Subcategory) string {
	var b strings.Builder

	b.WriteString(Header(cat.Name + " › " + sub.Name))
	b.WriteString("\n")
	if sub.Description != "" {
		b.WriteString(Dim(sub.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	headers := []string{"#", "ID", "QUESTION", ""}
	rows := make([][]string, 0, len(sub.Questions))
	for i, q := range sub.Questions {
		flag := ""
		if q.Optional {
			flag = Dim("optional")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			StyleGreen.Render(q.ID),
			q.Text,
			flag,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim(fmt.Sprintf("%s, %d required",
		Plural(len(sub.Questions), "question", "questions"), sub.RequiredCount())))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(StyleHeader.Render("TEMPLATE"))
	b.WriteString("\n")
	for _, line := range strings.Split(sub.Template, "\n") {
		b.WriteString("  ")
		b.WriteString(StyleBlue.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatValidation reports the outcome of a catalog check.
func FormatValidation(path string, cats []domain.Category) string {
	var b strings.Builder
	b.WriteString(Success(fmt.Sprintf("%s is valid", path)))
	b.WriteString("\n")
	for _, c := range cats {
		questions := 0
		for _, s := range c.Subcategories {
			questions += len(s.Questions)
		}
		fmt.Fprintf(&b, "  %s %s  %s, %s\n",
			StyleGreen.Render(c.ID), Bold(c.Name),
			Plural(len(c.Subcategories), "subcategory", "subcategories"), Plural(questions, "question", "questions"))
	}
	return b.String()
}
