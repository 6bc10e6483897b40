package prompt

import (
	"testing"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appSubcategory(tmpl string) (*domain.Category, *domain.Subcategory) {
	cat := &domain.Category{ID: "code", Name: "Code"}
	sub := &domain.Subcategory{
		ID:   "web_app",
		Name: "Web App",
		Questions: []domain.Question{
			{ID: "style", Text: "What style?"},
			{ID: "audience", Text: "Who is it for?"},
			{ID: "extras", Text: "Anything else?", Optional: true},
		},
		Template: tmpl,
	}
	return cat, sub
}

func TestAssemble_AllAnswered(t *testing.T) {
	cat, sub := appSubcategory("Build a {style} app for {audience}")

	got, err := Assemble(cat, sub, map[string]string{"style": "minimal", "audience": "teens"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Build a minimal app for teens", got)
}

func TestAssemble_OmitLinePolicyDropsLinesWithMissingAnswers(t *testing.T) {
	cat, sub := appSubcategory("Build a {style} app.\nExtras: {extras}\nAudience: {audience}")

	got, err := Assemble(cat, sub, map[string]string{"style": "bold", "audience": "devs"}, Options{Policy: MissingOmitLine})
	require.NoError(t, err)
	assert.Equal(t, "Build a bold app.\nAudience: devs", got)
}

func TestAssemble_EmptyPolicyKeepsLine(t *testing.T) {
	cat, sub := appSubcategory("Build a {style} app.\nExtras: {extras}")

	got, err := Assemble(cat, sub, map[string]string{"style": "bold", "audience": "devs"}, Options{Policy: MissingEmpty})
	require.NoError(t, err)
	assert.Equal(t, "Build a bold app.\nExtras:", got)
}

func TestAssemble_WhitespaceAnswerCountsAsMissing(t *testing.T) {
	cat, sub := appSubcategory("A\nExtras: {extras}\nB")

	got, err := Assemble(cat, sub, map[string]string{"extras": "   "}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "A\nB", got)
}

func TestAssemble_Builtins(t *testing.T) {
	tmpl := "Create a {subcategory} ({category}).\n\n{answers_summary}\n\nGenerated on: {timestamp}"
	cat, sub := appSubcategory(tmpl)
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	got, err := Assemble(cat, sub, map[string]string{"style": "retro", "extras": "dark mode"}, Options{Now: now})
	require.NoError(t, err)

	want := "Create a Web App (Code).\n\n" +
		"• What style?: retro\n" +
		"• Anything else?: dark mode\n\n" +
		"Generated on: 2025-03-04 05:06:07"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_EmptySummaryLineIsOmitted(t *testing.T) {
	cat, sub := appSubcategory("Header\n\n{answers_summary}\n\nFooter")

	got, err := Assemble(cat, sub, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Header\n\nFooter", got)
}

func TestAssemble_EscapedBraces(t *testing.T) {
	cat, sub := appSubcategory("Return JSON like {{\"style\": \"{style}\"}}")

	got, err := Assemble(cat, sub, map[string]string{"style": "flat"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, `Return JSON like {"style": "flat"}`, got)
}

func TestAssemble_UnknownPlaceholderIsTemplateError(t *testing.T) {
	cat, sub := appSubcategory("Build a {colour} app")

	_, err := Assemble(cat, sub, map[string]string{"style": "x"}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplate)
	assert.Contains(t, err.Error(), "{colour}")
}

func TestAssemble_UnbalancedBraceIsTemplateError(t *testing.T) {
	cat, sub := appSubcategory("line one\nBuild a {style app")

	_, err := Assemble(cat, sub, nil, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplate)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAssemble_IgnoresAnswersForUnknownQuestions(t *testing.T) {
	cat, sub := appSubcategory("{style}")

	got, err := Assemble(cat, sub, map[string]string{"style": "a", "stray": "b"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestPlaceholders(t *testing.T) {
	names, err := Placeholders("{a} and {b}\n{a} {{literal}} {c}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestPlaceholders_Errors(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"unmatched open", "{a"},
		{"unmatched close", "a}"},
		{"empty name", "{}"},
		{"space inside name", "{two words}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Placeholders(tt.tmpl)
			assert.Error(t, err)
		})
	}
}

func TestMissingPolicy_Set(t *testing.T) {
	var p MissingPolicy
	require.NoError(t, p.Set("EMPTY"))
	assert.Equal(t, MissingEmpty, p)

	require.NoError(t, p.Set("omit"))
	assert.Equal(t, MissingOmitLine, p)

	assert.Error(t, p.Set("drop"))
	assert.Equal(t, MissingOmitLine, p)
	assert.Equal(t, "policy", p.Type())
}
