package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// promptcraftHuhTheme returns a custom huh theme using the Gruvbox palette.
func promptcraftHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(promptcraftHuhTheme()).WithShowHelp(false)
}

// confirm asks a yes/no question: a huh form on a terminal, a [y/N] line
// on plain stdin.
func confirm(cmd *cobra.Command, app *App, message string) (bool, error) {
	if app.interactive() {
		var ok bool
		if err := wizardConfirm(message, &ok).Run(); err != nil {
			return false, err
		}
		return ok, nil
	}
	return promptYesNoIO(cmd.InOrStdin(), cmd.OutOrStdout(), message+" [y/N] "), nil
}

// wizardCatalogDraft creates the form behind "catalog new". Fields already
// set from flags are shown as defaults.
func wizardCatalogDraft(d *catalogDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category id").
				Placeholder("email").
				Validate(validateID).
				Value(&d.ID),
			huh.NewInput().
				Title("Category name").
				Placeholder("Email").
				Validate(required("name")).
				Value(&d.Name),
			huh.NewInput().
				Title("Description").
				Value(&d.Description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Prompt type id").
				Placeholder("reply").
				Validate(validateID).
				Value(&d.SubID),
			huh.NewInput().
				Title("Prompt type name").
				Placeholder("Reply to an email").
				Validate(required("name")).
				Value(&d.SubName),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Questions").
				Description("One per line as id=question. Start the id with ? to make it optional.").
				Placeholder("tone=What tone should the reply have?\n?points=Any points to cover?").
				Validate(validateQuestionLines).
				Value(&d.Questions),
			huh.NewText().
				Title("Template").
				Description("Use {id} placeholders. Leave empty for one line per question.").
				Validate(validateTemplate).
				Value(&d.Template),
		),
	).WithTheme(promptcraftHuhTheme()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateID accepts ids usable as catalog keys: no spaces or slashes.
func validateID(s string) error {
	switch {
	case strings.TrimSpace(s) == "":
		return fmt.Errorf("id is required")
	case strings.ContainsAny(s, " \t\n/"):
		return fmt.Errorf("id must not contain spaces or slashes")
	}
	return nil
}

func validateQuestionLines(s string) error {
	questions, err := parseQuestionLines(s)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if !prompt.ValidName(q.ID) {
			return fmt.Errorf("question id %q may only use letters, digits, _ - and .", q.ID)
		}
	}
	return nil
}

func validateTemplate(s string) error {
	_, err := prompt.Placeholders(s)
	return err
}
