package cli

import (
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewCategories ViewID = iota
	ViewSubcategories
	ViewQuestion
	ViewResult
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// chooseMsg selects a category or subcategory by id.
type chooseMsg struct {
	id string
}

// answerMsg submits text for the current question.
type answerMsg struct {
	text string
}

// navigateMsg runs a questionnaire navigation command.
type navigateMsg struct {
	cmd questionnaire.Command
}

// exportDoneMsg reports the outcome of a copy or save started from the result view.
type exportDoneMsg struct {
	text string
	err  error
}

func choose(id string) tea.Cmd {
	return func() tea.Msg { return chooseMsg{id: id} }
}

func answer(text string) tea.Cmd {
	return func() tea.Msg { return answerMsg{text: text} }
}

func navigate(cmd questionnaire.Command) tea.Cmd {
	return func() tea.Msg { return navigateMsg{cmd: cmd} }
}
