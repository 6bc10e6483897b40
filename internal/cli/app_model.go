package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. The questionnaire
// controller owns navigation; appModel turns view messages into controller
// calls and swaps in the view for the resulting state.
type appModel struct {
	state    *SharedState
	view     View
	quitting bool

	// flash is a one-line status message shown above the status bar until
	// the next controller call.
	flash string
}

func newAppModel(app *App, ctrl *questionnaire.Controller) appModel {
	state := &SharedState{
		App:        app,
		Controller: ctrl,
		Snapshot:   ctrl.Snapshot(),
	}
	m := appModel{state: state}
	m.view = m.viewFor(state.Snapshot)
	return m
}

// viewFor builds the view that renders snap.
func (m *appModel) viewFor(snap questionnaire.Snapshot) View {
	switch snap.State {
	case questionnaire.CategorySelected:
		return newChoiceListView(m.state, ViewSubcategories, snap)
	case questionnaire.SubcategorySelected:
		return newQuestionView(m.state, snap)
	case questionnaire.Complete:
		return newResultView(m.state)
	default:
		return newChoiceListView(m.state, ViewCategories, snap)
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.apply(m.state.Controller.Quit())
		}
		return m.forward(msg)

	case chooseMsg:
		ctrl := m.state.Controller
		if ctrl.State() == questionnaire.Idle {
			return m.apply(ctrl.SelectCategory(msg.id))
		}
		return m.apply(ctrl.SelectSubcategory(msg.id))

	case answerMsg:
		return m.apply(m.state.Controller.SubmitAnswer(questionnaire.SanitizeAnswer(msg.text)))

	case navigateMsg:
		return m.apply(m.state.Controller.Do(msg.cmd))

	case exportDoneMsg:
		if msg.err != nil {
			m.flash = formatter.Failure(msg.err.Error())
		} else {
			m.flash = formatter.Success(msg.text)
		}
		return m, nil
	}

	return m.forward(msg)
}

// forward hands msg to the active view.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(View)
	return m, cmd
}

// apply installs the outcome of a controller call. A failed call keeps the
// current view and shows the error; a state change replaces the view.
func (m appModel) apply(snap questionnaire.Snapshot, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.flash = formatter.Failure(friendlyError(err))
		return m, nil
	}
	m.flash = ""

	prev := m.state.Snapshot
	m.state.Snapshot = snap

	switch snap.State {
	case questionnaire.Quit:
		m.quitting = true
		return m, tea.Quit

	case questionnaire.Complete:
		if prev.State != questionnaire.Complete {
			if err := m.finish(); err != nil {
				m.flash = formatter.Failure(err.Error())
			}
		}

	default:
		m.state.ClearResult()
	}

	m.view = m.viewFor(snap)
	cmd := m.view.Init()
	if m.state.Width > 0 {
		updated, _ := m.view.Update(tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height})
		m.view = updated.(View)
	}
	return m, cmd
}

// finish assembles the completed prompt and records it in history.
func (m *appModel) finish() error {
	app := m.state.App
	p, err := m.state.Controller.Result(app.now())
	if err != nil {
		return fmt.Errorf("assembling prompt: %w", err)
	}
	m.state.Result = p
	m.state.EntryID = recordPrompt(context.Background(), app, p)
	return nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.view.View(),
		m.flash,
		m.renderStatusBar(),
	}
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("promptcraft")

	snap := m.state.Snapshot
	var crumbs []string
	if snap.CategoryName != "" {
		crumbs = append(crumbs, snap.CategoryName)
	}
	if snap.SubcategoryName != "" {
		crumbs = append(crumbs, snap.SubcategoryName)
	}
	if t := m.view.Title(); t != "" {
		crumbs = append(crumbs, t)
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + breadcrumb + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	for _, b := range m.view.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	hints = append(hints, formatter.Dim("ctrl+c: quit"))

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// friendlyError drops the trailing sentinel text from input errors so the
// message reads as a sentence.
func friendlyError(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrInvalidOperation, domain.ErrNotFound} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
		}
	}
	return msg
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
