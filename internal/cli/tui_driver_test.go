package cli

import (
	"testing"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/alexanderramin/promptcraft/internal/teatest"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with inspection of the appModel: the
// active view, the controller state and the last result.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the TUI for app, optionally preselecting a category
// and subcategory, sizes it to 100x40 and drains Init.
func NewTestDriver(t *testing.T, app *App, args ...string) *TestDriver {
	t.Helper()

	ctrl, err := preselect(app, "", args)
	require.NoError(t, err)

	d := teatest.New(t, newAppModel(app, ctrl), teatest.WithSize(100, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Answer types text into the question input and submits it.
func (d *TestDriver) Answer(text string) {
	d.T.Helper()
	d.Submit(text)
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) ActiveViewID() ViewID {
	return d.appModel().view.ID()
}

func (d *TestDriver) ActiveViewTitle() string {
	return d.appModel().view.Title()
}

func (d *TestDriver) State() questionnaire.State {
	return d.appModel().state.Controller.State()
}

func (d *TestDriver) Snapshot() questionnaire.Snapshot {
	return d.appModel().state.Snapshot
}

// Flash returns the status line with styling removed.
func (d *TestDriver) Flash() string {
	return stripStyle(d.appModel().flash)
}

func (d *TestDriver) Result() *domain.GeneratedPrompt {
	return d.appModel().state.Result
}

func (d *TestDriver) EntryID() string {
	return d.appModel().state.EntryID
}

func stripStyle(s string) string {
	return ansi.Strip(s)
}
