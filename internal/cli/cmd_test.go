package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/promptcraft/internal/config"
	"github.com/alexanderramin/promptcraft/internal/db"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/repository"
	"github.com/alexanderramin/promptcraft/internal/service"
	"github.com/alexanderramin/promptcraft/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeClipboard records what was copied.
type fakeClipboard struct {
	text  string
	calls int
	err   error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// testApp wires a full App backed by an in-memory DB, a temp home directory
// and the test catalog.
func testApp(t *testing.T) *App {
	t.Helper()
	app, _ := testAppWithClipboard(t)
	return app
}

func testAppWithClipboard(t *testing.T) (*App, *fakeClipboard) {
	t.Helper()
	database := testutil.NewTestDB(t)
	cfg := config.Default(t.TempDir())

	history := service.NewHistoryService(
		repository.NewSQLiteHistoryRepo(database),
		db.NewSQLiteUnitOfWork(database),
		cfg.HistoryLimit,
	)
	clip := &fakeClipboard{}
	export := service.NewExportService(
		service.NewSaver(cfg.OutputDir),
		service.NewCopier(clip, false),
		history,
	)

	return &App{
		Catalog:       testutil.NewCatalog(t),
		Config:        cfg,
		History:       history,
		Export:        export,
		Policy:        cfg.MissingPolicy(),
		Now:           func() time.Time { return testutil.BaseTime },
		IsInteractive: func() bool { return false },
		RunProgram: func(tea.Model) error {
			t.Fatal("unexpected full-screen program")
			return nil
		},
	}, clip
}

// executeCmd runs a cobra command with empty stdin and captures stdout and
// stderr together.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

// executeCmdWithInput runs a cobra command reading input as stdin.
func executeCmdWithInput(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetIn(strings.NewReader(input))
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.Strip(buf.String()), err
}

// executeCmdStreams keeps stdout and stderr apart.
func executeCmdStreams(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(""))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.Strip(stdout.String()), ansi.Strip(stderr.String()), err
}

// recordEntry stores a generated prompt and returns its history entry.
func recordEntry(t *testing.T, app *App, opts ...func(*domain.GeneratedPrompt)) *domain.HistoryEntry {
	t.Helper()
	e, err := app.History.Record(context.Background(), testutil.NewTestPrompt(opts...))
	require.NoError(t, err)
	return e
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "promptcraft")
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "history")
}

func TestRootCmd_InteractiveStartsQuestionnaire(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	var got tea.Model
	app.RunProgram = func(m tea.Model) error {
		got = m
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)
	require.IsType(t, appModel{}, got)
	assert.Equal(t, ViewCategories, got.(appModel).view.ID())
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "app")
	assert.Error(t, err)
}

// --- start ---

func TestStartCmd_PreselectsSubcategory(t *testing.T) {
	app := testApp(t)

	var got tea.Model
	app.RunProgram = func(m tea.Model) error {
		got = m
		return nil
	}

	_, err := executeCmd(t, app, "start", "app", "mobile")
	require.NoError(t, err)
	m := got.(appModel)
	assert.Equal(t, ViewQuestion, m.view.ID())
	assert.Equal(t, "style", m.state.Snapshot.Question.ID)
}

func TestStartCmd_UnknownCategory(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "start", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStartCmd_RejectsUnknownMissingPolicy(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "start", "--missing", "drop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown missing-answer policy")
}

// --- broken catalog ---

func TestBrokenCatalog_BlocksPromptCommands(t *testing.T) {
	app := testApp(t)
	app.CatalogErr = errors.New("parsing bad.yaml: boom")

	for _, args := range [][]string{
		{"generate", "app", "web", "-a", "stack=go"},
		{"ask"},
		{"categories"},
		{"questions", "app", "web"},
	} {
		_, err := executeCmd(t, app, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "catalog validate", args)
	}

	output, err := executeCmd(t, app, "catalog", "path")
	require.NoError(t, err)
	assert.Equal(t, app.Config.CatalogDir+"\n", output)
}

// --- recordPrompt ---

type failingHistory struct {
	service.HistoryService
}

func (failingHistory) Record(context.Context, *domain.GeneratedPrompt) (*domain.HistoryEntry, error) {
	return nil, errors.New("disk full")
}

func TestRecordPrompt_FailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	app := testApp(t)
	app.History = failingHistory{}
	app.Logger = zap.New(core)

	id := recordPrompt(context.Background(), app, testutil.NewTestPrompt())

	assert.Empty(t, id)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "recording prompt failed", entry.Message)
	assert.Equal(t, "app", entry.ContextMap()["category"])
	assert.Equal(t, "disk full", entry.ContextMap()["error"])
}

func TestRecordPrompt_NoHistory(t *testing.T) {
	app := testApp(t)
	app.History = nil

	assert.Empty(t, recordPrompt(context.Background(), app, testutil.NewTestPrompt()))
}
