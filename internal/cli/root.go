package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/promptcraft/internal/catalog"
	"github.com/alexanderramin/promptcraft/internal/config"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/alexanderramin/promptcraft/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the catalog, services and process settings used by CLI commands.
type App struct {
	Catalog *catalog.Catalog
	// CatalogErr is set when custom catalog files failed to load; Catalog
	// then holds only the built-in categories.
	CatalogErr error

	Config  *config.Config
	History service.HistoryService
	Export  service.ExportService
	Logger  *zap.Logger

	// Policy is the default treatment of unanswered optional questions.
	Policy prompt.MissingPolicy

	// Now defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// RunProgram runs a bubbletea model; tests replace it. Defaults to a
	// full-screen tea.Program.
	RunProgram func(m tea.Model) error
}

// requireCatalog fails commands that build prompts while the custom catalog
// is broken.
func (a *App) requireCatalog() error {
	if a.CatalogErr != nil {
		return fmt.Errorf("loading catalog: %w (run \"promptcraft catalog validate\")", a.CatalogErr)
	}
	return nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) newController(policy prompt.MissingPolicy) *questionnaire.Controller {
	if policy == "" {
		policy = a.Policy
	}
	if policy == "" {
		policy = prompt.MissingOmitLine
	}
	return questionnaire.NewController(a.Catalog, questionnaire.WithMissingPolicy(policy))
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "promptcraft" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "promptcraft",
		Short: "Build AI prompts by answering a short questionnaire",
		Long: `promptcraft walks you from a category to a prompt type, asks a few
questions and fills a template with your answers. The result can be
copied, saved to a file and found again in the history.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runStart(app, nil)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStartCmd(app),
		newAskCmd(app),
		newGenerateCmd(app),
		newCategoriesCmd(app),
		newQuestionsCmd(app),
		newHistoryCmd(app),
		newStatsCmd(app),
		newCatalogCmd(app),
		newGuideCmd(app),
		newConfigCmd(app),
	)

	return root
}

// recordPrompt stores a generated prompt in history. Failures are logged and
// reported as an empty id so the prompt itself is never lost.
func recordPrompt(ctx context.Context, app *App, p *domain.GeneratedPrompt) string {
	if app.History == nil {
		return ""
	}
	entry, err := app.History.Record(ctx, p)
	if err != nil {
		app.logger().Warn("recording prompt failed",
			zap.String("category", p.CategoryID),
			zap.String("subcategory", p.SubcategoryID),
			zap.Error(err))
		return ""
	}
	return entry.ID
}
