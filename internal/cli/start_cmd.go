package cli

import (
	"fmt"

	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newStartCmd(app *App) *cobra.Command {
	var policy prompt.MissingPolicy

	cmd := &cobra.Command{
		Use:   "start [CATEGORY [SUBCATEGORY]]",
		Short: "Build a prompt in the full-screen questionnaire",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := preselect(app, policy, args)
			if err != nil {
				return err
			}
			return app.runProgram(newAppModel(app, ctrl))
		},
	}

	addMissingFlag(cmd.Flags(), &policy)
	return cmd
}

// runStart launches the TUI at the category list.
func runStart(app *App, args []string) error {
	ctrl, err := preselect(app, "", args)
	if err != nil {
		return err
	}
	return app.runProgram(newAppModel(app, ctrl))
}

// preselect creates a controller and applies an optional category and
// subcategory given on the command line.
func preselect(app *App, policy prompt.MissingPolicy, args []string) (*questionnaire.Controller, error) {
	if err := app.requireCatalog(); err != nil {
		return nil, err
	}
	ctrl := app.newController(policy)
	if len(args) > 0 {
		if _, err := ctrl.SelectCategory(args[0]); err != nil {
			return nil, err
		}
	}
	if len(args) > 1 {
		if _, err := ctrl.SelectSubcategory(args[1]); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}

// addMissingFlag registers --missing. The zero value defers to the
// configured policy.
func addMissingFlag(fs *pflag.FlagSet, policy *prompt.MissingPolicy) {
	fs.Var(policy, "missing", fmt.Sprintf("how unanswered optional questions render: %s or %s; overrides config",
		prompt.MissingOmitLine, prompt.MissingEmpty))
}
