package cli

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

func newGuideCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Explain how to write custom categories and templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprint(out, guideMarkdown)
				return nil
			}
			rendered, err := renderMarkdown(guideMarkdown, 80, app.interactive())
			if err != nil {
				return fmt.Errorf("rendering guide: %w", err)
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "markdown", false, "print the guide as markdown source")
	return cmd
}
