package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("history is not available")

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously generated prompts",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistorySearchCmd(app),
		newHistoryCopyCmd(app),
		newHistorySaveCmd(app),
		newHistoryDeleteCmd(app),
		newHistoryClearCmd(app),
	)

	return cmd
}

func requireHistory(app *App) error {
	if app.History == nil {
		return errNoHistory
	}
	return nil
}

func newHistoryListCmd(app *App) *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent prompts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			var (
				entries []*domain.HistoryEntry
				err     error
			)
			if category != "" {
				entries, err = app.History.ListByCategory(cmd.Context(), category, limit)
			} else {
				entries, err = app.History.ListRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryList(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only prompts of this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of prompts (0 for all)")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a prompt from history",
		Long:  "Show a prompt from history. ID may be any unique prefix of the entry id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			e, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), e.Content)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryEntry(e))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the prompt text")
	return cmd
}

func newHistorySearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Find prompts whose text contains TERM (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			entries, err := app.History.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryList(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of prompts (0 for all)")
	return cmd
}

// promptFromEntry rebuilds the exportable prompt of a history entry. Names
// fall back to ids when the category is no longer in the catalog.
func promptFromEntry(app *App, e *domain.HistoryEntry) *domain.GeneratedPrompt {
	p := &domain.GeneratedPrompt{
		CategoryID:      e.CategoryID,
		CategoryName:    e.CategoryID,
		SubcategoryID:   e.SubcategoryID,
		SubcategoryName: e.SubcategoryID,
		Content:         e.Content,
		Answers:         e.Answers,
		GeneratedAt:     e.CreatedAt,
	}
	if app.Catalog != nil {
		if cat, sub, err := app.Catalog.Subcategory(e.CategoryID, e.SubcategoryID); err == nil {
			p.CategoryName, p.SubcategoryName = cat.Name, sub.Name
		}
	}
	return p
}

func newHistoryCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID",
		Short: "Copy a prompt from history to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			e, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Export.Copy(cmd.Context(), promptFromEntry(app, e), e.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Copied to clipboard."))
			return nil
		},
	}
}

func newHistorySaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save ID",
		Short: "Write a prompt from history to the output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			e, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			path, err := app.Export.Save(cmd.Context(), promptFromEntry(app, e), e.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved to "+path))
			return nil
		},
	}
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a prompt from history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+args[0]))
			return nil
		},
	}
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every prompt from history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, app, "Delete all prompts from history?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			n, err := app.History.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted %s.", formatter.Plural(int(n), "prompt", "prompts"))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show prompt history statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHistory(app); err != nil {
				return err
			}
			stats, err := app.History.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(stats, app.now()))
			return nil
		},
	}
}
