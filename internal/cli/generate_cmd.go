package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/alexanderramin/promptcraft/internal/service"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		pairs     []string
		policy    prompt.MissingPolicy
		save      bool
		copyOut   bool
		noHistory bool
		metadata  bool
	)

	cmd := &cobra.Command{
		Use:   "generate CATEGORY SUBCATEGORY",
		Short: "Assemble a prompt from answers given as flags",
		Example: `  promptcraft generate code script --answer task="rename photos by date" --answer language=python
  promptcraft generate image fantasy -a subject=lighthouse -a art_style=watercolor --missing empty --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			answers, err := parseAnswerPairs(pairs)
			if err != nil {
				return err
			}

			ctrl, err := preselect(app, policy, args)
			if err != nil {
				return err
			}
			if err := answerAll(ctrl, answers); err != nil {
				return err
			}
			p, err := ctrl.Result(app.now())
			if err != nil {
				return fmt.Errorf("assembling prompt: %w", err)
			}

			var entryID string
			if !noHistory {
				entryID = recordPrompt(ctx, app, p)
			}

			out := cmd.OutOrStdout()
			if metadata {
				fmt.Fprint(out, service.Header(p))
			}
			fmt.Fprintln(out, p.Content)

			// Export notices go to stderr so stdout stays the bare prompt.
			errOut := cmd.ErrOrStderr()
			if save {
				path, err := app.Export.Save(ctx, p, entryID)
				if err != nil {
					return err
				}
				fmt.Fprintln(errOut, formatter.Success("Saved to "+path))
			}
			if copyOut {
				if err := app.Export.Copy(ctx, p, entryID); err != nil {
					return err
				}
				fmt.Fprintln(errOut, formatter.Success("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&pairs, "answer", "a", nil, "answer as question_id=text (repeatable)")
	addMissingFlag(cmd.Flags(), &policy)
	cmd.Flags().BoolVar(&save, "save", false, "write the prompt to the output directory")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the prompt to the clipboard")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the prompt in history")
	cmd.Flags().BoolVar(&metadata, "metadata", false, "print the category header above the prompt")

	return cmd
}

// parseAnswerPairs splits key=value flags. A repeated key keeps the last value.
func parseAnswerPairs(pairs []string) (map[string]string, error) {
	answers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("answer %q: expected question_id=text: %w", pair, domain.ErrValidation)
		}
		answers[k] = v
	}
	return answers, nil
}

// answerAll walks the question loop, answering from answers and skipping
// questions without one. Unknown ids are rejected before anything is asked.
func answerAll(ctrl *questionnaire.Controller, answers map[string]string) error {
	sub := ctrl.Session().Subcategory
	if sub == nil {
		return fmt.Errorf("no prompt type selected: %w", domain.ErrInvalidOperation)
	}

	var unknown []string
	for id := range answers {
		if _, ok := sub.Question(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown question %s for %s (see \"promptcraft questions\"): %w",
			strings.Join(unknown, ", "), sub.ID, domain.ErrValidation)
	}

	for ctrl.State() == questionnaire.SubcategorySelected {
		q := ctrl.Snapshot().Question
		text := questionnaire.SanitizeAnswer(answers[q.ID])
		if text == "" && !q.Optional {
			return fmt.Errorf("missing answer for required question %q (--answer %s=...): %w", q.ID, q.ID, domain.ErrValidation)
		}
		if _, err := ctrl.SubmitAnswer(text); err != nil {
			return err
		}
	}
	return nil
}
