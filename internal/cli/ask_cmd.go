package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/spf13/cobra"
)

// errInputEnded is returned when stdin closes before the questionnaire is
// complete.
var errInputEnded = fmt.Errorf("input ended before the prompt was complete: %w", io.ErrUnexpectedEOF)

func newAskCmd(app *App) *cobra.Command {
	var policy prompt.MissingPolicy

	cmd := &cobra.Command{
		Use:   "ask [CATEGORY [SUBCATEGORY]]",
		Short: "Build a prompt line by line on stdin/stdout",
		Long: `Ask runs the questionnaire as plain line-oriented prompts, for pipes,
scripts and terminals without full-screen support.

Type a number, id or name to pick from a menu and plain text to answer a
question. ` + questionnaire.CommandHelp + `.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := preselect(app, policy, args)
			if err != nil {
				return err
			}
			s := &askSession{
				app:  app,
				ctrl: ctrl,
				in:   cmd.InOrStdin(),
				out:  cmd.OutOrStdout(),
			}
			return s.run(cmd.Context())
		},
	}

	addMissingFlag(cmd.Flags(), &policy)
	return cmd
}

// askSession drives a questionnaire controller over line-oriented I/O.
type askSession struct {
	app  *App
	ctrl *questionnaire.Controller
	in   io.Reader
	out  io.Writer

	result  *domain.GeneratedPrompt
	entryID string
}

func (s *askSession) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(s.out, formatter.Dim(questionnaire.CommandHelp))
	s.render(s.ctrl.Snapshot())

	for {
		if s.ctrl.IsComplete() {
			done, err := s.complete(ctx)
			if err != nil || done {
				return err
			}
			continue
		}

		fmt.Fprint(s.out, promptFor(s.ctrl.State()))
		line, err := readPromptLine(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return errInputEnded
			}
			return err
		}

		snap, cmd, err := s.ctrl.Handle(line)
		switch {
		case cmd == questionnaire.CmdHelp:
			fmt.Fprintln(s.out, formatter.Dim(questionnaire.CommandHelp))
			continue
		case err != nil:
			fmt.Fprintln(s.out, "  "+formatter.Failure(friendlyError(err)))
			continue
		case snap.State == questionnaire.Quit:
			fmt.Fprintln(s.out, formatter.Dim("Bye."))
			return nil
		}
		s.render(snap)
	}
}

// complete shows the assembled prompt and handles the follow-up actions.
// It reports done when the user quits or input ends.
func (s *askSession) complete(ctx context.Context) (bool, error) {
	if s.result == nil {
		p, err := s.ctrl.Result(s.app.now())
		if err != nil {
			return true, fmt.Errorf("assembling prompt: %w", err)
		}
		s.result = p
		s.entryID = recordPrompt(ctx, s.app, p)

		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, formatter.Header(p.CategoryName+" › "+p.SubcategoryName))
		fmt.Fprintln(s.out, p.Content)
		fmt.Fprintln(s.out)
	}

	fmt.Fprint(s.out, formatter.Dim("[c]opy [s]ave [r]ewind [b]ack [n]ew [q]uit: "))
	line, err := readPromptLine(s.in)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return true, nil
		}
		return true, err
	}

	var snap questionnaire.Snapshot
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "c", "copy":
		s.reportExport("Copied to clipboard.", s.exportCopy(ctx))
		return false, nil
	case "s", "save":
		path, err := s.exportSave(ctx)
		s.reportExport("Saved to "+path, err)
		return false, nil
	case "r", "rewind":
		snap, err = s.ctrl.Rewind()
	case "b", "back":
		snap, err = s.ctrl.Back()
	case "n", "new", "restart", "home":
		snap, err = s.ctrl.Restart()
	case "q", "quit", "exit":
		return true, nil
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}
	s.result, s.entryID = nil, ""
	s.render(snap)
	return false, nil
}

func (s *askSession) exportCopy(ctx context.Context) error {
	if s.app.Export == nil {
		return errors.New("export is not configured")
	}
	return s.app.Export.Copy(ctx, s.result, s.entryID)
}

func (s *askSession) exportSave(ctx context.Context) (string, error) {
	if s.app.Export == nil {
		return "", errors.New("export is not configured")
	}
	return s.app.Export.Save(ctx, s.result, s.entryID)
}

func (s *askSession) reportExport(ok string, err error) {
	if err != nil {
		fmt.Fprintln(s.out, "  "+formatter.Failure(err.Error()))
		return
	}
	fmt.Fprintln(s.out, "  "+formatter.Success(ok))
}

// render prints the menu or question for snap.
func (s *askSession) render(snap questionnaire.Snapshot) {
	switch snap.State {
	case questionnaire.Idle:
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, formatter.Header("Categories"))
		s.renderChoices(snap.Choices)
	case questionnaire.CategorySelected:
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, formatter.Header(snap.CategoryName))
		s.renderChoices(snap.Choices)
	case questionnaire.SubcategorySelected:
		q := snap.Question
		if q == nil {
			return
		}
		line := formatter.Dim("["+snap.Progress()+"]") + " " + formatter.Bold(q.Text)
		if q.Optional {
			line += " " + formatter.Dim("(optional, enter to skip)")
		}
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, line)
		if q.Hint != "" {
			fmt.Fprintln(s.out, "  "+formatter.Dim(q.Hint))
		}
	}
}

func (s *askSession) renderChoices(choices []questionnaire.Choice) {
	for i, c := range choices {
		line := fmt.Sprintf("  %2d. %s", i+1, formatter.Bold(c.Name))
		if c.Description != "" {
			line += "  " + formatter.Dim(c.Description)
		}
		fmt.Fprintln(s.out, line)
	}
}

func promptFor(state questionnaire.State) string {
	switch state {
	case questionnaire.Idle:
		return "Select a category: "
	case questionnaire.CategorySelected:
		return "Select a prompt type: "
	default:
		return "> "
	}
}
