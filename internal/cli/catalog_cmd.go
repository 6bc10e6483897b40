package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/catalog"
	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"ls"},
		Short:   "List prompt categories and their prompt types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireCatalog(); err != nil {
				return err
			}
			cats := app.Catalog.Categories()
			if tree {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalogTree(cats))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories(cats))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "show prompt types and question counts as a tree")
	return cmd
}

func newQuestionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "questions CATEGORY SUBCATEGORY",
		Short: "Show the questions and template of a prompt type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireCatalog(); err != nil {
				return err
			}
			cat, sub, err := app.Catalog.Subcategory(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestions(cat, sub))
			return nil
		},
	}
}

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage custom catalog files",
		Long: `Custom categories live in JSON or YAML files in the catalog directory
and are loaded after the built-in categories. Every file is validated
together with the built-ins at startup.`,
	}

	cmd.AddCommand(
		newCatalogValidateCmd(app),
		newCatalogImportCmd(app),
		newCatalogRemoveCmd(app),
		newCatalogNewCmd(app),
		newCatalogPathCmd(app),
	)

	return cmd
}

func catalogDir(app *App) string {
	if app.Config == nil {
		return ""
	}
	return app.Config.CatalogDir
}

func newCatalogValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a catalog file, or the whole catalog directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dir := catalogDir(app)

			if len(args) == 0 || inDir(args[0], dir) {
				custom, err := catalog.LoadDir(dir)
				if err != nil {
					return err
				}
				if _, err := catalog.Load(dir); err != nil {
					return err
				}
				if len(custom) == 0 {
					fmt.Fprintln(out, formatter.Success("built-in catalog is valid; no custom files in "+dir))
					return nil
				}
				fmt.Fprint(out, formatter.FormatValidation(dir, custom))
				return nil
			}

			cats, err := catalog.CheckFile(app.Catalog, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatValidation(args[0], cats))
			return nil
		},
	}
}

// inDir reports whether path names a file directly inside dir.
func inDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	absPath, err1 := filepath.Abs(path)
	absDir, err2 := filepath.Abs(dir)
	return err1 == nil && err2 == nil && filepath.Dir(absPath) == absDir
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a catalog file and copy it into the catalog directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireCatalog(); err != nil {
				return err
			}
			dst, err := catalog.ImportFile(app.Catalog, args[0], catalogDir(app))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Imported "+dst))
			return nil
		},
	}
}

func newCatalogRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove CATEGORY",
		Short: "Delete the catalog file that defines a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog.Category(args[0])
			if err != nil {
				return err
			}
			if !cat.IsCustom() {
				return fmt.Errorf("category %q is built in: %w", cat.ID, domain.ErrInvalidOperation)
			}
			if !yes {
				ok, err := confirm(cmd, app, fmt.Sprintf("Delete %s and every category in it?", cat.Source))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			path, err := catalog.RemoveCategory(app.Catalog, cat.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed "+path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newCatalogPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the catalog directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), catalogDir(app))
			return nil
		},
	}
}

// catalogDraft collects the fields of a new single-subcategory catalog file.
type catalogDraft struct {
	File        string
	ID          string
	Name        string
	Description string
	SubID       string
	SubName     string
	Questions   string // one "id=text" per line; a leading "?" marks optional
	Template    string
}

func (d *catalogDraft) complete() bool {
	return d.ID != "" && d.Name != "" && d.SubID != "" && d.SubName != "" && strings.TrimSpace(d.Questions) != ""
}

// category builds the domain category. An empty template becomes one
// "Label: {id}" line per question.
func (d *catalogDraft) category() (domain.Category, error) {
	questions, err := parseQuestionLines(d.Questions)
	if err != nil {
		return domain.Category{}, err
	}
	tmpl := strings.TrimSpace(d.Template)
	if tmpl == "" {
		tmpl = defaultTemplate(questions)
	}
	return domain.Category{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Subcategories: []domain.Subcategory{{
			ID:        d.SubID,
			Name:      d.SubName,
			Questions: questions,
			Template:  tmpl,
		}},
	}, nil
}

// parseQuestionLines reads "id=text" lines. Blank lines are ignored.
func parseQuestionLines(s string) ([]domain.Question, error) {
	var questions []domain.Question
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, text, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("question %q: expected id=text: %w", line, domain.ErrValidation)
		}
		id = strings.TrimSpace(id)
		if strings.TrimPrefix(id, "?") == "" {
			return nil, fmt.Errorf("question %q: id is required: %w", line, domain.ErrValidation)
		}
		q := domain.Question{ID: strings.TrimPrefix(id, "?"), Text: strings.TrimSpace(text)}
		q.Optional = strings.HasPrefix(id, "?")
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("at least one question is required: %w", domain.ErrValidation)
	}
	return questions, nil
}

func defaultTemplate(questions []domain.Question) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		label := strings.ReplaceAll(q.ID, "_", " ")
		label = strings.ToUpper(label[:1]) + label[1:]
		lines = append(lines, fmt.Sprintf("%s: {%s}", label, q.ID))
	}
	return strings.Join(lines, "\n")
}

func newCatalogNewCmd(app *App) *cobra.Command {
	var (
		d         catalogDraft
		questions []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a custom catalog file",
		Long: `New writes a YAML catalog file with one category and one prompt type.
Without flags it opens a form. Questions are given as id=text; prefix the
id with ? to make the question optional. Without --template, the template
gets one "Label: {id}" line per question.`,
		Example: `  promptcraft catalog new --id email --name Email --sub-id reply --sub-name "Reply" \
    --question "tone=What tone?" --question "?points=Key points to cover?"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireCatalog(); err != nil {
				return err
			}
			d.Questions = strings.Join(questions, "\n")
			if !d.complete() {
				if !app.interactive() {
					return fmt.Errorf("--id, --name, --sub-id, --sub-name and --question are required: %w", domain.ErrValidation)
				}
				if err := wizardCatalogDraft(&d).Run(); err != nil {
					return err
				}
			}

			cat, err := d.category()
			if err != nil {
				return err
			}
			name := d.File
			if name == "" {
				name = d.ID
			}
			path, err := catalog.WriteFile(app.Catalog, catalogDir(app), name, []domain.Category{cat})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&d.File, "file", "", "file name without extension (default: category id)")
	cmd.Flags().StringVar(&d.ID, "id", "", "category id")
	cmd.Flags().StringVar(&d.Name, "name", "", "category name")
	cmd.Flags().StringVar(&d.Description, "description", "", "category description")
	cmd.Flags().StringVar(&d.SubID, "sub-id", "", "prompt type id")
	cmd.Flags().StringVar(&d.SubName, "sub-name", "", "prompt type name")
	cmd.Flags().StringArrayVarP(&questions, "question", "q", nil, "question as id=text (repeatable, ?id for optional)")
	cmd.Flags().StringVar(&d.Template, "template", "", "prompt template using {id} placeholders")

	return cmd
}
