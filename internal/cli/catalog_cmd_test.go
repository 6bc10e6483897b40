package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/promptcraft/internal/catalog"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emailCatalog = `categories:
  - id: email
    name: Email
    description: Everyday correspondence
    subcategories:
      - id: reply
        name: Reply
        questions:
          - id: tone
            text: What tone?
          - id: points
            text: Which points?
            optional: true
        template: |
          Write a {tone} reply.
          Cover: {points}
`

func writeCatalogFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// withCustomCatalog installs emailCatalog in the catalog directory and
// reloads app.Catalog from it.
func withCustomCatalog(t *testing.T, app *App) string {
	t.Helper()
	path := writeCatalogFile(t, app.Config.CatalogDir, "email.yaml", emailCatalog)
	c, err := catalog.Load(app.Config.CatalogDir)
	require.NoError(t, err)
	app.Catalog = c
	return path
}

// --- categories / questions ---

func TestCategoriesCmd(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "categories")
	require.NoError(t, err)
	assert.Contains(t, output, "SUBCATEGORIES")
	assert.Regexp(t, `app\s+App\s+mobile, web\s+built-in`, output)
	assert.Regexp(t, `art\s+Art\s+poster`, output)
}

func TestCategoriesCmd_MarksCustom(t *testing.T) {
	app := testApp(t)
	withCustomCatalog(t, app)

	output, err := executeCmd(t, app, "ls")
	require.NoError(t, err)
	assert.Regexp(t, `email\s+Email\s+reply\s+custom`, output)
}

func TestCategoriesCmd_Tree(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "categories", "--tree")
	require.NoError(t, err)
	assert.Regexp(t, `├─ Mobile App \(mobile\)\s+\[ 3 questions \]`, output)
	assert.Regexp(t, `└─ Poster \(poster\)\s+\[ 2 questions \]`, output)
	assert.NotContains(t, output, "SUBCATEGORIES")
}

func TestQuestionsCmd(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "questions", "app", "mobile")
	require.NoError(t, err)
	assert.Contains(t, output, "APP › MOBILE APP")
	assert.Regexp(t, `budget\s+Any budget\?\s+optional`, output)
	assert.Contains(t, output, "TEMPLATE\n  Build a {style} app for {audience}\n  Budget: {budget}\n")
}

func TestQuestionsCmd_Unknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "questions", "app", "desktop")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- catalog validate ---

func TestCatalogValidate_EmptyDirectory(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, output, "built-in catalog is valid; no custom files in "+app.Config.CatalogDir)
}

func TestCatalogValidate_Directory(t *testing.T) {
	app := testApp(t)
	writeCatalogFile(t, app.Config.CatalogDir, "email.yaml", emailCatalog)

	output, err := executeCmd(t, app, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, output, "✔ "+app.Config.CatalogDir+" is valid")
	assert.Contains(t, output, "email Email  1 subcategory, 2 questions")
}

func TestCatalogValidate_FileInsideDirectoryChecksEverything(t *testing.T) {
	app := testApp(t)
	path := writeCatalogFile(t, app.Config.CatalogDir, "email.yaml", emailCatalog)
	writeCatalogFile(t, app.Config.CatalogDir, "dup.yaml", emailCatalog)

	_, err := executeCmd(t, app, "catalog", "validate", path)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestCatalogValidate_WorksWhileCatalogIsBroken(t *testing.T) {
	app := testApp(t)
	writeCatalogFile(t, app.Config.CatalogDir, "bad.yaml", "categories: [oops")
	_, app.CatalogErr = catalog.Load(app.Config.CatalogDir)
	require.Error(t, app.CatalogErr)

	_, err := executeCmd(t, app, "catalog", "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestCatalogValidate_File(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		wantOut string
	}{
		{
			name:    "valid yaml",
			file:    "email.yaml",
			content: emailCatalog,
			wantOut: "email Email  1 subcategory, 2 questions",
		},
		{
			name:    "valid json",
			file:    "notes.json",
			content: `{"categories":[{"id":"notes","name":"Notes","subcategories":[{"id":"todo","name":"Todo","questions":[{"id":"task","text":"Task?"}],"template":"Do {task}"}]}]}`,
			wantOut: "notes Notes  1 subcategory, 1 question",
		},
		{
			name:    "clashes with existing category",
			file:    "app.yaml",
			content: "categories:\n  - id: app\n    name: Again\n    subcategories:\n      - id: x\n        name: X\n        questions: [{id: q, text: Q?}]\n        template: \"{q}\"\n",
			wantErr: domain.ErrDataIntegrity,
		},
		{
			name:    "unknown placeholder",
			file:    "bad.yaml",
			content: "categories:\n  - id: bad\n    name: Bad\n    subcategories:\n      - id: x\n        name: X\n        questions: [{id: q, text: Q?}]\n        template: \"{nope}\"\n",
			wantErr: domain.ErrDataIntegrity,
		},
		{
			name:    "unknown field",
			file:    "typo.yaml",
			content: "categories:\n  - id: typo\n    nmae: Typo\n",
			wantErr: domain.ErrDataIntegrity,
		},
		{
			name:    "no categories",
			file:    "empty.yaml",
			content: "categories: []\n",
			wantErr: domain.ErrDataIntegrity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := testApp(t)
			path := writeCatalogFile(t, t.TempDir(), tc.file, tc.content)

			output, err := executeCmd(t, app, "catalog", "validate", path)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, "✔ "+path+" is valid")
			assert.Contains(t, output, tc.wantOut)
		})
	}
}

// --- catalog import ---

func TestCatalogImport(t *testing.T) {
	app := testApp(t)
	src := writeCatalogFile(t, t.TempDir(), "email.yaml", emailCatalog)

	output, err := executeCmd(t, app, "catalog", "import", src)
	require.NoError(t, err)

	dst := filepath.Join(app.Config.CatalogDir, "email.yaml")
	assert.Contains(t, output, "Imported "+dst)
	assert.FileExists(t, dst)

	_, err = executeCmd(t, app, "catalog", "import", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCatalogImport_InvalidFileIsNotCopied(t *testing.T) {
	app := testApp(t)
	src := writeCatalogFile(t, t.TempDir(), "bad.yaml", "categories: [oops")

	_, err := executeCmd(t, app, "catalog", "import", src)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(app.Config.CatalogDir, "bad.yaml"))
}

// --- catalog remove ---

func TestCatalogRemove(t *testing.T) {
	t.Run("with --yes", func(t *testing.T) {
		app := testApp(t)
		path := withCustomCatalog(t, app)

		output, err := executeCmd(t, app, "catalog", "remove", "email", "--yes")
		require.NoError(t, err)
		assert.Contains(t, output, "Removed "+path)
		assert.NoFileExists(t, path)
	})

	t.Run("confirmed on stdin", func(t *testing.T) {
		app := testApp(t)
		path := withCustomCatalog(t, app)

		output, err := executeCmdWithInput(t, app, "y\n", "catalog", "remove", "email")
		require.NoError(t, err)
		assert.Contains(t, output, "Delete "+path+" and every category in it? [y/N] ")
		assert.NoFileExists(t, path)
	})

	t.Run("declined", func(t *testing.T) {
		app := testApp(t)
		path := withCustomCatalog(t, app)

		output, err := executeCmdWithInput(t, app, "\n", "catalog", "remove", "email")
		require.NoError(t, err)
		assert.Contains(t, output, "Cancelled.")
		assert.FileExists(t, path)
	})

	t.Run("built-in category", func(t *testing.T) {
		app := testApp(t)

		_, err := executeCmd(t, app, "catalog", "remove", "app", "--yes")
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("unknown category", func(t *testing.T) {
		app := testApp(t)

		_, err := executeCmd(t, app, "catalog", "remove", "nope", "--yes")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// --- catalog new ---

func TestCatalogNew_FromFlags(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "catalog", "new",
		"--id", "email", "--name", "Email",
		"--sub-id", "reply", "--sub-name", "Reply",
		"-q", "tone=What tone?", "-q", "?key_points=Which points?")
	require.NoError(t, err)

	path := filepath.Join(app.Config.CatalogDir, "email.yaml")
	assert.Contains(t, output, "Wrote "+path)

	cats, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	sub := cats[0].Subcategories[0]
	want := []domain.Question{
		{ID: "tone", Text: "What tone?"},
		{ID: "key_points", Text: "Which points?", Optional: true},
	}
	if diff := cmp.Diff(want, sub.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Tone: {tone}\nKey points: {key_points}", sub.Template)

	reloaded, err := catalog.Load(app.Config.CatalogDir)
	require.NoError(t, err)
	_, _, err = reloaded.Subcategory("email", "reply")
	assert.NoError(t, err)
}

func TestCatalogNew_CustomFileAndTemplate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "catalog", "new", "--file", "mine",
		"--id", "email", "--name", "Email", "--sub-id", "reply", "--sub-name", "Reply",
		"-q", "tone=What tone?", "--template", "Reply in a {tone} tone.")
	require.NoError(t, err)

	cats, err := catalog.LoadFile(filepath.Join(app.Config.CatalogDir, "mine.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Reply in a {tone} tone.", cats[0].Subcategories[0].Template)
}

func TestCatalogNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "incomplete without a terminal",
			args:    []string{"--id", "email"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "clashes with existing category",
			args:    []string{"--id", "app", "--name", "App", "--sub-id", "x", "--sub-name", "X", "-q", "a=A?"},
			wantErr: domain.ErrDataIntegrity,
		},
		{
			name:    "template with unknown placeholder",
			args:    []string{"--id", "e", "--name", "E", "--sub-id", "x", "--sub-name", "X", "-q", "a=A?", "--template", "{b}"},
			wantErr: domain.ErrDataIntegrity,
		},
		{
			name:    "malformed question",
			args:    []string{"--id", "e", "--name", "E", "--sub-id", "x", "--sub-name", "X", "-q", "no equals"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := testApp(t)

			_, err := executeCmd(t, app, append([]string{"catalog", "new"}, tc.args...)...)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseQuestionLines(t *testing.T) {
	got, err := parseQuestionLines("tone = What tone?\n\n?extra=Anything else?\n")
	require.NoError(t, err)
	want := []domain.Question{
		{ID: "tone", Text: "What tone?"},
		{ID: "extra", Text: "Anything else?", Optional: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseQuestionLines mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"", "   \n", "?=text", "=text", "no separator"} {
		_, err := parseQuestionLines(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}
