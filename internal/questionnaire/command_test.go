package questionnaire

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"back", CmdBack},
		{" B ", CmdBack},
		{"home", CmdHome},
		{"h", CmdHome},
		{"restart", CmdRestart},
		{"r", CmdRestart},
		{"quit", CmdQuit},
		{"EXIT", CmdQuit},
		{"q", CmdQuit},
		{"skip", CmdSkip},
		{"sk", CmdSkip},
		{"next", CmdSkip},
		{"n", CmdSkip},
		{"rewind", CmdRewind},
		{"?", CmdHelp},
		{"help", CmdHelp},
		{"go back", CmdNone},
		{"minimal", CmdNone},
		{"", CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.input))
		})
	}
}

func TestSanitizeAnswer(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeAnswer("  hello world \n"))
	assert.Equal(t, "ab\tc", SanitizeAnswer("a\x00b\tc\x1b"))
	assert.Equal(t, "", SanitizeAnswer("\x07\x08"))

	t.Run("keeps line breaks", func(t *testing.T) {
		assert.Equal(t, "first line\nsecond line", SanitizeAnswer("first line\nsecond line"))
		assert.Equal(t, "if err != nil {\n\treturn err\n}", SanitizeAnswer("if err != nil {\r\n\treturn err\r}\r\n"))
		assert.Equal(t, "a\nb", SanitizeAnswer("a\x00\nb\x1b"))
	})

	long := SanitizeAnswer(strings.Repeat("é", MaxAnswerLength+50))
	assert.Equal(t, MaxAnswerLength, utf8.RuneCountInString(long))
}

func TestResolveChoice(t *testing.T) {
	choices := []Choice{
		{ID: "code", Name: "Code"},
		{ID: "image", Name: "Image Generation"},
	}

	ch, err := ResolveChoice("2", choices)
	require.NoError(t, err)
	assert.Equal(t, "image", ch.ID)

	ch, err = ResolveChoice("code", choices)
	require.NoError(t, err)
	assert.Equal(t, "code", ch.ID)

	ch, err = ResolveChoice("image generation", choices)
	require.NoError(t, err)
	assert.Equal(t, "image", ch.ID)

	_, err = ResolveChoice("3", choices)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ResolveChoice("music", choices)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestController_Handle(t *testing.T) {
	c := newController(t)

	snap, cmd, err := c.Handle("1")
	require.NoError(t, err)
	assert.Equal(t, CmdNone, cmd)
	assert.Equal(t, "app", snap.CategoryID)

	snap, _, err = c.Handle("Mobile App")
	require.NoError(t, err)
	assert.Equal(t, "mobile", snap.SubcategoryID)

	snap, _, err = c.Handle("bold\x00")
	require.NoError(t, err)
	v, _ := c.Session().Answers.Get("style")
	assert.Equal(t, "bold", v)
	assert.Equal(t, "audience", snap.Question.ID)

	_, cmd, err = c.Handle("skip")
	assert.Equal(t, CmdSkip, cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	snap, cmd, err = c.Handle("?")
	require.NoError(t, err)
	assert.Equal(t, CmdHelp, cmd)
	assert.Equal(t, "audience", snap.Question.ID)

	snap, cmd, err = c.Handle("back")
	require.NoError(t, err)
	assert.Equal(t, CmdBack, cmd)
	assert.Equal(t, "style", snap.Question.ID)

	_, _, _ = c.Handle("bold")
	_, _, _ = c.Handle("kids")
	snap, _, err = c.Handle("next")
	require.NoError(t, err)
	assert.Equal(t, Complete, snap.State)

	_, _, err = c.Handle("more")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	snap, cmd, err = c.Handle("quit")
	require.NoError(t, err)
	assert.Equal(t, CmdQuit, cmd)
	assert.Equal(t, Quit, snap.State)
}

func TestController_Handle_ShortcutsAnswerOpenQuestions(t *testing.T) {
	c := newController(t)

	// shortcuts still navigate menus
	_, _, err := c.Handle("app")
	require.NoError(t, err)
	snap, cmd, err := c.Handle("b")
	require.NoError(t, err)
	assert.Equal(t, CmdBack, cmd)
	assert.Equal(t, Idle, snap.State)

	_, _, err = c.Handle("app")
	require.NoError(t, err)
	_, _, err = c.Handle("mobile")
	require.NoError(t, err)

	for _, in := range []string{"R", "q", "n"} {
		snap, cmd, err = c.Handle(in)
		require.NoError(t, err, in)
		assert.Equal(t, CmdNone, cmd, in)
	}
	assert.Equal(t, Complete, snap.State)
	assert.Equal(t, map[string]string{"style": "R", "audience": "q", "budget": "n"}, c.Session().Answers.Map())

	snap, cmd, err = c.Handle("restart")
	require.NoError(t, err)
	assert.Equal(t, CmdRestart, cmd)
	assert.Equal(t, Idle, snap.State)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestController_Do(t *testing.T) {
	c := newController(t)
	_, err := c.SelectCategory("art")
	require.NoError(t, err)
	_, err = c.SelectSubcategory("poster")
	require.NoError(t, err)
	_, err = c.SubmitAnswer("a fox")
	require.NoError(t, err)

	snap, err := c.Do(CmdSkip)
	require.NoError(t, err)
	assert.Equal(t, Complete, snap.State)

	snap, err = c.Do(CmdRewind)
	require.NoError(t, err)
	assert.Equal(t, "subject", snap.Question.ID)
	assert.Zero(t, snap.Answered)

	snap, err = c.Do(CmdHelp)
	require.NoError(t, err)
	assert.Equal(t, "subject", snap.Question.ID)

	snap, err = c.Do(CmdHome)
	require.NoError(t, err)
	assert.Equal(t, Idle, snap.State)
}
