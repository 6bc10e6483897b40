package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type resultKeyMap struct {
	Copy   key.Binding
	Save   key.Binding
	Rewind key.Binding
	New    key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func newResultKeyMap() resultKeyMap {
	return resultKeyMap{
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Rewind: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rewind")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new prompt")),
		Back:   key.NewBinding(key.WithKeys("esc", "ctrl+b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// resultView shows the generated prompt in a scrollable viewport.
type resultView struct {
	state *SharedState
	vp    viewport.Model
	keys  resultKeyMap
}

func newResultView(state *SharedState) *resultView {
	vp := viewport.New(0, 0)
	vp.KeyMap = resultViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	v := &resultView{
		state: state,
		vp:    vp,
		keys:  newResultKeyMap(),
	}
	v.resize()
	return v
}

func (v *resultView) ID() ViewID    { return ViewResult }
func (v *resultView) Title() string { return "Prompt" }

func (v *resultView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Copy, v.keys.Save, v.keys.Rewind, v.keys.New, v.keys.Back, v.keys.Quit}
}

func (v *resultView) Init() tea.Cmd { return nil }

func (v *resultView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Copy):
			return v, v.copyCmd()
		case key.Matches(msg, v.keys.Save):
			return v, v.saveCmd()
		case key.Matches(msg, v.keys.Rewind):
			return v, navigate(questionnaire.CmdRewind)
		case key.Matches(msg, v.keys.New):
			return v, navigate(questionnaire.CmdRestart)
		case key.Matches(msg, v.keys.Back):
			return v, navigate(questionnaire.CmdBack)
		case key.Matches(msg, v.keys.Quit):
			return v, navigate(questionnaire.CmdQuit)
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *resultView) View() string {
	if v.state.Result == nil {
		return "\n  " + formatter.Dim("No prompt generated.")
	}
	out := v.vp.View()
	if v.vp.TotalLineCount() > v.vp.Height {
		out += "\n  " + scrollIndicator(v.vp)
	}
	return out
}

// resize fits the viewport to the terminal and re-renders the content.
func (v *resultView) resize() {
	width := max(v.state.Width, 40)
	v.vp.Width = width
	v.vp.Height = v.state.ContentHeight()
	if v.state.Height == 0 {
		v.vp.Height = 40
	}
	v.vp.SetContent(v.content(width))
}

// content renders the answer summary through glamour followed by the prompt
// text exactly as it will be copied or saved.
func (v *resultView) content(width int) string {
	p := v.state.Result
	if p == nil {
		return ""
	}

	var b strings.Builder
	summary, err := renderMarkdown(resultMarkdown(p), width-4, true)
	if err != nil {
		v.state.App.logger().Debug("rendering result summary failed", zap.Error(err))
		summary = formatter.Header(p.CategoryName+" › "+p.SubcategoryName) + "\n"
	}
	b.WriteString(summary)
	b.WriteString("\n")
	for _, line := range strings.Split(p.Content, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if v.state.EntryID == "" && v.state.App.History != nil {
		b.WriteString("\n  " + formatter.Dim("Not recorded in history.") + "\n")
	}
	return b.String()
}

// resultMarkdown summarizes a prompt's origin and answers.
func resultMarkdown(p *domain.GeneratedPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s › %s\n\n", p.CategoryName, p.SubcategoryName)

	keys := make([]string, 0, len(p.Answers))
	for k := range p.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- **%s**: %s\n", k, markdownEscaper.Replace(p.Answers[k]))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`)

// copyCmd and saveCmd run the export inline so the outcome is known before
// the next key is handled.
func (v *resultView) copyCmd() tea.Cmd {
	app, p := v.state.App, v.state.Result
	if p == nil || app.Export == nil {
		return nil
	}
	msg := exportDoneMsg{text: "Copied to clipboard."}
	if err := app.Export.Copy(context.Background(), p, v.state.EntryID); err != nil {
		msg = exportDoneMsg{err: err}
	}
	return func() tea.Msg { return msg }
}

func (v *resultView) saveCmd() tea.Cmd {
	app, p := v.state.App, v.state.Result
	if p == nil || app.Export == nil {
		return nil
	}
	msg := exportDoneMsg{}
	path, err := app.Export.Save(context.Background(), p, v.state.EntryID)
	if err != nil {
		msg.err = err
	} else {
		msg.text = "Saved to " + path
	}
	return func() tea.Msg { return msg }
}

// resultViewportKeyMap leaves letter keys free for the result actions.
func resultViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}
