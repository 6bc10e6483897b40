package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type questionKeyMap struct {
	Submit  key.Binding
	Back    key.Binding
	Skip    key.Binding
	Restart key.Binding
}

func newQuestionKeyMap() questionKeyMap {
	return questionKeyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
		Back:    key.NewBinding(key.WithKeys("ctrl+b", "esc"), key.WithHelp("esc", "back")),
		Skip:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
	}
}

// questionView asks the current question and collects the answer in a
// text input. Every key not bound to navigation goes to the input.
type questionView struct {
	state *SharedState
	snap  questionnaire.Snapshot
	input textinput.Model
	keys  questionKeyMap
}

func newQuestionView(state *SharedState, snap questionnaire.Snapshot) *questionView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = questionnaire.MaxAnswerLength
	ti.PromptStyle = formatter.StyleGreen
	if q := snap.Question; q != nil && q.Hint != "" {
		ti.Placeholder = q.Hint
	}

	keys := newQuestionKeyMap()
	keys.Skip.SetEnabled(snap.Question != nil && snap.Question.Optional)

	return &questionView{
		state: state,
		snap:  snap,
		input: ti,
		keys:  keys,
	}
}

func (v *questionView) ID() ViewID { return ViewQuestion }

func (v *questionView) Title() string {
	return fmt.Sprintf("Question %d/%d", v.snap.Position, v.snap.Total)
}

func (v *questionView) ShortHelp() []key.Binding {
	bindings := []key.Binding{v.keys.Submit}
	if v.keys.Skip.Enabled() {
		bindings = append(bindings, v.keys.Skip)
	}
	return append(bindings, v.keys.Back, v.keys.Restart)
}

func (v *questionView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *questionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.input.Width = max(msg.Width-6, 10)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Submit):
			return v, answer(v.input.Value())
		case key.Matches(msg, v.keys.Back):
			return v, navigate(questionnaire.CmdBack)
		case key.Matches(msg, v.keys.Skip):
			return v, navigate(questionnaire.CmdSkip)
		case key.Matches(msg, v.keys.Restart):
			return v, navigate(questionnaire.CmdRestart)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *questionView) View() string {
	q := v.snap.Question
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.RenderSteps(v.snap.Position-1, v.snap.Total, 20) + "\n\n")

	b.WriteString("  " + formatter.Bold(q.Text))
	if q.Optional {
		b.WriteString(" " + formatter.Dim("(optional)"))
	}
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString("  " + formatter.Dim(q.Hint) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + v.input.View() + "\n")

	if answered := v.answered(); answered != "" {
		b.WriteString("\n" + answered)
	}
	return b.String()
}

// answered lists the answers given so far in this subcategory.
func (v *questionView) answered() string {
	answers := v.state.Controller.Session().Answers
	if answers == nil || answers.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, id := range answers.Keys() {
		value, _ := answers.Get(id)
		b.WriteString("  " + formatter.StyleGreen.Render("✔ ") + formatter.Dim(id+": ") + formatter.Truncate(value, 50) + "\n")
	}
	return b.String()
}
