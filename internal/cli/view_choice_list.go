package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/cli/formatter"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// choiceListView is the category or subcategory menu.
type choiceListView struct {
	state   *SharedState
	id      ViewID
	choices []questionnaire.Choice
	cursor  int

	// Filtering
	filtering bool
	filter    string
}

func newChoiceListView(state *SharedState, id ViewID, snap questionnaire.Snapshot) *choiceListView {
	return &choiceListView{
		state:   state,
		id:      id,
		choices: snap.Choices,
	}
}

func (v *choiceListView) ID() ViewID { return v.id }

func (v *choiceListView) Title() string {
	if v.id == ViewCategories {
		return "Categories"
	}
	return "Prompt type"
}

func (v *choiceListView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
	if v.id == ViewSubcategories {
		bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
	}
	return append(bindings, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")))
}

func (v *choiceListView) Init() tea.Cmd { return nil }

func (v *choiceListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	if v.filtering {
		return v.updateFilter(keyMsg)
	}
	return v.updateNormal(keyMsg)
}

func (v *choiceListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleChoices()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, choose(visible[v.cursor].ID)
		}
	case "/":
		v.filtering = true
		v.filter = ""
	case "esc", "backspace", "b":
		if v.id == ViewSubcategories {
			return v, navigate(questionnaire.CmdBack)
		}
	case "q":
		return v, navigate(questionnaire.CmdQuit)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(msg.String()[0] - '0')
		if n <= len(visible) {
			return v, choose(visible[n-1].ID)
		}
	}
	return v, nil
}

func (v *choiceListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *choiceListView) visibleChoices() []questionnaire.Choice {
	if v.filter == "" {
		return v.choices
	}
	lf := strings.ToLower(v.filter)
	var filtered []questionnaire.Choice
	for _, c := range v.choices {
		if strings.Contains(strings.ToLower(c.Name), lf) ||
			strings.Contains(strings.ToLower(c.ID), lf) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (v *choiceListView) View() string {
	visible := v.visibleChoices()

	var b strings.Builder
	b.WriteString("\n")

	heading := "What kind of prompt do you want to build?"
	if v.id == ViewSubcategories {
		heading = "Pick a prompt type:"
	}
	b.WriteString("  " + formatter.StyleHeader.Render(heading) + "\n\n")

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + "█\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No matches.") + "\n")
		return b.String()
	}

	width := 0
	for _, c := range visible {
		width = max(width, len([]rune(c.Name)))
	}

	for i, c := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			formatter.Dim(fmt.Sprintf("%d.", i+1)),
			nameStyle.Render(padRight(c.Name, width)),
			formatter.Dim(formatter.Truncate(c.Description, 60)),
		))
	}

	return b.String()
}

// padRight pads s with spaces to n runes.
func padRight(s string, n int) string {
	if pad := n - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
