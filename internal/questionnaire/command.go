package questionnaire

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

// MaxAnswerLength is the rune limit applied by SanitizeAnswer.
const MaxAnswerLength = 1000

// Command is a navigation word typed in place of an answer.
type Command int

const (
	CmdNone Command = iota
	CmdBack
	CmdHome
	CmdRestart
	CmdQuit
	CmdSkip
	CmdRewind
	CmdHelp
)

var commandWords = map[string]Command{
	"back":    CmdBack,
	"b":       CmdBack,
	"home":    CmdHome,
	"h":       CmdHome,
	"restart": CmdRestart,
	"r":       CmdRestart,
	"quit":    CmdQuit,
	"q":       CmdQuit,
	"exit":    CmdQuit,
	"skip":    CmdSkip,
	"sk":      CmdSkip,
	"next":    CmdSkip,
	"n":       CmdSkip,
	"rewind":  CmdRewind,
	"help":    CmdHelp,
	"?":       CmdHelp,
}

func (c Command) String() string {
	switch c {
	case CmdBack:
		return "back"
	case CmdHome:
		return "home"
	case CmdRestart:
		return "restart"
	case CmdQuit:
		return "quit"
	case CmdSkip:
		return "skip"
	case CmdRewind:
		return "rewind"
	case CmdHelp:
		return "help"
	}
	return "none"
}

// ParseCommand maps input to a navigation command. CmdNone means the input
// is an answer or a menu choice.
func ParseCommand(input string) Command {
	return commandWords[strings.ToLower(strings.TrimSpace(input))]
}

// shortcuts are the abbreviated command words. While a question is open
// they are taken as answers, so "R" can answer "Which language?".
var shortcuts = map[string]bool{"b": true, "h": true, "r": true, "q": true, "n": true, "sk": true}

// CommandHelp is the one-line reminder shown by line-mode prompts.
const CommandHelp = "commands: back (b), skip (n), rewind, restart (r), home (h), quit (q), help (?); " +
	"shortcuts work in menus, spell commands out while answering"

// lineBreaks normalizes CRLF and lone CR to LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SanitizeAnswer trims input, normalizes line breaks to "\n", removes control
// characters other than newline and tab and caps the result at
// MaxAnswerLength runes.
func SanitizeAnswer(input string) string {
	var b strings.Builder
	n := 0
	for _, r := range lineBreaks.Replace(strings.TrimSpace(input)) {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			continue
		}
		if n == MaxAnswerLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}

// ResolveChoice finds the menu entry named by input: a 1-based number, an id
// or a case-insensitive display name.
func ResolveChoice(input string, choices []Choice) (Choice, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return Choice{}, fmt.Errorf("choice %d out of range 1-%d: %w", n, len(choices), domain.ErrNotFound)
		}
		return choices[n-1], nil
	}
	for _, ch := range choices {
		if ch.ID == input {
			return ch, nil
		}
	}
	for _, ch := range choices {
		if strings.EqualFold(ch.Name, input) {
			return ch, nil
		}
	}
	return Choice{}, fmt.Errorf("choice %q: %w", input, domain.ErrNotFound)
}

// Handle interprets one line of raw input against the current state: a
// navigation word runs that command, anything else selects a menu entry or
// answers the current question. Shortcuts answer an open question instead.
// CmdHelp is returned to the caller without touching the controller.
func (c *Controller) Handle(input string) (Snapshot, Command, error) {
	cmd := ParseCommand(input)
	if c.state == SubcategorySelected && shortcuts[strings.ToLower(strings.TrimSpace(input))] {
		cmd = CmdNone
	}
	if cmd == CmdNone {
		snap, err := c.handleText(input)
		return snap, cmd, err
	}
	snap, err := c.Do(cmd)
	return snap, cmd, err
}

// Do runs a navigation command. CmdNone and CmdHelp only return the current
// snapshot.
func (c *Controller) Do(cmd Command) (Snapshot, error) {
	switch cmd {
	case CmdBack:
		return c.Back()
	case CmdHome:
		return c.Home()
	case CmdRestart:
		return c.Restart()
	case CmdQuit:
		return c.Quit()
	case CmdSkip:
		return c.Skip()
	case CmdRewind:
		return c.Rewind()
	}
	return c.Snapshot(), nil
}

func (c *Controller) handleText(input string) (Snapshot, error) {
	switch c.state {
	case Idle, CategorySelected:
		ch, err := ResolveChoice(input, c.Snapshot().Choices)
		if err != nil {
			return c.Snapshot(), err
		}
		if c.state == Idle {
			return c.SelectCategory(ch.ID)
		}
		return c.SelectSubcategory(ch.ID)
	default:
		return c.SubmitAnswer(SanitizeAnswer(input))
	}
}
