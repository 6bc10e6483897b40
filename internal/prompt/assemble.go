// Package prompt fills subcategory templates with questionnaire answers.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

// TimestampLayout is the format of the {timestamp} placeholder.
const TimestampLayout = "2006-01-02 15:04:05"

// MissingPolicy decides what happens to a placeholder whose answer is absent.
type MissingPolicy string

const (
	// MissingOmitLine drops every template line that references an absent answer.
	MissingOmitLine MissingPolicy = "omit_line"
	// MissingEmpty substitutes an empty string for an absent answer.
	MissingEmpty MissingPolicy = "empty"
)

// ParseMissingPolicy converts a config or flag value into a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case MissingOmitLine, "omit", "":
		return MissingOmitLine, nil
	case MissingEmpty:
		return MissingEmpty, nil
	}
	return "", fmt.Errorf("unknown missing-answer policy %q (use omit_line or empty)", s)
}

func (p *MissingPolicy) String() string {
	if *p == "" {
		return string(MissingOmitLine)
	}
	return string(*p)
}

func (p *MissingPolicy) Set(s string) error {
	v, err := ParseMissingPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *MissingPolicy) Type() string { return "policy" }

// Options controls a single assembly.
type Options struct {
	Policy MissingPolicy
	Now    time.Time // zero means time.Now()
}

// Assemble fills sub's template with answers. Answers keyed by ids that are
// not questions of sub are ignored; empty answers count as absent.
func Assemble(cat *domain.Category, sub *domain.Subcategory, answers map[string]string, opts Options) (string, error) {
	if opts.Policy == "" {
		opts.Policy = MissingOmitLine
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	values := map[string]string{
		PlaceholderCategory:       cat.Name,
		PlaceholderSubcategory:    sub.Name,
		PlaceholderTimestamp:      opts.Now.Format(TimestampLayout),
		PlaceholderAnswersSummary: Summary(sub, answers),
	}
	known := make(map[string]bool, len(sub.Questions))
	for _, q := range sub.Questions {
		known[q.ID] = true
		if a := strings.TrimSpace(answers[q.ID]); a != "" {
			values[q.ID] = a
		}
	}

	var out []string
	for n, line := range strings.Split(sub.Template, "\n") {
		segs, err := scan(line)
		if err != nil {
			return "", fmt.Errorf("%w: %s/%s line %d: %w", domain.ErrTemplate, cat.ID, sub.ID, n+1, err)
		}

		var b strings.Builder
		drop := false
		for _, s := range segs {
			if !s.isPlaceholder() {
				b.WriteString(s.text)
				continue
			}
			if !known[s.name] && !IsBuiltin(s.name) {
				return "", fmt.Errorf("%w: %s/%s: placeholder {%s} has no matching question", domain.ErrTemplate, cat.ID, sub.ID, s.name)
			}
			v := values[s.name]
			if v == "" && opts.Policy == MissingOmitLine {
				drop = true
			}
			b.WriteString(v)
		}
		if !drop {
			out = append(out, b.String())
		}
	}

	return tidy(out), nil
}

// Summary renders one bullet per answered question, in question order.
func Summary(sub *domain.Subcategory, answers map[string]string) string {
	var lines []string
	for _, q := range sub.Questions {
		a := strings.TrimSpace(answers[q.ID])
		if a == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", q.Text, a))
	}
	return strings.Join(lines, "\n")
}

// tidy collapses runs of blank lines and trims blank lines at both ends.
func tidy(lines []string) string {
	var kept []string
	blank := true // suppresses leading blank lines
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if blank {
				continue
			}
			blank = true
			kept = append(kept, "")
			continue
		}
		blank = false
		kept = append(kept, strings.TrimRight(l, " \t"))
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}
