package prompt

import (
	"fmt"
	"strings"
)

// Built-in placeholders available to every template.
const (
	PlaceholderCategory       = "category"
	PlaceholderSubcategory    = "subcategory"
	PlaceholderTimestamp      = "timestamp"
	PlaceholderAnswersSummary = "answers_summary"
)

// IsBuiltin reports whether name is filled by the assembler rather than by an answer.
func IsBuiltin(name string) bool {
	switch name {
	case PlaceholderCategory, PlaceholderSubcategory, PlaceholderTimestamp, PlaceholderAnswersSummary:
		return true
	}
	return false
}

// segment is either literal text or a named placeholder.
type segment struct {
	text string
	name string
}

func (s segment) isPlaceholder() bool { return s.name != "" }

// scan splits a single template line into literal and placeholder segments.
// "{{" and "}}" are escapes for literal braces.
func scan(line string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == '{' && i+1 < len(line) && line[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(line) && line[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(line[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unmatched '{' at position %d", i)
			}
			name := strings.TrimSpace(line[i+1 : i+1+end])
			if !ValidName(name) {
				return nil, fmt.Errorf("invalid placeholder %q at position %d", line[i:i+end+2], i)
			}
			flush()
			segs = append(segs, segment{name: name})
			i += end + 2
		case c == '}':
			return nil, fmt.Errorf("unmatched '}' at position %d", i)
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return segs, nil
}

// ValidName reports whether name can be used as a placeholder.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Placeholders returns the distinct placeholder names referenced by tmpl in
// order of first appearance.
func Placeholders(tmpl string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for n, line := range strings.Split(tmpl, "\n") {
		segs, err := scan(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		for _, s := range segs {
			if s.isPlaceholder() && !seen[s.name] {
				seen[s.name] = true
				names = append(names, s.name)
			}
		}
	}
	return names, nil
}
