package cli

import (
	"fmt"
	"io"
	"strings"
)

// promptYesNoIO asks message on out and reads a y/yes answer from in.
// Anything else, including end of input, is no.
func promptYesNoIO(in io.Reader, out io.Writer, message string) bool {
	return promptYesNoWithDefaultIO(in, out, message, false)
}

func promptYesNoWithDefaultIO(in io.Reader, out io.Writer, message string, defaultYes bool) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}

	text, err := readPromptLine(in)
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	}
	return false
}

// readPromptLine reads one line byte by byte so nothing past the line end
// is consumed from in. LF and CR both end a line, which keeps Enter working
// in raw terminal mode.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
