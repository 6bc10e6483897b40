package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderSteps renders questionnaire progress like [████░░░░] 2/4.
// done counts finished steps; the bar is blue until every step is done.
func RenderSteps(done, total, width int) string {
	if total < 1 {
		total = 1
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	if width < 2 {
		width = 2
	}

	filled := done * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleBlue
	if done == total {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
