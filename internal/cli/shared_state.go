package cli

import (
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/questionnaire"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App        *App
	Controller *questionnaire.Controller

	// Snapshot is the controller state the active view was built from.
	Snapshot questionnaire.Snapshot

	// Result is the prompt of the last completed questionnaire and EntryID
	// its history id, empty when it was not recorded.
	Result  *domain.GeneratedPrompt
	EntryID string

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and the flash line.
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// ClearResult forgets the last generated prompt.
func (s *SharedState) ClearResult() {
	s.Result = nil
	s.EntryID = ""
}
