package questionnaire

import "github.com/alexanderramin/promptcraft/internal/domain"

// Session is the mutable state of one run through a questionnaire.
// Index is always within [0, len(Subcategory.Questions)].
type Session struct {
	Category    *domain.Category
	Subcategory *domain.Subcategory
	Index       int
	Answers     *Answers
}

func newSession() Session {
	return Session{Answers: NewAnswers()}
}

func (s *Session) questionCount() int {
	if s.Subcategory == nil {
		return 0
	}
	return len(s.Subcategory.Questions)
}

// done reports whether the question loop has moved past the last question.
// Skipped questions count as passed, so this is not the answer count.
func (s *Session) done() bool {
	return s.Subcategory != nil && s.Index >= s.questionCount()
}

// current returns the question at Index, or nil past the end.
func (s *Session) current() *domain.Question {
	if s.Subcategory == nil || s.Index >= len(s.Subcategory.Questions) {
		return nil
	}
	return &s.Subcategory.Questions[s.Index]
}
