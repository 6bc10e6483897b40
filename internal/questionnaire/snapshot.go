package questionnaire

import "fmt"

// Choice is one selectable entry of a category or subcategory menu.
type Choice struct {
	ID          string
	Name        string
	Description string
}

// QuestionView is the question currently awaiting an answer.
type QuestionView struct {
	ID       string
	Text     string
	Hint     string
	Optional bool
}

// Snapshot is everything the presentation layer needs to draw the current
// step. It holds no references into the controller.
type Snapshot struct {
	State State

	CategoryID      string
	CategoryName    string
	SubcategoryID   string
	SubcategoryName string

	// Question is nil outside the question loop.
	Question *QuestionView
	// Position is 1-based; Total is the number of questions.
	Position int
	Total    int
	Answered int

	// Choices lists categories in Idle and subcategories in CategorySelected.
	Choices []Choice
}

// Progress returns "position/total", or "" outside the question loop.
func (s Snapshot) Progress() string {
	if s.Question == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.Position, s.Total)
}
