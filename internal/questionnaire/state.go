package questionnaire

// State is the position of a Controller in the questionnaire flow.
type State int

const (
	// Idle means no category has been chosen.
	Idle State = iota
	// CategorySelected means a category is chosen and its subcategories are listed.
	CategorySelected
	// SubcategorySelected means the question loop is active.
	SubcategorySelected
	// Complete means every question has been answered or skipped.
	Complete
	// Quit is terminal.
	Quit
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CategorySelected:
		return "category_selected"
	case SubcategorySelected:
		return "subcategory_selected"
	case Complete:
		return "complete"
	case Quit:
		return "quit"
	}
	return "unknown"
}
