package domain

// Question is one entry of a subcategory's questionnaire.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Hint     string `json:"hint,omitempty" yaml:"hint,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

type Subcategory struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
	Template    string     `json:"template" yaml:"template"`
}

// Question returns the question with the given id.
func (s *Subcategory) Question(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// RequiredCount returns the number of questions that must be answered.
func (s *Subcategory) RequiredCount() int {
	n := 0
	for _, q := range s.Questions {
		if !q.Optional {
			n++
		}
	}
	return n
}

type Category struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`

	// Source is the file a custom category was loaded from; empty for built-ins.
	Source string `json:"-" yaml:"-"`
}

// Subcategory returns the subcategory with the given id.
func (c *Category) Subcategory(id string) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == id {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}

// IsCustom reports whether the category came from a user catalog file.
func (c *Category) IsCustom() bool {
	return c.Source != ""
}
