// Package questionnaire drives one user through category selection,
// subcategory selection and the question loop.
//
// The Controller receives already-tokenized input and returns a Snapshot to
// render; it never reads from or writes to the terminal. Every failing
// operation leaves the controller exactly as it was.
package questionnaire

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
)

// Catalog is the read side of the question bank the controller needs.
type Catalog interface {
	Categories() []*domain.Category
	Category(id string) (*domain.Category, error)
}

type Option func(*Controller)

// WithMissingPolicy sets how Result treats unanswered optional questions.
func WithMissingPolicy(p prompt.MissingPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

type Controller struct {
	catalog Catalog
	policy  prompt.MissingPolicy
	state   State
	session Session
}

func NewController(catalog Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: catalog,
		policy:  prompt.MissingOmitLine,
		state:   Idle,
		session: newSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Session returns a copy of the active session. The Answers pointer is
// shared; callers must not mutate it.
func (c *Controller) Session() Session { return c.session }

func (c *Controller) invalid(op string) (Snapshot, error) {
	return c.Snapshot(), fmt.Errorf("%s in state %s: %w", op, c.state, domain.ErrInvalidOperation)
}

func (c *Controller) SelectCategory(id string) (Snapshot, error) {
	if c.state != Idle {
		return c.invalid("select category")
	}
	cat, err := c.catalog.Category(id)
	if err != nil {
		return c.Snapshot(), err
	}
	c.session = newSession()
	c.session.Category = cat
	c.state = CategorySelected
	return c.Snapshot(), nil
}

func (c *Controller) SelectSubcategory(id string) (Snapshot, error) {
	if c.state != CategorySelected {
		return c.invalid("select subcategory")
	}
	sub, ok := c.session.Category.Subcategory(id)
	if !ok {
		return c.Snapshot(), fmt.Errorf("subcategory %q in %s: %w", id, c.session.Category.ID, domain.ErrNotFound)
	}
	c.session.Subcategory = sub
	c.session.Index = 0
	c.session.Answers.Clear()
	c.state = SubcategorySelected
	return c.Snapshot(), nil
}

// SubmitAnswer records text for the current question and advances.
// An empty answer to an optional question is a skip.
func (c *Controller) SubmitAnswer(text string) (Snapshot, error) {
	q := c.session.current()
	if c.state != SubcategorySelected || q == nil {
		return c.invalid("answer")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		if q.Optional {
			return c.Skip()
		}
		return c.Snapshot(), fmt.Errorf("question %q requires an answer: %w", q.ID, domain.ErrValidation)
	}
	c.session.Answers.Set(q.ID, text)
	c.advance()
	return c.Snapshot(), nil
}

func (c *Controller) Skip() (Snapshot, error) {
	q := c.session.current()
	if c.state != SubcategorySelected || q == nil {
		return c.invalid("skip")
	}
	if !q.Optional {
		return c.Snapshot(), fmt.Errorf("question %q is required and cannot be skipped: %w", q.ID, domain.ErrInvalidOperation)
	}
	c.session.Answers.Delete(q.ID)
	c.advance()
	return c.Snapshot(), nil
}

func (c *Controller) advance() {
	c.session.Index++
	if c.session.done() {
		c.state = Complete
	}
}

// IsComplete reports whether every question of the selected subcategory
// has been answered or skipped.
func (c *Controller) IsComplete() bool {
	return c.state == Complete && c.session.done()
}

// Back steps to the previous question, discarding its answer. From the first
// question it returns to the subcategory list, and from there to the
// category list. In Idle there is nothing to go back to.
func (c *Controller) Back() (Snapshot, error) {
	switch c.state {
	case Idle:
		return c.Snapshot(), domain.ErrAtFirstStep
	case CategorySelected:
		c.session = newSession()
		c.state = Idle
	case SubcategorySelected, Complete:
		if c.session.Index == 0 {
			c.session.Subcategory = nil
			c.session.Answers.Clear()
			c.state = CategorySelected
			break
		}
		c.session.Index--
		c.session.Answers.Delete(c.session.Subcategory.Questions[c.session.Index].ID)
		c.state = SubcategorySelected
	default:
		return c.invalid("back")
	}
	return c.Snapshot(), nil
}

// Restart discards the session and returns to the category list.
func (c *Controller) Restart() (Snapshot, error) {
	if c.state == Quit {
		return c.invalid("restart")
	}
	c.session = newSession()
	c.state = Idle
	return c.Snapshot(), nil
}

func (c *Controller) Home() (Snapshot, error) {
	if c.state == Quit {
		return c.invalid("home")
	}
	return c.Restart()
}

// Rewind clears every answer of the current subcategory and returns to its
// first question.
func (c *Controller) Rewind() (Snapshot, error) {
	if c.state != SubcategorySelected && c.state != Complete {
		return c.invalid("rewind")
	}
	c.session.Index = 0
	c.session.Answers.Clear()
	c.state = SubcategorySelected
	return c.Snapshot(), nil
}

func (c *Controller) Quit() (Snapshot, error) {
	if c.state == Quit {
		return c.invalid("quit")
	}
	c.session = newSession()
	c.state = Quit
	return c.Snapshot(), nil
}

// Result assembles the prompt for a completed questionnaire.
func (c *Controller) Result(now time.Time) (*domain.GeneratedPrompt, error) {
	if !c.IsComplete() {
		_, err := c.invalid("result")
		return nil, err
	}
	cat, sub := c.session.Category, c.session.Subcategory
	answers := c.session.Answers.Map()

	content, err := prompt.Assemble(cat, sub, answers, prompt.Options{Policy: c.policy, Now: now})
	if err != nil {
		return nil, err
	}
	return &domain.GeneratedPrompt{
		CategoryID:      cat.ID,
		CategoryName:    cat.Name,
		SubcategoryID:   sub.ID,
		SubcategoryName: sub.Name,
		Content:         content,
		Answers:         answers,
		GeneratedAt:     now,
	}, nil
}

// Snapshot returns the view model of the current step.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:    c.state,
		Answered: c.session.Answers.Len(),
	}
	if cat := c.session.Category; cat != nil {
		s.CategoryID, s.CategoryName = cat.ID, cat.Name
	}
	if sub := c.session.Subcategory; sub != nil {
		s.SubcategoryID, s.SubcategoryName = sub.ID, sub.Name
		s.Total = len(sub.Questions)
		s.Position = c.session.Index + 1
		if s.Position > s.Total {
			s.Position = s.Total
		}
	}

	switch c.state {
	case Idle:
		for _, cat := range c.catalog.Categories() {
			s.Choices = append(s.Choices, Choice{ID: cat.ID, Name: cat.Name, Description: cat.Description})
		}
	case CategorySelected:
		for _, sub := range c.session.Category.Subcategories {
			s.Choices = append(s.Choices, Choice{ID: sub.ID, Name: sub.Name, Description: sub.Description})
		}
	case SubcategorySelected:
		if q := c.session.current(); q != nil {
			s.Question = &QuestionView{ID: q.ID, Text: q.Text, Hint: q.Hint, Optional: q.Optional}
		}
	}
	return s
}
