package domain

import "time"

// GeneratedPrompt is the output of a completed questionnaire.
type GeneratedPrompt struct {
	CategoryID      string
	CategoryName    string
	SubcategoryID   string
	SubcategoryName string
	Content         string
	Answers         map[string]string
	GeneratedAt     time.Time
}

// SuggestedFilename returns the default file name used when the prompt is saved.
func (p *GeneratedPrompt) SuggestedFilename() string {
	return p.CategoryID + "_" + p.SubcategoryID + "_" + p.GeneratedAt.Format("20060102_150405") + ".txt"
}
