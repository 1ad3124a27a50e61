package entities

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

// Paragraph is one record of the flat outline. Its parent is the nearest
// preceding paragraph whose level is one less; its citation is always derived
// from its position and never stored.
type Paragraph struct {
	id      valueobjects.ParagraphID
	level   valueobjects.Level
	text    valueobjects.ParagraphText
	warning string
}

// NewParagraph creates a paragraph. The level is clamped into [1,8] and line
// breaks in text are collapsed to single spaces.
func NewParagraph(id valueobjects.ParagraphID, level int, text string) Paragraph {
	return Paragraph{
		id:    id,
		level: valueobjects.NewLevel(level),
		text:  valueobjects.NewParagraphText(text),
	}
}

// ID returns the paragraph's stable identifier
func (p Paragraph) ID() valueobjects.ParagraphID {
	return p.id
}

// Level returns the outline level
func (p Paragraph) Level() valueobjects.Level {
	return p.level
}

// Text returns the normalized body text
func (p Paragraph) Text() string {
	return p.text.String()
}

// IsEmpty reports whether the paragraph has no visible text
func (p Paragraph) IsEmpty() bool {
	return p.text.IsEmpty()
}

// Warning returns the advisory structural warning, if any
func (p Paragraph) Warning() string {
	return p.warning
}

// UpdateText replaces the body text. It reports whether anything changed.
func (p *Paragraph) UpdateText(raw string) bool {
	text := valueobjects.NewParagraphText(raw)
	if text.Equals(p.text) {
		return false
	}
	p.text = text
	return true
}

// ClearText empties the body text
func (p *Paragraph) ClearText() {
	p.text = valueobjects.ParagraphText{}
}

// SetWarning records an advisory warning; an empty string clears it
func (p *Paragraph) SetWarning(warning string) {
	p.warning = warning
}
