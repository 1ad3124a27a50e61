package valueobjects

import (
	"regexp"
	"strings"
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// ParagraphText is the body text of a paragraph with line breaks collapsed
type ParagraphText struct {
	value string
}

// NewParagraphText normalizes every run of line breaks in raw to one space
func NewParagraphText(raw string) ParagraphText {
	return ParagraphText{value: lineBreaks.ReplaceAllString(raw, " ")}
}

// String returns the normalized text
func (t ParagraphText) String() string {
	return t.value
}

// IsEmpty reports whether the text holds only whitespace
func (t ParagraphText) IsEmpty() bool {
	return strings.TrimSpace(t.value) == ""
}

// Equals checks if two texts are equal
func (t ParagraphText) Equals(other ParagraphText) bool {
	return t.value == other.value
}
