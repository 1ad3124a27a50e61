package valueobjects

import (
	"strconv"
)

// ParagraphID is a value object representing a stable paragraph identifier.
// Identifiers are positive integers assigned as max(existing)+1.
type ParagraphID int

// NewParagraphID creates a ParagraphID from an integer
func NewParagraphID(id int) ParagraphID {
	return ParagraphID(id)
}

// Int returns the integer value
func (id ParagraphID) Int() int {
	return int(id)
}

// String returns the string representation of the ParagraphID
func (id ParagraphID) String() string {
	return strconv.Itoa(int(id))
}

// IsZero checks if the ParagraphID is the zero value
func (id ParagraphID) IsZero() bool {
	return id == 0
}

// Next returns the identifier following id
func (id ParagraphID) Next() ParagraphID {
	return id + 1
}
