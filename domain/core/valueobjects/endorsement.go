package valueobjects

import (
	"strings"
)

var endorsementOrdinals = []string{
	"FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH", "SIXTH",
}

// EndorsementContext continues the numbering of a basic letter. It is absent
// (nil) for a basic letter.
type EndorsementContext struct {
	Level                   int    `json:"level" validate:"omitempty,min=1,max=6"`
	BasicLetterReference    string `json:"basic_letter_reference"`
	StartingReferenceLetter string `json:"starting_reference_letter,omitempty" validate:"omitempty,len=1,lowercase,alpha"`
	StartingEnclosureNumber int    `json:"starting_enclosure_number,omitempty" validate:"omitempty,min=1"`
	StartingPageNumber      int    `json:"starting_page_number,omitempty" validate:"omitempty,min=1"`
}

// Ordinal returns "FIRST" through "SIXTH", or "" when the level is out of range
func (e EndorsementContext) Ordinal() string {
	if e.Level < 1 || e.Level > len(endorsementOrdinals) {
		return ""
	}
	return endorsementOrdinals[e.Level-1]
}

// ReferenceStart returns the 1-based letter ordinal references begin at
func (e EndorsementContext) ReferenceStart() int {
	letter := strings.TrimSpace(e.StartingReferenceLetter)
	if letter == "" {
		return 1
	}
	c := strings.ToLower(letter)[0]
	if c < 'a' || c > 'z' {
		return 1
	}
	return int(c-'a') + 1
}

// EnclosureStart returns the number enclosures begin at
func (e EndorsementContext) EnclosureStart() int {
	if e.StartingEnclosureNumber < 1 {
		return 1
	}
	return e.StartingEnclosureNumber
}

// PageStart returns the page number the endorsement begins on
func (e EndorsementContext) PageStart() int {
	if e.StartingPageNumber < 1 {
		return 1
	}
	return e.StartingPageNumber
}
