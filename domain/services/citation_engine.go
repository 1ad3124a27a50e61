package services

import (
	"strconv"
	"strings"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

// Mark is the outline glyph of one paragraph split into its parts, so that a
// renderer can underline the token alone on levels 5-8.
type Mark struct {
	Prefix    string
	Token     string
	Suffix    string
	Underline bool
}

// String returns the punctuated glyph, e.g. "(a)"
func (m Mark) String() string {
	return m.Prefix + m.Token + m.Suffix
}

// CitationEngine derives outline citations from paragraph positions.
// Citations depend on levels and order only, never on text.
type CitationEngine struct{}

// NewCitationEngine creates a new citation engine
func NewCitationEngine() *CitationEngine {
	return &CitationEngine{}
}

// Ordinal returns the 1-based position of nodes[index] among its siblings.
// The sibling group starts right after the nearest preceding node with a
// strictly lower level (or at 0). Empty paragraphs are counted so numbering
// stays put while the user is still typing.
func (e *CitationEngine) Ordinal(index int, nodes []entities.Paragraph) int {
	if index < 0 || index >= len(nodes) {
		return 0
	}
	level := nodes[index].Level()

	boundary := 0
	for i := index - 1; i >= 0; i-- {
		if nodes[i].Level() < level {
			boundary = i + 1
			break
		}
	}

	n := 0
	for i := boundary; i <= index; i++ {
		if nodes[i].Level() == level {
			n++
		}
	}
	return n
}

// Mark returns the own glyph of nodes[index]
func (e *CitationEngine) Mark(index int, nodes []entities.Paragraph) Mark {
	if index < 0 || index >= len(nodes) {
		return Mark{}
	}
	return markFor(nodes[index].Level(), e.Ordinal(index, nodes))
}

// CitationFor returns the citation of nodes[index]. Levels 1 and 2 cite their
// own glyph; deeper levels prefix the unpunctuated glyph of each ancestor,
// e.g. "1a(1)".
func (e *CitationEngine) CitationFor(index int, nodes []entities.Paragraph) string {
	if index < 0 || index >= len(nodes) {
		return ""
	}
	own := e.Mark(index, nodes).String()
	if nodes[index].Level() <= 2 {
		return own
	}
	return strings.Join(e.AncestorTokens(index, nodes), "") + own
}

// Citations returns the citation of every paragraph in order
func (e *CitationEngine) Citations(nodes []entities.Paragraph) []string {
	out := make([]string, len(nodes))
	for i := range nodes {
		out[i] = e.CitationFor(i, nodes)
	}
	return out
}

// AncestorTokens returns the unpunctuated glyph of each ancestor of
// nodes[index], outermost first. The walk runs backward from index and picks,
// for each level from level-1 down to 1, the nearest preceding node at that
// exact level. A level that is absent from the enclosing scope is skipped.
func (e *CitationEngine) AncestorTokens(index int, nodes []entities.Paragraph) []string {
	if index < 0 || index >= len(nodes) {
		return nil
	}
	want := nodes[index].Level() - 1
	var reversed []string
	for i := index - 1; i >= 0 && want >= valueobjects.MinLevel; i-- {
		level := nodes[i].Level()
		if level > want {
			continue
		}
		// level <= want: any level between is missing from this scope
		want = level
		reversed = append(reversed, e.Mark(i, nodes).Token)
		want--
	}

	tokens := make([]string, len(reversed))
	for i, token := range reversed {
		tokens[len(reversed)-1-i] = token
	}
	return tokens
}

// markFor maps an ordinal and level to the glyph pattern. Levels 5-8 repeat
// the patterns of 1-4 with underline emphasis.
func markFor(level valueobjects.Level, n int) Mark {
	mark := Mark{Underline: level.Emphasized()}
	switch level.Pattern() {
	case 1:
		mark.Token, mark.Suffix = strconv.Itoa(n), "."
	case 2:
		mark.Token, mark.Suffix = Letter(n), "."
	case 3:
		mark.Prefix, mark.Token, mark.Suffix = "(", strconv.Itoa(n), ")"
	case 4:
		mark.Prefix, mark.Token, mark.Suffix = "(", Letter(n), ")"
	}
	return mark
}

// Letter returns the n-th lowercase letter (1 -> "a"). Past "z" the letter
// repeats: 27 -> "aa", 28 -> "bb".
func Letter(n int) string {
	if n < 1 {
		return ""
	}
	letter := string(rune('a' + (n-1)%26))
	return strings.Repeat(letter, (n-1)/26+1)
}
