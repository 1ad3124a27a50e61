package validators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/services"
)

// StructuralWarning is an advisory finding about the outline. It never blocks
// an edit; callers decide whether to show or act on it.
type StructuralWarning struct {
	Index       int                      `json:"index"`
	ParagraphID valueobjects.ParagraphID `json:"paragraph_id"`
	Level       valueobjects.Level       `json:"level"`
	Citation    string                   `json:"citation"`
	Message     string                   `json:"message"`
}

// StructureValidator checks the sibling-completeness rule: a paragraph below
// the top level must share its level with at least one other paragraph under
// the same parent.
type StructureValidator struct {
	citations *services.CitationEngine
}

// NewStructureValidator creates a new structure validator
func NewStructureValidator(citations *services.CitationEngine) *StructureValidator {
	if citations == nil {
		citations = services.NewCitationEngine()
	}
	return &StructureValidator{citations: citations}
}

type siblingKey struct {
	path  string
	level valueobjects.Level
}

// Validate returns one warning per paragraph that has no sibling, in document
// order. Top-level paragraphs are exempt.
func (v *StructureValidator) Validate(nodes []entities.Paragraph) []StructuralWarning {
	groups := make(map[siblingKey][]int)
	var order []siblingKey

	for i, node := range nodes {
		if node.Level().IsTop() {
			continue
		}
		key := siblingKey{
			path:  strings.Join(v.citations.AncestorTokens(i, nodes), "/"),
			level: node.Level(),
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var warnings []StructuralWarning
	for _, key := range order {
		members := groups[key]
		if len(members) != 1 {
			continue
		}
		index := members[0]
		citation := v.citations.CitationFor(index, nodes)
		warnings = append(warnings, StructuralWarning{
			Index:       index,
			ParagraphID: nodes[index].ID(),
			Level:       nodes[index].Level(),
			Citation:    citation,
			Message:     fmt.Sprintf("paragraph %s requires at least one sibling at the same level.", citation),
		})
	}

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Index < warnings[j].Index })
	return warnings
}

// ByParagraph indexes warnings by paragraph id
func ByParagraph(warnings []StructuralWarning) map[valueobjects.ParagraphID]StructuralWarning {
	out := make(map[valueobjects.ParagraphID]StructuralWarning, len(warnings))
	for _, w := range warnings {
		out[w.ParagraphID] = w
	}
	return out
}
