package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

func outline(levels ...int) []entities.Paragraph {
	nodes := make([]entities.Paragraph, len(levels))
	for i, level := range levels {
		nodes[i] = entities.NewParagraph(valueobjects.NewParagraphID(i+1), level, "")
	}
	return nodes
}

func TestStructureValidator_Validate(t *testing.T) {
	tests := []struct {
		name        string
		levels      []int
		wantIndexes []int
	}{
		{
			name:        "complete sibling group",
			levels:      []int{1, 2, 2},
			wantIndexes: nil,
		},
		{
			name:        "lone subparagraph",
			levels:      []int{1, 2},
			wantIndexes: []int{1},
		},
		{
			name:        "isolated main paragraph is exempt",
			levels:      []int{1},
			wantIndexes: nil,
		},
		{
			name:        "one warning per orphan under different parents",
			levels:      []int{1, 2, 1, 2},
			wantIndexes: []int{1, 3},
		},
		{
			name:        "orphan at level three",
			levels:      []int{1, 2, 3, 2},
			wantIndexes: []int{2},
		},
		{
			name:        "siblings separated by deeper paragraphs",
			levels:      []int{1, 2, 3, 3, 2},
			wantIndexes: nil,
		},
		{
			name:        "nested orphans reported in document order",
			levels:      []int{1, 2, 3},
			wantIndexes: []int{1, 2},
		},
	}

	v := NewStructureValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := v.Validate(outline(tt.levels...))

			var indexes []int
			for _, w := range warnings {
				indexes = append(indexes, w.Index)
			}
			assert.Equal(t, tt.wantIndexes, indexes)
		})
	}
}

func TestStructureValidator_WarningContent(t *testing.T) {
	v := NewStructureValidator(nil)

	warnings := v.Validate(outline(1, 2))

	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, valueobjects.NewParagraphID(2), w.ParagraphID)
	assert.Equal(t, valueobjects.Level(2), w.Level)
	assert.Equal(t, "a.", w.Citation)
	assert.Equal(t, "paragraph a. requires at least one sibling at the same level.", w.Message)
}

func TestStructureValidator_DeepCitationInMessage(t *testing.T) {
	v := NewStructureValidator(nil)

	warnings := v.Validate(outline(1, 2, 2, 3))

	require.Len(t, warnings, 1)
	assert.Equal(t, "1b(1)", warnings[0].Citation)
	assert.Contains(t, warnings[0].Message, "1b(1)")
}

func TestByParagraph(t *testing.T) {
	v := NewStructureValidator(nil)
	warnings := v.Validate(outline(1, 2, 1, 2))

	byID := ByParagraph(warnings)

	assert.Len(t, byID, 2)
	assert.Contains(t, byID, valueobjects.NewParagraphID(2))
	assert.Contains(t, byID, valueobjects.NewParagraphID(4))
	assert.NotContains(t, byID, valueobjects.NewParagraphID(1))
}
