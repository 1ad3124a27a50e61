package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

func newEditor(t *testing.T, levels ...int) *OutlineEditor {
	t.Helper()
	paragraphs := make([]entities.Paragraph, len(levels))
	for i, level := range levels {
		paragraphs[i] = entities.NewParagraph(valueobjects.NewParagraphID(i+1), level, "")
	}
	store, err := RestoreParagraphStore(paragraphs)
	require.NoError(t, err)
	return NewOutlineEditor(store, nil, nil)
}

func levelsOf(e *OutlineEditor) []int {
	snapshot := e.Store().Snapshot()
	out := make([]int, len(snapshot))
	for i, p := range snapshot {
		out[i] = p.Level().Int()
	}
	return out
}

func idsOf(e *OutlineEditor) []int {
	snapshot := e.Store().Snapshot()
	out := make([]int, len(snapshot))
	for i, p := range snapshot {
		out[i] = p.ID().Int()
	}
	return out
}

func TestOutlineEditor_AddParagraph(t *testing.T) {
	tests := []struct {
		name       string
		levels     []int
		kind       ParagraphKind
		after      int
		wantLevels []int
		wantIDs    []int
	}{
		{
			name:       "sub after a main paragraph",
			levels:     []int{1},
			kind:       KindSub,
			after:      1,
			wantLevels: []int{1, 2},
			wantIDs:    []int{1, 2},
		},
		{
			name:       "same level",
			levels:     []int{1, 2},
			kind:       KindSame,
			after:      2,
			wantLevels: []int{1, 2, 2},
			wantIDs:    []int{1, 2, 3},
		},
		{
			name:       "main inserts level one",
			levels:     []int{1, 2, 3},
			kind:       KindMain,
			after:      3,
			wantLevels: []int{1, 2, 3, 1},
			wantIDs:    []int{1, 2, 3, 4},
		},
		{
			name:       "up goes one level shallower",
			levels:     []int{1, 2, 3},
			kind:       KindUp,
			after:      3,
			wantLevels: []int{1, 2, 3, 2},
			wantIDs:    []int{1, 2, 3, 4},
		},
		{
			name:       "up at level one stays at one",
			levels:     []int{1},
			kind:       KindUp,
			after:      1,
			wantLevels: []int{1, 1},
			wantIDs:    []int{1, 2},
		},
		{
			name:       "sub at the deepest level is clamped",
			levels:     []int{1, 2, 3, 4, 5, 6, 7, 8},
			kind:       KindSub,
			after:      8,
			wantLevels: []int{1, 2, 3, 4, 5, 6, 7, 8, 8},
			wantIDs:    []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		{
			name:       "inserted in the middle",
			levels:     []int{1, 1},
			kind:       KindSub,
			after:      1,
			wantLevels: []int{1, 2, 1},
			wantIDs:    []int{1, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.levels...)

			p, err := e.AddParagraph(tt.kind, valueobjects.NewParagraphID(tt.after))

			require.NoError(t, err)
			assert.True(t, p.IsEmpty())
			assert.Equal(t, tt.wantLevels, levelsOf(e))
			assert.Equal(t, tt.wantIDs, idsOf(e))
		})
	}
}

func TestOutlineEditor_AddParagraph_IDIsMaxPlusOne(t *testing.T) {
	store, err := RestoreParagraphStore([]entities.Paragraph{
		entities.NewParagraph(7, 1, "seven"),
		entities.NewParagraph(3, 1, "three"),
	})
	require.NoError(t, err)
	e := NewOutlineEditor(store, nil, nil)

	p, err := e.AddParagraph(KindSame, 3)

	require.NoError(t, err)
	assert.Equal(t, valueobjects.NewParagraphID(8), p.ID())
}

func TestOutlineEditor_AddParagraph_RespectsConfiguredMaxLevel(t *testing.T) {
	cfg := config.DefaultFormatConfig()
	cfg.MaxLevel = 4
	store, err := RestoreParagraphStore([]entities.Paragraph{
		entities.NewParagraph(1, 1, ""),
		entities.NewParagraph(2, 2, ""),
		entities.NewParagraph(3, 3, ""),
		entities.NewParagraph(4, 4, ""),
	})
	require.NoError(t, err)
	e := NewOutlineEditor(store, nil, cfg)

	p, err := e.AddParagraph(KindSub, 4)

	require.NoError(t, err)
	assert.Equal(t, 4, p.Level().Int())
}

func TestOutlineEditor_AddParagraph_Errors(t *testing.T) {
	e := newEditor(t, 1)

	_, err := e.AddParagraph("sideways", 1)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = e.AddParagraph(KindSame, 42)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.ErrorIs(t, err, pkgerrors.ErrParagraphNotFound)

	assert.Equal(t, []int{1}, levelsOf(e))
}

func TestOutlineEditor_AddParagraph_DoesNotTouchOtherLevels(t *testing.T) {
	e := newEditor(t, 1, 2, 3, 3, 2, 1)
	before := levelsOf(e)

	_, err := e.AddParagraph(KindSub, 3)
	require.NoError(t, err)

	after := levelsOf(e)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, before[:3], after[:3])
	assert.Equal(t, before[3:], after[4:])
}

func TestOutlineEditor_RemoveParagraph_TwoPhase(t *testing.T) {
	e := newEditor(t, 1, 2, 2)
	version := e.Store().Version()

	plan, err := e.RemoveParagraph(3)

	require.NoError(t, err)
	assert.False(t, plan.Cleared)
	assert.Equal(t, 2, plan.Index)
	assert.Equal(t, version, e.Store().Version(), "planning must not mutate")
	assert.Equal(t, []int{1, 2, 2}, levelsOf(e))
	require.Len(t, plan.Candidate, 2)
	require.Len(t, plan.Warnings, 1)
	assert.Equal(t, 1, plan.Warnings[0].Index)
	assert.True(t, plan.RequiresConfirmation())

	require.NoError(t, e.CommitRemoval(plan))
	assert.Equal(t, []int{1, 2}, levelsOf(e))
	assert.Equal(t, []int{1, 2}, idsOf(e))
}

func TestOutlineEditor_RemoveParagraph_NoWarnings(t *testing.T) {
	e := newEditor(t, 1, 2, 2, 1)

	plan, err := e.RemoveParagraph(4)

	require.NoError(t, err)
	assert.Empty(t, plan.Warnings)
	assert.False(t, plan.RequiresConfirmation())
	require.NoError(t, e.CommitRemoval(plan))
	assert.Equal(t, []int{1, 2, 2}, levelsOf(e))
}

func TestOutlineEditor_RemoveParagraph_SoleParagraphIsCleared(t *testing.T) {
	store, err := RestoreParagraphStore([]entities.Paragraph{
		entities.NewParagraph(1, 1, "Only paragraph"),
	})
	require.NoError(t, err)
	e := NewOutlineEditor(store, nil, nil)

	plan, err := e.RemoveParagraph(1)

	require.NoError(t, err)
	assert.True(t, plan.Cleared)
	assert.False(t, plan.RequiresConfirmation())
	require.Equal(t, 1, e.Store().Len())
	p, err := e.Store().Get(1)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	// Committing a cleared plan is a no-op
	require.NoError(t, e.CommitRemoval(plan))
	assert.Equal(t, 1, e.Store().Len())
}

func TestOutlineEditor_CommitRemoval_StalePlan(t *testing.T) {
	e := newEditor(t, 1, 2, 2)

	plan, err := e.RemoveParagraph(2)
	require.NoError(t, err)
	require.NoError(t, e.UpdateContent(1, "changed in between"))

	err = e.CommitRemoval(plan)

	assert.True(t, pkgerrors.IsConflict(err))
	assert.ErrorIs(t, err, pkgerrors.ErrStaleRemovalPlan)
	assert.Equal(t, []int{1, 2, 2}, levelsOf(e))
}

func TestOutlineEditor_CommitRemoval_Nil(t *testing.T) {
	e := newEditor(t, 1)
	assert.True(t, pkgerrors.IsValidation(e.CommitRemoval(nil)))
}

func TestOutlineEditor_RemoveParagraph_NotFound(t *testing.T) {
	e := newEditor(t, 1)
	_, err := e.RemoveParagraph(9)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestOutlineEditor_MoveUp(t *testing.T) {
	tests := []struct {
		name    string
		levels  []int
		id      int
		moved   bool
		wantIDs []int
	}{
		{"first paragraph", []int{1, 1}, 1, false, []int{1, 2}},
		{"deeper than the paragraph above", []int{1, 2}, 2, false, []int{1, 2}},
		{"same level", []int{1, 2, 2}, 3, true, []int{1, 3, 2}},
		{"shallower than the paragraph above", []int{1, 2, 1}, 3, true, []int{1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.levels...)
			version := e.Store().Version()

			moved, err := e.MoveUp(valueobjects.NewParagraphID(tt.id))

			require.NoError(t, err)
			assert.Equal(t, tt.moved, moved)
			assert.Equal(t, tt.wantIDs, idsOf(e))
			if !moved {
				assert.Equal(t, version, e.Store().Version())
			}
		})
	}
}

func TestOutlineEditor_MoveDown(t *testing.T) {
	e := newEditor(t, 1, 2, 2)

	moved, err := e.MoveDown(3)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = e.MoveDown(2)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []int{1, 3, 2}, idsOf(e))

	_, err = e.MoveDown(99)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestOutlineEditor_UpdateContent(t *testing.T) {
	e := newEditor(t, 1)
	version := e.Store().Version()

	require.NoError(t, e.UpdateContent(1, "First line\nsecond line"))
	p, err := e.Store().Get(1)
	require.NoError(t, err)
	assert.Equal(t, "First line second line", p.Text())
	assert.Equal(t, version+1, e.Store().Version())

	// Same text again changes nothing
	require.NoError(t, e.UpdateContent(1, "First line second line"))
	assert.Equal(t, version+1, e.Store().Version())

	assert.True(t, pkgerrors.IsNotFound(e.UpdateContent(5, "x")))
}

func TestOutlineEditor_RefreshWarnings(t *testing.T) {
	e := newEditor(t, 1, 2)
	version := e.Store().Version()

	warnings := e.RefreshWarnings()

	require.Len(t, warnings, 1)
	p, err := e.Store().Get(2)
	require.NoError(t, err)
	assert.Equal(t, warnings[0].Message, p.Warning())
	assert.Equal(t, version, e.Store().Version())

	_, err = e.AddParagraph(KindSame, 2)
	require.NoError(t, err)
	assert.Empty(t, e.RefreshWarnings())
	p, err = e.Store().Get(2)
	require.NoError(t, err)
	assert.Empty(t, p.Warning())
}

func TestOutlineEditor_Events(t *testing.T) {
	e := newEditor(t, 1)

	_, err := e.AddParagraph(KindSub, 1)
	require.NoError(t, err)
	_, err = e.AddParagraph(KindSame, 2)
	require.NoError(t, err)
	_, err = e.MoveDown(2)
	require.NoError(t, err)
	plan, err := e.RemoveParagraph(3)
	require.NoError(t, err)
	require.NoError(t, e.CommitRemoval(plan))

	recorded := e.Store().GetUncommittedEvents()
	require.Len(t, recorded, 4)
	assert.Equal(t, events.TypeParagraphAdded, recorded[0].GetEventType())
	assert.Equal(t, events.TypeParagraphAdded, recorded[1].GetEventType())
	assert.Equal(t, events.TypeParagraphMoved, recorded[2].GetEventType())
	assert.Equal(t, events.TypeParagraphRemoved, recorded[3].GetEventType())
	for i := 1; i < len(recorded); i++ {
		assert.Greater(t, recorded[i].GetVersion(), recorded[i-1].GetVersion())
	}

	e.Store().MarkEventsAsCommitted()
	assert.Empty(t, e.Store().GetUncommittedEvents())
}
