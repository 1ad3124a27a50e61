package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

func TestNewParagraphStore(t *testing.T) {
	store := NewParagraphStore()

	require.Equal(t, 1, store.Len())
	p := store.Snapshot()[0]
	assert.Equal(t, valueobjects.NewParagraphID(1), p.ID())
	assert.True(t, p.Level().IsTop())
	assert.True(t, p.IsEmpty())
	assert.Equal(t, valueobjects.NewParagraphID(2), store.NextID())
}

func TestRestoreParagraphStore(t *testing.T) {
	t.Run("empty input yields one blank paragraph", func(t *testing.T) {
		store, err := RestoreParagraphStore(nil)
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		_, err := RestoreParagraphStore([]entities.Paragraph{
			entities.NewParagraph(1, 1, "a"),
			entities.NewParagraph(1, 2, "b"),
		})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("non-positive ids are rejected", func(t *testing.T) {
		_, err := RestoreParagraphStore([]entities.Paragraph{entities.NewParagraph(0, 1, "a")})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("input is copied", func(t *testing.T) {
		input := []entities.Paragraph{entities.NewParagraph(1, 1, "a")}
		store, err := RestoreParagraphStore(input)
		require.NoError(t, err)

		input[0] = entities.NewParagraph(5, 3, "changed")
		p, err := store.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "a", p.Text())
	})
}

func TestParagraphStore_SnapshotIsACopy(t *testing.T) {
	store := NewParagraphStore()

	snapshot := store.Snapshot()
	snapshot[0].UpdateText("mutated copy")

	p, err := store.Get(1)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestParagraphStore_Get_NotFound(t *testing.T) {
	store := NewParagraphStore()
	_, err := store.Get(3)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestNewLetterDraft(t *testing.T) {
	d := NewLetterDraft()

	_, err := ParseDraftID(d.ID().String())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Version())
	assert.Nil(t, d.Endorsement())
	assert.Equal(t, []string{""}, d.Routing().Via)
	assert.Equal(t, []string{""}, d.Routing().CopyTo)
	assert.Equal(t, 1, d.Paragraphs().Len())
}

func TestLetterDraft_VersionCountsEveryEdit(t *testing.T) {
	d := NewLetterDraft()

	d.UpdateHeader(valueobjects.LetterHeader{Subject: "Test"})
	d.UpdateRouting(valueobjects.RoutingLists{Via: []string{"CO"}})
	e := NewOutlineEditor(d.Paragraphs(), nil, nil)
	_, err := e.AddParagraph(KindSame, 1)
	require.NoError(t, err)

	assert.Equal(t, 4, d.Version())
	assert.Equal(t, "Test", d.Header().Subject)
	assert.Equal(t, []string{"CO"}, d.Routing().Via)
	assert.Equal(t, []string{""}, d.Routing().References)
}

func TestLetterDraft_EndorsementIsCopied(t *testing.T) {
	d := NewLetterDraft()
	e := &valueobjects.EndorsementContext{Level: 1, BasicLetterReference: "ltr 1000 of 1 Jan 26"}

	d.SetEndorsement(e)
	e.Level = 4

	require.NotNil(t, d.Endorsement())
	assert.Equal(t, 1, d.Endorsement().Level)

	got := d.Endorsement()
	got.Level = 6
	assert.Equal(t, 1, d.Endorsement().Level)

	d.SetEndorsement(nil)
	assert.Nil(t, d.Endorsement())
}

func TestReconstructLetterDraft(t *testing.T) {
	id := NewDraftID()
	store, err := RestoreParagraphStore([]entities.Paragraph{entities.NewParagraph(4, 1, "body")})
	require.NoError(t, err)

	d := ReconstructLetterDraft(id, valueobjects.LetterHeader{From: "CO"}, valueobjects.RoutingLists{}, nil, store)

	assert.Equal(t, id, d.ID())
	assert.Equal(t, "CO", d.Header().From)
	assert.Equal(t, []string{""}, d.Routing().Enclosures)
	assert.Same(t, store, d.Paragraphs())

	generated := ReconstructLetterDraft("", valueobjects.LetterHeader{}, valueobjects.RoutingLists{}, nil, nil)
	assert.NotEmpty(t, generated.ID())
	assert.Equal(t, 1, generated.Paragraphs().Len())
}

func TestParseDraftID(t *testing.T) {
	_, err := ParseDraftID("not-a-uuid")
	assert.Error(t, err)

	id, err := ParseDraftID("7b2d9c1e-4f0a-4a4e-9a55-1c2d3e4f5a6b")
	require.NoError(t, err)
	assert.Equal(t, "7b2d9c1e-4f0a-4a4e-9a55-1c2d3e4f5a6b", id.String())
}
