package aggregates

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/validators"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

// ParagraphKind selects the level of a newly inserted paragraph relative to
// the paragraph it follows
type ParagraphKind string

const (
	KindMain ParagraphKind = "main" // level 1
	KindSame ParagraphKind = "same" // same level
	KindSub  ParagraphKind = "sub"  // one level deeper
	KindUp   ParagraphKind = "up"   // one level shallower
)

// IsValid reports whether k is a known kind
func (k ParagraphKind) IsValid() bool {
	switch k {
	case KindMain, KindSame, KindSub, KindUp:
		return true
	default:
		return false
	}
}

// RemovalPlan is the outcome of RemoveParagraph. When Cleared is set the
// paragraph was the last one and has already been emptied; otherwise nothing
// has changed yet and Candidate shows the outline as it would be after
// CommitRemoval, with the structural warnings it would carry.
type RemovalPlan struct {
	ParagraphID valueobjects.ParagraphID
	Index       int
	Cleared     bool
	Candidate   []entities.Paragraph
	Warnings    []validators.StructuralWarning

	baseVersion int
}

// RequiresConfirmation reports whether committing would leave structural warnings
func (p *RemovalPlan) RequiresConfirmation() bool {
	return !p.Cleared && len(p.Warnings) > 0
}

// OutlineEditor performs structural edits on a ParagraphStore. Levels of
// paragraphs it does not touch never change.
type OutlineEditor struct {
	store     *ParagraphStore
	validator *validators.StructureValidator
	maxLevel  int
}

// NewOutlineEditor creates an editor over store
func NewOutlineEditor(store *ParagraphStore, validator *validators.StructureValidator, cfg *config.FormatConfig) *OutlineEditor {
	if cfg == nil {
		cfg = config.DefaultFormatConfig()
	}
	if validator == nil {
		validator = validators.NewStructureValidator(nil)
	}
	return &OutlineEditor{
		store:     store,
		validator: validator,
		maxLevel:  cfg.MaxLevel,
	}
}

// Store returns the underlying store
func (e *OutlineEditor) Store() *ParagraphStore {
	return e.store
}

// AddParagraph inserts an empty paragraph immediately after afterID and
// returns it. The new id is max(existing ids)+1.
func (e *OutlineEditor) AddParagraph(kind ParagraphKind, afterID valueobjects.ParagraphID) (entities.Paragraph, error) {
	if !kind.IsValid() {
		return entities.Paragraph{}, pkgerrors.NewDomainError(
			pkgerrors.DomainValidationError,
			pkgerrors.ErrUnknownParagraphKind.Code,
			pkgerrors.ErrUnknownParagraphKind.Message,
		).WithDetail("kind", string(kind))
	}

	index, ok := e.store.IndexOf(afterID)
	if !ok {
		return entities.Paragraph{}, pkgerrors.NewParagraphNotFound(afterID.Int())
	}
	anchor := e.store.paragraphs[index].Level()

	var level valueobjects.Level
	switch kind {
	case KindMain:
		level = valueobjects.MinLevel
	case KindSame:
		level = anchor
	case KindSub:
		level = anchor.Deeper(e.maxLevel)
	case KindUp:
		level = anchor.Shallower()
	}

	paragraph := entities.NewParagraph(e.store.NextID(), level.Int(), "")
	e.store.insertAfter(index, paragraph)
	e.store.addEvent(events.NewParagraphAdded(e.store.aggregateID, paragraph.ID(), afterID, level, string(kind), e.store.version))

	return paragraph, nil
}

// RemoveParagraph starts the two-step removal of id. The last remaining
// paragraph is cleared on the spot. Any other paragraph is left in place and
// the returned plan describes the result; call CommitRemoval to apply it.
func (e *OutlineEditor) RemoveParagraph(id valueobjects.ParagraphID) (*RemovalPlan, error) {
	index, ok := e.store.IndexOf(id)
	if !ok {
		return nil, pkgerrors.NewParagraphNotFound(id.Int())
	}

	if e.store.Len() == 1 {
		e.store.mutate(index, func(p *entities.Paragraph) bool {
			p.ClearText()
			return true
		})
		e.store.addEvent(events.NewParagraphCleared(e.store.aggregateID, id, e.store.version))
		return &RemovalPlan{
			ParagraphID: id,
			Index:       index,
			Cleared:     true,
			Candidate:   e.store.Snapshot(),
			baseVersion: e.store.version,
		}, nil
	}

	current := e.store.Snapshot()
	candidate := append(current[:index:index], current[index+1:]...)

	return &RemovalPlan{
		ParagraphID: id,
		Index:       index,
		Candidate:   candidate,
		Warnings:    e.validator.Validate(candidate),
		baseVersion: e.store.version,
	}, nil
}

// CommitRemoval applies a plan returned by RemoveParagraph. A plan made
// before any later edit is rejected with a conflict error.
func (e *OutlineEditor) CommitRemoval(plan *RemovalPlan) error {
	if plan == nil {
		return pkgerrors.NewValidationError("removal plan cannot be nil")
	}
	if plan.Cleared {
		return nil
	}
	if plan.baseVersion != e.store.version {
		return pkgerrors.NewDomainError(
			pkgerrors.DomainConflictError,
			pkgerrors.ErrStaleRemovalPlan.Code,
			pkgerrors.ErrStaleRemovalPlan.Message,
		).WithDetail("paragraph_id", plan.ParagraphID.Int()).
			WithDetail("planned_version", plan.baseVersion).
			WithDetail("current_version", e.store.version)
	}

	index, ok := e.store.IndexOf(plan.ParagraphID)
	if !ok {
		return pkgerrors.NewParagraphNotFound(plan.ParagraphID.Int())
	}
	e.store.removeAt(index)
	e.store.addEvent(events.NewParagraphRemoved(e.store.aggregateID, plan.ParagraphID, len(plan.Warnings), e.store.version))
	return nil
}

// MoveUp swaps id with the paragraph above it. It reports false, changing
// nothing, when id is first or when its level is deeper than the paragraph
// above, since moving it would detach it from its parent.
func (e *OutlineEditor) MoveUp(id valueobjects.ParagraphID) (bool, error) {
	index, ok := e.store.IndexOf(id)
	if !ok {
		return false, pkgerrors.NewParagraphNotFound(id.Int())
	}
	if index == 0 {
		return false, nil
	}
	if e.store.paragraphs[index].Level() > e.store.paragraphs[index-1].Level() {
		return false, nil
	}

	e.store.swap(index, index-1)
	e.store.addEvent(events.NewParagraphMoved(e.store.aggregateID, id, index, index-1, e.store.version))
	return true, nil
}

// MoveDown swaps id with the paragraph below it. It reports false when id is
// already last.
func (e *OutlineEditor) MoveDown(id valueobjects.ParagraphID) (bool, error) {
	index, ok := e.store.IndexOf(id)
	if !ok {
		return false, pkgerrors.NewParagraphNotFound(id.Int())
	}
	if index == e.store.Len()-1 {
		return false, nil
	}

	e.store.swap(index, index+1)
	e.store.addEvent(events.NewParagraphMoved(e.store.aggregateID, id, index, index+1, e.store.version))
	return true, nil
}

// UpdateContent replaces the text of id in place
func (e *OutlineEditor) UpdateContent(id valueobjects.ParagraphID, text string) error {
	index, ok := e.store.IndexOf(id)
	if !ok {
		return pkgerrors.NewParagraphNotFound(id.Int())
	}
	if e.store.mutate(index, func(p *entities.Paragraph) bool { return p.UpdateText(text) }) {
		e.store.addEvent(events.NewParagraphContentUpdated(e.store.aggregateID, id, e.store.version))
	}
	return nil
}

// Validate runs the structure validator over the current outline
func (e *OutlineEditor) Validate() []validators.StructuralWarning {
	return e.validator.Validate(e.store.paragraphs)
}

// RefreshWarnings validates the outline and stores each finding on its
// paragraph, clearing stale ones
func (e *OutlineEditor) RefreshWarnings() []validators.StructuralWarning {
	warnings := e.Validate()
	byID := validators.ByParagraph(warnings)
	e.store.annotate(func(id valueobjects.ParagraphID) string {
		return byID[id].Message
	})
	return warnings
}
