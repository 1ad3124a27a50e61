// Package memory provides in-process implementations of the application
// persistence ports.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

var _ ports.DraftRepository = (*DraftRepository)(nil)

// DraftRepository keeps drafts in a map. Drafts are stored by pointer, so
// callers that mutate a loaded draft must serialize access to it.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[aggregates.DraftID]*aggregates.LetterDraft
}

// NewDraftRepository creates an empty repository
func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		drafts: make(map[aggregates.DraftID]*aggregates.LetterDraft),
	}
}

// Save persists a draft (create or update)
func (r *DraftRepository) Save(ctx context.Context, draft *aggregates.LetterDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if draft == nil {
		return pkgerrors.NewValidationError("draft cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.ID()] = draft
	return nil
}

// GetByID retrieves a draft by its ID
func (r *DraftRepository) GetByID(ctx context.Context, id aggregates.DraftID) (*aggregates.LetterDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[id]
	if !ok {
		return nil, draftNotFound(id)
	}
	return draft, nil
}

// List returns the ids of all stored drafts sorted lexically
func (r *DraftRepository) List(ctx context.Context) ([]aggregates.DraftID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	ids := make([]aggregates.DraftID, 0, len(r.drafts))
	for id := range r.drafts {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Delete removes a draft
func (r *DraftRepository) Delete(ctx context.Context, id aggregates.DraftID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return draftNotFound(id)
	}
	delete(r.drafts, id)
	return nil
}

func draftNotFound(id aggregates.DraftID) *pkgerrors.DomainError {
	return pkgerrors.NewDomainError(pkgerrors.DomainNotFoundError, pkgerrors.ErrDraftNotFound.Code,
		"letter draft "+id.String()+" does not exist").
		WithDetail("draft_id", id.String())
}
