package ports

import (
	"context"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
)

// DraftRepository defines the interface for letter draft persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type DraftRepository interface {
	// Save persists a draft (create or update)
	Save(ctx context.Context, draft *aggregates.LetterDraft) error

	// GetByID retrieves a draft by its ID
	GetByID(ctx context.Context, id aggregates.DraftID) (*aggregates.LetterDraft, error)

	// List returns the ids of all stored drafts in a stable order
	List(ctx context.Context) ([]aggregates.DraftID, error)

	// Delete removes a draft
	Delete(ctx context.Context, id aggregates.DraftID) error
}

// EventStore defines the interface for event persistence
type EventStore interface {
	// SaveEvents appends domain events raised by a draft
	SaveEvents(ctx context.Context, draftID aggregates.DraftID, events []events.DomainEvent) error

	// GetEvents retrieves events for a draft in the order they were saved
	GetEvents(ctx context.Context, draftID aggregates.DraftID) ([]events.DomainEvent, error)

	// DeleteEvents removes all events for a draft
	DeleteEvents(ctx context.Context, draftID aggregates.DraftID) error
}

// RenderCache holds serialized documents keyed by draft, draft version and
// spacing regime
type RenderCache interface {
	// Get retrieves a document from cache
	Get(ctx context.Context, key string) (*rendering.Document, bool)

	// Set stores a document
	Set(ctx context.Context, key string, doc *rendering.Document)

	// Invalidate removes every entry of a draft
	Invalidate(ctx context.Context, draftID aggregates.DraftID)
}

// ExportOptions controls how a draft is exported
type ExportOptions struct {
	// Compress wraps the bundle in an xz stream
	Compress bool
	// SchemaVersion selects an older bundle schema; zero means the current one
	SchemaVersion int
}

// BundleCodec converts drafts to and from export bundles
type BundleCodec interface {
	// Export encodes a draft
	Export(ctx context.Context, draft *aggregates.LetterDraft, opts ExportOptions) ([]byte, error)

	// Import decodes a bundle of any supported schema version
	Import(ctx context.Context, data []byte) (*aggregates.LetterDraft, error)
}
