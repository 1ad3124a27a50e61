package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries/bus"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/services"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/validators"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
)

// LetterQueryHandlers answers read-only questions about letters
type LetterQueryHandlers struct {
	service *services.LetterService
	logger  *zap.Logger
}

// NewLetterQueryHandlers creates a new handler instance
func NewLetterQueryHandlers(service *services.LetterService, logger *zap.Logger) *LetterQueryHandlers {
	return &LetterQueryHandlers{
		service: service,
		logger:  logger,
	}
}

// Register wires every letter query to its handler on b
func (h *LetterQueryHandlers) Register(b *bus.QueryBus) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.GetDraftQuery{}, typed(h.HandleGetDraft)},
		{queries.ListDraftsQuery{}, typed(h.HandleListDrafts)},
		{queries.RenderLetterQuery{}, typed(h.HandleRender)},
		{queries.ValidateOutlineQuery{}, typed(h.HandleValidate)},
		{queries.ExportBundleQuery{}, typed(h.HandleExport)},
		{queries.GetEventsQuery{}, typed(h.HandleGetEvents)},
	}
	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// HandleGetDraft returns a draft with the citation of every paragraph
func (h *LetterQueryHandlers) HandleGetDraft(ctx context.Context, q queries.GetDraftQuery) (*queries.DraftResult, error) {
	view, err := h.service.View(ctx, aggregates.DraftID(q.DraftID))
	if err != nil {
		return nil, err
	}

	paragraphs := make([]queries.ParagraphResult, len(view.Paragraphs))
	for i, p := range view.Paragraphs {
		paragraphs[i] = queries.ParagraphResult{
			ID:       p.ID,
			Level:    p.Level,
			Citation: p.Citation,
			Text:     p.Text,
			Warning:  p.Warning,
		}
	}

	return &queries.DraftResult{
		ID:          view.ID.String(),
		Version:     view.Version,
		Header:      view.Header,
		Routing:     view.Routing,
		Endorsement: view.Endorsement,
		Paragraphs:  paragraphs,
	}, nil
}

// HandleListDrafts returns all draft ids
func (h *LetterQueryHandlers) HandleListDrafts(ctx context.Context, _ queries.ListDraftsQuery) ([]string, error) {
	ids, err := h.service.ListDrafts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out, nil
}

// HandleRender returns the formatted line sequence of a letter
func (h *LetterQueryHandlers) HandleRender(ctx context.Context, q queries.RenderLetterQuery) (*rendering.Document, error) {
	return h.service.Render(ctx, aggregates.DraftID(q.DraftID), config.Regime(q.Regime))
}

// HandleValidate returns the structural warnings of a letter
func (h *LetterQueryHandlers) HandleValidate(ctx context.Context, q queries.ValidateOutlineQuery) ([]validators.StructuralWarning, error) {
	return h.service.Validate(ctx, aggregates.DraftID(q.DraftID))
}

// HandleExport returns an export bundle
func (h *LetterQueryHandlers) HandleExport(ctx context.Context, q queries.ExportBundleQuery) ([]byte, error) {
	return h.service.Export(ctx, aggregates.DraftID(q.DraftID), ports.ExportOptions{
		Compress:      q.Compress,
		SchemaVersion: q.SchemaVersion,
	})
}

// HandleGetEvents returns the outline history of a letter
func (h *LetterQueryHandlers) HandleGetEvents(ctx context.Context, q queries.GetEventsQuery) ([]queries.EventResult, error) {
	recorded, err := h.service.Events(ctx, aggregates.DraftID(q.DraftID))
	if err != nil {
		return nil, err
	}
	out := make([]queries.EventResult, len(recorded))
	for i, e := range recorded {
		out[i] = queries.EventResult{
			Type:        e.GetEventType(),
			AggregateID: e.GetAggregateID(),
			Version:     e.GetVersion(),
		}
	}
	return out, nil
}

// typed adapts a handler method for one concrete query type
func typed[Q bus.Query, R any](fn func(context.Context, Q) (R, error)) bus.QueryHandler {
	return bus.QueryHandlerFunc(func(ctx context.Context, query bus.Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", query)
		}
		return fn(ctx, q)
	})
}
