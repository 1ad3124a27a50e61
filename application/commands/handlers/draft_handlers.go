package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/services"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
)

// DraftHandlers handles commands that change a letter as a whole
type DraftHandlers struct {
	service *services.LetterService
	logger  *zap.Logger
}

// NewDraftHandlers creates a new handler instance
func NewDraftHandlers(service *services.LetterService, logger *zap.Logger) *DraftHandlers {
	return &DraftHandlers{
		service: service,
		logger:  logger,
	}
}

// HandleCreate creates a draft and returns its id
func (h *DraftHandlers) HandleCreate(ctx context.Context, _ commands.CreateDraftCommand) (string, error) {
	draft, err := h.service.CreateDraft(ctx)
	if err != nil {
		return "", err
	}
	return draft.ID().String(), nil
}

// HandleDelete removes a draft
func (h *DraftHandlers) HandleDelete(ctx context.Context, cmd commands.DeleteDraftCommand) error {
	return h.service.DeleteDraft(ctx, aggregates.DraftID(cmd.DraftID))
}

// HandleUpdateHeader replaces the header fields
func (h *DraftHandlers) HandleUpdateHeader(ctx context.Context, cmd commands.UpdateHeaderCommand) error {
	return h.service.UpdateHeader(ctx, aggregates.DraftID(cmd.DraftID), cmd.Header)
}

// HandleUpdateRouting replaces the routing lists
func (h *DraftHandlers) HandleUpdateRouting(ctx context.Context, cmd commands.UpdateRoutingCommand) error {
	return h.service.UpdateRouting(ctx, aggregates.DraftID(cmd.DraftID), cmd.Routing)
}

// HandleSetEndorsement sets or clears the endorsement context
func (h *DraftHandlers) HandleSetEndorsement(ctx context.Context, cmd commands.SetEndorsementCommand) error {
	return h.service.SetEndorsement(ctx, aggregates.DraftID(cmd.DraftID), cmd.Endorsement)
}

// HandleImport stores the draft held in a bundle and returns its id
func (h *DraftHandlers) HandleImport(ctx context.Context, cmd commands.ImportBundleCommand) (string, error) {
	draft, err := h.service.Import(ctx, cmd.Data)
	if err != nil {
		return "", err
	}
	h.logger.Info("Bundle imported",
		zap.String("draftID", draft.ID().String()),
		zap.Int("bytes", len(cmd.Data)),
	)
	return draft.ID().String(), nil
}
