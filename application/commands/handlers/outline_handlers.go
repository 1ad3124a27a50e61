package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/services"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/validators"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

// OutlineHandlers handles structural edits of the paragraph outline
type OutlineHandlers struct {
	service *services.LetterService
	logger  *zap.Logger
}

// NewOutlineHandlers creates a new handler instance
func NewOutlineHandlers(service *services.LetterService, logger *zap.Logger) *OutlineHandlers {
	return &OutlineHandlers{
		service: service,
		logger:  logger,
	}
}

// HandleAdd inserts a paragraph
func (h *OutlineHandlers) HandleAdd(ctx context.Context, cmd commands.AddParagraphCommand) (*commands.AddParagraphResult, error) {
	p, warnings, err := h.service.AddParagraph(ctx,
		aggregates.DraftID(cmd.DraftID),
		aggregates.ParagraphKind(cmd.Kind),
		valueobjects.NewParagraphID(cmd.AfterID),
	)
	if err != nil {
		return nil, err
	}
	return &commands.AddParagraphResult{
		ParagraphID: p.ID().Int(),
		Level:       p.Level().Int(),
		Warnings:    toWarningResults(warnings),
	}, nil
}

// HandleRemove plans a removal. The plan is applied by CommitRemovalCommand
// unless it reports Cleared.
func (h *OutlineHandlers) HandleRemove(ctx context.Context, cmd commands.RemoveParagraphCommand) (*aggregates.RemovalPlan, error) {
	plan, err := h.service.RemoveParagraph(ctx, aggregates.DraftID(cmd.DraftID), valueobjects.NewParagraphID(cmd.ParagraphID))
	if err != nil {
		return nil, err
	}
	if plan.RequiresConfirmation() {
		h.logger.Info("Removal needs confirmation",
			zap.String("draftID", cmd.DraftID),
			zap.Int("paragraphID", cmd.ParagraphID),
			zap.Int("warnings", len(plan.Warnings)),
		)
	}
	return plan, nil
}

// HandleCommitRemoval applies a removal plan
func (h *OutlineHandlers) HandleCommitRemoval(ctx context.Context, cmd commands.CommitRemovalCommand) ([]commands.WarningResult, error) {
	warnings, err := h.service.CommitRemoval(ctx, aggregates.DraftID(cmd.DraftID), cmd.Plan)
	if err != nil {
		return nil, err
	}
	return toWarningResults(warnings), nil
}

// HandleMove moves a paragraph and reports whether it moved
func (h *OutlineHandlers) HandleMove(ctx context.Context, cmd commands.MoveParagraphCommand) (bool, error) {
	return h.service.MoveParagraph(ctx,
		aggregates.DraftID(cmd.DraftID),
		valueobjects.NewParagraphID(cmd.ParagraphID),
		cmd.Direction == "up",
	)
}

// HandleUpdate replaces a paragraph's text
func (h *OutlineHandlers) HandleUpdate(ctx context.Context, cmd commands.UpdateParagraphCommand) error {
	return h.service.UpdateParagraphContent(ctx,
		aggregates.DraftID(cmd.DraftID),
		valueobjects.NewParagraphID(cmd.ParagraphID),
		cmd.Text,
	)
}

func toWarningResults(warnings []validators.StructuralWarning) []commands.WarningResult {
	out := make([]commands.WarningResult, len(warnings))
	for i, w := range warnings {
		out[i] = commands.WarningResult{
			ParagraphID: w.ParagraphID.Int(),
			Citation:    w.Citation,
			Message:     w.Message,
		}
	}
	return out
}
