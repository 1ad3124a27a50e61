package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/validators"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
	domainservices "github.com/SemperAdmin/naval-letter-formatter-sub000/domain/services"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/observability"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/utils"
)

// ParagraphView is one paragraph of a DraftView with its derived citation
type ParagraphView struct {
	ID       int    `json:"id"`
	Level    int    `json:"level"`
	Citation string `json:"citation"`
	Text     string `json:"text"`
	Warning  string `json:"warning,omitempty"`
}

// DraftView is a consistent read of a draft: every field comes from the same
// version
type DraftView struct {
	ID          aggregates.DraftID               `json:"id"`
	Version     int                              `json:"version"`
	Header      valueobjects.LetterHeader        `json:"header"`
	Routing     valueobjects.RoutingLists        `json:"routing"`
	Endorsement *valueobjects.EndorsementContext `json:"endorsement,omitempty"`
	Paragraphs  []ParagraphView                  `json:"paragraphs"`
}

// LetterService coordinates drafts, the outline editor and the serializer.
// Drafts are shared through the repository, so every operation that touches
// one holds the service lock.
type LetterService struct {
	drafts  ports.DraftRepository
	events  ports.EventStore
	cache   ports.RenderCache
	bundles ports.BundleCodec

	format      *config.FormatConfig
	citations   *domainservices.CitationEngine
	validator   *validators.StructureValidator
	serializers map[config.Regime]*rendering.LetterSerializer

	metrics *observability.Collector
	tracer  trace.Tracer
	errors  *pkgerrors.ErrorHandler
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewLetterService creates a new letter service. One serializer is built per
// spacing regime; format.Regime is the default for Render. A nil tracing
// provider disables spans.
func NewLetterService(
	drafts ports.DraftRepository,
	eventStore ports.EventStore,
	cache ports.RenderCache,
	bundles ports.BundleCodec,
	format *config.FormatConfig,
	metrics *observability.Collector,
	tracing trace.TracerProvider,
	logger *zap.Logger,
) *LetterService {
	if format == nil {
		format = config.DefaultFormatConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewCollector("letters")
	}
	if tracing == nil {
		tracing = noop.NewTracerProvider()
	}

	citations := domainservices.NewCitationEngine()
	serializers := make(map[config.Regime]*rendering.LetterSerializer, 2)
	for _, regime := range []config.Regime{config.RegimeProportional, config.RegimeFixedWidth} {
		// ProfileFor only fails for unknown regimes
		profile, _ := rendering.ProfileFor(regime, format)
		serializers[regime] = rendering.NewLetterSerializer(profile, citations, format)
	}

	return &LetterService{
		drafts:      drafts,
		events:      eventStore,
		cache:       cache,
		bundles:     bundles,
		format:      format,
		citations:   citations,
		validator:   validators.NewStructureValidator(citations),
		serializers: serializers,
		metrics:     metrics,
		tracer:      tracing.Tracer("naval-letter-formatter.application.letter_service"),
		errors:      pkgerrors.NewErrorHandler(logger, false),
		logger:      logger,
	}
}

// CreateDraft starts a new empty letter
func (s *LetterService) CreateDraft(ctx context.Context) (*aggregates.LetterDraft, error) {
	draft := aggregates.NewLetterDraft()
	created := draft.Clone()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, s.errors.Handle("create_draft", fmt.Errorf("failed to save draft: %w", err))
	}
	s.logger.Info("Draft created", zap.String("draftID", created.ID().String()))
	return created, nil
}

// GetDraft returns a copy of a draft; later edits do not show through it
func (s *LetterService) GetDraft(ctx context.Context, id aggregates.DraftID) (*aggregates.LetterDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.errors.Handle("get_draft", err)
	}
	return draft.Clone(), nil
}

// View returns a draft together with the citation and warning of every
// paragraph, all read under one lock
func (s *LetterService) View(ctx context.Context, id aggregates.DraftID) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.errors.Handle("view", err)
	}

	paragraphs := draft.Paragraphs().Snapshot()
	warnings := validators.ByParagraph(s.validator.Validate(paragraphs))
	citations := s.citations.Citations(paragraphs)

	views := make([]ParagraphView, len(paragraphs))
	for i, p := range paragraphs {
		views[i] = ParagraphView{
			ID:       p.ID().Int(),
			Level:    p.Level().Int(),
			Citation: citations[i],
			Text:     p.Text(),
			Warning:  warnings[p.ID()].Message,
		}
	}

	return &DraftView{
		ID:          draft.ID(),
		Version:     draft.Version(),
		Header:      draft.Header(),
		Routing:     draft.Routing(),
		Endorsement: draft.Endorsement(),
		Paragraphs:  views,
	}, nil
}

// ListDrafts returns the ids of all drafts
func (s *LetterService) ListDrafts(ctx context.Context) ([]aggregates.DraftID, error) {
	return s.drafts.List(ctx)
}

// DeleteDraft removes a draft together with its events and cached renders
func (s *LetterService) DeleteDraft(ctx context.Context, id aggregates.DraftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.drafts.Delete(ctx, id); err != nil {
		return s.errors.Handle("delete_draft", err)
	}
	if err := s.events.DeleteEvents(ctx, id); err != nil {
		s.logger.Warn("Failed to delete draft events", zap.String("draftID", id.String()), zap.Error(err))
	}
	s.cache.Invalidate(ctx, id)
	s.logger.Info("Draft deleted", zap.String("draftID", id.String()))
	return nil
}

// UpdateHeader replaces the header fields of a draft
func (s *LetterService) UpdateHeader(ctx context.Context, id aggregates.DraftID, header valueobjects.LetterHeader) error {
	if err := utils.ValidateStruct(header); err != nil {
		return s.errors.Handle("update_header", err)
	}
	return s.edit(ctx, id, "update_header", func(d *aggregates.LetterDraft) error {
		d.UpdateHeader(header)
		return nil
	})
}

// UpdateRouting replaces the routing lists of a draft
func (s *LetterService) UpdateRouting(ctx context.Context, id aggregates.DraftID, routing valueobjects.RoutingLists) error {
	return s.edit(ctx, id, "update_routing", func(d *aggregates.LetterDraft) error {
		d.UpdateRouting(routing)
		return nil
	})
}

// SetEndorsement turns a draft into an endorsement, or back into a basic
// letter when endorsement is nil. Missing required fields are accepted here
// and reported when the letter is rendered.
func (s *LetterService) SetEndorsement(ctx context.Context, id aggregates.DraftID, endorsement *valueobjects.EndorsementContext) error {
	if endorsement != nil {
		if err := utils.ValidateStruct(endorsement); err != nil {
			return s.errors.Handle("set_endorsement", err)
		}
	}
	return s.edit(ctx, id, "set_endorsement", func(d *aggregates.LetterDraft) error {
		d.SetEndorsement(endorsement)
		return nil
	})
}

// AddParagraph inserts a paragraph after afterID and returns it together with
// the outline's structural warnings
func (s *LetterService) AddParagraph(
	ctx context.Context,
	id aggregates.DraftID,
	kind aggregates.ParagraphKind,
	afterID valueobjects.ParagraphID,
) (entities.Paragraph, []validators.StructuralWarning, error) {
	var (
		added    entities.Paragraph
		warnings []validators.StructuralWarning
	)
	err := s.edit(ctx, id, "add_paragraph", func(d *aggregates.LetterDraft) error {
		editor := s.editor(d)
		p, err := editor.AddParagraph(kind, afterID)
		if err != nil {
			return err
		}
		added = p
		warnings = editor.RefreshWarnings()
		return nil
	})
	if err != nil {
		return entities.Paragraph{}, nil, err
	}
	s.metrics.AddWarnings(len(warnings))
	return added, warnings, nil
}

// RemoveParagraph plans the removal of a paragraph. The sole remaining
// paragraph is cleared immediately; otherwise nothing changes until
// CommitRemoval is called with the returned plan.
func (s *LetterService) RemoveParagraph(ctx context.Context, id aggregates.DraftID, paragraphID valueobjects.ParagraphID) (*aggregates.RemovalPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.errors.Handle("remove_paragraph", err)
	}
	editor := s.editor(draft)
	plan, err := editor.RemoveParagraph(paragraphID)
	if err != nil {
		return nil, s.errors.Handle("remove_paragraph", err)
	}

	if plan.Cleared {
		editor.RefreshWarnings()
		if err := s.commit(ctx, draft, "clear_paragraph"); err != nil {
			return nil, err
		}
		return plan, nil
	}

	s.metrics.AddWarnings(len(plan.Warnings))
	s.logger.Debug("Removal planned",
		zap.String("draftID", id.String()),
		zap.Int("paragraphID", paragraphID.Int()),
		zap.Int("warnings", len(plan.Warnings)),
	)
	return plan, nil
}

// CommitRemoval applies a plan from RemoveParagraph and returns the
// structural warnings of the resulting outline
func (s *LetterService) CommitRemoval(ctx context.Context, id aggregates.DraftID, plan *aggregates.RemovalPlan) ([]validators.StructuralWarning, error) {
	var warnings []validators.StructuralWarning
	err := s.edit(ctx, id, "remove_paragraph", func(d *aggregates.LetterDraft) error {
		editor := s.editor(d)
		if err := editor.CommitRemoval(plan); err != nil {
			return err
		}
		warnings = editor.RefreshWarnings()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// MoveParagraph swaps a paragraph with its neighbour above (up) or below.
// It reports whether anything moved.
func (s *LetterService) MoveParagraph(ctx context.Context, id aggregates.DraftID, paragraphID valueobjects.ParagraphID, up bool) (bool, error) {
	operation := "move_down"
	if up {
		operation = "move_up"
	}

	var moved bool
	err := s.edit(ctx, id, operation, func(d *aggregates.LetterDraft) error {
		editor := s.editor(d)
		var err error
		if up {
			moved, err = editor.MoveUp(paragraphID)
		} else {
			moved, err = editor.MoveDown(paragraphID)
		}
		if err != nil {
			return err
		}
		editor.RefreshWarnings()
		return nil
	})
	return moved, err
}

// UpdateParagraphContent replaces the text of a paragraph
func (s *LetterService) UpdateParagraphContent(ctx context.Context, id aggregates.DraftID, paragraphID valueobjects.ParagraphID, text string) error {
	return s.edit(ctx, id, "update_content", func(d *aggregates.LetterDraft) error {
		return s.editor(d).UpdateContent(paragraphID, text)
	})
}

// Validate returns the structural warnings of a draft's outline
func (s *LetterService) Validate(ctx context.Context, id aggregates.DraftID) ([]validators.StructuralWarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.errors.Handle("validate", err)
	}
	return s.validator.Validate(draft.Paragraphs().Snapshot()), nil
}

// Render serializes a draft under a spacing regime; an empty regime selects
// the configured default. Results are cached per draft version.
func (s *LetterService) Render(ctx context.Context, id aggregates.DraftID, regime config.Regime) (*rendering.Document, error) {
	if regime == "" {
		regime = s.format.Regime
	}

	ctx, span := s.tracer.Start(ctx, "LetterService.Render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("draft.id", id.String()),
			attribute.String("render.regime", string(regime)),
		),
	)
	defer span.End()

	serializer, ok := s.serializers[regime]
	if !ok {
		err := pkgerrors.NewValidationError(fmt.Sprintf("unknown spacing regime %q", regime))
		recordSpanError(span, err, "Unknown spacing regime")
		return nil, s.errors.Handle("render", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		recordSpanError(span, err, "Failed to load draft")
		return nil, s.errors.Handle("render", err)
	}
	span.SetAttributes(attribute.Int("draft.version", draft.Version()))

	key := fmt.Sprintf("%s/%d/%s", id, draft.Version(), regime)
	if doc, found := s.cache.Get(ctx, key); found {
		s.metrics.CacheHits.Inc()
		span.SetAttributes(attribute.Bool("render.cache_hit", true))
		return doc, nil
	}
	s.metrics.CacheMisses.Inc()
	span.SetAttributes(attribute.Bool("render.cache_hit", false))

	start := time.Now()
	doc, err := serializer.Serialize(rendering.LetterInput{
		Header:      draft.Header(),
		Routing:     draft.Routing(),
		Paragraphs:  draft.Paragraphs().Snapshot(),
		Endorsement: draft.Endorsement(),
	})
	if err != nil {
		if pkgerrors.IsPrecondition(err) {
			s.metrics.PreconditionFailures.Inc()
		}
		recordSpanError(span, err, "Failed to serialize letter")
		return nil, s.errors.Handle("render", err)
	}
	s.metrics.ObserveRender(string(regime), time.Since(start))
	s.cache.Set(ctx, key, doc)
	span.SetAttributes(attribute.Int("render.lines", len(doc.Lines)))

	s.logger.Debug("Letter rendered",
		zap.String("draftID", id.String()),
		zap.String("regime", string(regime)),
		zap.Int("lines", len(doc.Lines)),
		zap.String("fingerprint", doc.Fingerprint()),
	)
	return doc, nil
}

// Export encodes a draft as a bundle
func (s *LetterService) Export(ctx context.Context, id aggregates.DraftID, opts ports.ExportOptions) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.errors.Handle("export", err)
	}
	data, err := s.bundles.Export(ctx, draft, opts)
	s.metrics.IncrementBundle("export", err)
	if err != nil {
		return nil, s.errors.Handle("export", err)
	}
	return data, nil
}

// Import decodes a bundle and stores the draft it holds, replacing any draft
// with the same id
func (s *LetterService) Import(ctx context.Context, data []byte) (*aggregates.LetterDraft, error) {
	draft, err := s.bundles.Import(ctx, data)
	s.metrics.IncrementBundle("import", err)
	if err != nil {
		return nil, s.errors.Handle("import", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	aggregates.NewOutlineEditor(draft.Paragraphs(), s.validator, s.format).RefreshWarnings()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, s.errors.Handle("import", fmt.Errorf("failed to save draft: %w", err))
	}
	s.cache.Invalidate(ctx, draft.ID())
	s.logger.Info("Draft imported",
		zap.String("draftID", draft.ID().String()),
		zap.Int("paragraphs", draft.Paragraphs().Len()),
	)
	return draft.Clone(), nil
}

// Events returns the outline events recorded for a draft
func (s *LetterService) Events(ctx context.Context, id aggregates.DraftID) ([]events.DomainEvent, error) {
	return s.events.GetEvents(ctx, id)
}

func (s *LetterService) editor(d *aggregates.LetterDraft) *aggregates.OutlineEditor {
	return aggregates.NewOutlineEditor(d.Paragraphs(), s.validator, s.format)
}

// edit loads a draft, applies fn and commits the result under the lock
func (s *LetterService) edit(ctx context.Context, id aggregates.DraftID, operation string, fn func(d *aggregates.LetterDraft) error) error {
	ctx, span := s.tracer.Start(ctx, "LetterService.Edit",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("draft.id", id.String()),
			attribute.String("edit.operation", operation),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		recordSpanError(span, err, "Failed to load draft")
		return s.errors.Handle(operation, err)
	}
	if err := fn(draft); err != nil {
		recordSpanError(span, err, "Edit rejected")
		return s.errors.Handle(operation, err)
	}
	if err := s.commit(ctx, draft, operation); err != nil {
		recordSpanError(span, err, "Failed to commit edit")
		return err
	}
	span.SetAttributes(attribute.Int("draft.version", draft.Version()))
	return nil
}

// commit stores pending events and the draft, then drops stale renders.
// The caller holds s.mu.
func (s *LetterService) commit(ctx context.Context, draft *aggregates.LetterDraft, operation string) error {
	store := draft.Paragraphs()
	if pending := store.GetUncommittedEvents(); len(pending) > 0 {
		if err := s.events.SaveEvents(ctx, draft.ID(), pending); err != nil {
			return s.errors.Handle(operation, fmt.Errorf("failed to save events: %w", err))
		}
		store.MarkEventsAsCommitted()
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return s.errors.Handle(operation, fmt.Errorf("failed to save draft: %w", err))
	}
	s.cache.Invalidate(ctx, draft.ID())
	s.metrics.IncrementEdit(operation)

	s.logger.Debug("Draft updated",
		zap.String("draftID", draft.ID().String()),
		zap.String("operation", operation),
		zap.Int("version", draft.Version()),
	)
	return nil
}

func recordSpanError(span trace.Span, err error, description string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
}
