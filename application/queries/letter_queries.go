package queries

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/utils"
)

// GetDraftQuery represents a query to get one letter with derived citations
type GetDraftQuery struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
}

// Validate validates the GetDraftQuery
func (q GetDraftQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListDraftsQuery represents a query for all draft ids
type ListDraftsQuery struct{}

// Validate validates the ListDraftsQuery
func (q ListDraftsQuery) Validate() error {
	return nil
}

// RenderLetterQuery asks for the formatted line sequence of a letter. An
// empty Regime selects the configured default.
type RenderLetterQuery struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
	Regime  string `json:"regime" validate:"omitempty,oneof=proportional fixed_width"`
}

// Validate validates the RenderLetterQuery
func (q RenderLetterQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ValidateOutlineQuery asks for the structural warnings of a letter
type ValidateOutlineQuery struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
}

// Validate validates the ValidateOutlineQuery
func (q ValidateOutlineQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ExportBundleQuery asks for an export bundle of a letter
type ExportBundleQuery struct {
	DraftID       string `json:"draft_id" validate:"required,uuid"`
	Compress      bool   `json:"compress"`
	SchemaVersion int    `json:"schema_version,omitempty" validate:"min=0"`
}

// Validate validates the ExportBundleQuery
func (q ExportBundleQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetEventsQuery asks for the outline history of a letter
type GetEventsQuery struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
}

// Validate validates the GetEventsQuery
func (q GetEventsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// DraftResult represents the result of getting a draft
type DraftResult struct {
	ID          string                           `json:"id"`
	Version     int                              `json:"version"`
	Header      valueobjects.LetterHeader        `json:"header"`
	Routing     valueobjects.RoutingLists        `json:"routing"`
	Endorsement *valueobjects.EndorsementContext `json:"endorsement,omitempty"`
	Paragraphs  []ParagraphResult                `json:"paragraphs"`
}

// ParagraphResult is one paragraph with its derived citation
type ParagraphResult struct {
	ID       int    `json:"id"`
	Level    int    `json:"level"`
	Citation string `json:"citation"`
	Text     string `json:"text"`
	Warning  string `json:"warning,omitempty"`
}

// EventResult is one recorded outline change
type EventResult struct {
	Type        string `json:"type"`
	AggregateID string `json:"aggregate_id"`
	Version     int    `json:"version"`
}
