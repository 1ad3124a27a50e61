package commands

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/utils"
)

// AddParagraphCommand inserts a paragraph after an existing one
type AddParagraphCommand struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
	Kind    string `json:"kind" validate:"required,oneof=main same sub up"`
	AfterID int    `json:"after_id" validate:"min=1"`
}

// Validate validates the command
func (c AddParagraphCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// AddParagraphResult is returned by the AddParagraphCommand handler
type AddParagraphResult struct {
	ParagraphID int             `json:"paragraph_id"`
	Level       int             `json:"level"`
	Warnings    []WarningResult `json:"warnings"`
}

// WarningResult is a structural warning as reported to callers
type WarningResult struct {
	ParagraphID int    `json:"paragraph_id"`
	Citation    string `json:"citation"`
	Message     string `json:"message"`
}

// RemoveParagraphCommand plans the removal of a paragraph
type RemoveParagraphCommand struct {
	DraftID     string `json:"draft_id" validate:"required,uuid"`
	ParagraphID int    `json:"paragraph_id" validate:"min=1"`
}

// Validate validates the command
func (c RemoveParagraphCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// CommitRemovalCommand applies a removal plan, typically after the user
// confirmed its warnings
type CommitRemovalCommand struct {
	DraftID string                  `json:"draft_id" validate:"required,uuid"`
	Plan    *aggregates.RemovalPlan `json:"-" validate:"required"`
}

// Validate validates the command
func (c CommitRemovalCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// MoveParagraphCommand swaps a paragraph with a neighbour
type MoveParagraphCommand struct {
	DraftID     string `json:"draft_id" validate:"required,uuid"`
	ParagraphID int    `json:"paragraph_id" validate:"min=1"`
	Direction   string `json:"direction" validate:"required,oneof=up down"`
}

// Validate validates the command
func (c MoveParagraphCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateParagraphCommand replaces the text of a paragraph
type UpdateParagraphCommand struct {
	DraftID     string `json:"draft_id" validate:"required,uuid"`
	ParagraphID int    `json:"paragraph_id" validate:"min=1"`
	Text        string `json:"text" validate:"max=20000"`
}

// Validate validates the command
func (c UpdateParagraphCommand) Validate() error {
	return utils.ValidateStruct(c)
}
