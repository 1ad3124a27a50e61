package commands

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/utils"
)

// CreateDraftCommand starts a new empty letter
type CreateDraftCommand struct{}

// Validate validates the command
func (c CreateDraftCommand) Validate() error {
	return nil
}

// DeleteDraftCommand removes a letter with its history
type DeleteDraftCommand struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
}

// Validate validates the command
func (c DeleteDraftCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateHeaderCommand replaces the header fields of a letter
type UpdateHeaderCommand struct {
	DraftID string                    `json:"draft_id" validate:"required,uuid"`
	Header  valueobjects.LetterHeader `json:"header"`
}

// Validate validates the command
func (c UpdateHeaderCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateRoutingCommand replaces the Via, References, Enclosures and Copy-To lists
type UpdateRoutingCommand struct {
	DraftID string                    `json:"draft_id" validate:"required,uuid"`
	Routing valueobjects.RoutingLists `json:"routing"`
}

// Validate validates the command
func (c UpdateRoutingCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SetEndorsementCommand makes a letter an endorsement; a nil Endorsement
// makes it a basic letter again
type SetEndorsementCommand struct {
	DraftID     string                           `json:"draft_id" validate:"required,uuid"`
	Endorsement *valueobjects.EndorsementContext `json:"endorsement,omitempty"`
}

// Validate validates the command
func (c SetEndorsementCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ImportBundleCommand stores the draft held in an export bundle
type ImportBundleCommand struct {
	Data []byte `json:"data" validate:"required,min=1"`
}

// Validate validates the command
func (c ImportBundleCommand) Validate() error {
	return utils.ValidateStruct(c)
}
