package aggregates

import (
	"github.com/google/uuid"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

// DraftID represents a unique letter draft identifier
type DraftID string

// NewDraftID creates a new random DraftID
func NewDraftID() DraftID {
	return DraftID(uuid.New().String())
}

// ParseDraftID validates s as a draft identifier
func ParseDraftID(s string) (DraftID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return DraftID(s), nil
}

// String returns the string representation
func (id DraftID) String() string {
	return string(id)
}

// LetterDraft is the aggregate root for one letter being composed: header
// fields, routing lists, the paragraph outline and an optional endorsement.
type LetterDraft struct {
	id          DraftID
	header      valueobjects.LetterHeader
	routing     valueobjects.RoutingLists
	endorsement *valueobjects.EndorsementContext
	paragraphs  *ParagraphStore
	version     int
}

// NewLetterDraft creates an empty draft with anchored routing lists and one
// blank paragraph
func NewLetterDraft() *LetterDraft {
	d := &LetterDraft{
		id:         NewDraftID(),
		routing:    valueobjects.NewRoutingLists(),
		paragraphs: NewParagraphStore(),
		version:    1,
	}
	d.paragraphs.bind(d.id)
	return d
}

// ReconstructLetterDraft recreates a draft from stored or imported data
func ReconstructLetterDraft(
	id DraftID,
	header valueobjects.LetterHeader,
	routing valueobjects.RoutingLists,
	endorsement *valueobjects.EndorsementContext,
	paragraphs *ParagraphStore,
) *LetterDraft {
	if id == "" {
		id = NewDraftID()
	}
	if paragraphs == nil {
		paragraphs = NewParagraphStore()
	}
	paragraphs.bind(id)
	return &LetterDraft{
		id:          id,
		header:      header,
		routing:     routing.WithAnchors(),
		endorsement: copyEndorsement(endorsement),
		paragraphs:  paragraphs,
		version:     1,
	}
}

// ID returns the draft's unique identifier
func (d *LetterDraft) ID() DraftID {
	return d.id
}

// Header returns the header fields
func (d *LetterDraft) Header() valueobjects.LetterHeader {
	return d.header
}

// Routing returns the routing lists, anchors included
func (d *LetterDraft) Routing() valueobjects.RoutingLists {
	return d.routing.WithAnchors()
}

// Endorsement returns a copy of the endorsement context, or nil for a basic letter
func (d *LetterDraft) Endorsement() *valueobjects.EndorsementContext {
	return copyEndorsement(d.endorsement)
}

// Paragraphs returns the paragraph store
func (d *LetterDraft) Paragraphs() *ParagraphStore {
	return d.paragraphs
}

// Version returns the draft version, counting header, routing and outline edits
func (d *LetterDraft) Version() int {
	return d.version + d.paragraphs.Version() - 1
}

// Clone returns a deep copy of the draft; edits to either side are not
// visible to the other
func (d *LetterDraft) Clone() *LetterDraft {
	header := d.header
	header.Letterhead.Lines = append([]string(nil), d.header.Letterhead.Lines...)
	return &LetterDraft{
		id:          d.id,
		header:      header,
		routing:     d.routing.WithAnchors(),
		endorsement: copyEndorsement(d.endorsement),
		paragraphs:  d.paragraphs.clone(),
		version:     d.version,
	}
}

// UpdateHeader replaces the header fields
func (d *LetterDraft) UpdateHeader(header valueobjects.LetterHeader) {
	d.header = header
	d.version++
}

// UpdateRouting replaces the routing lists, keeping one anchor slot per list
func (d *LetterDraft) UpdateRouting(routing valueobjects.RoutingLists) {
	d.routing = routing.WithAnchors()
	d.version++
}

// SetEndorsement makes the draft an endorsement; nil turns it back into a basic letter
func (d *LetterDraft) SetEndorsement(endorsement *valueobjects.EndorsementContext) {
	d.endorsement = copyEndorsement(endorsement)
	d.version++
}

func copyEndorsement(e *valueobjects.EndorsementContext) *valueobjects.EndorsementContext {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
