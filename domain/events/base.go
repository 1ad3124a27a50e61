package events

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetVersion() int
}

// BaseEvent provides common event fields. AggregateID is the draft the
// outline belongs to. Version is the outline version the change produced, so
// events order without consulting a clock.
type BaseEvent struct {
	AggregateID string `json:"aggregate_id"`
	EventType   string `json:"event_type"`
	Version     int    `json:"version"`
}

func (e BaseEvent) GetAggregateID() string { return e.AggregateID }
func (e BaseEvent) GetEventType() string   { return e.EventType }
func (e BaseEvent) GetVersion() int        { return e.Version }

// Event type names
const (
	TypeParagraphAdded          = "paragraph.added"
	TypeParagraphRemoved        = "paragraph.removed"
	TypeParagraphCleared        = "paragraph.cleared"
	TypeParagraphMoved          = "paragraph.moved"
	TypeParagraphContentUpdated = "paragraph.content_updated"
)

// ParagraphAdded is raised when the editor inserts a paragraph
type ParagraphAdded struct {
	BaseEvent
	ParagraphID valueobjects.ParagraphID `json:"paragraph_id"`
	AfterID     valueobjects.ParagraphID `json:"after_id"`
	Level       valueobjects.Level       `json:"level"`
	Kind        string                   `json:"kind"`
}

// NewParagraphAdded creates a ParagraphAdded event
func NewParagraphAdded(aggregateID string, id, after valueobjects.ParagraphID, level valueobjects.Level, kind string, version int) ParagraphAdded {
	return ParagraphAdded{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeParagraphAdded,
			Version:     version,
		},
		ParagraphID: id,
		AfterID:     after,
		Level:       level,
		Kind:        kind,
	}
}

// ParagraphRemoved is raised when a removal plan is committed
type ParagraphRemoved struct {
	BaseEvent
	ParagraphID  valueobjects.ParagraphID `json:"paragraph_id"`
	WarningCount int                      `json:"warning_count"`
}

// NewParagraphRemoved creates a ParagraphRemoved event
func NewParagraphRemoved(aggregateID string, id valueobjects.ParagraphID, warningCount, version int) ParagraphRemoved {
	return ParagraphRemoved{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeParagraphRemoved,
			Version:     version,
		},
		ParagraphID:  id,
		WarningCount: warningCount,
	}
}

// ParagraphCleared is raised when removing the last paragraph empties it instead
type ParagraphCleared struct {
	BaseEvent
	ParagraphID valueobjects.ParagraphID `json:"paragraph_id"`
}

// NewParagraphCleared creates a ParagraphCleared event
func NewParagraphCleared(aggregateID string, id valueobjects.ParagraphID, version int) ParagraphCleared {
	return ParagraphCleared{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeParagraphCleared,
			Version:     version,
		},
		ParagraphID: id,
	}
}

// ParagraphMoved is raised when a paragraph swaps with a neighbour
type ParagraphMoved struct {
	BaseEvent
	ParagraphID valueobjects.ParagraphID `json:"paragraph_id"`
	FromIndex   int                      `json:"from_index"`
	ToIndex     int                      `json:"to_index"`
}

// NewParagraphMoved creates a ParagraphMoved event
func NewParagraphMoved(aggregateID string, id valueobjects.ParagraphID, from, to, version int) ParagraphMoved {
	return ParagraphMoved{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeParagraphMoved,
			Version:     version,
		},
		ParagraphID: id,
		FromIndex:   from,
		ToIndex:     to,
	}
}

// ParagraphContentUpdated is raised when paragraph text changes
type ParagraphContentUpdated struct {
	BaseEvent
	ParagraphID valueobjects.ParagraphID `json:"paragraph_id"`
}

// NewParagraphContentUpdated creates a ParagraphContentUpdated event
func NewParagraphContentUpdated(aggregateID string, id valueobjects.ParagraphID, version int) ParagraphContentUpdated {
	return ParagraphContentUpdated{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeParagraphContentUpdated,
			Version:     version,
		},
		ParagraphID: id,
	}
}
