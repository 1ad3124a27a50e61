package aggregates

import (
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

// ParagraphStore is the ordered list of paragraph records of one letter.
// It is never empty: it starts with one blank main paragraph and the editor
// clears the last paragraph instead of removing it.
type ParagraphStore struct {
	aggregateID string
	paragraphs  []entities.Paragraph
	version     int
	events      []events.DomainEvent
}

// NewParagraphStore creates a store holding one empty level-1 paragraph
func NewParagraphStore() *ParagraphStore {
	return &ParagraphStore{
		paragraphs: []entities.Paragraph{entities.NewParagraph(1, 1, "")},
		version:    1,
		events:     []events.DomainEvent{},
	}
}

// RestoreParagraphStore rebuilds a store from previously saved records.
// An empty input yields the same single blank paragraph as NewParagraphStore.
func RestoreParagraphStore(paragraphs []entities.Paragraph) (*ParagraphStore, error) {
	if len(paragraphs) == 0 {
		return NewParagraphStore(), nil
	}

	seen := make(map[valueobjects.ParagraphID]bool, len(paragraphs))
	for _, p := range paragraphs {
		if p.ID() < 1 {
			return nil, pkgerrors.NewValidationError("paragraph ids must be positive")
		}
		if seen[p.ID()] {
			return nil, pkgerrors.NewValidationError("duplicate paragraph id " + p.ID().String())
		}
		seen[p.ID()] = true
	}

	restored := make([]entities.Paragraph, len(paragraphs))
	copy(restored, paragraphs)
	return &ParagraphStore{
		paragraphs: restored,
		version:    1,
		events:     []events.DomainEvent{},
	}, nil
}

// Len returns the number of paragraphs
func (s *ParagraphStore) Len() int {
	return len(s.paragraphs)
}

// Version returns the store version; every mutation increments it
func (s *ParagraphStore) Version() int {
	return s.version
}

// Snapshot returns a copy of the paragraphs in document order
func (s *ParagraphStore) Snapshot() []entities.Paragraph {
	out := make([]entities.Paragraph, len(s.paragraphs))
	copy(out, s.paragraphs)
	return out
}

// IndexOf returns the position of the paragraph with the given id
func (s *ParagraphStore) IndexOf(id valueobjects.ParagraphID) (int, bool) {
	for i, p := range s.paragraphs {
		if p.ID() == id {
			return i, true
		}
	}
	return -1, false
}

// Get returns the paragraph with the given id
func (s *ParagraphStore) Get(id valueobjects.ParagraphID) (entities.Paragraph, error) {
	i, ok := s.IndexOf(id)
	if !ok {
		return entities.Paragraph{}, pkgerrors.NewParagraphNotFound(id.Int())
	}
	return s.paragraphs[i], nil
}

// NextID returns max(existing ids)+1
func (s *ParagraphStore) NextID() valueobjects.ParagraphID {
	var highest valueobjects.ParagraphID
	for _, p := range s.paragraphs {
		if p.ID() > highest {
			highest = p.ID()
		}
	}
	return highest.Next()
}

// GetUncommittedEvents returns all uncommitted domain events
func (s *ParagraphStore) GetUncommittedEvents() []events.DomainEvent {
	return s.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (s *ParagraphStore) MarkEventsAsCommitted() {
	s.events = []events.DomainEvent{}
}

func (s *ParagraphStore) insertAfter(index int, p entities.Paragraph) {
	s.paragraphs = append(s.paragraphs, entities.Paragraph{})
	copy(s.paragraphs[index+2:], s.paragraphs[index+1:])
	s.paragraphs[index+1] = p
	s.version++
}

func (s *ParagraphStore) removeAt(index int) {
	s.paragraphs = append(s.paragraphs[:index], s.paragraphs[index+1:]...)
	s.version++
}

func (s *ParagraphStore) swap(i, j int) {
	s.paragraphs[i], s.paragraphs[j] = s.paragraphs[j], s.paragraphs[i]
	s.version++
}

// mutate applies fn to the paragraph at index in place
func (s *ParagraphStore) mutate(index int, fn func(p *entities.Paragraph) bool) bool {
	if !fn(&s.paragraphs[index]) {
		return false
	}
	s.version++
	return true
}

// annotate sets advisory warnings without bumping the version; warnings are
// derived data and must not invalidate a pending removal plan
func (s *ParagraphStore) annotate(warningFor func(id valueobjects.ParagraphID) string) {
	for i := range s.paragraphs {
		s.paragraphs[i].SetWarning(warningFor(s.paragraphs[i].ID()))
	}
}

// bind records the draft that owns the store; its events carry that id
func (s *ParagraphStore) bind(id DraftID) {
	s.aggregateID = id.String()
}

func (s *ParagraphStore) clone() *ParagraphStore {
	pending := make([]events.DomainEvent, len(s.events))
	copy(pending, s.events)
	return &ParagraphStore{
		aggregateID: s.aggregateID,
		paragraphs:  s.Snapshot(),
		version:     s.version,
		events:      pending,
	}
}

func (s *ParagraphStore) addEvent(event events.DomainEvent) {
	s.events = append(s.events, event)
}
