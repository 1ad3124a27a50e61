package memory

import (
	"context"
	"sync"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/events"
)

var _ ports.EventStore = (*EventStore)(nil)

// EventStore appends domain events per draft
type EventStore struct {
	mu     sync.RWMutex
	events map[aggregates.DraftID][]events.DomainEvent
}

// NewEventStore creates an empty event store
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[aggregates.DraftID][]events.DomainEvent),
	}
}

// SaveEvents appends domain events raised by a draft
func (s *EventStore) SaveEvents(ctx context.Context, draftID aggregates.DraftID, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[draftID] = append(s.events[draftID], domainEvents...)
	return nil
}

// GetEvents retrieves a copy of the events for a draft in save order
func (s *EventStore) GetEvents(ctx context.Context, draftID aggregates.DraftID) ([]events.DomainEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.events[draftID]
	out := make([]events.DomainEvent, len(stored))
	copy(out, stored)
	return out, nil
}

// DeleteEvents removes all events for a draft
func (s *EventStore) DeleteEvents(ctx context.Context, draftID aggregates.DraftID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, draftID)
	return nil
}
