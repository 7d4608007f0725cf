package repositories

import (
	"chat-events/contract"
	"chat-events/domain/event"
	"chat-events/errors"
	"slices"
	"sync"
	"time"
)

// EventRepository is the in-memory event log, kept in insertion order.
type EventRepository struct {
	mu     sync.RWMutex
	events []event.DomainEvent
}

func NewEventRepository() contract.IEventRepository {
	return &EventRepository{}
}

func (r *EventRepository) StoreEvent(e event.DomainEvent) error {
	if err := event.Validate(e); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *EventRepository) GetEvents() ([]event.DomainEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.events), nil
}

// MaxID scans the whole log; 0 when empty.
func (r *EventRepository) MaxID() (event.ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var maxID event.ID
	for _, e := range r.events {
		maxID = max(maxID, e.EventID())
	}
	return maxID, nil
}

// OverrideTimestamp rewrites the timestamp of a logged event, for backfills.
func (r *EventRepository) OverrideTimestamp(id event.ID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.events, func(e event.DomainEvent) bool {
		return e.EventID() == id
	})
	if i < 0 {
		return errors.ErrEventNotFound
	}
	rewritten, err := event.WithTimestamp(r.events[i], at)
	if err != nil {
		return err
	}
	r.events[i] = rewritten
	return nil
}

func (r *EventRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
