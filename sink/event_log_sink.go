package sink

import (
	"chat-events/contract"
	"chat-events/domain/event"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// EventLogSink appends the raised events to the event log.
// Ids are global across rooms while the callers only hold a room lock,
// so the id assignment and the append share one mutex.
type EventLogSink struct {
	repository contract.IEventRepository
	log        *slog.Logger
	mu         sync.Mutex
}

func NewEventLogSink(repository contract.IEventRepository, log *slog.Logger) *EventLogSink {
	return &EventLogSink{repository: repository, log: log}
}

// Consume stamps e with the next id, max id of the log plus one, and appends it.
func (s *EventLogSink) Consume(_ context.Context, e event.DomainEvent) error {
	if err := event.Validate(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID, err := s.repository.MaxID()
	if err != nil {
		return fmt.Errorf("next event id: %w", err)
	}
	stamped, err := event.WithID(e, maxID+1)
	if err != nil {
		return err
	}
	if err := s.repository.StoreEvent(stamped); err != nil {
		return fmt.Errorf("append %s: %w", e.Kind(), err)
	}
	s.log.Debug("Event appended",
		"id", stamped.EventID(),
		"kind", stamped.Kind(),
		"room", stamped.RoomID(),
		"user", stamped.UserID())
	return nil
}
