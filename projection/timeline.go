// Package projection builds read models from the event log.
// Handles room/time filtering, ordering and bucketed aggregation.
// Does not emit events or touch the store directly.
package projection

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Range is an optional time window. Both bounds are exclusive:
// an event stamped exactly at From or To is left out.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) Contains(at time.Time) bool {
	switch {
	case r.From == nil && r.To == nil:
		return true
	case r.From == nil:
		return at.Before(*r.To)
	case r.To == nil:
		return at.After(*r.From)
	default:
		return at.After(*r.From) && at.Before(*r.To)
	}
}

// Timeline keeps the events of roomID that fall in rng, ordered by timestamp.
// Events sharing a timestamp keep their insertion order.
func Timeline(events []event.DomainEvent, roomID domain.RoomID, rng Range) []event.DomainEvent {
	filtered := lo.Filter(events, func(e event.DomainEvent, _ int) bool {
		return e.RoomID() == roomID && rng.Contains(e.OccurredAt())
	})
	slices.SortStableFunc(filtered, func(a, b event.DomainEvent) int {
		return a.OccurredAt().Compare(b.OccurredAt())
	})
	return filtered
}
