package services

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/projection"
	"chat-events/validation"
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// EventService answers the read side: the timeline of a room and its
// bucketed statistics. Both hold the room read lock while scanning the log.
type EventService struct {
	users    contract.IUserRepository
	rooms    contract.IRoomRepository
	events   contract.IEventRepository
	registry contract.IRegistry
	log      *slog.Logger
}

func NewEventService(
	users contract.IUserRepository,
	rooms contract.IRoomRepository,
	events contract.IEventRepository,
	registry contract.IRegistry,
	log *slog.Logger,
) *EventService {
	return &EventService{
		users:    users,
		rooms:    rooms,
		events:   events,
		registry: registry,
		log:      log,
	}
}

// GetEvents returns the events of roomID strictly between from and to,
// oldest first. Nil bounds are open.
func (s *EventService) GetEvents(_ context.Context, roomID domain.RoomID, from, to *time.Time) ([]projection.EventRecord, error) {
	room, err := lookupRoom(s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	if err := validation.Query(room); err != nil {
		return nil, err
	}
	timeline, err := s.timeline(room.ID, projection.Range{From: from, To: to})
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(users, func(user domain.User) domain.UserID { return user.ID })
	resolve := func(id domain.UserID) domain.User {
		if user, ok := byID[id]; ok {
			return user
		}
		return domain.User{ID: id}
	}

	return lo.Map(timeline, func(e event.DomainEvent, _ int) projection.EventRecord {
		record := projection.EventRecord{
			Event:    e,
			User:     resolve(e.UserID()),
			RoomID:   room.ID,
			RoomName: room.Name,
		}
		if highFive, ok := e.(event.HighFive); ok {
			record.OtherUser = lo.ToPtr(resolve(highFive.OtherUser))
		}
		return record
	}), nil
}

// GetEventStats buckets the timeline of roomID into granularity-hour windows.
// An invalid granularity and a missing room are reported together.
func (s *EventService) GetEventStats(_ context.Context, roomID domain.RoomID, granularity int, from, to *time.Time) ([]projection.BucketStats, error) {
	room, err := lookupRoom(s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	if err := validation.Stats(room, projection.ValidGranularity(granularity)); err != nil {
		return nil, err
	}
	timeline, err := s.timeline(room.ID, projection.Range{From: from, To: to})
	if err != nil {
		return nil, err
	}
	buckets, err := projection.Aggregate(timeline, granularity)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Stats computed", "room", room.ID, "granularity", granularity, "buckets", len(buckets))
	return buckets, nil
}

func (s *EventService) timeline(roomID domain.RoomID, rng projection.Range) ([]event.DomainEvent, error) {
	unlock := s.registry.RLock(roomID)
	defer unlock()
	events, err := s.events.GetEvents()
	if err != nil {
		return nil, err
	}
	return projection.Timeline(events, roomID, rng), nil
}
