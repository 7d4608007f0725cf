// Package chat holds the membership state machine of a room.
// Each accepted action raises exactly one domain event to the sink
// the engine was built with; a rejected action raises nothing.
package chat

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/errors"
	"context"
)

// Membership drives the member set of one room for the duration of one action.
// It holds no state of its own: members live in the room.
type Membership struct {
	room  *domain.Room
	clock domain.Clock
	sink  contract.EventSink
}

func NewMembership(room *domain.Room, clock domain.Clock, sink contract.EventSink) *Membership {
	return &Membership{room: room, clock: clock, sink: sink}
}

func (m *Membership) Enter(ctx context.Context, userID domain.UserID) error {
	if m.room.IsMember(userID) {
		return errors.ErrAlreadyMember
	}
	if err := m.raise(ctx, event.NewEnterRoom(userID, m.room.ID, m.clock())); err != nil {
		return err
	}
	m.room.AddMember(userID)
	return nil
}

func (m *Membership) Leave(ctx context.Context, userID domain.UserID) error {
	if !m.room.IsMember(userID) {
		return errors.ErrNotMember
	}
	if err := m.raise(ctx, event.NewLeaveRoom(userID, m.room.ID, m.clock())); err != nil {
		return err
	}
	m.room.RemoveMember(userID)
	return nil
}

// Comment keeps text verbatim.
func (m *Membership) Comment(ctx context.Context, userID domain.UserID, text string) error {
	if !m.room.IsMember(userID) {
		return errors.ErrNotMember
	}
	return m.raise(ctx, event.NewComment(userID, m.room.ID, text, m.clock()))
}

// HighFive leaves the member set unchanged.
func (m *Membership) HighFive(ctx context.Context, userID, otherUserID domain.UserID) error {
	if userID == otherUserID {
		return errors.ErrSelfFive
	}
	if !m.room.IsMember(userID) || !m.room.IsMember(otherUserID) {
		return errors.ErrNotMember
	}
	return m.raise(ctx, event.NewHighFive(userID, m.room.ID, otherUserID, m.clock()))
}

// raise delivers e before the member set changes, so a failed append
// leaves the room as it was.
func (m *Membership) raise(ctx context.Context, e event.DomainEvent) error {
	if m.sink == nil {
		return nil
	}
	return m.sink.Consume(ctx, e)
}
