// Package event defines the domain events appended to the event log.
// Events are immutable values; the only sanctioned rewrites are the id stamp
// at ingestion and the timestamp override used by backfills.
package event

import (
	"chat-events/domain"
	"chat-events/errors"
	"time"
)

type ID int64

type Kind string

const (
	EnterRoomKind Kind = "EnterTheRoom"
	LeaveRoomKind Kind = "LeaveTheRoom"
	CommentKind   Kind = "Comment"
	HighFiveKind  Kind = "HighFive"
)

type DomainEvent interface {
	EventID() ID
	Kind() Kind
	RoomID() domain.RoomID
	UserID() domain.UserID
	OccurredAt() time.Time
}

// Header carries the fields shared by every event kind.
type Header struct {
	ID   ID
	At   time.Time
	User domain.UserID
	Room domain.RoomID
}

func (h Header) EventID() ID { return h.ID }
func (h Header) RoomID() domain.RoomID { return h.Room }
func (h Header) UserID() domain.UserID { return h.User }
func (h Header) OccurredAt() time.Time { return h.At }

type EnterRoom struct {
	Header
}

func (EnterRoom) Kind() Kind { return EnterRoomKind }

type LeaveRoom struct {
	Header
}

func (LeaveRoom) Kind() Kind { return LeaveRoomKind }

type Comment struct {
	Header
	Text string
}

func (Comment) Kind() Kind { return CommentKind }

type HighFive struct {
	Header
	OtherUser domain.UserID
}

func (HighFive) Kind() Kind { return HighFiveKind }

func NewEnterRoom(user domain.UserID, room domain.RoomID, at time.Time) EnterRoom {
	return EnterRoom{Header: Header{At: at, User: user, Room: room}}
}

func NewLeaveRoom(user domain.UserID, room domain.RoomID, at time.Time) LeaveRoom {
	return LeaveRoom{Header: Header{At: at, User: user, Room: room}}
}

func NewComment(user domain.UserID, room domain.RoomID, text string, at time.Time) Comment {
	return Comment{Header: Header{At: at, User: user, Room: room}, Text: text}
}

func NewHighFive(user domain.UserID, room domain.RoomID, otherUser domain.UserID, at time.Time) HighFive {
	return HighFive{Header: Header{At: at, User: user, Room: room}, OtherUser: otherUser}
}

// Validate accepts only the four known kinds, by value.
func Validate(e DomainEvent) error {
	switch e.(type) {
	case EnterRoom, LeaveRoom, Comment, HighFive:
		return nil
	default:
		return errors.ErrUnrecognizedEvent
	}
}

// WithID returns a copy of e stamped with id.
func WithID(e DomainEvent, id ID) (DomainEvent, error) {
	return rewrite(e, func(h *Header) { h.ID = id })
}

// WithTimestamp returns a copy of e carrying at as its timestamp.
func WithTimestamp(e DomainEvent, at time.Time) (DomainEvent, error) {
	return rewrite(e, func(h *Header) { h.At = at })
}

func rewrite(e DomainEvent, fn func(h *Header)) (DomainEvent, error) {
	switch evt := e.(type) {
	case EnterRoom:
		fn(&evt.Header)
		return evt, nil
	case LeaveRoom:
		fn(&evt.Header)
		return evt, nil
	case Comment:
		fn(&evt.Header)
		return evt, nil
	case HighFive:
		fn(&evt.Header)
		return evt, nil
	default:
		return nil, errors.ErrUnrecognizedEvent
	}
}
