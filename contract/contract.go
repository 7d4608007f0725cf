//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/projection"
	"context"
	"time"
)

// EventSink receives the domain events raised by a room mutation.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IUserRepository interface {
	GetUser(id domain.UserID) (domain.User, error)
	ListUsers() ([]domain.User, error)
	CreateUser(name string) (domain.User, error)
	StoreUser(user domain.User) error
	Clear() error
}

type IRoomRepository interface {
	GetRoom(id domain.RoomID) (*domain.Room, error)
	ListRooms() ([]*domain.Room, error)
	CreateRoom(name string, createdAt time.Time) (*domain.Room, error)
	StoreRoom(room *domain.Room) error
	Clear() error
}

// IEventRepository is the raw append/scan access to the event log.
// GetEvents returns events in insertion order.
type IEventRepository interface {
	StoreEvent(e event.DomainEvent) error
	GetEvents() ([]event.DomainEvent, error)
	MaxID() (event.ID, error)
	OverrideTimestamp(id event.ID, at time.Time) error
	Clear() error
}

// IRegistry hands out the per-room critical sections.
// The returned func releases the lock.
type IRegistry interface {
	Lock(roomID domain.RoomID) func()
	RLock(roomID domain.RoomID) func()
}

type IChatService interface {
	EnterRoom(ctx context.Context, userID domain.UserID, roomID domain.RoomID) error
	LeaveRoom(ctx context.Context, userID domain.UserID, roomID domain.RoomID) error
	Comment(ctx context.Context, userID domain.UserID, roomID domain.RoomID, text string) error
	HighFive(ctx context.Context, userID domain.UserID, roomID domain.RoomID, otherUserID domain.UserID) error
	ListUsers() ([]domain.User, error)
	ListRooms() ([]projection.RoomView, error)
	RegisterUser(name string) (domain.User, error)
	CreateRoom(name string) (projection.RoomView, error)
}

type IEventService interface {
	GetEvents(ctx context.Context, roomID domain.RoomID, from, to *time.Time) ([]projection.EventRecord, error)
	GetEventStats(ctx context.Context, roomID domain.RoomID, granularity int, from, to *time.Time) ([]projection.BucketStats, error)
}
