package projection

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"time"
)

// EventRecord is a logged event resolved against its users and room.
// OtherUser is only set for high fives.
type EventRecord struct {
	Event     event.DomainEvent
	User      domain.User
	OtherUser *domain.User
	RoomID    domain.RoomID
	RoomName  string
}

type RoomView struct {
	ID        domain.RoomID
	Name      string
	CreatedAt time.Time
	Members   []domain.User
}
