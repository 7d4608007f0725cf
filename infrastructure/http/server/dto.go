package server

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/internal"
	"chat-events/projection"

	"github.com/samber/lo"
)

// Pointers tell a missing field from a zero id, which is left to the
// domain checks.
type EnterRoomRequest struct {
	UserID     *int64 `json:"userId" validate:"required"`
	ChatRoomID *int64 `json:"chatRoomId" validate:"required"`
}

type LeaveRoomRequest = EnterRoomRequest

type CommentRequest struct {
	UserID     *int64  `json:"userId" validate:"required"`
	ChatRoomID *int64  `json:"chatRoomId" validate:"required"`
	Text       *string `json:"text" validate:"required"`
}

type HighFiveRequest struct {
	UserID      *int64 `json:"userId" validate:"required"`
	ChatRoomID  *int64 `json:"chatRoomId" validate:"required"`
	OtherUserID *int64 `json:"otherUserId" validate:"required"`
}

type NameRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

type EventsQuery struct {
	ChatRoomID string `validate:"required,number"`
	From       string
	To         string
}

type StatsQuery struct {
	ChatRoomID  string `validate:"required,number"`
	Granularity string
	From        string
	To          string
}

type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ChatRoomResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"createdAt"`
	Members   []UserResponse `json:"members"`
}

type EventResponse struct {
	EventID   int64            `json:"eventId"`
	EventName string           `json:"eventName"`
	Timestamp string           `json:"timestamp"`
	User      UserResponse     `json:"user"`
	ChatRoom  ChatRoomResponse `json:"chatRoom"`
	Text      *string          `json:"text,omitempty"`
	OtherUser *UserResponse    `json:"otherUser,omitempty"`
}

type StatsResponse struct {
	Hour                  string `json:"hour"`
	PeopleEnteredCount    int    `json:"peopleEnteredCount"`
	PeopleLeftCount       int    `json:"peopleLeftCount"`
	CommentCount          int    `json:"commentCount"`
	PeopleHighFivingCount int    `json:"peopleHighFivingCount"`
	PeopleHighFivedCount  int    `json:"peopleHighFivedCount"`
}

func toUserResponse(user domain.User) UserResponse {
	return UserResponse{ID: int64(user.ID), Name: user.Name}
}

func toRoomResponse(view projection.RoomView) RoomResponse {
	return RoomResponse{
		ID:        int64(view.ID),
		Name:      view.Name,
		CreatedAt: view.CreatedAt.Format(internal.DateLayout),
		Members:   lo.Map(view.Members, func(user domain.User, _ int) UserResponse { return toUserResponse(user) }),
	}
}

func toEventResponse(record projection.EventRecord) EventResponse {
	response := EventResponse{
		EventID:   int64(record.Event.EventID()),
		EventName: string(record.Event.Kind()),
		Timestamp: record.Event.OccurredAt().Format(internal.DateLayout),
		User:      toUserResponse(record.User),
		ChatRoom:  ChatRoomResponse{ID: int64(record.RoomID), Name: record.RoomName},
	}
	if comment, ok := record.Event.(event.Comment); ok {
		response.Text = lo.ToPtr(comment.Text)
	}
	if record.OtherUser != nil {
		response.OtherUser = lo.ToPtr(toUserResponse(*record.OtherUser))
	}
	return response
}

func toStatsResponse(bucket projection.BucketStats) StatsResponse {
	return StatsResponse{
		Hour:                  bucket.Hour.Format(internal.DateLayout),
		PeopleEnteredCount:    bucket.PeopleEnteredCount,
		PeopleLeftCount:       bucket.PeopleLeftCount,
		CommentCount:          bucket.CommentCount,
		PeopleHighFivingCount: bucket.PeopleHighFivingCount,
		PeopleHighFivedCount:  bucket.PeopleHighFivedCount,
	}
}
