package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

type RoomID int64

type Set map[UserID]struct{}

// Room is a named chat context. Members is its present-membership state,
// only mutated by the membership engine under the room lock.
type Room struct {
	ID        RoomID
	Name      string
	CreatedAt time.Time
	Members   Set
}

func NewRoom(id RoomID, name string, createdAt time.Time) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		Members:   make(Set),
	}
}

func (r *Room) IsMember(userID UserID) bool {
	_, ok := r.Members[userID]
	return ok
}

func (r *Room) AddMember(userID UserID) {
	if r.Members == nil {
		r.Members = make(Set)
	}
	r.Members[userID] = struct{}{}
}

func (r *Room) RemoveMember(userID UserID) {
	delete(r.Members, userID)
}

// MemberIDs returns the present members sorted by id.
func (r *Room) MemberIDs() []UserID {
	ids := lo.Keys(r.Members)
	slices.Sort(ids)
	return ids
}
