package repositories

import (
	"chat-events/domain"
	"chat-events/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_And_Get(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository()
	req.NoError(repository.StoreUser(domain.User{ID: 7, Name: "Bob"}))

	// When a user registers
	user, err := repository.CreateUser("  Kate ")

	// Then it takes the next free id and a trimmed name
	req.NoError(err)
	req.Equal(domain.User{ID: 8, Name: "Kate"}, user)

	fetched, err := repository.GetUser(8)
	req.NoError(err)
	req.Equal(user, fetched)

	_, err = repository.GetUser(9)
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repository.CreateUser("   ")
	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestUserRepository_List_Is_Ordered_By_ID(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository()
	for _, user := range []domain.User{{ID: 3, Name: "Alice"}, {ID: 1, Name: "Bob"}, {ID: 2, Name: "Kate"}} {
		req.NoError(repository.StoreUser(user))
	}

	users, err := repository.ListUsers()
	req.NoError(err)
	req.Equal([]domain.User{{ID: 1, Name: "Bob"}, {ID: 2, Name: "Kate"}, {ID: 3, Name: "Alice"}}, users)

	req.NoError(repository.Clear())
	users, err = repository.ListUsers()
	req.NoError(err)
	req.Empty(users)
}

func TestRoomRepository_Hands_Out_The_Stored_Room(t *testing.T) {
	req := require.New(t)
	repository := NewRoomRepository()
	createdAt := time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC)

	room, err := repository.CreateRoom("BestBuddies", createdAt)
	req.NoError(err)
	req.Equal(domain.RoomID(1), room.ID)

	// When the fetched room gains a member
	fetched, err := repository.GetRoom(1)
	req.NoError(err)
	fetched.AddMember(2)

	// Then the repository sees it too
	again, err := repository.GetRoom(1)
	req.NoError(err)
	req.True(again.IsMember(2))

	_, err = repository.GetRoom(2)
	req.ErrorIs(err, errors.ErrRoomNotFound)

	_, err = repository.CreateRoom("", createdAt)
	req.ErrorIs(err, errors.ErrInvalidPayload)
	req.ErrorIs(repository.StoreRoom(nil), errors.ErrInvalidPayload)
}

func TestRoomRepository_List_Is_Ordered_By_ID(t *testing.T) {
	req := require.New(t)
	repository := NewRoomRepository()
	createdAt := time.Now().UTC()
	req.NoError(repository.StoreRoom(domain.NewRoom(5, "Five", createdAt)))
	req.NoError(repository.StoreRoom(domain.NewRoom(2, "Two", createdAt)))

	rooms, err := repository.ListRooms()
	req.NoError(err)
	req.Len(rooms, 2)
	req.Equal("Two", rooms[0].Name)
	req.Equal("Five", rooms[1].Name)

	// Ids continue after the highest stored one
	room, err := repository.CreateRoom("Six", createdAt)
	req.NoError(err)
	req.Equal(domain.RoomID(6), room.ID)
}
