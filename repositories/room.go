package repositories

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/errors"
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// RoomRepository owns the rooms. GetRoom hands out the stored room itself:
// callers mutate its members under the room lock of the runtime registry.
type RoomRepository struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewRoomRepository() contract.IRoomRepository {
	return &RoomRepository{rooms: make(map[domain.RoomID]*domain.Room)}
}

func (r *RoomRepository) GetRoom(id domain.RoomID) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, errors.ErrRoomNotFound
	}
	return room, nil
}

func (r *RoomRepository) ListRooms() ([]*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := lo.Values(r.rooms)
	slices.SortFunc(rooms, func(a, b *domain.Room) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return rooms, nil
}

func (r *RoomRepository) CreateRoom(name string, createdAt time.Time) (*domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID domain.RoomID
	for id := range r.rooms {
		maxID = max(maxID, id)
	}
	room := domain.NewRoom(maxID+1, name, createdAt)
	r.rooms[room.ID] = room
	return room, nil
}

func (r *RoomRepository) StoreRoom(room *domain.Room) error {
	if room == nil {
		return errors.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = room
	return nil
}

func (r *RoomRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.rooms)
	return nil
}
