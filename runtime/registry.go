package runtime

import (
	"chat-events/domain"
	"sync"
)

// Registry holds one RWMutex per room.
// Actions hold the write lock of their room across validation, mutation and
// append; queries hold the read lock. Rooms never share a lock.
type Registry struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]*sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*sync.RWMutex)}
}

// Lock takes the write lock of roomID and returns its release.
func (r *Registry) Lock(roomID domain.RoomID) func() {
	lock := r.lockFor(roomID)
	lock.Lock()
	return lock.Unlock
}

// RLock takes the read lock of roomID and returns its release.
func (r *Registry) RLock(roomID domain.RoomID) func() {
	lock := r.lockFor(roomID)
	lock.RLock()
	return lock.RUnlock
}

// lockFor initializes the room lock on the fly. Locks are never removed so
// two callers of the same room always meet on the same mutex.
func (r *Registry) lockFor(roomID domain.RoomID) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.rooms[roomID]
	if !ok {
		lock = &sync.RWMutex{}
		r.rooms[roomID] = lock
	}
	return lock
}
