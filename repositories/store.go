package repositories

import (
	"chat-events/contract"
	"chat-events/errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/multierr"
)

const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Store owns the three collections of the service.
type Store struct {
	Users  contract.IUserRepository
	Rooms  contract.IRoomRepository
	Events contract.IEventRepository
	close  func() error
}

func NewMemoryStore() *Store {
	return &Store{
		Users:  NewUserRepository(),
		Rooms:  NewRoomRepository(),
		Events: NewEventRepository(),
		close:  func() error { return nil },
	}
}

// NewBadgerStore keeps the event log in an in-memory BadgerDB.
// Users and rooms stay in process memory.
func NewBadgerStore(db *badger.DB, log *slog.Logger) *Store {
	return &Store{
		Users:  NewUserRepository(),
		Rooms:  NewRoomRepository(),
		Events: NewBadgerEventRepository(db, log),
		close:  db.Close,
	}
}

// OpenStore builds the store for the configured backend.
func OpenStore(backend string, log *slog.Logger) (*Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		db, err := OpenInMemoryBadger()
		if err != nil {
			return nil, fmt.Errorf("badger opening failed: %w", err)
		}
		return NewBadgerStore(db, log), nil
	default:
		return nil, fmt.Errorf("%q: %w", backend, errors.ErrUnknownBackend)
	}
}

// Reset empties users, rooms and events.
func (s *Store) Reset() error {
	return multierr.Combine(s.Events.Clear(), s.Rooms.Clear(), s.Users.Clear())
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
