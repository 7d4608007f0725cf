package services

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/domain/chat"
	"chat-events/errors"
	"chat-events/projection"
	"chat-events/validation"
	"context"
	stderrors "errors"
	"log/slog"
)

// ChatService runs the four room actions. Each action resolves its entities,
// validates them and mutates the room while holding the room write lock, so
// two actions on one room never interleave.
type ChatService struct {
	users    contract.IUserRepository
	rooms    contract.IRoomRepository
	sink     contract.EventSink
	registry contract.IRegistry
	clock    domain.Clock
	log      *slog.Logger
}

func NewChatService(
	users contract.IUserRepository,
	rooms contract.IRoomRepository,
	sink contract.EventSink,
	registry contract.IRegistry,
	clock domain.Clock,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		users:    users,
		rooms:    rooms,
		sink:     sink,
		registry: registry,
		clock:    clock,
		log:      log,
	}
}

func (s *ChatService) EnterRoom(ctx context.Context, userID domain.UserID, roomID domain.RoomID) error {
	return s.withRoom(roomID, func(room *domain.Room) error {
		user, err := lookupUser(s.users, userID)
		if err != nil {
			return err
		}
		if err := validation.Enter(user, room); err != nil {
			return err
		}
		if err := s.membership(room).Enter(ctx, user.ID); err != nil {
			return err
		}
		s.log.Debug("User entered the room", "user", user.ID, "room", room.ID)
		return nil
	})
}

func (s *ChatService) LeaveRoom(ctx context.Context, userID domain.UserID, roomID domain.RoomID) error {
	return s.withRoom(roomID, func(room *domain.Room) error {
		user, err := lookupUser(s.users, userID)
		if err != nil {
			return err
		}
		if err := validation.Leave(user, room); err != nil {
			return err
		}
		if err := s.membership(room).Leave(ctx, user.ID); err != nil {
			return err
		}
		s.log.Debug("User left the room", "user", user.ID, "room", room.ID)
		return nil
	})
}

func (s *ChatService) Comment(ctx context.Context, userID domain.UserID, roomID domain.RoomID, text string) error {
	return s.withRoom(roomID, func(room *domain.Room) error {
		user, err := lookupUser(s.users, userID)
		if err != nil {
			return err
		}
		if err := validation.Comment(user, room); err != nil {
			return err
		}
		if err := s.membership(room).Comment(ctx, user.ID, text); err != nil {
			return err
		}
		s.log.Debug("User commented", "user", user.ID, "room", room.ID, "length", len(text))
		return nil
	})
}

func (s *ChatService) HighFive(ctx context.Context, userID domain.UserID, roomID domain.RoomID, otherUserID domain.UserID) error {
	return s.withRoom(roomID, func(room *domain.Room) error {
		user, err := lookupUser(s.users, userID)
		if err != nil {
			return err
		}
		other, err := lookupUser(s.users, otherUserID)
		if err != nil {
			return err
		}
		if err := validation.HighFive(user, room, other); err != nil {
			return err
		}
		if err := s.membership(room).HighFive(ctx, user.ID, other.ID); err != nil {
			return err
		}
		s.log.Debug("User high fived", "user", user.ID, "other", other.ID, "room", room.ID)
		return nil
	})
}

func (s *ChatService) ListUsers() ([]domain.User, error) {
	return s.users.ListUsers()
}

// ListRooms returns every room with its current members resolved to users.
func (s *ChatService) ListRooms() ([]projection.RoomView, error) {
	rooms, err := s.rooms.ListRooms()
	if err != nil {
		return nil, err
	}
	views := make([]projection.RoomView, 0, len(rooms))
	for _, room := range rooms {
		view, err := s.view(room)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ChatService) RegisterUser(name string) (domain.User, error) {
	user, err := s.users.CreateUser(name)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Debug("User registered", "user", user.ID, "name", user.Name)
	return user, nil
}

func (s *ChatService) CreateRoom(name string) (projection.RoomView, error) {
	room, err := s.rooms.CreateRoom(name, s.clock())
	if err != nil {
		return projection.RoomView{}, err
	}
	s.log.Debug("Room created", "room", room.ID, "name", room.Name)
	return s.view(room)
}

func (s *ChatService) view(room *domain.Room) (projection.RoomView, error) {
	unlock := s.registry.RLock(room.ID)
	ids := room.MemberIDs()
	unlock()

	members := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetUser(id)
		if err != nil {
			return projection.RoomView{}, err
		}
		members = append(members, user)
	}
	return projection.RoomView{
		ID:        room.ID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
		Members:   members,
	}, nil
}

func (s *ChatService) membership(room *domain.Room) *chat.Membership {
	return chat.NewMembership(room, s.clock, s.sink)
}

// withRoom resolves roomID and runs action under its write lock.
// A missing room reaches action as nil so validation can report it along
// with the other failures. Nothing is locked in that case.
func (s *ChatService) withRoom(roomID domain.RoomID, action func(room *domain.Room) error) error {
	room, err := lookupRoom(s.rooms, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return action(nil)
	}
	unlock := s.registry.Lock(room.ID)
	defer unlock()
	return action(room)
}

// lookupUser maps a missing user to nil. Any other failure is returned.
func lookupUser(users contract.IUserRepository, id domain.UserID) (*domain.User, error) {
	user, err := users.GetUser(id)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func lookupRoom(rooms contract.IRoomRepository, id domain.RoomID) (*domain.Room, error) {
	room, err := rooms.GetRoom(id)
	if stderrors.Is(err, errors.ErrRoomNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}
