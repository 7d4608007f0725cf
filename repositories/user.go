package repositories

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/errors"
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func NewUserRepository() contract.IUserRepository {
	return &UserRepository{users: make(map[domain.UserID]domain.User)}
}

func (u *UserRepository) GetUser(id domain.UserID) (domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.users[id]
	if !ok {
		return domain.User{}, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns every user ordered by id.
func (u *UserRepository) ListUsers() ([]domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	users := lo.Values(u.users)
	slices.SortFunc(users, func(a, b domain.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return users, nil
}

// CreateUser registers name under the next free id.
func (u *UserRepository) CreateUser(name string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, errors.ErrInvalidPayload
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	var maxID domain.UserID
	for id := range u.users {
		maxID = max(maxID, id)
	}
	user := domain.User{ID: maxID + 1, Name: name}
	u.users[user.ID] = user
	return user, nil
}

func (u *UserRepository) StoreUser(user domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user.ID] = user
	return nil
}

func (u *UserRepository) Clear() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	clear(u.users)
	return nil
}
