// Package validation composes independent predicate checks into one result.
// Checks of a stage all run and their failures are combined; a stage only
// runs once every earlier stage passed.
package validation

import (
	"chat-events/domain"
	"chat-events/errors"
	"fmt"

	"go.uber.org/multierr"
)

// Check is one predicate. It is evaluated lazily so that later stages
// may dereference entities an earlier stage proved to exist.
type Check func() error

type Stage []Check

// Run evaluates every check and combines all failures.
func Run(checks ...Check) error {
	var err error
	for _, check := range checks {
		err = multierr.Append(err, check())
	}
	return err
}

// Pipeline runs stages in order and stops at the first failing one.
func Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := Run(stage...); err != nil {
			return err
		}
	}
	return nil
}

// Errors splits an aggregate into its individual failures.
func Errors(err error) []error {
	return multierr.Errors(err)
}

func UserExists(user *domain.User) Check {
	return func() error {
		if user == nil {
			return errors.ErrUserNotFound
		}
		return nil
	}
}

func OtherUserExists(user *domain.User) Check {
	return func() error {
		if user == nil {
			return errors.ErrOtherUserNotFound
		}
		return nil
	}
}

func RoomExists(room *domain.Room) Check {
	return func() error {
		if room == nil {
			return errors.ErrRoomNotFound
		}
		return nil
	}
}

func Granularity(valid bool) Check {
	return func() error {
		if !valid {
			return errors.ErrInvalidGranularity
		}
		return nil
	}
}

func NotMember(room *domain.Room, user *domain.User) Check {
	return func() error {
		if room.IsMember(user.ID) {
			return errors.ErrAlreadyMember
		}
		return nil
	}
}

func Member(room *domain.Room, user *domain.User) Check {
	return func() error {
		if !room.IsMember(user.ID) {
			return errors.ErrNotMember
		}
		return nil
	}
}

func OtherMember(room *domain.Room, other *domain.User) Check {
	return func() error {
		if !room.IsMember(other.ID) {
			return fmt.Errorf("other %w", errors.ErrNotMember)
		}
		return nil
	}
}

func NotSelf(user, other *domain.User) Check {
	return func() error {
		if user.ID == other.ID {
			return errors.ErrSelfFive
		}
		return nil
	}
}

func Enter(user *domain.User, room *domain.Room) error {
	return Pipeline(
		Stage{UserExists(user), RoomExists(room)},
		Stage{NotMember(room, user)},
	)
}

func Leave(user *domain.User, room *domain.Room) error {
	return Pipeline(
		Stage{UserExists(user), RoomExists(room)},
		Stage{Member(room, user)},
	)
}

func Comment(user *domain.User, room *domain.Room) error {
	return Leave(user, room)
}

// HighFive rejects a self five before looking at membership.
func HighFive(user *domain.User, room *domain.Room, other *domain.User) error {
	return Pipeline(
		Stage{UserExists(user), RoomExists(room), OtherUserExists(other)},
		Stage{NotSelf(user, other)},
		Stage{Member(room, user), OtherMember(room, other)},
	)
}

func Query(room *domain.Room) error {
	return Run(RoomExists(room))
}

func Stats(room *domain.Room, validGranularity bool) error {
	return Run(Granularity(validGranularity), RoomExists(room))
}
