package repositories

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"time"
)

// Seed loads the demonstration data set: four users, one room and the
// history of two afternoons. The room's members are those left present by
// replaying that history in log order.
func Seed(store *Store, loc *time.Location) error {
	users := []domain.User{
		{ID: 1, Name: "Bob"},
		{ID: 2, Name: "Kate"},
		{ID: 3, Name: "Alice"},
		{ID: 4, Name: "Jake"},
	}
	for _, user := range users {
		if err := store.Users.StoreUser(user); err != nil {
			return err
		}
	}
	room := domain.NewRoom(1, "BestBuddies", time.Now().In(loc))
	events := seedEvents(loc)
	for _, e := range events {
		switch e.(type) {
		case event.EnterRoom:
			room.AddMember(e.UserID())
		case event.LeaveRoom:
			room.RemoveMember(e.UserID())
		}
	}
	if err := store.Rooms.StoreRoom(room); err != nil {
		return err
	}
	for _, e := range events {
		if err := store.Events.StoreEvent(e); err != nil {
			return err
		}
	}
	return nil
}

func seedEvents(loc *time.Location) []event.DomainEvent {
	var events []event.DomainEvent
	add := func(e event.DomainEvent) {
		stamped, _ := event.WithID(e, event.ID(len(events)+1))
		events = append(events, stamped)
	}

	for _, day := range []struct {
		month time.Month
		hour  int
	}{{time.December, 12}, {time.November, 13}} {
		at := func(hourOffset, minute int) time.Time {
			return time.Date(2020, day.month, 20, day.hour+hourOffset, minute, 0, 0, loc)
		}
		add(event.NewEnterRoom(1, 1, at(0, 0)))
		add(event.NewEnterRoom(2, 1, at(0, 20)))
		add(event.NewEnterRoom(3, 1, at(0, 30)))
		add(event.NewLeaveRoom(3, 1, at(0, 40)))
		add(event.NewComment(1, 1, "This is a comment", at(0, 45)))
		add(event.NewHighFive(2, 1, 1, at(0, 50)))
		add(event.NewHighFive(2, 1, 1, at(0, 50)))

		add(event.NewEnterRoom(3, 1, at(1, 0)))
		add(event.NewEnterRoom(4, 1, at(1, 20)))
		add(event.NewComment(3, 1, "This is also a comment", at(1, 45)))
		add(event.NewHighFive(4, 1, 3, at(1, 50)))
		add(event.NewHighFive(4, 1, 2, at(1, 50)))
		add(event.NewHighFive(4, 1, 1, at(1, 50)))
		add(event.NewHighFive(2, 1, 1, at(1, 50)))
		add(event.NewHighFive(2, 1, 4, at(1, 50)))

		if day.month == time.December {
			add(event.NewLeaveRoom(1, 1, at(1, 55)))
			add(event.NewLeaveRoom(2, 1, at(1, 55)))
			add(event.NewLeaveRoom(3, 1, at(1, 55)))
			add(event.NewLeaveRoom(4, 1, at(1, 55)))
		}
	}
	return events
}
