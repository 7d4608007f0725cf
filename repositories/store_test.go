package repositories

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/errors"
	"chat-events/projection"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Backends(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	for _, backend := range []string{"", BackendMemory, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			req := require.New(t)
			store, err := OpenStore(backend, log)
			req.NoError(err)
			req.NoError(store.Close())
		})
	}

	_, err := OpenStore("postgres", log)
	require.ErrorIs(t, err, errors.ErrUnknownBackend)
}

func TestSeed_Loads_The_Demonstration_Data(t *testing.T) {
	for _, backend := range []string{BackendMemory, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			req := require.New(t)
			store, err := OpenStore(backend, logs.GetLoggerFromLevel(slog.LevelDebug))
			req.NoError(err)
			t.Cleanup(func() { _ = store.Close() })

			req.NoError(Seed(store, time.UTC))

			users, err := store.Users.ListUsers()
			req.NoError(err)
			req.Len(users, 4)
			room, err := store.Rooms.GetRoom(1)
			req.NoError(err)
			req.Equal("BestBuddies", room.Name)
			req.Equal([]domain.UserID{1, 2, 3, 4}, room.MemberIDs())

			events, err := store.Events.GetEvents()
			req.NoError(err)
			req.Len(events, 34)
			for i, e := range events {
				req.Equal(event.ID(i+1), e.EventID())
			}
		})
	}
}

func TestSeed_Members_Match_Replay_Of_Log(t *testing.T) {
	req := require.New(t)
	store := NewMemoryStore()
	req.NoError(Seed(store, time.UTC))

	// When
	events, err := store.Events.GetEvents()
	req.NoError(err)
	present := make(domain.Set)
	for _, e := range events {
		switch e.(type) {
		case event.EnterRoom:
			present[e.UserID()] = struct{}{}
		case event.LeaveRoom:
			delete(present, e.UserID())
		}
	}

	// Then
	room, err := store.Rooms.GetRoom(1)
	req.NoError(err)
	req.Equal(present, room.Members)
}

// Both backends must project a seeded log the same way, including when the
// events carry an unnamed fixed zone.
func TestSeed_Stats_Agree_Across_Backends(t *testing.T) {
	for _, loc := range []*time.Location{time.UTC, time.FixedZone("", 2*60*60), time.FixedZone("", -5*60*60)} {
		t.Run(loc.String(), func(t *testing.T) {
			req := require.New(t)
			stats := make(map[string][]string)
			for _, backend := range []string{BackendMemory, BackendBadger} {
				store, err := OpenStore(backend, logs.GetLoggerFromLevel(slog.LevelDebug))
				req.NoError(err)
				t.Cleanup(func() { _ = store.Close() })
				req.NoError(Seed(store, loc))

				events, err := store.Events.GetEvents()
				req.NoError(err)
				for _, granularity := range []int{1, 2, 24} {
					buckets, err := projection.Aggregate(projection.Timeline(events, 1, projection.Range{}), granularity)
					req.NoError(err)
					for _, bucket := range buckets {
						_, offset := bucket.Hour.Zone()
						stats[backend] = append(stats[backend], fmt.Sprintf("%d %s %d %+v",
							granularity, bucket.Hour.Format("2006-01-02 15:04"), offset, bucket))
					}
				}
			}
			req.NotEmpty(stats[BackendMemory])
			req.Equal(stats[BackendMemory], stats[BackendBadger])
		})
	}
}

func TestSeed_Hourly_Stats_Of_December(t *testing.T) {
	req := require.New(t)
	store := NewMemoryStore()
	req.NoError(Seed(store, time.UTC))
	events, err := store.Events.GetEvents()
	req.NoError(err)

	from := time.Date(2020, 12, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 12, 21, 0, 0, 0, 0, time.UTC)
	stats, err := projection.Aggregate(projection.Timeline(events, 1, projection.Range{From: &from, To: &to}), 1)
	req.NoError(err)

	req.Equal([]projection.BucketStats{
		{
			Hour:                  time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC),
			PeopleEnteredCount:    3,
			PeopleLeftCount:       1,
			CommentCount:          1,
			PeopleHighFivingCount: 1,
			PeopleHighFivedCount:  1,
		},
		{
			Hour:                  time.Date(2020, 12, 20, 13, 0, 0, 0, time.UTC),
			PeopleEnteredCount:    2,
			PeopleLeftCount:       4,
			CommentCount:          1,
			PeopleHighFivingCount: 2,
			PeopleHighFivedCount:  4,
		},
	}, stats)
}

func TestStore_Reset(t *testing.T) {
	req := require.New(t)
	store := NewMemoryStore()
	req.NoError(Seed(store, time.UTC))

	req.NoError(store.Reset())

	users, err := store.Users.ListUsers()
	req.NoError(err)
	req.Empty(users)
	rooms, err := store.Rooms.ListRooms()
	req.NoError(err)
	req.Empty(rooms)
	events, err := store.Events.GetEvents()
	req.NoError(err)
	req.Empty(events)
}
