package server

import (
	"chat-events/domain"
	"chat-events/repositories"
	"chat-events/runtime"
	"chat-events/services"
	"chat-events/sink"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// startServer serves the full stack on a seeded memory store.
func startServer(t *testing.T) string {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repositories.NewMemoryStore()
	req.NoError(repositories.Seed(store, time.UTC))

	registry := runtime.NewRegistry()
	chat := services.NewChatService(store.Users, store.Rooms, sink.NewEventLogSink(store.Events, logger),
		registry, domain.SystemClock(time.UTC), logger)
	events := services.NewEventService(store.Users, store.Rooms, store.Events, registry, logger)
	srv := NewServer("127.0.0.1:0", NewRouter(NewHandler(chat, events, time.UTC, logger), []string{"*"}, logger), logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(listener) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, srv.Shutdown(ctx))
		require.NoError(t, <-done)
	})
	return "http://" + listener.Addr().String()
}

func TestServer_Seeded_History(t *testing.T) {
	req := require.New(t)
	base := startServer(t)

	// When the december afternoon is queried
	response, err := http.Get(base + "/api/chatevent/getChatEventStats?chatRoomId=1&granularity=24&from=20-12-2020T00:00:00&to=21-12-2020T00:00:00")
	req.NoError(err)
	defer response.Body.Close()

	// Then one daily bucket sums it up
	req.Equal(http.StatusOK, response.StatusCode)
	var stats []StatsResponse
	req.NoError(json.NewDecoder(response.Body).Decode(&stats))
	req.Equal([]StatsResponse{{
		Hour:                  "20-12-2020T00:00:00",
		PeopleEnteredCount:    4,
		PeopleLeftCount:       4,
		CommentCount:          2,
		PeopleHighFivingCount: 2,
		PeopleHighFivedCount:  4,
	}}, stats)
}

func TestServer_Leave_Enter_Then_Read_Back(t *testing.T) {
	req := require.New(t)
	base := startServer(t)

	// Jake is still present at the end of the seeded history
	response, err := http.Post(base+"/api/chatevent/enterTheRoom", "application/json", strings.NewReader(`{"userId":4,"chatRoomId":1}`))
	req.NoError(err)
	body, err := io.ReadAll(response.Body)
	req.NoError(err)
	req.NoError(response.Body.Close())
	req.Equal(http.StatusBadRequest, response.StatusCode)
	req.Equal("user already exists in chat room", string(body))

	response, err = http.Post(base+"/api/chatevent/leaveTheRoom", "application/json", strings.NewReader(`{"userId":4,"chatRoomId":1}`))
	req.NoError(err)
	req.NoError(response.Body.Close())
	req.Equal(http.StatusOK, response.StatusCode)

	response, err = http.Post(base+"/api/chatevent/enterTheRoom", "application/json", strings.NewReader(`{"userId":4,"chatRoomId":1}`))
	req.NoError(err)
	req.NoError(response.Body.Close())
	req.Equal(http.StatusOK, response.StatusCode)

	response, err = http.Get(base + "/api/chatevent/getChatEvents?chatRoomId=1&from=01-01-2021T00:00:00")
	req.NoError(err)
	defer response.Body.Close()
	var events []EventResponse
	req.NoError(json.NewDecoder(response.Body).Decode(&events))
	req.Len(events, 2)
	req.Equal(int64(35), events[0].EventID)
	req.Equal("LeaveTheRoom", events[0].EventName)
	req.Equal(int64(36), events[1].EventID)
	req.Equal("EnterTheRoom", events[1].EventName)
	req.Equal(UserResponse{ID: 4, Name: "Jake"}, events[1].User)
	req.Equal(ChatRoomResponse{ID: 1, Name: "BestBuddies"}, events[1].ChatRoom)
}
