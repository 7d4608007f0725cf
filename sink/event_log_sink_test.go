package sink_test

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/errors"
	"chat-events/mocks"
	"chat-events/repositories"
	"chat-events/sink"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type DummyEvent struct {
	event.Header
}

func (DummyEvent) Kind() event.Kind { return "Dummy" }

func TestEventLogSink_Assigns_Consecutive_IDs(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repository := repositories.NewEventRepository()
	s := sink.NewEventLogSink(repository, logger)
	at := time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC)

	// When four events are raised
	req.NoError(s.Consume(context.Background(), event.NewEnterRoom(1, 1, at)))
	req.NoError(s.Consume(context.Background(), event.NewEnterRoom(2, 1, at)))
	req.NoError(s.Consume(context.Background(), event.NewComment(1, 1, "hi", at)))
	req.NoError(s.Consume(context.Background(), event.NewHighFive(2, 1, 1, at)))

	// Then they are logged with ids 1 to 4
	events, err := repository.GetEvents()
	req.NoError(err)
	req.Len(events, 4)
	for i, e := range events {
		req.Equal(event.ID(i+1), e.EventID())
	}
}

func TestEventLogSink_Continues_After_The_Highest_ID(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRepo := mocks.NewMockIEventRepository(ctrl)
	at := time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().MaxID().Return(event.ID(34), nil)
	mockRepo.EXPECT().StoreEvent(gomock.Any()).DoAndReturn(func(e event.DomainEvent) error {
		req.Equal(event.ID(35), e.EventID())
		req.Equal(event.LeaveRoomKind, e.Kind())
		return nil
	})

	req.NoError(sink.NewEventLogSink(mockRepo, logger).Consume(context.Background(), event.NewLeaveRoom(3, 1, at)))
}

func TestEventLogSink_Reports_Repository_Failures(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRepo := mocks.NewMockIEventRepository(ctrl)
	boom := fmt.Errorf("disk full")
	at := time.Now().UTC()
	s := sink.NewEventLogSink(mockRepo, logger)

	mockRepo.EXPECT().MaxID().Return(event.ID(0), boom)
	req.ErrorIs(s.Consume(context.Background(), event.NewEnterRoom(1, 1, at)), boom)

	mockRepo.EXPECT().MaxID().Return(event.ID(0), nil)
	mockRepo.EXPECT().StoreEvent(gomock.Any()).Return(boom)
	req.ErrorIs(s.Consume(context.Background(), event.NewEnterRoom(1, 1, at)), boom)

	// Unknown events never reach the repository
	req.ErrorIs(s.Consume(context.Background(), DummyEvent{}), errors.ErrUnrecognizedEvent)
}

func TestEventLogSink_Concurrent_Appends_Get_Unique_IDs(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repository := repositories.NewEventRepository()
	s := sink.NewEventLogSink(repository, logger)
	at := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(room int) {
			defer wg.Done()
			_ = s.Consume(context.Background(), event.NewComment(1, domain.RoomID(room+1), "hi", at))
		}(i % 5)
	}
	wg.Wait()

	events, err := repository.GetEvents()
	req.NoError(err)
	req.Len(events, 50)
	seen := make(map[event.ID]struct{})
	for _, e := range events {
		seen[e.EventID()] = struct{}{}
	}
	req.Len(seen, 50)
}
