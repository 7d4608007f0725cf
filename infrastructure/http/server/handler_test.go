package server

import (
	"chat-events/domain"
	"chat-events/errors"
	"chat-events/mocks"
	"chat-events/projection"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
)

type harness struct {
	chat   *mocks.MockIChatService
	events *mocks.MockIEventService
	router http.Handler
}

func newHarness(t *testing.T) harness {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	chat := mocks.NewMockIChatService(ctrl)
	events := mocks.NewMockIEventService(ctrl)
	return harness{
		chat:   chat,
		events: events,
		router: NewRouter(NewHandler(chat, events, time.UTC, logger), []string{"*"}, logger),
	}
}

func (h harness) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_EnterRoom(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	h.chat.EXPECT().EnterRoom(gomock.Any(), domain.UserID(1), domain.RoomID(1)).Return(nil)

	response := h.do(http.MethodPost, "/api/chatevent/enterTheRoom", `{"userId":1,"chatRoomId":1}`)

	req.Equal(http.StatusOK, response.Code)
	_, err := uuid.Parse(response.Header().Get(RequestIDHeader))
	req.NoError(err)
}

func TestHandler_Domain_Failures_Are_Bad_Requests(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	combined := multierr.Combine(errors.ErrUserNotFound, errors.ErrRoomNotFound)

	h.chat.EXPECT().LeaveRoom(gomock.Any(), domain.UserID(8), domain.RoomID(9)).Return(combined)

	response := h.do(http.MethodPost, "/api/chatevent/leaveTheRoom", `{"userId":8,"chatRoomId":9}`)

	req.Equal(http.StatusBadRequest, response.Code)
	req.Equal("user does not exist; chat room does not exist", response.Body.String())
}

func TestHandler_Store_Failures_Are_Server_Errors(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	h.chat.EXPECT().Comment(gomock.Any(), domain.UserID(1), domain.RoomID(1), "").Return(fmt.Errorf("disk full"))

	response := h.do(http.MethodPost, "/api/chatevent/comment", `{"userId":1,"chatRoomId":1,"text":""}`)

	req.Equal(http.StatusInternalServerError, response.Code)
}

func TestHandler_Rejects_Malformed_Payloads(t *testing.T) {
	h := newHarness(t)
	for name, body := range map[string]string{
		"not json":           `{`,
		"missing room":       `{"userId":1}`,
		"missing other user": `{"userId":1,"chatRoomId":1}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)

			// The service is never reached
			response := h.do(http.MethodPost, "/api/chatevent/highFive", body)

			req.Equal(http.StatusBadRequest, response.Code)
			req.Contains(response.Body.String(), "invalid payload")
		})
	}
}

func TestHandler_HighFive(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	h.chat.EXPECT().HighFive(gomock.Any(), domain.UserID(2), domain.RoomID(1), domain.UserID(2)).Return(errors.ErrSelfFive)

	response := h.do(http.MethodPost, "/api/chatevent/highFive", `{"userId":2,"chatRoomId":1,"otherUserId":2}`)

	req.Equal(http.StatusBadRequest, response.Code)
	req.Equal("you can't self five", response.Body.String())
}

func TestHandler_GetEvents(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	from := time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC)

	h.events.EXPECT().
		GetEvents(gomock.Any(), domain.RoomID(1), &from, nil).
		Return([]projection.EventRecord{}, nil)

	response := h.do(http.MethodGet, "/api/chatevent/getChatEvents?chatRoomId=1&from=20-12-2020T12:00:00", "")

	req.Equal(http.StatusOK, response.Code)
	req.JSONEq(`[]`, response.Body.String())
}

func TestHandler_GetEvents_Invalid_Query(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	response := h.do(http.MethodGet, "/api/chatevent/getChatEvents?chatRoomId=abc", "")
	req.Equal(http.StatusBadRequest, response.Code)

	response = h.do(http.MethodGet, "/api/chatevent/getChatEvents?chatRoomId=1&from=21-12-2020T00:00:00&to=20-12-2020T00:00:00", "")
	req.Equal(http.StatusBadRequest, response.Code)
	req.Equal("from date cannot be greater than to date", response.Body.String())
}

func TestHandler_GetEventStats_Reports_Every_Input_Failure(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	response := h.do(http.MethodGet, "/api/chatevent/getChatEventStats?chatRoomId=1&granularity=5&from=nope&to=never", "")

	req.Equal(http.StatusBadRequest, response.Code)
	body := response.Body.String()
	req.Contains(body, "granularity value must be one of")
	req.Contains(body, "from date is not valid")
	req.Contains(body, "to date is not valid")
}

func TestHandler_GetEventStats(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	h.events.EXPECT().
		GetEventStats(gomock.Any(), domain.RoomID(1), 12, nil, nil).
		Return([]projection.BucketStats{{
			Hour:                  time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC),
			PeopleEnteredCount:    3,
			PeopleLeftCount:       4,
			CommentCount:          2,
			PeopleHighFivingCount: 2,
			PeopleHighFivedCount:  4,
		}}, nil)

	response := h.do(http.MethodGet, "/api/chatevent/getChatEventStats?chatRoomId=1&granularity=12", "")

	req.Equal(http.StatusOK, response.Code)
	req.JSONEq(`[{
		"hour": "20-12-2020T12:00:00",
		"peopleEnteredCount": 3,
		"peopleLeftCount": 4,
		"commentCount": 2,
		"peopleHighFivingCount": 2,
		"peopleHighFivedCount": 4
	}]`, response.Body.String())
}

func TestHandler_Registration(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	createdAt := time.Date(2020, 12, 20, 12, 0, 0, 0, time.UTC)

	h.chat.EXPECT().RegisterUser("Jake").Return(domain.User{ID: 4, Name: "Jake"}, nil)
	h.chat.EXPECT().CreateRoom("Lobby").Return(projection.RoomView{ID: 2, Name: "Lobby", CreatedAt: createdAt}, nil)

	response := h.do(http.MethodPost, "/api/chatevent/users", `{"name":"Jake"}`)
	req.Equal(http.StatusCreated, response.Code)
	req.JSONEq(`{"id":4,"name":"Jake"}`, response.Body.String())

	response = h.do(http.MethodPost, "/api/chatevent/rooms", `{"name":"Lobby"}`)
	req.Equal(http.StatusCreated, response.Code)
	var room RoomResponse
	req.NoError(json.Unmarshal(response.Body.Bytes(), &room))
	req.Equal(RoomResponse{ID: 2, Name: "Lobby", CreatedAt: "20-12-2020T12:00:00", Members: []UserResponse{}}, room)

	response = h.do(http.MethodPost, "/api/chatevent/users", `{"name":""}`)
	req.Equal(http.StatusBadRequest, response.Code)
}

func TestHandler_Healthz_And_Request_ID(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	id := uuid.NewString()

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.Header.Set(RequestIDHeader, id)
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)

	req.Equal(http.StatusOK, recorder.Code)
	req.Equal("ok", recorder.Body.String())
	req.Equal(id, recorder.Header().Get(RequestIDHeader))
}
