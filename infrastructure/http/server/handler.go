package server

import (
	"chat-events/contract"
	"chat-events/domain"
	"chat-events/errors"
	"chat-events/internal"
	"chat-events/projection"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

var validate = validator.New()

// clientErrors are the kinds answered with 400. Anything else is a 500.
var clientErrors = []error{
	errors.ErrUserNotFound,
	errors.ErrRoomNotFound,
	errors.ErrOtherUserNotFound,
	errors.ErrAlreadyMember,
	errors.ErrNotMember,
	errors.ErrSelfFive,
	errors.ErrUnrecognizedEvent,
	errors.ErrInvalidGranularity,
	errors.ErrInvalidFromDate,
	errors.ErrInvalidToDate,
	errors.ErrInvalidDateRange,
	errors.ErrInvalidPayload,
}

type Handler struct {
	chat   contract.IChatService
	events contract.IEventService
	loc    *time.Location
	log    *slog.Logger
}

func NewHandler(chat contract.IChatService, events contract.IEventService, loc *time.Location, log *slog.Logger) *Handler {
	return &Handler{chat: chat, events: events, loc: loc, log: log}
}

// POST /api/chatevent/enterTheRoom
func (h *Handler) EnterRoom(w http.ResponseWriter, r *http.Request) {
	var req EnterRoomRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.chat.EnterRoom(r.Context(), domain.UserID(*req.UserID), domain.RoomID(*req.ChatRoomID))
	h.respond(w, r, err, http.StatusOK, nil)
}

// POST /api/chatevent/leaveTheRoom
func (h *Handler) LeaveRoom(w http.ResponseWriter, r *http.Request) {
	var req LeaveRoomRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.chat.LeaveRoom(r.Context(), domain.UserID(*req.UserID), domain.RoomID(*req.ChatRoomID))
	h.respond(w, r, err, http.StatusOK, nil)
}

// POST /api/chatevent/comment
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.chat.Comment(r.Context(), domain.UserID(*req.UserID), domain.RoomID(*req.ChatRoomID), *req.Text)
	h.respond(w, r, err, http.StatusOK, nil)
}

// POST /api/chatevent/highFive
func (h *Handler) HighFive(w http.ResponseWriter, r *http.Request) {
	var req HighFiveRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.chat.HighFive(r.Context(),
		domain.UserID(*req.UserID), domain.RoomID(*req.ChatRoomID), domain.UserID(*req.OtherUserID))
	h.respond(w, r, err, http.StatusOK, nil)
}

// GET /api/chatevent/getChatEvents?chatRoomId=&from=&to=
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := EventsQuery{
		ChatRoomID: values.Get("chatRoomId"),
		From:       values.Get("from"),
		To:         values.Get("to"),
	}
	if err := validate.Struct(query); err != nil {
		h.fail(w, r, payloadError(err))
		return
	}
	roomID, err := strconv.ParseInt(query.ChatRoomID, 10, 64)
	if err != nil {
		h.fail(w, r, payloadError(err))
		return
	}
	from, to, err := internal.ParseRange(query.From, query.To, h.loc)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	records, err := h.events.GetEvents(r.Context(), domain.RoomID(roomID), from, to)
	h.respond(w, r, err, http.StatusOK, lo.Map(records, func(record projection.EventRecord, _ int) EventResponse {
		return toEventResponse(record)
	}))
}

// GET /api/chatevent/getChatEventStats?chatRoomId=&granularity=&from=&to=
// A bad granularity and bad dates are reported together.
func (h *Handler) GetEventStats(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := StatsQuery{
		ChatRoomID:  values.Get("chatRoomId"),
		Granularity: values.Get("granularity"),
		From:        values.Get("from"),
		To:          values.Get("to"),
	}
	if err := validate.Struct(query); err != nil {
		h.fail(w, r, payloadError(err))
		return
	}
	roomID, err := strconv.ParseInt(query.ChatRoomID, 10, 64)
	if err != nil {
		h.fail(w, r, payloadError(err))
		return
	}

	var errs error
	granularity, err := strconv.Atoi(query.Granularity)
	if err != nil || !projection.ValidGranularity(granularity) {
		errs = multierr.Append(errs, errors.ErrInvalidGranularity)
	}
	from, to, err := internal.ParseRange(query.From, query.To, h.loc)
	errs = multierr.Append(errs, err)
	if errs != nil {
		h.fail(w, r, errs)
		return
	}

	buckets, err := h.events.GetEventStats(r.Context(), domain.RoomID(roomID), granularity, from, to)
	h.respond(w, r, err, http.StatusOK, lo.Map(buckets, func(bucket projection.BucketStats, _ int) StatsResponse {
		return toStatsResponse(bucket)
	}))
}

// GET /api/chatevent/getUsers
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.chat.ListUsers()
	h.respond(w, r, err, http.StatusOK, lo.Map(users, func(user domain.User, _ int) UserResponse {
		return toUserResponse(user)
	}))
}

// GET /api/chatevent/getChatRooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chat.ListRooms()
	h.respond(w, r, err, http.StatusOK, lo.Map(rooms, func(view projection.RoomView, _ int) RoomResponse {
		return toRoomResponse(view)
	}))
}

// POST /api/chatevent/users
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.chat.RegisterUser(req.Name)
	h.respond(w, r, err, http.StatusCreated, toUserResponse(user))
}

// POST /api/chatevent/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !h.decode(w, r, &req) {
		return
	}
	view, err := h.chat.CreateRoom(req.Name)
	h.respond(w, r, err, http.StatusCreated, toRoomResponse(view))
}

// decode reads and validates the JSON body into v. It answers the request
// itself and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.fail(w, r, payloadError(err))
		return false
	}
	if err := validate.Struct(v); err != nil {
		h.fail(w, r, payloadError(err))
		return false
	}
	return true
}

// respond writes body as JSON with status, or the failure when err is set.
// A nil body answers with no content.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, err error, status int, body any) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if body == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, body)
}

// fail answers with the failure message as plain text.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	} else {
		h.log.Debug("Request rejected", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}

func statusOf(err error) int {
	if lo.ContainsBy(clientErrors, func(kind error) bool { return stderrors.Is(err, kind) }) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func payloadError(err error) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidPayload, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
