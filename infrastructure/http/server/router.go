package server

import (
	"chat-events/runtime"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
)

func NewRouter(h *Handler, origins []string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID)

	r.Route("/api/chatevent", func(api chi.Router) {
		api.Post("/enterTheRoom", h.EnterRoom)
		api.Post("/leaveTheRoom", h.LeaveRoom)
		api.Post("/comment", h.Comment)
		api.Post("/highFive", h.HighFive)
		api.Get("/getChatEvents", h.GetEvents)
		api.Get("/getChatEventStats", h.GetEventStats)
		api.Get("/getUsers", h.ListUsers)
		api.Get("/getChatRooms", h.ListRooms)
		api.Post("/users", h.RegisterUser)
		api.Post("/rooms", h.CreateRoom)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	cors := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	access := runtime.NewLogWriter(log, "http", slog.LevelInfo)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(handlers.CombinedLoggingHandler(access, cors(r)))
}
