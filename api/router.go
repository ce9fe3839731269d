package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/handle_call", h.HandleCall)
	r.Post("/process_speech", h.ProcessSpeech)
	r.Post("/call_status", h.CallStatus)
	r.Get("/health", h.Health)
	r.Get("/conversations/{callSid}", h.GetConversation)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	return r
}
