package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"Feedline/internal/api/handlers/live"
	"Feedline/internal/core/events"
)

// RegisterLiveRoutes registers the websocket event stream on the router.
func RegisterLiveRoutes(r chi.Router, broadcaster *events.Broadcaster, logger *slog.Logger) {
	handler := live.NewHandler(broadcaster, logger)

	r.Get("/ws", handler.HandleSubscribe)
}
