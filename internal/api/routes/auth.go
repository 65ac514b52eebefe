package routes

import (
	"github.com/go-chi/chi/v5"

	"Feedline/internal/api/handlers/auth"
	"Feedline/internal/core/users"
)

// RegisterAuthRoutes registers the account endpoints on the router.
// Signup and login are public; the status pair re-checks the identity in
// the service layer.
func RegisterAuthRoutes(r chi.Router, service users.Service) {
	handler := auth.NewHandler(service)

	r.Put("/signup", handler.HandleSignup)
	r.Post("/login", handler.HandleLogin)
	r.Get("/status", handler.HandleGetStatus)
	r.Patch("/status", handler.HandleUpdateStatus)
}
