package auth

import (
	"encoding/json"
	"net/http"

	"Feedline/internal/api/handlers/common"
	"Feedline/internal/api/middleware"
	"Feedline/internal/core/users"
)

// Handler serves the account endpoints: signup, login and the status pair.
type Handler struct {
	service users.Service
}

// NewHandler creates a new auth handler
func NewHandler(service users.Service) *Handler {
	return &Handler{service: service}
}

// HandleSignup handles PUT /signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.Signup(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"userId":  user.ID,
	})
}

// HandleLogin handles POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetStatus handles GET /status
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetStatus(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleUpdateStatus handles PATCH /status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteBadRequest(w, "Invalid request body")
		return
	}

	if _, err := h.service.UpdateStatus(r.Context(), middleware.IdentityFrom(r.Context()), req.Status); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}
