package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/worktrack-backend/internal/domain"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateTimezone(ctx context.Context, timezone string) (*domain.UserSettings, error)
}

// UserHandler serves user profile REST endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

type settingsResponse struct {
	Timezone string `json:"timezone"`
}

type updateSettingsRequest struct {
	Timezone string `json:"timezone"`
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	})
}

// GetSettings handles GET /users/me/settings.
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Timezone: settings.Timezone})
}

// UpdateSettings handles PATCH /users/me/settings.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.svc.UpdateTimezone(r.Context(), req.Timezone)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Timezone: settings.Timezone})
}
