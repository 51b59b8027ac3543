package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/service"
)

type AccountHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAccountHandler(userService *service.UserService, authService *service.AuthService) *AccountHandler {
	return &AccountHandler{userService: userService, authService: authService}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"user":        user,
		"profile":     profile,
		"hasPassword": user.HasPassword(),
	})
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			respondError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// SetPassword lets passwordless users (magic link or OAuth signups) add a
// password to their account.
func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.SetPassword(user.ID, req.NewPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("password set", "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "password set"})
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.userService.DeleteAccount(user.ID); err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	h.authService.ClearJWTCookie(w)
	slog.Info("account deleted", "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "account deleted"})
}
