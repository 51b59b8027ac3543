package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/service"
)

type MentorshipHandler struct {
	mentorshipService *service.MentorshipService
}

func NewMentorshipHandler(mentorshipService *service.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{mentorshipService: mentorshipService}
}

func (h *MentorshipHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	messages, err := h.mentorshipService.History(user.ID)
	if err != nil {
		slog.Error("failed to load chat history", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

func (h *MentorshipHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.mentorshipService.Send(r.Context(), user.ID, message)
	if err != nil {
		slog.Error("mentor chat send failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	respondJSON(w, http.StatusCreated, reply)
}

func (h *MentorshipHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.mentorshipService.Clear(user.ID); err != nil {
		slog.Error("failed to clear chat history", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to clear chat history")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
