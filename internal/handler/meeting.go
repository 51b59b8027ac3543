package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type MeetingHandler struct {
	meetingService *service.MeetingService
}

func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

func (h *MeetingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Date  string `json:"date"`
		Time  string `json:"time"`
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meeting, err := h.meetingService.Schedule(user.ID, req.Date, req.Time, req.Topic)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("meeting scheduled", "user_id", user.ID, "meeting_id", meeting.ID, "date", meeting.Date)
	respondJSON(w, http.StatusCreated, meeting)
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var (
		meetings []*model.MentorMeeting
		err      error
	)
	if r.URL.Query().Get("upcoming") == "true" {
		meetings, err = h.meetingService.Upcoming(user.ID)
	} else {
		meetings, err = h.meetingService.Meetings(user.ID)
	}
	if err != nil {
		slog.Error("failed to list meetings", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load meetings")
		return
	}

	respondJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	meetingID := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meeting, err := h.meetingService.SetStatus(user.ID, meetingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMeetingNotFound):
			respondError(w, http.StatusNotFound, "meeting not found")
		case errors.Is(err, service.ErrInvalidMeetingStatus):
			respondError(w, http.StatusBadRequest, "invalid meeting status")
		default:
			slog.Error("failed to update meeting status", "error", err, "meeting_id", meetingID)
			respondError(w, http.StatusInternalServerError, "failed to update meeting")
		}
		return
	}

	respondJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	meetingID := r.PathValue("id")

	if err := h.meetingService.Delete(user.ID, meetingID); err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			respondError(w, http.StatusNotFound, "meeting not found")
			return
		}
		slog.Error("failed to delete meeting", "error", err, "meeting_id", meetingID)
		respondError(w, http.StatusInternalServerError, "failed to delete meeting")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
