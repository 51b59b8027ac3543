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

type EvaluationHandler struct {
	evaluationService *service.EvaluationService
}

func NewEvaluationHandler(evaluationService *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// Seed returns the goal plus a checklist pre-filled from the goal's current
// contents. Nothing is persisted until the user submits.
func (h *EvaluationHandler) Seed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, details, err := h.evaluationService.Seed(user.ID, goalID)
	if err != nil {
		h.respondEvaluationError(w, err, goalID)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"goal":    goal,
		"details": details,
		"score":   details.Score(),
	})
}

func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req struct {
		Type        string                  `json:"type"`
		Details     model.EvaluationDetails `json:"details"`
		Feedback    string                  `json:"feedback"`
		TargetScore string                  `json:"targetScore"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log, err := h.evaluationService.Submit(user.ID, goalID, req.Type, req.Details, req.Feedback, req.TargetScore)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvaluationType) {
			respondError(w, http.StatusBadRequest, "evaluation type must be SELF or MENTOR")
			return
		}
		h.respondEvaluationError(w, err, goalID)
		return
	}

	slog.Info("evaluation submitted", "user_id", user.ID, "goal_id", goalID, "type", log.Type, "score", log.Score)
	respondJSON(w, http.StatusCreated, log)
}

func (h *EvaluationHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	logs, err := h.evaluationService.History(user.ID, goalID)
	if err != nil {
		h.respondEvaluationError(w, err, goalID)
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

func (h *EvaluationHandler) respondEvaluationError(w http.ResponseWriter, err error, goalID string) {
	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		respondError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, service.ErrNotGoalOwner):
		respondError(w, http.StatusForbidden, "you do not have access to this goal")
	case errors.Is(err, service.ErrMentorRoleRequired):
		respondError(w, http.StatusForbidden, "mentor role required")
	default:
		slog.Error("evaluation request failed", "error", err, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "evaluation request failed")
	}
}
