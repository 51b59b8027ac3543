package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type DecisionHandler struct {
	decisionService *service.DecisionService
}

func NewDecisionHandler(decisionService *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionService: decisionService}
}

func (h *DecisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := h.decisionService.Create(user.ID, req.Title)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("decision worksheet created", "user_id", user.ID, "decision_id", decision.ID)
	respondJSON(w, http.StatusCreated, decision)
}

func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	decisions, err := h.decisionService.Decisions(user.ID)
	if err != nil {
		slog.Error("failed to list decisions", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load decisions")
		return
	}

	respondJSON(w, http.StatusOK, decisions)
}

func (h *DecisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	decisionID := r.PathValue("id")

	decision, err := h.decisionService.ByID(user.ID, decisionID)
	if err != nil {
		if errors.Is(err, repository.ErrDecisionNotFound) {
			respondError(w, http.StatusNotFound, "decision not found")
			return
		}
		slog.Error("failed to load decision", "error", err, "decision_id", decisionID)
		respondError(w, http.StatusInternalServerError, "failed to load decision")
		return
	}

	respondJSON(w, http.StatusOK, decision)
}

func (h *DecisionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	decisionID := r.PathValue("id")

	var req struct {
		Title string            `json:"title"`
		Step  int               `json:"step"`
		Data  map[string]string `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := h.decisionService.Update(user.ID, decisionID, req.Title, req.Step, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDecisionNotFound):
			respondError(w, http.StatusNotFound, "decision not found")
		case errors.Is(err, service.ErrInvalidDecisionStep):
			respondError(w, http.StatusBadRequest, "invalid worksheet step")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, decision)
}

// Analyze asks the advisor for guidance on the worksheet contents. A static
// fallback is returned when the advisor is unavailable.
func (h *DecisionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	decisionID := r.PathValue("id")

	analysis, err := h.decisionService.Analyze(r.Context(), user.ID, decisionID)
	if err != nil {
		if errors.Is(err, repository.ErrDecisionNotFound) {
			respondError(w, http.StatusNotFound, "decision not found")
			return
		}
		slog.Error("decision analysis failed", "error", err, "decision_id", decisionID)
		respondError(w, http.StatusInternalServerError, "failed to analyze decision")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (h *DecisionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	decisionID := r.PathValue("id")

	if err := h.decisionService.Delete(user.ID, decisionID); err != nil {
		if errors.Is(err, repository.ErrDecisionNotFound) {
			respondError(w, http.StatusNotFound, "decision not found")
			return
		}
		slog.Error("failed to delete decision", "error", err, "decision_id", decisionID)
		respondError(w, http.StatusInternalServerError, "failed to delete decision")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
