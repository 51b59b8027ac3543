package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			respondError(w, http.StatusBadRequest, "invalid goal category")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("goal created", "user_id", user.ID, "goal_id", goal.ID)
	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = repository.GoalSortRecent
	}

	goals, err := h.goalService.Goals(user.ID, sortBy)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, steps, err := h.goalService.GoalWithSteps(user.ID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to load goal", "error", err, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"goal":  goal,
		"steps": steps,
	})
}

type goalUpdateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`

	SpecificWhat         string `json:"specificWhat"`
	SpecificWho          string `json:"specificWho"`
	SpecificWhere        string `json:"specificWhere"`
	SpecificWhen         string `json:"specificWhen"`
	SpecificWhy          string `json:"specificWhy"`
	SpecificRequirements string `json:"specificRequirements"`
	SpecificConstraints  string `json:"specificConstraints"`

	MeasurableAmount    string `json:"measurableAmount"`
	MeasurableIndicator string `json:"measurableIndicator"`

	RealisticAble    bool   `json:"realisticAble"`
	RealisticWilling bool   `json:"realisticWilling"`
	RealisticNotes   string `json:"realisticNotes"`

	TimeBoundStart   string `json:"timeBoundStart"`
	TimeBoundDue     string `json:"timeBoundDue"`
	TimeBoundRoutine string `json:"timeBoundRoutine"`

	EvaluationFrequency string `json:"evaluationFrequency"`
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req goalUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, service.GoalUpdate{
		Title:                req.Title,
		Category:             req.Category,
		SpecificWhat:         req.SpecificWhat,
		SpecificWho:          req.SpecificWho,
		SpecificWhere:        req.SpecificWhere,
		SpecificWhen:         req.SpecificWhen,
		SpecificWhy:          req.SpecificWhy,
		SpecificRequirements: req.SpecificRequirements,
		SpecificConstraints:  req.SpecificConstraints,
		MeasurableAmount:     req.MeasurableAmount,
		MeasurableIndicator:  req.MeasurableIndicator,
		RealisticAble:        req.RealisticAble,
		RealisticWilling:     req.RealisticWilling,
		RealisticNotes:       req.RealisticNotes,
		TimeBoundStart:       req.TimeBoundStart,
		TimeBoundDue:         req.TimeBoundDue,
		TimeBoundRoutine:     req.TimeBoundRoutine,
		EvaluationFrequency:  req.EvaluationFrequency,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, service.ErrInvalidCategory), errors.Is(err, service.ErrInvalidFrequency):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req struct {
		Progress int `json:"progress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.goalService.SetProgress(user.ID, goalID, req.Progress); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProgress):
			respondError(w, http.StatusBadRequest, "progress must be between 0 and 100")
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		default:
			slog.Error("failed to set goal progress", "error", err, "goal_id", goalID)
			respondError(w, http.StatusInternalServerError, "failed to update progress")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"progress": req.Progress})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	if err := h.goalService.Delete(user.ID, goalID); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to delete goal", "error", err, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	slog.Info("goal deleted", "user_id", user.ID, "goal_id", goalID)
	respondJSON(w, http.StatusNoContent, nil)
}

type actionStepRequest struct {
	Text            string `json:"text"`
	DueDate         string `json:"dueDate"`
	Time            string `json:"time"`
	Days            string `json:"days"`
	Frequency       string `json:"frequency"`
	SuccessCriteria string `json:"successCriteria"`
}

func (r actionStepRequest) input() service.ActionStepInput {
	return service.ActionStepInput{
		Text:            r.Text,
		DueDate:         r.DueDate,
		Time:            r.Time,
		Days:            r.Days,
		Frequency:       r.Frequency,
		SuccessCriteria: r.SuccessCriteria,
	}
}

func (h *GoalHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req actionStepRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.goalService.AddStep(user.ID, goalID, req.input())
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, step)
}

func (h *GoalHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	var req actionStepRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.goalService.UpdateStep(user.ID, goalID, stepID, req.input())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, repository.ErrActionStepNotFound):
			respondError(w, http.StatusNotFound, "action step not found")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, step)
}

func (h *GoalHandler) SetStepCompleted(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.goalService.SetStepCompleted(user.ID, goalID, stepID, req.Completed); err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, repository.ErrActionStepNotFound):
			respondError(w, http.StatusNotFound, "action step not found")
		default:
			slog.Error("failed to update step completion", "error", err, "step_id", stepID)
			respondError(w, http.StatusInternalServerError, "failed to update step")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"completed": req.Completed})
}

func (h *GoalHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	if err := h.goalService.DeleteStep(user.ID, goalID, stepID); err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, repository.ErrActionStepNotFound):
			respondError(w, http.StatusNotFound, "action step not found")
		default:
			slog.Error("failed to delete step", "error", err, "step_id", stepID)
			respondError(w, http.StatusInternalServerError, "failed to delete step")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
