package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/ai"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

// fallbackAnalysis is returned when the advisor cannot analyze a decision.
const fallbackAnalysis = "Unable to analyze at the moment."

var ErrInvalidDecisionStep = errors.New("invalid decision step")

type DecisionService struct {
	advisor ai.Advisor
	repo    repository.DecisionRepository
}

func NewDecisionService(advisor ai.Advisor, repo repository.DecisionRepository) *DecisionService {
	return &DecisionService{
		advisor: advisor,
		repo:    repo,
	}
}

func (s *DecisionService) Create(userID, title string) (*model.Decision, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	now := time.Now()
	decision := &model.Decision{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Step:      1,
		Data:      map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(decision); err != nil {
		return nil, fmt.Errorf("failed to create decision: %w", err)
	}

	return decision, nil
}

func (s *DecisionService) ByID(userID, decisionID string) (*model.Decision, error) {
	return s.repo.ByID(userID, decisionID)
}

func (s *DecisionService) Decisions(userID string) ([]*model.Decision, error) {
	return s.repo.Decisions(userID)
}

// Update saves worksheet progress: the current step and the free-form
// answers. The data shape is owned by the client.
func (s *DecisionService) Update(userID, decisionID, title string, step int, data map[string]string) (*model.Decision, error) {
	if step < 1 || step > model.DecisionStepCount {
		return nil, ErrInvalidDecisionStep
	}

	decision, err := s.repo.ByID(userID, decisionID)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		decision.Title = title
	}
	decision.Step = step
	if data != nil {
		decision.Data = data
	}
	decision.UpdatedAt = time.Now()

	if err := s.repo.Update(decision); err != nil {
		return nil, err
	}

	return decision, nil
}

// Analyze asks the advisor for a balanced read of the decision. Failures
// return static placeholder text rather than an error.
func (s *DecisionService) Analyze(ctx context.Context, userID, decisionID string) (string, error) {
	decision, err := s.repo.ByID(userID, decisionID)
	if err != nil {
		return "", err
	}

	analysis, err := s.advisor.AnalyzeDecision(ctx, decision)
	if err != nil {
		slog.Warn("decision analysis unavailable, using fallback", "error", err, "decision_id", decisionID)
		return fallbackAnalysis, nil
	}

	return analysis, nil
}

func (s *DecisionService) Delete(userID, decisionID string) error {
	return s.repo.Delete(userID, decisionID)
}
