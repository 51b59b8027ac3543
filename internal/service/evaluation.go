package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

var (
	ErrInvalidEvaluationType = errors.New("invalid evaluation type")
	ErrNotGoalOwner          = errors.New("goal belongs to another user")
	ErrMentorRoleRequired    = errors.New("mentor role required")
)

type EvaluationService struct {
	goalRepo    repository.GoalRepository
	stepRepo    repository.ActionStepRepository
	logRepo     repository.EvaluationLogRepository
	profileRepo repository.ProfileRepository
}

func NewEvaluationService(
	goalRepo repository.GoalRepository,
	stepRepo repository.ActionStepRepository,
	logRepo repository.EvaluationLogRepository,
	profileRepo repository.ProfileRepository,
) *EvaluationService {
	return &EvaluationService{
		goalRepo:    goalRepo,
		stepRepo:    stepRepo,
		logRepo:     logRepo,
		profileRepo: profileRepo,
	}
}

// goalForEvaluation resolves the goal under the access rules: owners always
// have access; mentors may also reach other planters' goals.
func (s *EvaluationService) goalForEvaluation(userID, goalID string) (*model.Goal, error) {
	goal, err := s.goalRepo.ByIDAny(goalID)
	if err != nil {
		return nil, err
	}

	if goal.UserID == userID {
		return goal, nil
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if !profile.IsMentor() {
		return nil, ErrNotGoalOwner
	}

	return goal, nil
}

// Seed builds a fresh checklist from the goal's current contents and returns
// it with its score. Nothing is persisted; the caller edits the checklist and
// submits it.
func (s *EvaluationService) Seed(userID, goalID string) (*model.Goal, model.EvaluationDetails, error) {
	goal, err := s.goalForEvaluation(userID, goalID)
	if err != nil {
		return nil, model.EvaluationDetails{}, err
	}

	steps, err := s.stepRepo.Steps(goalID)
	if err != nil {
		return nil, model.EvaluationDetails{}, fmt.Errorf("failed to get action steps: %w", err)
	}

	return goal, model.SeedEvaluationDetails(goal, steps), nil
}

// Submit records an evaluation: an immutable log entry with the computed
// score and a verbatim snapshot of the checklist. The goal's target score is
// written only when targetScore parses as an integer in [0,100]; any other
// input leaves the stored target untouched. This is the only path that
// writes evaluation history or the target score.
func (s *EvaluationService) Submit(evaluatorID, goalID, evalType string, details model.EvaluationDetails, feedback, targetScore string) (*model.EvaluationLog, error) {
	if !model.ValidEvaluationType(evalType) {
		return nil, ErrInvalidEvaluationType
	}

	goal, err := s.goalForEvaluation(evaluatorID, goalID)
	if err != nil {
		return nil, err
	}

	if evalType == model.EvaluationTypeSelf && goal.UserID != evaluatorID {
		return nil, ErrNotGoalOwner
	}

	if evalType == model.EvaluationTypeMentor {
		profile, err := s.profileRepo.ByUserID(evaluatorID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		if !profile.IsMentor() {
			return nil, ErrMentorRoleRequired
		}
	}

	log := &model.EvaluationLog{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Type:      evalType,
		Score:     details.Score(),
		Details:   details,
		Feedback:  strings.TrimSpace(feedback),
		CreatedAt: time.Now(),
	}

	if err := s.logRepo.Create(log); err != nil {
		return nil, fmt.Errorf("failed to create evaluation log: %w", err)
	}

	if target, err := strconv.Atoi(strings.TrimSpace(targetScore)); err == nil && target >= 0 && target <= 100 {
		if err := s.goalRepo.UpdateTargetScore(goalID, &target); err != nil {
			slog.Warn("failed to update target score", "error", err, "goal_id", goalID)
		}
	}

	slog.Info("evaluation submitted",
		"goal_id", goalID, "type", evalType, "score", log.Score, "evaluator_id", evaluatorID)
	return log, nil
}

// History returns the goal's evaluation logs newest first.
func (s *EvaluationService) History(userID, goalID string) ([]*model.EvaluationLog, error) {
	if _, err := s.goalForEvaluation(userID, goalID); err != nil {
		return nil, err
	}

	return s.logRepo.ByGoal(goalID)
}

// Latest returns the most recent evaluation, or ErrEvaluationLogNotFound.
func (s *EvaluationService) Latest(userID, goalID string) (*model.EvaluationLog, error) {
	if _, err := s.goalForEvaluation(userID, goalID); err != nil {
		return nil, err
	}

	return s.logRepo.Latest(goalID)
}
