package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/validation"
)

var (
	ErrInvalidCategory  = errors.New("invalid goal category")
	ErrInvalidFrequency = errors.New("invalid evaluation frequency")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
)

type GoalService struct {
	repo     repository.GoalRepository
	stepRepo repository.ActionStepRepository
}

func NewGoalService(repo repository.GoalRepository, stepRepo repository.ActionStepRepository) *GoalService {
	return &GoalService{
		repo:     repo,
		stepRepo: stepRepo,
	}
}

// Create plants a new goal with the standard defaults: category personal,
// monthly evaluations, progress 0, able and willing true, start date today.
func (s *GoalService) Create(userID, title, category string) (*model.Goal, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	if category == "" {
		category = model.GoalCategoryPersonal
	}
	if !model.ValidGoalCategory(category) {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	goal := &model.Goal{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Title:               title,
		Category:            category,
		RealisticAble:       true,
		RealisticWilling:    true,
		TimeBoundStart:      now.Format("2006-01-02"),
		EvaluationFrequency: model.EvaluationFrequencyMonthly,
		Progress:            0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID, sortBy string) ([]*model.Goal, error) {
	return s.repo.Goals(userID, sortBy)
}

func (s *GoalService) CountUserGoals(userID string) (int, error) {
	return s.repo.CountUserGoals(userID)
}

func (s *GoalService) GoalWithSteps(userID, goalID string) (*model.Goal, []*model.ActionStep, error) {
	// Verify ownership
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, nil, err
	}

	steps, err := s.stepRepo.Steps(goalID)
	if err != nil {
		return nil, nil, err
	}

	return goal, steps, nil
}

// GoalUpdate carries a full replacement of the goal's editable fields.
// Progress and target score are excluded: progress has its own validated
// path and the target score is only ever written by the evaluation flow.
type GoalUpdate struct {
	Title    string
	Category string

	SpecificWhat         string
	SpecificWho          string
	SpecificWhere        string
	SpecificWhen         string
	SpecificWhy          string
	SpecificRequirements string
	SpecificConstraints  string

	MeasurableAmount    string
	MeasurableIndicator string

	RealisticAble    bool
	RealisticWilling bool
	RealisticNotes   string

	TimeBoundStart   string
	TimeBoundDue     string
	TimeBoundRoutine string

	EvaluationFrequency string
}

func (s *GoalService) Update(userID, goalID string, update GoalUpdate) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(update.Title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}
	if !model.ValidGoalCategory(update.Category) {
		return nil, ErrInvalidCategory
	}
	if !model.ValidEvaluationFrequency(update.EvaluationFrequency) {
		return nil, ErrInvalidFrequency
	}

	goal.Title = title
	goal.Category = update.Category
	goal.SpecificWhat = update.SpecificWhat
	goal.SpecificWho = update.SpecificWho
	goal.SpecificWhere = update.SpecificWhere
	goal.SpecificWhen = update.SpecificWhen
	goal.SpecificWhy = update.SpecificWhy
	goal.SpecificRequirements = update.SpecificRequirements
	goal.SpecificConstraints = update.SpecificConstraints
	goal.MeasurableAmount = update.MeasurableAmount
	goal.MeasurableIndicator = update.MeasurableIndicator
	goal.RealisticAble = update.RealisticAble
	goal.RealisticWilling = update.RealisticWilling
	goal.RealisticNotes = update.RealisticNotes
	goal.TimeBoundStart = update.TimeBoundStart
	goal.TimeBoundDue = update.TimeBoundDue
	goal.TimeBoundRoutine = update.TimeBoundRoutine
	goal.EvaluationFrequency = update.EvaluationFrequency
	goal.UpdatedAt = time.Now()

	if err := s.repo.Update(goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// SetProgress sets user-reported progress. Progress is a self-assessment,
// not derived from action step completion.
func (s *GoalService) SetProgress(userID, goalID string, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}

	return s.repo.UpdateProgress(userID, goalID, progress)
}

func (s *GoalService) Delete(userID, goalID string) error {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	// Steps and evaluation history cascade
	return s.repo.Delete(userID, goalID)
}

// ActionStepInput carries the editable fields of an action step.
type ActionStepInput struct {
	Text            string
	DueDate         string
	Time            string
	Days            string
	Frequency       string
	SuccessCriteria string
}

func (s *GoalService) AddStep(userID, goalID string, input ActionStepInput) (*model.ActionStep, error) {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Frequency == "" {
		input.Frequency = model.StepFrequencyOnce
	}
	if !model.ValidStepFrequency(input.Frequency) {
		return nil, fmt.Errorf("invalid step frequency: %s", input.Frequency)
	}

	position, err := s.stepRepo.NextPosition(goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get step position: %w", err)
	}

	step := &model.ActionStep{
		ID:              uuid.New().String(),
		GoalID:          goalID,
		Position:        position,
		Text:            strings.TrimSpace(input.Text),
		DueDate:         input.DueDate,
		Time:            input.Time,
		Days:            input.Days,
		Frequency:       input.Frequency,
		SuccessCriteria: input.SuccessCriteria,
		CreatedAt:       time.Now(),
	}

	if err := s.stepRepo.Create(step); err != nil {
		return nil, fmt.Errorf("failed to create action step: %w", err)
	}

	return step, nil
}

func (s *GoalService) UpdateStep(userID, goalID, stepID string, input ActionStepInput) (*model.ActionStep, error) {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	step, err := s.stepRepo.ByID(goalID, stepID)
	if err != nil {
		return nil, err
	}

	if input.Frequency != "" && !model.ValidStepFrequency(input.Frequency) {
		return nil, fmt.Errorf("invalid step frequency: %s", input.Frequency)
	}

	step.Text = strings.TrimSpace(input.Text)
	step.DueDate = input.DueDate
	step.Time = input.Time
	step.Days = input.Days
	if input.Frequency != "" {
		step.Frequency = input.Frequency
	}
	step.SuccessCriteria = input.SuccessCriteria

	if err := s.stepRepo.Update(step); err != nil {
		return nil, err
	}

	return step, nil
}

func (s *GoalService) SetStepCompleted(userID, goalID, stepID string, completed bool) error {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.stepRepo.SetCompleted(goalID, stepID, completed)
}

func (s *GoalService) DeleteStep(userID, goalID, stepID string) error {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.stepRepo.Delete(goalID, stepID)
}
