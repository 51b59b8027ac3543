package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func newGoalFixture(t *testing.T) (*GoalService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	svc := NewGoalService(repository.NewGoalRepository(database), repository.NewActionStepRepository(database))

	return svc, user
}

func TestGoalCreateDefaults(t *testing.T) {
	svc, user := newGoalFixture(t)

	goal, err := svc.Create(user.ID, "  Run a marathon  ", "")
	require.NoError(t, err)

	assert.Equal(t, "Run a marathon", goal.Title)
	assert.Equal(t, model.GoalCategoryPersonal, goal.Category)
	assert.Equal(t, model.EvaluationFrequencyMonthly, goal.EvaluationFrequency)
	assert.True(t, goal.RealisticAble)
	assert.True(t, goal.RealisticWilling)
	assert.Equal(t, 0, goal.Progress)
	assert.Nil(t, goal.TargetScore)
	assert.Equal(t, time.Now().Format("2006-01-02"), goal.TimeBoundStart)
}

func TestGoalCreateValidation(t *testing.T) {
	svc, user := newGoalFixture(t)

	_, err := svc.Create(user.ID, "   ", "")
	assert.Error(t, err, "blank title is rejected")

	_, err = svc.Create(user.ID, "Valid title", "finance")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGoalUpdateReplacesEditableFields(t *testing.T) {
	svc, user := newGoalFixture(t)

	goal, err := svc.Create(user.ID, "Learn guitar", model.GoalCategoryPersonal)
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, goal.ID, GoalUpdate{
		Title:               "Learn classical guitar",
		Category:            model.GoalCategoryLifeSkills,
		SpecificWhat:        "Play three full pieces",
		MeasurableAmount:    "3 pieces",
		RealisticAble:       true,
		RealisticWilling:    true,
		TimeBoundDue:        "2027-01-01",
		EvaluationFrequency: model.EvaluationFrequencyWeekly,
	})
	require.NoError(t, err)
	assert.Equal(t, "Learn classical guitar", updated.Title)
	assert.Equal(t, model.GoalCategoryLifeSkills, updated.Category)
	assert.Equal(t, "Play three full pieces", updated.SpecificWhat)
	assert.Equal(t, model.EvaluationFrequencyWeekly, updated.EvaluationFrequency)

	// Update never touches progress
	assert.Equal(t, 0, updated.Progress)
}

func TestGoalSetProgress(t *testing.T) {
	svc, user := newGoalFixture(t)

	goal, err := svc.Create(user.ID, "Meditate daily", model.GoalCategorySpiritual)
	require.NoError(t, err)

	require.NoError(t, svc.SetProgress(user.ID, goal.ID, 40))

	loaded, err := svc.ByID(user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Progress)

	assert.ErrorIs(t, svc.SetProgress(user.ID, goal.ID, 101), ErrInvalidProgress)
	assert.ErrorIs(t, svc.SetProgress(user.ID, goal.ID, -1), ErrInvalidProgress)
}

func TestGoalOwnershipIsolation(t *testing.T) {
	database := newTestDB(t)
	anna := createTestUser(t, database, "Anna", model.RolePlanter)
	ben := createTestUser(t, database, "Ben", model.RolePlanter)
	svc := NewGoalService(repository.NewGoalRepository(database), repository.NewActionStepRepository(database))

	goal, err := svc.Create(anna.ID, "Private goal", model.GoalCategoryPersonal)
	require.NoError(t, err)

	_, err = svc.ByID(ben.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	err = svc.Delete(ben.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	// Still there for the owner
	_, err = svc.ByID(anna.ID, goal.ID)
	assert.NoError(t, err)
}

func TestGoalActionSteps(t *testing.T) {
	svc, user := newGoalFixture(t)

	goal, err := svc.Create(user.ID, "Write a novel", model.GoalCategoryCareer)
	require.NoError(t, err)

	first, err := svc.AddStep(user.ID, goal.ID, ActionStepInput{Text: "Outline the plot"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, model.StepFrequencyOnce, first.Frequency)

	second, err := svc.AddStep(user.ID, goal.ID, ActionStepInput{Text: "Write chapter one", Frequency: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	require.NoError(t, svc.SetStepCompleted(user.ID, goal.ID, first.ID, true))

	_, steps, err := svc.GoalWithSteps(user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.True(t, steps[0].Completed)
	assert.False(t, steps[1].Completed)

	require.NoError(t, svc.DeleteStep(user.ID, goal.ID, second.ID))

	_, steps, err = svc.GoalWithSteps(user.ID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
}

func TestGoalSorting(t *testing.T) {
	svc, user := newGoalFixture(t)

	a, err := svc.Create(user.ID, "Alpha", model.GoalCategoryPersonal)
	require.NoError(t, err)
	b, err := svc.Create(user.ID, "beta", model.GoalCategoryPersonal)
	require.NoError(t, err)

	require.NoError(t, svc.SetProgress(user.ID, a.ID, 10))
	require.NoError(t, svc.SetProgress(user.ID, b.ID, 90))

	byProgress, err := svc.Goals(user.ID, repository.GoalSortProgress)
	require.NoError(t, err)
	require.Len(t, byProgress, 2)
	assert.Equal(t, b.ID, byProgress[0].ID)

	byTitle, err := svc.Goals(user.ID, repository.GoalSortTitle)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", byTitle[0].Title, "title sort is case-insensitive")
}

func TestGoalDeleteCascadesStepsAndHistory(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "Anna", model.RolePlanter)

	goalRepo := repository.NewGoalRepository(database)
	stepRepo := repository.NewActionStepRepository(database)
	logRepo := repository.NewEvaluationLogRepository(database)

	goalService := NewGoalService(goalRepo, stepRepo)
	evaluationService := NewEvaluationService(goalRepo, stepRepo, logRepo, repository.NewProfileRepository(database))

	goal, err := goalService.Create(owner.ID, "Declutter the garage", model.GoalCategoryPersonal)
	require.NoError(t, err)

	_, err = goalService.AddStep(owner.ID, goal.ID, ActionStepInput{Text: "Sort tools"})
	require.NoError(t, err)
	_, err = goalService.AddStep(owner.ID, goal.ID, ActionStepInput{Text: "Donate boxes"})
	require.NoError(t, err)

	_, err = evaluationService.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, checkedDetails(t, [2]string{"specific", "what"}), "", "")
	require.NoError(t, err)

	require.NoError(t, goalService.Delete(owner.ID, goal.ID))

	steps, err := stepRepo.Steps(goal.ID)
	require.NoError(t, err)
	assert.Empty(t, steps, "deleting a goal removes its action steps")

	logs, err := logRepo.ByGoal(goal.ID)
	require.NoError(t, err)
	assert.Empty(t, logs, "deleting a goal removes its evaluation history")
}
