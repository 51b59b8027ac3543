package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func newEvaluationFixture(t *testing.T) (*EvaluationService, *GoalService, *model.User, *model.Goal) {
	t.Helper()

	database := newTestDB(t)
	owner := createTestUser(t, database, "Anna", model.RolePlanter)

	goalRepo := repository.NewGoalRepository(database)
	stepRepo := repository.NewActionStepRepository(database)
	logRepo := repository.NewEvaluationLogRepository(database)
	profileRepo := repository.NewProfileRepository(database)

	goalService := NewGoalService(goalRepo, stepRepo)
	evaluationService := NewEvaluationService(goalRepo, stepRepo, logRepo, profileRepo)

	goal, err := goalService.Create(owner.ID, "Read one book a month", model.GoalCategoryPersonal)
	require.NoError(t, err)

	return evaluationService, goalService, owner, goal
}

func checkedDetails(t *testing.T, flags ...[2]string) model.EvaluationDetails {
	t.Helper()

	var d model.EvaluationDetails
	for _, f := range flags {
		require.NoError(t, d.Toggle(f[0], f[1]))
	}
	return d
}

func TestEvaluationSeedDoesNotPersist(t *testing.T) {
	svc, _, owner, goal := newEvaluationFixture(t)

	seededGoal, details, err := svc.Seed(owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.ID, seededGoal.ID)

	// Creation defaults set both realistic flags
	assert.True(t, details.Realistic.Able)
	assert.True(t, details.Realistic.Willing)

	history, err := svc.History(owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "seeding must not write history")
}

func TestEvaluationSubmitRecordsHistory(t *testing.T) {
	svc, _, owner, goal := newEvaluationFixture(t)

	first := checkedDetails(t, [2]string{"specific", "what"}, [2]string{"measurable", "amount"})
	log1, err := svc.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, first, "needs work", "")
	require.NoError(t, err)
	assert.Equal(t, 13, log1.Score)
	assert.Equal(t, "needs work", log1.Feedback)

	time.Sleep(5 * time.Millisecond)

	second := checkedDetails(t,
		[2]string{"specific", "what"}, [2]string{"specific", "why"},
		[2]string{"measurable", "amount"}, [2]string{"measurable", "indicator"},
		[2]string{"realistic", "able"}, [2]string{"realistic", "willing"},
		[2]string{"timeBound", "deadline"}, [2]string{"actionable", "clearSteps"},
	)
	log2, err := svc.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, second, "", "")
	require.NoError(t, err)
	assert.Equal(t, 50, log2.Score)

	history, err := svc.History(owner.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first, earlier entries untouched
	assert.Equal(t, log2.ID, history[0].ID)
	assert.Equal(t, log1.ID, history[1].ID)
	assert.Equal(t, 13, history[1].Score)
	assert.Equal(t, first, history[1].Details)

	latest, err := svc.Latest(owner.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, log2.ID, latest.ID)
}

func TestEvaluationSubmitInvalidType(t *testing.T) {
	svc, _, owner, goal := newEvaluationFixture(t)

	_, err := svc.Submit(owner.ID, goal.ID, "peer", model.EvaluationDetails{}, "", "")
	assert.ErrorIs(t, err, ErrInvalidEvaluationType)
}

func TestEvaluationTargetScore(t *testing.T) {
	svc, goalService, owner, goal := newEvaluationFixture(t)

	_, err := svc.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, model.EvaluationDetails{}, "", " 85 ")
	require.NoError(t, err)

	updated, err := goalService.ByID(owner.ID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TargetScore)
	assert.Equal(t, 85, *updated.TargetScore)

	// Non-numeric and out-of-range inputs leave the stored target untouched
	for _, bad := range []string{"soon", "", "101", "-1"} {
		_, err = svc.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, model.EvaluationDetails{}, "", bad)
		require.NoError(t, err)

		updated, err = goalService.ByID(owner.ID, goal.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.TargetScore)
		assert.Equal(t, 85, *updated.TargetScore, "input %q must not change target", bad)
	}
}

func TestEvaluationAccessRules(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "Anna", model.RolePlanter)
	mentor := createTestUser(t, database, "Maria", model.RoleMentor)
	stranger := createTestUser(t, database, "Ben", model.RolePlanter)

	goalRepo := repository.NewGoalRepository(database)
	stepRepo := repository.NewActionStepRepository(database)
	svc := NewEvaluationService(goalRepo, stepRepo,
		repository.NewEvaluationLogRepository(database), repository.NewProfileRepository(database))

	goal, err := NewGoalService(goalRepo, stepRepo).Create(owner.ID, "Learn Spanish", model.GoalCategoryPersonal)
	require.NoError(t, err)

	// Another planter cannot even seed someone else's goal
	_, _, err = svc.Seed(stranger.ID, goal.ID)
	assert.ErrorIs(t, err, ErrNotGoalOwner)

	// A mentor can reach it and submit a mentor evaluation
	_, _, err = svc.Seed(mentor.ID, goal.ID)
	require.NoError(t, err)

	log, err := svc.Submit(mentor.ID, goal.ID, model.EvaluationTypeMentor, model.EvaluationDetails{}, "keep going", "")
	require.NoError(t, err)
	assert.Equal(t, model.EvaluationTypeMentor, log.Type)

	// But a mentor cannot submit a self evaluation for someone else's goal
	_, err = svc.Submit(mentor.ID, goal.ID, model.EvaluationTypeSelf, model.EvaluationDetails{}, "", "")
	assert.ErrorIs(t, err, ErrNotGoalOwner)

	// And a planter cannot submit a mentor evaluation of their own goal
	_, err = svc.Submit(owner.ID, goal.ID, model.EvaluationTypeMentor, model.EvaluationDetails{}, "", "")
	assert.ErrorIs(t, err, ErrMentorRoleRequired)
}

func TestEvaluationHistoryOrdersSameInstantSubmissions(t *testing.T) {
	svc, _, owner, goal := newEvaluationFixture(t)

	// Back-to-back submissions can share a timestamp; the insertion
	// sequence keeps history exact regardless.
	flags := [][2]string{
		{"specific", "what"},
		{"specific", "why"},
		{"specific", "who"},
	}
	for i := range flags {
		_, err := svc.Submit(owner.ID, goal.ID, model.EvaluationTypeSelf, checkedDetails(t, flags[:i+1]...), "", "")
		require.NoError(t, err)
	}

	history, err := svc.History(owner.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first: 3 flags (19), then 2 (13), then 1 (6)
	assert.Equal(t, []int{19, 13, 6}, []int{history[0].Score, history[1].Score, history[2].Score})
	assert.Equal(t, []int{3, 2, 1}, []int{history[0].Seq, history[1].Seq, history[2].Seq})
}
