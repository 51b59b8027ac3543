package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func newDecisionFixture(t *testing.T, advisor *stubAdvisor) (*DecisionService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	svc := NewDecisionService(advisor, repository.NewDecisionRepository(database))

	return svc, user
}

func TestDecisionCreate(t *testing.T) {
	svc, user := newDecisionFixture(t, &stubAdvisor{})

	decision, err := svc.Create(user.ID, "Should I change careers?")
	require.NoError(t, err)
	assert.Equal(t, 1, decision.Step)
	assert.NotNil(t, decision.Data)
	assert.Empty(t, decision.Data)

	_, err = svc.Create(user.ID, "   ")
	assert.Error(t, err)
}

func TestDecisionUpdateWorksheet(t *testing.T) {
	svc, user := newDecisionFixture(t, &stubAdvisor{})

	decision, err := svc.Create(user.ID, "Move cities?")
	require.NoError(t, err)

	data := map[string]string{"pros": "better job market", "cons": "far from family"}
	updated, err := svc.Update(user.ID, decision.ID, "", 3, data)
	require.NoError(t, err)
	assert.Equal(t, "Move cities?", updated.Title, "blank title keeps existing")
	assert.Equal(t, 3, updated.Step)
	assert.Equal(t, data, updated.Data)

	// Round-trips through the JSON column
	loaded, err := svc.ByID(user.ID, decision.ID)
	require.NoError(t, err)
	assert.Equal(t, data, loaded.Data)

	_, err = svc.Update(user.ID, decision.ID, "", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDecisionStep)
	_, err = svc.Update(user.ID, decision.ID, "", model.DecisionStepCount+1, nil)
	assert.ErrorIs(t, err, ErrInvalidDecisionStep)
}

func TestDecisionAnalyzeFallback(t *testing.T) {
	advisor := &stubAdvisor{advice: "Weigh the pros carefully."}
	svc, user := newDecisionFixture(t, advisor)

	decision, err := svc.Create(user.ID, "Buy a house?")
	require.NoError(t, err)

	analysis, err := svc.Analyze(context.Background(), user.ID, decision.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weigh the pros carefully.", analysis)

	advisor.err = errors.New("overloaded")
	analysis, err = svc.Analyze(context.Background(), user.ID, decision.ID)
	require.NoError(t, err, "advisor failure degrades to fallback text")
	assert.Equal(t, fallbackAnalysis, analysis)

	// A missing decision is still a real error
	_, err = svc.Analyze(context.Background(), user.ID, "nope")
	assert.ErrorIs(t, err, repository.ErrDecisionNotFound)
}

func TestDecisionDelete(t *testing.T) {
	svc, user := newDecisionFixture(t, &stubAdvisor{})

	decision, err := svc.Create(user.ID, "Adopt a dog?")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, decision.ID))
	assert.ErrorIs(t, svc.Delete(user.ID, decision.ID), repository.ErrDecisionNotFound)
}
