package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/db"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return database
}

func createTestUser(t *testing.T, database *sqlx.DB, name, role string) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repository.NewUserRepository(database).Create(user))

	require.NoError(t, repository.NewProfileRepository(database).Create(&model.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))

	return user
}

// stubAdvisor implements ai.Advisor with canned responses for service tests.
type stubAdvisor struct {
	quote  model.Quote
	verse  string
	advice string
	err    error
}

func (s *stubAdvisor) DailyQuote(ctx context.Context) (model.Quote, error) {
	return s.quote, s.err
}

func (s *stubAdvisor) BibleVerse(ctx context.Context, reference string) (string, error) {
	return s.verse, s.err
}

func (s *stubAdvisor) MentorshipAdvice(ctx context.Context, name string, history []*model.ChatMessage, message string) (string, error) {
	return s.advice, s.err
}

func (s *stubAdvisor) AnalyzeDecision(ctx context.Context, decision *model.Decision) (string, error) {
	return s.advice, s.err
}
