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

func newMentorshipFixture(t *testing.T, advisor *stubAdvisor) (*MentorshipService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	svc := NewMentorshipService(advisor,
		repository.NewChatMessageRepository(database),
		repository.NewProfileRepository(database))

	return svc, user
}

func TestMentorshipHistorySeedsGreeting(t *testing.T) {
	svc, user := newMentorshipFixture(t, &stubAdvisor{})

	messages, err := svc.History(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, model.ChatRoleAssistant, messages[0].Role)
	assert.Equal(t, "Hi Anna! I'm your mentor. What's on your mind today?", messages[0].Content)

	// Greeting is persisted, not regenerated
	again, err := svc.History(user.ID)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, messages[0].ID, again[0].ID)
}

func TestMentorshipSendStoresBothSides(t *testing.T) {
	advisor := &stubAdvisor{advice: "Start with one small step."}
	svc, user := newMentorshipFixture(t, advisor)

	reply, err := svc.Send(context.Background(), user.ID, "I feel stuck with my goals.")
	require.NoError(t, err)
	assert.Equal(t, model.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "Start with one small step.", reply.Content)

	messages, err := svc.History(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.ChatRoleUser, messages[0].Role)
	assert.Equal(t, "I feel stuck with my goals.", messages[0].Content)
	assert.Equal(t, reply.ID, messages[1].ID)
}

func TestMentorshipSendFallbackOnAdvisorError(t *testing.T) {
	advisor := &stubAdvisor{err: errors.New("connection refused")}
	svc, user := newMentorshipFixture(t, advisor)

	reply, err := svc.Send(context.Background(), user.ID, "Hello?")
	require.NoError(t, err, "advisor failures never surface to the caller")
	assert.Equal(t, fallbackAdvice, reply.Content)

	// The apology is part of the stored conversation
	messages, err := svc.History(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, fallbackAdvice, messages[1].Content)
}

func TestMentorshipSendRejectsBlank(t *testing.T) {
	svc, user := newMentorshipFixture(t, &stubAdvisor{})

	_, err := svc.Send(context.Background(), user.ID, "   ")
	assert.Error(t, err)
}

func TestMentorshipClear(t *testing.T) {
	svc, user := newMentorshipFixture(t, &stubAdvisor{advice: "ok"})

	_, err := svc.Send(context.Background(), user.ID, "First message")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(user.ID))

	// History reseeds the greeting after a clear
	messages, err := svc.History(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, model.ChatRoleAssistant, messages[0].Role)
}
