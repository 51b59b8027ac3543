package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func newMeetingFixture(t *testing.T) (*MeetingService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	emailService := NewEmailService("", "test@example.com", "http://localhost:8090", "Arbor", true)
	svc := NewMeetingService(
		repository.NewMeetingRepository(database),
		repository.NewUserRepository(database),
		repository.NewProfileRepository(database),
		emailService,
	)

	return svc, user
}

func TestMeetingSchedule(t *testing.T) {
	svc, user := newMeetingFixture(t)

	meeting, err := svc.Schedule(user.ID, "2099-06-15", "14:00", "Quarterly goal review")
	require.NoError(t, err)
	assert.Equal(t, model.MeetingStatusScheduled, meeting.Status)
	assert.Equal(t, "2099-06-15", meeting.Date)

	_, err = svc.Schedule(user.ID, "June 15th", "14:00", "")
	assert.Error(t, err, "dates must be YYYY-MM-DD")
}

func TestMeetingUpcoming(t *testing.T) {
	svc, user := newMeetingFixture(t)

	_, err := svc.Schedule(user.ID, "2020-01-01", "", "Old meeting")
	require.NoError(t, err)
	future, err := svc.Schedule(user.ID, "2099-01-01", "", "Future meeting")
	require.NoError(t, err)
	cancelled, err := svc.Schedule(user.ID, "2099-02-01", "", "Cancelled meeting")
	require.NoError(t, err)
	_, err = svc.SetStatus(user.ID, cancelled.ID, model.MeetingStatusCancelled)
	require.NoError(t, err)

	upcoming, err := svc.Upcoming(user.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "past and cancelled meetings are excluded")
	assert.Equal(t, future.ID, upcoming[0].ID)

	all, err := svc.Meetings(user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMeetingSetStatus(t *testing.T) {
	svc, user := newMeetingFixture(t)

	meeting, err := svc.Schedule(user.ID, "2099-06-15", "", "")
	require.NoError(t, err)

	updated, err := svc.SetStatus(user.ID, meeting.ID, model.MeetingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingStatusCompleted, updated.Status)

	_, err = svc.SetStatus(user.ID, meeting.ID, "postponed")
	assert.ErrorIs(t, err, ErrInvalidMeetingStatus)

	_, err = svc.SetStatus(user.ID, "nope", model.MeetingStatusCompleted)
	assert.ErrorIs(t, err, repository.ErrMeetingNotFound)
}

func TestMeetingDelete(t *testing.T) {
	svc, user := newMeetingFixture(t)

	meeting, err := svc.Schedule(user.ID, "2099-06-15", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, meeting.ID))
	assert.ErrorIs(t, svc.Delete(user.ID, meeting.ID), repository.ErrMeetingNotFound)
}
