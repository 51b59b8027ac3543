package service

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(path string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.files[path] = data
	return nil
}

func (m *memStorage) Delete(path string) error {
	delete(m.files, path)
	return nil
}

func (m *memStorage) PublicURL(path string) string {
	return "http://storage.test/" + path
}

func newProfileFixture(t *testing.T) (*ProfileService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	fileService := NewFileService(repository.NewFileRepository(database), newMemStorage())
	svc := NewProfileService(repository.NewProfileRepository(database), fileService)

	return svc, user
}

func TestProfileUpdate(t *testing.T) {
	svc, user := newProfileFixture(t)

	profile, err := svc.Update(user.ID, ProfileUpdate{
		Name:     "Anna",
		Surname:  "Smith",
		Birthday: "1990-04-12",
		Career:   "Teacher",
		Bio:      "Growing every day.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", profile.Surname)
	assert.Equal(t, "Teacher", profile.Career)

	_, err = svc.Update(user.ID, ProfileUpdate{Name: ""})
	assert.Error(t, err, "name stays required")
}

func TestBecomeMentor(t *testing.T) {
	svc, user := newProfileFixture(t)

	profile, err := svc.BecomeMentor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMentor, profile.Role)
	assert.True(t, profile.IsMentor())

	// Idempotent
	profile, err = svc.BecomeMentor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMentor, profile.Role)
}

func TestProfileByUserID(t *testing.T) {
	svc, user := newProfileFixture(t)

	profile, err := svc.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", profile.Name)
	assert.Empty(t, profile.AvatarURL, "no avatar uploaded yet")
}
