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

func newBibleFixture(t *testing.T, advisor *stubAdvisor) (*BibleService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	svc := NewBibleService(advisor, repository.NewBibleNoteRepository(database))

	return svc, user
}

func TestLookupVerseFallback(t *testing.T) {
	svc, _ := newBibleFixture(t, &stubAdvisor{err: errors.New("timeout")})

	text := svc.LookupVerse(context.Background(), "John 3:16")
	assert.Equal(t, fallbackVerseText, text)
}

func TestCreateNoteFetchesMissingText(t *testing.T) {
	advisor := &stubAdvisor{verse: "For God so loved the world..."}
	svc, user := newBibleFixture(t, advisor)

	note, err := svc.CreateNote(context.Background(), user.ID, "John 3:16", "", "My favorite verse")
	require.NoError(t, err)
	assert.Equal(t, "For God so loved the world...", note.Text)
	assert.Equal(t, "My favorite verse", note.Note)

	// Provided text is stored verbatim, no advisor call needed
	advisor.err = errors.New("down")
	note, err = svc.CreateNote(context.Background(), user.ID, "Psalm 23:1", "The Lord is my shepherd", "")
	require.NoError(t, err)
	assert.Equal(t, "The Lord is my shepherd", note.Text)
}

func TestCreateNoteRequiresReference(t *testing.T) {
	svc, user := newBibleFixture(t, &stubAdvisor{})

	_, err := svc.CreateNote(context.Background(), user.ID, "   ", "text", "note")
	assert.Error(t, err)
}

func TestBibleNoteFavorites(t *testing.T) {
	svc, user := newBibleFixture(t, &stubAdvisor{verse: "..."})

	first, err := svc.CreateNote(context.Background(), user.ID, "John 3:16", "text one", "")
	require.NoError(t, err)
	_, err = svc.CreateNote(context.Background(), user.ID, "Psalm 23:1", "text two", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetFavorite(user.ID, first.ID, true))

	favorites, err := svc.Favorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, first.ID, favorites[0].ID)

	all, err := svc.Notes(user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := svc.CountNotes(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBibleNoteUpdateAndDelete(t *testing.T) {
	svc, user := newBibleFixture(t, &stubAdvisor{verse: "..."})

	note, err := svc.CreateNote(context.Background(), user.ID, "John 3:16", "text", "old note")
	require.NoError(t, err)

	updated, err := svc.UpdateNote(user.ID, note.ID, "John 3:17", "new text", "new note")
	require.NoError(t, err)
	assert.Equal(t, "John 3:17", updated.Reference)
	assert.Equal(t, "new note", updated.Note)

	require.NoError(t, svc.DeleteNote(user.ID, note.ID))

	_, err = svc.UpdateNote(user.ID, note.ID, "John 3:18", "", "")
	assert.ErrorIs(t, err, repository.ErrBibleNoteNotFound)
}
