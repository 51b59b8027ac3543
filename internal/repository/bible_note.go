package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrBibleNoteNotFound = errors.New("bible note not found")
)

type BibleNoteRepository interface {
	Create(note *model.BibleNote) error
	ByID(userID, noteID string) (*model.BibleNote, error)
	Notes(userID string) ([]*model.BibleNote, error)
	Favorites(userID string) ([]*model.BibleNote, error)
	Update(note *model.BibleNote) error
	SetFavorite(userID, noteID string, favorite bool) error
	Delete(userID, noteID string) error
}

type bibleNoteRepository struct {
	db *sqlx.DB
}

func NewBibleNoteRepository(db *sqlx.DB) BibleNoteRepository {
	return &bibleNoteRepository{db: db}
}

func (r *bibleNoteRepository) Create(note *model.BibleNote) error {
	query := `INSERT INTO bible_notes (id, user_id, reference, text, note, favorite, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		note.ID,
		note.UserID,
		note.Reference,
		note.Text,
		note.Note,
		note.Favorite,
		note.CreatedAt,
	)

	return err
}

func (r *bibleNoteRepository) ByID(userID, noteID string) (*model.BibleNote, error) {
	note := &model.BibleNote{}
	query := `SELECT * FROM bible_notes WHERE id = $1 AND user_id = $2`

	err := r.db.Get(note, query, noteID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrBibleNoteNotFound
	}

	return note, err
}

func (r *bibleNoteRepository) Notes(userID string) ([]*model.BibleNote, error) {
	var notes []*model.BibleNote
	query := `SELECT * FROM bible_notes WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *bibleNoteRepository) Favorites(userID string) ([]*model.BibleNote, error) {
	var notes []*model.BibleNote
	query := `SELECT * FROM bible_notes WHERE user_id = $1 AND favorite = TRUE ORDER BY created_at DESC`

	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *bibleNoteRepository) Update(note *model.BibleNote) error {
	query := `UPDATE bible_notes SET reference = $1, text = $2, note = $3 WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, note.Reference, note.Text, note.Note, note.ID, note.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBibleNoteNotFound
	}

	return nil
}

func (r *bibleNoteRepository) SetFavorite(userID, noteID string, favorite bool) error {
	query := `UPDATE bible_notes SET favorite = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, favorite, noteID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBibleNoteNotFound
	}

	return nil
}

func (r *bibleNoteRepository) Delete(userID, noteID string) error {
	query := `DELETE FROM bible_notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, noteID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBibleNoteNotFound
	}

	return nil
}
