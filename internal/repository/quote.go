package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
)

type QuoteRepository interface {
	Create(quote *model.SavedQuote) error
	Quotes(userID string) ([]*model.SavedQuote, error)
	Delete(userID, quoteID string) error
}

type quoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *model.SavedQuote) error {
	query := `INSERT INTO saved_quotes (id, user_id, text, author, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		quote.ID,
		quote.UserID,
		quote.Text,
		quote.Author,
		quote.CreatedAt,
	)

	return err
}

func (r *quoteRepository) Quotes(userID string) ([]*model.SavedQuote, error) {
	var quotes []*model.SavedQuote
	query := `SELECT * FROM saved_quotes WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&quotes, query, userID)
	if err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) Delete(userID, quoteID string) error {
	query := `DELETE FROM saved_quotes WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, quoteID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrQuoteNotFound
	}

	return nil
}
