package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenRepository stores single-use tokens for magic links and password
// resets.
type TokenRepository interface {
	Create(token *model.Token) error
	ConsumeToken(token string) (*model.Token, error)
	DeleteByUserAndType(userID, tokenType string) error
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO tokens (id, user_id, type, token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		token.ID, token.UserID, token.Type, token.Token, token.ExpiresAt, token.CreatedAt,
	)
	return err
}

// ConsumeToken marks the token used and returns it in one statement, so
// concurrent verification attempts cannot both succeed. Expired or already
// used tokens come back as ErrTokenNotFound.
func (r *tokenRepository) ConsumeToken(token string) (*model.Token, error) {
	now := time.Now()

	var t model.Token
	err := r.db.Get(&t,
		`UPDATE tokens SET used_at = $1 WHERE token = $2 AND used_at IS NULL AND expires_at > $3 RETURNING *`,
		now, token, now,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	_, err := r.db.Exec(
		`DELETE FROM tokens WHERE user_id = $1 AND type = $2 AND used_at IS NULL`,
		userID, tokenType,
	)
	return err
}
