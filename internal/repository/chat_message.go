package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

type ChatMessageRepository interface {
	Create(message *model.ChatMessage) error
	Messages(userID string, limit int) ([]*model.ChatMessage, error)
	DeleteAll(userID string) error
}

type chatMessageRepository struct {
	db *sqlx.DB
}

func NewChatMessageRepository(db *sqlx.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(message *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, user_id, role, content, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		message.ID,
		message.UserID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)

	return err
}

// Messages returns the user's conversation oldest first. A limit of 0
// returns the full history; otherwise the most recent N messages are
// returned, still in chronological order.
func (r *chatMessageRepository) Messages(userID string, limit int) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage

	if limit <= 0 {
		query := `SELECT * FROM chat_messages WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
		if err := r.db.Select(&messages, query, userID); err != nil {
			return nil, err
		}
		return messages, nil
	}

	query := `SELECT * FROM (
	              SELECT * FROM chat_messages WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2
	          ) recent ORDER BY created_at ASC, id ASC`

	if err := r.db.Select(&messages, query, userID, limit); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *chatMessageRepository) DeleteAll(userID string) error {
	query := `DELETE FROM chat_messages WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}
