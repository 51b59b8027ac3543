package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrDecisionNotFound = errors.New("decision not found")
)

type DecisionRepository interface {
	Create(decision *model.Decision) error
	ByID(userID, decisionID string) (*model.Decision, error)
	Decisions(userID string) ([]*model.Decision, error)
	Update(decision *model.Decision) error
	Delete(userID, decisionID string) error
}

type decisionRepository struct {
	db *sqlx.DB
}

func NewDecisionRepository(db *sqlx.DB) DecisionRepository {
	return &decisionRepository{db: db}
}

// decisionRow stores the worksheet answers as a JSON text column.
type decisionRow struct {
	model.Decision
	DataJSON string `db:"data"`
}

func (row *decisionRow) toModel() (*model.Decision, error) {
	decision := row.Decision
	if err := json.Unmarshal([]byte(row.DataJSON), &decision.Data); err != nil {
		return nil, fmt.Errorf("decoding decision data: %w", err)
	}
	if decision.Data == nil {
		decision.Data = map[string]string{}
	}
	return &decision, nil
}

func marshalDecisionData(decision *model.Decision) (string, error) {
	data := decision.Data
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding decision data: %w", err)
	}
	return string(raw), nil
}

func (r *decisionRepository) Create(decision *model.Decision) error {
	data, err := marshalDecisionData(decision)
	if err != nil {
		return err
	}

	query := `INSERT INTO decisions (id, user_id, title, step, data, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(query,
		decision.ID,
		decision.UserID,
		decision.Title,
		decision.Step,
		data,
		decision.CreatedAt,
		decision.UpdatedAt,
	)

	return err
}

func (r *decisionRepository) ByID(userID, decisionID string) (*model.Decision, error) {
	row := &decisionRow{}
	query := `SELECT * FROM decisions WHERE id = $1 AND user_id = $2`

	err := r.db.Get(row, query, decisionID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrDecisionNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.toModel()
}

func (r *decisionRepository) Decisions(userID string) ([]*model.Decision, error) {
	var rows []*decisionRow
	query := `SELECT * FROM decisions WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	decisions := make([]*model.Decision, 0, len(rows))
	for _, row := range rows {
		decision, err := row.toModel()
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}

	return decisions, nil
}

func (r *decisionRepository) Update(decision *model.Decision) error {
	data, err := marshalDecisionData(decision)
	if err != nil {
		return err
	}

	query := `UPDATE decisions SET title = $1, step = $2, data = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		decision.Title,
		decision.Step,
		data,
		time.Now(),
		decision.ID,
		decision.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDecisionNotFound
	}

	return nil
}

func (r *decisionRepository) Delete(userID, decisionID string) error {
	query := `DELETE FROM decisions WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, decisionID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDecisionNotFound
	}

	return nil
}
