package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrEvaluationLogNotFound = errors.New("evaluation log not found")
)

type EvaluationLogRepository interface {
	Create(log *model.EvaluationLog) error
	ByGoal(goalID string) ([]*model.EvaluationLog, error)
	Latest(goalID string) (*model.EvaluationLog, error)
	CountByGoal(goalID string) (int, error)
}

type evaluationLogRepository struct {
	db *sqlx.DB
}

func NewEvaluationLogRepository(db *sqlx.DB) EvaluationLogRepository {
	return &evaluationLogRepository{db: db}
}

// evaluationLogRow carries the checklist as a JSON text column; the nested
// details struct does not map onto flat columns.
type evaluationLogRow struct {
	model.EvaluationLog
	DetailsJSON string `db:"details"`
}

func (row *evaluationLogRow) toModel() (*model.EvaluationLog, error) {
	log := row.EvaluationLog
	if err := json.Unmarshal([]byte(row.DetailsJSON), &log.Details); err != nil {
		return nil, fmt.Errorf("decoding evaluation details: %w", err)
	}
	return &log, nil
}

func (r *evaluationLogRepository) Create(log *model.EvaluationLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		return fmt.Errorf("encoding evaluation details: %w", err)
	}

	// seq is a per-goal insertion counter; timestamps alone cannot break
	// ties between submissions landing in the same instant.
	query := `INSERT INTO evaluation_logs (id, goal_id, seq, type, score, details, feedback, created_at)
	          VALUES ($1, $2, (SELECT COALESCE(MAX(seq), 0) + 1 FROM evaluation_logs WHERE goal_id = $3), $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(query,
		log.ID,
		log.GoalID,
		log.GoalID,
		log.Type,
		log.Score,
		string(details),
		log.Feedback,
		log.CreatedAt,
	)

	return err
}

// ByGoal returns the goal's evaluation history newest first.
func (r *evaluationLogRepository) ByGoal(goalID string) ([]*model.EvaluationLog, error) {
	var rows []*evaluationLogRow
	query := `SELECT * FROM evaluation_logs WHERE goal_id = $1 ORDER BY seq DESC`

	err := r.db.Select(&rows, query, goalID)
	if err != nil {
		return nil, err
	}

	logs := make([]*model.EvaluationLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toModel()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, nil
}

func (r *evaluationLogRepository) Latest(goalID string) (*model.EvaluationLog, error) {
	row := &evaluationLogRow{}
	query := `SELECT * FROM evaluation_logs WHERE goal_id = $1 ORDER BY seq DESC LIMIT 1`

	err := r.db.Get(row, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrEvaluationLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.toModel()
}

func (r *evaluationLogRepository) CountByGoal(goalID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM evaluation_logs WHERE goal_id = $1`
	err := r.db.QueryRow(query, goalID).Scan(&count)
	return count, err
}
