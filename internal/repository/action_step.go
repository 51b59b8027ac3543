package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrActionStepNotFound = errors.New("action step not found")
)

type ActionStepRepository interface {
	Create(step *model.ActionStep) error
	ByID(goalID, stepID string) (*model.ActionStep, error)
	Steps(goalID string) ([]*model.ActionStep, error)
	Update(step *model.ActionStep) error
	SetCompleted(goalID, stepID string, completed bool) error
	Delete(goalID, stepID string) error
	NextPosition(goalID string) (int, error)
}

type actionStepRepository struct {
	db *sqlx.DB
}

func NewActionStepRepository(db *sqlx.DB) ActionStepRepository {
	return &actionStepRepository{db: db}
}

func (r *actionStepRepository) Create(step *model.ActionStep) error {
	query := `INSERT INTO action_steps (id, goal_id, position, text, completed, due_date, time, days, frequency, success_criteria, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		step.ID,
		step.GoalID,
		step.Position,
		step.Text,
		step.Completed,
		step.DueDate,
		step.Time,
		step.Days,
		step.Frequency,
		step.SuccessCriteria,
		step.CreatedAt,
	)

	return err
}

func (r *actionStepRepository) ByID(goalID, stepID string) (*model.ActionStep, error) {
	step := &model.ActionStep{}
	query := `SELECT * FROM action_steps WHERE id = $1 AND goal_id = $2`

	err := r.db.Get(step, query, stepID, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrActionStepNotFound
	}

	return step, err
}

func (r *actionStepRepository) Steps(goalID string) ([]*model.ActionStep, error) {
	var steps []*model.ActionStep
	query := `SELECT * FROM action_steps WHERE goal_id = $1 ORDER BY position ASC, created_at ASC`

	err := r.db.Select(&steps, query, goalID)
	if err != nil {
		return nil, err
	}

	return steps, nil
}

func (r *actionStepRepository) Update(step *model.ActionStep) error {
	query := `UPDATE action_steps
	          SET text = $1, due_date = $2, time = $3, days = $4, frequency = $5, success_criteria = $6
	          WHERE id = $7 AND goal_id = $8`

	result, err := r.db.Exec(query,
		step.Text,
		step.DueDate,
		step.Time,
		step.Days,
		step.Frequency,
		step.SuccessCriteria,
		step.ID,
		step.GoalID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrActionStepNotFound
	}

	return nil
}

func (r *actionStepRepository) SetCompleted(goalID, stepID string, completed bool) error {
	query := `UPDATE action_steps SET completed = $1 WHERE id = $2 AND goal_id = $3`

	result, err := r.db.Exec(query, completed, stepID, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrActionStepNotFound
	}

	return nil
}

func (r *actionStepRepository) Delete(goalID, stepID string) error {
	query := `DELETE FROM action_steps WHERE id = $1 AND goal_id = $2`
	result, err := r.db.Exec(query, stepID, goalID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrActionStepNotFound
	}

	return nil
}

func (r *actionStepRepository) NextPosition(goalID string) (int, error) {
	var max sql.NullInt64
	query := `SELECT MAX(position) FROM action_steps WHERE goal_id = $1`

	err := r.db.QueryRow(query, goalID).Scan(&max)
	if err != nil {
		return 0, err
	}

	if !max.Valid {
		return 1, nil
	}

	return int(max.Int64) + 1, nil
}
