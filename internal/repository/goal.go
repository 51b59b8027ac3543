package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortProgress = "progress"
	GoalSortTitle    = "title"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	ByIDAny(goalID string) (*model.Goal, error)
	Goals(userID, sortBy string) ([]*model.Goal, error)
	CountUserGoals(userID string) (int, error)
	Update(goal *model.Goal) error
	UpdateProgress(userID, goalID string, progress int) error
	UpdateTargetScore(goalID string, targetScore *int) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (
	              id, user_id, title, category,
	              specific_what, specific_who, specific_where, specific_when, specific_why,
	              specific_requirements, specific_constraints,
	              measurable_amount, measurable_indicator,
	              realistic_able, realistic_willing, realistic_notes,
	              time_bound_start, time_bound_due, time_bound_routine,
	              evaluation_frequency, target_score, progress,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Category,
		goal.SpecificWhat,
		goal.SpecificWho,
		goal.SpecificWhere,
		goal.SpecificWhen,
		goal.SpecificWhy,
		goal.SpecificRequirements,
		goal.SpecificConstraints,
		goal.MeasurableAmount,
		goal.MeasurableIndicator,
		goal.RealisticAble,
		goal.RealisticWilling,
		goal.RealisticNotes,
		goal.TimeBoundStart,
		goal.TimeBoundDue,
		goal.TimeBoundRoutine,
		goal.EvaluationFrequency,
		goal.TargetScore,
		goal.Progress,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

// ByIDAny looks a goal up without an owner check. Callers must verify
// access themselves; mentors reviewing a planter's goal go through here.
func (r *goalRepository) ByIDAny(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	// Validate and build ORDER BY clause
	var orderBy string
	switch sortBy {
	case GoalSortProgress:
		orderBy = "ORDER BY progress DESC, updated_at DESC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountUserGoals(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, category = $2,
	              specific_what = $3, specific_who = $4, specific_where = $5,
	              specific_when = $6, specific_why = $7,
	              specific_requirements = $8, specific_constraints = $9,
	              measurable_amount = $10, measurable_indicator = $11,
	              realistic_able = $12, realistic_willing = $13, realistic_notes = $14,
	              time_bound_start = $15, time_bound_due = $16, time_bound_routine = $17,
	              evaluation_frequency = $18, updated_at = $19
	          WHERE id = $20 AND user_id = $21`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Category,
		goal.SpecificWhat,
		goal.SpecificWho,
		goal.SpecificWhere,
		goal.SpecificWhen,
		goal.SpecificWhy,
		goal.SpecificRequirements,
		goal.SpecificConstraints,
		goal.MeasurableAmount,
		goal.MeasurableIndicator,
		goal.RealisticAble,
		goal.RealisticWilling,
		goal.RealisticNotes,
		goal.TimeBoundStart,
		goal.TimeBoundDue,
		goal.TimeBoundRoutine,
		goal.EvaluationFrequency,
		time.Now(),
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) UpdateProgress(userID, goalID string, progress int) error {
	query := `UPDATE goals SET progress = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, progress, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// UpdateTargetScore skips the owner check; the target score is only set
// through the evaluation flow, which has already resolved access.
func (r *goalRepository) UpdateTargetScore(goalID string, targetScore *int) error {
	query := `UPDATE goals SET target_score = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, targetScore, time.Now(), goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
