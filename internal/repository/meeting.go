package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/model"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
)

type MeetingRepository interface {
	Create(meeting *model.MentorMeeting) error
	ByID(userID, meetingID string) (*model.MentorMeeting, error)
	Meetings(userID string) ([]*model.MentorMeeting, error)
	Upcoming(userID, fromDate string) ([]*model.MentorMeeting, error)
	UpdateStatus(userID, meetingID, status string) error
	Delete(userID, meetingID string) error
}

type meetingRepository struct {
	db *sqlx.DB
}

func NewMeetingRepository(db *sqlx.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(meeting *model.MentorMeeting) error {
	query := `INSERT INTO meetings (id, user_id, date, time, topic, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		meeting.ID,
		meeting.UserID,
		meeting.Date,
		meeting.Time,
		meeting.Topic,
		meeting.Status,
		meeting.CreatedAt,
		meeting.UpdatedAt,
	)

	return err
}

func (r *meetingRepository) ByID(userID, meetingID string) (*model.MentorMeeting, error) {
	meeting := &model.MentorMeeting{}
	query := `SELECT * FROM meetings WHERE id = $1 AND user_id = $2`

	err := r.db.Get(meeting, query, meetingID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrMeetingNotFound
	}

	return meeting, err
}

func (r *meetingRepository) Meetings(userID string) ([]*model.MentorMeeting, error) {
	var meetings []*model.MentorMeeting
	query := `SELECT * FROM meetings WHERE user_id = $1 ORDER BY date DESC, time DESC`

	err := r.db.Select(&meetings, query, userID)
	if err != nil {
		return nil, err
	}

	return meetings, nil
}

// Upcoming returns scheduled meetings on or after fromDate (YYYY-MM-DD),
// soonest first. Date strings sort lexicographically.
func (r *meetingRepository) Upcoming(userID, fromDate string) ([]*model.MentorMeeting, error) {
	var meetings []*model.MentorMeeting
	query := `SELECT * FROM meetings
	          WHERE user_id = $1 AND date >= $2 AND status = $3
	          ORDER BY date ASC, time ASC`

	err := r.db.Select(&meetings, query, userID, fromDate, model.MeetingStatusScheduled)
	if err != nil {
		return nil, err
	}

	return meetings, nil
}

func (r *meetingRepository) UpdateStatus(userID, meetingID, status string) error {
	query := `UPDATE meetings SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, status, time.Now(), meetingID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

func (r *meetingRepository) Delete(userID, meetingID string) error {
	query := `DELETE FROM meetings WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, meetingID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMeetingNotFound
	}

	return nil
}
