package model

import "time"

const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

type MentorMeeting struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Time      string    `db:"time" json:"time"` // HH:MM
	Topic     string    `db:"topic" json:"topic"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
