package model

import (
	"time"
)

const (
	StepFrequencyOnce    = "once"
	StepFrequencyDaily   = "daily"
	StepFrequencyWeekly  = "weekly"
	StepFrequencyMonthly = "monthly"
)

type ActionStep struct {
	ID              string    `db:"id" json:"id"`
	GoalID          string    `db:"goal_id" json:"goalId"`
	Position        int       `db:"position" json:"position"`
	Text            string    `db:"text" json:"text"`
	Completed       bool      `db:"completed" json:"completed"`
	DueDate         string    `db:"due_date" json:"dueDate"` // YYYY-MM-DD, optional
	Time            string    `db:"time" json:"time"`        // HH:MM, optional
	Days            string    `db:"days" json:"days"`        // e.g. "Mon, Wed, Fri"
	Frequency       string    `db:"frequency" json:"frequency"`
	SuccessCriteria string    `db:"success_criteria" json:"successCriteria"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

func ValidStepFrequency(frequency string) bool {
	switch frequency {
	case StepFrequencyOnce, StepFrequencyDaily, StepFrequencyWeekly, StepFrequencyMonthly:
		return true
	}
	return false
}
