package model

import "time"

// DecisionStepCount is the number of steps in the guided decision process.
const DecisionStepCount = 7

// Decision is a guided decision-making worksheet. Data holds the free-form
// answers keyed by prompt name; the shape is owned by the client.
type Decision struct {
	ID        string            `db:"id" json:"id"`
	UserID    string            `db:"user_id" json:"userId"`
	Title     string            `db:"title" json:"title"`
	Step      int               `db:"step" json:"step"` // 1..DecisionStepCount
	Data      map[string]string `db:"-" json:"data"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `db:"updated_at" json:"updatedAt"`
}
