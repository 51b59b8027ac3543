package model

import (
	"time"
)

const (
	GoalCategoryPersonal   = "personal"
	GoalCategorySpiritual  = "spiritual"
	GoalCategoryCareer     = "career"
	GoalCategoryHealth     = "health"
	GoalCategoryLifeSkills = "life_skills"
)

const (
	EvaluationFrequencyWeekly    = "weekly"
	EvaluationFrequencyMonthly   = "monthly"
	EvaluationFrequencyQuarterly = "quarterly"
)

// Goal is a planter's tracked objective, structured along the SMARTER rubric:
// Specific, Measurable, Actionable, Realistic, Time-bound, with the
// evaluate/revise part carried by the goal's evaluation history.
type Goal struct {
	ID       string `db:"id" json:"id"`
	UserID   string `db:"user_id" json:"userId"`
	Title    string `db:"title" json:"title"`
	Category string `db:"category" json:"category"`

	// Specific: who/what/where/when/why plus requirements and constraints
	SpecificWhat         string `db:"specific_what" json:"specificWhat"`
	SpecificWho          string `db:"specific_who" json:"specificWho"`
	SpecificWhere        string `db:"specific_where" json:"specificWhere"`
	SpecificWhen         string `db:"specific_when" json:"specificWhen"`
	SpecificWhy          string `db:"specific_why" json:"specificWhy"`
	SpecificRequirements string `db:"specific_requirements" json:"specificRequirements"`
	SpecificConstraints  string `db:"specific_constraints" json:"specificConstraints"`

	MeasurableAmount    string `db:"measurable_amount" json:"measurableAmount"`
	MeasurableIndicator string `db:"measurable_indicator" json:"measurableIndicator"`

	RealisticAble    bool   `db:"realistic_able" json:"realisticAble"`
	RealisticWilling bool   `db:"realistic_willing" json:"realisticWilling"`
	RealisticNotes   string `db:"realistic_notes" json:"realisticNotes"`

	TimeBoundStart   string `db:"time_bound_start" json:"timeBoundStart"` // YYYY-MM-DD
	TimeBoundDue     string `db:"time_bound_due" json:"timeBoundDue"`     // YYYY-MM-DD
	TimeBoundRoutine string `db:"time_bound_routine" json:"timeBoundRoutine"`

	EvaluationFrequency string `db:"evaluation_frequency" json:"evaluationFrequency"`
	TargetScore         *int   `db:"target_score" json:"targetScore,omitempty"`

	// Progress is set by the user (0-100), not derived from action steps.
	Progress  int       `db:"progress" json:"progress"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func ValidGoalCategory(category string) bool {
	switch category {
	case GoalCategoryPersonal, GoalCategorySpiritual, GoalCategoryCareer,
		GoalCategoryHealth, GoalCategoryLifeSkills:
		return true
	}
	return false
}

func ValidEvaluationFrequency(frequency string) bool {
	switch frequency {
	case EvaluationFrequencyWeekly, EvaluationFrequencyMonthly, EvaluationFrequencyQuarterly:
		return true
	}
	return false
}
