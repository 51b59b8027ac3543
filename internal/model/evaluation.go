package model

import (
	"fmt"
	"math"
	"time"
)

const (
	EvaluationTypeSelf   = "SELF"
	EvaluationTypeMentor = "MENTOR"
)

// checklistFlagCount is the fixed denominator of the scoring rubric:
// 7 specific + 2 measurable + 2 actionable + 2 realistic + 3 time-bound.
const checklistFlagCount = 16

// EvaluationDetails is the evaluation checklist: a fixed-shape record of 16
// boolean judgments about a goal's quality, grouped by SMARTER dimension.
type EvaluationDetails struct {
	Specific   SpecificChecks   `json:"specific"`
	Measurable MeasurableChecks `json:"measurable"`
	Actionable ActionableChecks `json:"actionable"`
	Realistic  RealisticChecks  `json:"realistic"`
	TimeBound  TimeBoundChecks  `json:"timeBound"`
}

type SpecificChecks struct {
	Who          bool `json:"who"`
	What         bool `json:"what"`
	Where        bool `json:"where"`
	When         bool `json:"when"`
	Why          bool `json:"why"`
	Requirements bool `json:"requirements"`
	Constraints  bool `json:"constraints"`
}

type MeasurableChecks struct {
	Amount    bool `json:"amount"`
	Indicator bool `json:"indicator"`
}

type ActionableChecks struct {
	ClearSteps      bool `json:"clearSteps"`
	ImmediateAction bool `json:"immediateAction"`
}

type RealisticChecks struct {
	Able    bool `json:"able"`
	Willing bool `json:"willing"`
}

type TimeBoundChecks struct {
	Deadline    bool `json:"deadline"`
	TodayAction bool `json:"todayAction"`
	Routine     bool `json:"routine"`
}

// SeedEvaluationDetails initializes a checklist from the goal's current
// contents as a convenience default: text-backed flags are true when the
// field is non-empty, realistic flags carry the goal's booleans, clearSteps
// is true when at least one action step exists. ImmediateAction and
// TodayAction have no source field and always start false: they ask for a
// fresh judgment at evaluation time.
func SeedEvaluationDetails(goal *Goal, steps []*ActionStep) EvaluationDetails {
	return EvaluationDetails{
		Specific: SpecificChecks{
			Who:          goal.SpecificWho != "",
			What:         goal.SpecificWhat != "",
			Where:        goal.SpecificWhere != "",
			When:         goal.SpecificWhen != "",
			Why:          goal.SpecificWhy != "",
			Requirements: goal.SpecificRequirements != "",
			Constraints:  goal.SpecificConstraints != "",
		},
		Measurable: MeasurableChecks{
			Amount:    goal.MeasurableAmount != "",
			Indicator: goal.MeasurableIndicator != "",
		},
		Actionable: ActionableChecks{
			ClearSteps: len(steps) > 0,
		},
		Realistic: RealisticChecks{
			Able:    goal.RealisticAble,
			Willing: goal.RealisticWilling,
		},
		TimeBound: TimeBoundChecks{
			Deadline: goal.TimeBoundDue != "",
			Routine:  goal.TimeBoundRoutine != "",
		},
	}
}

func (d *EvaluationDetails) flags() [checklistFlagCount]bool {
	return [checklistFlagCount]bool{
		d.Specific.Who, d.Specific.What, d.Specific.Where, d.Specific.When,
		d.Specific.Why, d.Specific.Requirements, d.Specific.Constraints,
		d.Measurable.Amount, d.Measurable.Indicator,
		d.Actionable.ClearSteps, d.Actionable.ImmediateAction,
		d.Realistic.Able, d.Realistic.Willing,
		d.TimeBound.Deadline, d.TimeBound.TodayAction, d.TimeBound.Routine,
	}
}

// TrueCount returns how many of the 16 flags are set.
func (d *EvaluationDetails) TrueCount() int {
	count := 0
	for _, flag := range d.flags() {
		if flag {
			count++
		}
	}
	return count
}

// Score converts the checklist into a 0-100 percentage, rounded half-up.
func (d *EvaluationDetails) Score() int {
	return int(math.Round(float64(d.TrueCount()) / checklistFlagCount * 100))
}

// Toggle flips exactly one flag, addressed by category and field name as the
// client sends them. Unknown names are an error; all other flags are
// untouched.
func (d *EvaluationDetails) Toggle(category, field string) error {
	flag, err := d.flag(category, field)
	if err != nil {
		return err
	}
	*flag = !*flag
	return nil
}

func (d *EvaluationDetails) flag(category, field string) (*bool, error) {
	switch category {
	case "specific":
		switch field {
		case "who":
			return &d.Specific.Who, nil
		case "what":
			return &d.Specific.What, nil
		case "where":
			return &d.Specific.Where, nil
		case "when":
			return &d.Specific.When, nil
		case "why":
			return &d.Specific.Why, nil
		case "requirements":
			return &d.Specific.Requirements, nil
		case "constraints":
			return &d.Specific.Constraints, nil
		}
	case "measurable":
		switch field {
		case "amount":
			return &d.Measurable.Amount, nil
		case "indicator":
			return &d.Measurable.Indicator, nil
		}
	case "actionable":
		switch field {
		case "clearSteps":
			return &d.Actionable.ClearSteps, nil
		case "immediateAction":
			return &d.Actionable.ImmediateAction, nil
		}
	case "realistic":
		switch field {
		case "able":
			return &d.Realistic.Able, nil
		case "willing":
			return &d.Realistic.Willing, nil
		}
	case "timeBound":
		switch field {
		case "deadline":
			return &d.TimeBound.Deadline, nil
		case "todayAction":
			return &d.TimeBound.TodayAction, nil
		case "routine":
			return &d.TimeBound.Routine, nil
		}
	}
	return nil, fmt.Errorf("unknown checklist flag %s.%s", category, field)
}

func ValidEvaluationType(evalType string) bool {
	return evalType == EvaluationTypeSelf || evalType == EvaluationTypeMentor
}

// EvaluationLog is one immutable scoring event in a goal's evaluation
// history. Score and details are captured at submission time and never
// recomputed, so the history stays truthful even after the goal is edited.
type EvaluationLog struct {
	ID        string            `db:"id" json:"id"`
	GoalID    string            `db:"goal_id" json:"goalId"`
	Seq       int               `db:"seq" json:"-"`
	Type      string            `db:"type" json:"type"`
	Score     int               `db:"score" json:"score"`
	Details   EvaluationDetails `db:"-" json:"details"`
	Feedback  string            `db:"feedback" json:"feedback"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
}
