package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailsWithTrueCount(n int) EvaluationDetails {
	var d EvaluationDetails
	order := [][2]string{
		{"specific", "who"}, {"specific", "what"}, {"specific", "where"},
		{"specific", "when"}, {"specific", "why"}, {"specific", "requirements"},
		{"specific", "constraints"},
		{"measurable", "amount"}, {"measurable", "indicator"},
		{"actionable", "clearSteps"}, {"actionable", "immediateAction"},
		{"realistic", "able"}, {"realistic", "willing"},
		{"timeBound", "deadline"}, {"timeBound", "todayAction"}, {"timeBound", "routine"},
	}
	for i := 0; i < n; i++ {
		if err := d.Toggle(order[i][0], order[i][1]); err != nil {
			panic(err)
		}
	}
	return d
}

func TestEvaluationDetailsScore(t *testing.T) {
	tests := []struct {
		trueCount int
		want      int
	}{
		{0, 0},
		{2, 13},
		{5, 31},
		{6, 38},
		{8, 50},
		{10, 63},
		{12, 75},
		{14, 88},
		{16, 100},
	}

	for _, tt := range tests {
		d := detailsWithTrueCount(tt.trueCount)
		assert.Equal(t, tt.trueCount, d.TrueCount())
		assert.Equal(t, tt.want, d.Score(), "score for %d flags", tt.trueCount)
	}
}

func TestEvaluationDetailsToggle(t *testing.T) {
	var d EvaluationDetails

	require.NoError(t, d.Toggle("specific", "who"))
	assert.True(t, d.Specific.Who)
	assert.Equal(t, 1, d.TrueCount())

	// Toggling twice restores the original state
	require.NoError(t, d.Toggle("specific", "who"))
	assert.False(t, d.Specific.Who)
	assert.Equal(t, 0, d.TrueCount())
}

func TestEvaluationDetailsToggleUnknownFlag(t *testing.T) {
	var d EvaluationDetails

	assert.Error(t, d.Toggle("specific", "bogus"))
	assert.Error(t, d.Toggle("bogus", "who"))
	assert.Equal(t, 0, d.TrueCount(), "failed toggle must not change any flag")
}

func TestSeedEvaluationDetails(t *testing.T) {
	goal := &Goal{
		ID:               "g1",
		Title:            "Run a marathon",
		SpecificWhat:     "Finish a full marathon",
		SpecificWhy:      "Prove I can commit to something hard",
		MeasurableAmount: "42.2 km",
		RealisticAble:    true,
		RealisticWilling: false,
		TimeBoundDue:     "2026-10-01",
	}
	steps := []*ActionStep{{ID: "s1", GoalID: "g1", Text: "Sign up for a race", CreatedAt: time.Now()}}

	d := SeedEvaluationDetails(goal, steps)

	assert.True(t, d.Specific.What)
	assert.True(t, d.Specific.Why)
	assert.False(t, d.Specific.Who)
	assert.False(t, d.Specific.Where)
	assert.True(t, d.Measurable.Amount)
	assert.False(t, d.Measurable.Indicator)
	assert.True(t, d.Actionable.ClearSteps)
	assert.True(t, d.Realistic.Able)
	assert.False(t, d.Realistic.Willing)
	assert.True(t, d.TimeBound.Deadline)
	assert.False(t, d.TimeBound.Routine)

	// Fresh-judgment flags never seed true
	assert.False(t, d.Actionable.ImmediateAction)
	assert.False(t, d.TimeBound.TodayAction)
}

func TestSeedEvaluationDetailsEmptyGoal(t *testing.T) {
	goal := &Goal{ID: "g1", Title: "Untitled"}

	d := SeedEvaluationDetails(goal, nil)

	assert.Equal(t, 0, d.TrueCount())
	assert.Equal(t, 0, d.Score())
}
