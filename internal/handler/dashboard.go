package handler

import (
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type DashboardHandler struct {
	goalService    *service.GoalService
	bibleService   *service.BibleService
	quoteService   *service.QuoteService
	meetingService *service.MeetingService
}

func NewDashboardHandler(goalService *service.GoalService, bibleService *service.BibleService, quoteService *service.QuoteService, meetingService *service.MeetingService) *DashboardHandler {
	return &DashboardHandler{
		goalService:    goalService,
		bibleService:   bibleService,
		quoteService:   quoteService,
		meetingService: meetingService,
	}
}

// Get assembles the dashboard summary: goal counts, note count, today's
// quote, and upcoming meetings. Partial failures degrade to zero values
// rather than failing the whole page.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID, repository.GoalSortRecent)
	if err != nil {
		slog.Error("failed to load goals for dashboard", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	completed := 0
	for _, goal := range goals {
		if goal.Progress == 100 {
			completed++
		}
	}

	noteCount, err := h.bibleService.CountNotes(user.ID)
	if err != nil {
		slog.Warn("failed to count bible notes for dashboard", "error", err, "user_id", user.ID)
	}

	upcoming, err := h.meetingService.Upcoming(user.ID)
	if err != nil {
		slog.Warn("failed to load upcoming meetings for dashboard", "error", err, "user_id", user.ID)
	}

	// Goals are already sorted most recently updated first
	recent := goals
	if len(recent) > 3 {
		recent = recent[:3]
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"goals": map[string]int{
			"total":      len(goals),
			"completed":  completed,
			"inProgress": len(goals) - completed,
		},
		"noteCount":        noteCount,
		"quote":            h.quoteService.DailyQuote(r.Context()),
		"upcomingMeetings": upcoming,
		"recentGoals":      recent,
	})
}
