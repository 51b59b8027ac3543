package routes

import (
	"net/http"

	"github.com/arborhq/arbor/internal/app"
	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/handler"
	"github.com/arborhq/arbor/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	account := handler.NewAccountHandler(app.UserService, app.AuthService)
	profile := handler.NewProfileHandler(app.ProfileService, app.FileService)
	goal := handler.NewGoalHandler(app.GoalService)
	evaluation := handler.NewEvaluationHandler(app.EvaluationService)
	bible := handler.NewBibleHandler(app.BibleService)
	quote := handler.NewQuoteHandler(app.QuoteService)
	mentorship := handler.NewMentorshipHandler(app.MentorshipService)
	decision := handler.NewDecisionHandler(app.DecisionService)
	meeting := handler.NewMeetingHandler(app.MeetingService)
	dashboard := handler.NewDashboardHandler(app.GoalService, app.BibleService, app.QuoteService, app.MeetingService)
	guide := handler.NewGuideHandler(app.GuideService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// CSRF token bootstrap for API clients
	mux.HandleFunc("GET /api/csrf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"token":"` + ctxkeys.CSRFToken(r.Context()) + `"}`))
	})

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// OAuth
	mux.HandleFunc("GET /auth/google", rateLimiter(auth.GoogleAuth))
	mux.HandleFunc("GET /auth/google/callback", rateLimiter(auth.GoogleCallback))

	// Token Verifications
	mux.HandleFunc("GET /auth/magic-link/{token}", auth.VerifyMagicLink)
	mux.HandleFunc("GET /auth/forgot-password/{token}", auth.VerifyForgotPassword)

	// Auth Actions
	mux.HandleFunc("POST /auth/magic-link", rateLimiter(auth.SendMagicLink))
	mux.HandleFunc("POST /auth/forgot-password", rateLimiter(auth.ForgotPassword))

	// Guides are public content
	mux.HandleFunc("GET /api/guides", guide.List)
	mux.HandleFunc("GET /api/guides/tags", guide.Tags)
	mux.HandleFunc("GET /api/guides/{slug}", guide.Get)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Account (Security & Identity)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(account.Me))
	mux.HandleFunc("POST /api/account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("POST /api/account/password/set", middleware.RequireAuth(account.SetPassword))
	mux.HandleFunc("DELETE /api/account", middleware.RequireAuth(account.DeleteAccount))

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /api/profile/mentor", middleware.RequireAuth(profile.BecomeMentor))
	mux.HandleFunc("POST /api/profile/avatar", middleware.RequireAuth(profile.UploadAvatar))
	mux.HandleFunc("DELETE /api/profile/avatar", middleware.RequireAuth(profile.DeleteAvatar))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Get))

	// Goals
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("PATCH /api/goals/{id}/progress", middleware.RequireAuth(goal.SetProgress))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Action steps
	mux.HandleFunc("POST /api/goals/{id}/steps", middleware.RequireAuth(goal.AddStep))
	mux.HandleFunc("PUT /api/goals/{id}/steps/{stepID}", middleware.RequireAuth(goal.UpdateStep))
	mux.HandleFunc("PATCH /api/goals/{id}/steps/{stepID}/complete", middleware.RequireAuth(goal.SetStepCompleted))
	mux.HandleFunc("DELETE /api/goals/{id}/steps/{stepID}", middleware.RequireAuth(goal.DeleteStep))

	// Evaluations
	mux.HandleFunc("GET /api/goals/{id}/evaluation", middleware.RequireAuth(evaluation.Seed))
	mux.HandleFunc("POST /api/goals/{id}/evaluation", middleware.RequireAuth(evaluation.Submit))
	mux.HandleFunc("GET /api/goals/{id}/evaluation/history", middleware.RequireAuth(evaluation.History))

	// Bible
	mux.HandleFunc("GET /api/bible/daily", middleware.RequireAuth(bible.DailyVerse))
	mux.HandleFunc("GET /api/bible/verse", middleware.RequireAuth(bible.LookupVerse))
	mux.HandleFunc("POST /api/bible/notes", middleware.RequireAuth(bible.CreateNote))
	mux.HandleFunc("GET /api/bible/notes", middleware.RequireAuth(bible.Notes))
	mux.HandleFunc("PUT /api/bible/notes/{id}", middleware.RequireAuth(bible.UpdateNote))
	mux.HandleFunc("PATCH /api/bible/notes/{id}/favorite", middleware.RequireAuth(bible.SetFavorite))
	mux.HandleFunc("DELETE /api/bible/notes/{id}", middleware.RequireAuth(bible.DeleteNote))

	// Quotes
	mux.HandleFunc("GET /api/quotes/daily", middleware.RequireAuth(quote.Daily))
	mux.HandleFunc("POST /api/quotes", middleware.RequireAuth(quote.Save))
	mux.HandleFunc("GET /api/quotes", middleware.RequireAuth(quote.List))
	mux.HandleFunc("DELETE /api/quotes/{id}", middleware.RequireAuth(quote.Delete))

	// Mentor chat
	mux.HandleFunc("GET /api/mentor/chat", middleware.RequireAuth(mentorship.History))
	mux.HandleFunc("POST /api/mentor/chat", middleware.RequireAuth(mentorship.Send))
	mux.HandleFunc("DELETE /api/mentor/chat", middleware.RequireAuth(mentorship.Clear))

	// Decisions
	mux.HandleFunc("POST /api/decisions", middleware.RequireAuth(decision.Create))
	mux.HandleFunc("GET /api/decisions", middleware.RequireAuth(decision.List))
	mux.HandleFunc("GET /api/decisions/{id}", middleware.RequireAuth(decision.Get))
	mux.HandleFunc("PUT /api/decisions/{id}", middleware.RequireAuth(decision.Update))
	mux.HandleFunc("POST /api/decisions/{id}/analyze", middleware.RequireAuth(decision.Analyze))
	mux.HandleFunc("DELETE /api/decisions/{id}", middleware.RequireAuth(decision.Delete))

	// Meetings
	mux.HandleFunc("POST /api/meetings", middleware.RequireAuth(meeting.Schedule))
	mux.HandleFunc("GET /api/meetings", middleware.RequireAuth(meeting.List))
	mux.HandleFunc("PATCH /api/meetings/{id}/status", middleware.RequireAuth(meeting.SetStatus))
	mux.HandleFunc("DELETE /api/meetings/{id}", middleware.RequireAuth(meeting.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (CSRF and OAuth cookies read APP_ENV from it)
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService),
	)
}
