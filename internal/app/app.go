package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/arborhq/arbor/internal/ai"
	"github.com/arborhq/arbor/internal/config"
	"github.com/arborhq/arbor/internal/db"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
	"github.com/arborhq/arbor/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	UserService       *service.UserService
	ProfileService    *service.ProfileService
	EmailService      *service.EmailService
	FileService       *service.FileService
	GoalService       *service.GoalService
	EvaluationService *service.EvaluationService
	BibleService      *service.BibleService
	QuoteService      *service.QuoteService
	MentorshipService *service.MentorshipService
	DecisionService   *service.DecisionService
	MeetingService    *service.MeetingService
	GuideService      *service.GuideService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	fileRepository := repository.NewFileRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	actionStepRepository := repository.NewActionStepRepository(database)
	evaluationLogRepository := repository.NewEvaluationLogRepository(database)
	bibleNoteRepository := repository.NewBibleNoteRepository(database)
	quoteRepository := repository.NewQuoteRepository(database)
	chatMessageRepository := repository.NewChatMessageRepository(database)
	decisionRepository := repository.NewDecisionRepository(database)
	meetingRepository := repository.NewMeetingRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// AI advisor backs quotes, verse lookup, mentor chat, and decision
	// analysis. It degrades to static fallbacks when no API key is set.
	advisor := ai.NewAdvisor(cfg)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenPasswordResetExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository, fileService, emailService)
	profileService := service.NewProfileService(profileRepository, fileService)
	goalService := service.NewGoalService(goalRepository, actionStepRepository)
	evaluationService := service.NewEvaluationService(goalRepository, actionStepRepository, evaluationLogRepository, profileRepository)
	bibleService := service.NewBibleService(advisor, bibleNoteRepository)
	quoteService := service.NewQuoteService(advisor, quoteRepository)
	mentorshipService := service.NewMentorshipService(advisor, chatMessageRepository, profileRepository)
	decisionService := service.NewDecisionService(advisor, decisionRepository)
	meetingService := service.NewMeetingService(meetingRepository, userRepository, profileRepository, emailService)
	guideService := service.NewGuideService(cfg.ContentPath)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		UserService:       userService,
		ProfileService:    profileService,
		EmailService:      emailService,
		FileService:       fileService,
		GoalService:       goalService,
		EvaluationService: evaluationService,
		BibleService:      bibleService,
		QuoteService:      quoteService,
		MentorshipService: mentorshipService,
		DecisionService:   decisionService,
		MeetingService:    meetingService,
		GuideService:      guideService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
