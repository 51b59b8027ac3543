package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

var ErrInvalidMeetingStatus = errors.New("invalid meeting status")

type MeetingService struct {
	repo         repository.MeetingRepository
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	emailService *EmailService
}

func NewMeetingService(
	repo repository.MeetingRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	emailService *EmailService,
) *MeetingService {
	return &MeetingService{
		repo:         repo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		emailService: emailService,
	}
}

// Schedule books a mentor meeting and sends a confirmation email.
func (s *MeetingService) Schedule(userID, date, timeOfDay, topic string) (*model.MentorMeeting, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid meeting date (want YYYY-MM-DD): %w", err)
	}

	now := time.Now()
	meeting := &model.MentorMeeting{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Time:      strings.TrimSpace(timeOfDay),
		Topic:     strings.TrimSpace(topic),
		Status:    model.MeetingStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	// Confirmation email is best effort
	user, err := s.userRepo.ByID(userID)
	if err == nil {
		name := "there"
		if profile, err := s.profileRepo.ByUserID(userID); err == nil && profile.Name != "" {
			name = profile.Name
		}
		if err := s.emailService.SendMeetingScheduledEmail(user.Email, name, meeting.Date, meeting.Time, meeting.Topic); err != nil {
			slog.Warn("failed to send meeting confirmation", "error", err, "user_id", userID)
		}
	}

	slog.Info("mentor meeting scheduled", "user_id", userID, "date", date)
	return meeting, nil
}

func (s *MeetingService) Meetings(userID string) ([]*model.MentorMeeting, error) {
	return s.repo.Meetings(userID)
}

func (s *MeetingService) Upcoming(userID string) ([]*model.MentorMeeting, error) {
	today := time.Now().Format("2006-01-02")
	return s.repo.Upcoming(userID, today)
}

// SetStatus moves a meeting between scheduled, completed, and cancelled.
func (s *MeetingService) SetStatus(userID, meetingID, status string) (*model.MentorMeeting, error) {
	switch status {
	case model.MeetingStatusScheduled, model.MeetingStatusCompleted, model.MeetingStatusCancelled:
	default:
		return nil, ErrInvalidMeetingStatus
	}

	if err := s.repo.UpdateStatus(userID, meetingID, status); err != nil {
		return nil, err
	}

	return s.repo.ByID(userID, meetingID)
}

func (s *MeetingService) Delete(userID, meetingID string) error {
	return s.repo.Delete(userID, meetingID)
}
