package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/ai"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

const (
	// fallbackAdvice is stored as the assistant reply when the advisor fails.
	fallbackAdvice = "I'm having trouble connecting right now, but I'm here for you."

	// chatContextLimit bounds how much history is sent to the advisor.
	chatContextLimit = 20
)

type MentorshipService struct {
	advisor     ai.Advisor
	chatRepo    repository.ChatMessageRepository
	profileRepo repository.ProfileRepository
}

func NewMentorshipService(
	advisor ai.Advisor,
	chatRepo repository.ChatMessageRepository,
	profileRepo repository.ProfileRepository,
) *MentorshipService {
	return &MentorshipService{
		advisor:     advisor,
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
	}
}

// History returns the user's conversation oldest first. An empty history is
// seeded with a greeting so the conversation never starts blank.
func (s *MentorshipService) History(userID string) ([]*model.ChatMessage, error) {
	messages, err := s.chatRepo.Messages(userID, 0)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		greeting, err := s.seedGreeting(userID)
		if err != nil {
			return nil, err
		}
		messages = []*model.ChatMessage{greeting}
	}

	return messages, nil
}

func (s *MentorshipService) seedGreeting(userID string) (*model.ChatMessage, error) {
	name := ""
	if profile, err := s.profileRepo.ByUserID(userID); err == nil {
		name = profile.Name
	}

	text := "Hi! I'm your mentor. What's on your mind today?"
	if name != "" {
		text = fmt.Sprintf("Hi %s! I'm your mentor. What's on your mind today?", name)
	}

	greeting := &model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      model.ChatRoleAssistant,
		Content:   text,
		CreatedAt: time.Now(),
	}

	if err := s.chatRepo.Create(greeting); err != nil {
		return nil, fmt.Errorf("failed to seed greeting: %w", err)
	}

	return greeting, nil
}

// Send stores the user's message, asks the advisor for a reply, and stores
// that too. Advisor failures become a stored apology rather than an error,
// so the conversation always moves forward.
func (s *MentorshipService) Send(ctx context.Context, userID, message string) (*model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	history, err := s.chatRepo.Messages(userID, chatContextLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	userMessage := &model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      model.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.Create(userMessage); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	name := ""
	if profile, err := s.profileRepo.ByUserID(userID); err == nil {
		name = profile.Name
	}

	advice, err := s.advisor.MentorshipAdvice(ctx, name, history, message)
	if err != nil {
		slog.Warn("mentorship advice unavailable, using fallback", "error", err, "user_id", userID)
		advice = fallbackAdvice
	}

	reply := &model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      model.ChatRoleAssistant,
		Content:   advice,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.Create(reply); err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}

	return reply, nil
}

// Clear deletes the user's conversation.
func (s *MentorshipService) Clear(userID string) error {
	return s.chatRepo.DeleteAll(userID)
}
