package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	fileService *FileService
}

func NewProfileService(profileRepo repository.ProfileRepository, fileService *FileService) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		fileService: fileService,
	}
}

// ByUserID returns the profile with its avatar URL populated.
func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	avatar, err := s.fileService.Avatar("user", userID)
	if err == nil {
		profile.AvatarURL = s.fileService.URL(avatar)
	}

	return profile, nil
}

type ProfileUpdate struct {
	Name     string
	Surname  string
	Birthday string
	Career   string
	Bio      string
}

func (s *ProfileService) Update(userID string, update ProfileUpdate) (*model.Profile, error) {
	name := strings.TrimSpace(update.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Name = name
	profile.Surname = strings.TrimSpace(update.Surname)
	profile.Birthday = strings.TrimSpace(update.Birthday)
	profile.Career = strings.TrimSpace(update.Career)
	profile.Bio = strings.TrimSpace(update.Bio)

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.ByUserID(userID)
}

// BecomeMentor upgrades a planter profile to the mentor role. The upgrade is
// free and idempotent.
func (s *ProfileService) BecomeMentor(userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.IsMentor() {
		return profile, nil
	}

	if err := s.profileRepo.UpdateRole(userID, model.RoleMentor); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	slog.Info("profile upgraded to mentor", "user_id", userID)
	return s.ByUserID(userID)
}
