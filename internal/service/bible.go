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

// fallbackVerseText is served when the advisor cannot fetch a verse.
const fallbackVerseText = "Could not retrieve verse at this time."

type BibleService struct {
	advisor ai.Advisor
	repo    repository.BibleNoteRepository
}

func NewBibleService(advisor ai.Advisor, repo repository.BibleNoteRepository) *BibleService {
	return &BibleService{
		advisor: advisor,
		repo:    repo,
	}
}

// LookupVerse fetches the text of a verse reference through the advisor.
// Failures return static placeholder text rather than an error.
func (s *BibleService) LookupVerse(ctx context.Context, reference string) string {
	text, err := s.advisor.BibleVerse(ctx, reference)
	if err != nil {
		slog.Warn("verse lookup failed, using fallback", "error", err, "reference", reference)
		return fallbackVerseText
	}
	return text
}

// DailyVerse returns an encouraging verse of the day.
func (s *BibleService) DailyVerse(ctx context.Context) string {
	return s.LookupVerse(ctx, "")
}

// CreateNote saves a scripture note. When text is empty the verse text is
// fetched through the advisor.
func (s *BibleService) CreateNote(ctx context.Context, userID, reference, text, note string) (*model.BibleNote, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("verse reference is required")
	}

	if strings.TrimSpace(text) == "" {
		text = s.LookupVerse(ctx, reference)
	}

	bibleNote := &model.BibleNote{
		ID:        uuid.New().String(),
		UserID:    userID,
		Reference: reference,
		Text:      text,
		Note:      note,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(bibleNote); err != nil {
		return nil, fmt.Errorf("failed to create bible note: %w", err)
	}

	return bibleNote, nil
}

func (s *BibleService) Notes(userID string) ([]*model.BibleNote, error) {
	return s.repo.Notes(userID)
}

func (s *BibleService) Favorites(userID string) ([]*model.BibleNote, error) {
	return s.repo.Favorites(userID)
}

func (s *BibleService) UpdateNote(userID, noteID, reference, text, note string) (*model.BibleNote, error) {
	existing, err := s.repo.ByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("verse reference is required")
	}

	existing.Reference = reference
	existing.Text = text
	existing.Note = note

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *BibleService) SetFavorite(userID, noteID string, favorite bool) error {
	return s.repo.SetFavorite(userID, noteID, favorite)
}

func (s *BibleService) DeleteNote(userID, noteID string) error {
	return s.repo.Delete(userID, noteID)
}

func (s *BibleService) CountNotes(userID string) (int, error) {
	notes, err := s.repo.Notes(userID)
	if err != nil {
		return 0, err
	}
	return len(notes), nil
}
