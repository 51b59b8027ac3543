package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/arborhq/arbor/internal/ai"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

// fallbackQuote is served whenever the advisor is unavailable or errors.
var fallbackQuote = model.Quote{
	Text:   "The creation of a thousand forests is in one acorn.",
	Author: "Ralph Waldo Emerson",
}

type QuoteService struct {
	advisor ai.Advisor
	repo    repository.QuoteRepository

	mu        sync.Mutex
	cached    model.Quote
	cachedDay string
	flight    singleflight.Group
}

func NewQuoteService(advisor ai.Advisor, repo repository.QuoteRepository) *QuoteService {
	return &QuoteService{
		advisor: advisor,
		repo:    repo,
	}
}

// DailyQuote returns today's quote, fetching from the advisor at most once
// per calendar day. Advisor failures fall back to a static quote and are
// never surfaced to the caller; fallbacks are not cached so a later request
// can still pick up a fresh quote.
func (s *QuoteService) DailyQuote(ctx context.Context) model.Quote {
	today := time.Now().Format("2006-01-02")

	s.mu.Lock()
	if s.cachedDay == today {
		quote := s.cached
		s.mu.Unlock()
		return quote
	}
	s.mu.Unlock()

	// The advisor call happens outside the lock; concurrent cache misses
	// for the same day coalesce into one fetch.
	v, err, _ := s.flight.Do(today, func() (any, error) {
		quote, err := s.advisor.DailyQuote(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cached = quote
		s.cachedDay = today
		s.mu.Unlock()

		return quote, nil
	})
	if err != nil {
		slog.Warn("daily quote unavailable, using fallback", "error", err)
		return fallbackQuote
	}

	return v.(model.Quote)
}

// Save bookmarks a quote for the user.
func (s *QuoteService) Save(userID string, quote model.Quote) (*model.SavedQuote, error) {
	text := strings.TrimSpace(quote.Text)
	if text == "" {
		return nil, fmt.Errorf("quote text is required")
	}

	saved := &model.SavedQuote{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Author:    strings.TrimSpace(quote.Author),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(saved); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return saved, nil
}

func (s *QuoteService) SavedQuotes(userID string) ([]*model.SavedQuote, error) {
	return s.repo.Quotes(userID)
}

func (s *QuoteService) Delete(userID, quoteID string) error {
	return s.repo.Delete(userID, quoteID)
}
