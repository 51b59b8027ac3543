package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
)

func TestDailyQuoteCachesPerDay(t *testing.T) {
	advisor := &stubAdvisor{quote: model.Quote{Text: "Grow where you are planted.", Author: "Unknown"}}
	svc := NewQuoteService(advisor, nil)

	first := svc.DailyQuote(context.Background())
	assert.Equal(t, "Grow where you are planted.", first.Text)

	// Cached: a later advisor change is not visible until tomorrow
	advisor.quote = model.Quote{Text: "Something else"}
	second := svc.DailyQuote(context.Background())
	assert.Equal(t, first, second)
}

func TestDailyQuoteFallbackNotCached(t *testing.T) {
	advisor := &stubAdvisor{err: errors.New("overloaded")}
	svc := NewQuoteService(advisor, nil)

	quote := svc.DailyQuote(context.Background())
	assert.Equal(t, fallbackQuote, quote)

	// Advisor recovers; the fallback must not have been cached
	advisor.err = nil
	advisor.quote = model.Quote{Text: "Fresh quote", Author: "Someone"}
	quote = svc.DailyQuote(context.Background())
	assert.Equal(t, "Fresh quote", quote.Text)
}

func TestQuoteSaveAndDelete(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "Anna", model.RolePlanter)
	svc := NewQuoteService(&stubAdvisor{}, repository.NewQuoteRepository(database))

	saved, err := svc.Save(user.ID, model.Quote{Text: "  Keep going.  ", Author: " Anonymous "})
	require.NoError(t, err)
	assert.Equal(t, "Keep going.", saved.Text)
	assert.Equal(t, "Anonymous", saved.Author)

	quotes, err := svc.SavedQuotes(user.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	require.NoError(t, svc.Delete(user.ID, saved.ID))

	quotes, err = svc.SavedQuotes(user.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	_, err = svc.Save(user.ID, model.Quote{Text: "   "})
	assert.Error(t, err)
}

// slowQuoteAdvisor counts DailyQuote calls and holds each one long enough
// for concurrent callers to pile up.
type slowQuoteAdvisor struct {
	stubAdvisor
	mu    sync.Mutex
	calls int
}

func (s *slowQuoteAdvisor) DailyQuote(ctx context.Context) (model.Quote, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	return s.quote, s.err
}

func TestDailyQuoteConcurrentRequestsCoalesce(t *testing.T) {
	advisor := &slowQuoteAdvisor{stubAdvisor: stubAdvisor{quote: model.Quote{Text: "One fetch", Author: "Unknown"}}}
	svc := NewQuoteService(advisor, nil)

	var wg sync.WaitGroup
	results := make([]model.Quote, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.DailyQuote(context.Background())
		}(i)
	}
	wg.Wait()

	advisor.mu.Lock()
	calls := advisor.calls
	advisor.mu.Unlock()
	assert.Equal(t, 1, calls, "concurrent cache misses share one advisor call")

	for _, quote := range results {
		assert.Equal(t, "One fetch", quote.Text)
	}
}
