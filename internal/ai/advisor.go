package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"

	"github.com/arborhq/arbor/internal/config"
	"github.com/arborhq/arbor/internal/model"
)

// ErrUnavailable is returned when the advisor has no API key configured.
// Callers are expected to fall back to static content.
var ErrUnavailable = errors.New("ai advisor not configured")

// Advisor is the AI boundary: every feature that talks to the model goes
// through one of these methods, so services can be tested with a stub.
type Advisor interface {
	DailyQuote(ctx context.Context) (model.Quote, error)
	BibleVerse(ctx context.Context, reference string) (string, error)
	MentorshipAdvice(ctx context.Context, name string, history []*model.ChatMessage, message string) (string, error)
	AnalyzeDecision(ctx context.Context, decision *model.Decision) (string, error)
}

type advisor struct {
	client  *anthropic.Client
	model   string
	enabled bool
	retry   retryConfig

	// sem caps concurrent requests across all users.
	sem *semaphore.Weighted
}

func NewAdvisor(cfg *config.Config) Advisor {
	a := &advisor{
		model:   cfg.AnthropicModel,
		enabled: cfg.AnthropicAPIKey != "",
		retry: retryConfig{
			MaxRetries:        cfg.AdvisorMaxRetries,
			InitialBackoff:    defaultInitialBackoff,
			MaxBackoff:        defaultMaxBackoff,
			BackoffMultiplier: defaultBackoffMultiplier,
			Timeout:           cfg.AdvisorTimeout,
		},
		sem: semaphore.NewWeighted(int64(cfg.AdvisorMaxInFlight)),
	}

	if a.enabled {
		client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		a.client = &client
	} else {
		slog.Warn("ai advisor disabled, consumers will use static fallbacks",
			"hint", "set ANTHROPIC_API_KEY to enable")
	}

	return a
}

const quotePrompt = `Give me one short motivational quote about personal growth, ` +
	`perseverance, or purposeful living. Respond with exactly one line in the ` +
	`format: quote text|author name. No quotation marks, no extra commentary.`

func (a *advisor) DailyQuote(ctx context.Context) (model.Quote, error) {
	text, err := a.complete(ctx, "daily-quote", 256, quotePrompt)
	if err != nil {
		return model.Quote{}, err
	}

	quote, author, found := strings.Cut(strings.TrimSpace(text), "|")
	if !found {
		return model.Quote{}, fmt.Errorf("unexpected quote format: %q", text)
	}

	return model.Quote{
		Text:   strings.TrimSpace(quote),
		Author: strings.TrimSpace(author),
	}, nil
}

const dailyVersePrompt = `Share one encouraging Bible verse about growth, hope, or ` +
	`perseverance. Respond with the verse text followed by the reference in ` +
	`parentheses, on a single line. No extra commentary.`

// BibleVerse returns the text of the referenced verse, or an encouraging
// verse of the day when reference is empty.
func (a *advisor) BibleVerse(ctx context.Context, reference string) (string, error) {
	prompt := dailyVersePrompt
	if reference != "" {
		prompt = fmt.Sprintf(`Quote the Bible verse %s (ESV or similar modern `+
			`translation). Respond with only the verse text on a single line, `+
			`no reference, no commentary.`, reference)
	}

	text, err := a.complete(ctx, "bible-verse", 256, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func mentorSystemPrompt(name string) string {
	who := "the user"
	if name != "" {
		who = name
	}
	return fmt.Sprintf(`You are a warm, encouraging personal-development mentor `+
		`speaking with %s. You help with goal setting, habits, motivation, and `+
		`life decisions. Be supportive but honest, keep replies conversational `+
		`and under 150 words, and ask a follow-up question when it helps the `+
		`person reflect.`, who)
}

func (a *advisor) MentorshipAdvice(ctx context.Context, name string, history []*model.ChatMessage, message string) (string, error) {
	if !a.enabled {
		return "", ErrUnavailable
	}

	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, m := range history {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == model.ChatRoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	var reply string
	err := a.retryWithBackoff(ctx, "mentorship-advice", func(attemptCtx context.Context) error {
		response, err := a.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: 1024,
			System: []anthropic.TextBlockParam{
				{Text: mentorSystemPrompt(name)},
			},
			Messages: messages,
		})
		if err != nil {
			return err
		}
		reply = responseText(response)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

func (a *advisor) AnalyzeDecision(ctx context.Context, decision *model.Decision) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I am working through a decision: %s\n\n", decision.Title)
	for key, value := range decision.Data {
		if value == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", key, value)
	}
	sb.WriteString("\nGive me a brief, balanced analysis of this decision: the strongest " +
		"considerations for and against, anything I seem to be overlooking, and one " +
		"concrete next step. Keep it under 200 words.")

	text, err := a.complete(ctx, "decision-analysis", 1024, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// complete runs a single-prompt completion with retries.
func (a *advisor) complete(ctx context.Context, operation string, maxTokens int64, prompt string) (string, error) {
	if !a.enabled {
		return "", ErrUnavailable
	}

	var text string
	err := a.retryWithBackoff(ctx, operation, func(attemptCtx context.Context) error {
		response, err := a.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return err
		}
		text = responseText(response)
		return nil
	})

	return text, err
}

func responseText(response *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
