// Package summarizer produces article summaries for verdict responses.
// It ships Claude and OpenAI API clients behind a common Summarizer shape,
// plus a deterministic lead-sentence fallback for when no API key is set.
package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"newstrust/internal/pkg/config"
	"newstrust/internal/resilience/circuitbreaker"
	"newstrust/internal/resilience/retry"
	"newstrust/internal/utils/text"
)

const defaultCharLimit = 900

// ClaudeConfig holds the Claude summarizer settings.
type ClaudeConfig struct {
	// CharacterLimit is the maximum summary length in runes, read from
	// SUMMARIZER_CHAR_LIMIT within [100, 5000].
	CharacterLimit int

	Language  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// LoadClaudeConfig reads SUMMARIZER_CHAR_LIMIT from the environment.
// Unparseable or out-of-range values fall back to the default with a
// warning rather than failing startup.
func LoadClaudeConfig() ClaudeConfig {
	limit := config.LoadInt("SUMMARIZER_CHAR_LIMIT", defaultCharLimit, ValidateCharacterLimit)
	for _, w := range limit.Warnings {
		slog.Warn("Configuration fallback applied", slog.String("warning", w))
	}

	return ClaudeConfig{
		CharacterLimit: limit.Value,
		Language:       "english",
		Model:          string(anthropic.ModelClaudeSonnet4_5_20250929),
		MaxTokens:      1024,
		Timeout:        summarizeTimeout,
	}
}

// Claude summarizes articles through Anthropic's Messages API, wrapped in
// the shared retry policy and a per-provider circuit breaker.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          ClaudeConfig
	metricsRecorder SummaryMetricsRecorder
}

func NewClaude(apiKey string) *Claude {
	cfg := LoadClaudeConfig()

	slog.Info("Initialized Claude summarizer with configuration",
		slog.Int("character_limit", cfg.CharacterLimit),
		slog.String("language", cfg.Language),
		slog.String("model", cfg.Model))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.DefaultConfig("claude-api")),
		retryConfig:     retry.AIAPIConfig(),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize returns an English summary of the given article text.
func (c *Claude) Summarize(ctx context.Context, articleText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	return callWithResilience(ctx, "claude api", c.circuitBreaker, c.retryConfig, func() (string, error) {
		return c.doSummarize(ctx, articleText)
	})
}

func (c *Claude) buildPrompt(body string) string {
	return summaryPrompt(c.config.CharacterLimit, body)
}

// doSummarize is the single API call, without retry or breaker.
func (c *Claude) doSummarize(ctx context.Context, articleText string) (string, error) {
	requestID := uuid.New().String()
	body := clipInput(articleText)

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(body)),
		slog.Int("character_limit", c.config.CharacterLimit))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(c.buildPrompt(body)),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	observeSummary(ctx, c.metricsRecorder, textBlock.Text, c.config.CharacterLimit, duration)
	return textBlock.Text, nil
}
