package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"newstrust/internal/resilience/circuitbreaker"
	"newstrust/internal/resilience/retry"
	"newstrust/internal/utils/text"
)

// OpenAIConfig holds the OpenAI summarizer settings. Unlike the Claude
// loader it fails closed: a bad SUMMARIZER_CHAR_LIMIT aborts construction
// instead of silently summarizing at the wrong length.
type OpenAIConfig struct {
	CharacterLimit int
	Language       string
	Model          string
	MaxTokens      int
	Timeout        time.Duration
}

func (c *OpenAIConfig) GetCharacterLimit() int {
	return c.CharacterLimit
}

// Validate reports whether the configuration is usable.
func (c *OpenAIConfig) Validate() error {
	if err := ValidateCharacterLimit(c.CharacterLimit); err != nil {
		return fmt.Errorf("invalid character limit: %w", err)
	}
	if c.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadOpenAIConfig reads SUMMARIZER_CHAR_LIMIT from the environment and
// returns an error when it cannot be parsed or falls outside [100, 5000].
func LoadOpenAIConfig() (*OpenAIConfig, error) {
	charLimit := defaultCharLimit
	if envLimit := os.Getenv("SUMMARIZER_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid SUMMARIZER_CHAR_LIMIT format: %s: %w", envLimit, err)
		}
		if err := ValidateCharacterLimit(parsed); err != nil {
			return nil, fmt.Errorf("SUMMARIZER_CHAR_LIMIT out of valid range: %w", err)
		}
		charLimit = parsed
	}

	cfg := &OpenAIConfig{
		CharacterLimit: charLimit,
		Language:       "english",
		Model:          openai.GPT3Dot5Turbo,
		MaxTokens:      1024,
		Timeout:        summarizeTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid OpenAI configuration: %w", err)
	}
	return cfg, nil
}

// OpenAI summarizes articles through the chat completions API, wrapped in
// the shared retry policy and a per-provider circuit breaker.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          SummarizerConfig
	metricsRecorder SummaryMetricsRecorder
}

func NewOpenAI(apiKey string, cfg SummarizerConfig) *OpenAI {
	slog.Info("Initialized OpenAI summarizer with configuration",
		slog.Int("character_limit", cfg.GetCharacterLimit()))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.DefaultConfig("openai-api")),
		retryConfig:     retry.AIAPIConfig(),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize returns an English summary of the given article text.
func (o *OpenAI) Summarize(ctx context.Context, articleText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	return callWithResilience(ctx, "openai api", o.circuitBreaker, o.retryConfig, func() (string, error) {
		return o.doSummarize(ctx, articleText)
	})
}

func (o *OpenAI) buildPrompt(body string) string {
	return summaryPrompt(o.config.GetCharacterLimit(), body)
}

// doSummarize is the single API call, without retry or breaker.
func (o *OpenAI) doSummarize(ctx context.Context, articleText string) (string, error) {
	body := clipInput(articleText)

	slog.InfoContext(ctx, "Starting summarization",
		slog.Int("input_length", text.CountRunes(body)),
		slog.Int("character_limit", o.config.GetCharacterLimit()))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: o.buildPrompt(body),
		}},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	summary := resp.Choices[0].Message.Content
	observeSummary(ctx, o.metricsRecorder, summary, o.config.GetCharacterLimit(), duration)
	return summary, nil
}
