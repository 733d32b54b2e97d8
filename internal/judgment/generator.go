package judgment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generator turns case facts into judgment text.
type Generator interface {
	// Name identifies the provider and model.
	Name() string

	// Generate returns the model output unmodified.
	Generate(ctx context.Context, title, parties, description string) (string, error)
}

// Config holds provider settings.
type Config struct {
	// Provider name: "gemini" or "openai"
	Provider string

	Model  string
	APIKey string

	// BaseURL overrides the provider endpoint
	BaseURL string

	// Timeout bounds one generation call; zero means no limit
	Timeout time.Duration
}

// NewGenerator creates the generator named by cfg.Provider.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return NewGeminiGenerator(ctx, cfg)
	case "openai":
		return NewOpenAIGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai)", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
