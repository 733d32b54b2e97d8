package judgment

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator calls the Gemini generateContent API.
type GeminiGenerator struct {
	client *genai.Client
	cfg    Config
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, cfg: cfg}, nil
}

func (g *GeminiGenerator) Name() string {
	return fmt.Sprintf("gemini:%s", g.cfg.Model)
}

// Generate sends the judgment prompt and returns the response text.
func (g *GeminiGenerator) Generate(ctx context.Context, title, parties, description string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	prompt := BuildPrompt(title, parties, description)

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no response text from Gemini")
	}

	return text, nil
}
