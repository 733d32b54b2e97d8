package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host      string
	Port      string
	StaticDir string

	// CORS settings
	CORSAllowedOrigins []string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Judgment generation settings
	LLMProvider       string
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIModel       string
	LLMBaseURL        string
	GenerationTimeout time.Duration
	JudgmentGuard     bool

	// Browser settings for the UI smoke check
	HeadlessMode   bool
	UserAgent      string
	BrowserPath    string
	BrowserTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "5000"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/nyaya_mitra.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", ""),
		UserAgent:    getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		BrowserPath:  getEnv("ROD_BROWSER_PATH", ""),
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	var err error
	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	// 0 leaves generation calls bounded only by the transport
	generationTimeout, err := strconv.Atoi(getEnv("GENERATION_TIMEOUT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}
	cfg.GenerationTimeout = time.Duration(generationTimeout) * time.Second

	cfg.JudgmentGuard, err = strconv.ParseBool(getEnv("JUDGMENT_GUARD", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid JUDGMENT_GUARD: %w", err)
	}

	cfg.HeadlessMode = getEnv("HEADLESS_MODE", "true") == "true"

	browserTimeout, err := strconv.Atoi(getEnv("BROWSER_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROWSER_TIMEOUT: %w", err)
	}
	cfg.BrowserTimeout = time.Duration(browserTimeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q (supported: gemini, openai)", c.LLMProvider)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("invalid CACHE_SIZE: must be positive")
	}
	if c.GenerationTimeout < 0 {
		return fmt.Errorf("invalid GENERATION_TIMEOUT: must not be negative")
	}
	return nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// Model returns the model name for the configured provider.
func (c *Config) Model() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
