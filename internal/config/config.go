// ABOUTME: Centralized configuration for scraping, indexing, and chat
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultUserAgent mimics a desktop browser so restaurant sites serve full pages
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrMissingAPIKey is returned when an LLM-backed command has no token
var ErrMissingAPIKey = errors.New("HF_TOKEN (or OPENAI_API_KEY) is not set")

// Config holds all configuration for menuchat
type Config struct {
	// Generation service settings
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Temperature    float64
	MaxTokens      int

	// Knowledge base settings
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	DataFile     string
	IndexPath    string

	// Scraper settings
	FetchTimeout time.Duration
	DelayMin     time.Duration
	DelayMax     time.Duration
	UserAgent    string

	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	apiKey := os.Getenv("HF_TOKEN")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := &Config{
		APIKey:         apiKey,
		BaseURL:        getEnv("MENUCHAT_BASE_URL", "https://router.huggingface.co/v1"),
		ChatModel:      getEnv("MENUCHAT_CHAT_MODEL", "mistralai/Mistral-7B-Instruct-v0.3"),
		EmbeddingModel: getEnv("MENUCHAT_EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		Timeout:        getEnvDuration("MENUCHAT_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("MENUCHAT_MAX_RETRIES", 0),
		RetryDelay:     getEnvDuration("MENUCHAT_RETRY_DELAY", 2*time.Second),
		Temperature:    getEnvFloat("MENUCHAT_TEMPERATURE", 0.5),
		MaxTokens:      getEnvInt("MENUCHAT_MAX_TOKENS", 512),
		ChunkSize:      getEnvInt("MENUCHAT_CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("MENUCHAT_CHUNK_OVERLAP", 100),
		TopK:           getEnvInt("MENUCHAT_TOP_K", 4),
		DataFile:       getEnv("MENUCHAT_DATA_FILE", "data/restaurant_data.json"),
		IndexPath:      getEnv("MENUCHAT_INDEX_PATH", "vectorstore/menu_index"),
		FetchTimeout:   getEnvDuration("MENUCHAT_FETCH_TIMEOUT", 10*time.Second),
		DelayMin:       getEnvDuration("MENUCHAT_DELAY_MIN", 2*time.Second),
		DelayMax:       getEnvDuration("MENUCHAT_DELAY_MAX", 4*time.Second),
		UserAgent:      getEnv("MENUCHAT_USER_AGENT", DefaultUserAgent),
		LogLevel:       getEnv("MENUCHAT_LOG_LEVEL", "info"),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges; it does not require an API key
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("MENUCHAT_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("MENUCHAT_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MENUCHAT_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("MENUCHAT_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("MENUCHAT_CHUNK_OVERLAP must be 0 to chunk size-1, got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("MENUCHAT_TOP_K must be positive, got %d", c.TopK)
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("MENUCHAT_DELAY_MIN/MAX must satisfy 0 <= min <= max, got %v/%v", c.DelayMin, c.DelayMax)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("MENUCHAT_FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout)
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey when no token is configured
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
