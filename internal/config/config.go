// Package config provides environment-driven configuration for the matjar
// search service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	Port        string
	ListenHost  string
	CORSOrigins []string

	// Embedding upstream (Ollama-compatible /api/embed).
	OllamaURL           string
	EmbeddingModel      string
	EmbeddingDimensions int

	// Tag extraction upstream (OpenAI-compatible chat completions).
	LLMURL   string
	LLMModel string
	LLMKey   Secret

	LogLevel string

	EnrichWorkers   int
	EnrichQueueSize int

	// KeywordFallback enables keyword-only ranking when the embedding
	// service is down at query time. Off by default: search fails loudly
	// so callers can distinguish "no matches" from "search broken".
	KeywordFallback bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     Secret(envOrDefault("DATABASE_URL", "")),
		Port:            envOrDefault("PORT", "3040"),
		ListenHost:      envOrDefault("LISTEN_HOST", "127.0.0.1"),
		OllamaURL:       envOrDefault("OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel:  envOrDefault("EMBEDDING_MODEL", "all-minilm:l6-v2"),
		LLMURL:          envOrDefault("LLM_URL", "http://localhost:11434/v1"),
		LLMModel:        envOrDefault("LLM_MODEL", "qwen2.5:7b-instruct"),
		LLMKey:          Secret(envOrDefault("LLM_API_KEY", "none")),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		KeywordFallback: envOrDefault("SEARCH_KEYWORD_FALLBACK", "false") == "true",
	}

	dims, err := strconv.Atoi(envOrDefault("EMBEDDING_DIMENSIONS", "384"))
	if err != nil || dims < 1 || dims > 4096 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be an integer between 1 and 4096")
	}
	cfg.EmbeddingDimensions = dims

	workers, err := strconv.Atoi(envOrDefault("ENRICH_WORKERS", "4"))
	if err != nil || workers < 1 || workers > 16 {
		return nil, fmt.Errorf("ENRICH_WORKERS must be an integer between 1 and 16")
	}
	cfg.EnrichWorkers = workers

	queueSize, err := strconv.Atoi(envOrDefault("ENRICH_QUEUE_SIZE", "1000"))
	if err != nil || queueSize < 1 {
		return nil, fmt.Errorf("ENRICH_QUEUE_SIZE must be a positive integer")
	}
	cfg.EnrichQueueSize = queueSize

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
