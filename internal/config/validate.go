package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateUpstreams(); err != nil {
		return err
	}

	return c.validateCORS()
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if dbHost != "localhost" && dbHost != "127.0.0.1" && dbHost != "::1" {
		sslmode := dbURL.Query().Get("sslmode")
		if sslmode == "disable" {
			return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
		}
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Allow loopback addresses for local deployments and 0.0.0.0/:: for
	// containerized deployments where the network boundary is enforced
	// externally (e.g. Docker, Kubernetes).
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

// validateUpstreams checks the embedding and tag extraction endpoints.
// Both upstreams may be remote (the models are hosted outside this
// service) but must be well-formed http(s) URLs.
func (c *Config) validateUpstreams() error {
	for name, raw := range map[string]string{
		"OLLAMA_URL": c.OllamaURL,
		"LLM_URL":    c.LLMURL,
	} {
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", name, err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s scheme must be http or https, got %q", name, u.Scheme)
		}

		if u.Hostname() == "" {
			return fmt.Errorf("%s must include a host", name)
		}
	}

	if c.EmbeddingModel == "" {
		return fmt.Errorf("EMBEDDING_MODEL is required")
	}

	if c.LLMModel == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}
