// Package service provides the enrichment and search business logic for the
// matjar catalog core.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const embeddingTimeout = 30 * time.Second

// Circuit breaker configuration.
const (
	cbFailureThreshold = 5
	cbCooldown         = 30 * time.Second
)

// Circuit breaker states.
const (
	cbClosed   = iota // Normal operation.
	cbOpen            // Fail fast.
	cbHalfOpen        // Probe with one request.
)

// ErrCircuitOpen is returned when the circuit breaker is open and requests
// are being rejected without calling the embedding service.
var ErrCircuitOpen = errors.New("embedding circuit breaker is open")

// EmbeddingService generates vector embeddings via an Ollama-compatible API.
// There is deliberately no retry and no default vector: a failed call
// surfaces to the caller, which decides whether the whole run dies.
type EmbeddingService struct {
	ollamaURL  string
	model      string
	dimensions int
	client     *http.Client

	mu              sync.Mutex
	cbState         int
	cbFailures      int
	cbLastFailureAt time.Time
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Embeddings json.RawMessage `json:"embeddings"`
	Embedding  json.RawMessage `json:"embedding"`
}

// NewEmbeddingService creates an EmbeddingService for the given endpoint,
// model, and expected vector dimensionality.
func NewEmbeddingService(ollamaURL, model string, dimensions int) *EmbeddingService {
	return &EmbeddingService{
		ollamaURL:  ollamaURL,
		model:      model,
		dimensions: dimensions,
		client:     &http.Client{Timeout: embeddingTimeout},
		cbState:    cbClosed,
	}
}

// Generate produces a vector embedding for the given text.
// It uses a circuit breaker to fail fast when the embedding service is down.
func (s *EmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if err := s.cbAllow(); err != nil {
		return nil, err
	}

	result, err := s.doGenerate(ctx, text)
	if err != nil {
		s.cbRecordFailure()

		return nil, err
	}

	s.cbRecordSuccess()

	return result, nil
}

func (s *EmbeddingService) doGenerate(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: s.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ollamaURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embed API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain body so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // best-effort drain before close.
		return nil, fmt.Errorf("embed API returned status %d", resp.StatusCode)
	}

	var result embeddingResponse

	limited := io.LimitReader(resp.Body, 10<<20) // 10 MB
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}

	raw := result.Embeddings
	if len(raw) == 0 {
		raw = result.Embedding
	}

	vector, err := flattenEmbedding(raw)
	if err != nil {
		return nil, err
	}

	if len(vector) != s.dimensions {
		return nil, fmt.Errorf("embed API returned %d dimensions, want %d", len(vector), s.dimensions)
	}

	return vector, nil
}

// flattenEmbedding normalizes the upstream payload shape once at the
// boundary. The contract is "a flat vector, possibly wrapped in a
// single-element outer sequence"; callers never see the nesting.
func flattenEmbedding(raw json.RawMessage) ([]float32, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("embed API returned no embedding")
	}

	var nested [][]float32
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("embed API returned empty embedding")
		}

		return nested[0], nil
	}

	var flat []float32
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decoding embedding vector: %w", err)
	}

	if len(flat) == 0 {
		return nil, fmt.Errorf("embed API returned empty embedding")
	}

	return flat, nil
}

// cbAllow checks whether the circuit breaker permits a request.
// In closed state, all requests pass. In open state, requests are rejected
// until the cooldown expires, at which point we transition to half-open.
// In half-open state, one probe request is allowed.
func (s *EmbeddingService) cbAllow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.cbState {
	case cbClosed:
		return nil
	case cbOpen:
		if time.Since(s.cbLastFailureAt) >= cbCooldown {
			s.cbState = cbHalfOpen

			return nil
		}

		return ErrCircuitOpen
	case cbHalfOpen:
		// Already probing, reject additional requests.
		return ErrCircuitOpen
	}

	return nil
}

// cbRecordSuccess records a successful call. In half-open state this closes
// the circuit breaker, restoring normal operation.
func (s *EmbeddingService) cbRecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cbFailures = 0
	s.cbState = cbClosed
}

// cbRecordFailure records a failed call. After reaching the failure threshold
// the circuit breaker transitions to open state.
func (s *EmbeddingService) cbRecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cbFailures++
	s.cbLastFailureAt = time.Now()

	if s.cbFailures >= cbFailureThreshold || s.cbState == cbHalfOpen {
		s.cbState = cbOpen
	}
}
