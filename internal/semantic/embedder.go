// Package semantic provides sentence embeddings and similarity matching
// between job requirements and resume fragments.
package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Embedder converts a batch of texts into fixed-length vectors. The same
// input text always produces the same vector for a given model instance.
// Empty input yields empty output.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelUnavailableError indicates the embedding service could not be
// reached or failed to produce vectors. It is fatal for the session;
// there is no fallback scoring path.
type ModelUnavailableError struct {
	Message string
	Cause   error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding model unavailable: %s", e.Message)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// OllamaEmbedder produces embeddings via a local Ollama server.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// DefaultEmbeddingModel is a small sentence-embedding model suitable for
// requirement/fragment matching.
const DefaultEmbeddingModel = "all-minilm"

// NewOllamaEmbedder creates an embedder backed by an Ollama server.
// An empty baseURL defaults to the local server.
func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Ping verifies the embedding server is reachable. Called at session
// start so model unavailability fails fast instead of mid-evaluation.
func (e *OllamaEmbedder) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/api/tags", nil)
	if err != nil {
		return &ModelUnavailableError{Message: "building ping request", Cause: err}
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &ModelUnavailableError{Message: "embedding server unreachable", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &ModelUnavailableError{
			Message: fmt.Sprintf("embedding server returned status %d", resp.StatusCode),
		}
	}
	return nil
}

// Embed produces one vector per input text. All vectors in a batch must
// share the model's fixed dimensionality; a dimension mismatch or an
// empty vector is reported as a ModelUnavailableError.
func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		if len(vector) == 0 {
			return nil, &ModelUnavailableError{Message: "model returned empty embedding"}
		}
		if len(vectors) > 0 && len(vector) != len(vectors[0]) {
			return nil, &ModelUnavailableError{
				Message: fmt.Sprintf("inconsistent embedding dimensions: %d vs %d", len(vector), len(vectors[0])),
			}
		}
		vectors = append(vectors, vector)
	}

	return vectors, nil
}

func (e *OllamaEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &ModelUnavailableError{Message: "embedding request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &ModelUnavailableError{
			Message: fmt.Sprintf("embedding request returned status %d", resp.StatusCode),
		}
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ModelUnavailableError{Message: "failed to decode embedding response", Cause: err}
	}

	return parsed.Embedding, nil
}
