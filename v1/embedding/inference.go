package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// InferenceProvider calls an HTTP embedding service that accepts
// {"model": ..., "input": [...]} and answers {"embeddings": [[...], ...]}.
type InferenceProvider struct {
	url          string
	serviceToken string
	httpClient   *http.Client
}

// NewInferenceProvider builds a provider from cfg. The HTTP client timeout is
// the only deadline applied unless the caller's context carries one.
func NewInferenceProvider(cfg Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}
	cfg.ApplyDefaults()

	return &InferenceProvider{
		url:          cfg.Endpoint,
		serviceToken: cfg.ServiceToken,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// Create sends all texts in one request.
func (p *InferenceProvider) Create(ctx context.Context, model string, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}
	if model == "" {
		return nil, fmt.Errorf("inference: model is required")
	}

	reqBody := map[string]any{
		"model": model,
		"input": texts,
	}

	var parsed struct {
		Embeddings [][]float32 `json:"embeddings"`
	}

	if err := p.postJSON(ctx, p.url, reqBody, &parsed); err != nil {
		return nil, err
	}

	return parsed.Embeddings, nil
}
