package embedding

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks imagesearch/internal/embedding Provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnavailable indicates the embedding service could not produce a vector.
var ErrUnavailable = errors.New("embedding service unavailable")

// Provider computes a fixed-length feature vector for an image.
// Implementations wrap an external embedding model service.
type Provider interface {
	// EmbedImage returns the embedding vector for the given image bytes.
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
}

// Client is a Provider backed by an HTTP embedding service exposing a
// CLIP-style image embeddings endpoint.
type Client struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // Expected vector size for validation
	client       *http.Client
}

// NewClient creates a new embedding client.
// expectedSize is the expected vector size (from VECTOR_SIZE config).
// All embeddings returned by EmbedImage are validated against this size.
func NewClient(baseURL, apiKey, model string, expectedSize int) *Client {
	return &Client{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// embedRequest represents the request payload for the image embeddings API.
type embedRequest struct {
	Model string `json:"model"`
	Image string `json:"image"` // base64-encoded image bytes
}

// embedData represents a single embedding in the response.
type embedData struct {
	Embedding []float64 `json:"embedding"`
}

// embedResponse represents the response from the embeddings API.
type embedResponse struct {
	Data []embedData `json:"data"`
}

// EmbedImage generates an embedding for the given image bytes.
// Validates that the returned vector matches the expected size.
func (c *Client) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	url := fmt.Sprintf("%s/v1/embeddings/image", c.BaseURL)

	payload := embedRequest{
		Model: c.Model,
		Image: base64.StdEncoding.EncodeToString(image),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: bad status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embedResp.Data) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embedResp.Data))
	}

	data := embedResp.Data[0]
	if len(data.Embedding) != c.ExpectedSize {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(data.Embedding), c.ExpectedSize)
	}

	// Convert []float64 to []float32
	vec := make([]float32, len(data.Embedding))
	for i, v := range data.Embedding {
		vec[i] = float32(v)
	}

	return vec, nil
}
