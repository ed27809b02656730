package openai

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lumenote/grounding/internal/domain"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.AdaEmbeddingV2
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from ada-002
	DefaultEmbeddingDimensions = 1536
)

var (
	// ErrNoAPIKey is returned when the OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
	// ErrNoEmbeddingData is returned when the provider response carries no embedding
	ErrNoEmbeddingData = domain.NewEmbeddingError("provider returned no embedding data", nil)
	// ErrInconsistentDimensions is returned when an embedding's dimensionality
	// differs from the expected model dimensionality or from prior calls
	ErrInconsistentDimensions = domain.NewEmbeddingError("embedding has inconsistent dimensions", nil)
)

// EmbeddingAPI defines the interface for the raw embedding call
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// Client wraps the OpenAI API client. Each GenerateEmbedding call issues
// exactly one provider request: no retry, no backoff, no caching. Callers
// that need resilience wrap the client.
type Client struct {
	api        EmbeddingAPI
	dimensions int
}

type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIAdapter(apiKey string, model openai.EmbeddingModel) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateEmbeddings calls the OpenAI API to create a single embedding
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoEmbeddingData
	}

	return resp.Data[0].Embedding, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
// EmbeddingDimensions of 0 means the first successful response fixes the
// dimensionality for the rest of the run.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions < 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	if dimensions == 0 && cfg.EmbeddingModel == "" {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel),
		dimensions: dimensions,
	}
}

// NewClientFromEnv creates a new OpenAI client using the OPENAI_API_KEY environment variable
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// GenerateEmbedding generates an embedding for the given text. The result is
// validated for dimensional consistency: a mismatched vector is rejected,
// never truncated or zero-padded.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	embedding, err := c.api.CreateEmbeddings(ctx, text)
	if err != nil {
		var derr *domain.DomainError
		if errors.As(err, &derr) {
			return nil, err
		}
		return nil, domain.NewEmbeddingError("failed to create embedding", err)
	}

	if len(embedding) == 0 {
		return nil, ErrNoEmbeddingData
	}

	if c.dimensions == 0 {
		// first call of the run latches the model's dimensionality
		c.dimensions = len(embedding)
	}
	if len(embedding) != c.dimensions {
		return nil, ErrInconsistentDimensions
	}

	return embedding, nil
}

// Dimensions returns the expected embedding dimensionality, or 0 if no call
// has fixed it yet.
func (c *Client) Dimensions() int {
	return c.dimensions
}
