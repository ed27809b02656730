package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenote/grounding/internal/telemetry"
)

// RetrievedChunk is a chunk returned from a nearest-neighbor query.
// ChunkIndex is -1 when the stored record carried no index.
type RetrievedChunk struct {
	Text       string
	Source     string
	ChunkIndex int
	Distance   float32
}

// RetrievalResult carries the assembled context string plus the ranked
// chunks it was built from, so callers can display citations or debug
// ranking.
type RetrievalResult struct {
	Context string
	Chunks  []*RetrievedChunk
}

// ChunkSearcher defines the store interface used by retrieval. Results come
// back ordered ascending by cosine distance; that ordering is authoritative.
type ChunkSearcher interface {
	QueryNearest(ctx context.Context, embedding []float32, k int) ([]*RetrievedChunk, error)
}

// RetrieverConfig controls retrieval defaults.
type RetrieverConfig struct {
	// K is the number of nearest chunks requested when the caller passes 0.
	K int
	// MinChars drops any retrieved chunk shorter than this. Indexed chunks
	// are expected to satisfy it already; the re-check protects against
	// store entries written by a different pipeline version.
	MinChars int
}

// DefaultRetrieverConfig returns the default retrieval configuration.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{
		K:        8,
		MinChars: 80,
	}
}

// Retriever turns a question into a ranked, citation-annotated context
// string backed by the vector store.
type Retriever struct {
	store    ChunkSearcher
	embedder EmbeddingClient
	cfg      RetrieverConfig
}

// NewRetriever creates a Retriever with default configuration.
func NewRetriever(store ChunkSearcher, embedder EmbeddingClient) *Retriever {
	return NewRetrieverWithConfig(store, embedder, DefaultRetrieverConfig())
}

// NewRetrieverWithConfig creates a Retriever with explicit configuration.
func NewRetrieverWithConfig(store ChunkSearcher, embedder EmbeddingClient, cfg RetrieverConfig) *Retriever {
	if cfg.K <= 0 {
		cfg.K = DefaultRetrieverConfig().K
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
	}
}

// Retrieve embeds the question, queries the store for the k nearest chunks
// and assembles the context string. k <= 0 uses the configured default.
// Retrieval is a single blocking embed-then-query round trip; failures
// propagate to the caller rather than producing a partial context.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) (*RetrievalResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "retriever.retrieve")
	defer span.End()

	if k <= 0 {
		k = r.cfg.K
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	candidates, err := r.store.QueryNearest(ctx, embedding, k)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	chunks := make([]*RetrievedChunk, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || len(c.Text) < r.cfg.MinChars {
			continue
		}
		chunks = append(chunks, c)
	}

	return &RetrievalResult{
		Context: assembleContext(chunks),
		Chunks:  chunks,
	}, nil
}

// assembleContext renders each chunk as a citation-headed block and joins
// the blocks with a blank line. The citation index is the 1-based rank.
func assembleContext(chunks []*RetrievedChunk) string {
	blocks := make([]string, 0, len(chunks))
	for i, c := range chunks {
		var header strings.Builder
		fmt.Fprintf(&header, "[#%d", i+1)
		if c.Source != "" {
			fmt.Fprintf(&header, " | %s", c.Source)
		}
		if c.ChunkIndex >= 0 {
			fmt.Fprintf(&header, " | chunk %d", c.ChunkIndex)
		}
		header.WriteString("]")
		blocks = append(blocks, header.String()+"\n"+c.Text)
	}
	return strings.Join(blocks, "\n\n")
}
