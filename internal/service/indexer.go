package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumenote/grounding/internal/domain"
	"github.com/lumenote/grounding/internal/telemetry"
)

// minExtractedChars is the minimum trimmed length of extracted text for a
// source to be worth indexing. Low-yield extraction usually means a scanned
// or non-digitized document.
const minExtractedChars = 200

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkWriter defines the store interface used by ingestion
type ChunkWriter interface {
	ExistsForSource(ctx context.Context, source string) (bool, error)
	Insert(ctx context.Context, chunk *domain.Chunk) error
}

// SourceProvider enumerates pending source documents and fetches their raw
// bytes to a temporary local copy. The returned cleanup func releases that
// copy and is called regardless of how ingestion of the source ends.
type SourceProvider interface {
	ListSources(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, name string) (*domain.SourceDocument, func(), error)
}

// TextExtractor turns a fetched document into plain text
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// IngestOutcome classifies what happened to a single source during a run.
type IngestOutcome string

const (
	OutcomeIndexed                 IngestOutcome = "indexed"
	OutcomeSkippedAlreadyIndexed   IngestOutcome = "skipped_already_indexed"
	OutcomeSkippedInsufficientText IngestOutcome = "skipped_insufficient_text"
	OutcomeFailed                  IngestOutcome = "failed"
)

// SourceResult is the per-source entry of an ingestion report. ChunkCount is
// the number of chunks actually persisted, which for a failed source may be
// a strict subset of what chunking produced. Err is the failure cause, or
// ErrInsufficientExtractedText for the corresponding skip.
type SourceResult struct {
	Source     string
	Outcome    IngestOutcome
	ChunkCount int
	Err        error
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Results []SourceResult
}

// Indexed returns how many sources were newly indexed.
func (r *IngestReport) Indexed() int { return r.count(OutcomeIndexed) }

// Skipped returns how many sources were skipped, for either reason.
func (r *IngestReport) Skipped() int {
	return r.count(OutcomeSkippedAlreadyIndexed) + r.count(OutcomeSkippedInsufficientText)
}

// Failed returns how many sources failed.
func (r *IngestReport) Failed() int { return r.count(OutcomeFailed) }

func (r *IngestReport) count(outcome IngestOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// IndexWriter orchestrates per-source ingestion: dedup check, fetch,
// extraction validation, chunking, embedding, persistence. Sources are
// processed one at a time and chunks one at a time, which keeps chunk index
// assignment trivially ordered and stays within embedding provider rate
// limits.
type IndexWriter struct {
	store     ChunkWriter
	embedder  EmbeddingClient
	provider  SourceProvider
	extractor TextExtractor
	splitCfg  SplitConfig
}

// NewIndexWriter creates an IndexWriter with default chunking parameters.
func NewIndexWriter(store ChunkWriter, embedder EmbeddingClient, provider SourceProvider, extractor TextExtractor) *IndexWriter {
	return NewIndexWriterWithConfig(store, embedder, provider, extractor, DefaultSplitConfig())
}

// NewIndexWriterWithConfig creates an IndexWriter with explicit chunking parameters.
func NewIndexWriterWithConfig(store ChunkWriter, embedder EmbeddingClient, provider SourceProvider, extractor TextExtractor, cfg SplitConfig) *IndexWriter {
	return &IndexWriter{
		store:     store,
		embedder:  embedder,
		provider:  provider,
		extractor: extractor,
		splitCfg:  cfg,
	}
}

// Ingest lists all pending sources from the provider and ingests them.
func (w *IndexWriter) Ingest(ctx context.Context) (*IngestReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "indexer.ingest")
	defer span.End()

	sources, err := w.provider.ListSources(ctx)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	return w.IngestSources(ctx, sources), nil
}

// IngestSources ingests the named sources in order. A failure on one source
// aborts that source only; the batch always runs to completion and the
// report records every outcome.
func (w *IndexWriter) IngestSources(ctx context.Context, sources []string) *IngestReport {
	report := &IngestReport{Results: make([]SourceResult, 0, len(sources))}

	for _, name := range sources {
		result := w.ingestSource(ctx, name)
		if result.Outcome == OutcomeFailed {
			log.Printf("ingest: source %q failed after %d chunks: %v", name, result.ChunkCount, result.Err)
			telemetry.CaptureError(ctx, result.Err)
		}
		report.Results = append(report.Results, result)
	}

	return report
}

func (w *IndexWriter) ingestSource(ctx context.Context, name string) SourceResult {
	exists, err := w.store.ExistsForSource(ctx, name)
	if err != nil {
		return SourceResult{Source: name, Outcome: OutcomeFailed, Err: err}
	}
	if exists {
		log.Printf("ingest: source %q already indexed, skipping", name)
		return SourceResult{Source: name, Outcome: OutcomeSkippedAlreadyIndexed}
	}

	doc, cleanup, err := w.provider.Fetch(ctx, name)
	if err != nil {
		return SourceResult{Source: name, Outcome: OutcomeFailed, Err: err}
	}
	defer cleanup()

	text, err := w.extractor.Extract(ctx, doc.LocalPath)
	if err != nil {
		return SourceResult{Source: name, Outcome: OutcomeFailed, Err: err}
	}

	if len(strings.TrimSpace(text)) < minExtractedChars {
		log.Printf("ingest: source %q has insufficient text, likely a non-digitized document, skipping", name)
		return SourceResult{Source: name, Outcome: OutcomeSkippedInsufficientText, Err: domain.ErrInsufficientExtractedText}
	}

	chunks := Split(text, w.splitCfg)
	createdAt := time.Now().UTC()

	persisted := 0
	for i, chunkText := range chunks {
		embedding, err := w.embedder.GenerateEmbedding(ctx, chunkText)
		if err != nil {
			return SourceResult{Source: name, Outcome: OutcomeFailed, ChunkCount: persisted, Err: err}
		}

		chunk := &domain.Chunk{
			ID:         uuid.NewString(),
			Source:     name,
			ChunkIndex: i,
			Text:       chunkText,
			Embedding:  embedding,
			CreatedAt:  createdAt,
		}
		if err := w.store.Insert(ctx, chunk); err != nil {
			return SourceResult{Source: name, Outcome: OutcomeFailed, ChunkCount: persisted, Err: err}
		}
		persisted++
	}

	log.Printf("ingest: source %q indexed with %d chunks", name, persisted)
	return SourceResult{Source: name, Outcome: OutcomeIndexed, ChunkCount: persisted}
}
