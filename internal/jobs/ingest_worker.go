package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/lumenote/grounding/internal/service"
)

// Ingester defines the interface for running an ingestion pass
type Ingester interface {
	Ingest(ctx context.Context) (*service.IngestReport, error)
}

// IngestWorker adapts the indexer to the poller. The dedup guard makes
// repeated passes over already-indexed sources no-ops, so polling is
// idempotent.
type IngestWorker struct {
	indexer Ingester
}

// NewIngestWorker creates a new IngestWorker instance
func NewIngestWorker(indexer Ingester) *IngestWorker {
	return &IngestWorker{indexer: indexer}
}

// RunPass implements the PassRunner interface
func (w *IngestWorker) RunPass(ctx context.Context) error {
	report, err := w.indexer.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingestion pass failed: %w", err)
	}

	if report.Indexed() > 0 || report.Failed() > 0 {
		log.Printf("ingestion pass: %d indexed, %d skipped, %d failed",
			report.Indexed(), report.Skipped(), report.Failed())
	}

	return nil
}
