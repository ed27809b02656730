package domain

import "time"

// Chunk represents a bounded, minimum-length fragment of a source document,
// persisted together with its embedding for similarity retrieval.
// Chunks are immutable once written; the pipeline only ever inserts.
type Chunk struct {
	ID         string
	Source     string
	ChunkIndex int
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
}
