package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/lumenote/grounding/internal/domain"
	"github.com/lumenote/grounding/internal/service"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ChunkRepository handles persistence and nearest-neighbor lookup of chunks.
// Writers only insert; chunks are never updated or deleted here, so
// concurrent readers never observe a half-written record.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

// Insert persists a single chunk.
func (r *ChunkRepository) Insert(ctx context.Context, c *domain.Chunk) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chunks (id, source, chunk_index, content, embedding, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID,
		c.Source,
		c.ChunkIndex,
		c.Text,
		pgvector.NewVector(c.Embedding),
		c.CreatedAt,
	)
	if err != nil {
		return domain.NewStoreWriteError(err)
	}
	return nil
}

// ExistsForSource reports whether any chunk of the named source is indexed.
func (r *ChunkRepository) ExistsForSource(ctx context.Context, source string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chunks WHERE source = $1)`,
		source,
	).Scan(&exists)
	if err != nil {
		return false, domain.NewStoreQueryError(err)
	}
	return exists, nil
}

// CountBySource returns the number of chunks indexed for the named source.
func (r *ChunkRepository) CountBySource(ctx context.Context, source string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chunks WHERE source = $1`,
		source,
	).Scan(&count)
	if err != nil {
		return 0, domain.NewStoreQueryError(err)
	}
	return count, nil
}

// QueryNearest returns the k chunks nearest to the given embedding by cosine
// distance, ordered ascending (most similar first).
func (r *ChunkRepository) QueryNearest(ctx context.Context, embedding []float32, k int) ([]*service.RetrievedChunk, error) {
	if k <= 0 {
		return []*service.RetrievedChunk{}, nil
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.db.Query(ctx,
		`SELECT content, source, chunk_index, embedding <=> $1 AS distance
		 FROM chunks
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, domain.NewStoreQueryError(err)
	}
	defer rows.Close()

	results := make([]*service.RetrievedChunk, 0, k)
	for rows.Next() {
		var c service.RetrievedChunk
		if err := rows.Scan(&c.Text, &c.Source, &c.ChunkIndex, &c.Distance); err != nil {
			return nil, domain.NewStoreQueryError(err)
		}
		results = append(results, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreQueryError(err)
	}

	return results, nil
}
