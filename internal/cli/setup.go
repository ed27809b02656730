package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/lumenote/grounding/internal/config"
	"github.com/lumenote/grounding/internal/database"
	"github.com/lumenote/grounding/internal/extract"
	"github.com/lumenote/grounding/internal/openai"
	"github.com/lumenote/grounding/internal/repository"
	"github.com/lumenote/grounding/internal/service"
	"github.com/lumenote/grounding/internal/storage"
	"github.com/lumenote/grounding/internal/telemetry"

	openaiapi "github.com/sashabaranov/go-openai"
)

// initTelemetry initializes Sentry when SENTRY_DSN is set. Returns a flush
// func; a no-op when telemetry is disabled or fails to initialize.
func initTelemetry() func() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return func() {}
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	sampleRate := 0.1
	if environment == "development" {
		sampleRate = 1.0
	}

	shutdown, err := telemetry.Init(telemetry.Config{
		DSN:              dsn,
		Environment:      environment,
		TracesSampleRate: sampleRate,
	})
	if err != nil {
		log.Printf("telemetry init failed (continuing without tracing): %v", err)
		return func() {}
	}
	return shutdown
}

// connect loads config and opens the database pool.
func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, pool, nil
}

// newEmbeddingClient builds the OpenAI embedding client from config.
func newEmbeddingClient(cfg *config.Config) (*openai.Client, error) {
	if !cfg.HasOpenAI() {
		return nil, fmt.Errorf("embedding provider not configured: GROUNDING_OPENAI_API_KEY required")
	}
	return openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      openaiapi.EmbeddingModel(cfg.EmbeddingModel),
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	}), nil
}

// newIndexWriter wires the full ingestion pipeline: S3 source provider, PDF
// extractor, embedding client and chunk store.
func newIndexWriter(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*service.IndexWriter, error) {
	if !cfg.HasS3() {
		return nil, fmt.Errorf("document source not configured: GROUNDING_S3_ENDPOINT required")
	}

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure S3 bucket: %w", err)
	}

	embedder, err := newEmbeddingClient(cfg)
	if err != nil {
		return nil, err
	}

	chunkRepo := repository.NewChunkRepository(pool)
	provider := &S3SourceProvider{client: s3Client}

	return service.NewIndexWriter(chunkRepo, embedder, provider, extract.New()), nil
}

// addMigrateFlag registers the shared migration opt-out flag.
func addMigrateFlag(fs *pflag.FlagSet) {
	fs.Bool("no-migrate", false, "Skip automatic database migrations on startup")
}
