package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenote/grounding/internal/jobs"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the source bucket and ingest new documents",
		Long: `Runs an ingestion pass on an interval so documents uploaded after
startup get indexed. Already-indexed sources are skipped by the dedup
guard, so polling is idempotent. Assumes a single running instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "Polling interval between ingestion passes")
	addMigrateFlag(cmd.Flags())

	return cmd
}

func runWatch(cmd *cobra.Command, interval time.Duration) error {
	ctx := cmd.Context()

	shutdownTelemetry := initTelemetry()
	defer shutdownTelemetry()

	cfg, pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	indexer, err := newIndexWriter(ctx, cfg, pool)
	if err != nil {
		return err
	}

	poller := jobs.NewPoller(jobs.NewIngestWorker(indexer), interval)
	go poller.Start(ctx)
	cmd.Printf("watching bucket %q every %v\n", cfg.S3Bucket, interval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	poller.Stop()
	return nil
}
