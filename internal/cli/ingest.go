package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index all pending source documents",
		Long: `Iterates every document in the source bucket, skips the ones already
indexed, and chunks, embeds and persists the rest. Prints a per-source
outcome summary.`,
		RunE: runIngest,
	}

	addMigrateFlag(cmd.Flags())

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	report, err := indexer.Ingest(ctx)
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}
