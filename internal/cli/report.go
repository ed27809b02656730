package cli

import (
	"github.com/spf13/cobra"

	"github.com/lumenote/grounding/internal/service"
)

// printReport writes the per-source outcome summary of an ingestion run.
func printReport(cmd *cobra.Command, report *service.IngestReport) {
	for _, res := range report.Results {
		switch res.Outcome {
		case service.OutcomeIndexed:
			cmd.Printf("indexed   %s (%d chunks)\n", res.Source, res.ChunkCount)
		case service.OutcomeSkippedAlreadyIndexed:
			cmd.Printf("skipped   %s (already indexed)\n", res.Source)
		case service.OutcomeSkippedInsufficientText:
			cmd.Printf("skipped   %s (insufficient text)\n", res.Source)
		case service.OutcomeFailed:
			cmd.PrintErrf("failed    %s (%d chunks persisted): %v\n", res.Source, res.ChunkCount, res.Err)
		}
	}

	cmd.Printf("\n%d indexed, %d skipped, %d failed\n",
		report.Indexed(), report.Skipped(), report.Failed())
}
