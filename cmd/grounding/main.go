package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenote/grounding/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "grounding",
		Short: "Grounding - document indexing and retrieval for Lumenote",
		Long: `Grounding indexes source documents into a vector store and retrieves the
fragments most relevant to a question as a citation-annotated context.

Environment variables:
  GROUNDING_DATABASE_URL     Postgres connection string (required)
  GROUNDING_OPENAI_API_KEY   Embedding provider API key
  GROUNDING_S3_ENDPOINT      Source document bucket endpoint`,
		Version: version,
	}

	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.QueryCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
