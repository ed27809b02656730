package cli

import (
	"github.com/spf13/cobra"

	"github.com/lumenote/grounding/internal/repository"
	"github.com/lumenote/grounding/internal/service"
)

// QueryCmd returns the query command
func QueryCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Retrieve the chunks most relevant to a question",
		Long: `Retrieval smoke test: embeds the question, queries the vector store for
the nearest chunks and prints them together with the assembled context
string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], k)
		},
	}

	cmd.Flags().IntVarP(&k, "limit", "k", 8, "Number of nearest chunks to retrieve")

	return cmd
}

func runQuery(cmd *cobra.Command, question string, k int) error {
	ctx := cmd.Context()

	shutdownTelemetry := initTelemetry()
	defer shutdownTelemetry()

	cfg, pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	embedder, err := newEmbeddingClient(cfg)
	if err != nil {
		return err
	}

	retriever := service.NewRetriever(repository.NewChunkRepository(pool), embedder)

	result, err := retriever.Retrieve(ctx, question, k)
	if err != nil {
		return err
	}

	if len(result.Chunks) == 0 {
		cmd.Println("No chunks found.")
		return nil
	}

	cmd.Printf("Top %d chunks:\n\n", len(result.Chunks))
	for i, c := range result.Chunks {
		cmd.Printf("%d. %s chunk %d (distance %.4f)\n", i+1, c.Source, c.ChunkIndex, c.Distance)
	}

	cmd.Printf("\nContext:\n\n%s\n", result.Context)
	return nil
}
