package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	similarTopK      int
	similarRecompute bool
	similarJSON      bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [id]",
	Short: "Find items with semantically similar stimuli",
	Long: `Ranks the rest of the bank by cosine similarity against the given
item's stimulus. Embeddings are computed once and cached; pass
--recompute to re-encode the query item first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarTopK, "top-k", "k", 5, "maximum number of results")
	similarCmd.Flags().BoolVar(&similarRecompute, "recompute", false, "re-encode the query item before ranking")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	if similarRecompute {
		if err := similarityService.Recompute(cmd.Context(), id); err != nil {
			return fmt.Errorf("recomputing embedding for item %d: %w", id, err)
		}
	}

	result, err := similarityService.FindSimilar(cmd.Context(), id, similarTopK)
	if err != nil {
		return fmt.Errorf("finding similar items for %d: %w", id, err)
	}

	if similarJSON {
		return printJSON(cmd, result)
	}

	if len(result.Results) == 0 {
		cmd.Printf("No similar items for %d.\n", id)
		return nil
	}

	cmd.Printf("Items similar to #%d:\n", result.QueryID)
	for _, hit := range result.Results {
		cmd.Printf("  #%-5d %.3f\n", hit.ID, hit.Score)
	}
	return nil
}
