package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/itemforge-cli/internal/adapters/driving/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review items interactively",
	Long: `Opens a terminal UI over the item bank. Approve with 'a', reject
with 'r', inspect similar items with 's' and commit the cart with
'c'.`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	app, err := tui.NewApp(cmd.Context(), &tui.Ports{
		Item:       itemService,
		Review:     reviewService,
		Similarity: similarityService,
	})
	if err != nil {
		return fmt.Errorf("creating review UI: %w", err)
	}
	return app.Run()
}
