package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/itemforge-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Exposes the item bank to MCP clients. Without --port the server
speaks the stdio transport; with --port it serves streamable HTTP
on localhost.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&mcpPort, "port", 0, "serve streamable HTTP on this port instead of stdio")

	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Item:       itemService,
		Review:     reviewService,
		Similarity: similarityService,
		Generation: generationService,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	if mcpPort > 0 {
		return server.RunHTTP(cmd.Context(), fmt.Sprintf("localhost:%d", mcpPort))
	}
	return server.Run(cmd.Context())
}
