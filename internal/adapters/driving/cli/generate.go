package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

var (
	generatePrompt string
	generateDocx   string
	generateJSON   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an item with the configured LLM",
	Long: `Generates, validates and stores one exam item. The prompt comes from
--prompt text or from a .docx file via --docx; exactly one must be
given. Requires an LLM backend, see 'itemforge settings'.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "prompt text for the generator")
	generateCmd.Flags().StringVar(&generateDocx, "docx", "", "path to a .docx file to extract the prompt from")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output as JSON")
	generateCmd.MarkFlagsMutuallyExclusive("prompt", "docx")
	generateCmd.MarkFlagsOneRequired("prompt", "docx")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if generationService == nil {
		return fmt.Errorf("%w: no LLM backend configured. Run 'itemforge settings set-key' or point llm.backend at ollama",
			domain.ErrLLMUnavailable)
	}

	var (
		item *domain.Item
		err  error
	)
	if generateDocx != "" {
		item, err = generationService.FromDocument(cmd.Context(), generateDocx)
	} else {
		item, err = generationService.FromPrompt(cmd.Context(), generatePrompt)
	}
	if err != nil {
		return fmt.Errorf("generating item: %w", err)
	}

	if generateJSON {
		return printJSON(cmd, item)
	}

	cmd.Printf("Generated item %d\n\n", item.ID)
	printItemDetail(cmd, item)
	return nil
}
