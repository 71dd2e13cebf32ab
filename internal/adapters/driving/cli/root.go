// Package cli implements the itemforge command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/itemforge-cli/internal/adapters/driven/ai"
	configfile "github.com/veritas-labs/itemforge-cli/internal/adapters/driven/config/file"
	"github.com/veritas-labs/itemforge-cli/internal/adapters/driven/docsource/docx"
	"github.com/veritas-labs/itemforge-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
	"github.com/veritas-labs/itemforge-cli/internal/core/services"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Wired services. Tests replace these with mocks; commands must go
// through ensureServices so real wiring happens exactly once.
var (
	store             *sqlite.Store
	configStore       driven.ConfigStore
	encoder           *services.Encoder
	itemService       driving.ItemService
	reviewService     driving.ReviewService
	similarityService driving.SimilarityService
	generationService driving.GenerationService
)

var rootCmd = &cobra.Command{
	Use:   "itemforge",
	Short: "Exam item authoring and review tool",
	Long: `itemforge manages a bank of exam items: author them manually or via an
LLM, check new items for semantic duplicates, and review, approve and
commit them in batches.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "database directory (default ~/.itemforge/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.itemforge)")
}

// Execute runs the root command.
func Execute() {
	defer closeServices()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeServices()
		os.Exit(1)
	}
}

// ensureServices wires the real adapters on first use. Commands that
// only print static information never pay the startup cost.
func ensureServices() error {
	if itemService != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	model, dims := ai.EncoderSettings(configStore)
	cfg := configStore
	encoder = services.NewEncoder(model, dims, func() (driven.EmbeddingService, error) {
		return ai.CreateEmbeddingService(cfg)
	})

	cache := services.NewEmbeddingCache(store.EmbeddingStore(), encoder)

	itemService = services.NewItemService(store.ItemStore())
	reviewService = services.NewReviewService(store.ItemStore())
	similarityService = services.NewSimilarityService(store.ItemStore(), cache)

	llm, err := ai.CreateLLMService(configStore)
	if err != nil {
		// Generation stays disabled; everything else still works
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}
	generationService = services.NewGenerationService(store.ItemStore(), llm, docx.New())

	return nil
}

// closeServices releases held resources.
func closeServices() {
	if encoder != nil {
		encoder.Close() //nolint:errcheck
		encoder = nil
	}
	if store != nil {
		store.Close() //nolint:errcheck
		store = nil
	}
}
