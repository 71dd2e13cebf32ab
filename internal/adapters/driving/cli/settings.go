package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veritas-labs/itemforge-cli/internal/adapters/driven/ai"
	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding and LLM backends.

Use 'settings show' to inspect the current configuration, 'settings set'
to change a value and 'settings set-key' to store the OpenAI API key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Common keys:
  embedding.backend     ollama or openai
  embedding.model       embedding model name
  embedding.base_url    Ollama base URL
  llm.backend           ollama or openai
  llm.model             generation model name
  llm.base_url          Ollama base URL`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the OpenAI API key",
	RunE:  runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	model, dims := ai.EncoderSettings(configStore)
	embeddingBackend := configStore.GetString(ai.KeyEmbeddingBackend)
	if embeddingBackend == "" {
		embeddingBackend = ai.BackendOllama
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Backend: %s\n", embeddingBackend)
	cmd.Printf("  Model: %s\n", model)
	cmd.Printf("  Dimensions: %d\n", dims)
	if embeddingBackend == ai.BackendOllama {
		if baseURL := configStore.GetString(ai.KeyEmbeddingBaseURL); baseURL != "" {
			cmd.Printf("  Base URL: %s\n", baseURL)
		}
	}
	cmd.Println()

	cmd.Println("[LLM]")
	llmBackend := configStore.GetString(ai.KeyLLMBackend)
	if llmBackend == "" {
		llmBackend = "(not set)"
	}
	cmd.Printf("  Backend: %s\n", llmBackend)
	if model := configStore.GetString(ai.KeyLLMModel); model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if baseURL := configStore.GetString(ai.KeyLLMBaseURL); baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	cmd.Println()

	cmd.Println("[OpenAI]")
	if apiKey := configStore.GetString(ai.KeyOpenAIAPIKey); apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, coerceValue(value)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: key %q is not set", domain.ErrNotFound, args[0])
	}

	if args[0] == ai.KeyOpenAIAPIKey {
		if s, isString := value.(string); isString {
			value = maskAPIKey(s)
		}
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	cmd.Print("OpenAI API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return fmt.Errorf("%w: API key must not be empty", domain.ErrInvalidInput)
	}

	if err := configStore.Set(ai.KeyOpenAIAPIKey, apiKey); err != nil {
		return fmt.Errorf("storing API key: %w", err)
	}

	cmd.Printf("Stored API key %s\n", maskAPIKey(apiKey))
	return nil
}

// coerceValue turns numeric and boolean CLI input into typed values so
// that GetInt/GetBool keys round-trip.
func coerceValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
