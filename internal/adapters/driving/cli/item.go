package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

var (
	addStimulus string
	addStem     string
	addChoices  []string
	addAnswer   string

	listLimit int
	listJSON  bool

	showJSON bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a manually authored item",
	Long: `Adds an exam item to the bank. The stem, at least one choice and the
correct answer are required; the stimulus is optional but drives
similarity search.`,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent items",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addCmd.Flags().StringVar(&addStimulus, "stimulus", "", "passage or scenario the question is based on")
	addCmd.Flags().StringVar(&addStem, "stem", "", "question text (required)")
	addCmd.Flags().StringArrayVar(&addChoices, "choice", nil, "answer option (repeatable, required)")
	addCmd.Flags().StringVar(&addAnswer, "answer", "", "correct choice (required)")
	addCmd.MarkFlagRequired("stem")   //nolint:errcheck
	addCmd.MarkFlagRequired("choice") //nolint:errcheck
	addCmd.MarkFlagRequired("answer") //nolint:errcheck

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum number of items")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(addCmd, listCmd, showCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	item, err := itemService.Create(cmd.Context(), domain.ItemDraft{
		Stimulus: addStimulus,
		Stem:     addStem,
		Choices:  addChoices,
		Answer:   addAnswer,
	})
	if err != nil {
		return fmt.Errorf("adding item: %w", err)
	}

	cmd.Printf("Added item %d\n", item.ID)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	items, err := itemService.List(cmd.Context(), listLimit)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	if listJSON {
		return printJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("No items in the bank.")
		return nil
	}

	for i := range items {
		printItemLine(cmd, &items[i])
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	item, err := itemService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("getting item %d: %w", id, err)
	}

	if showJSON {
		return printJSON(cmd, item)
	}

	printItemDetail(cmd, item)
	return nil
}

// Helper functions.

func parseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: item id must be a positive integer, got %q",
			domain.ErrInvalidInput, raw)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printItemLine(cmd *cobra.Command, item *domain.Item) {
	marker := " "
	switch item.Status {
	case domain.StatusApproved:
		marker = "✓"
	case domain.StatusRejected:
		marker = "✗"
	}
	cmd.Printf("%s #%-5d [%s] %s\n", marker, item.ID, item.Source, item.Stem)
}

func printItemDetail(cmd *cobra.Command, item *domain.Item) {
	cmd.Printf("Item #%d (%s, %s)\n", item.ID, item.Source, item.Status)
	if item.Stimulus != "" {
		cmd.Printf("\n%s\n", item.Stimulus)
	}
	cmd.Printf("\n%s\n", item.Stem)
	for i, choice := range item.Choices {
		cmd.Printf("  %c) %s\n", 'A'+i, choice)
	}
	cmd.Printf("\nAnswer: %s\n", item.Answer)
	if item.Committed {
		cmd.Printf("Committed in batch %s\n", item.CommitBatch)
	}
}
