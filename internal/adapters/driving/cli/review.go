package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cartJSON bool

var approveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

var rejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runReject,
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show approved items awaiting commit",
	RunE:  runCart,
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit every item in the cart under a fresh batch ID",
	RunE:  runCommit,
}

func init() {
	cartCmd.Flags().BoolVar(&cartJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(approveCmd, rejectCmd, cartCmd, commitCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	item, err := reviewService.Approve(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("approving item %d: %w", id, err)
	}

	cmd.Printf("Approved item %d: %s\n", item.ID, item.Stem)
	return nil
}

func runReject(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	id, err := parseItemID(args[0])
	if err != nil {
		return err
	}

	item, err := reviewService.Reject(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("rejecting item %d: %w", id, err)
	}

	cmd.Printf("Rejected item %d: %s\n", item.ID, item.Stem)
	return nil
}

func runCart(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	items, err := reviewService.Cart(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cart: %w", err)
	}

	if cartJSON {
		return printJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("Cart is empty.")
		return nil
	}

	for i := range items {
		printItemLine(cmd, &items[i])
	}
	cmd.Printf("\n%d item(s) ready to commit.\n", len(items))
	return nil
}

func runCommit(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	receipt, err := reviewService.Commit(cmd.Context())
	if err != nil {
		return fmt.Errorf("committing cart: %w", err)
	}

	cmd.Printf("Committed %d item(s) in batch %s\n", receipt.Count, receipt.BatchID)
	return nil
}
