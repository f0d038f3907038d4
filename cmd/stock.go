// ABOUTME: Stock movement commands
// ABOUTME: Record add/reduce activities and show a product's history

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	stockQuantity int
	stockNotes    string
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Track product stock",
}

var stockAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Record incoming stock",
	Args:  cobra.ExactArgs(1),
	Run: runWithExit(func(ctx context.Context, w io.Writer, args []string) int {
		return runStockActivity(ctx, w, args[0], "add")
	}),
}

var stockReduceCmd = &cobra.Command{
	Use:   "reduce <product-id>",
	Short: "Record outgoing stock",
	Args:  cobra.ExactArgs(1),
	Run: runWithExit(func(ctx context.Context, w io.Writer, args []string) int {
		return runStockActivity(ctx, w, args[0], "reduce")
	}),
}

var stockHistoryCmd = &cobra.Command{
	Use:   "history <product-id>",
	Short: "Show a product's stock movements",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runStockHistory),
}

func init() {
	for _, cmd := range []*cobra.Command{stockAddCmd, stockReduceCmd} {
		cmd.Flags().IntVar(&stockQuantity, "quantity", 0, "Quantity moved")
		cmd.Flags().StringVar(&stockNotes, "notes", "", "Movement notes")
	}
	stockCmd.AddCommand(stockAddCmd, stockReduceCmd, stockHistoryCmd)
	rootCmd.AddCommand(stockCmd)
}

func runStockActivity(ctx context.Context, w io.Writer, rawID, activityType string) int {
	productID, ok := parseID(w, rawID)
	if !ok {
		return 1
	}
	if stockQuantity <= 0 {
		fmt.Fprintln(w, "--quantity must be a positive number.")
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	activity, err := c.AddItemActivity(ctx, productID, activityType, client.ItemActivityInput{
		Quantity: stockQuantity,
		Notes:    stockNotes,
	})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, activity)
		return 0
	}
	fmt.Fprintf(w, "Recorded %s of %d for product %d\n", activityType, activity.Quantity, productID)
	return 0
}

func runStockHistory(ctx context.Context, w io.Writer, args []string) int {
	productID, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	activities, err := c.ItemActivityDetail(ctx, productID)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, activities)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-8s %-8s %-20s %-16s\n", "ID", "TYPE", "QTY", "DATE", "BY")
	for _, a := range activities {
		fmt.Fprintf(w, "%-5d %-8s %-8d %-20s %-16s\n",
			a.ID, a.Type, a.Quantity, orDash(a.CreatedAt), orDash(a.CreatedBy))
	}
	return 0
}
