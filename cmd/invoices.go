// ABOUTME: Invoice (order) commands covering the order lifecycle
// ABOUTME: List, show, create with item lines, status changes, and voiding

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	invoiceCustomer int64
	invoiceTable    int64
	invoiceItems    []string
	invoiceTax      string
	invoiceDiscount string
	invoiceNotes    string
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage orders",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runInvoicesList(ctx, w) }),
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one order with its items",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runInvoicesShow),
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new order",
	Long: `Open a new order with one or more item lines.

Each --item is product-id:quantity, e.g. --item 4:2 --item 9:1.`,
	Run: runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runInvoicesCreate(ctx, w) }),
}

var invoicesStatusCmd = &cobra.Command{
	Use:   "status <id> <new|preparing|ready|completed>",
	Short: "Change an order's kitchen status",
	Args:  cobra.ExactArgs(2),
	Run:   runWithExit(runInvoicesStatus),
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Void an unpaid order",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runInvoicesDelete),
}

func init() {
	invoicesCreateCmd.Flags().Int64Var(&invoiceCustomer, "customer", 0, "Customer id")
	invoicesCreateCmd.Flags().Int64Var(&invoiceTable, "table", 0, "Table id")
	invoicesCreateCmd.Flags().StringArrayVar(&invoiceItems, "item", nil, "Item line as product-id:quantity (repeatable)")
	invoicesCreateCmd.Flags().StringVar(&invoiceTax, "tax", "", "Tax amount")
	invoicesCreateCmd.Flags().StringVar(&invoiceDiscount, "discount", "", "Discount amount")
	invoicesCreateCmd.Flags().StringVar(&invoiceNotes, "notes", "", "Order notes")
	invoicesCmd.AddCommand(invoicesListCmd, invoicesShowCmd, invoicesCreateCmd, invoicesStatusCmd, invoicesDeleteCmd)
	rootCmd.AddCommand(invoicesCmd)
}

func runInvoicesList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	invoices, err := c.ListInvoices(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, invoices)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-14s %-16s %-10s %-10s %-10s\n", "ID", "NUMBER", "CUSTOMER", "TOTAL", "PAYMENT", "STATUS")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%-5d %-14s %-16s %-10s %-10s %-10s\n",
			inv.ID, inv.InvoiceNumber, orDash(inv.CustomerName), orDash(inv.Total),
			inv.PaymentStatus, inv.InvoiceStatus)
	}
	return 0
}

func runInvoicesShow(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	invoice, err := c.GetInvoice(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, invoice)
		return 0
	}
	fmt.Fprintf(w, "Invoice:  %s\n", invoice.InvoiceNumber)
	fmt.Fprintf(w, "Customer: %s\n", orDash(invoice.CustomerName))
	fmt.Fprintf(w, "Payment:  %s\n", invoice.PaymentStatus)
	fmt.Fprintf(w, "Status:   %s\n", invoice.InvoiceStatus)
	if len(invoice.Items) > 0 {
		fmt.Fprintln(w, "Items:")
		for _, item := range invoice.Items {
			fmt.Fprintf(w, "  %dx %-24s %s\n", item.Quantity, item.ProductName, orDash(item.Price))
		}
	}
	fmt.Fprintf(w, "Tax:      %s\n", orDash(invoice.TaxAmount))
	fmt.Fprintf(w, "Discount: %s\n", orDash(invoice.Discount))
	fmt.Fprintf(w, "Total:    %s\n", orDash(invoice.Total))
	if invoice.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", invoice.Notes)
	}
	return 0
}

func runInvoicesCreate(ctx context.Context, w io.Writer) int {
	items, err := parseItemLines(invoiceItems)
	if err != nil {
		fmt.Fprintln(w, err)
		return 1
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "At least one --item is required.")
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	input := client.InvoiceInput{
		Items:     items,
		TaxAmount: invoiceTax,
		Discount:  invoiceDiscount,
		Notes:     invoiceNotes,
	}
	if invoiceCustomer > 0 {
		input.CustomerID = &invoiceCustomer
	}
	if invoiceTable > 0 {
		input.TableID = &invoiceTable
	}

	invoice, err := c.CreateInvoice(ctx, input)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, invoice)
		return 0
	}
	fmt.Fprintf(w, "Created order %s (id %d)\n", invoice.InvoiceNumber, invoice.ID)
	return 0
}

func runInvoicesStatus(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	status := args[1]
	switch status {
	case "new", "preparing", "ready", "completed":
	default:
		fmt.Fprintf(w, "Invalid status %q. Use new, preparing, ready or completed.\n", status)
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	invoice, err := c.UpdateInvoice(ctx, id, client.InvoiceUpdate{InvoiceStatus: &status})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, invoice)
		return 0
	}
	fmt.Fprintf(w, "Order %s is now %s\n", invoice.InvoiceNumber, invoice.InvoiceStatus)
	return 0
}

func runInvoicesDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteInvoice(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Voided order %d\n", id)
	return 0
}

// parseItemLines parses repeated product-id:quantity flags.
func parseItemLines(lines []string) ([]client.InvoiceItem, error) {
	items := make([]client.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid item %q: expected product-id:quantity", line)
		}
		productID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || productID <= 0 {
			return nil, fmt.Errorf("invalid product id in item %q", line)
		}
		quantity, err := strconv.Atoi(parts[1])
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity in item %q", line)
		}
		items = append(items, client.InvoiceItem{ProductID: productID, Quantity: quantity})
	}
	return items, nil
}
