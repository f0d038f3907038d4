// ABOUTME: Payment commands scoped to an invoice
// ABOUTME: List recorded payments and settle orders

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	paymentAmount        string
	paymentMethod        string
	paymentTransactionID string
	paymentNotes         string
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage payments against orders",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list <invoice-id>",
	Short: "List payments for an order",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runPaymentsList),
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add <invoice-id>",
	Short: "Record a payment against an order",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runPaymentsAdd),
}

func init() {
	paymentsAddCmd.Flags().StringVar(&paymentAmount, "amount", "", "Payment amount, e.g. 12.50")
	paymentsAddCmd.Flags().StringVar(&paymentMethod, "method", "cash", "Payment method: cash, card or wallet")
	paymentsAddCmd.Flags().StringVar(&paymentTransactionID, "transaction-id", "", "External transaction reference")
	paymentsAddCmd.Flags().StringVar(&paymentNotes, "notes", "", "Payment notes")
	paymentsCmd.AddCommand(paymentsListCmd, paymentsAddCmd)
	rootCmd.AddCommand(paymentsCmd)
}

func runPaymentsList(ctx context.Context, w io.Writer, args []string) int {
	invoiceID, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	payments, err := c.ListPayments(ctx, invoiceID)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, payments)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-10s %-10s %-20s %-16s\n", "ID", "AMOUNT", "METHOD", "DATE", "RECEIVED BY")
	for _, p := range payments {
		fmt.Fprintf(w, "%-5d %-10s %-10s %-20s %-16s\n",
			p.ID, p.Amount, p.PaymentMethod, orDash(p.PaymentDate), orDash(p.ReceivedByName))
	}
	return 0
}

func runPaymentsAdd(ctx context.Context, w io.Writer, args []string) int {
	invoiceID, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	if paymentAmount == "" {
		fmt.Fprintln(w, "--amount is required.")
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	payment, err := c.AddPayment(ctx, invoiceID, client.PaymentInput{
		Amount:        paymentAmount,
		PaymentMethod: paymentMethod,
		TransactionID: paymentTransactionID,
		Notes:         paymentNotes,
	})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, payment)
		return 0
	}
	fmt.Fprintf(w, "Recorded %s %s payment against order %s\n",
		payment.Amount, payment.PaymentMethod, orDash(payment.InvoiceNumber))
	return 0
}
