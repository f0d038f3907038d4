// ABOUTME: Customer management commands
// ABOUTME: List, show, create, update, and delete customers

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	customerName    string
	customerPhone   string
	customerEmail   string
	customerAddress string
	customerBranch  int64
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runCustomersList(ctx, w) }),
}

var customersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one customer",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runCustomersShow),
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a customer",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runCustomersCreate(ctx, w) }),
}

var customersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runCustomersUpdate),
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runCustomersDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{customersCreateCmd, customersUpdateCmd} {
		cmd.Flags().StringVar(&customerName, "name", "", "Customer name")
		cmd.Flags().StringVar(&customerPhone, "phone", "", "Phone number")
		cmd.Flags().StringVar(&customerEmail, "email", "", "Email address")
		cmd.Flags().StringVar(&customerAddress, "address", "", "Address")
		cmd.Flags().Int64Var(&customerBranch, "branch", 0, "Branch id")
	}
	customersCmd.AddCommand(customersListCmd, customersShowCmd, customersCreateCmd, customersUpdateCmd, customersDeleteCmd)
	rootCmd.AddCommand(customersCmd)
}

func runCustomersList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	customers, err := c.ListCustomers(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, customers)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-20s %-14s %-24s\n", "ID", "NAME", "PHONE", "EMAIL")
	for _, cust := range customers {
		fmt.Fprintf(w, "%-5d %-20s %-14s %-24s\n",
			cust.ID, cust.Name, orDash(cust.Phone), orDash(cust.Email))
	}
	return 0
}

func runCustomersShow(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	customer, err := c.GetCustomer(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, customer)
		return 0
	}
	fmt.Fprintf(w, "ID:      %d\n", customer.ID)
	fmt.Fprintf(w, "Name:    %s\n", customer.Name)
	fmt.Fprintf(w, "Phone:   %s\n", orDash(customer.Phone))
	fmt.Fprintf(w, "Email:   %s\n", orDash(customer.Email))
	fmt.Fprintf(w, "Address: %s\n", orDash(customer.Address))
	return 0
}

func runCustomersCreate(ctx context.Context, w io.Writer) int {
	c, branchID, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	customer, err := c.CreateCustomer(ctx, customerInputFromFlags(branchID))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, customer)
		return 0
	}
	fmt.Fprintf(w, "Created customer %d (%s)\n", customer.ID, customer.Name)
	return 0
}

func runCustomersUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, branchID, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	customer, err := c.UpdateCustomer(ctx, id, customerInputFromFlags(branchID))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, customer)
		return 0
	}
	fmt.Fprintf(w, "Updated customer %d (%s)\n", customer.ID, customer.Name)
	return 0
}

func runCustomersDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteCustomer(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted customer %d\n", id)
	return 0
}

// customerInputFromFlags builds the payload; the configured branch is the
// default scope when --branch is not given.
func customerInputFromFlags(defaultBranch int64) client.CustomerInput {
	branch := customerBranch
	if branch == 0 {
		branch = defaultBranch
	}
	return client.CustomerInput{
		Name:    customerName,
		Phone:   customerPhone,
		Email:   customerEmail,
		Address: customerAddress,
		Branch:  branch,
	}
}
