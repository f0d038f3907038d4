// ABOUTME: Product (menu item) management commands
// ABOUTME: List, show, create, update, and delete products

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	productName     string
	productPrice    string
	productCategory int64
	productBranch   int64
	productStock    int
	productInactive bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the menu",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runProductsList(ctx, w) }),
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runProductsShow),
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runProductsCreate(ctx, w) }),
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runProductsUpdate),
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runProductsDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		cmd.Flags().StringVar(&productName, "name", "", "Product name")
		cmd.Flags().StringVar(&productPrice, "price", "", "Price, e.g. 4.50")
		cmd.Flags().Int64Var(&productCategory, "category", 0, "Category id")
		cmd.Flags().Int64Var(&productBranch, "branch", 0, "Branch id")
		cmd.Flags().IntVar(&productStock, "stock", -1, "Stock count")
		cmd.Flags().BoolVar(&productInactive, "inactive", false, "Hide from the menu")
	}
	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	products, err := c.ListProducts(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, products)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-24s %-10s %-16s %-6s %-6s\n", "ID", "NAME", "PRICE", "CATEGORY", "STOCK", "ACTIVE")
	for _, p := range products {
		fmt.Fprintf(w, "%-5d %-24s %-10s %-16s %-6d %-6s\n",
			p.ID, p.Name, p.Price, orDash(p.CategoryName), p.Stock, yesNo(p.IsActive))
	}
	return 0
}

func runProductsShow(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	product, err := c.GetProduct(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, product)
		return 0
	}
	fmt.Fprintf(w, "ID:       %d\n", product.ID)
	fmt.Fprintf(w, "Name:     %s\n", product.Name)
	fmt.Fprintf(w, "Price:    %s\n", product.Price)
	fmt.Fprintf(w, "Category: %s\n", orDash(product.CategoryName))
	fmt.Fprintf(w, "Stock:    %d\n", product.Stock)
	fmt.Fprintf(w, "Active:   %s\n", yesNo(product.IsActive))
	return 0
}

func runProductsCreate(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	product, err := c.CreateProduct(ctx, productInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, product)
		return 0
	}
	fmt.Fprintf(w, "Created product %d (%s)\n", product.ID, product.Name)
	return 0
}

func runProductsUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	product, err := c.UpdateProduct(ctx, id, productInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, product)
		return 0
	}
	fmt.Fprintf(w, "Updated product %d (%s)\n", product.ID, product.Name)
	return 0
}

func runProductsDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteProduct(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted product %d\n", id)
	return 0
}

func productInputFromFlags() client.ProductInput {
	input := client.ProductInput{
		Name:       productName,
		Price:      productPrice,
		CategoryID: productCategory,
	}
	if productBranch > 0 {
		input.BranchID = &productBranch
	}
	if productStock >= 0 {
		input.Stock = &productStock
	}
	if productInactive {
		active := false
		input.IsActive = &active
	}
	return input
}
