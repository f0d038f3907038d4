// ABOUTME: Menu category management commands
// ABOUTME: List, create, rename, and delete categories

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	categoryName   string
	categoryBranch int64
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage menu categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runCategoriesList(ctx, w) }),
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a category",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runCategoriesCreate(ctx, w) }),
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runCategoriesUpdate),
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runCategoriesDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		cmd.Flags().StringVar(&categoryName, "name", "", "Category name")
		cmd.Flags().Int64Var(&categoryBranch, "branch", 0, "Branch id")
	}
	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	categories, err := c.ListCategories(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, categories)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-24s\n", "ID", "NAME")
	for _, cat := range categories {
		fmt.Fprintf(w, "%-5d %-24s\n", cat.ID, cat.Name)
	}
	return 0
}

func runCategoriesCreate(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	category, err := c.CreateCategory(ctx, categoryInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, category)
		return 0
	}
	fmt.Fprintf(w, "Created category %d (%s)\n", category.ID, category.Name)
	return 0
}

func runCategoriesUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	category, err := c.UpdateCategory(ctx, id, categoryInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, category)
		return 0
	}
	fmt.Fprintf(w, "Updated category %d (%s)\n", category.ID, category.Name)
	return 0
}

func runCategoriesDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteCategory(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted category %d\n", id)
	return 0
}

func categoryInputFromFlags() client.CategoryInput {
	input := client.CategoryInput{Name: categoryName}
	if categoryBranch > 0 {
		input.BranchID = &categoryBranch
	}
	return input
}
