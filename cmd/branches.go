// ABOUTME: Branch management commands (superadmin scope)
// ABOUTME: List, show, create, update, and delete bakery locations

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	branchName     string
	branchLocation string
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Manage branches",
}

var branchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runBranchesList(ctx, w) }),
}

var branchesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one branch",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runBranchesShow),
}

var branchesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a branch",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runBranchesCreate(ctx, w) }),
}

var branchesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a branch",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runBranchesUpdate),
}

var branchesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a branch",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runBranchesDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{branchesCreateCmd, branchesUpdateCmd} {
		cmd.Flags().StringVar(&branchName, "name", "", "Branch name")
		cmd.Flags().StringVar(&branchLocation, "location", "", "Branch location")
	}
	branchesCmd.AddCommand(branchesListCmd, branchesShowCmd, branchesCreateCmd, branchesUpdateCmd, branchesDeleteCmd)
	rootCmd.AddCommand(branchesCmd)
}

func runBranchesList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	branches, err := c.ListBranches(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, branches)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-20s %-24s %-12s %-16s\n", "ID", "NAME", "LOCATION", "REVENUE", "MANAGER")
	for _, b := range branches {
		fmt.Fprintf(w, "%-5d %-20s %-24s %-12s %-16s\n",
			b.ID, b.Name, b.Location, orDash(b.Revenue), orDash(b.ManagerName))
	}
	return 0
}

func runBranchesShow(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	branch, err := c.GetBranch(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, branch)
		return 0
	}
	fmt.Fprintf(w, "ID:       %d\n", branch.ID)
	fmt.Fprintf(w, "Name:     %s\n", branch.Name)
	fmt.Fprintf(w, "Location: %s\n", branch.Location)
	fmt.Fprintf(w, "Revenue:  %s\n", orDash(branch.Revenue))
	fmt.Fprintf(w, "Manager:  %s\n", orDash(branch.ManagerName))
	return 0
}

func runBranchesCreate(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	branch, err := c.CreateBranch(ctx, client.BranchInput{Name: branchName, Location: branchLocation})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, branch)
		return 0
	}
	fmt.Fprintf(w, "Created branch %d (%s)\n", branch.ID, branch.Name)
	return 0
}

func runBranchesUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	branch, err := c.UpdateBranch(ctx, id, client.BranchInput{Name: branchName, Location: branchLocation})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, branch)
		return 0
	}
	fmt.Fprintf(w, "Updated branch %d (%s)\n", branch.ID, branch.Name)
	return 0
}

func runBranchesDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteBranch(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted branch %d\n", id)
	return 0
}
