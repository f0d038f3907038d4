// ABOUTME: Staff account management commands
// ABOUTME: List, show, create, update, and delete users

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	userUsername string
	userPassword string
	userFullName string
	userEmail    string
	userRole     string
	userBranchID int64
	userInactive bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage staff accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runUsersList(ctx, w) }),
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one staff account",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runUsersShow),
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runUsersCreate(ctx, w) }),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a staff account",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runUsersUpdate),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a staff account",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runUsersDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		cmd.Flags().StringVar(&userUsername, "username", "", "Username")
		cmd.Flags().StringVar(&userPassword, "password", "", "Password")
		cmd.Flags().StringVar(&userFullName, "full-name", "", "Full name")
		cmd.Flags().StringVar(&userEmail, "email", "", "Email address")
		cmd.Flags().StringVar(&userRole, "role", "", "Role: ADMIN, BRANCH_MANAGER, WAITER, COUNTER or KITCHEN")
		cmd.Flags().Int64Var(&userBranchID, "branch", 0, "Branch id")
		cmd.Flags().BoolVar(&userInactive, "inactive", false, "Mark the account inactive")
	}
	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

// runWithExit adapts a runX function to a cobra Run with signal handling.
func runWithExit(fn func(ctx context.Context, w io.Writer, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := fn(ctx, os.Stdout, args); exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

// parseID parses a numeric id argument.
func parseID(w io.Writer, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Invalid id %q\n", raw)
		return 0, false
	}
	return id, true
}

// apiClient loads config and builds a bootstrapped client. On failure the
// error is already printed and ok is false; callers exit with code 2.
func apiClient(ctx context.Context, w io.Writer) (c *client.Client, branchID int64, ok bool) {
	cfg, err := loadConfig()
	if err != nil {
		fail(w, err)
		return nil, 0, false
	}
	c, err = bootstrapClient(ctx, cfg)
	if err != nil {
		fail(w, err)
		return nil, 0, false
	}
	return c, cfg.BranchID, true
}

func runUsersList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	users, err := c.ListUsers(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, users)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-16s %-20s %-16s %-12s %-6s\n", "ID", "USERNAME", "NAME", "ROLE", "BRANCH", "ACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%-5d %-16s %-20s %-16s %-12s %-6s\n",
			u.ID, u.Username, orDash(u.FullName), u.Role, orDash(u.BranchName), yesNo(u.IsActive))
	}
	return 0
}

func runUsersShow(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	user, err := c.GetUser(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, user)
		return 0
	}
	fmt.Fprintf(w, "ID:       %d\n", user.ID)
	fmt.Fprintf(w, "Username: %s\n", user.Username)
	fmt.Fprintf(w, "Name:     %s\n", orDash(user.FullName))
	fmt.Fprintf(w, "Email:    %s\n", orDash(user.Email))
	fmt.Fprintf(w, "Role:     %s\n", user.Role)
	fmt.Fprintf(w, "Branch:   %s\n", orDash(user.BranchName))
	fmt.Fprintf(w, "Active:   %s\n", yesNo(user.IsActive))
	return 0
}

func runUsersCreate(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	user, err := c.CreateUser(ctx, userInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, user)
		return 0
	}
	fmt.Fprintf(w, "Created user %d (%s)\n", user.ID, user.Username)
	return 0
}

func runUsersUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	user, err := c.UpdateUser(ctx, id, userInputFromFlags())
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, user)
		return 0
	}
	fmt.Fprintf(w, "Updated user %d (%s)\n", user.ID, user.Username)
	return 0
}

func runUsersDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteUser(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted user %d\n", id)
	return 0
}

func userInputFromFlags() client.UserInput {
	input := client.UserInput{
		Username: userUsername,
		Password: userPassword,
		FullName: userFullName,
		Email:    userEmail,
		Role:     userRole,
	}
	if userBranchID > 0 {
		input.BranchID = &userBranchID
	}
	if userInactive {
		active := false
		input.IsActive = &active
	}
	return input
}
