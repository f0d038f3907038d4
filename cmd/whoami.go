// ABOUTME: Whoami command showing the logged-in identity
// ABOUTME: Reads the token claims locally, falling back to the profile endpoint

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	identity, err := c.Session().Identity()
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			fmt.Fprintln(w, "Not logged in. Run 'amabakery login' first.")
			return 1
		}
		// Claims unreadable: ask the server instead.
		user, merr := c.Me(ctx)
		if merr != nil {
			return fail(w, merr)
		}
		if IsJSONOutput() {
			printJSON(w, user)
			return 0
		}
		fmt.Fprintf(w, "%s (%s)\n", user.Username, user.Role)
		return 0
	}

	if IsJSONOutput() {
		printJSON(w, identity)
		return 0
	}
	fmt.Fprintf(w, "User:   %s\n", identity.Username)
	fmt.Fprintf(w, "Role:   %s\n", identity.Role)
	if identity.BranchName != "" {
		fmt.Fprintf(w, "Branch: %s\n", identity.BranchName)
	}
	return 0
}
