// ABOUTME: Logout command ending the saved session
// ABOUTME: Local state clears even when the server is unreachable

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  `Invalidate the saved session on the server and clear local credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogout(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	c.Logout(ctx)
	fmt.Fprintln(w, "Logged out.")
	return 0
}
