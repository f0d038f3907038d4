// ABOUTME: Admin command setting a new password for another staff account
// ABOUTME: Takes the user id as an argument and prompts for the password

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetPasswordValue string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <user-id>",
	Short: "Reset another user's password (admin only)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runResetPassword(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetPasswordValue, "password", "", "New password (prompted when omitted)")
	rootCmd.AddCommand(resetPasswordCmd)
}

func runResetPassword(ctx context.Context, w io.Writer, rawID string) int {
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Invalid user id %q\n", rawID)
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	password := resetPasswordValue
	if password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		))
		if err := form.Run(); err != nil {
			return fail(w, err)
		}
	}

	if err := c.AdminResetPassword(ctx, userID, password); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Password reset for user %d.\n", userID)
	return 0
}
