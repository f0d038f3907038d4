// ABOUTME: Password change command for the logged-in user
// ABOUTME: Prompts with hidden input and confirms the new password

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPasswd(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	var oldPassword, newPassword, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(&oldPassword),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&newPassword),
		huh.NewInput().
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return fail(w, err)
	}
	if newPassword != confirm {
		fmt.Fprintln(w, "Passwords do not match.")
		return 1
	}

	if err := c.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Password changed.")
	return 0
}
