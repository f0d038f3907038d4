// ABOUTME: Login command exchanging credentials for a session
// ABOUTME: Prompts interactively with huh when flags are not given

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

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long:  `Authenticate against the backend and save the session for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns an exit code.
func runLogin(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	c, err := newClient(cfg)
	if err != nil {
		return fail(w, err)
	}

	username, password := loginUsername, loginPassword
	if username == "" || password == "" {
		if err := promptCredentials(&username, &password); err != nil {
			return fail(w, err)
		}
	}

	if err := c.Login(ctx, username, password); err != nil {
		return fail(w, err)
	}

	identity, err := c.Session().Identity()
	if err != nil {
		// The session is valid even if the token claims are unreadable.
		fmt.Fprintln(w, "Logged in.")
		return 0
	}

	if IsJSONOutput() {
		printJSON(w, identity)
		return 0
	}
	fmt.Fprintf(w, "Logged in as %s (%s)\n", identity.Username, identity.Role)
	if identity.BranchName != "" {
		fmt.Fprintf(w, "Branch: %s\n", identity.BranchName)
	}
	return 0
}

// promptCredentials asks for whichever credential is missing.
func promptCredentials(username, password *string) error {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(username))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
