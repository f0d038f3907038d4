// ABOUTME: Root command for the amabakery staff console
// ABOUTME: Handles global flags, configuration, and client construction

package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
	"github.com/Acrsahil/AmaBakeryPos/internal/config"
	"github.com/Acrsahil/AmaBakeryPos/internal/logger"
	"github.com/Acrsahil/AmaBakeryPos/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "amabakery",
	Short: "Staff console for the AmaBakery POS backend",
	Long: `amabakery is a command-line staff console for the AmaBakery point-of-sale backend.

It covers the daily flow of a bakery: orders, payments, products, stock,
customers, and live kitchen and sales views.

Environment Variables:
  AMABAKERY_API_URL     Backend API URL (default: http://localhost:8000)
  AMABAKERY_BRANCH_ID   Branch scope for reports and live views
  AMABAKERY_CONFIG_DIR  Directory for saved session state`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AMABAKERY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// newClient builds the API client with the saved session loaded.
func newClient(cfg *config.Config) (*client.Client, error) {
	store := session.NewStore(cfg.ConfigDir)
	c, err := client.New(client.Config{
		BaseURL:    cfg.APIURL,
		Session:    store,
		CookiePath: filepath.Join(cfg.ConfigDir, "cookies.json"),
	})
	if err != nil {
		return nil, err
	}
	c.OnUnauthorized(func() {
		slog.Debug("session could not be refreshed; local credentials cleared")
	})
	return c, nil
}

// bootstrapClient builds the client and silently resumes a saved session.
// Commands that require authentication call this before their first request.
func bootstrapClient(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	c.Bootstrap(ctx)
	return c, nil
}
