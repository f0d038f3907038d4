// ABOUTME: Kitchen command launching the live order board TUI
// ABOUTME: Wires the orders WebSocket channel into the bubbletea model

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/logger"
	"github.com/Acrsahil/AmaBakeryPos/internal/realtime"
	"github.com/Acrsahil/AmaBakeryPos/internal/tui/kitchen"
)

var kitchenCmd = &cobra.Command{
	Use:   "kitchen",
	Short: "Live kitchen order board",
	Long:  `Open the live kitchen board. Orders arrive over the orders channel and can be advanced through preparing, ready, and completed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runKitchen(ctx, os.Stderr); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(kitchenCmd)
}

func runKitchen(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	redirectLogs(cfg.ConfigDir, cfg.LogLevel)

	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	events := make(chan realtime.OrdersMessage, 16)
	states := make(chan realtime.State, 4)

	channel := realtime.NewOrdersChannel(cfg.APIURL, func(msg realtime.OrdersMessage) {
		select {
		case events <- msg:
		default: // board is behind; drop rather than block the read loop
		}
	})
	channel.OnStateChange(func(st realtime.State) {
		select {
		case states <- st:
		default:
		}
	})
	channel.Connect()
	defer channel.Close()

	board := kitchen.New(c, events, states)
	p := tea.NewProgram(board, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fail(w, err)
	}
	return 0
}

// redirectLogs sends slog output to a file so it does not corrupt the
// alternate screen.
func redirectLogs(configDir, level string) {
	if configDir == "" {
		return
	}
	path := filepath.Join(configDir, "console.log")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	logger.InitWriter(f, level, "text")
}
