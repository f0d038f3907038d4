// ABOUTME: Dashboard command launching the live sales view TUI
// ABOUTME: Wires the SSE dashboard stream into the bubbletea model

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/realtime"
	"github.com/Acrsahil/AmaBakeryPos/internal/tui/dashboard"
)

var dashboardBranch int64

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live sales dashboard",
	Long:  `Open the live sales dashboard. Figures update in place as the backend pushes them over the event stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runDashboard(ctx, os.Stderr); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	dashboardCmd.Flags().Int64Var(&dashboardBranch, "branch", 0, "Branch scope (overrides AMABAKERY_BRANCH_ID)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return fail(w, err)
	}
	redirectLogs(cfg.ConfigDir, cfg.LogLevel)

	c, err := bootstrapClient(ctx, cfg)
	if err != nil {
		return fail(w, err)
	}

	branchID := cfg.BranchID
	if dashboardBranch > 0 {
		branchID = dashboardBranch
	}

	updates := make(chan realtime.DashboardUpdate, 16)
	states := make(chan realtime.State, 4)

	stream := realtime.NewDashboardStream(cfg.APIURL, branchID, c.Session().AccessToken, func(u realtime.DashboardUpdate) {
		select {
		case updates <- u:
		default:
		}
	})
	stream.OnStateChange(func(st realtime.State) {
		select {
		case states <- st:
		default:
		}
	})
	stream.Connect()
	defer stream.Close()

	model := dashboard.New(c, branchID, updates, states)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fail(w, err)
	}
	return 0
}
