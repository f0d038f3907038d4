// ABOUTME: Reporting commands for dashboard and staff figures
// ABOUTME: Displays server-computed numbers; nothing is recomputed locally

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var reportBranch int64

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Sales and staff reports",
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Today's sales figures",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runReportDashboard(ctx, w) }),
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate company figures",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runReportSummary(ctx, w) }),
}

var reportStaffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Per-staff performance figures",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runReportStaff(ctx, w) }),
}

func init() {
	reportCmd.PersistentFlags().Int64Var(&reportBranch, "branch", 0, "Branch scope (overrides AMABAKERY_BRANCH_ID)")
	reportCmd.AddCommand(reportDashboardCmd, reportSummaryCmd, reportStaffCmd)
	rootCmd.AddCommand(reportCmd)
}

// reportScope resolves the report branch from flag or configuration.
func reportScope(configured int64) int64 {
	if reportBranch > 0 {
		return reportBranch
	}
	return configured
}

func runReportDashboard(ctx context.Context, w io.Writer) int {
	c, branchID, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	details, err := c.DashboardDetails(ctx, reportScope(branchID))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, details)
		return 0
	}

	fmt.Fprintf(w, "Today's Sales:  %.2f (%+.1f%%)\n", details.TodaySales, details.SalesPercent)
	fmt.Fprintf(w, "Orders:         %d (%+.1f%%)\n", details.TotalOrders, details.OrderPercent)
	fmt.Fprintf(w, "Avg Orders:     %.1f\n", details.AvgOrders)
	if len(details.PeakHours) > 0 {
		fmt.Fprintf(w, "Peak Hours:     %s\n", strings.Join(details.PeakHours, ", "))
	}
	if len(details.TopSellingItems) > 0 {
		fmt.Fprintln(w, "\nTop Sellers:")
		for _, item := range details.TopSellingItems {
			fmt.Fprintf(w, "  %-24s %d\n", item.Name, item.Quantity)
		}
	}
	if len(details.SalesByCategory) > 0 {
		fmt.Fprintln(w, "\nSales by Category:")
		for _, cat := range details.SalesByCategory {
			fmt.Fprintf(w, "  %-24s %s\n", cat.Category, cat.Total)
		}
	}
	return 0
}

func runReportSummary(ctx context.Context, w io.Writer) int {
	c, branchID, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	report, err := c.ReportDashboard(ctx, reportScope(branchID))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, report)
		return 0
	}

	fmt.Fprintf(w, "Total Sales:      %.2f\n", report.TotalSales)
	fmt.Fprintf(w, "Branches:         %d\n", report.TotalBranch)
	fmt.Fprintf(w, "Staff:            %d\n", report.TotalUser)
	fmt.Fprintf(w, "Orders:           %d\n", report.TotalCountOrder)
	fmt.Fprintf(w, "Avg Order Value:  %.2f\n", report.AverageOrderValue)
	if len(report.WeeklySales) > 0 {
		fmt.Fprintln(w, "\nWeekly Sales:")
		days := make([]string, 0, len(report.WeeklySales))
		for day := range report.WeeklySales {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			fmt.Fprintf(w, "  %-12s %.2f\n", day, report.WeeklySales[day])
		}
	}
	return 0
}

func runReportStaff(ctx context.Context, w io.Writer) int {
	c, branchID, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	figures, err := c.StaffReport(ctx, reportScope(branchID))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, figures)
		return 0
	}

	fmt.Fprintf(w, "%-5s %-16s %-16s %-8s %-12s\n", "ID", "USERNAME", "ROLE", "ORDERS", "SALES")
	for _, f := range figures {
		fmt.Fprintf(w, "%-5d %-16s %-16s %-8d %-12.2f\n",
			f.UserID, f.Username, orDash(f.Role), f.OrdersTaken, f.TotalSales)
	}
	return 0
}
