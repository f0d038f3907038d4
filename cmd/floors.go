// ABOUTME: Floor and table layout commands
// ABOUTME: List and change the seating layout of a branch

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
)

var (
	floorName   string
	floorBranch int64
	floorTables []string
)

var floorsCmd = &cobra.Command{
	Use:   "floors",
	Short: "Manage floors and tables",
}

var floorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List floors with their tables",
	Run:   runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runFloorsList(ctx, w) }),
}

var floorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a floor",
	Long: `Add a floor with its tables.

Each --table is number:seats, e.g. --table T1:4 --table T2:2.`,
	Run: runWithExit(func(ctx context.Context, w io.Writer, args []string) int { return runFloorsCreate(ctx, w) }),
}

var floorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a floor's name or tables",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runFloorsUpdate),
}

var floorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a floor",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runFloorsDelete),
}

func init() {
	for _, cmd := range []*cobra.Command{floorsCreateCmd, floorsUpdateCmd} {
		cmd.Flags().StringVar(&floorName, "name", "", "Floor name")
		cmd.Flags().Int64Var(&floorBranch, "branch", 0, "Branch id")
		cmd.Flags().StringArrayVar(&floorTables, "table", nil, "Table as number:seats (repeatable)")
	}
	floorsCmd.AddCommand(floorsListCmd, floorsCreateCmd, floorsUpdateCmd, floorsDeleteCmd)
	rootCmd.AddCommand(floorsCmd)
}

func runFloorsList(ctx context.Context, w io.Writer) int {
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	floors, err := c.ListFloors(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, floors)
		return 0
	}

	for _, f := range floors {
		fmt.Fprintf(w, "%d  %s\n", f.ID, f.Name)
		for _, t := range f.Tables {
			fmt.Fprintf(w, "    %-8s %d seats  %s\n", t.Number, t.Seats, orDash(t.Status))
		}
	}
	return 0
}

func runFloorsCreate(ctx context.Context, w io.Writer) int {
	tables, err := parseTableLines(floorTables)
	if err != nil {
		fmt.Fprintln(w, err)
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	floor, err := c.CreateFloor(ctx, floorInput(tables))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, floor)
		return 0
	}
	fmt.Fprintf(w, "Created floor %d (%s) with %d tables\n", floor.ID, floor.Name, len(floor.Tables))
	return 0
}

func runFloorsUpdate(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	tables, err := parseTableLines(floorTables)
	if err != nil {
		fmt.Fprintln(w, err)
		return 1
	}

	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	floor, err := c.UpdateFloor(ctx, id, floorInput(tables))
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, floor)
		return 0
	}
	fmt.Fprintf(w, "Updated floor %d (%s)\n", floor.ID, floor.Name)
	return 0
}

func runFloorsDelete(ctx context.Context, w io.Writer, args []string) int {
	id, ok := parseID(w, args[0])
	if !ok {
		return 1
	}
	c, _, ok := apiClient(ctx, w)
	if !ok {
		return 2
	}

	if err := c.DeleteFloor(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Deleted floor %d\n", id)
	return 0
}

func floorInput(tables []client.Table) client.FloorInput {
	input := client.FloorInput{Name: floorName, Tables: tables}
	if floorBranch > 0 {
		input.Branch = &floorBranch
	}
	return input
}

// parseTableLines parses repeated number:seats flags.
func parseTableLines(lines []string) ([]client.Table, error) {
	tables := make([]client.Table, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid table %q: expected number:seats", line)
		}
		seats, err := strconv.Atoi(parts[1])
		if err != nil || seats <= 0 {
			return nil, fmt.Errorf("invalid seat count in table %q", line)
		}
		tables = append(tables, client.Table{Number: parts[0], Seats: seats})
	}
	return tables, nil
}
