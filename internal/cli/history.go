package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/larryhudson/claude-code-dev-starter/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past check dispatches",
	Long: `Show dispatch history from ~/.devstarter/history.db. By default the most
recent runs are listed; use --file to narrow to one file, --run to see the
check results of a single dispatch, or --check to follow one check across
dispatches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileFilter, _ := cmd.Flags().GetString("file")
		runID, _ := cmd.Flags().GetString("run")
		checkFilter, _ := cmd.Flags().GetString("check")
		limit, _ := cmd.Flags().GetInt("limit")
		clear, _ := cmd.Flags().GetBool("clear")

		d, cleanup, err := openDB()
		if err != nil {
			return err
		}
		defer cleanup()

		w := cmd.OutOrStdout()
		if clear {
			if err := d.Reset(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(w, "History cleared.")
			return nil
		}
		switch {
		case runID != "":
			results, err := d.ResultsForRun(runID)
			if err != nil {
				return err
			}
			printHistoryResults(w, results)
		case checkFilter != "":
			results, err := d.ResultsForCheck(checkFilter, limit)
			if err != nil {
				return err
			}
			printHistoryResults(w, results)
		case fileFilter != "":
			runs, err := d.RunsForFile(fileFilter, limit)
			if err != nil {
				return err
			}
			printHistoryRuns(w, runs)
		default:
			runs, err := d.RecentRuns(limit)
			if err != nil {
				return err
			}
			printHistoryRuns(w, runs)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("file", "", "Show runs for one file path")
	historyCmd.Flags().String("run", "", "Show the check results of one run ID")
	historyCmd.Flags().String("check", "", "Show results of one named check across runs")
	historyCmd.Flags().Int("limit", 20, "Maximum rows to show")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded history")
}

func printHistoryRuns(w io.Writer, runs []db.DispatchRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No dispatch history found.")
		return
	}
	fmt.Fprintf(w, "%-19s %-36s %-34s %-10s %-6s %s\n", "TIME", "RUN", "FILE", "TOOL", "CHECKS", "RESULT")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 112))
	for _, r := range runs {
		result := "PASS"
		if !r.Success {
			result = fmt.Sprintf("FAIL (%d/%d)", r.ChecksFailed, r.ChecksRun)
		}
		fmt.Fprintf(w, "%-19s %-36s %-34s %-10s %-6d %s\n",
			r.Timestamp, r.ID, truncate(r.FilePath, 34), r.ToolName, r.ChecksRun, result)
	}
}

func printHistoryResults(w io.Writer, results []db.CheckResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "%-19s %-20s %-6s %-8s %s\n", "TIME", "CHECK", "EXIT", "DURATION", "OUTPUT")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 90))
	for _, r := range results {
		exit := fmt.Sprintf("%d", r.ExitCode)
		if r.TimedOut {
			exit = "T/O"
		}
		fmt.Fprintf(w, "%-19s %-20s %-6s %-8s %s\n",
			r.Timestamp, r.CheckName, exit, fmt.Sprintf("%dms", r.DurationMs), truncate(firstLine(r.Output), 40))
	}
}

// truncate shortens s to max characters with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// openDB opens and migrates the history database, returning it with a
// cleanup func.
func openDB() (*db.DB, func(), error) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}
