package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/dispatch"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run and inspect the configured edit checks",
}

var checkRunCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run all checks whose patterns match a file",
	Long: `Run the configured checks against a file as if Claude Code had just edited
it. This is the manual equivalent of the PostToolUse hook and is useful for
trying out patterns and commands while editing the check config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, projectDir, err := loadProjectConfig()
		if err != nil {
			return err
		}

		d := dispatch.New(&dispatch.ExecRunner{}, projectDir, dispatch.Options{
			Parallel:    cfg.Settings.Parallel,
			MaxParallel: cfg.Settings.MaxParallelOrDefault(),
		})
		report := d.Dispatch(cmd.Context(), dispatch.Event{FilePath: filePath}, rulesFromConfig(cfg))

		logDispatchHistory(report)

		if asJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			printReport(cmd.OutOrStdout(), report)
		}

		if !report.Success {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d of %d checks failed", report.Failed(), len(report.Checks))
		}
		return nil
	},
}

var checkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks defined in the project config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadProjectConfig()
		if err != nil {
			return err
		}

		if len(cfg.Checks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No checks configured.")
			return nil
		}

		base := cfg.Settings.CommandTimeout()
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s %-8s %-8s %-28s %s\n", "NAME", "ENABLED", "TIMEOUT", "PATTERNS", "COMMAND")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 90))
		for _, c := range cfg.Checks {
			enabled := "yes"
			if !c.IsEnabled() {
				enabled = "no"
			}
			fmt.Fprintf(w, "%-20s %-8s %-8s %-28s %s\n",
				c.Name, enabled, c.CommandTimeout(base), strings.Join(c.Patterns, ","), c.Command)
		}
		return nil
	},
}

func init() {
	checkRunCmd.Flags().Bool("json", false, "Print the dispatch report as JSON")

	checkCmd.AddCommand(checkRunCmd)
	checkCmd.AddCommand(checkListCmd)
}

// loadProjectConfig loads the check config from the project root, turning a
// missing file into a friendly error for interactive commands.
func loadProjectConfig() (*config.Config, string, error) {
	projectDir := config.ProjectDir()
	cfg, err := config.LoadProject(projectDir)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, projectDir, fmt.Errorf("no %s found in %s (run \"devstarter init\" to create one)", config.FileName, projectDir)
		}
		return nil, projectDir, err
	}
	return cfg, projectDir, nil
}

// printReport writes a human-readable dispatch report.
func printReport(w io.Writer, report *dispatch.Report) {
	for _, c := range report.Checks {
		icon := "PASS"
		if !c.Passed() {
			icon = "FAIL"
		}
		extra := ""
		if c.TimedOut {
			extra = " (timed out)"
		}
		fmt.Fprintf(w, "[%s] %s — %s (%dms)%s\n", icon, c.RuleName, c.Command, c.DurationMs, extra)
		if !c.Passed() {
			if out := c.Output(); out != "" {
				fmt.Fprintln(w, indent(out, "    "))
			}
		}
	}
	fmt.Fprintf(w, "\n%s\n", report.Summary())
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
