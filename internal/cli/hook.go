package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/db"
	"github.com/larryhudson/claude-code-dev-starter/internal/dispatch"
	"github.com/larryhudson/claude-code-dev-starter/internal/hook"
	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run checks for a just-edited file (Claude Code PostToolUse hook)",
	Long: `Read a PostToolUse event from stdin, run the configured checks against the
edited file, and write the hook response JSON to stdout.

This command is registered in .claude/settings.local.json by "devstarter init"
and is normally invoked by Claude Code, not by hand. Events without a file
path, and projects without a check config, produce an empty response. The
exit code is zero whenever dispatch completes, even if checks fail; a
non-zero exit means the hook itself could not run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		input, err := hook.Parse(cmd.InOrStdin())
		if err != nil {
			return err
		}

		path, ok := input.EditedFile()
		if !ok {
			return hook.NewResponse(nil, false).Write(cmd.OutOrStdout())
		}

		projectDir := config.ProjectDir()
		path = relativeToProject(projectDir, path)

		cfg, err := config.LoadProject(projectDir)
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading check config: %w", err)
		}

		var rules []dispatch.Rule
		var opts dispatch.Options
		block := false
		if cfg != nil {
			rules = rulesFromConfig(cfg)
			opts = dispatch.Options{
				Parallel:    cfg.Settings.Parallel,
				MaxParallel: cfg.Settings.MaxParallelOrDefault(),
			}
			block = cfg.Settings.BlockOnFailure
		}

		d := dispatch.New(&dispatch.ExecRunner{}, projectDir, opts)
		report := d.Dispatch(cmd.Context(), dispatch.Event{FilePath: path, ToolName: input.ToolName}, rules)

		logDispatchHistory(report)

		return hook.NewResponse(report, block).Write(cmd.OutOrStdout())
	},
}

// relativeToProject rewrites an absolute path under the project root to a
// root-relative one, so directory-qualified patterns like "src/*.ts" match
// the paths Claude Code reports and commands receive short paths. Paths
// outside the project are passed through unchanged.
func relativeToProject(projectDir, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(projectDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// rulesFromConfig resolves config check rules into dispatch rules, applying
// the settings-level timeout to rules without their own.
func rulesFromConfig(cfg *config.Config) []dispatch.Rule {
	base := cfg.Settings.CommandTimeout()
	rules := make([]dispatch.Rule, 0, len(cfg.Checks))
	for _, c := range cfg.Checks {
		rules = append(rules, dispatch.Rule{
			Name:     c.Name,
			Patterns: c.Patterns,
			Command:  c.Command,
			Enabled:  c.IsEnabled(),
			Timeout:  c.CommandTimeout(base),
		})
	}
	return rules
}

// logDispatchHistory records the dispatch in ~/.devstarter/history.db.
// Logging is best-effort: a missing or broken history database never fails
// the hook. Dispatches where no checks matched are not recorded.
func logDispatchHistory(report *dispatch.Report) {
	if len(report.Checks) == 0 {
		return
	}
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return
	}
	defer d.Close()
	if err := d.Migrate(); err != nil {
		return
	}

	run := db.DispatchRun{
		ID:           uuid.New().String(),
		FilePath:     report.FilePath,
		ToolName:     report.ToolName,
		ChecksRun:    len(report.Checks),
		ChecksFailed: report.Failed(),
		Success:      report.Success,
	}
	results := make([]db.CheckResult, 0, len(report.Checks))
	for _, c := range report.Checks {
		results = append(results, db.CheckResult{
			RunID:      run.ID,
			CheckName:  c.RuleName,
			Command:    c.Command,
			ExitCode:   c.ExitCode,
			TimedOut:   c.TimedOut,
			DurationMs: c.DurationMs,
			Output:     c.Output(),
		})
	}
	_ = d.LogDispatch(run, results)
}
