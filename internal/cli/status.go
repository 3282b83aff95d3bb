package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/db"
	"github.com/larryhudson/claude-code-dev-starter/internal/devserver"
	"github.com/larryhudson/claude-code-dev-starter/internal/scaffold"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project, hook, and dev server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.ProjectDir()
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "Project:    %s (%s)\n", dir, scaffold.Detect(dir))

		cfg, err := config.LoadProject(dir)
		switch {
		case errors.Is(err, config.ErrNotFound):
			fmt.Fprintf(w, "Checks:     none (run \"devstarter init\" to create %s)\n", config.FileName)
		case err != nil:
			fmt.Fprintf(w, "Checks:     config error: %v\n", err)
		default:
			enabled := 0
			for _, c := range cfg.Checks {
				if c.IsEnabled() {
					enabled++
				}
			}
			fmt.Fprintf(w, "Checks:     %d configured, %d enabled\n", len(cfg.Checks), enabled)
		}

		settingsPath := filepath.Join(dir, ".claude", "settings.local.json")
		if data, err := os.ReadFile(settingsPath); err == nil && bytes.Contains(data, []byte("PostToolUse")) {
			fmt.Fprintf(w, "Hook:       registered in %s\n", filepath.Join(".claude", "settings.local.json"))
		} else {
			fmt.Fprintf(w, "Hook:       not registered (run \"devstarter init\")\n")
		}

		state, pid := devserver.Probe(devserver.PIDPath(dir))
		switch state {
		case devserver.StateRunning:
			fmt.Fprintf(w, "Dev server: running (pid %d)\n", pid)
		case devserver.StateStale:
			fmt.Fprintf(w, "Dev server: not running (stale pid file, pid %d)\n", pid)
		default:
			fmt.Fprintf(w, "Dev server: not running\n")
		}

		if run, ok := lastDispatch(); ok {
			result := "all passed"
			if !run.Success {
				result = fmt.Sprintf("%d of %d failed", run.ChecksFailed, run.ChecksRun)
			}
			fmt.Fprintf(w, "Last run:   %s, %s (%s)\n", run.FilePath, result, run.Timestamp)
		}

		return nil
	},
}

// lastDispatch returns the most recent dispatch run, if the history database
// exists and has one.
func lastDispatch() (db.DispatchRun, bool) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return db.DispatchRun{}, false
	}
	d, err := db.Open(dbPath)
	if err != nil {
		return db.DispatchRun{}, false
	}
	defer d.Close()
	if err := d.Migrate(); err != nil {
		return db.DispatchRun{}, false
	}
	runs, err := d.RecentRuns(1)
	if err != nil || len(runs) == 0 {
		return db.DispatchRun{}, false
	}
	return runs[0], true
}
