package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "devstarter",
	Short: "devstarter — project scaffolding with automatic edit checks",
	Long: `devstarter scaffolds a project for Claude Code and runs configured checks
whenever Claude edits a file.

Checks are defined in .post-claude-edit-config.yaml at the project root and
are dispatched by the PostToolUse hook that "devstarter init" registers in
.claude/settings.local.json. Dispatch history is stored in
~/.devstarter/history.db (SQLite).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
