package cli

import (
	"fmt"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/scaffold"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold starter files and register the edit-check hook",
	Long: `Write the starter files into a project directory: a Makefile, a Procfile,
an environment template, a check config matched to the detected project type,
and the Claude Code settings entry that runs "devstarter hook" after edits.

Existing files are left alone unless --force is given, so init is safe to
re-run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		typeFlag, _ := cmd.Flags().GetString("type")
		skipSettings, _ := cmd.Flags().GetBool("skip-settings")

		ptype, err := parseProjectType(typeFlag)
		if err != nil {
			return err
		}

		res, err := scaffold.Scaffold(dir, scaffold.Options{
			Force:        force,
			Type:         ptype,
			SkipSettings: skipSettings,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Project type: %s\n\n", res.Type)
		for _, f := range res.Written {
			fmt.Fprintf(w, "  created %s\n", f)
		}
		for _, f := range res.Skipped {
			fmt.Fprintf(w, "  skipped %s (exists, use --force to overwrite)\n", f)
		}
		fmt.Fprintf(w, "\nNext steps:\n")
		fmt.Fprintf(w, "  - review %s and enable the checks you want\n", config.FileName)
		fmt.Fprintf(w, "  - run \"make help\" to see the available targets\n")
		return nil
	},
}

// parseProjectType validates the --type flag value.
func parseProjectType(s string) (scaffold.ProjectType, error) {
	switch scaffold.ProjectType(s) {
	case "", scaffold.ProjectGo, scaffold.ProjectNode, scaffold.ProjectPython, scaffold.ProjectGeneric:
		return scaffold.ProjectType(s), nil
	default:
		return "", fmt.Errorf("unknown project type %q (expected go, node, python, or generic)", s)
	}
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite starter files that already exist")
	initCmd.Flags().String("type", "", "Override project detection: go, node, python, or generic")
	initCmd.Flags().Bool("skip-settings", false, "Do not touch .claude/settings.local.json")
}
