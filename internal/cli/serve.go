package cli

import (
	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/devserver"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local development API server",
	Long: `Start the starter API on localhost. The server answers /, /health, /docs,
and /users/{id}, allows cross-origin requests from anywhere, and shuts down
cleanly on Ctrl-C.

A pid file (.devstarter.pid) is written to the project root while the server
runs; "devstarter status" reads it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		dir := config.ProjectDir()
		return devserver.New(port, devserver.PIDPath(dir)).Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", devserver.DefaultPort, "Port to listen on")
}
