package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
	"github.com/larryhudson/claude-code-dev-starter/internal/dispatch"
	"github.com/larryhudson/claude-code-dev-starter/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch the project and run checks as files change",
	Long: `Watch the project tree and dispatch the configured checks whenever a file
is written, no matter which editor wrote it. The check config is re-read on
every dispatch, so edits to it take effect immediately.

Files that match no check pattern are ignored silently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := config.ProjectDir()
		if len(args) == 1 {
			root = args[0]
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")
		ignore, _ := cmd.Flags().GetStringArray("ignore")

		// Fail fast when the project has no usable config.
		cfg, err := config.LoadProject(root)
		if err != nil {
			if errors.Is(err, config.ErrNotFound) {
				return fmt.Errorf("no %s found in %s (run \"devstarter init\" to create one)", config.FileName, root)
			}
			return err
		}

		out := cmd.OutOrStdout()
		errOut := cmd.ErrOrStderr()

		handler := func(ctx context.Context, path string) {
			cfg, err := config.LoadProject(root)
			if err != nil {
				fmt.Fprintf(errOut, "watch: %v\n", err)
				return
			}
			d := dispatch.New(&dispatch.ExecRunner{}, root, dispatch.Options{
				Parallel:    cfg.Settings.Parallel,
				MaxParallel: cfg.Settings.MaxParallelOrDefault(),
			})
			event := dispatch.Event{FilePath: relativeToProject(root, path), ToolName: "watch"}
			report := d.Dispatch(ctx, event, rulesFromConfig(cfg))
			if len(report.Checks) == 0 {
				return
			}
			logDispatchHistory(report)

			fmt.Fprintf(out, "\n%s %s\n", time.Now().Format("15:04:05"), report.FilePath)
			printReport(out, report)
		}

		w, err := watch.New(root, handler, watch.Options{Debounce: debounce, Ignore: ignore})
		if err != nil {
			return err
		}
		defer w.Close()

		absRoot, err := filepath.Abs(root)
		if err != nil {
			absRoot = root
		}
		fmt.Fprintf(out, "watching %s (%d checks configured), Ctrl-C to stop\n", absRoot, len(cfg.Checks))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			cancel()
		}()

		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "How long a file must stay quiet before checks run")
	watchCmd.Flags().StringArray("ignore", nil, "Extra basename globs to ignore (repeatable)")
}
