// Package dispatch implements the edit-check dispatcher: given the path of a
// file that was just modified, it finds every enabled check rule whose glob
// patterns match the path, substitutes the path into the rule's command
// template, runs the command, and collects the outcomes into a single report.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/larryhudson/claude-code-dev-starter/internal/glob"
)

// defaultTimeout applies when a rule reaches the dispatcher with no
// resolved timeout.
const defaultTimeout = 30 * time.Second

// Rule is a single check rule with its configuration already resolved.
type Rule struct {
	Name     string
	Patterns []string
	Command  string
	Enabled  bool
	Timeout  time.Duration
}

// Event describes one file modification delivered by the host tool.
type Event struct {
	FilePath string
	ToolName string
}

// Options tune how matched commands are executed.
type Options struct {
	// Parallel runs matched commands concurrently. Report order is rule
	// declaration order either way.
	Parallel    bool
	MaxParallel int
}

// Dispatcher matches edit events against check rules and runs the commands
// of the rules that fire.
type Dispatcher struct {
	cmd  CommandRunner
	dir  string
	opts Options
	warn func(format string, args ...interface{})
}

// New creates a Dispatcher that executes commands with projectDir as the
// working directory.
func New(cmd CommandRunner, projectDir string, opts Options) *Dispatcher {
	return &Dispatcher{
		cmd:  cmd,
		dir:  projectDir,
		opts: opts,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// Dispatch evaluates every rule against the event in declaration order and
// runs the commands of enabled rules whose patterns match the file path.
// Rules that do not fire are omitted from the report entirely. A rule with a
// malformed pattern is skipped with a warning; it never aborts the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, rules []Rule) *Report {
	report := &Report{FilePath: event.FilePath, ToolName: event.ToolName, Checks: []Result{}, Success: true}
	if event.FilePath == "" {
		return report
	}

	var matched []Rule
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		ok, err := glob.MatchAny(event.FilePath, rule.Patterns)
		if err != nil {
			d.warn("skipping check %q: %v", rule.Name, err)
			continue
		}
		if ok {
			matched = append(matched, rule)
		}
	}
	if len(matched) == 0 {
		return report
	}

	results := make([]Result, len(matched))
	if d.opts.Parallel && len(matched) > 1 {
		limit := d.opts.MaxParallel
		if limit <= 0 {
			limit = -1
		}
		var g errgroup.Group
		g.SetLimit(limit)
		for i, rule := range matched {
			g.Go(func() error {
				results[i] = d.runRule(ctx, event, rule)
				return nil
			})
		}
		g.Wait()
	} else {
		for i, rule := range matched {
			results[i] = d.runRule(ctx, event, rule)
		}
	}

	report.Checks = results
	for _, res := range results {
		if !res.Passed() {
			report.Success = false
			break
		}
	}
	return report
}

// runRule executes one matched rule's command with its timeout applied.
func (d *Dispatcher) runRule(ctx context.Context, event Event, rule Rule) Result {
	command := Expand(rule.Command, event.FilePath)

	timeout := rule.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, exitCode, err := d.cmd.Run(rctx, d.dir, command)
	durationMs := int(time.Since(start).Milliseconds())

	res := Result{
		RuleName:   rule.Name,
		Command:    command,
		Matched:    true,
		ExitCode:   exitCode,
		Stdout:     stdout,
		Stderr:     stderr,
		DurationMs: durationMs,
	}

	if rctx.Err() == context.DeadlineExceeded && (err != nil || exitCode != 0) {
		res.ExitCode = -1
		res.TimedOut = true
		res.Stderr = fmt.Sprintf("command timed out after %s: %s", timeout, command)
		return res
	}
	if err != nil {
		res.ExitCode = -1
		res.Stderr = fmt.Sprintf("error running command: %v", err)
	}
	return res
}

// Expand substitutes {file} with the file path and {dir} with its containing
// directory in a command template. Unknown placeholders are left verbatim.
func Expand(template, filePath string) string {
	expanded := strings.ReplaceAll(template, "{file}", filePath)
	return strings.ReplaceAll(expanded, "{dir}", filepath.Dir(filePath))
}
