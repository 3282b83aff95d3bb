package dispatch

import (
	"fmt"
	"strings"
)

// Result records the outcome of one check rule that fired.
type Result struct {
	RuleName   string `json:"rule_name"`
	Command    string `json:"command"`
	Matched    bool   `json:"matched"`
	ExitCode   int    `json:"exit_code"`
	TimedOut   bool   `json:"timed_out,omitempty"`
	DurationMs int    `json:"duration_ms"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
}

// Passed reports whether the command completed with exit code zero.
func (r Result) Passed() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// Output returns stdout and stderr combined and trimmed, the form the hook
// protocol surfaces to the caller.
func (r Result) Output() string {
	return strings.TrimSpace(r.Stdout + r.Stderr)
}

// Report aggregates the results of a single dispatch. Checks holds one
// Result per rule that fired, in rule declaration order. Success is true
// iff every executed command exited zero.
type Report struct {
	FilePath string   `json:"file_path"`
	ToolName string   `json:"tool_name,omitempty"`
	Checks   []Result `json:"checks"`
	Success  bool     `json:"success"`
}

// Failed returns the number of checks that did not pass.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Passed() {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the dispatch outcome.
func (r *Report) Summary() string {
	if len(r.Checks) == 0 {
		return "no checks matched"
	}
	if failed := r.Failed(); failed > 0 {
		return fmt.Sprintf("ran %d checks, %d failed", len(r.Checks), failed)
	}
	return fmt.Sprintf("ran %d checks, all passed", len(r.Checks))
}
