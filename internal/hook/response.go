package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/larryhudson/claude-code-dev-starter/internal/dispatch"
)

const eventName = "PostToolUse"

// Check is one check outcome in the wire format surfaced to Claude Code.
type Check struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Output     string `json:"output"`
	Command    string `json:"command,omitempty"`
	ExitCode   int    `json:"exit_code"`
	TimedOut   bool   `json:"timed_out,omitempty"`
	DurationMs int    `json:"duration_ms,omitempty"`
}

// SpecificOutput is the hookSpecificOutput block of a PostToolUse response.
type SpecificOutput struct {
	HookEventName string  `json:"hookEventName"`
	Checks        []Check `json:"checks"`
}

// Response is the JSON document written to stdout for Claude Code. The zero
// value marshals to {}, the "nothing to report" response.
type Response struct {
	Decision           string          `json:"decision,omitempty"`
	Reason             string          `json:"reason,omitempty"`
	SystemMessage      string          `json:"systemMessage,omitempty"`
	HookSpecificOutput *SpecificOutput `json:"hookSpecificOutput,omitempty"`
}

// NewResponse builds the hook response for a dispatch report. A report with
// no fired checks produces the empty response so Claude Code ignores the
// event. When block is true and a check failed, the response carries a
// blocking decision so the failure is fed back to the model for remediation.
func NewResponse(report *dispatch.Report, block bool) *Response {
	if report == nil || len(report.Checks) == 0 {
		return &Response{}
	}

	out := &SpecificOutput{
		HookEventName: eventName,
		Checks:        make([]Check, 0, len(report.Checks)),
	}
	for _, res := range report.Checks {
		out.Checks = append(out.Checks, Check{
			Name:       res.RuleName,
			Success:    res.Passed(),
			Output:     res.Output(),
			Command:    res.Command,
			ExitCode:   res.ExitCode,
			TimedOut:   res.TimedOut,
			DurationMs: res.DurationMs,
		})
	}

	resp := &Response{HookSpecificOutput: out}
	if !report.Success {
		msg := failureMessage(report)
		resp.SystemMessage = msg
		if block {
			resp.Decision = "block"
			resp.Reason = msg
		}
	}
	return resp
}

// failureMessage renders the summary line plus each failing check's output.
func failureMessage(report *dispatch.Report) string {
	var b strings.Builder
	b.WriteString(report.Summary())
	for _, res := range report.Checks {
		if res.Passed() {
			continue
		}
		fmt.Fprintf(&b, "\n\n%s (exit %d):\n%s", res.RuleName, res.ExitCode, res.Output())
	}
	return b.String()
}

// Write encodes the response as a single JSON line on w.
func (r *Response) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}
