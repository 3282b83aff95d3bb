package hook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/larryhudson/claude-code-dev-starter/internal/dispatch"
)

const samplePayload = `{
  "session_id": "abc123",
  "transcript_path": "/tmp/transcript.jsonl",
  "cwd": "/home/dev/project",
  "hook_event_name": "PostToolUse",
  "tool_name": "Edit",
  "tool_input": {
    "file_path": "src/app.ts",
    "old_string": "a",
    "new_string": "b"
  }
}`

func TestParse(t *testing.T) {
	in, err := Parse(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if in.SessionID != "abc123" {
		t.Errorf("SessionID = %q", in.SessionID)
	}
	if in.CWD != "/home/dev/project" {
		t.Errorf("CWD = %q", in.CWD)
	}
	if in.HookEventName != "PostToolUse" {
		t.Errorf("HookEventName = %q", in.HookEventName)
	}
	if in.ToolName != "Edit" {
		t.Errorf("ToolName = %q", in.ToolName)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestEditedFile(t *testing.T) {
	tests := []struct {
		name      string
		toolName  string
		toolInput map[string]interface{}
		wantPath  string
		wantOK    bool
	}{
		{"write", "Write", map[string]interface{}{"file_path": "main.go", "content": "x"}, "main.go", true},
		{"edit", "Edit", map[string]interface{}{"file_path": "src/app.ts"}, "src/app.ts", true},
		{"multi edit", "MultiEdit", map[string]interface{}{"file_path": "lib/util.py"}, "lib/util.py", true},
		{"notebook edit", "NotebookEdit", map[string]interface{}{"notebook_path": "analysis.ipynb"}, "analysis.ipynb", true},
		{"bash has no file", "Bash", map[string]interface{}{"command": "ls"}, "", false},
		{"nil tool input", "Edit", nil, "", false},
		{"non-string path", "Edit", map[string]interface{}{"file_path": 42}, "", false},
		{"empty path", "Edit", map[string]interface{}{"file_path": ""}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Input{ToolName: tt.toolName, ToolInput: tt.toolInput}
			path, ok := in.EditedFile()
			if path != tt.wantPath || ok != tt.wantOK {
				t.Errorf("EditedFile() = (%q, %v), want (%q, %v)", path, ok, tt.wantPath, tt.wantOK)
			}
		})
	}
}

func TestNewResponse_EmptyReport(t *testing.T) {
	for _, report := range []*dispatch.Report{nil, {FilePath: "a.go", Checks: []dispatch.Result{}, Success: true}} {
		resp := NewResponse(report, false)
		var buf bytes.Buffer
		if err := resp.Write(&buf); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "{}" {
			t.Errorf("empty report must encode as {}, got %s", got)
		}
	}
}

func TestNewResponse_Checks(t *testing.T) {
	report := &dispatch.Report{
		FilePath: "src/app.ts",
		Checks: []dispatch.Result{
			{RuleName: "ts-lint", Command: "npx eslint src/app.ts", Matched: true, ExitCode: 0, Stdout: "clean\n", DurationMs: 120},
			{RuleName: "ts-test", Command: "npx vitest run", Matched: true, ExitCode: 1, Stderr: "2 tests failed\n", DurationMs: 900},
		},
	}

	resp := NewResponse(report, false)
	if resp.HookSpecificOutput == nil {
		t.Fatal("expected hookSpecificOutput")
	}
	if resp.HookSpecificOutput.HookEventName != "PostToolUse" {
		t.Errorf("hookEventName = %q", resp.HookSpecificOutput.HookEventName)
	}
	checks := resp.HookSpecificOutput.Checks
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if checks[0].Name != "ts-lint" || !checks[0].Success {
		t.Errorf("first check = %+v", checks[0])
	}
	if checks[0].Output != "clean" {
		t.Errorf("first check output = %q, want trimmed stdout", checks[0].Output)
	}
	if checks[1].Name != "ts-test" || checks[1].Success {
		t.Errorf("second check = %+v", checks[1])
	}
	if checks[1].ExitCode != 1 {
		t.Errorf("second check exit_code = %d", checks[1].ExitCode)
	}
	if !strings.Contains(resp.SystemMessage, "ran 2 checks, 1 failed") {
		t.Errorf("systemMessage = %q", resp.SystemMessage)
	}
	if !strings.Contains(resp.SystemMessage, "2 tests failed") {
		t.Errorf("systemMessage should carry failing output, got %q", resp.SystemMessage)
	}
	if resp.Decision != "" {
		t.Errorf("decision should be empty without block, got %q", resp.Decision)
	}
}

func TestNewResponse_BlockOnFailure(t *testing.T) {
	report := &dispatch.Report{
		FilePath: "src/app.ts",
		Checks: []dispatch.Result{
			{RuleName: "ts-lint", Command: "npx eslint src/app.ts", Matched: true, ExitCode: 1, Stderr: "nope"},
		},
	}

	resp := NewResponse(report, true)
	if resp.Decision != "block" {
		t.Errorf("decision = %q, want block", resp.Decision)
	}
	if resp.Reason == "" {
		t.Error("expected a reason alongside the blocking decision")
	}
}

func TestNewResponse_NoBlockWhenPassing(t *testing.T) {
	report := &dispatch.Report{
		FilePath: "src/app.ts",
		Checks: []dispatch.Result{
			{RuleName: "ts-lint", Command: "npx eslint src/app.ts", Matched: true, ExitCode: 0},
		},
		Success: true,
	}

	resp := NewResponse(report, true)
	if resp.Decision != "" {
		t.Errorf("passing report must not block, got decision %q", resp.Decision)
	}
	if resp.SystemMessage != "" {
		t.Errorf("passing report needs no systemMessage, got %q", resp.SystemMessage)
	}
}

func TestResponse_WireCasing(t *testing.T) {
	report := &dispatch.Report{
		Checks:  []dispatch.Result{{RuleName: "lint", Command: "true", Matched: true, ExitCode: 0}},
		Success: true,
	}

	var buf bytes.Buffer
	if err := NewResponse(report, false).Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	raw := buf.String()
	for _, key := range []string{`"hookSpecificOutput"`, `"hookEventName":"PostToolUse"`, `"checks"`} {
		if !strings.Contains(raw, key) {
			t.Errorf("encoded response missing %s: %s", key, raw)
		}
	}
}
