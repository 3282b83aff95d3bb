// Package hook implements the Claude Code hook wire protocol: decoding the
// PostToolUse payload delivered on stdin and encoding the JSON response the
// tool expects on stdout.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is the payload Claude Code delivers to a PostToolUse hook.
type Input struct {
	SessionID      string                 `json:"session_id"`
	TranscriptPath string                 `json:"transcript_path"`
	CWD            string                 `json:"cwd"`
	HookEventName  string                 `json:"hook_event_name"`
	ToolName       string                 `json:"tool_name"`
	ToolInput      map[string]interface{} `json:"tool_input"`
}

// Parse decodes a hook payload from r.
func Parse(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decoding hook input: %w", err)
	}
	return &in, nil
}

// EditedFile returns the path of the file the tool modified. The second
// return is false for tools that do not carry a file path (Bash, Glob and
// the like), which the dispatcher should ignore.
func (in *Input) EditedFile() (string, bool) {
	if in.ToolInput == nil {
		return "", false
	}
	key := "file_path"
	if in.ToolName == "NotebookEdit" {
		key = "notebook_path"
	}
	path, ok := in.ToolInput[key].(string)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
