package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// HookHandler represents a single hook handler within an event group.
type HookHandler struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookGroup represents a group of hooks for a single event, with an optional
// tool-name matcher.
type HookGroup struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookHandler `json:"hooks"`
}

// HookSettings is the Claude Code settings structure containing hooks.
// Written to .claude/settings.local.json.
type HookSettings struct {
	Hooks map[string][]HookGroup `json:"hooks"`
}

// GenerateHookSettings builds a Claude Code hooks config that runs the
// edit-check dispatcher after every file-modifying tool call.
func GenerateHookSettings() *HookSettings {
	bin := resolveSelfBinary()

	return &HookSettings{
		Hooks: map[string][]HookGroup{
			"PostToolUse": {
				{
					Matcher: "Write|Edit|MultiEdit|NotebookEdit",
					Hooks:   []HookHandler{{Type: "command", Command: bin + " hook"}},
				},
			},
		},
	}
}

// resolveSelfBinary returns the absolute path to the running binary.
// Uses os.Executable() first, falling back to "devstarter" (assumes PATH).
func resolveSelfBinary() string {
	if exe, err := os.Executable(); err == nil {
		if abs, err := filepath.EvalSymlinks(exe); err == nil {
			return abs
		}
		return exe
	}
	return "devstarter"
}

// WriteSettingsFile writes the hooks config to <dir>/.claude/settings.local.json.
// Existing settings are preserved: other top-level keys and other hook events
// survive, only the events in cfg are replaced. Creates the .claude directory
// if it doesn't exist.
func WriteSettingsFile(dir string, cfg *HookSettings) (string, error) {
	claudeDir := filepath.Join(dir, ".claude")
	if err := os.MkdirAll(claudeDir, 0o755); err != nil {
		return "", fmt.Errorf("create .claude dir: %w", err)
	}

	path := filepath.Join(claudeDir, "settings.local.json")

	// Read existing settings if present and merge
	existing := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &existing)
	}

	hooks, _ := existing["hooks"].(map[string]interface{})
	if hooks == nil {
		hooks = make(map[string]interface{})
	}
	for event, groups := range cfg.Hooks {
		hooks[event] = groups
	}
	existing["hooks"] = hooks

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write settings file: %w", err)
	}
	return path, nil
}
