package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the project root.
const FileName = ".post-claude-edit-config.yaml"

// ErrNotFound is returned when the project has no config file. Callers treat
// this as "no checks configured" rather than a failure.
var ErrNotFound = errors.New("config file not found")

// Load reads and parses a check configuration from the given YAML file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return &cfg, nil
}

// LoadProject loads the config file from the project root directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, FileName))
}

// ProjectDir resolves the project root: CLAUDE_PROJECT_DIR when set (Claude
// Code exports it for hook processes), otherwise the working directory.
func ProjectDir() string {
	if dir := os.Getenv("CLAUDE_PROJECT_DIR"); dir != "" {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
