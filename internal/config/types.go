package config

import "time"

// DefaultTimeout is the per-command timeout applied when neither the settings
// block nor the rule sets one.
const DefaultTimeout = 30 * time.Second

// defaultMaxParallel bounds concurrent commands when parallel mode is on but
// max_parallel is unset.
const defaultMaxParallel = 4

// Config is the top-level structure parsed from .post-claude-edit-config.yaml.
type Config struct {
	Settings Settings    `yaml:"settings"`
	Checks   []CheckRule `yaml:"checks"`
}

// Settings holds dispatcher-wide options. All fields are optional.
type Settings struct {
	Timeout        string `yaml:"timeout"`          // default per-command timeout, e.g. "30s"
	Parallel       bool   `yaml:"parallel"`         // run matched commands concurrently
	MaxParallel    int    `yaml:"max_parallel"`     // bound for parallel mode
	BlockOnFailure bool   `yaml:"block_on_failure"` // ask the caller to block instead of advise
}

// CheckRule defines one pattern-triggered command run after a file edit.
type CheckRule struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Command  string   `yaml:"command"`
	Enabled  *bool    `yaml:"enabled"` // nil means enabled
	Timeout  string   `yaml:"timeout"` // optional per-rule override
}

// IsEnabled reports whether the rule should run. Rules are enabled unless
// the config disables them explicitly.
func (r CheckRule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// CommandTimeout returns the settings-level per-command timeout.
func (s Settings) CommandTimeout() time.Duration {
	return parseDuration(s.Timeout, DefaultTimeout)
}

// MaxParallelOrDefault returns the parallelism bound for parallel mode.
func (s Settings) MaxParallelOrDefault() int {
	if s.MaxParallel > 0 {
		return s.MaxParallel
	}
	return defaultMaxParallel
}

// CommandTimeout returns the rule's timeout, falling back to the given
// settings-level default.
func (r CheckRule) CommandTimeout(fallback time.Duration) time.Duration {
	return parseDuration(r.Timeout, fallback)
}

// parseDuration parses a duration string, falling back to a default.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
