package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validConfig = `
settings:
  timeout: 45s
  parallel: true
  max_parallel: 2
  block_on_failure: true
checks:
  - name: ts-lint
    patterns: ["*.ts", "*.tsx"]
    command: "npx eslint {file}"
    timeout: 2m
  - name: py-format
    patterns: ["*.py"]
    command: "ruff format {file}"
    enabled: false
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTestConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, want 2", len(cfg.Checks))
	}
	if cfg.Checks[0].Name != "ts-lint" {
		t.Errorf("Checks[0].Name = %q, want %q", cfg.Checks[0].Name, "ts-lint")
	}
	if len(cfg.Checks[0].Patterns) != 2 {
		t.Errorf("Checks[0].Patterns = %v, want 2 patterns", cfg.Checks[0].Patterns)
	}
	if cfg.Checks[0].Command != "npx eslint {file}" {
		t.Errorf("Checks[0].Command = %q", cfg.Checks[0].Command)
	}
	if !cfg.Settings.Parallel {
		t.Error("Settings.Parallel should be true")
	}
	if !cfg.Settings.BlockOnFailure {
		t.Error("Settings.BlockOnFailure should be true")
	}
}

func TestEnabledDefaultsTrue(t *testing.T) {
	path := writeTestConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// ts-lint omits the enabled field, which counts as enabled
	if !cfg.Checks[0].IsEnabled() {
		t.Error("Checks[0].IsEnabled() = false, want true (field omitted)")
	}
	// py-format sets enabled: false
	if cfg.Checks[1].IsEnabled() {
		t.Error("Checks[1].IsEnabled() = true, want false (explicitly disabled)")
	}
}

func TestTimeoutResolution(t *testing.T) {
	path := writeTestConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	base := cfg.Settings.CommandTimeout()
	if base != 45*time.Second {
		t.Errorf("Settings.CommandTimeout() = %v, want 45s", base)
	}
	// ts-lint has its own 2m timeout
	if got := cfg.Checks[0].CommandTimeout(base); got != 2*time.Minute {
		t.Errorf("Checks[0].CommandTimeout(base) = %v, want 2m", got)
	}
	// py-format inherits the settings value
	if got := cfg.Checks[1].CommandTimeout(base); got != 45*time.Second {
		t.Errorf("Checks[1].CommandTimeout(base) = %v, want 45s", got)
	}
}

func TestTimeoutDefaults(t *testing.T) {
	var s Settings
	if got := s.CommandTimeout(); got != DefaultTimeout {
		t.Errorf("empty Settings.CommandTimeout() = %v, want %v", got, DefaultTimeout)
	}
	if got := s.MaxParallelOrDefault(); got != defaultMaxParallel {
		t.Errorf("empty Settings.MaxParallelOrDefault() = %d, want %d", got, defaultMaxParallel)
	}
	s.MaxParallel = 8
	if got := s.MaxParallelOrDefault(); got != 8 {
		t.Errorf("MaxParallelOrDefault() = %d, want 8", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() on missing file: err = %v, want ErrNotFound", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeTestConfig(t, "checks: [unclosed")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("malformed YAML must not be reported as ErrNotFound")
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	content := `
checks:
  - name: lint
    patterns: ["*.go"]
    command: "gofmt -l {file}"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error: %v", err)
	}
	if len(cfg.Checks) != 1 || cfg.Checks[0].Name != "lint" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestProjectDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", dir)
	if got := ProjectDir(); got != dir {
		t.Errorf("ProjectDir() = %q, want %q", got, dir)
	}
}

func TestProjectDirFallsBackToCwd(t *testing.T) {
	t.Setenv("CLAUDE_PROJECT_DIR", "")
	cwd, _ := os.Getwd()
	if got := ProjectDir(); got != cwd {
		t.Errorf("ProjectDir() = %q, want working directory %q", got, cwd)
	}
}

func TestValidateValidConfig(t *testing.T) {
	path := writeTestConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	errs := Validate(cfg)
	if len(errs) != 0 {
		t.Errorf("Validate() returned %d errors for valid config:", len(errs))
		for _, e := range errs {
			t.Errorf("  - %s", e)
		}
	}
}

func TestValidateMissingName(t *testing.T) {
	cfg := &Config{Checks: []CheckRule{{Patterns: []string{"*.go"}, Command: "true"}}}
	if !hasFieldError(Validate(cfg), "checks[0].name") {
		t.Error("expected validation error for missing name")
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	cfg := &Config{Checks: []CheckRule{
		{Name: "dup", Patterns: []string{"*.go"}, Command: "true"},
		{Name: "dup", Patterns: []string{"*.py"}, Command: "true"},
	}}
	found := false
	for _, e := range Validate(cfg) {
		if strings.Contains(e.Message, "duplicate check name") {
			found = true
		}
	}
	if !found {
		t.Error("expected validation error for duplicate check names")
	}
}

func TestValidateEmptyPatterns(t *testing.T) {
	cfg := &Config{Checks: []CheckRule{{Name: "lint", Command: "true"}}}
	if !hasFieldError(Validate(cfg), "checks[0].patterns") {
		t.Error("expected validation error for empty patterns")
	}
}

func TestValidateMalformedPattern(t *testing.T) {
	cfg := &Config{Checks: []CheckRule{{Name: "lint", Patterns: []string{"[unclosed"}, Command: "true"}}}
	found := false
	for _, e := range Validate(cfg) {
		if strings.Contains(e.Message, "malformed pattern") {
			found = true
		}
	}
	if !found {
		t.Error("expected validation error for malformed pattern")
	}
}

func TestValidateMissingCommand(t *testing.T) {
	cfg := &Config{Checks: []CheckRule{{Name: "lint", Patterns: []string{"*.go"}}}}
	if !hasFieldError(Validate(cfg), "checks[0].command") {
		t.Error("expected validation error for missing command")
	}
}

func TestValidateBadDurations(t *testing.T) {
	cfg := &Config{
		Settings: Settings{Timeout: "banana"},
		Checks: []CheckRule{
			{Name: "lint", Patterns: []string{"*.go"}, Command: "true", Timeout: "soon"},
		},
	}
	errs := Validate(cfg)
	if !hasFieldError(errs, "settings.timeout") {
		t.Error("expected validation error for settings.timeout")
	}
	if !hasFieldError(errs, "checks[0].timeout") {
		t.Error("expected validation error for rule timeout")
	}
}

func hasFieldError(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
