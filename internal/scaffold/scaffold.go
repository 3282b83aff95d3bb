// Package scaffold writes the starter files a project needs to use the
// edit-check hook: a Makefile, a Procfile for the process manager, an
// environment template, a check configuration matched to the detected
// project type, and the Claude Code settings that register the hook.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/larryhudson/claude-code-dev-starter/internal/config"
)

// Options controls what Scaffold writes.
type Options struct {
	// Force overwrites files that already exist.
	Force bool
	// Type overrides project detection when non-empty.
	Type ProjectType
	// SkipSettings leaves .claude/settings.local.json untouched.
	SkipSettings bool
}

// Result describes what a Scaffold call wrote.
type Result struct {
	Type    ProjectType
	Written []string
	Skipped []string
}

type templateFile struct {
	name    string
	content string
}

// filesFor returns the starter files for a project type, in write order.
func filesFor(ptype ProjectType) []templateFile {
	return []templateFile{
		{"Makefile", makefileTemplate},
		{"Procfile", procfileTemplate},
		{".env.example", envTemplate},
		{config.FileName, checkConfigFor(ptype)},
	}
}

// Scaffold writes the starter files into dir. Files that already exist are
// skipped unless opts.Force is set, so re-running against a configured
// project is safe.
func Scaffold(dir string, opts Options) (*Result, error) {
	ptype := opts.Type
	if ptype == "" {
		ptype = Detect(dir)
	}
	res := &Result{Type: ptype}

	for _, f := range filesFor(ptype) {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !opts.Force {
			res.Skipped = append(res.Skipped, f.name)
			continue
		}
		if err := writeFileAtomic(path, []byte(f.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		res.Written = append(res.Written, f.name)
	}

	if !opts.SkipSettings {
		if _, err := WriteSettingsFile(dir, GenerateHookSettings()); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, filepath.Join(".claude", "settings.local.json"))
	}

	return res, nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, creating parent directories as needed. The final
// file is always mode 0644.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
