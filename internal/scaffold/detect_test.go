package scaffold

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		markers []string
		want    ProjectType
	}{
		{"go module", []string{"go.mod"}, ProjectGo},
		{"node project", []string{"package.json"}, ProjectNode},
		{"python pyproject", []string{"pyproject.toml"}, ProjectPython},
		{"python requirements", []string{"requirements.txt"}, ProjectPython},
		{"python setup", []string{"setup.py"}, ProjectPython},
		{"go wins over node", []string{"package.json", "go.mod"}, ProjectGo},
		{"node wins over python", []string{"pyproject.toml", "package.json"}, ProjectNode},
		{"empty dir", nil, ProjectGeneric},
		{"unrecognized files", []string{"README.md", "notes.txt"}, ProjectGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, m := range tt.markers {
				touch(t, dir, m)
			}
			if got := Detect(dir); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_MissingDir(t *testing.T) {
	if got := Detect("/nonexistent/path"); got != ProjectGeneric {
		t.Errorf("Detect() on missing dir = %q, want generic", got)
	}
}
