package scaffold

import (
	"os"
	"path/filepath"
)

// ProjectType identifies the kind of project found in a directory.
type ProjectType string

const (
	ProjectGo      ProjectType = "go"
	ProjectNode    ProjectType = "node"
	ProjectPython  ProjectType = "python"
	ProjectGeneric ProjectType = "generic"
)

// markers maps project marker files to the type they indicate, probed in
// order. The first hit wins.
var markers = []struct {
	file  string
	ptype ProjectType
}{
	{"go.mod", ProjectGo},
	{"package.json", ProjectNode},
	{"pyproject.toml", ProjectPython},
	{"requirements.txt", ProjectPython},
	{"setup.py", ProjectPython},
}

// Detect inspects dir for common project markers and returns the matching
// project type, or ProjectGeneric when nothing recognizable is found.
func Detect(dir string) ProjectType {
	for _, m := range markers {
		if fileExists(filepath.Join(dir, m.file)) {
			return m.ptype
		}
	}
	return ProjectGeneric
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
