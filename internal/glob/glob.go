// Package glob implements the restricted glob matching used by check rules.
//
// Wildcards follow filepath.Match semantics: '*' and '?' never cross a path
// separator and '[...]' character classes are supported. A pattern matches a
// path if it matches the whole path or just its base name, so "*.ts" matches
// "src/app.ts" while "src/*.ts" matches only files directly under src/.
// Recursive "**" patterns are not supported and have no special meaning.
package glob

import "path/filepath"

// Match reports whether path matches the pattern against either the full
// path or its base name. Malformed patterns return filepath.ErrBadPattern.
func Match(path, pattern string) (bool, error) {
	path = filepath.Clean(path)

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false, err
	}
	if matched {
		return true, nil
	}
	return filepath.Match(pattern, filepath.Base(path))
}

// MatchAny reports whether the path matches any of the patterns. A malformed
// pattern fails the whole call so callers can skip the offending rule.
func MatchAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := Match(path, pattern)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// Check validates a pattern without matching it against anything.
func Check(pattern string) error {
	_, err := filepath.Match(pattern, "probe")
	return err
}
