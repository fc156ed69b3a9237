package junitxml

import (
	"fmt"
	"io/fs"
	"path/filepath"

	glob "github.com/ryanuber/go-glob"
)

// DefaultPattern matches the output of connected Android instrumentation test runs.
const DefaultPattern = "*androidTest-results/*.xml"

// Discover walks root in lexical order and returns the files whose root relative,
// slash separated path matches any of patterns. The `*` wildcard also matches `/`.
func (r reader) Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range patterns {
			if glob.Glob(pattern, rel) {
				r.logger.Debugf("Found test report: %s", rel)
				matches = append(matches, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search for test reports in %s: %w", root, err)
	}

	return matches, nil
}
