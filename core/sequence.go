package core

import (
	"cmp"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dreamscape/testkit/schema"
)

// SortTests returns the tests ordered by the first priority substring their path
// contains, then by path. Tests matching no entry run last. The input is not modified.
func SortTests(tests []schema.TestDescriptor, priority schema.TestOrderingSpec) []schema.TestDescriptor {
	sorted := slices.Clone(tests)
	slices.SortStableFunc(sorted, func(a, b schema.TestDescriptor) int {
		return cmp.Or(
			cmp.Compare(priorityKey(a.Path, priority), priorityKey(b.Path, priority)),
			strings.Compare(a.Path, b.Path),
		)
	})
	return sorted
}

// priorityKey is the index of the first entry contained in path, or math.MaxInt.
func priorityKey(path string, priority schema.TestOrderingSpec) int {
	for i, name := range priority {
		if strings.Contains(path, name) {
			return i
		}
	}
	return math.MaxInt
}

// DiscoverTests walks root and returns the slash-separated relative paths of files
// matching any of the glob patterns. node_modules and hidden directories are skipped.
func DiscoverTests(root string, patterns []string) ([]schema.TestDescriptor, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid test pattern %q", pattern)
		}
	}

	var found []schema.TestDescriptor
	err := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if matchesAny(path, patterns) {
			found = append(found, schema.TestDescriptor{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot discover tests under %s: %w", root, err)
	}
	return found, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
		// Patterns without a directory part also match on the basename
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}
