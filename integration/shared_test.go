//go:build basic || database

// Package integration contains integration tests for testkit.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedTestkitPath holds the path to a shared testkit binary built once for all tests.
	sharedTestkitPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getTestkitBinary returns the path to the testkit binary, building it once if needed.
func getTestkitBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "testkit-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		testkitPath := filepath.Join(tempDir, "testkit")
		buildCmd := exec.Command("go", "build", "-o", testkitPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build testkit: %v\n%s", err, out))
		}

		sharedTestkitPath = testkitPath
	})

	return sharedTestkitPath
}

// runTestkit runs the binary inside dir with extra KEY=VALUE environment entries
// and returns the combined output.
func runTestkit(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getTestkitBinary(), args...)
	cmd.Dir = dir
	// HOME points at dir so no user config or default SQLite file leaks in
	cmd.Env = append(os.Environ(), "HOME="+dir)
	cmd.Env = append(cmd.Env, env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

// newWorkspace creates a workspace with coverage summaries for the given services.
func newWorkspace(t *testing.T, summaries map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for service, content := range summaries {
		dir := filepath.Join(root, "coverage", service)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "coverage-summary.json"), []byte(content), 0o644))
	}
	return root
}

const authSummary = `{"total": {
	"lines": {"total": 100, "covered": 95, "pct": 95},
	"statements": {"total": 100, "covered": 95, "pct": 95},
	"functions": {"total": 10, "covered": 10, "pct": 100},
	"branches": {"total": 20, "covered": 19, "pct": 95}
}}`
