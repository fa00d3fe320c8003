package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/joho/godotenv"
)

// Files written by SetupEnvironment into the workspace root.
const (
	EnvTestFile      = ".env.test"
	GlobalConfigFile = "global-config.json"
)

// testEnvDefaults are the localhost endpoints of the Dreamscape stack. Each one
// can be overridden by the variable of the same name in the process environment.
var testEnvDefaults = map[string]string{
	"TEST_DATABASE_URL":    "mongodb://localhost:27017/dreamscape_test",
	"API_BASE_URL":         "http://localhost:3000",
	"VOYAGE_SERVICE_URL":   "http://localhost:3001",
	"AUTH_SERVICE_URL":     "http://localhost:3002",
	"USER_SERVICE_URL":     "http://localhost:3003",
	"AI_SERVICE_URL":       "http://localhost:3004",
	"PAYMENT_SERVICE_URL":  "http://localhost:3005",
	"WEB_CLIENT_URL":       "http://localhost:3006",
	"PANORAMA_SERVICE_URL": "http://localhost:3007",
}

// CoverageThresholdSet holds the jest coverageThreshold percentages.
type CoverageThresholdSet struct {
	Branches   int `json:"branches"`
	Functions  int `json:"functions"`
	Lines      int `json:"lines"`
	Statements int `json:"statements"`
}

// GlobalTestConfig is the shared jest configuration written to global-config.json.
type GlobalTestConfig struct {
	TestTimeout        int                             `json:"testTimeout"`
	SetupFilesAfterEnv []string                        `json:"setupFilesAfterEnv"`
	TestEnvironment    string                          `json:"testEnvironment"`
	CollectCoverage    bool                            `json:"collectCoverage"`
	CoverageDirectory  string                          `json:"coverageDirectory"`
	CoverageReporters  []string                        `json:"coverageReporters"`
	CoverageThreshold  map[string]CoverageThresholdSet `json:"coverageThreshold"`
}

// DefaultGlobalTestConfig returns the jest settings shared by every suite.
func DefaultGlobalTestConfig() GlobalTestConfig {
	return GlobalTestConfig{
		TestTimeout:        30000,
		SetupFilesAfterEnv: []string{"<rootDir>/tools/setup/global-setup.js"},
		TestEnvironment:    "node",
		CollectCoverage:    true,
		CoverageDirectory:  contract.DefaultCoverageDir,
		CoverageReporters:  []string{"text", "lcov", "html"},
		CoverageThreshold: map[string]CoverageThresholdSet{
			"global": {Branches: 70, Functions: 70, Lines: 70, Statements: 70},
		},
	}
}

// TestEnvironment returns the variables written to .env.test. lookup is
// consulted for overrides, typically os.LookupEnv.
func TestEnvironment(lookup func(string) (string, bool)) map[string]string {
	env := map[string]string{"NODE_ENV": "test"}
	for key, def := range testEnvDefaults {
		if v, ok := lookup(key); ok && v != "" {
			env[key] = v
			continue
		}
		env[key] = def
	}
	return env
}

// SetupResult lists what SetupEnvironment produced.
type SetupResult struct {
	CreatedDirs []string
	EnvFile     string
	ConfigFile  string
}

// SetupEnvironment prepares a workspace for a test run: it creates the coverage,
// reports and logs directories, writes .env.test and writes global-config.json.
func SetupEnvironment(ctx context.Context, cfg *contract.Config) (*SetupResult, error) {
	out := newOutWriter(ctx).Progress()
	_, _ = fmt.Fprintln(out, "🚀 Setting up Dreamscape test environment...")

	result := &SetupResult{
		EnvFile:    filepath.Join(cfg.WorkspaceRoot, EnvTestFile),
		ConfigFile: filepath.Join(cfg.WorkspaceRoot, GlobalConfigFile),
	}

	for _, dir := range []string{cfg.CoverageDir, cfg.ReportsDir, cfg.LogsDir} {
		created, err := ensureNewDir(dir)
		if err != nil {
			return nil, err
		}
		if created {
			result.CreatedDirs = append(result.CreatedDirs, dir)
			_, _ = fmt.Fprintf(out, "✅ Created directory: %s\n", relativeTo(cfg.WorkspaceRoot, dir))
		}
	}

	if err := godotenv.Write(TestEnvironment(os.LookupEnv), result.EnvFile); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", result.EnvFile, err)
	}
	_, _ = fmt.Fprintf(out, "✅ Created %s file\n", EnvTestFile)

	file, err := os.Create(result.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", result.ConfigFile, err)
	}
	defer func() { _ = file.Close() }()
	if err := writeIndentedJSON(file, DefaultGlobalTestConfig()); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", result.ConfigFile, err)
	}
	_, _ = fmt.Fprintln(out, "✅ Created global test configuration")

	printNextSteps(out)
	return result, nil
}

// ensureNewDir creates dir when missing and reports whether it did. An existing
// non-directory at dir is an error.
func ensureNewDir(dir string) (bool, error) {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("cannot stat %s: %w", dir, err)
	}
	if err := contract.EnsureDir(dir); err != nil {
		return false, err
	}
	return true, nil
}

func relativeTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func printNextSteps(w io.Writer) {
	_, _ = fmt.Fprintln(w, "🎉 Test environment setup completed!")
	_, _ = fmt.Fprintln(w, "\nNext steps:")
	_, _ = fmt.Fprintln(w, "1. Install dependencies: npm install")
	_, _ = fmt.Fprintln(w, "2. Start mock services: npm run mock:start")
	_, _ = fmt.Fprintln(w, "3. Run tests: npm test")
}
