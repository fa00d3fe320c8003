package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dreamscape/testkit/schema"
)

// Default values for configuration.
const (
	DefaultWorkspace   = "."
	DefaultCoverageDir = "coverage"
	DefaultReportsDir  = "reports"
	DefaultLogsDir     = "logs"
)

// DefaultServices lists the Dreamscape services whose coverage is aggregated, in report order.
var DefaultServices = []string{
	"ai-service",
	"auth-service",
	"user-service",
	"payment-service",
	"voyage-service",
	"web-client",
	"panorama-service",
	"working",
}

// DefaultThresholds returns a fresh copy of the per-service coverage thresholds.
func DefaultThresholds() schema.ThresholdTable {
	return schema.ThresholdTable{
		"ai":       {Branches: 80, Functions: 85, Lines: 80, Statements: 80},
		"auth":     {Branches: 90, Functions: 90, Lines: 90, Statements: 90},
		"user":     {Branches: 85, Functions: 85, Lines: 85, Statements: 85},
		"payment":  {Branches: 95, Functions: 95, Lines: 95, Statements: 95},
		"voyage":   {Branches: 80, Functions: 80, Lines: 80, Statements: 80},
		"web":      {Branches: 75, Functions: 75, Lines: 75, Statements: 75},
		"panorama": {Branches: 70, Functions: 70, Lines: 70, Statements: 70},
	}
}

// DefaultTestPatterns mirror the jest testMatch and cypress specPattern globs.
var DefaultTestPatterns = []string{
	"**/*.test.ts",
	"**/*.test.tsx",
	"**/*.test.js",
	"**/*.cy.js",
}

// Config holds the runtime configuration. It is built once per process by
// ProcessAndValidate and treated as read-only afterwards.
type Config struct {
	WorkspaceRoot string
	CoverageDir   string
	ReportsDir    string
	LogsDir       string

	Services   []string
	Thresholds schema.ThresholdTable

	Priority     schema.TestOrderingSpec
	TestPatterns []string

	Badge bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in console output
	Width     int  // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Workspace        string `mapstructure:"workspace"`
	CoverageDir      string `mapstructure:"coverage-dir"`
	ReportsDir       string `mapstructure:"reports-dir"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`

	// --- Fields from coverageCmd.Flags() ---
	Badge bool `mapstructure:"badge"`

	// --- Fields from sequenceCmd.Flags() ---
	Priority string `mapstructure:"priority"`
	Patterns string `mapstructure:"patterns"`

	// --- Config file only ---
	Services   []string                    `mapstructure:"services"`
	Thresholds map[string]schema.Threshold `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Services = slices.Clone(c.Services)
	clone.Priority = slices.Clone(c.Priority)
	clone.TestPatterns = slices.Clone(c.TestPatterns)
	if c.Thresholds != nil {
		clone.Thresholds = maps.Clone(c.Thresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processPaths(cfg, input); err != nil {
		return err
	}
	if err := processServices(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	processOrdering(cfg, input)
	if err := processHistoryBackend(cfg, input); err != nil {
		return err
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	cfg.Badge = input.Badge
	return nil
}

// processPaths resolves the workspace root and the directories derived from it.
func processPaths(cfg *Config, input *ConfigRawInput) error {
	workspace := input.Workspace
	if workspace == "" {
		workspace = DefaultWorkspace
	}
	root, err := filepath.Abs(workspace)
	if err != nil {
		return fmt.Errorf("cannot resolve workspace %q: %w", workspace, err)
	}
	cfg.WorkspaceRoot = filepath.Clean(root)

	resolve := func(dir, fallback string) string {
		if dir == "" {
			return filepath.Join(cfg.WorkspaceRoot, fallback)
		}
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir)
		}
		return filepath.Join(cfg.WorkspaceRoot, dir)
	}
	cfg.CoverageDir = resolve(input.CoverageDir, DefaultCoverageDir)
	cfg.ReportsDir = resolve(input.ReportsDir, DefaultReportsDir)
	cfg.LogsDir = filepath.Join(cfg.WorkspaceRoot, DefaultLogsDir)
	return nil
}

// processServices applies the service list override from the config file.
func processServices(cfg *Config, input *ConfigRawInput) error {
	if len(input.Services) == 0 {
		cfg.Services = slices.Clone(DefaultServices)
		return nil
	}
	seen := make(map[string]struct{}, len(input.Services))
	services := make([]string, 0, len(input.Services))
	for _, s := range input.Services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
			return fmt.Errorf("invalid service name %q: must be a single directory name", s)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("duplicate service name %q", s)
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}
	if len(services) == 0 {
		return fmt.Errorf("services list is empty")
	}
	cfg.Services = services
	return nil
}

// processThresholds merges config file thresholds over the defaults.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := DefaultThresholds()
	maps.Copy(thresholds, input.Thresholds)

	for key, th := range thresholds {
		for name, v := range map[string]int{
			"branches":   th.Branches,
			"functions":  th.Functions,
			"lines":      th.Lines,
			"statements": th.Statements,
		} {
			if v < 0 || v > 100 {
				return fmt.Errorf("%s threshold for %s must be between 0 and 100 (received %d)", name, key, v)
			}
		}
	}
	cfg.Thresholds = thresholds
	return nil
}

// processOrdering parses the comma-separated priority list and discovery patterns.
func processOrdering(cfg *Config, input *ConfigRawInput) {
	cfg.Priority = slices.Clone(schema.DefaultOrdering)
	if input.Priority != "" {
		cfg.Priority = schema.TestOrderingSpec(SplitList(input.Priority))
	}
	cfg.TestPatterns = slices.Clone(DefaultTestPatterns)
	if input.Patterns != "" {
		cfg.TestPatterns = SplitList(input.Patterns)
	}
}

// processHistoryBackend validates the run history backend selection.
func processHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.HistoryDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' with host:port")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
