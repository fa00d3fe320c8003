package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment(t *testing.T) {
	overrides := map[string]string{"AUTH_SERVICE_URL": "http://auth:4000", "API_BASE_URL": ""}
	lookup := func(key string) (string, bool) {
		v, ok := overrides[key]
		return v, ok
	}

	env := TestEnvironment(lookup)

	assert.Equal(t, "test", env["NODE_ENV"])
	assert.Equal(t, "http://auth:4000", env["AUTH_SERVICE_URL"])
	assert.Equal(t, "http://localhost:3000", env["API_BASE_URL"], "empty overrides keep the default")
	assert.Equal(t, "mongodb://localhost:27017/dreamscape_test", env["TEST_DATABASE_URL"])
	assert.Len(t, env, len(testEnvDefaults)+1)
}

func TestSetupEnvironment(t *testing.T) {
	t.Setenv("PAYMENT_SERVICE_URL", "http://payments.test:9000")
	cfg := newTestConfig(t)

	result, err := SetupEnvironment(WithSuppressOutput(context.Background()), cfg)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{cfg.CoverageDir, cfg.ReportsDir, cfg.LogsDir}, result.CreatedDirs)
	for _, dir := range result.CreatedDirs {
		assert.DirExists(t, dir)
	}

	env, err := godotenv.Read(result.EnvFile)
	require.NoError(t, err)
	assert.Equal(t, "test", env["NODE_ENV"])
	assert.Equal(t, "http://payments.test:9000", env["PAYMENT_SERVICE_URL"])
	assert.Equal(t, "http://localhost:3007", env["PANORAMA_SERVICE_URL"])

	data, err := os.ReadFile(filepath.Join(cfg.WorkspaceRoot, GlobalConfigFile))
	require.NoError(t, err)
	var got GlobalTestConfig
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, DefaultGlobalTestConfig(), got)
}

func TestSetupEnvironment_Rerun(t *testing.T) {
	cfg := newTestConfig(t)
	ctx := WithSuppressOutput(context.Background())

	_, err := SetupEnvironment(ctx, cfg)
	require.NoError(t, err)

	// Existing directories are left alone and files are rewritten
	result, err := SetupEnvironment(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, result.CreatedDirs)
	assert.FileExists(t, result.EnvFile)
	assert.FileExists(t, result.ConfigFile)
}

func TestSetupEnvironment_DirIsFile(t *testing.T) {
	tests := []struct {
		name string
		dir  func(cfg *contract.Config) string
	}{
		{"coverage", func(cfg *contract.Config) string { return cfg.CoverageDir }},
		{"reports", func(cfg *contract.Config) string { return cfg.ReportsDir }},
		{"logs", func(cfg *contract.Config) string { return cfg.LogsDir }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			path := tt.dir(cfg)
			require.NoError(t, os.WriteFile(path, nil, 0o644))

			_, err := SetupEnvironment(WithSuppressOutput(context.Background()), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is not a directory")
			assert.NoFileExists(t, filepath.Join(cfg.WorkspaceRoot, GlobalConfigFile))
		})
	}
}
