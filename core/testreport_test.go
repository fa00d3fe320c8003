package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dreamscape/testkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTestReport(t *testing.T) {
	report := BuildTestReport(DefaultTestInventory(), reportTime)

	assert.Equal(t, reportTime, report.Generated)
	assert.Equal(t, 23, report.Summary.TotalTests)
	assert.Equal(t, 2, report.CountByStatus(schema.HasTests))
	assert.Equal(t, 1, report.CountByStatus(schema.BasicTests))
	assert.Equal(t, 4, report.CountByStatus(schema.NoTests))
	assert.Equal(t, inventoryServiceOrder, report.ServiceNames())
	assert.Equal(t, inventoryTestTypeOrder, report.TestTypeNames())

	assert.False(t, report.Coverage.Meets(schema.LinesMetric))
	assert.Len(t, report.Recommendations, 6)
}

func TestBuildTestReport_RecountsTotals(t *testing.T) {
	inventory := DefaultTestInventory()
	inventory.Summary.TotalTests = 999
	inventory.Services = map[string]schema.SuiteInventory{
		"auth-service": {Status: schema.HasTests, Tests: schema.TestCounts{Unit: 2, Integration: 1}},
	}

	assert.Equal(t, 3, BuildTestReport(inventory, reportTime).Summary.TotalTests)
}

func TestDefaultTestInventory_FreshCopies(t *testing.T) {
	a := DefaultTestInventory()
	a.Services["auth-service"] = schema.SuiteInventory{Status: schema.HasTests}
	b := DefaultTestInventory()
	assert.Equal(t, schema.NoTests, b.Services["auth-service"].Status)
}

func TestGenerateTestReport(t *testing.T) {
	cfg := newTestConfig(t)

	report, err := GenerateTestReport(WithSuppressOutput(context.Background()), cfg)
	require.NoError(t, err)
	assert.Equal(t, 23, report.Summary.TotalTests)

	for _, name := range []string{schema.TestJSONFile, schema.TestHTMLFile, schema.TestMarkdownFile} {
		assert.FileExists(t, filepath.Join(cfg.ReportsDir, name))
	}

	data, err := os.ReadFile(filepath.Join(cfg.ReportsDir, schema.TestJSONFile))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	types := decoded["testTypes"].(map[string]any)
	e2e := types["e2e"].(map[string]any)
	assert.Equal(t, "N/A", e2e["coverage"])
}
