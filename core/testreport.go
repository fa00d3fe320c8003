package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

// Display order of the inventory tables.
var (
	inventoryServiceOrder = []string{
		"voyage-service",
		"web-client",
		"panorama-service",
		"ai-service",
		"auth-service",
		"user-service",
		"payment-service",
	}
	inventoryTestTypeOrder = []string{"unit", "integration", "e2e", "performance", "security", "accessibility"}
)

// DefaultTestInventory returns the maintained inventory of Dreamscape test suites.
// The figures are curated by hand after each test campaign, not measured.
func DefaultTestInventory() *schema.TestReport {
	report := &schema.TestReport{
		Services: map[string]schema.SuiteInventory{
			"voyage-service":   {Status: schema.HasTests, Coverage: 85, Tests: schema.TestCounts{Unit: 5, Integration: 3, E2E: 2}},
			"web-client":       {Status: schema.HasTests, Coverage: 75, Tests: schema.TestCounts{Unit: 8, Integration: 0, E2E: 4}},
			"panorama-service": {Status: schema.BasicTests, Coverage: 20, Tests: schema.TestCounts{Unit: 1}},
			"ai-service":       {Status: schema.NoTests},
			"auth-service":     {Status: schema.NoTests},
			"user-service":     {Status: schema.NoTests},
			"payment-service":  {Status: schema.NoTests},
		},
		TestTypes: map[string]schema.TestTypeStats{
			"unit":          {Total: 14, Passed: 12, Failed: 2, Coverage: schema.PercentOf(60)},
			"integration":   {Total: 3, Passed: 3, Failed: 0, Coverage: schema.PercentOf(85)},
			"e2e":           {Total: 6, Passed: 5, Failed: 1},
			"performance":   {},
			"security":      {},
			"accessibility": {},
		},
		Recommendations: []string{
			"Implement tests for ai-service, auth-service, user-service, and payment-service",
			"Add contract tests between services",
			"Implement performance testing suite",
			"Add security testing automation",
			"Implement accessibility testing",
			"Improve test coverage for panorama-service",
		},
		Coverage: schema.CoverageTargets{
			Threshold: schema.CoverageFigures{Lines: 70, Functions: 70, Branches: 70, Statements: 70},
			Current:   schema.CoverageFigures{Lines: 45, Functions: 48, Branches: 35, Statements: 46},
		},
	}
	report.SetOrder(inventoryServiceOrder, inventoryTestTypeOrder)
	return report
}

// BuildTestReport stamps the inventory with now and computes the total test count.
func BuildTestReport(inventory *schema.TestReport, now time.Time) *schema.TestReport {
	inventory.Generated = now
	inventory.Summary.TotalTests = 0
	for _, s := range inventory.Services {
		inventory.Summary.TotalTests += s.Tests.Total()
	}
	return inventory
}

// GenerateTestReport builds the report from the default inventory and writes the
// HTML, JSON and Markdown documents into the reports directory.
func GenerateTestReport(ctx context.Context, cfg *contract.Config) (*schema.TestReport, error) {
	ow := newOutWriter(ctx)
	_, _ = fmt.Fprintln(ow.Progress(), "📊 Generating comprehensive test report...")

	report := BuildTestReport(DefaultTestInventory(), time.Now())
	if err := ow.WriteTestReport(report, cfg.ReportsDir); err != nil {
		return nil, err
	}
	return report, nil
}
