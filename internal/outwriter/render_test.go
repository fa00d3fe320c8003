package outwriter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dreamscape/testkit/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCoverageJSON(t *testing.T) {
	data, err := RenderCoverageJSON(sampleCoverageReport())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"timestamp\""))

	var decoded schema.CoverageReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 92, decoded.Summary.OverallCoverage)
	assert.Equal(t, 1, decoded.Summary.Services[schema.MissingStatus])
	assert.Equal(t, "No coverage data available", decoded.Details["ai-service"].Error)
	assert.Equal(t, 90, decoded.Thresholds["auth"].Lines)
}

func TestRenderCoverageMarkdown(t *testing.T) {
	md := RenderCoverageMarkdown(sampleCoverageReport())

	tests := []struct {
		name string
		want string
	}{
		{"title", "# 📊 Dreamscape Coverage Report\n\n**Generated:** "},
		{"overall", "| **Overall Coverage** | 92% |"},
		{"total lines", "| **Total Lines** | 1,300 |"},
		{"covered lines", "| **Covered Lines** | 1,190 |"},
		{"excellent section", "### 🟢 auth-service\n**Status:** excellent\n- **Lines:** 95% (1140/1200)\n- **Functions:** 92.5% (74/80)\n"},
		{"unknown section", "### ⚪ web-client\n**Status:** unknown\n"},
		{"error section", "### ❌ ai-service\n**Error:** No coverage data available\n"},
		{"threshold row", "| auth | 90% | 90% | 90% | 90% |"},
		{"ai threshold row", "| ai | 80% | 85% | 80% | 80% |"},
		{"footer", "---\n*Report generated automatically by Dreamscape test suite*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, md, tt.want)
		})
	}

	// Services keep their configured order.
	assert.Less(t, strings.Index(md, "auth-service"), strings.Index(md, "web-client"))
	assert.Less(t, strings.Index(md, "web-client"), strings.Index(md, "ai-service"))
	// Threshold rows follow the services, then the rest alphabetically.
	assert.Less(t, strings.Index(md, "| auth |"), strings.Index(md, "| ai |"))
	assert.Less(t, strings.Index(md, "| ai |"), strings.Index(md, "| panorama |"))
}

func TestRenderCoverageHTML(t *testing.T) {
	html, err := RenderCoverageHTML(sampleCoverageReport())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Dreamscape Coverage Report</title>")
	assert.Contains(t, html, "<h3>92%</h3>")
	assert.Contains(t, html, "<h3>1,300</h3>")
	assert.Contains(t, html, `<span class="status-badge excellent">excellent</span>`)
	assert.Contains(t, html, `<div class="progress-fill excellent" style="width: 92.5%"></div>`)
	assert.Contains(t, html, `<p class="service-error">No coverage data available</p>`)
	assert.NotContains(t, html, "Statements:")
}

func TestRenderCoverageHTMLEscapes(t *testing.T) {
	r := sampleCoverageReport()
	r.Details["ai-service"] = schema.ServiceCoverage{Status: schema.ErrorStatus, Error: "<script>alert(1)</script>"}
	html, err := RenderCoverageHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderTestMarkdown(t *testing.T) {
	md := RenderTestMarkdown(sampleTestReport())

	assert.Contains(t, md, "**Generated:** 2026-03-14T09:26:53.000Z")
	assert.Contains(t, md, "- **Total Tests:** 22\n- **Line Coverage:** 45%\n- **Services with Tests:** 1/3")
	assert.Contains(t, md, "### ✅ voyage-service\n- **Status:** has tests\n- **Coverage:** 85%\n- **Tests:** Unit: 5, Integration: 3, E2E: 2")
	assert.Contains(t, md, "### ⚠️ panorama-service\n- **Status:** basic tests")
	assert.Contains(t, md, "### ❌ auth-service\n- **Status:** no tests")
	assert.Contains(t, md, "- Add contract tests between services\n- Implement accessibility testing")
	assert.Contains(t, md, "| Lines | 70% | 45% | ❌ |")
	assert.Contains(t, md, "| Branches | 70% | 35% | ❌ |")
}

func TestRenderTestMarkdownTargetMet(t *testing.T) {
	r := sampleTestReport()
	r.Coverage.Current.Functions = 70
	md := RenderTestMarkdown(r)
	assert.Contains(t, md, "| Functions | 70% | 70% | ✅ |")
}

func TestRenderTestHTML(t *testing.T) {
	html, err := RenderTestHTML(sampleTestReport())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Dreamscape Test Report</title>")
	assert.Contains(t, html, `<div class="service has-tests">`)
	assert.Contains(t, html, `<div class="service basic-tests">`)
	assert.Contains(t, html, "<p><strong>Status:</strong> no tests</p>")
	assert.Contains(t, html, "<li>Implement accessibility testing</li>")
	assert.Contains(t, html, "<h3>45%</h3>")
}

func TestRenderTestJSON(t *testing.T) {
	data, err := RenderTestJSON(sampleTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	types := decoded["testTypes"].(map[string]any)
	assert.Equal(t, "N/A", types["e2e"].(map[string]any)["coverage"])
	assert.InDelta(t, 60, types["unit"].(map[string]any)["coverage"], 0)
}

func TestRenderBadge(t *testing.T) {
	tests := []struct {
		coverage  int
		wantColor string
		wantLabel string
	}{
		{85, "#4c1", "85%"},
		{70, "#4c1", "70%"},
		{55, "#dfb317", "55%"},
		{40, "#e05d44", "40%"},
		{-5, "#e05d44", "0%"},
		{150, "#4c1", "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			svg := RenderBadge(tt.coverage, DefaultBadgeThresholds())
			assert.Contains(t, svg, `fill="`+tt.wantColor+`"`)
			assert.Contains(t, svg, `aria-label="coverage: `+tt.wantLabel+`"`)
			assert.True(t, strings.HasPrefix(svg, "<svg"))
		})
	}
}
