package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dreamscape/testkit/core"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// classification is the classify_service result.
type classification struct {
	Service   string                `json:"service"`
	Key       string                `json:"thresholdKey"`
	Status    schema.CoverageStatus `json:"status"`
	Threshold *schema.Threshold     `json:"threshold,omitempty"`
}

func (h *toolHandler) handleGenerateCoverageReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("coverage_dir", ""); d != "" {
		cfg.CoverageDir = resolvePath(cfg.WorkspaceRoot, d)
	}
	if d := request.GetString("reports_dir", ""); d != "" {
		cfg.ReportsDir = resolvePath(cfg.WorkspaceRoot, d)
	}
	cfg.Badge = request.GetBool("badge", cfg.Badge)

	report, err := core.RunCoverage(core.WithSuppressOutput(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("coverage report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateTestReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("reports_dir", ""); d != "" {
		cfg.ReportsDir = resolvePath(cfg.WorkspaceRoot, d)
	}

	report, err := core.RunTestReport(core.WithSuppressOutput(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("test report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyService(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	service := strings.TrimSpace(request.GetString("service", ""))
	if service == "" {
		return mcp.NewToolResultError("service is required"), nil
	}
	lines, err := request.RequireFloat("lines")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid classification parameters: %v", err)), nil
	}

	totals := &schema.CoverageTotals{
		Lines:      percentMetric(lines),
		Statements: percentMetric(request.GetFloat("statements", 0)),
		Functions:  percentMetric(request.GetFloat("functions", 0)),
		Branches:   percentMetric(request.GetFloat("branches", 0)),
	}

	result := classification{
		Service: service,
		Key:     schema.ThresholdKey(service),
		Status:  core.ClassifyService(service, totals, h.baseCfg.Thresholds),
	}
	if th, ok := h.baseCfg.Thresholds[result.Key]; ok {
		result.Threshold = &th
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSequenceTests(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetStringSlice("priority", nil); len(p) > 0 {
		cfg.Priority = p
	}

	ordered, err := core.GetSequenceResults(cfg, request.GetStringSlice("paths", nil))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sequencing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.Paths(ordered), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func percentMetric(pct float64) *schema.CoverageMetric {
	return &schema.CoverageMetric{Pct: schema.Percent(schema.ClampPercent(pct))}
}

// resolvePath interprets relative paths against the workspace root.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
