// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the testkit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Dreamscape Testkit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: generate_coverage_report ---
	s.AddTool(mcp.NewTool("generate_coverage_report",
		mcp.WithDescription("Aggregate per-service coverage summaries into the unified coverage report and return it as JSON."),
		mcp.WithString("coverage_dir", mcp.Description("Directory holding <service>/coverage-summary.json (defaults to the configured coverage directory).")),
		mcp.WithString("reports_dir", mcp.Description("Directory the JSON, HTML and Markdown reports are written to.")),
		mcp.WithBoolean("badge", mcp.Description("Also write coverage-badge.svg.")),
	), h.handleGenerateCoverageReport)

	// --- 2. Tool: generate_test_report ---
	s.AddTool(mcp.NewTool("generate_test_report",
		mcp.WithDescription("Build the test suite inventory report and return it as JSON."),
		mcp.WithString("reports_dir", mcp.Description("Directory the JSON, HTML and Markdown reports are written to.")),
	), h.handleGenerateTestReport)

	// --- 3. Tool: classify_service ---
	s.AddTool(mcp.NewTool("classify_service",
		mcp.WithDescription("Classify a service as excellent, good, fair, poor or unknown from its coverage percentages."),
		mcp.WithString("service", mcp.Description("Service name, e.g. auth-service."), mcp.Required()),
		mcp.WithNumber("lines", mcp.Description("Lines coverage percentage."), mcp.Required()),
		mcp.WithNumber("statements", mcp.Description("Statements coverage percentage (defaults to 0).")),
		mcp.WithNumber("functions", mcp.Description("Functions coverage percentage (defaults to 0).")),
		mcp.WithNumber("branches", mcp.Description("Branches coverage percentage (defaults to 0).")),
	), h.handleClassifyService)

	// --- 4. Tool: sequence_tests ---
	s.AddTool(mcp.NewTool("sequence_tests",
		mcp.WithDescription("Return test file paths in execution order. Without paths, test files are discovered in the workspace."),
		mcp.WithArray("paths", mcp.Description("Test file paths to order."), mcp.WithStringItems()),
		mcp.WithArray("priority", mcp.Description("Filename substrings that must run first, in order."), mcp.WithStringItems()),
	), h.handleSequenceTests)

	return s
}

// StartMCPServer starts the testkit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
