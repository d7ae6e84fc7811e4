// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/castinsight/castdash/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the castdash MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(dash *core.Dashboard, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"CAST Dashboard Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{dash: dash}

	// --- Portfolio panels ---
	s.AddTool(mcp.NewTool("get_overview",
		mcp.WithDescription("Executive overview: portfolio headline, risk distribution, technology health and health trend."),
	), panelTool(dash.Overview))

	s.AddTool(mcp.NewTool("get_portfolio_metrics",
		mcp.WithDescription("Portfolio headline over the latest snapshot of every application: count, average health, LOC, technical debt, critical apps."),
	), panelTool(dash.Portfolio))

	s.AddTool(mcp.NewTool("get_risk_distribution",
		mcp.WithDescription("Number of applications per risk tier (Critical, High, Medium, Low)."),
	), panelTool(dash.RiskDistribution))

	s.AddTool(mcp.NewTool("get_application_summaries",
		mcp.WithDescription("Most recently analyzed applications with health score, risk level, technical debt and business unit."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of applications. Defaults to the configured limit.")),
	), h.handleGetApplicationSummaries)

	s.AddTool(mcp.NewTool("get_health_trends",
		mcp.WithDescription("Monthly average Total Quality Index. Synthesized when the datamart has no dated history."),
		mcp.WithNumber("months", mcp.Description("Number of months. Defaults to the configured months.")),
	), h.handleGetHealthTrends)

	s.AddTool(mcp.NewTool("get_code_quality_trends",
		mcp.WithDescription("Monthly maintainability, reliability, security and performance averages."),
		mcp.WithNumber("months", mcp.Description("Number of months. Defaults to the configured months.")),
	), h.handleGetCodeQualityTrends)

	s.AddTool(mcp.NewTool("get_technology_health",
		mcp.WithDescription("Average health score of applications per technology."),
	), panelTool(dash.TechnologyHealth))

	s.AddTool(mcp.NewTool("get_architecture_complexity",
		mcp.WithDescription("Most complex applications by weighted object complexity, with a portfolio summary."),
	), panelTool(dash.ArchitectureComplexity))

	s.AddTool(mcp.NewTool("get_security_metrics",
		mcp.WithDescription("Applications with the weakest security scores and their critical violations."),
	), panelTool(dash.SecurityMetrics))

	s.AddTool(mcp.NewTool("get_performance_metrics",
		mcp.WithDescription("Applications with the weakest performance efficiency scores."),
	), panelTool(dash.PerformanceMetrics))

	s.AddTool(mcp.NewTool("list_applications",
		mcp.WithDescription("Applications that have a latest snapshot, with id and latest analysis date."),
	), panelTool(dash.Applications))

	// --- Application panels ---
	s.AddTool(mcp.NewTool("get_application",
		mcp.WithDescription("One panel of one application, addressed by numeric id or by name."),
		mcp.WithString("application", mcp.Description("Application id or name."), mcp.Required()),
		mcp.WithString("panel", mcp.Description("Panel to return. Defaults to 'health'."), mcp.Enum(applicationPanels...)),
	), h.handleGetApplication)

	return s
}

// StartMCPServer serves the castdash tools over stdio.
func StartMCPServer(_ context.Context, dash *core.Dashboard, version string) error {
	s := NewMCPServer(dash, version)
	return server.ServeStdio(s)
}
