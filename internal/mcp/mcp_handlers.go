package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/core/result"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// Application panels served by the get_application tool.
const (
	panelHealth       = "health"
	panelViolations   = "violations"
	panelRisks        = "risks"
	panelProductivity = "productivity"
	panelISOTrends    = "iso-trends"
	panelCWE          = "cwe"
)

var applicationPanels = []string{panelHealth, panelViolations, panelRisks, panelProductivity, panelISOTrends, panelCWE}

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	dash *core.Dashboard
}

// toolResult wraps a panel outcome in the result envelope. Failures are
// reported as tool errors, never as protocol errors.
func toolResult(data any, err error) (*mcp.CallToolResult, error) {
	envelope := result.OK(data)
	if err != nil {
		envelope = result.Fail(err)
	}
	jsonData, marshalErr := json.MarshalIndent(envelope, "", "  ")
	if marshalErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", marshalErr)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(string(jsonData)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// panelTool adapts a parameterless dashboard call.
func panelTool[T any](fetch func(context.Context) (T, error)) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := fetch(ctx)
		if err != nil {
			return toolResult(nil, err)
		}
		return toolResult(data, nil)
	}
}

func (h *toolHandler) handleGetApplicationSummaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := min(request.GetInt("limit", 0), contract.MaxResultLimit)
	summaries, err := h.dash.ApplicationSummaries(ctx, limit)
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(summaries, nil)
}

func (h *toolHandler) handleGetHealthTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	months := min(request.GetInt("months", 0), contract.MaxTrendMonths)
	trend, err := h.dash.HealthTrend(ctx, months)
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(trend, nil)
}

func (h *toolHandler) handleGetCodeQualityTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	months := min(request.GetInt("months", 0), contract.MaxTrendMonths)
	trend, err := h.dash.QualityTrend(ctx, months)
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(trend, nil)
}

func (h *toolHandler) handleGetApplication(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := schema.ParseApplicationKey(request.GetString("application", ""))
	if err != nil {
		return toolResult(nil, err)
	}

	var data any
	switch panel := request.GetString("panel", panelHealth); panel {
	case panelHealth:
		data, err = h.dash.ApplicationHealth(ctx, key)
	case panelViolations:
		data, err = h.dash.ApplicationViolations(ctx, key)
	case panelRisks:
		data, err = h.dash.ApplicationRisk(ctx, key)
	case panelProductivity:
		data, err = h.dash.ApplicationProductivity(ctx, key)
	case panelISOTrends:
		data, err = h.dash.ISOTrends(ctx, key)
	case panelCWE:
		data, err = h.dash.CWEFindings(ctx, key)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown panel '%s'. must be one of %v", panel, applicationPanels)), nil
	}
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(data, nil)
}
