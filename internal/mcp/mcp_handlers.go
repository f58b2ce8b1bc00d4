package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleAnalyzeDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if s := request.GetString("strategy", ""); s != "" {
		strategy := schema.SampleStrategy(s)
		if _, ok := schema.ValidSampleStrategies[strategy]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid sample strategy: %q", s)), nil
		}
		cfg.Strategy = strategy
	}
	if n := request.GetInt("max_rows", 0); n > 0 {
		cfg.MaxSampleRows = n
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetPipelineResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if cfg.ResultLimit > 0 {
		if len(result.Charts) > cfg.ResultLimit {
			result.Charts = result.Charts[:cfg.ResultLimit]
		}
		if len(result.Insights) > cfg.ResultLimit {
			result.Insights = result.Insights[:cfg.ResultLimit]
		}
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if hs := request.GetString("horizons", ""); hs != "" {
		horizons, err := contract.ParseHorizons(hs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid horizons: %v", err)), nil
		}
		cfg.RetentionHorizons = horizons
	}

	result, err := core.GetPipelineResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metric computation failed: %v", err)), nil
	}
	metrics := result.Metrics
	if metrics == nil {
		metrics = &schema.CalculatedMetrics{}
	}

	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if mc := request.GetFloat("min_confidence", 0); mc > 0 && mc <= 1 {
		cfg.MinConfidence = mc
	}

	result, err := core.GetPipelineResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insight generation failed: %v", err)), nil
	}
	insights := result.Insights
	if cfg.ResultLimit > 0 && len(insights) > cfg.ResultLimit {
		insights = insights[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(insights, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSuggestCharts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetPipelineResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart recommendation failed: %v", err)), nil
	}
	charts := result.Charts
	if cfg.ResultLimit > 0 && len(charts) > cfg.ResultLimit {
		charts = charts[:cfg.ResultLimit]
	}

	payload := map[string]any{
		"charts": charts,
		"layout": result.Layout,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
