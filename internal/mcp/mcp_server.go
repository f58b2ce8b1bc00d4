// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GameLens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"GameLens Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: analyze_dataset ---
	s.AddTool(mcp.NewTool("analyze_dataset",
		mcp.WithDescription("Run the full telemetry analysis pipeline on a game dataset: schema inference, genre detection, metrics, charts and insights."),
		mcp.WithString("path", mcp.Description("Path to the CSV dataset to analyze."), mcp.Required()),
		mcp.WithString("strategy", mcp.Description("Sampling strategy (head, tail, random, systematic, stratified, smart). Defaults to 'smart'."), mcp.Enum("head", "tail", "random", "systematic", "stratified", "smart")),
		mcp.WithNumber("max_rows", mcp.Description("Maximum number of rows to sample before analysis.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of charts and insights returned.")),
	), h.handleAnalyzeDataset)

	// --- 2. Tool: get_metrics ---
	s.AddTool(mcp.NewTool("get_metrics",
		mcp.WithDescription("Compute gaming KPIs (retention, engagement, monetization, progression) for a dataset."),
		mcp.WithString("path", mcp.Description("Path to the CSV dataset to analyze."), mcp.Required()),
		mcp.WithString("horizons", mcp.Description("Comma-separated retention horizons in days (e.g. '1,7,30').")),
	), h.handleGetMetrics)

	// --- 3. Tool: get_insights ---
	s.AddTool(mcp.NewTool("get_insights",
		mcp.WithDescription("Generate ranked, actionable insights for a dataset."),
		mcp.WithString("path", mcp.Description("Path to the CSV dataset to analyze."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of insights returned.")),
		mcp.WithNumber("min_confidence", mcp.Description("Drop insights below this confidence (0..1).")),
	), h.handleGetInsights)

	// --- 4. Tool: suggest_charts ---
	s.AddTool(mcp.NewTool("suggest_charts",
		mcp.WithDescription("Recommend dashboard charts for a dataset based on detected column semantics and genre."),
		mcp.WithString("path", mcp.Description("Path to the CSV dataset to analyze."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of chart recommendations returned.")),
	), h.handleSuggestCharts)

	return s
}

// StartMCPServer starts the GameLens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
