package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tracker/internal/categories"
	"tracker/internal/log"
	"tracker/internal/services"
)

// ServerName identifies the MCP server to clients.
const ServerName = "expense-time-tracker"

// Tool is one MCP tool: its schema plus its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// All returns every tool the server exposes, in registration order.
func All(tracker *services.Tracker) []Tool {
	return []Tool{
		&AddExpenseTool{tracker: tracker},
		&ListExpensesTool{tracker: tracker},
		&SummarizeExpensesTool{tracker: tracker},
		&AddTimeEntryTool{tracker: tracker},
		&ListTimeEntriesTool{tracker: tracker},
		&SummarizeTimeTool{tracker: tracker},
		&DailySummaryTool{tracker: tracker},
		&ListActivitiesTool{tracker: tracker},
		&AddActivityCategoryTool{tracker: tracker},
	}
}

// NewServer assembles the MCP server: every tool, the categories
// resource, and a logging wrapper around each handler.
func NewServer(version string, tracker *services.Tracker, cats *categories.Store, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	toolLog := logger.WithComponent(log.ComponentTools)
	for _, t := range All(tracker) {
		def := t.Definition()
		s.AddTool(def, logged(toolLog, def.Name, t.Handle))
	}

	resource := &CategoriesResource{store: cats}
	s.AddResource(resource.Definition(), resource.Handle)

	return s
}

// logged wraps a tool handler with duration and failure logging.
func logged(logger *log.Logger, name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, req)
		elapsed := time.Since(start).Milliseconds()
		if err != nil {
			logger.ErrorContext(ctx, "Tool call failed",
				log.FieldTool, name,
				log.FieldDuration, elapsed,
				log.FieldError, err.Error())
			return nil, err
		}
		logger.DebugContext(ctx, "Tool call completed",
			log.FieldTool, name,
			log.FieldDuration, elapsed)
		return result, nil
	}
}
