package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"tracker/internal/core"
	"tracker/internal/services"
	"tracker/internal/storage"
)

type activityRow struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type messageResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListActivitiesTool returns all activity categories.
type ListActivitiesTool struct {
	tracker *services.Tracker
}

func (t *ListActivitiesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_activities",
		mcp.WithDescription("List all available activity categories with their colors."),
	)
}

func (t *ListActivitiesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activities, err := t.tracker.ListActivities(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]activityRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, activityRow{Name: a.Name, Color: a.Color})
	}
	return jsonResult(rows)
}

// AddActivityCategoryTool inserts a new activity category. A name
// collision is the one failure recovered locally: it comes back as a
// structured error payload instead of a tool-execution error.
type AddActivityCategoryTool struct {
	tracker *services.Tracker
}

func (t *AddActivityCategoryTool) Definition() mcp.Tool {
	return mcp.NewTool("add_activity_category",
		mcp.WithDescription("Add a new activity category."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Activity category name")),
		mcp.WithString("color", mcp.Description("Hex color code (default: blue)"), mcp.DefaultString(core.DefaultActivityColor)),
	)
}

func (t *AddActivityCategoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := stringArg(req, "name")
	if err != nil {
		return nil, err
	}
	color := optStringArg(req, "color", core.DefaultActivityColor)

	if _, err := t.tracker.AddActivity(ctx, name, color); err != nil {
		if errors.Is(err, storage.ErrDuplicateActivity) {
			return jsonResult(messageResult{
				Status:  "error",
				Message: fmt.Sprintf("Activity category '%s' already exists", name),
			})
		}
		return nil, err
	}

	return jsonResult(messageResult{
		Status:  "success",
		Message: fmt.Sprintf("Activity category '%s' added", name),
	})
}
