package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"tracker/internal/core"
	"tracker/internal/services"
)

type timeEntryRow struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	Activity        string  `json:"activity"`
	DurationMinutes int64   `json:"duration_minutes"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Note            string  `json:"note"`
	DurationHours   float64 `json:"duration_hours"`
}

type timeSummaryRow struct {
	Activity     string  `json:"activity"`
	TotalMinutes int64   `json:"total_minutes"`
	EntryCount   int64   `json:"entry_count"`
	AvgMinutes   float64 `json:"avg_minutes"`
	TotalHours   float64 `json:"total_hours"`
	AvgHours     float64 `json:"avg_hours"`
	Percentage   float64 `json:"percentage"`
}

type dailyExpenseLine struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type dailyTimeLine struct {
	Activity string  `json:"activity"`
	Minutes  int64   `json:"minutes"`
	Hours    float64 `json:"hours"`
}

type dailySummaryResult struct {
	Date         string             `json:"date"`
	Expenses     []dailyExpenseLine `json:"expenses"`
	TotalExpense float64            `json:"total_expense"`
	TimeEntries  []dailyTimeLine    `json:"time_entries"`
	TotalHours   float64            `json:"total_hours"`
}

// AddTimeEntryTool inserts one time-tracking entry.
type AddTimeEntryTool struct {
	tracker *services.Tracker
}

func (t *AddTimeEntryTool) Definition() mcp.Tool {
	return mcp.NewTool("add_time_entry",
		mcp.WithDescription("Add a new time tracking entry."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithString("activity", mcp.Required(), mcp.Description("Activity name (e.g., Study, Game, Work)")),
		mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Duration in minutes")),
		mcp.WithString("start_time", mcp.Description("Optional start time in HH:MM format")),
		mcp.WithString("end_time", mcp.Description("Optional end time in HH:MM format")),
		mcp.WithString("note", mcp.Description("Optional note about the activity"), mcp.DefaultString("")),
	)
}

func (t *AddTimeEntryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := stringArg(req, "date")
	if err != nil {
		return nil, err
	}
	activity, err := stringArg(req, "activity")
	if err != nil {
		return nil, err
	}
	minutes, err := intArg(req, "duration_minutes")
	if err != nil {
		return nil, err
	}

	id, err := t.tracker.AddTimeEntry(ctx, core.TimeEntry{
		Date:            date,
		Activity:        activity,
		DurationMinutes: minutes,
		StartTime:       optStringArg(req, "start_time", ""),
		EndTime:         optStringArg(req, "end_time", ""),
		Note:            optStringArg(req, "note", ""),
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(statusResult{
		Status:  "success",
		ID:      id,
		Message: fmt.Sprintf("Time entry added: %d minutes on %s", minutes, activity),
	})
}

// ListTimeEntriesTool lists time entries in a date range.
type ListTimeEntriesTool struct {
	tracker *services.Tracker
}

func (t *ListTimeEntriesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_time_entries",
		mcp.WithDescription("List time entries within a date range, optionally filtered by activity."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("activity", mcp.Description("Optional activity filter")),
	)
}

func (t *ListTimeEntriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dr, err := rangeArgs(req)
	if err != nil {
		return nil, err
	}

	entries, err := t.tracker.ListTimeEntries(ctx, dr, optStringArg(req, "activity", ""))
	if err != nil {
		return nil, err
	}

	rows := make([]timeEntryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, timeEntryRow{
			ID:              e.ID,
			Date:            e.Date,
			Activity:        e.Activity,
			DurationMinutes: e.DurationMinutes,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			Note:            e.Note,
			DurationHours:   e.DurationHours,
		})
	}
	return jsonResult(rows)
}

// SummarizeTimeTool groups time spent by activity.
type SummarizeTimeTool struct {
	tracker *services.Tracker
}

func (t *SummarizeTimeTool) Definition() mcp.Tool {
	return mcp.NewTool("summarize_time",
		mcp.WithDescription("Summarize time spent by activity within a date range."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("activity", mcp.Description("Optional activity filter")),
	)
}

func (t *SummarizeTimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dr, err := rangeArgs(req)
	if err != nil {
		return nil, err
	}

	summaries, err := t.tracker.SummarizeTime(ctx, dr, optStringArg(req, "activity", ""))
	if err != nil {
		return nil, err
	}

	rows := make([]timeSummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, timeSummaryRow{
			Activity:     s.Activity,
			TotalMinutes: s.TotalMinutes,
			EntryCount:   s.EntryCount,
			AvgMinutes:   s.AvgMinutes,
			TotalHours:   s.TotalHours,
			AvgHours:     s.AvgHours,
			Percentage:   s.Percentage,
		})
	}
	return jsonResult(rows)
}

// DailySummaryTool combines expenses and time for one day.
type DailySummaryTool struct {
	tracker *services.Tracker
}

func (t *DailySummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_daily_summary",
		mcp.WithDescription("Get a complete summary of expenses and time for a specific day."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
	)
}

func (t *DailySummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := stringArg(req, "date")
	if err != nil {
		return nil, err
	}

	summary, err := t.tracker.DailySummary(ctx, date)
	if err != nil {
		return nil, err
	}

	result := dailySummaryResult{
		Date:         summary.Date,
		Expenses:     make([]dailyExpenseLine, 0, len(summary.Expenses)),
		TotalExpense: summary.TotalExpense,
		TimeEntries:  make([]dailyTimeLine, 0, len(summary.TimeEntries)),
		TotalHours:   summary.TotalHours,
	}
	for _, e := range summary.Expenses {
		result.Expenses = append(result.Expenses, dailyExpenseLine{Category: e.Category, Total: e.Total})
	}
	for _, te := range summary.TimeEntries {
		result.TimeEntries = append(result.TimeEntries, dailyTimeLine{Activity: te.Activity, Minutes: te.Minutes, Hours: te.Hours})
	}
	return jsonResult(result)
}
