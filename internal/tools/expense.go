// Package tools exposes the tracker operations as MCP tools and
// resources. Each tool is a struct with its dependencies injected,
// a Definition() describing its schema and a Handle() doing the work.
//
// Failure handling follows two tiers: duplicate activity names are
// recovered locally into a structured {"status":"error"} payload;
// every other failure is returned as an error and surfaced by the
// protocol layer as a tool-execution error.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tracker/internal/core"
	"tracker/internal/services"
)

type statusResult struct {
	Status  string `json:"status"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

type expenseRow struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Note        string  `json:"note"`
}

type expenseSummaryRow struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
}

// AddExpenseTool inserts one expense entry.
type AddExpenseTool struct {
	tracker *services.Tracker
}

func (t *AddExpenseTool) Definition() mcp.Tool {
	return mcp.NewTool("add_expense",
		mcp.WithDescription("Add a new expense entry to the database."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Expense amount")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Expense category")),
		mcp.WithString("subcategory", mcp.Description("Optional subcategory"), mcp.DefaultString("")),
		mcp.WithString("note", mcp.Description("Optional note"), mcp.DefaultString("")),
	)
}

func (t *AddExpenseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := stringArg(req, "date")
	if err != nil {
		return nil, err
	}
	amount, err := floatArg(req, "amount")
	if err != nil {
		return nil, err
	}
	category, err := stringArg(req, "category")
	if err != nil {
		return nil, err
	}

	id, err := t.tracker.AddExpense(ctx, core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Subcategory: optStringArg(req, "subcategory", ""),
		Note:        optStringArg(req, "note", ""),
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(statusResult{Status: "success", ID: id, Message: "Expense added successfully"})
}

// ListExpensesTool lists expenses in an inclusive date range.
type ListExpensesTool struct {
	tracker *services.Tracker
}

func (t *ListExpensesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_expenses",
		mcp.WithDescription("List expense entries within an inclusive date range."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date in YYYY-MM-DD format")),
	)
}

func (t *ListExpensesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dr, err := rangeArgs(req)
	if err != nil {
		return nil, err
	}

	expenses, err := t.tracker.ListExpenses(ctx, dr)
	if err != nil {
		return nil, err
	}

	rows := make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, expenseRow{
			ID:          e.ID,
			Date:        e.Date,
			Amount:      e.Amount,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Note:        e.Note,
		})
	}
	return jsonResult(rows)
}

// SummarizeExpensesTool groups expenses by category.
type SummarizeExpensesTool struct {
	tracker *services.Tracker
}

func (t *SummarizeExpensesTool) Definition() mcp.Tool {
	return mcp.NewTool("summarize_expenses",
		mcp.WithDescription("Summarize expenses by category within an inclusive date range."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("category", mcp.Description("Optional category filter")),
	)
}

func (t *SummarizeExpensesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dr, err := rangeArgs(req)
	if err != nil {
		return nil, err
	}

	summaries, err := t.tracker.SummarizeExpenses(ctx, dr, optStringArg(req, "category", ""))
	if err != nil {
		return nil, err
	}

	rows := make([]expenseSummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, expenseSummaryRow{
			Category:    s.Category,
			TotalAmount: s.TotalAmount,
			Count:       s.Count,
		})
	}
	return jsonResult(rows)
}

// rangeArgs reads the start_date/end_date pair shared by every range
// query.
func rangeArgs(req mcp.CallToolRequest) (core.DateRange, error) {
	start, err := stringArg(req, "start_date")
	if err != nil {
		return core.DateRange{}, err
	}
	end, err := stringArg(req, "end_date")
	if err != nil {
		return core.DateRange{}, err
	}
	return core.DateRange{Start: start, End: end}, nil
}
