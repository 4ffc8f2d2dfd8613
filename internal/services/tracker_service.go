// Package services holds the tracker service, the layer between the
// MCP tool handlers and storage. Storage returns raw rows and
// aggregates; everything derived (hour conversions, percentages,
// daily roll-ups) is computed here.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tracker/internal/core"
	"tracker/internal/storage"
)

// Store is the slice of the repository the service needs.
type Store interface {
	AddExpense(ctx context.Context, e core.Expense) (int64, error)
	ListExpenses(ctx context.Context, dr core.DateRange) ([]core.Expense, error)
	SummarizeExpenses(ctx context.Context, dr core.DateRange, category string) ([]core.CategorySummary, error)
	AddTimeEntry(ctx context.Context, e core.TimeEntry) (int64, error)
	ListTimeEntries(ctx context.Context, dr core.DateRange, activity string) ([]core.TimeEntry, error)
	SummarizeTime(ctx context.Context, dr core.DateRange, activity string) ([]core.ActivitySummary, error)
	ExpenseTotalsByDate(ctx context.Context, date string) ([]core.CategoryTotal, error)
	TimeTotalsByDate(ctx context.Context, date string) ([]core.ActivityTotal, error)
	ListActivities(ctx context.Context) ([]core.Activity, error)
	AddActivity(ctx context.Context, name, color string) (int64, error)
}

var _ Store = (*storage.Repository)(nil)

// Tracker orchestrates tracker operations over a single storage handle.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// AddExpense validates the date and inserts one expense entry.
func (t *Tracker) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := core.ValidateDate(e.Date); err != nil {
		return 0, err
	}
	id, err := t.store.AddExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("add expense: %w", err)
	}
	return id, nil
}

// ListExpenses returns expenses in the inclusive range.
func (t *Tracker) ListExpenses(ctx context.Context, dr core.DateRange) ([]core.Expense, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	expenses, err := t.store.ListExpenses(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// SummarizeExpenses groups expenses by category, largest total first.
func (t *Tracker) SummarizeExpenses(ctx context.Context, dr core.DateRange, category string) ([]core.CategorySummary, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	summaries, err := t.store.SummarizeExpenses(ctx, dr, category)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	return summaries, nil
}

// AddTimeEntry validates date and clock strings and inserts one entry.
func (t *Tracker) AddTimeEntry(ctx context.Context, e core.TimeEntry) (int64, error) {
	if err := core.ValidateDate(e.Date); err != nil {
		return 0, err
	}
	if err := core.ValidateClock(e.StartTime); err != nil {
		return 0, err
	}
	if err := core.ValidateClock(e.EndTime); err != nil {
		return 0, err
	}
	id, err := t.store.AddTimeEntry(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("add time entry: %w", err)
	}
	return id, nil
}

// TimeEntryWithHours is a stored time entry plus its derived
// duration_hours reading.
type TimeEntryWithHours struct {
	core.TimeEntry
	DurationHours float64
}

// ListTimeEntries returns entries in the range, each augmented with
// the duration converted to hours.
func (t *Tracker) ListTimeEntries(ctx context.Context, dr core.DateRange, activity string) ([]TimeEntryWithHours, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	entries, err := t.store.ListTimeEntries(ctx, dr, activity)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	out := make([]TimeEntryWithHours, len(entries))
	for i, e := range entries {
		out[i] = TimeEntryWithHours{
			TimeEntry:     e,
			DurationHours: core.MinutesToHours(float64(e.DurationMinutes)),
		}
	}
	return out, nil
}

// SummarizeTime groups time by activity and fills in the derived
// fields. The percentage denominator is the minute total across the
// returned groups, so a filtered summary reads 100%.
func (t *Tracker) SummarizeTime(ctx context.Context, dr core.DateRange, activity string) ([]core.ActivitySummary, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	summaries, err := t.store.SummarizeTime(ctx, dr, activity)
	if err != nil {
		return nil, fmt.Errorf("summarize time: %w", err)
	}

	var totalAll int64
	for _, s := range summaries {
		totalAll += s.TotalMinutes
	}
	for i := range summaries {
		summaries[i].TotalHours = core.MinutesToHours(float64(summaries[i].TotalMinutes))
		summaries[i].AvgHours = core.MinutesToHours(summaries[i].AvgMinutes)
		summaries[i].Percentage = core.Percentage(float64(summaries[i].TotalMinutes), float64(totalAll))
	}
	return summaries, nil
}

// DailySummary combines expense and time aggregations for one exact
// date. The two reads are independent, so they run concurrently.
func (t *Tracker) DailySummary(ctx context.Context, date string) (core.DailySummary, error) {
	summary := core.DailySummary{Date: date}
	if err := core.ValidateDate(date); err != nil {
		return summary, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, err := t.store.ExpenseTotalsByDate(gctx, date)
		if err != nil {
			return fmt.Errorf("daily expense totals: %w", err)
		}
		summary.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		times, err := t.store.TimeTotalsByDate(gctx, date)
		if err != nil {
			return fmt.Errorf("daily time totals: %w", err)
		}
		summary.TimeEntries = times
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.DailySummary{Date: date}, err
	}

	for _, e := range summary.Expenses {
		summary.TotalExpense += e.Total
	}
	for i := range summary.TimeEntries {
		summary.TimeEntries[i].Hours = core.MinutesToHours(float64(summary.TimeEntries[i].Minutes))
		summary.TotalHours += summary.TimeEntries[i].Hours
	}
	return summary, nil
}

// ListActivities returns all activity categories ordered by name.
func (t *Tracker) ListActivities(ctx context.Context) ([]core.Activity, error) {
	activities, err := t.store.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// AddActivity inserts a new activity category. Duplicate names pass
// storage.ErrDuplicateActivity through for the tool layer to recover.
func (t *Tracker) AddActivity(ctx context.Context, name, color string) (int64, error) {
	if color == "" {
		color = core.DefaultActivityColor
	}
	return t.store.AddActivity(ctx, name, color)
}
