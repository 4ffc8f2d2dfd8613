package core

import (
	"errors"
	"fmt"
	"time"
)

// DefaultActivityColor is the color assigned to activity categories
// created without an explicit color.
const DefaultActivityColor = "#3b82f6"

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock = errors.New("invalid time, expected HH:MM")
)

type (
	// Expense is a single expense entry. Entries are create-only: no
	// exposed operation updates or deletes them.
	Expense struct {
		ID          int64
		Date        string
		Amount      float64
		Category    string
		Subcategory string
		Note        string
	}

	// TimeEntry is a single time-tracking entry. StartTime and EndTime
	// are empty when not recorded.
	TimeEntry struct {
		ID              int64
		Date            string
		Activity        string
		DurationMinutes int64
		StartTime       string
		EndTime         string
		Note            string
	}

	// Activity is a named activity category with a display color.
	Activity struct {
		ID    int64
		Name  string
		Color string
	}

	// DateRange is an inclusive [Start, End] filter over date strings.
	// Dates are compared lexically, which is correct because every date
	// accepted by the server is validated to the sortable YYYY-MM-DD form.
	DateRange struct {
		Start string
		End   string
	}

	// CategorySummary aggregates expenses for one category.
	CategorySummary struct {
		Category    string
		TotalAmount float64
		Count       int64
	}

	// CategoryTotal is one expense line of a daily summary.
	CategoryTotal struct {
		Category string
		Total    float64
	}

	// ActivityTotal is one time line of a daily summary. Hours is
	// derived from Minutes by the service layer.
	ActivityTotal struct {
		Activity string
		Minutes  int64
		Hours    float64
	}

	// DailySummary combines expense and time aggregations for one date.
	DailySummary struct {
		Date         string
		Expenses     []CategoryTotal
		TotalExpense float64
		TimeEntries  []ActivityTotal
		TotalHours   float64
	}

	// ActivitySummary aggregates time entries for one activity.
	// TotalHours, AvgHours and Percentage are derived by the service
	// layer, not by storage.
	ActivitySummary struct {
		Activity     string
		TotalMinutes int64
		EntryCount   int64
		AvgMinutes   float64
		TotalHours   float64
		AvgHours     float64
		Percentage   float64
	}
)

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

// ValidateClock checks that s is a wall-clock time in HH:MM form.
// The empty string is accepted: clock times are optional everywhere.
func ValidateClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return nil
}

func (r DateRange) Validate() error {
	if err := ValidateDate(r.Start); err != nil {
		return err
	}
	return ValidateDate(r.End)
}
