package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tracker/internal/core"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestOpen_SeedsDefaultActivities(t *testing.T) {
	repo := openTestRepo(t)

	activities, err := repo.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(activities) != 9 {
		t.Fatalf("got %d default activities, want 9", len(activities))
	}

	// Ordered alphabetically by name.
	wantFirst, wantLast := "Coding", "Work"
	if activities[0].Name != wantFirst {
		t.Errorf("first activity = %q, want %q", activities[0].Name, wantFirst)
	}
	if activities[len(activities)-1].Name != wantLast {
		t.Errorf("last activity = %q, want %q", activities[len(activities)-1].Name, wantLast)
	}
}

func TestOpen_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tracker.db")

	repo, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	repo.Close()

	repo, err = Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer repo.Close()

	activities, err := repo.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(activities) != 9 {
		t.Errorf("got %d activities after reopening, want 9", len(activities))
	}
}

func TestAddExpense_IDsIncrease(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		id, err := repo.AddExpense(ctx, core.Expense{Date: "2024-01-01", Amount: 10, Category: "Food"})
		if err != nil {
			t.Fatalf("AddExpense() error = %v", err)
		}
		if id <= last {
			t.Fatalf("id %d not strictly greater than previous %d", id, last)
		}
		last = id
	}
}

func TestListExpenses_RangeAndOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Date: "2024-01-01", Amount: 500, Category: "Food", Subcategory: "Lunch", Note: "ramen"},
		{Date: "2024-01-02", Amount: 120, Category: "Transport"},
		{Date: "2024-01-02", Amount: 80, Category: "Food"},
		{Date: "2024-02-01", Amount: 999, Category: "Shopping"},
	}
	for _, e := range seed {
		if _, err := repo.AddExpense(ctx, e); err != nil {
			t.Fatalf("AddExpense() error = %v", err)
		}
	}

	got, err := repo.ListExpenses(ctx, core.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d expenses, want 3", len(got))
	}

	// date DESC, then id DESC within the same date.
	if got[0].Category != "Food" || got[0].Date != "2024-01-02" {
		t.Errorf("first row = %+v, want the later Food entry on 2024-01-02", got[0])
	}
	if got[1].Category != "Transport" {
		t.Errorf("second row = %+v, want Transport", got[1])
	}
	if got[2].Date != "2024-01-01" || got[2].Note != "ramen" {
		t.Errorf("third row = %+v, want the 2024-01-01 entry", got[2])
	}
}

func TestListExpenses_ExactDayRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := core.Expense{Date: "2024-03-15", Amount: 42.5, Category: "Food", Subcategory: "Snacks", Note: "coffee"}
	id, err := repo.AddExpense(ctx, want)
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	got, err := repo.ListExpenses(ctx, core.DateRange{Start: "2024-03-15", End: "2024-03-15"})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want exactly 1", len(got))
	}
	e := got[0]
	if e.ID != id || e.Amount != want.Amount || e.Category != want.Category ||
		e.Subcategory != want.Subcategory || e.Note != want.Note {
		t.Errorf("round trip mismatch: got %+v, inserted %+v with id %d", e, want, id)
	}
}

func TestSummarizeExpenses(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Date: "2024-01-01", Amount: 100, Category: "Food"},
		{Date: "2024-01-02", Amount: 50, Category: "Food"},
		{Date: "2024-01-03", Amount: 200, Category: "Transport"},
		{Date: "2024-02-01", Amount: 1000, Category: "Food"}, // outside range
	}
	for _, e := range seed {
		if _, err := repo.AddExpense(ctx, e); err != nil {
			t.Fatalf("AddExpense() error = %v", err)
		}
	}
	dr := core.DateRange{Start: "2024-01-01", End: "2024-01-31"}

	got, err := repo.SummarizeExpenses(ctx, dr, "")
	if err != nil {
		t.Fatalf("SummarizeExpenses() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	// Ordered by total_amount DESC.
	if got[0].Category != "Transport" || got[0].TotalAmount != 200 || got[0].Count != 1 {
		t.Errorf("first group = %+v, want Transport 200/1", got[0])
	}
	if got[1].Category != "Food" || got[1].TotalAmount != 150 || got[1].Count != 2 {
		t.Errorf("second group = %+v, want Food 150/2", got[1])
	}

	filtered, err := repo.SummarizeExpenses(ctx, dr, "Food")
	if err != nil {
		t.Fatalf("SummarizeExpenses(Food) error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].Category != "Food" || filtered[0].TotalAmount != 150 {
		t.Errorf("filtered summary = %+v, want only Food 150", filtered)
	}
}

func TestTimeEntries_InsertListFilter(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	entries := []core.TimeEntry{
		{Date: "2024-01-01", Activity: "Study", DurationMinutes: 60, StartTime: "09:00", EndTime: "10:00"},
		{Date: "2024-01-01", Activity: "Work", DurationMinutes: 180, StartTime: "13:00", EndTime: "16:00", Note: "sprint"},
		{Date: "2024-01-02", Activity: "Study", DurationMinutes: 30},
	}
	for _, e := range entries {
		if _, err := repo.AddTimeEntry(ctx, e); err != nil {
			t.Fatalf("AddTimeEntry() error = %v", err)
		}
	}
	dr := core.DateRange{Start: "2024-01-01", End: "2024-01-02"}

	all, err := repo.ListTimeEntries(ctx, dr, "")
	if err != nil {
		t.Fatalf("ListTimeEntries() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	if all[0].Date != "2024-01-02" {
		t.Errorf("first entry date = %q, want the newest date first", all[0].Date)
	}
	// Within 2024-01-01, later start_time first.
	if all[1].Activity != "Work" || all[1].StartTime != "13:00" {
		t.Errorf("second entry = %+v, want Work starting 13:00", all[1])
	}
	if all[2].StartTime != "09:00" || all[2].EndTime != "10:00" {
		t.Errorf("third entry clock times = %q-%q, want 09:00-10:00", all[2].StartTime, all[2].EndTime)
	}

	study, err := repo.ListTimeEntries(ctx, dr, "Study")
	if err != nil {
		t.Fatalf("ListTimeEntries(Study) error = %v", err)
	}
	if len(study) != 2 {
		t.Errorf("got %d Study entries, want 2", len(study))
	}
}

func TestSummarizeTime_RawAggregates(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	entries := []core.TimeEntry{
		{Date: "2024-01-01", Activity: "Study", DurationMinutes: 60},
		{Date: "2024-01-01", Activity: "Work", DurationMinutes: 180},
		{Date: "2024-01-01", Activity: "Work", DurationMinutes: 60},
	}
	for _, e := range entries {
		if _, err := repo.AddTimeEntry(ctx, e); err != nil {
			t.Fatalf("AddTimeEntry() error = %v", err)
		}
	}

	got, err := repo.SummarizeTime(ctx, core.DateRange{Start: "2024-01-01", End: "2024-01-01"}, "")
	if err != nil {
		t.Fatalf("SummarizeTime() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	if got[0].Activity != "Work" || got[0].TotalMinutes != 240 || got[0].EntryCount != 2 || got[0].AvgMinutes != 120 {
		t.Errorf("first group = %+v, want Work 240min/2 entries/avg 120", got[0])
	}
	if got[1].Activity != "Study" || got[1].TotalMinutes != 60 || got[1].EntryCount != 1 {
		t.Errorf("second group = %+v, want Study 60min/1 entry", got[1])
	}
}

func TestDailyTotals(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddExpense(ctx, core.Expense{Date: "2024-01-01", Amount: 500, Category: "Food"}); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if _, err := repo.AddTimeEntry(ctx, core.TimeEntry{Date: "2024-01-01", Activity: "Study", DurationMinutes: 60}); err != nil {
		t.Fatalf("AddTimeEntry() error = %v", err)
	}

	expenses, err := repo.ExpenseTotalsByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("ExpenseTotalsByDate() error = %v", err)
	}
	if len(expenses) != 1 || expenses[0].Category != "Food" || expenses[0].Total != 500 {
		t.Errorf("expense totals = %+v, want Food 500", expenses)
	}

	times, err := repo.TimeTotalsByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("TimeTotalsByDate() error = %v", err)
	}
	if len(times) != 1 || times[0].Activity != "Study" || times[0].Minutes != 60 {
		t.Errorf("time totals = %+v, want Study 60", times)
	}

	empty, err := repo.ExpenseTotalsByDate(ctx, "2024-01-02")
	if err != nil {
		t.Fatalf("ExpenseTotalsByDate(empty day) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d totals for an empty day, want 0", len(empty))
	}
}

func TestAddActivity_DuplicateName(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddActivity(ctx, "Yoga", "#aabbcc")
	if err != nil {
		t.Fatalf("AddActivity() error = %v", err)
	}
	if id == 0 {
		t.Fatal("AddActivity() returned id 0")
	}

	before, err := repo.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}

	if _, err := repo.AddActivity(ctx, "Yoga", "#ffffff"); !errors.Is(err, ErrDuplicateActivity) {
		t.Fatalf("duplicate AddActivity() error = %v, want ErrDuplicateActivity", err)
	}
	// Seeded names collide too.
	if _, err := repo.AddActivity(ctx, "Work", core.DefaultActivityColor); !errors.Is(err, ErrDuplicateActivity) {
		t.Fatalf("seeded-name AddActivity() error = %v, want ErrDuplicateActivity", err)
	}

	after, err := repo.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("activity count changed from %d to %d on duplicate insert", len(before), len(after))
	}
}
