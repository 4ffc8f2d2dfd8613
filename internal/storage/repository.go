package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tracker/internal/core"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateActivity is returned when an activity category name is
// already taken. It is the only storage failure callers recover from.
var ErrDuplicateActivity = errors.New("activity category already exists")

// defaultActivities are seeded once, the first time the database comes
// up with an empty activity_categories table.
var defaultActivities = []core.Activity{
	{Name: "Study", Color: "#10b981"},
	{Name: "Work", Color: "#3b82f6"},
	{Name: "Game", Color: "#8b5cf6"},
	{Name: "Exercise", Color: "#f59e0b"},
	{Name: "Reading", Color: "#ec4899"},
	{Name: "Coding", Color: "#06b6d4"},
	{Name: "Sleep", Color: "#6366f1"},
	{Name: "Social", Color: "#f97316"},
	{Name: "Other", Color: "#6b7280"},
}

// Repository owns the single-file SQLite database behind every tool.
type Repository struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at dbPath, runs schema
// migrations and seeds default activity categories. It is safe to call
// on every process start.
func Open(ctx context.Context, dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &Repository{db: db, path: dbPath}

	if err := repo.seedDefaultActivities(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed default activities: %w", err)
	}

	return repo, nil
}

// Path returns the location of the database file.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// seedDefaultActivities inserts the default activity categories in one
// transaction, only when the table is empty. Restarting the process
// never duplicates them.
func (r *Repository) seedDefaultActivities(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity_categories").Scan(&count); err != nil {
		return fmt.Errorf("count activity categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO activity_categories(name, color) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range defaultActivities {
		if _, err := stmt.ExecContext(ctx, a.Name, a.Color); err != nil {
			return fmt.Errorf("insert default activity %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "Seeded default activity categories", "count", len(defaultActivities))
	return nil
}

// AddExpense inserts one expense entry and returns its id.
func (r *Repository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses(date, amount, category, subcategory, note) VALUES (?,?,?,?,?)",
		e.Date, e.Amount, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"date", e.Date,
		"amount", e.Amount,
		"category", e.Category)

	return id, nil
}

// ListExpenses returns expenses with date in the inclusive range,
// most recent first, insertion order breaking ties.
func (r *Repository) ListExpenses(ctx context.Context, dr core.DateRange) ([]core.Expense, error) {
	p := &predicate{}
	p.add("date BETWEEN ? AND ?", dr.Start, dr.End)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, date, amount, category, subcategory, note FROM expenses"+
			p.where()+" ORDER BY date DESC, id DESC", p.args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// SummarizeExpenses groups expenses in the range by category, largest
// total first. An empty category means no category filter.
func (r *Repository) SummarizeExpenses(ctx context.Context, dr core.DateRange, category string) ([]core.CategorySummary, error) {
	p := &predicate{}
	p.add("date BETWEEN ? AND ?", dr.Start, dr.End)
	if category != "" {
		p.add("category = ?", category)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT category, SUM(amount) AS total_amount, COUNT(*) AS count FROM expenses"+
			p.where()+" GROUP BY category ORDER BY total_amount DESC", p.args...)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	var summaries []core.CategorySummary
	for rows.Next() {
		var s core.CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalAmount, &s.Count); err != nil {
			return nil, fmt.Errorf("scan expense summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense summaries: %w", err)
	}
	return summaries, nil
}

// AddTimeEntry inserts one time entry and returns its id. Empty clock
// strings are stored as NULL, matching the optional columns.
func (r *Repository) AddTimeEntry(ctx context.Context, e core.TimeEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO time_entries(date, activity, duration_minutes, start_time, end_time, note) VALUES (?,?,?,?,?,?)",
		e.Date, e.Activity, e.DurationMinutes, nullable(e.StartTime), nullable(e.EndTime), e.Note)
	if err != nil {
		return 0, fmt.Errorf("insert time entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("time entry last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Time entry saved",
		"id", id,
		"date", e.Date,
		"activity", e.Activity,
		"duration_minutes", e.DurationMinutes)

	return id, nil
}

// ListTimeEntries returns time entries in the range, newest date first
// then latest start_time first. An empty activity means no filter.
func (r *Repository) ListTimeEntries(ctx context.Context, dr core.DateRange, activity string) ([]core.TimeEntry, error) {
	p := &predicate{}
	p.add("date BETWEEN ? AND ?", dr.Start, dr.End)
	if activity != "" {
		p.add("activity = ?", activity)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, date, activity, duration_minutes, start_time, end_time, note FROM time_entries"+
			p.where()+" ORDER BY date DESC, start_time DESC", p.args...)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()

	var entries []core.TimeEntry
	for rows.Next() {
		var e core.TimeEntry
		var start, end sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Activity, &e.DurationMinutes, &start, &end, &e.Note); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		e.StartTime = start.String
		e.EndTime = end.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}
	return entries, nil
}

// SummarizeTime groups time entries in the range by activity, largest
// total first. Only the raw aggregates are filled; hour conversions and
// percentages belong to the service layer.
func (r *Repository) SummarizeTime(ctx context.Context, dr core.DateRange, activity string) ([]core.ActivitySummary, error) {
	p := &predicate{}
	p.add("date BETWEEN ? AND ?", dr.Start, dr.End)
	if activity != "" {
		p.add("activity = ?", activity)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT activity, SUM(duration_minutes) AS total_minutes, COUNT(*) AS entry_count, AVG(duration_minutes) AS avg_minutes"+
			" FROM time_entries"+p.where()+" GROUP BY activity ORDER BY total_minutes DESC", p.args...)
	if err != nil {
		return nil, fmt.Errorf("summarize time: %w", err)
	}
	defer rows.Close()

	var summaries []core.ActivitySummary
	for rows.Next() {
		var s core.ActivitySummary
		if err := rows.Scan(&s.Activity, &s.TotalMinutes, &s.EntryCount, &s.AvgMinutes); err != nil {
			return nil, fmt.Errorf("scan time summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time summaries: %w", err)
	}
	return summaries, nil
}

// ExpenseTotalsByDate returns per-category expense totals for one date.
func (r *Repository) ExpenseTotalsByDate(ctx context.Context, date string) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT category, SUM(amount) AS total FROM expenses WHERE date = ? GROUP BY category", date)
	if err != nil {
		return nil, fmt.Errorf("query expense totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scan expense total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense totals: %w", err)
	}
	return totals, nil
}

// TimeTotalsByDate returns per-activity minute totals for one date.
func (r *Repository) TimeTotalsByDate(ctx context.Context, date string) ([]core.ActivityTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT activity, SUM(duration_minutes) AS total_minutes FROM time_entries WHERE date = ? GROUP BY activity", date)
	if err != nil {
		return nil, fmt.Errorf("query time totals: %w", err)
	}
	defer rows.Close()

	var totals []core.ActivityTotal
	for rows.Next() {
		var t core.ActivityTotal
		if err := rows.Scan(&t.Activity, &t.Minutes); err != nil {
			return nil, fmt.Errorf("scan time total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time totals: %w", err)
	}
	return totals, nil
}

// ListActivities returns all activity categories ordered by name.
func (r *Repository) ListActivities(ctx context.Context) ([]core.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, color FROM activity_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []core.Activity
	for rows.Next() {
		var a core.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Color); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

// AddActivity inserts a new activity category. A name collision comes
// back as ErrDuplicateActivity.
func (r *Repository) AddActivity(ctx context.Context, name, color string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_categories(name, color) VALUES (?, ?)", name, color)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateActivity, name)
		}
		return 0, fmt.Errorf("insert activity category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("activity last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Activity category added", "id", id, "name", name, "color", color)
	return id, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlitedrv.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
