// Package storage is the SQLite backend. Amounts are stored as decimal
// strings, never floats, so values round-trip exactly; dates keep their
// YYYY-MM-DD text form and sort lexicographically in SQL.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lifelog/internal/core"
	"lifelog/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// The pragma is per-connection in SQLite, so it has to ride the DSN:
	// every connection the pool opens gets foreign keys enforced, not just
	// the first one.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, description, date FROM expenses ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		var amount string
		if err := rows.Scan(&e.ID, &amount, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, category, description, date) VALUES (?, ?, ?, ?, ?)`,
		id, e.Amount.String(), e.Category, e.Description, e.Date)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"category", e.Category,
		"amount", e.Amount.String(),
		"date", e.Date)

	return id, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, category = ?, description = ?, date = ? WHERE id = ?`,
		e.Amount.String(), e.Category, e.Description, e.Date, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) ListDiaryEntries(ctx context.Context) ([]core.DiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, content FROM diary_entries ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	defer rows.Close()

	out := []core.DiaryEntry{}
	for rows.Next() {
		var e core.DiaryEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Content); err != nil {
			return nil, fmt.Errorf("scan diary entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AddDiaryEntry(ctx context.Context, e core.DiaryEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO diary_entries (id, date, content) VALUES (?, ?, ?)`,
		id, e.Date, e.Content)
	if err != nil {
		return "", fmt.Errorf("insert diary entry: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateDiaryEntry(ctx context.Context, id, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE diary_entries SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("update diary entry: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) DeleteDiaryEntry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) ListTodos(ctx context.Context) ([]core.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, completed, created_at FROM todos ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	out := []core.Todo{}
	for rows.Next() {
		var t core.Todo
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse stored timestamp %q: %w", createdAt, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AddTodo(ctx context.Context, t core.Todo) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, text, completed, created_at) VALUES (?, ?, ?, ?)`,
		id, t.Text, t.Completed, t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert todo: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ToggleTodo(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle todo: %w", err)
	}
	if err := oneRow(res); err != nil {
		return false, err
	}
	var completed bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT completed FROM todos WHERE id = ?`, id).Scan(&completed); err != nil {
		return false, fmt.Errorf("read toggled todo: %w", err)
	}
	return completed, nil
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) ListHabits(ctx context.Context) ([]core.Habit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM habits ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	out := []core.Habit{}
	idx := map[string]int{}
	for rows.Next() {
		var h core.Habit
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse stored timestamp %q: %w", createdAt, err)
		}
		h.CompletedDates = []core.Day{}
		idx[h.ID] = len(out)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dateRows, err := r.db.QueryContext(ctx,
		`SELECT habit_id, date FROM habit_dates ORDER BY habit_id, date`)
	if err != nil {
		return nil, fmt.Errorf("list habit dates: %w", err)
	}
	defer dateRows.Close()

	for dateRows.Next() {
		var habitID string
		var date core.Day
		if err := dateRows.Scan(&habitID, &date); err != nil {
			return nil, fmt.Errorf("scan habit date: %w", err)
		}
		if i, ok := idx[habitID]; ok {
			out[i].CompletedDates = append(out[i].CompletedDates, date)
		}
	}
	return out, dateRows.Err()
}

func (r *SQLiteRepository) AddHabit(ctx context.Context, h core.Habit) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (id, name, created_at) VALUES (?, ?, ?)`,
		id, h.Name, h.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert habit: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) RenameHabit(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE habits SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename habit: %w", err)
	}
	return oneRow(res)
}

// ToggleHabitDate inserts or removes one (habit, date) row in a transaction
// and reports whether the date is now marked done.
func (r *SQLiteRepository) ToggleHabitDate(ctx context.Context, id string, day core.Day) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM habits WHERE id = ?`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check habit: %w", err)
	}
	if exists == 0 {
		return false, store.ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM habit_dates WHERE habit_id = ? AND date = ?`, id, day)
	if err != nil {
		return false, fmt.Errorf("remove habit date: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	done := false
	if removed == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habit_dates (habit_id, date) VALUES (?, ?)`, id, day); err != nil {
			return false, fmt.Errorf("insert habit date: %w", err)
		}
		done = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle: %w", err)
	}
	return done, nil
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return oneRow(res)
}

func (r *SQLiteRepository) AppendEvent(ctx context.Context, ev store.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (collection, record_id, op, occurred_at) VALUES (?, ?, ?, ?)`,
		ev.Collection, ev.RecordID, ev.Op, ev.OccurredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RecentEvents(ctx context.Context, limit int) ([]store.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT collection, record_id, op, occurred_at FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := []store.Event{}
	for rows.Next() {
		var ev store.Event
		var occurredAt string
		if err := rows.Scan(&ev.Collection, &ev.RecordID, &ev.Op, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse stored timestamp %q: %w", occurredAt, err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
