package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/db"
	"github.com/alexanderramin/promptcraft/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteHistoryRepo(db db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

const historyColumns = `id, category_id, subcategory_id, content, answers_json,
	word_count, char_count, created_at, copied_at, saved_path`

// newestFirst breaks created_at ties by insertion order.
const newestFirst = `ORDER BY created_at DESC, rowid DESC`

func (r *SQLiteHistoryRepo) Create(ctx context.Context, e *domain.HistoryEntry) error {
	answers := e.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}

	var copiedAt any
	if e.CopiedAt != nil {
		copiedAt = formatTime(*e.CopiedAt)
	}
	var savedPath any
	if e.SavedPath != nil {
		savedPath = *e.SavedPath
	}

	query := `INSERT INTO prompt_history (` + historyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.CategoryID,
		e.SubcategoryID,
		e.Content,
		string(answersJSON),
		e.WordCount,
		e.CharCount,
		formatTime(e.CreatedAt),
		copiedAt,
		savedPath,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("history entry: empty id: %w", domain.ErrNotFound)
	}

	query := `SELECT ` + historyColumns + ` FROM prompt_history WHERE id = ?`
	e, err := r.scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return e, err
	}

	query = `SELECT ` + historyColumns + ` FROM prompt_history
		WHERE substr(id, 1, ?) = ? ` + newestFirst + ` LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("looking up history prefix: %w", err)
	}
	defer rows.Close()
	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("history entry %q: %w", id, domain.ErrNotFound)
	case 1:
		return entries[0], nil
	}
	return nil, fmt.Errorf("history entry %q: %w", id, domain.ErrAmbiguous)
}

func (r *SQLiteHistoryRepo) ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM prompt_history ` + newestFirst + ` LIMIT ?`
	return r.list(ctx, "listing recent history", query, limitArg(limit))
}

func (r *SQLiteHistoryRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM prompt_history
		WHERE category_id = ? ` + newestFirst + ` LIMIT ?`
	return r.list(ctx, "listing history by category", query, categoryID, limitArg(limit))
}

// Search matches term case-insensitively against content, category and
// subcategory.
func (r *SQLiteHistoryRepo) Search(ctx context.Context, term string, limit int) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM prompt_history
		WHERE instr(lower(content), lower(?1)) > 0
		   OR instr(lower(category_id), lower(?1)) > 0
		   OR instr(lower(subcategory_id), lower(?1)) > 0
		` + newestFirst + ` LIMIT ?2`
	return r.list(ctx, "searching history", query, strings.TrimSpace(term), limitArg(limit))
}

func (r *SQLiteHistoryRepo) MarkCopied(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE prompt_history SET copied_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking history entry copied: %w", err)
	}
	return requireAffected(res, "history entry "+id)
}

func (r *SQLiteHistoryRepo) MarkSaved(ctx context.Context, id, path string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE prompt_history SET saved_path = ? WHERE id = ?`, path, id)
	if err != nil {
		return fmt.Errorf("marking history entry saved: %w", err)
	}
	return requireAffected(res, "history entry "+id)
}

func (r *SQLiteHistoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prompt_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return requireAffected(res, "history entry "+id)
}

func (r *SQLiteHistoryRepo) Trim(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("trim keep %d: %w", keep, domain.ErrValidation)
	}
	query := `DELETE FROM prompt_history WHERE id NOT IN (
		SELECT id FROM prompt_history ` + newestFirst + ` LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming history: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteHistoryRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prompt_history`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteHistoryRepo) Stats(ctx context.Context, topN int) (*domain.HistoryStats, error) {
	var (
		st   domain.HistoryStats
		last sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(word_count), 0),
			COUNT(copied_at),
			COUNT(saved_path),
			MAX(created_at)
		FROM prompt_history`).Scan(&st.Total, &st.TotalWords, &st.Copied, &st.Saved, &last)
	if err != nil {
		return nil, fmt.Errorf("computing history totals: %w", err)
	}
	st.LastCreatedAt = parseNullableTime(last)

	st.ByCategory, err = r.countBy(ctx, `category_id`, -1)
	if err != nil {
		return nil, err
	}
	st.TopSubcategory, err = r.countBy(ctx, `category_id || '/' || subcategory_id`, limitArg(topN))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *SQLiteHistoryRepo) countBy(ctx context.Context, keyExpr string, limit int) ([]domain.KeyCount, error) {
	query := `SELECT ` + keyExpr + ` AS k, COUNT(*) AS n FROM prompt_history
		GROUP BY k ORDER BY n DESC, k ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("grouping history: %w", err)
	}
	defer rows.Close()

	var out []domain.KeyCount
	for rows.Next() {
		var kc domain.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, fmt.Errorf("scanning history group: %w", err)
		}
		out = append(out, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history groups: %w", err)
	}
	return out, nil
}

func (r *SQLiteHistoryRepo) list(ctx context.Context, what, query string, args ...any) ([]*domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// limitArg maps a non-positive limit to SQLite's "no limit".
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteHistoryRepo) scanEntry(row *sql.Row) (*domain.HistoryEntry, error) {
	e, err := r.populate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("history entry: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteHistoryRepo) scanEntries(rows *sql.Rows) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	for rows.Next() {
		e, err := r.populate(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// populate scans one row and decodes its text columns.
func (r *SQLiteHistoryRepo) populate(s scanner) (*domain.HistoryEntry, error) {
	var (
		e                    domain.HistoryEntry
		answersJSON, created string
		copiedAt, savedPath  sql.NullString
	)
	err := s.Scan(
		&e.ID, &e.CategoryID, &e.SubcategoryID, &e.Content, &answersJSON,
		&e.WordCount, &e.CharCount, &created, &copiedAt, &savedPath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	e.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &e.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers of %s: %w", e.ID, err)
	}
	e.CopiedAt = parseNullableTime(copiedAt)
	e.SavedPath = nullableString(savedPath)
	return &e, nil
}
