package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type DailyRepo struct {
	db *sql.DB
}

func NewDailyRepo(db *sql.DB) *DailyRepo {
	return &DailyRepo{db: db}
}

func (r *DailyRepo) Get(ctx context.Context, date string) (*DailyRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, total_points FROM daily_records WHERE date = ?
	`, date)

	var rec DailyRecord
	if err := row.Scan(&rec.Date, &rec.TotalPoints); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daily get: %w", err)
	}
	return &rec, nil
}

// List returns all records most-recent-first. Day keys are YYYY-MM-DD, so
// descending string order is descending date order.
func (r *DailyRepo) List(ctx context.Context) ([]DailyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, total_points FROM daily_records ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("daily list: %w", err)
	}
	defer rows.Close()

	var out []DailyRecord
	for rows.Next() {
		var rec DailyRecord
		if err := rows.Scan(&rec.Date, &rec.TotalPoints); err != nil {
			return nil, fmt.Errorf("daily scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily rows: %w", err)
	}
	return out, nil
}

func (r *DailyRepo) Upsert(ctx context.Context, rec DailyRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_records (date, total_points) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET total_points = excluded.total_points
	`, rec.Date, rec.TotalPoints)
	if err != nil {
		return fmt.Errorf("daily upsert: %w", err)
	}
	return nil
}

func (r *DailyRepo) Delete(ctx context.Context, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM daily_records WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("daily delete: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the archive to exactly the given records in one
// transaction; used by edits that touch several days at once.
func (r *DailyRepo) ReplaceAll(ctx context.Context, records []DailyRecord) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_records`); err != nil {
			return fmt.Errorf("daily clear: %w", err)
		}
		for _, rec := range records {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO daily_records (date, total_points) VALUES (?, ?)
			`, rec.Date, rec.TotalPoints)
			if err != nil {
				return fmt.Errorf("daily replace: %w", err)
			}
		}
		return nil
	})
}
