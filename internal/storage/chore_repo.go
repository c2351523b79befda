package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ChoreRepo struct {
	db *sql.DB
}

func NewChoreRepo(db *sql.DB) *ChoreRepo {
	return &ChoreRepo{db: db}
}

type ChoreInsert struct {
	Name        string
	Icon        string
	DailyPoints int
	Position    int
}

func (r *ChoreRepo) Insert(ctx context.Context, in ChoreInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO chores (name, icon, daily_points, position)
		VALUES (?, ?, ?, ?)
	`, in.Name, in.Icon, in.DailyPoints, in.Position)
	if err != nil {
		return 0, fmt.Errorf("chore insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("chore last insert id: %w", err)
	}
	return id, nil
}

func (r *ChoreRepo) Get(ctx context.Context, id int64) (*Chore, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, icon, daily_points, today_points, total_points, position
		FROM chores
		WHERE id = ?
	`, id)

	var c Chore
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.DailyPoints, &c.TodayPoints, &c.TotalPoints, &c.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("chore get: %w", err)
	}
	return &c, nil
}

// List returns all chores in catalog order.
func (r *ChoreRepo) List(ctx context.Context) ([]Chore, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, daily_points, today_points, total_points, position
		FROM chores
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("chore list: %w", err)
	}
	defer rows.Close()

	var out []Chore
	for rows.Next() {
		var c Chore
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.DailyPoints, &c.TodayPoints, &c.TotalPoints, &c.Position); err != nil {
			return nil, fmt.Errorf("chore scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chore rows: %w", err)
	}
	return out, nil
}

func (r *ChoreRepo) UpdatePoints(ctx context.Context, id int64, todayPoints, totalPoints int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE chores SET today_points = ?, total_points = ? WHERE id = ?
	`, todayPoints, totalPoints, id)
	if err != nil {
		return fmt.Errorf("chore update points: %w", err)
	}
	return nil
}

// SaveAllPoints writes the today/total counters of every given chore in one
// transaction.
func (r *ChoreRepo) SaveAllPoints(ctx context.Context, chores []Chore) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.SavePointsTx(ctx, tx, chores)
	})
}

// SavePointsTx is SaveAllPoints inside a caller-owned transaction, for
// writes that must commit together with other tables.
func (r *ChoreRepo) SavePointsTx(ctx context.Context, tx *sql.Tx, chores []Chore) error {
	for _, c := range chores {
		_, err := tx.ExecContext(ctx, `
			UPDATE chores SET today_points = ?, total_points = ? WHERE id = ?
		`, c.TodayPoints, c.TotalPoints, c.ID)
		if err != nil {
			return fmt.Errorf("chore save points: %w", err)
		}
	}
	return nil
}

// ResetToday zeroes every chore's today counter (archive flush contract).
func (r *ChoreRepo) ResetToday(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chores SET today_points = 0`)
	if err != nil {
		return fmt.Errorf("chore reset today: %w", err)
	}
	return nil
}
