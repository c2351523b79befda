package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type RewardRepo struct {
	db *sql.DB
}

func NewRewardRepo(db *sql.DB) *RewardRepo {
	return &RewardRepo{db: db}
}

type RewardInsert struct {
	Name     string
	Icon     string
	Cost     int
	Position int
}

func (r *RewardRepo) Insert(ctx context.Context, in RewardInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rewards (name, icon, cost, position)
		VALUES (?, ?, ?, ?)
	`, in.Name, in.Icon, in.Cost, in.Position)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

func (r *RewardRepo) Get(ctx context.Context, id int64) (*Reward, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, icon, cost, purchased, position
		FROM rewards
		WHERE id = ?
	`, id)

	var w Reward
	if err := row.Scan(&w.ID, &w.Name, &w.Icon, &w.Cost, &w.Purchased, &w.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reward get: %w", err)
	}
	return &w, nil
}

// List returns all rewards in catalog order.
func (r *RewardRepo) List(ctx context.Context) ([]Reward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, cost, purchased, position
		FROM rewards
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []Reward
	for rows.Next() {
		var w Reward
		if err := rows.Scan(&w.ID, &w.Name, &w.Icon, &w.Cost, &w.Purchased, &w.Position); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

func (r *RewardRepo) SetPurchased(ctx context.Context, id int64, purchased int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rewards SET purchased = ? WHERE id = ?`, purchased, id)
	if err != nil {
		return fmt.Errorf("reward set purchased: %w", err)
	}
	return nil
}

// SetPurchasedTx is SetPurchased inside a caller-owned transaction.
func (r *RewardRepo) SetPurchasedTx(ctx context.Context, tx *sql.Tx, id int64, purchased int) error {
	_, err := tx.ExecContext(ctx, `UPDATE rewards SET purchased = ? WHERE id = ?`, purchased, id)
	if err != nil {
		return fmt.Errorf("reward set purchased: %w", err)
	}
	return nil
}
