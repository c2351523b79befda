package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			daily_points INTEGER NOT NULL,
			today_points INTEGER NOT NULL DEFAULT 0,
			total_points INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS rewards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			cost INTEGER NOT NULL,
			purchased INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS daily_records (
			date TEXT PRIMARY KEY,
			total_points INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chores_position ON chores(position);`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_position ON rewards(position);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := seedChores(ctx, db); err != nil {
		return err
	}
	return seedRewards(ctx, db)
}

type seedRow struct {
	name   string
	icon   string
	points int
}

var defaultChores = []seedRow{
	{"Clean Room", "🧹", 10},
	{"Wash Dishes", "🍽️", 15},
	{"Put Away Toys", "🧸", 8},
	{"Feed Pet", "🐕", 5},
	{"Make Bed", "🛏️", 7},
}

var defaultRewards = []seedRow{
	{"Ice Cream", "🍦", 25},
	{"New Toy", "🎁", 100},
	{"Movie Night", "🍿", 50},
	{"Extra Playtime", "⏰", 30},
	{"Special Treat", "🍭", 15},
}

// seedChores inserts the starter catalog on an empty table only; an
// existing catalog (even an edited one) is left alone.
func seedChores(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chores`).Scan(&n); err != nil {
		return fmt.Errorf("count chores: %w", err)
	}
	if n > 0 {
		return nil
	}
	for i, c := range defaultChores {
		_, err := db.ExecContext(ctx, `
			INSERT INTO chores (name, icon, daily_points, position) VALUES (?, ?, ?, ?)
		`, c.name, c.icon, c.points, i)
		if err != nil {
			return fmt.Errorf("seed chores: %w", err)
		}
	}
	return nil
}

func seedRewards(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rewards`).Scan(&n); err != nil {
		return fmt.Errorf("count rewards: %w", err)
	}
	if n > 0 {
		return nil
	}
	for i, r := range defaultRewards {
		_, err := db.ExecContext(ctx, `
			INSERT INTO rewards (name, icon, cost, position) VALUES (?, ?, ?, ?)
		`, r.name, r.icon, r.points, i)
		if err != nil {
			return fmt.Errorf("seed rewards: %w", err)
		}
	}
	return nil
}
