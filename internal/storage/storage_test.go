package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testDB{
		chores:   NewChoreRepo(db),
		rewards:  NewRewardRepo(db),
		days:     NewDailyRepo(db),
		settings: NewSettingsRepo(db),
	}
}

type testDB struct {
	chores   *ChoreRepo
	rewards  *RewardRepo
	days     *DailyRepo
	settings *SettingsRepo
}

func TestMigrateSeedsCatalogs(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	chores, err := d.chores.List(ctx)
	require.NoError(t, err)
	require.Len(t, chores, 5)
	require.Equal(t, "Clean Room", chores[0].Name)
	require.Equal(t, 10, chores[0].DailyPoints)
	for _, c := range chores {
		require.Zero(t, c.TodayPoints)
		require.Zero(t, c.TotalPoints)
	}

	rewards, err := d.rewards.List(ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 5)
	require.Equal(t, "New Toy", rewards[1].Name)
	require.Equal(t, 100, rewards[1].Cost)
	for _, r := range rewards {
		require.Zero(t, r.Purchased)
	}
}

func TestChoreRepoPoints(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	chores, err := d.chores.List(ctx)
	require.NoError(t, err)

	c := chores[0]
	require.NoError(t, d.chores.UpdatePoints(ctx, c.ID, 10, 25))

	got, err := d.chores.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 10, got.TodayPoints)
	require.Equal(t, 25, got.TotalPoints)

	// Unknown id scans to nil, not an error.
	missing, err := d.chores.Get(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)

	chores[0].TodayPoints = 3
	chores[0].TotalPoints = 7
	chores[1].TotalPoints = 40
	require.NoError(t, d.chores.SaveAllPoints(ctx, chores))

	after, err := d.chores.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, after[0].TotalPoints)
	require.Equal(t, 40, after[1].TotalPoints)

	require.NoError(t, d.chores.ResetToday(ctx))
	after, err = d.chores.List(ctx)
	require.NoError(t, err)
	for _, c := range after {
		require.Zero(t, c.TodayPoints)
	}
	// Reset touches only the today counters.
	require.Equal(t, 7, after[0].TotalPoints)
}

func TestRewardRepoPurchased(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	id, err := d.rewards.Insert(ctx, RewardInsert{Name: "Sleepover", Icon: "🏕️", Cost: 80, Position: 9})
	require.NoError(t, err)

	require.NoError(t, d.rewards.SetPurchased(ctx, id, 2))
	got, err := d.rewards.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 2, got.Purchased)
	require.Equal(t, 80, got.Cost)
}

func TestDailyRepoRecencyOrder(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	require.NoError(t, d.days.Upsert(ctx, DailyRecord{Date: "2025-03-10", TotalPoints: 20}))
	require.NoError(t, d.days.Upsert(ctx, DailyRecord{Date: "2025-03-12", TotalPoints: 15}))
	require.NoError(t, d.days.Upsert(ctx, DailyRecord{Date: "2025-03-11", TotalPoints: 30}))

	records, err := d.days.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []DailyRecord{
		{Date: "2025-03-12", TotalPoints: 15},
		{Date: "2025-03-11", TotalPoints: 30},
		{Date: "2025-03-10", TotalPoints: 20},
	}, records)

	// Upsert on an existing day overwrites; the date key stays unique.
	require.NoError(t, d.days.Upsert(ctx, DailyRecord{Date: "2025-03-12", TotalPoints: 99}))
	rec, err := d.days.Get(ctx, "2025-03-12")
	require.NoError(t, err)
	require.Equal(t, 99, rec.TotalPoints)

	require.NoError(t, d.days.Delete(ctx, "2025-03-11"))
	records, err = d.days.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NoError(t, d.days.ReplaceAll(ctx, []DailyRecord{{Date: "2025-04-01", TotalPoints: 1}}))
	records, err = d.days.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []DailyRecord{{Date: "2025-04-01", TotalPoints: 1}}, records)
}

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	v, err := d.settings.Get(ctx, SettingKeyLastFlushDay)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, d.settings.Set(ctx, SettingKeyLastFlushDay, "2025-03-10"))
	require.NoError(t, d.settings.Set(ctx, SettingKeyLastFlushDay, "2025-03-11"))

	v, err = d.settings.Get(ctx, SettingKeyLastFlushDay)
	require.NoError(t, err)
	require.Equal(t, "2025-03-11", v)
}
