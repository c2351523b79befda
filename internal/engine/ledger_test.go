package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"choreboard/internal/storage"
)

func newTestSession(t *testing.T) (*Session, func()) {
	t.Helper()
	session, _, cleanup := newTestSessionDB(t)
	return session, cleanup
}

func newTestSessionDB(t *testing.T) (*Session, *sql.DB, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	session, err := NewSession(ctx, db, NewGate(""))
	if err != nil {
		_ = db.Close()
		t.Fatalf("new session: %v", err)
	}
	cleanup := func() {
		_ = db.Close()
	}
	return session, db, cleanup
}

// setNow pins the session clock to a fixed instant.
func setNow(s *Session, at time.Time) {
	s.now = func() time.Time { return at }
}

func TestCompleteChoreAccrues(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	chores := s.Chores()
	if len(chores) == 0 {
		t.Fatalf("expected seeded chores")
	}
	c := chores[0]

	want := 0
	for i := 0; i < 3; i++ {
		res, err := s.CompleteChore(ctx, c.ID)
		if err != nil {
			t.Fatalf("complete #%d: %v", i+1, err)
		}
		if res == nil {
			t.Fatalf("complete #%d: nil result for known chore", i+1)
		}
		want += c.DailyPoints
		if res.Awarded != c.DailyPoints {
			t.Fatalf("awarded=%d, want %d", res.Awarded, c.DailyPoints)
		}
	}

	if got := s.GrandTotal(); got != want {
		t.Fatalf("grand total=%d, want %d", got, want)
	}
	if got := s.TodayTotal(); got != want {
		t.Fatalf("today total=%d, want %d", got, want)
	}

	// Other chores untouched.
	for _, other := range s.Chores()[1:] {
		if other.TotalPoints != 0 || other.TodayPoints != 0 {
			t.Fatalf("chore %d mutated: today=%d total=%d", other.ID, other.TodayPoints, other.TotalPoints)
		}
	}
}

func TestCompleteChoreUnknownIDIsNoop(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	res, err := s.CompleteChore(ctx, 9999)
	if err != nil {
		t.Fatalf("unknown id should not error: %v", err)
	}
	if res != nil {
		t.Fatalf("unknown id should return nil result, got %+v", res)
	}
	if got := s.GrandTotal(); got != 0 {
		t.Fatalf("grand total mutated: %d", got)
	}
}

func TestPurchaseRewardRichestFirst(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	chores := s.Chores()
	if len(chores) < 3 {
		t.Fatalf("need at least 3 seeded chores, have %d", len(chores))
	}
	totals := map[int64]int{chores[0].ID: 50, chores[1].ID: 30, chores[2].ID: 10}
	for _, c := range chores[3:] {
		totals[c.ID] = 0
	}
	if err := s.EditChoreTotals(ctx, totals); err != nil {
		t.Fatalf("edit totals: %v", err)
	}

	rid, err := s.rewards.Insert(ctx, storage.RewardInsert{Name: "Zoo Trip", Icon: "🦁", Cost: 60, Position: 99})
	if err != nil {
		t.Fatalf("insert reward: %v", err)
	}
	if err := s.load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	res, err := s.PurchaseReward(ctx, rid)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res == nil {
		t.Fatalf("expected purchase to succeed")
	}
	if res.GrandTotal != 30 {
		t.Fatalf("grand total after=%d, want 30", res.GrandTotal)
	}
	if res.Purchased != 1 {
		t.Fatalf("purchased=%d, want 1", res.Purchased)
	}

	// 50 fully drained, then 10 of the 30; the 10 untouched.
	after := s.Chores()
	got := map[int64]int{}
	for _, c := range after {
		got[c.ID] = c.TotalPoints
	}
	if got[chores[0].ID] != 0 || got[chores[1].ID] != 20 || got[chores[2].ID] != 10 {
		t.Fatalf("richest-first result = [%d %d %d], want [0 20 10]",
			got[chores[0].ID], got[chores[1].ID], got[chores[2].ID])
	}

	// Today counters record earning, never spending.
	for _, c := range after {
		if c.TodayPoints != 0 {
			t.Fatalf("today counter touched by redemption: chore %d = %d", c.ID, c.TodayPoints)
		}
	}
}

func TestPurchaseRewardInsufficientBalance(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	rewards := s.Rewards()
	if len(rewards) == 0 {
		t.Fatalf("expected seeded rewards")
	}
	before := s.Chores()

	res, err := s.PurchaseReward(ctx, rewards[0].ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result at zero balance, got %+v", res)
	}

	after := s.Chores()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("chore %d mutated by rejected purchase", before[i].ID)
		}
	}
	if got := s.Rewards()[0].Purchased; got != 0 {
		t.Fatalf("purchased=%d, want 0", got)
	}
}

func TestPurchaseRewardUnknownIDIsNoop(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	res, err := s.PurchaseReward(ctx, 9999)
	if err != nil {
		t.Fatalf("unknown id should not error: %v", err)
	}
	if res != nil {
		t.Fatalf("unknown id should return nil result, got %+v", res)
	}
}

func TestPurchaseRewardExactBalance(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	chores := s.Chores()
	rewards := s.Rewards()
	if err := s.EditChoreTotals(ctx, map[int64]int{chores[0].ID: rewards[0].Cost}); err != nil {
		t.Fatalf("edit totals: %v", err)
	}

	res, err := s.PurchaseReward(ctx, rewards[0].ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res == nil {
		t.Fatalf("exact balance should afford the reward")
	}
	if got := s.GrandTotal(); got != 0 {
		t.Fatalf("grand total=%d, want 0", got)
	}
}

func TestPurchaseRewardRollsBackOnFailedWrite(t *testing.T) {
	s, db, cleanup := newTestSessionDB(t)
	defer cleanup()
	ctx := context.Background()

	chores := s.Chores()
	rewards := s.Rewards()
	cost := rewards[0].Cost
	if err := s.EditChoreTotals(ctx, map[int64]int{chores[0].ID: cost}); err != nil {
		t.Fatalf("edit totals: %v", err)
	}

	// Break the purchase-counter write mid-session; the deduction must
	// not commit without it.
	if _, err := db.ExecContext(ctx, `ALTER TABLE rewards RENAME TO rewards_broken`); err != nil {
		t.Fatalf("rename table: %v", err)
	}

	res, err := s.PurchaseReward(ctx, rewards[0].ID)
	if err == nil {
		t.Fatalf("expected purchase to fail")
	}
	if res != nil {
		t.Fatalf("failed purchase returned a result: %+v", res)
	}

	if _, err := db.ExecContext(ctx, `ALTER TABLE rewards_broken RENAME TO rewards`); err != nil {
		t.Fatalf("restore table: %v", err)
	}

	// Store: no deduction, no purchase.
	stored, err := s.chores.Get(ctx, chores[0].ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if stored.TotalPoints != cost {
		t.Fatalf("stored total=%d, want %d (deduction committed without purchase)", stored.TotalPoints, cost)
	}
	storedReward, err := s.rewards.Get(ctx, rewards[0].ID)
	if err != nil {
		t.Fatalf("get reward: %v", err)
	}
	if storedReward.Purchased != 0 {
		t.Fatalf("stored purchased=%d, want 0", storedReward.Purchased)
	}

	// Session memory still matches the store.
	if got := s.GrandTotal(); got != cost {
		t.Fatalf("in-memory grand total=%d, want %d", got, cost)
	}
	if got := s.Rewards()[0].Purchased; got != 0 {
		t.Fatalf("in-memory purchased=%d, want 0", got)
	}

	// And the purchase goes through once the store is healthy again.
	res, err = s.PurchaseReward(ctx, rewards[0].ID)
	if err != nil {
		t.Fatalf("purchase after restore: %v", err)
	}
	if res == nil || res.Purchased != 1 || res.GrandTotal != 0 {
		t.Fatalf("purchase after restore = %+v, want purchased 1 and grand total 0", res)
	}
}

func TestEditChoreTotalsClampsNegative(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	chores := s.Chores()
	if err := s.EditChoreTotals(ctx, map[int64]int{chores[0].ID: -5, chores[1].ID: 12}); err != nil {
		t.Fatalf("edit totals: %v", err)
	}

	after := s.Chores()
	if after[0].TotalPoints != 0 {
		t.Fatalf("negative total not clamped: %d", after[0].TotalPoints)
	}
	if after[1].TotalPoints != 12 {
		t.Fatalf("total=%d, want 12", after[1].TotalPoints)
	}
	if got := s.GrandTotal(); got != 12 {
		t.Fatalf("grand total=%d, want 12", got)
	}
}
