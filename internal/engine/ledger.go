package engine

import (
	"context"
	"database/sql"
	"sort"

	"choreboard/internal/storage"
)

type CompleteResult struct {
	ChoreID     int64
	Awarded     int
	TodayPoints int
	TotalPoints int
	GrandTotal  int
}

type PurchaseResult struct {
	RewardID   int64
	Cost       int
	Purchased  int
	GrandTotal int
}

// CompleteChore credits one completion of the chore: the chore's daily
// points are added to both its today and total counters. An unknown id is a
// no-op and returns a nil result — the UI may race a stale list, which is
// benign.
func (s *Session) CompleteChore(ctx context.Context, id int64) (*CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findChoreLocked(id)
	if c == nil {
		return nil, nil
	}

	c.TodayPoints += c.DailyPoints
	c.TotalPoints += c.DailyPoints
	if err := s.chores.UpdatePoints(ctx, c.ID, c.TodayPoints, c.TotalPoints); err != nil {
		// Back out the in-memory change so state matches the store.
		c.TodayPoints -= c.DailyPoints
		c.TotalPoints -= c.DailyPoints
		return nil, err
	}

	return &CompleteResult{
		ChoreID:     c.ID,
		Awarded:     c.DailyPoints,
		TodayPoints: c.TodayPoints,
		TotalPoints: c.TotalPoints,
		GrandTotal:  s.grandTotalLocked(),
	}, nil
}

// PurchaseReward redeems a reward against the grand total, deducting
// richest-first: chores ordered by descending total points each absorb up
// to their own balance until the cost is covered. Draining large balances
// first keeps the per-chore spread narrow. Today counters are untouched —
// they record earning, not spending.
//
// Unknown ids and unaffordable rewards are no-ops with a nil result; no
// partial deduction ever happens.
func (s *Session) PurchaseReward(ctx context.Context, id int64) (*PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findRewardLocked(id)
	if r == nil {
		return nil, nil
	}
	if s.grandTotalLocked() < r.Cost {
		return nil, nil
	}

	updated := make([]storage.Chore, len(s.choreList))
	copy(updated, s.choreList)

	// Stable sort: catalog order breaks ties between equal balances.
	order := make([]int, len(updated))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return updated[order[a]].TotalPoints > updated[order[b]].TotalPoints
	})

	remaining := r.Cost
	for _, i := range order {
		if remaining <= 0 {
			break
		}
		deduction := updated[i].TotalPoints
		if deduction > remaining {
			deduction = remaining
		}
		updated[i].TotalPoints -= deduction
		remaining -= deduction
	}

	// Deduction and purchase counter commit together; memory is only
	// updated after the commit, so a failed write leaves both the store
	// and the session at the pre-purchase state.
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.chores.SavePointsTx(ctx, tx, updated); err != nil {
			return err
		}
		return s.rewards.SetPurchasedTx(ctx, tx, r.ID, r.Purchased+1)
	})
	if err != nil {
		return nil, err
	}

	s.choreList = updated
	r.Purchased++

	return &PurchaseResult{
		RewardID:   r.ID,
		Cost:       r.Cost,
		Purchased:  r.Purchased,
		GrandTotal: s.grandTotalLocked(),
	}, nil
}

// EditChoreTotals overwrites total balances wholesale: an administrative
// override that bypasses the richest-first policy. Negative inputs are
// clamped to 0; ids not in the registry are ignored. Callers must have
// passed the access gate first.
func (s *Session) EditChoreTotals(ctx context.Context, totals map[int64]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]storage.Chore, len(s.choreList))
	copy(updated, s.choreList)
	for i := range updated {
		v, ok := totals[updated[i].ID]
		if !ok {
			continue
		}
		if v < 0 {
			v = 0
		}
		updated[i].TotalPoints = v
	}

	if err := s.chores.SaveAllPoints(ctx, updated); err != nil {
		return err
	}
	s.choreList = updated
	return nil
}

func (s *Session) findChoreLocked(id int64) *storage.Chore {
	for i := range s.choreList {
		if s.choreList[i].ID == id {
			return &s.choreList[i]
		}
	}
	return nil
}

func (s *Session) findRewardLocked(id int64) *storage.Reward {
	for i := range s.rewardList {
		if s.rewardList[i].ID == id {
			return &s.rewardList[i]
		}
	}
	return nil
}
