package engine

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"choreboard/internal/storage"
)

// Session owns the chore registry, reward catalog, and daily archive for one
// running process. State is loaded from the store once at open, mutated in
// memory, and written through after every successful mutation; it is never
// re-read as part of computing a view.
//
// All mutation runs under one mutex, so surface actions and the rollover
// scheduler stay serialized.
type Session struct {
	mu sync.Mutex

	db       *sql.DB
	chores   *storage.ChoreRepo
	rewards  *storage.RewardRepo
	days     *storage.DailyRepo
	settings *storage.SettingsRepo

	choreList    []storage.Chore
	rewardList   []storage.Reward
	records      []storage.DailyRecord // most recent first
	lastFlushDay string

	gate Gate
	now  func() time.Time
}

// NewSession loads all state from the database and runs the startup
// rollover check, so points accrued in an earlier run land on the day they
// were earned even after a restart across midnight.
func NewSession(ctx context.Context, db *sql.DB, gate Gate) (*Session, error) {
	s := &Session{
		db:       db,
		chores:   storage.NewChoreRepo(db),
		rewards:  storage.NewRewardRepo(db),
		days:     storage.NewDailyRepo(db),
		settings: storage.NewSettingsRepo(db),
		gate:     gate,
		now:      time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if _, err := s.Rollover(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load(ctx context.Context) error {
	chores, err := s.chores.List(ctx)
	if err != nil {
		return err
	}
	rewards, err := s.rewards.List(ctx)
	if err != nil {
		return err
	}
	records, err := s.days.List(ctx)
	if err != nil {
		return err
	}
	marker, err := s.settings.Get(ctx, storage.SettingKeyLastFlushDay)
	if err != nil {
		return err
	}
	if marker == "" {
		// Fresh store: today's accrual starts now.
		marker = DayKey(s.now())
		if err := s.settings.Set(ctx, storage.SettingKeyLastFlushDay, marker); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.choreList = chores
	s.rewardList = rewards
	s.records = records
	s.lastFlushDay = marker
	return nil
}

// Gate returns the access gate protecting point edits.
func (s *Session) Gate() Gate { return s.gate }

// Chores returns the chore registry in catalog order.
func (s *Session) Chores() []storage.Chore {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Chore, len(s.choreList))
	copy(out, s.choreList)
	return out
}

// Rewards returns the reward catalog in catalog order.
func (s *Session) Rewards() []storage.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Reward, len(s.rewardList))
	copy(out, s.rewardList)
	return out
}

// Records returns all daily records, most recent first.
func (s *Session) Records() []storage.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.DailyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// GrandTotal is the spendable balance: the sum of all chores' total points.
func (s *Session) GrandTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grandTotalLocked()
}

// TodayTotal is the sum of all chores' same-day accrual.
func (s *Session) TodayTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todayTotalLocked()
}

// TotalSaved is the sum of every archived day's points.
func (s *Session) TotalSaved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSavedLocked()
}

func (s *Session) grandTotalLocked() int {
	sum := 0
	for i := range s.choreList {
		sum += s.choreList[i].TotalPoints
	}
	return sum
}

func (s *Session) todayTotalLocked() int {
	sum := 0
	for i := range s.choreList {
		sum += s.choreList[i].TodayPoints
	}
	return sum
}

func (s *Session) totalSavedLocked() int {
	sum := 0
	for i := range s.records {
		sum += s.records[i].TotalPoints
	}
	return sum
}
