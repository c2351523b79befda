package engine

import (
	"context"
	"sort"
	"time"

	"choreboard/internal/storage"
)

// DayKeyLayout keeps day keys sortable: descending string order is
// descending date order.
const DayKeyLayout = "2006-01-02"

// DayKey returns the canonical archive key for the calendar day containing
// t, in local time.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

type ArchiveResult struct {
	Day      string
	Archived int
	DayTotal int
}

// ArchiveToday moves the current today counters into the archive: the
// aggregate is merged additively into today's record (several saves in one
// day accumulate), and every chore's today counter resets to 0.
func (s *Session) ArchiveToday(ctx context.Context) (*ArchiveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := DayKey(s.now())
	points := s.todayTotalLocked()
	if points == 0 {
		// Nothing to move; don't create a zero-value record.
		total := 0
		if idx := s.findRecordLocked(day); idx >= 0 {
			total = s.records[idx].TotalPoints
		}
		return &ArchiveResult{Day: day, Archived: 0, DayTotal: total}, nil
	}
	res, err := s.archiveLocked(ctx, points, day)
	if err != nil {
		return nil, err
	}
	if err := s.resetTodayLocked(ctx); err != nil {
		return nil, err
	}
	if err := s.setFlushDayLocked(ctx, day); err != nil {
		return nil, err
	}
	return res, nil
}

// Rollover is the day-boundary check behind the auto-flush scheduler. When
// the calendar day has moved past the flush marker, accrued today points
// are archived under the day they were earned and the counters reset; a day
// change with nothing accrued just advances the marker, so the archive
// never collects zero-value records.
func (s *Session) Rollover(ctx context.Context) (*ArchiveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := DayKey(s.now())
	if s.lastFlushDay == today {
		return nil, nil
	}

	var res *ArchiveResult
	if points := s.todayTotalLocked(); points > 0 {
		var err error
		res, err = s.archiveLocked(ctx, points, s.lastFlushDay)
		if err != nil {
			return nil, err
		}
		if err := s.resetTodayLocked(ctx); err != nil {
			return nil, err
		}
	}
	if err := s.setFlushDayLocked(ctx, today); err != nil {
		return nil, err
	}
	return res, nil
}

// archiveLocked merges points into the record for day, creating it at the
// front of the recency order when absent.
func (s *Session) archiveLocked(ctx context.Context, points int, day string) (*ArchiveResult, error) {
	idx := s.findRecordLocked(day)
	var rec storage.DailyRecord
	if idx >= 0 {
		rec = s.records[idx]
		rec.TotalPoints += points
	} else {
		rec = storage.DailyRecord{Date: day, TotalPoints: points}
	}

	if err := s.days.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	if idx >= 0 {
		s.records[idx] = rec
	} else {
		// Insert at the record's date-sorted position: rollover can
		// archive under an older day than the newest record (a fresh
		// today record may already exist), and recency order must hold
		// without a reload.
		pos := sort.Search(len(s.records), func(i int) bool {
			return s.records[i].Date < rec.Date
		})
		s.records = append(s.records, storage.DailyRecord{})
		copy(s.records[pos+1:], s.records[pos:])
		s.records[pos] = rec
	}
	return &ArchiveResult{Day: day, Archived: points, DayTotal: rec.TotalPoints}, nil
}

func (s *Session) resetTodayLocked(ctx context.Context) error {
	if err := s.chores.ResetToday(ctx); err != nil {
		return err
	}
	for i := range s.choreList {
		s.choreList[i].TodayPoints = 0
	}
	return nil
}

func (s *Session) setFlushDayLocked(ctx context.Context, day string) error {
	if err := s.settings.Set(ctx, storage.SettingKeyLastFlushDay, day); err != nil {
		return err
	}
	s.lastFlushDay = day
	return nil
}

// EditDailyRecord overwrites one day's archived total. Negative values are
// clamped to 0, and a record adjusted to 0 is removed. Unknown days are a
// no-op. Callers must have passed the access gate first.
func (s *Session) EditDailyRecord(ctx context.Context, day string, newTotal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findRecordLocked(day)
	if idx < 0 {
		return nil
	}
	if newTotal < 0 {
		newTotal = 0
	}

	if newTotal == 0 {
		if err := s.days.Delete(ctx, day); err != nil {
			return err
		}
		s.records = append(s.records[:idx], s.records[idx+1:]...)
		return nil
	}

	rec := storage.DailyRecord{Date: day, TotalPoints: newTotal}
	if err := s.days.Upsert(ctx, rec); err != nil {
		return err
	}
	s.records[idx] = rec
	return nil
}

// EditTotalSaved adjusts the archive so the sum over all records matches
// newGrandTotal. It is an approximation primitive: growth lands on the most
// recent record (or a fresh record for today when the archive is empty),
// and shrink drains recency-first, deleting records that reach 0. Unlike
// redemption this is ordered by recency, not by magnitude; the two drain
// policies are deliberately separate. When the requested reduction exceeds
// the whole archive, everything drains to zero and the target is not
// reached. Callers must have passed the access gate first.
func (s *Session) EditTotalSaved(ctx context.Context, newGrandTotal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newGrandTotal < 0 {
		newGrandTotal = 0
	}
	diff := newGrandTotal - s.totalSavedLocked()
	if diff == 0 {
		return nil
	}

	updated := make([]storage.DailyRecord, len(s.records))
	copy(updated, s.records)

	if diff > 0 {
		if len(updated) == 0 {
			updated = []storage.DailyRecord{{Date: DayKey(s.now()), TotalPoints: diff}}
		} else {
			updated[0].TotalPoints += diff
		}
	} else {
		remaining := -diff
		for i := range updated {
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
		kept := updated[:0]
		for _, rec := range updated {
			if rec.TotalPoints > 0 {
				kept = append(kept, rec)
			}
		}
		updated = kept
	}

	if err := s.days.ReplaceAll(ctx, updated); err != nil {
		return err
	}
	s.records = updated
	return nil
}

// RankBestDays returns the top-n days by archived points. The sort is
// stable, so equal days keep their recency order.
func (s *Session) RankBestDays(n int) []storage.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]storage.DailyRecord, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalPoints > out[b].TotalPoints
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *Session) findRecordLocked(day string) int {
	for i := range s.records {
		if s.records[i].Date == day {
			return i
		}
	}
	return -1
}
