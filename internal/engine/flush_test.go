package engine

import (
	"context"
	"testing"
	"time"
)

func TestAutoFlushArchivesOnDayChange(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	setNow(s, day1)
	if _, err := s.Rollover(ctx); err != nil {
		t.Fatalf("rollover: %v", err)
	}
	earn(t, s, s.Chores()[0].ID, 1)

	setNow(s, day1.AddDate(0, 0, 1))
	stop := s.StartAutoFlush(ctx, 5*time.Millisecond)
	defer stop()

	deadline := time.Now().Add(2 * time.Second)
	for s.TodayTotal() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("auto-flush never rolled over")
		}
		time.Sleep(5 * time.Millisecond)
	}

	records := s.Records()
	if len(records) != 1 || records[0].Date != DayKey(day1) {
		t.Fatalf("records=%+v, want one record for %s", records, DayKey(day1))
	}
}

func TestAutoFlushStopReturns(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()

	stop := s.StartAutoFlush(context.Background(), time.Hour)
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop did not return")
	}
}
