package engine

import (
	"context"
	"errors"
	"testing"
)

func TestGateVerify(t *testing.T) {
	g := NewGate("4321")

	if err := g.Verify("4321"); err != nil {
		t.Fatalf("correct PIN rejected: %v", err)
	}
	err := g.Verify("0000")
	if err == nil {
		t.Fatalf("wrong PIN accepted")
	}
	var accessErr AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("err=%T, want AccessError", err)
	}

	// Retries are unlimited; a later correct attempt still succeeds.
	if err := g.Verify("4321"); err != nil {
		t.Fatalf("retry after failure rejected: %v", err)
	}
}

func TestGateDefaultPIN(t *testing.T) {
	g := NewGate("")
	if err := g.Verify(DefaultPIN); err != nil {
		t.Fatalf("default PIN rejected: %v", err)
	}
}

func TestGateFailureLeavesStateUntouched(t *testing.T) {
	s, cleanup := newTestSession(t)
	defer cleanup()
	ctx := context.Background()

	before := s.Chores()
	saved := s.TotalSaved()

	if err := s.Gate().Verify("wrong"); err == nil {
		t.Fatalf("wrong PIN accepted")
	}

	after := s.Chores()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("chore %d mutated by failed gate check", before[i].ID)
		}
	}
	if got := s.TotalSaved(); got != saved {
		t.Fatalf("archive mutated by failed gate check: %d != %d", got, saved)
	}

	// Gating is the caller's contract: after a success the edit goes
	// through as one shot.
	if err := s.Gate().Verify(DefaultPIN); err != nil {
		t.Fatalf("correct PIN rejected: %v", err)
	}
	if err := s.EditChoreTotals(ctx, map[int64]int{before[0].ID: 5}); err != nil {
		t.Fatalf("gated edit: %v", err)
	}
	if got := s.Chores()[0].TotalPoints; got != 5 {
		t.Fatalf("edit not applied: %d", got)
	}
}
