package pacman

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestRunnerTicksUntilCancelled(t *testing.T) {
	cfg := emptyConfig()
	cfg.Coins.Count = 1
	s := newSession(t, cfg, 1600, 880)

	r := NewRunner(s, cfg, nil)
	r.MoveInterval = time.Millisecond
	r.CountdownInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v, expected nil on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}

	snap := s.Snapshot()
	if snap.Ticks == 0 {
		t.Error("Ticks = 0, expected the movement ticker to run")
	}
	if snap.RemainingSeconds >= cfg.Timing.RoundSeconds {
		t.Errorf("RemainingSeconds = %d, expected the countdown to run", snap.RemainingSeconds)
	}
}

func TestRunnerRejectsBadSetup(t *testing.T) {
	cfg := emptyConfig()
	s, err := NewSession(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	tests := []struct {
		name string
		r    *Runner
	}{
		{"nil session", &Runner{MoveInterval: time.Millisecond, CountdownInterval: time.Second}},
		{"zero move interval", &Runner{Session: s, CountdownInterval: time.Second}},
		{"zero countdown", &Runner{Session: s, MoveInterval: time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Run(context.Background()); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Run() error = %v, expected ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestNewRunnerUsesConfiguredIntervals(t *testing.T) {
	cfg := emptyConfig()
	r := NewRunner(nil, cfg, nil)

	if r.MoveInterval != 20*time.Millisecond {
		t.Errorf("MoveInterval = %v, expected 20ms", r.MoveInterval)
	}
	if r.CountdownInterval != time.Second {
		t.Errorf("CountdownInterval = %v, expected 1s", r.CountdownInterval)
	}
}
