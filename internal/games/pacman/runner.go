package pacman

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

// Runner drives a session in real time with two independent tickers:
// one for movement and collisions, one for the round countdown.
type Runner struct {
	Session           *Session
	MoveInterval      time.Duration
	CountdownInterval time.Duration
	Logger            *log.Logger
}

// NewRunner returns a runner using the intervals from cfg.
func NewRunner(s *Session, cfg config.PacmanConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Session:           s,
		MoveInterval:      time.Duration(cfg.Timing.MoveIntervalMS) * time.Millisecond,
		CountdownInterval: time.Duration(cfg.Timing.CountdownPeriodMS) * time.Millisecond,
		Logger:            logger,
	}
}

// Run ticks the session until ctx is done. Both tickers keep running after
// the game ends so that a Reset resumes play without restarting the runner.
// Cancellation is not reported as an error.
func (r *Runner) Run(ctx context.Context) error {
	if r.Session == nil || r.MoveInterval <= 0 || r.CountdownInterval <= 0 {
		return ErrInvalidConfiguration
	}

	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Debug("runner started", "move", r.MoveInterval, "countdown", r.CountdownInterval)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return every(ctx, r.MoveInterval, r.Session.Tick)
	})
	eg.Go(func() error {
		return every(ctx, r.CountdownInterval, r.Session.DecrementTimer)
	})

	err := eg.Wait()
	logger.Debug("runner stopped", "err", err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func every(ctx context.Context, d time.Duration, fn func()) error {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			fn()
		}
	}
}
