package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTokenCheckInterval is how often the access token age is checked
const DefaultTokenCheckInterval = 6 * time.Hour

// TokenRefresher exchanges the access token when it is due
type TokenRefresher interface {
	RefreshIfNeeded(ctx context.Context) (bool, error)
}

// TokenScheduler checks the Graph API token periodically
type TokenScheduler struct {
	refresher TokenRefresher
	interval  time.Duration
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTokenScheduler creates a new token scheduler.
// An interval of zero disables the periodic check.
func NewTokenScheduler(refresher TokenRefresher, interval time.Duration, log *slog.Logger) *TokenScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &TokenScheduler{
		refresher: refresher,
		interval:  interval,
		log:       log.With("component", "service.scheduler"),
	}
}

// Start runs a check immediately and then on every tick
func (s *TokenScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("Token refresh check disabled")
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop()

	s.log.Info("Scheduler started", "interval", s.interval)
}

// Stop stops the scheduler and waits for a running check to finish
func (s *TokenScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

func (s *TokenScheduler) loop() {
	defer s.wg.Done()

	s.check()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.check()
		}
	}
}

func (s *TokenScheduler) check() {
	refreshed, err := s.refresher.RefreshIfNeeded(s.ctx)
	if err != nil {
		s.log.Error("Token refresh failed", "error", err)
		return
	}
	if refreshed {
		s.log.Info("Access token refreshed")
	}
}
