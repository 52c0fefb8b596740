package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// DefaultSweepInterval is how often expired sessions are purged when no interval is configured
const DefaultSweepInterval = time.Hour

// sweepTimeout bounds a single purge
const sweepTimeout = 30 * time.Second

// SessionSweeper periodically deletes expired sessions.
// Expired sessions are already rejected on lookup; the sweeper only keeps the table small.
type SessionSweeper struct {
	sessionRepo user.SessionRepository
	clock       shared.Clock
	interval    time.Duration
	logger      *zap.Logger
}

// NewSessionSweeper creates a sweeper. A zero interval uses DefaultSweepInterval.
func NewSessionSweeper(sessionRepo user.SessionRepository, clock shared.Clock, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{
		sessionRepo: sessionRepo,
		clock:       clock,
		interval:    interval,
		logger:      logger,
	}
}

// Run sweeps once immediately and then on every interval until ctx is cancelled
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Session sweeper started", zap.Duration("interval", s.interval))
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			s.Sweep(ctx)
		}
	}
}

// Sweep deletes every session that has expired and returns how many were removed
func (s *SessionSweeper) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	removed, err := s.sessionRepo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Warn("Sweeper: failed to delete expired sessions", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.logger.Info("Sweeper: deleted expired sessions", zap.Int64("count", removed))
	}
	return removed
}
