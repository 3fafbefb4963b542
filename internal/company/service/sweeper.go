package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/store"
)

// InvitationSweeper periodically marks pending invitations whose window has
// elapsed as EXPIRED. Acceptance checks expiry on its own, so the sweeper
// only makes the persisted status catch up sooner.
type InvitationSweeper struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewInvitationSweeper creates a sweeper. If interval is 0 or negative,
// defaults to 1 hour.
func NewInvitationSweeper(store store.Store, logger *slog.Logger, interval time.Duration) *InvitationSweeper {
	if interval <= 0 {
		interval = time.Hour
	}

	return &InvitationSweeper{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop in the background. Call Stop to shut it down.
func (s *InvitationSweeper) Start() {
	go s.run()
	s.Logger.Info("invitation sweeper started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *InvitationSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("invitation sweeper stopped")
}

func (s *InvitationSweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep expires every overdue pending invitation and returns how many were
// updated. Each invitation is written in its own transaction; a failure is
// logged and the sweep moves on.
func (s *InvitationSweeper) Sweep(ctx context.Context) int {
	pending, err := s.Store.Invitations().FindAllByStatus(ctx, domain.InvitationPending)
	if err != nil {
		s.Logger.Error("failed to list pending invitations", "error", err)
		return 0
	}

	now := time.Now()
	expired := 0
	for _, inv := range pending {
		if !inv.IsExpiredAt(now) {
			continue
		}

		written := false
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			// Re-read so a concurrent accept or decline is not overwritten.
			current, err := tx.Invitations().FindByID(ctx, inv.ID())
			if err != nil {
				return err
			}
			if current.Status() != domain.InvitationPending {
				return nil
			}
			current.MarkAsExpired()
			if err := tx.Invitations().Save(ctx, current); err != nil {
				return err
			}
			written = true
			return nil
		})
		if err != nil {
			s.Logger.Error("failed to expire invitation",
				"invitation_id", inv.ID().String(),
				"error", err,
			)
			continue
		}
		if written {
			expired++
		}
	}

	s.Logger.Info("invitation sweep completed", "expired", expired, "pending_checked", len(pending))
	return expired
}
